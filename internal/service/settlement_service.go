package service

import (
	"context"
	"errors"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/tripsplit/internal/archive"
	"github.com/mmynk/tripsplit/internal/calculator"
	"github.com/mmynk/tripsplit/internal/metrics"
	"github.com/mmynk/tripsplit/internal/middleware"
	"github.com/mmynk/tripsplit/internal/models"
	"github.com/mmynk/tripsplit/internal/storage"
	"github.com/mmynk/tripsplit/pkg/api"
)

// SettlementService implements the Connect SettlementService.
type SettlementService struct {
	store    storage.Store
	archiver *archive.Archiver
	roster   models.Roster
	metrics  *metrics.Metrics
}

// NewSettlementService creates a new SettlementService. roster is the
// configured participant list; m may be nil.
func NewSettlementService(store storage.Store, archiver *archive.Archiver, roster models.Roster, m *metrics.Metrics) *SettlementService {
	return &SettlementService{
		store:    store,
		archiver: archiver,
		roster:   roster,
		metrics:  m,
	}
}

// sessionRoster is the configured roster plus any ad hoc names carried by
// the caller's session.
func (s *SettlementService) sessionRoster(ctx context.Context) models.Roster {
	return s.roster.Extend(middleware.GetExtraParticipants(ctx)...)
}

// PreviewSettlement computes who owes whom for the live expenses without
// changing anything.
func (s *SettlementService) PreviewSettlement(ctx context.Context, req *connect.Request[api.PreviewSettlementRequest]) (*connect.Response[api.PreviewSettlementResponse], error) {
	roster := s.sessionRoster(ctx)
	if req.Msg.Participants != nil {
		roster = models.NewRoster(req.Msg.Participants...)
	}
	slog.Debug("PreviewSettlement request received", "participants", roster.Names())

	expenses, err := s.store.ListExpenses(ctx)
	if err != nil {
		return nil, toConnectError("PreviewSettlement", err)
	}

	result, err := calculator.ComputeSettlement(expenses, roster)
	if err != nil {
		return nil, toConnectError("PreviewSettlement", err)
	}

	return connect.NewResponse(&api.PreviewSettlementResponse{
		Preview: toAPIPreview(result, roster, expenses),
	}), nil
}

// SettleUp archives every live expense under a note and clears the list.
//
// If the settlement is written but some expenses could not be deleted, the
// call fails with CodeAborted and the error metadata names the settlement
// and the expenses still live. Retry those with DeleteExpenses.
func (s *SettlementService) SettleUp(ctx context.Context, req *connect.Request[api.SettleUpRequest]) (*connect.Response[api.SettleUpResponse], error) {
	slog.Info("SettleUp request received", "note", req.Msg.Note, "participant", middleware.GetParticipant(ctx))

	expenses, err := s.store.ListExpenses(ctx)
	if err != nil {
		return nil, toConnectError("SettleUp", err)
	}

	settlement, err := s.archiver.SettleAndArchive(ctx, expenses, s.sessionRoster(ctx), req.Msg.Note)
	if err != nil {
		var pf *archive.PartialFailureError
		if errors.As(err, &pf) {
			s.metrics.SettlementArchived(true)
		}
		return nil, toConnectError("SettleUp", err)
	}
	s.metrics.SettlementArchived(false)

	slog.Info("Settlement archived",
		"settlement_id", settlement.ID,
		"note", settlement.Note,
		"total", settlement.TotalAmount,
		"expenses", len(settlement.Expenses),
	)
	return connect.NewResponse(&api.SettleUpResponse{Settlement: toAPISettlement(*settlement)}), nil
}

// ListSettlements returns the settlement history, newest first.
func (s *SettlementService) ListSettlements(ctx context.Context, req *connect.Request[api.ListSettlementsRequest]) (*connect.Response[api.ListSettlementsResponse], error) {
	resp, err := s.listSettlements(ctx)
	if err != nil {
		return nil, toConnectError("ListSettlements", err)
	}
	return connect.NewResponse(resp), nil
}

// GetSettlement returns one settlement and the split of its snapshot across
// the participants recorded at settle time. Settlements stored without
// participants fall back to the caller's current roster.
func (s *SettlementService) GetSettlement(ctx context.Context, req *connect.Request[api.GetSettlementRequest]) (*connect.Response[api.GetSettlementResponse], error) {
	if req.Msg.ID == "" {
		return nil, toConnectError("GetSettlement", models.Invalid("id", "is required"))
	}

	settlement, err := s.store.GetSettlement(ctx, req.Msg.ID)
	if err != nil {
		return nil, toConnectError("GetSettlement", err)
	}

	roster := models.NewRoster(settlement.Participants...)
	if roster.Len() == 0 {
		roster = s.sessionRoster(ctx)
	}
	result, err := calculator.ComputeSettlement(settlement.Expenses, roster)
	if err != nil {
		return nil, toConnectError("GetSettlement", err)
	}

	return connect.NewResponse(&api.GetSettlementResponse{
		Settlement: toAPISettlement(*settlement),
		Summary:    toAPIPreview(result, roster, settlement.Expenses),
	}), nil
}

// WatchSettlements streams the history on start and after every new
// settlement.
func (s *SettlementService) WatchSettlements(ctx context.Context, req *connect.Request[api.WatchSettlementsRequest], stream *connect.ServerStream[api.ListSettlementsResponse]) error {
	slog.Info("WatchSettlements started", "participant", middleware.GetParticipant(ctx))
	return watch(ctx, s.store, storage.CollectionSettlements, "WatchSettlements", s.listSettlements, stream.Send)
}

func (s *SettlementService) listSettlements(ctx context.Context) (*api.ListSettlementsResponse, error) {
	settlements, err := s.store.ListSettlements(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]api.Settlement, len(settlements))
	for i, st := range settlements {
		out[i] = toAPISettlement(st)
	}
	return &api.ListSettlementsResponse{Settlements: out}, nil
}
