package service

import (
	"errors"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/tripsplit/internal/archive"
	"github.com/mmynk/tripsplit/internal/calculator"
	"github.com/mmynk/tripsplit/internal/models"
	"github.com/mmynk/tripsplit/internal/storage"
	"github.com/mmynk/tripsplit/pkg/api"
)

// toConnectError logs err and maps it to a Connect error.
//
//	ValidationError            -> InvalidArgument
//	ErrDegenerateInput         -> FailedPrecondition
//	PartialFailureError        -> Aborted, with settlement and expense IDs in metadata
//	ErrNotFound                -> NotFound
//	ErrUnavailable             -> Unavailable
//	anything else              -> Internal
func toConnectError(op string, err error) error {
	var (
		ve *models.ValidationError
		pf *archive.PartialFailureError
	)

	switch {
	case errors.As(err, &ve):
		slog.Warn(op+" rejected", "field", ve.Field, "error", ve.Message)
		return connect.NewError(connect.CodeInvalidArgument, err)

	case errors.Is(err, calculator.ErrDegenerateInput):
		slog.Warn(op+" rejected", "error", err)
		return connect.NewError(connect.CodeFailedPrecondition, err)

	case errors.As(err, &pf):
		slog.Error(op+" partially failed", "settlement_id", pf.SettlementID, "failed_expense_ids", pf.FailedIDs(), "error", err)
		connectErr := connect.NewError(connect.CodeAborted, err)
		if pf.SettlementID != "" {
			connectErr.Meta().Set(api.SettlementIDKey, pf.SettlementID)
		}
		for _, id := range pf.FailedIDs() {
			connectErr.Meta().Add(api.FailedExpenseIDKey, id)
		}
		return connectErr

	case errors.Is(err, storage.ErrNotFound):
		slog.Warn(op+" failed", "error", err)
		return connect.NewError(connect.CodeNotFound, err)

	case errors.Is(err, storage.ErrUnavailable):
		slog.Error(op+" failed", "error", err)
		return connect.NewError(connect.CodeUnavailable, err)

	default:
		slog.Error(op+" failed", "error", err)
		return connect.NewError(connect.CodeInternal, err)
	}
}
