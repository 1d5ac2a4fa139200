package service

import (
	"context"
	"log/slog"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/tripsplit/internal/auth"
	"github.com/mmynk/tripsplit/internal/models"
	"github.com/mmynk/tripsplit/pkg/api"
)

// SessionService lets a device pick which participant it acts as.
type SessionService struct {
	roster   models.Roster
	sessions *auth.SessionManager
	logger   *slog.Logger
}

// NewSessionService creates a session service over the configured roster.
func NewSessionService(roster models.Roster, sessions *auth.SessionManager, logger *slog.Logger) *SessionService {
	return &SessionService{
		roster:   roster,
		sessions: sessions,
		logger:   logger,
	}
}

// ListParticipants returns the configured roster.
func (s *SessionService) ListParticipants(ctx context.Context, req *connect.Request[api.ListParticipantsRequest]) (*connect.Response[api.ListParticipantsResponse], error) {
	return connect.NewResponse(&api.ListParticipantsResponse{
		Participants: s.roster.Names(),
	}), nil
}

// SelectParticipant issues a session token for a roster name. Ad hoc names
// in Extra join the roster for this session only.
func (s *SessionService) SelectParticipant(ctx context.Context, req *connect.Request[api.SelectParticipantRequest]) (*connect.Response[api.SelectParticipantResponse], error) {
	name := strings.TrimSpace(req.Msg.Name)
	s.logger.Info("SelectParticipant request", "name", name, "extra", req.Msg.Extra)

	if name == "" {
		return nil, toConnectError("SelectParticipant", models.Invalid("name", "is required"))
	}

	roster := s.roster.Extend(req.Msg.Extra...)
	if !roster.Contains(name) {
		return nil, toConnectError("SelectParticipant",
			models.Invalid("name", "%q is not a participant; add it as an extra name first", name))
	}

	// Only names outside the configured roster travel with the session.
	var extra []string
	for _, n := range roster.Names() {
		if !s.roster.Contains(n) {
			extra = append(extra, n)
		}
	}

	token, err := s.sessions.Issue(name, extra)
	if err != nil {
		s.logger.Error("Failed to issue session", "name", name, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	s.logger.Info("Participant selected", "name", name)
	return connect.NewResponse(&api.SelectParticipantResponse{
		Participant:  name,
		Token:        token,
		Participants: roster.Names(),
	}), nil
}
