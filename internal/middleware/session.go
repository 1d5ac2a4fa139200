package middleware

import (
	"context"
	"log/slog"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/tripsplit/internal/auth"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

const (
	// ParticipantKey is the context key for the selected participant name.
	ParticipantKey contextKey = "participant"
	// ExtraKey is the context key for ad hoc participant names.
	ExtraKey contextKey = "extra_participants"
)

// GetParticipant extracts the session participant from the context.
// Returns empty string if not found.
func GetParticipant(ctx context.Context) string {
	name, _ := ctx.Value(ParticipantKey).(string)
	return name
}

// GetExtraParticipants extracts the ad hoc participant names carried by the
// session.
func GetExtraParticipants(ctx context.Context) []string {
	extra, _ := ctx.Value(ExtraKey).([]string)
	return extra
}

// WithParticipant returns a context carrying the given session.
func WithParticipant(ctx context.Context, name string, extra []string) context.Context {
	ctx = context.WithValue(ctx, ParticipantKey, name)
	return context.WithValue(ctx, ExtraKey, extra)
}

type sessionInterceptor struct {
	sessions *auth.SessionManager
	exempt   []string
}

// RequireSession returns an interceptor that rejects every call without a
// valid session token, except procedures under one of the exempt prefixes.
// It covers unary and server-streaming handlers.
func RequireSession(sessions *auth.SessionManager, exempt ...string) connect.Interceptor {
	return &sessionInterceptor{sessions: sessions, exempt: exempt}
}

func (i *sessionInterceptor) WrapUnary(next connect.UnaryFunc) connect.UnaryFunc {
	return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
		if req.Spec().IsClient {
			return next(ctx, req)
		}
		ctx, err := i.authenticate(ctx, req.Spec().Procedure, req.Header().Get("Authorization"))
		if err != nil {
			return nil, err
		}
		return next(ctx, req)
	}
}

func (i *sessionInterceptor) WrapStreamingClient(next connect.StreamingClientFunc) connect.StreamingClientFunc {
	return next
}

func (i *sessionInterceptor) WrapStreamingHandler(next connect.StreamingHandlerFunc) connect.StreamingHandlerFunc {
	return func(ctx context.Context, conn connect.StreamingHandlerConn) error {
		ctx, err := i.authenticate(ctx, conn.Spec().Procedure, conn.RequestHeader().Get("Authorization"))
		if err != nil {
			return err
		}
		return next(ctx, conn)
	}
}

func (i *sessionInterceptor) authenticate(ctx context.Context, procedure, header string) (context.Context, error) {
	for _, prefix := range i.exempt {
		if strings.HasPrefix(procedure, prefix) {
			return ctx, nil
		}
	}

	if header == "" {
		slog.Warn("RPC rejected", "procedure", procedure, "error", auth.ErrMissingToken)
		return nil, connect.NewError(connect.CodeUnauthenticated, auth.ErrMissingToken)
	}

	// Parse Bearer token
	parts := strings.Split(header, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return nil, connect.NewError(connect.CodeUnauthenticated, auth.ErrInvalidToken)
	}

	claims, err := i.sessions.Validate(parts[1])
	if err != nil {
		slog.Warn("RPC rejected", "procedure", procedure, "error", err)
		return nil, connect.NewError(connect.CodeUnauthenticated, err)
	}

	return WithParticipant(ctx, claims.Participant, claims.Extra), nil
}
