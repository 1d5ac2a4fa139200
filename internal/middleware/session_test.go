package middleware

import (
	"context"
	"testing"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/tripsplit/internal/auth"
)

type ping struct{}

func TestRequireSession(t *testing.T) {
	sessions := auth.NewSessionManager("test-secret", time.Hour)
	token, err := sessions.Issue("Caca", []string{"Budi"})
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	var seen context.Context
	next := connect.UnaryFunc(func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
		seen = ctx
		return connect.NewResponse(&ping{}), nil
	})
	handler := RequireSession(sessions).WrapUnary(next)

	tests := []struct {
		name     string
		header   string
		wantCode connect.Code
	}{
		{"valid token", "Bearer " + token, 0},
		{"missing header", "", connect.CodeUnauthenticated},
		{"wrong scheme", "Basic " + token, connect.CodeUnauthenticated},
		{"forged token", "Bearer not-a-jwt", connect.CodeUnauthenticated},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seen = nil
			req := connect.NewRequest(&ping{})
			if tt.header != "" {
				req.Header().Set("Authorization", tt.header)
			}

			_, err := handler(context.Background(), req)
			if tt.wantCode == 0 {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if got := GetParticipant(seen); got != "Caca" {
					t.Errorf("GetParticipant = %q, want Caca", got)
				}
				if extra := GetExtraParticipants(seen); len(extra) != 1 || extra[0] != "Budi" {
					t.Errorf("GetExtraParticipants = %v", extra)
				}
				return
			}
			if got := connect.CodeOf(err); got != tt.wantCode {
				t.Errorf("code = %v, want %v", got, tt.wantCode)
			}
			if seen != nil {
				t.Error("handler ran for a rejected call")
			}
		})
	}
}

func TestGetParticipant_Empty(t *testing.T) {
	ctx := context.Background()
	if got := GetParticipant(ctx); got != "" {
		t.Errorf("GetParticipant = %q, want empty", got)
	}
	if got := GetExtraParticipants(ctx); len(got) != 0 {
		t.Errorf("GetExtraParticipants = %v, want empty", got)
	}
}
