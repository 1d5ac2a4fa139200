package middleware

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"connectrpc.com/connect"
)

type loggingInterceptor struct{}

// LoggingInterceptor returns a Connect interceptor that logs every RPC call
// and every server stream when it ends. It logs the procedure, participant,
// duration, and any error code.
func LoggingInterceptor() connect.Interceptor {
	return loggingInterceptor{}
}

func (loggingInterceptor) WrapUnary(next connect.UnaryFunc) connect.UnaryFunc {
	return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
		if req.Spec().IsClient {
			return next(ctx, req)
		}
		start := time.Now()
		resp, err := next(ctx, req)
		logRPC(ctx, req.Spec().Procedure, start, err)
		return resp, err
	}
}

func (loggingInterceptor) WrapStreamingClient(next connect.StreamingClientFunc) connect.StreamingClientFunc {
	return next
}

func (loggingInterceptor) WrapStreamingHandler(next connect.StreamingHandlerFunc) connect.StreamingHandlerFunc {
	return func(ctx context.Context, conn connect.StreamingHandlerConn) error {
		start := time.Now()
		slog.Debug("stream opened", "procedure", conn.Spec().Procedure, "participant", GetParticipant(ctx))
		err := next(ctx, conn)
		logRPC(ctx, conn.Spec().Procedure, start, err)
		return err
	}
}

func logRPC(ctx context.Context, procedure string, start time.Time, err error) {
	participant := GetParticipant(ctx)
	duration := time.Since(start).Milliseconds()

	if err == nil {
		slog.Info("RPC ok",
			"procedure", procedure,
			"participant", participant,
			"duration_ms", duration,
		)
		return
	}

	var connectErr *connect.Error
	if errors.As(err, &connectErr) {
		slog.Warn("RPC error",
			"procedure", procedure,
			"code", connectErr.Code(),
			"error", connectErr.Message(),
			"participant", participant,
			"duration_ms", duration,
		)
	} else {
		slog.Error("RPC error",
			"procedure", procedure,
			"error", err,
			"participant", participant,
			"duration_ms", duration,
		)
	}
}
