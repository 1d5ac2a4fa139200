package middleware

import (
	"context"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/tripsplit/internal/metrics"
)

type metricsInterceptor struct {
	metrics *metrics.Metrics
}

// MetricsInterceptor returns a Connect interceptor that records the count
// and latency of every RPC by procedure and result code.
func MetricsInterceptor(m *metrics.Metrics) connect.Interceptor {
	return metricsInterceptor{metrics: m}
}

func (i metricsInterceptor) WrapUnary(next connect.UnaryFunc) connect.UnaryFunc {
	return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
		if req.Spec().IsClient {
			return next(ctx, req)
		}
		start := time.Now()
		resp, err := next(ctx, req)
		i.metrics.ObserveRPC(req.Spec().Procedure, codeOf(err), time.Since(start))
		return resp, err
	}
}

func (i metricsInterceptor) WrapStreamingClient(next connect.StreamingClientFunc) connect.StreamingClientFunc {
	return next
}

func (i metricsInterceptor) WrapStreamingHandler(next connect.StreamingHandlerFunc) connect.StreamingHandlerFunc {
	return func(ctx context.Context, conn connect.StreamingHandlerConn) error {
		start := time.Now()
		err := next(ctx, conn)
		i.metrics.ObserveRPC(conn.Spec().Procedure, codeOf(err), time.Since(start))
		return err
	}
}

func codeOf(err error) string {
	if err == nil {
		return "ok"
	}
	return connect.CodeOf(err).String()
}
