// Package apiconnect contains Connect handlers and clients for the
// tripsplit.v1 services.
//
// Every constructor installs the JSON codec from package api; callers add
// their own interceptors through opts.
package apiconnect

import (
	"context"

	"connectrpc.com/connect"

	"github.com/mmynk/tripsplit/pkg/api"
)

func handlerOptions(opts []connect.HandlerOption) []connect.HandlerOption {
	return append([]connect.HandlerOption{connect.WithCodec(api.Codec())}, opts...)
}

func clientOptions(opts []connect.ClientOption) []connect.ClientOption {
	return append([]connect.ClientOption{connect.WithCodec(api.Codec())}, opts...)
}

type bearerInterceptor struct {
	token string
}

// WithSessionToken returns a client interceptor that sends token as a
// Bearer Authorization header on every call.
func WithSessionToken(token string) connect.Interceptor {
	return bearerInterceptor{token: token}
}

func (b bearerInterceptor) WrapUnary(next connect.UnaryFunc) connect.UnaryFunc {
	return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
		if req.Spec().IsClient && b.token != "" {
			req.Header().Set("Authorization", "Bearer "+b.token)
		}
		return next(ctx, req)
	}
}

func (b bearerInterceptor) WrapStreamingClient(next connect.StreamingClientFunc) connect.StreamingClientFunc {
	return func(ctx context.Context, spec connect.Spec) connect.StreamingClientConn {
		conn := next(ctx, spec)
		if b.token != "" {
			conn.RequestHeader().Set("Authorization", "Bearer "+b.token)
		}
		return conn
	}
}

func (b bearerInterceptor) WrapStreamingHandler(next connect.StreamingHandlerFunc) connect.StreamingHandlerFunc {
	return next
}
