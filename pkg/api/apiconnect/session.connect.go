package apiconnect

import (
	"context"
	"net/http"

	"connectrpc.com/connect"

	"github.com/mmynk/tripsplit/pkg/api"
)

// SessionServiceName is the fully-qualified name of the SessionService service.
const SessionServiceName = "tripsplit.v1.SessionService"

const (
	SessionServiceListParticipantsProcedure  = "/tripsplit.v1.SessionService/ListParticipants"
	SessionServiceSelectParticipantProcedure = "/tripsplit.v1.SessionService/SelectParticipant"
)

// SessionServiceClient is a client for the tripsplit.v1.SessionService service.
type SessionServiceClient interface {
	ListParticipants(context.Context, *connect.Request[api.ListParticipantsRequest]) (*connect.Response[api.ListParticipantsResponse], error)
	SelectParticipant(context.Context, *connect.Request[api.SelectParticipantRequest]) (*connect.Response[api.SelectParticipantResponse], error)
}

// NewSessionServiceClient constructs a client for the tripsplit.v1.SessionService
// service. baseURL is the scheme and host, e.g. http://localhost:8080.
func NewSessionServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) SessionServiceClient {
	opts = clientOptions(opts)
	return &sessionServiceClient{
		listParticipants: connect.NewClient[api.ListParticipantsRequest, api.ListParticipantsResponse](
			httpClient, baseURL+SessionServiceListParticipantsProcedure, opts...,
		),
		selectParticipant: connect.NewClient[api.SelectParticipantRequest, api.SelectParticipantResponse](
			httpClient, baseURL+SessionServiceSelectParticipantProcedure, opts...,
		),
	}
}

type sessionServiceClient struct {
	listParticipants  *connect.Client[api.ListParticipantsRequest, api.ListParticipantsResponse]
	selectParticipant *connect.Client[api.SelectParticipantRequest, api.SelectParticipantResponse]
}

func (c *sessionServiceClient) ListParticipants(ctx context.Context, req *connect.Request[api.ListParticipantsRequest]) (*connect.Response[api.ListParticipantsResponse], error) {
	return c.listParticipants.CallUnary(ctx, req)
}

func (c *sessionServiceClient) SelectParticipant(ctx context.Context, req *connect.Request[api.SelectParticipantRequest]) (*connect.Response[api.SelectParticipantResponse], error) {
	return c.selectParticipant.CallUnary(ctx, req)
}

// SessionServiceHandler is an implementation of the tripsplit.v1.SessionService service.
type SessionServiceHandler interface {
	ListParticipants(context.Context, *connect.Request[api.ListParticipantsRequest]) (*connect.Response[api.ListParticipantsResponse], error)
	SelectParticipant(context.Context, *connect.Request[api.SelectParticipantRequest]) (*connect.Response[api.SelectParticipantResponse], error)
}

// NewSessionServiceHandler builds an HTTP handler from the service
// implementation. It returns the path on which to mount the handler.
func NewSessionServiceHandler(svc SessionServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	listParticipants := connect.NewUnaryHandler(SessionServiceListParticipantsProcedure, svc.ListParticipants, opts...)
	selectParticipant := connect.NewUnaryHandler(SessionServiceSelectParticipantProcedure, svc.SelectParticipant, opts...)

	return "/" + SessionServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case SessionServiceListParticipantsProcedure:
			listParticipants.ServeHTTP(w, r)
		case SessionServiceSelectParticipantProcedure:
			selectParticipant.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}
