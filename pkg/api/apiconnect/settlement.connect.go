package apiconnect

import (
	"context"
	"net/http"

	"connectrpc.com/connect"

	"github.com/mmynk/tripsplit/pkg/api"
)

// SettlementServiceName is the fully-qualified name of the SettlementService service.
const SettlementServiceName = "tripsplit.v1.SettlementService"

const (
	SettlementServicePreviewSettlementProcedure = "/tripsplit.v1.SettlementService/PreviewSettlement"
	SettlementServiceSettleUpProcedure          = "/tripsplit.v1.SettlementService/SettleUp"
	SettlementServiceListSettlementsProcedure   = "/tripsplit.v1.SettlementService/ListSettlements"
	SettlementServiceGetSettlementProcedure     = "/tripsplit.v1.SettlementService/GetSettlement"
	SettlementServiceWatchSettlementsProcedure  = "/tripsplit.v1.SettlementService/WatchSettlements"
)

// SettlementServiceClient is a client for the tripsplit.v1.SettlementService service.
type SettlementServiceClient interface {
	PreviewSettlement(context.Context, *connect.Request[api.PreviewSettlementRequest]) (*connect.Response[api.PreviewSettlementResponse], error)
	SettleUp(context.Context, *connect.Request[api.SettleUpRequest]) (*connect.Response[api.SettleUpResponse], error)
	ListSettlements(context.Context, *connect.Request[api.ListSettlementsRequest]) (*connect.Response[api.ListSettlementsResponse], error)
	GetSettlement(context.Context, *connect.Request[api.GetSettlementRequest]) (*connect.Response[api.GetSettlementResponse], error)
	WatchSettlements(context.Context, *connect.Request[api.WatchSettlementsRequest]) (*connect.ServerStreamForClient[api.ListSettlementsResponse], error)
}

// NewSettlementServiceClient constructs a client for the tripsplit.v1.SettlementService service.
func NewSettlementServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) SettlementServiceClient {
	opts = clientOptions(opts)
	return &settlementServiceClient{
		previewSettlement: connect.NewClient[api.PreviewSettlementRequest, api.PreviewSettlementResponse](
			httpClient, baseURL+SettlementServicePreviewSettlementProcedure, opts...,
		),
		settleUp: connect.NewClient[api.SettleUpRequest, api.SettleUpResponse](
			httpClient, baseURL+SettlementServiceSettleUpProcedure, opts...,
		),
		listSettlements: connect.NewClient[api.ListSettlementsRequest, api.ListSettlementsResponse](
			httpClient, baseURL+SettlementServiceListSettlementsProcedure, opts...,
		),
		getSettlement: connect.NewClient[api.GetSettlementRequest, api.GetSettlementResponse](
			httpClient, baseURL+SettlementServiceGetSettlementProcedure, opts...,
		),
		watchSettlements: connect.NewClient[api.WatchSettlementsRequest, api.ListSettlementsResponse](
			httpClient, baseURL+SettlementServiceWatchSettlementsProcedure, opts...,
		),
	}
}

type settlementServiceClient struct {
	previewSettlement *connect.Client[api.PreviewSettlementRequest, api.PreviewSettlementResponse]
	settleUp          *connect.Client[api.SettleUpRequest, api.SettleUpResponse]
	listSettlements   *connect.Client[api.ListSettlementsRequest, api.ListSettlementsResponse]
	getSettlement     *connect.Client[api.GetSettlementRequest, api.GetSettlementResponse]
	watchSettlements  *connect.Client[api.WatchSettlementsRequest, api.ListSettlementsResponse]
}

func (c *settlementServiceClient) PreviewSettlement(ctx context.Context, req *connect.Request[api.PreviewSettlementRequest]) (*connect.Response[api.PreviewSettlementResponse], error) {
	return c.previewSettlement.CallUnary(ctx, req)
}

func (c *settlementServiceClient) SettleUp(ctx context.Context, req *connect.Request[api.SettleUpRequest]) (*connect.Response[api.SettleUpResponse], error) {
	return c.settleUp.CallUnary(ctx, req)
}

func (c *settlementServiceClient) ListSettlements(ctx context.Context, req *connect.Request[api.ListSettlementsRequest]) (*connect.Response[api.ListSettlementsResponse], error) {
	return c.listSettlements.CallUnary(ctx, req)
}

func (c *settlementServiceClient) GetSettlement(ctx context.Context, req *connect.Request[api.GetSettlementRequest]) (*connect.Response[api.GetSettlementResponse], error) {
	return c.getSettlement.CallUnary(ctx, req)
}

func (c *settlementServiceClient) WatchSettlements(ctx context.Context, req *connect.Request[api.WatchSettlementsRequest]) (*connect.ServerStreamForClient[api.ListSettlementsResponse], error) {
	return c.watchSettlements.CallServerStream(ctx, req)
}

// SettlementServiceHandler is an implementation of the tripsplit.v1.SettlementService service.
type SettlementServiceHandler interface {
	PreviewSettlement(context.Context, *connect.Request[api.PreviewSettlementRequest]) (*connect.Response[api.PreviewSettlementResponse], error)
	SettleUp(context.Context, *connect.Request[api.SettleUpRequest]) (*connect.Response[api.SettleUpResponse], error)
	ListSettlements(context.Context, *connect.Request[api.ListSettlementsRequest]) (*connect.Response[api.ListSettlementsResponse], error)
	GetSettlement(context.Context, *connect.Request[api.GetSettlementRequest]) (*connect.Response[api.GetSettlementResponse], error)
	WatchSettlements(context.Context, *connect.Request[api.WatchSettlementsRequest], *connect.ServerStream[api.ListSettlementsResponse]) error
}

// NewSettlementServiceHandler builds an HTTP handler from the service
// implementation. It returns the path on which to mount the handler.
func NewSettlementServiceHandler(svc SettlementServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	previewSettlement := connect.NewUnaryHandler(SettlementServicePreviewSettlementProcedure, svc.PreviewSettlement, opts...)
	settleUp := connect.NewUnaryHandler(SettlementServiceSettleUpProcedure, svc.SettleUp, opts...)
	listSettlements := connect.NewUnaryHandler(SettlementServiceListSettlementsProcedure, svc.ListSettlements, opts...)
	getSettlement := connect.NewUnaryHandler(SettlementServiceGetSettlementProcedure, svc.GetSettlement, opts...)
	watchSettlements := connect.NewServerStreamHandler(SettlementServiceWatchSettlementsProcedure, svc.WatchSettlements, opts...)

	return "/" + SettlementServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case SettlementServicePreviewSettlementProcedure:
			previewSettlement.ServeHTTP(w, r)
		case SettlementServiceSettleUpProcedure:
			settleUp.ServeHTTP(w, r)
		case SettlementServiceListSettlementsProcedure:
			listSettlements.ServeHTTP(w, r)
		case SettlementServiceGetSettlementProcedure:
			getSettlement.ServeHTTP(w, r)
		case SettlementServiceWatchSettlementsProcedure:
			watchSettlements.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}
