package apiconnect

import (
	"context"
	"net/http"

	"connectrpc.com/connect"

	"github.com/mmynk/tripsplit/pkg/api"
)

// InventoryServiceName is the fully-qualified name of the InventoryService service.
const InventoryServiceName = "tripsplit.v1.InventoryService"

const (
	InventoryServiceAddItemProcedure        = "/tripsplit.v1.InventoryService/AddItem"
	InventoryServiceUpdateItemProcedure     = "/tripsplit.v1.InventoryService/UpdateItem"
	InventoryServiceMarkBoughtProcedure     = "/tripsplit.v1.InventoryService/MarkBought"
	InventoryServiceUnmarkBoughtProcedure   = "/tripsplit.v1.InventoryService/UnmarkBought"
	InventoryServiceDeleteItemProcedure     = "/tripsplit.v1.InventoryService/DeleteItem"
	InventoryServiceListItemsProcedure      = "/tripsplit.v1.InventoryService/ListItems"
	InventoryServiceWatchInventoryProcedure = "/tripsplit.v1.InventoryService/WatchInventory"
)

// InventoryServiceClient is a client for the tripsplit.v1.InventoryService service.
type InventoryServiceClient interface {
	AddItem(context.Context, *connect.Request[api.AddItemRequest]) (*connect.Response[api.AddItemResponse], error)
	UpdateItem(context.Context, *connect.Request[api.UpdateItemRequest]) (*connect.Response[api.UpdateItemResponse], error)
	MarkBought(context.Context, *connect.Request[api.MarkBoughtRequest]) (*connect.Response[api.MarkBoughtResponse], error)
	UnmarkBought(context.Context, *connect.Request[api.UnmarkBoughtRequest]) (*connect.Response[api.UnmarkBoughtResponse], error)
	DeleteItem(context.Context, *connect.Request[api.DeleteItemRequest]) (*connect.Response[api.DeleteItemResponse], error)
	ListItems(context.Context, *connect.Request[api.ListItemsRequest]) (*connect.Response[api.ListItemsResponse], error)
	WatchInventory(context.Context, *connect.Request[api.WatchInventoryRequest]) (*connect.ServerStreamForClient[api.ListItemsResponse], error)
}

// NewInventoryServiceClient constructs a client for the tripsplit.v1.InventoryService service.
func NewInventoryServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) InventoryServiceClient {
	opts = clientOptions(opts)
	return &inventoryServiceClient{
		addItem: connect.NewClient[api.AddItemRequest, api.AddItemResponse](
			httpClient, baseURL+InventoryServiceAddItemProcedure, opts...,
		),
		updateItem: connect.NewClient[api.UpdateItemRequest, api.UpdateItemResponse](
			httpClient, baseURL+InventoryServiceUpdateItemProcedure, opts...,
		),
		markBought: connect.NewClient[api.MarkBoughtRequest, api.MarkBoughtResponse](
			httpClient, baseURL+InventoryServiceMarkBoughtProcedure, opts...,
		),
		unmarkBought: connect.NewClient[api.UnmarkBoughtRequest, api.UnmarkBoughtResponse](
			httpClient, baseURL+InventoryServiceUnmarkBoughtProcedure, opts...,
		),
		deleteItem: connect.NewClient[api.DeleteItemRequest, api.DeleteItemResponse](
			httpClient, baseURL+InventoryServiceDeleteItemProcedure, opts...,
		),
		listItems: connect.NewClient[api.ListItemsRequest, api.ListItemsResponse](
			httpClient, baseURL+InventoryServiceListItemsProcedure, opts...,
		),
		watchInventory: connect.NewClient[api.WatchInventoryRequest, api.ListItemsResponse](
			httpClient, baseURL+InventoryServiceWatchInventoryProcedure, opts...,
		),
	}
}

type inventoryServiceClient struct {
	addItem        *connect.Client[api.AddItemRequest, api.AddItemResponse]
	updateItem     *connect.Client[api.UpdateItemRequest, api.UpdateItemResponse]
	markBought     *connect.Client[api.MarkBoughtRequest, api.MarkBoughtResponse]
	unmarkBought   *connect.Client[api.UnmarkBoughtRequest, api.UnmarkBoughtResponse]
	deleteItem     *connect.Client[api.DeleteItemRequest, api.DeleteItemResponse]
	listItems      *connect.Client[api.ListItemsRequest, api.ListItemsResponse]
	watchInventory *connect.Client[api.WatchInventoryRequest, api.ListItemsResponse]
}

func (c *inventoryServiceClient) AddItem(ctx context.Context, req *connect.Request[api.AddItemRequest]) (*connect.Response[api.AddItemResponse], error) {
	return c.addItem.CallUnary(ctx, req)
}

func (c *inventoryServiceClient) UpdateItem(ctx context.Context, req *connect.Request[api.UpdateItemRequest]) (*connect.Response[api.UpdateItemResponse], error) {
	return c.updateItem.CallUnary(ctx, req)
}

func (c *inventoryServiceClient) MarkBought(ctx context.Context, req *connect.Request[api.MarkBoughtRequest]) (*connect.Response[api.MarkBoughtResponse], error) {
	return c.markBought.CallUnary(ctx, req)
}

func (c *inventoryServiceClient) UnmarkBought(ctx context.Context, req *connect.Request[api.UnmarkBoughtRequest]) (*connect.Response[api.UnmarkBoughtResponse], error) {
	return c.unmarkBought.CallUnary(ctx, req)
}

func (c *inventoryServiceClient) DeleteItem(ctx context.Context, req *connect.Request[api.DeleteItemRequest]) (*connect.Response[api.DeleteItemResponse], error) {
	return c.deleteItem.CallUnary(ctx, req)
}

func (c *inventoryServiceClient) ListItems(ctx context.Context, req *connect.Request[api.ListItemsRequest]) (*connect.Response[api.ListItemsResponse], error) {
	return c.listItems.CallUnary(ctx, req)
}

func (c *inventoryServiceClient) WatchInventory(ctx context.Context, req *connect.Request[api.WatchInventoryRequest]) (*connect.ServerStreamForClient[api.ListItemsResponse], error) {
	return c.watchInventory.CallServerStream(ctx, req)
}

// InventoryServiceHandler is an implementation of the tripsplit.v1.InventoryService service.
type InventoryServiceHandler interface {
	AddItem(context.Context, *connect.Request[api.AddItemRequest]) (*connect.Response[api.AddItemResponse], error)
	UpdateItem(context.Context, *connect.Request[api.UpdateItemRequest]) (*connect.Response[api.UpdateItemResponse], error)
	MarkBought(context.Context, *connect.Request[api.MarkBoughtRequest]) (*connect.Response[api.MarkBoughtResponse], error)
	UnmarkBought(context.Context, *connect.Request[api.UnmarkBoughtRequest]) (*connect.Response[api.UnmarkBoughtResponse], error)
	DeleteItem(context.Context, *connect.Request[api.DeleteItemRequest]) (*connect.Response[api.DeleteItemResponse], error)
	ListItems(context.Context, *connect.Request[api.ListItemsRequest]) (*connect.Response[api.ListItemsResponse], error)
	WatchInventory(context.Context, *connect.Request[api.WatchInventoryRequest], *connect.ServerStream[api.ListItemsResponse]) error
}

// NewInventoryServiceHandler builds an HTTP handler from the service
// implementation. It returns the path on which to mount the handler.
func NewInventoryServiceHandler(svc InventoryServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	addItem := connect.NewUnaryHandler(InventoryServiceAddItemProcedure, svc.AddItem, opts...)
	updateItem := connect.NewUnaryHandler(InventoryServiceUpdateItemProcedure, svc.UpdateItem, opts...)
	markBought := connect.NewUnaryHandler(InventoryServiceMarkBoughtProcedure, svc.MarkBought, opts...)
	unmarkBought := connect.NewUnaryHandler(InventoryServiceUnmarkBoughtProcedure, svc.UnmarkBought, opts...)
	deleteItem := connect.NewUnaryHandler(InventoryServiceDeleteItemProcedure, svc.DeleteItem, opts...)
	listItems := connect.NewUnaryHandler(InventoryServiceListItemsProcedure, svc.ListItems, opts...)
	watchInventory := connect.NewServerStreamHandler(InventoryServiceWatchInventoryProcedure, svc.WatchInventory, opts...)

	return "/" + InventoryServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case InventoryServiceAddItemProcedure:
			addItem.ServeHTTP(w, r)
		case InventoryServiceUpdateItemProcedure:
			updateItem.ServeHTTP(w, r)
		case InventoryServiceMarkBoughtProcedure:
			markBought.ServeHTTP(w, r)
		case InventoryServiceUnmarkBoughtProcedure:
			unmarkBought.ServeHTTP(w, r)
		case InventoryServiceDeleteItemProcedure:
			deleteItem.ServeHTTP(w, r)
		case InventoryServiceListItemsProcedure:
			listItems.ServeHTTP(w, r)
		case InventoryServiceWatchInventoryProcedure:
			watchInventory.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}
