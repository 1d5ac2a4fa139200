package apiconnect

import (
	"context"
	"net/http"

	"connectrpc.com/connect"

	"github.com/mmynk/tripsplit/pkg/api"
)

// ExpenseServiceName is the fully-qualified name of the ExpenseService service.
const ExpenseServiceName = "tripsplit.v1.ExpenseService"

const (
	ExpenseServiceAddExpenseProcedure     = "/tripsplit.v1.ExpenseService/AddExpense"
	ExpenseServiceUpdateExpenseProcedure  = "/tripsplit.v1.ExpenseService/UpdateExpense"
	ExpenseServiceDeleteExpenseProcedure  = "/tripsplit.v1.ExpenseService/DeleteExpense"
	ExpenseServiceDeleteExpensesProcedure = "/tripsplit.v1.ExpenseService/DeleteExpenses"
	ExpenseServiceListExpensesProcedure   = "/tripsplit.v1.ExpenseService/ListExpenses"
	ExpenseServiceWatchExpensesProcedure  = "/tripsplit.v1.ExpenseService/WatchExpenses"
)

// ExpenseServiceClient is a client for the tripsplit.v1.ExpenseService service.
type ExpenseServiceClient interface {
	AddExpense(context.Context, *connect.Request[api.AddExpenseRequest]) (*connect.Response[api.AddExpenseResponse], error)
	UpdateExpense(context.Context, *connect.Request[api.UpdateExpenseRequest]) (*connect.Response[api.UpdateExpenseResponse], error)
	DeleteExpense(context.Context, *connect.Request[api.DeleteExpenseRequest]) (*connect.Response[api.DeleteExpenseResponse], error)
	DeleteExpenses(context.Context, *connect.Request[api.DeleteExpensesRequest]) (*connect.Response[api.DeleteExpensesResponse], error)
	ListExpenses(context.Context, *connect.Request[api.ListExpensesRequest]) (*connect.Response[api.ListExpensesResponse], error)
	WatchExpenses(context.Context, *connect.Request[api.WatchExpensesRequest]) (*connect.ServerStreamForClient[api.ListExpensesResponse], error)
}

// NewExpenseServiceClient constructs a client for the tripsplit.v1.ExpenseService service.
func NewExpenseServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) ExpenseServiceClient {
	opts = clientOptions(opts)
	return &expenseServiceClient{
		addExpense: connect.NewClient[api.AddExpenseRequest, api.AddExpenseResponse](
			httpClient, baseURL+ExpenseServiceAddExpenseProcedure, opts...,
		),
		updateExpense: connect.NewClient[api.UpdateExpenseRequest, api.UpdateExpenseResponse](
			httpClient, baseURL+ExpenseServiceUpdateExpenseProcedure, opts...,
		),
		deleteExpense: connect.NewClient[api.DeleteExpenseRequest, api.DeleteExpenseResponse](
			httpClient, baseURL+ExpenseServiceDeleteExpenseProcedure, opts...,
		),
		deleteExpenses: connect.NewClient[api.DeleteExpensesRequest, api.DeleteExpensesResponse](
			httpClient, baseURL+ExpenseServiceDeleteExpensesProcedure, opts...,
		),
		listExpenses: connect.NewClient[api.ListExpensesRequest, api.ListExpensesResponse](
			httpClient, baseURL+ExpenseServiceListExpensesProcedure, opts...,
		),
		watchExpenses: connect.NewClient[api.WatchExpensesRequest, api.ListExpensesResponse](
			httpClient, baseURL+ExpenseServiceWatchExpensesProcedure, opts...,
		),
	}
}

type expenseServiceClient struct {
	addExpense     *connect.Client[api.AddExpenseRequest, api.AddExpenseResponse]
	updateExpense  *connect.Client[api.UpdateExpenseRequest, api.UpdateExpenseResponse]
	deleteExpense  *connect.Client[api.DeleteExpenseRequest, api.DeleteExpenseResponse]
	deleteExpenses *connect.Client[api.DeleteExpensesRequest, api.DeleteExpensesResponse]
	listExpenses   *connect.Client[api.ListExpensesRequest, api.ListExpensesResponse]
	watchExpenses  *connect.Client[api.WatchExpensesRequest, api.ListExpensesResponse]
}

func (c *expenseServiceClient) AddExpense(ctx context.Context, req *connect.Request[api.AddExpenseRequest]) (*connect.Response[api.AddExpenseResponse], error) {
	return c.addExpense.CallUnary(ctx, req)
}

func (c *expenseServiceClient) UpdateExpense(ctx context.Context, req *connect.Request[api.UpdateExpenseRequest]) (*connect.Response[api.UpdateExpenseResponse], error) {
	return c.updateExpense.CallUnary(ctx, req)
}

func (c *expenseServiceClient) DeleteExpense(ctx context.Context, req *connect.Request[api.DeleteExpenseRequest]) (*connect.Response[api.DeleteExpenseResponse], error) {
	return c.deleteExpense.CallUnary(ctx, req)
}

func (c *expenseServiceClient) DeleteExpenses(ctx context.Context, req *connect.Request[api.DeleteExpensesRequest]) (*connect.Response[api.DeleteExpensesResponse], error) {
	return c.deleteExpenses.CallUnary(ctx, req)
}

func (c *expenseServiceClient) ListExpenses(ctx context.Context, req *connect.Request[api.ListExpensesRequest]) (*connect.Response[api.ListExpensesResponse], error) {
	return c.listExpenses.CallUnary(ctx, req)
}

func (c *expenseServiceClient) WatchExpenses(ctx context.Context, req *connect.Request[api.WatchExpensesRequest]) (*connect.ServerStreamForClient[api.ListExpensesResponse], error) {
	return c.watchExpenses.CallServerStream(ctx, req)
}

// ExpenseServiceHandler is an implementation of the tripsplit.v1.ExpenseService service.
type ExpenseServiceHandler interface {
	AddExpense(context.Context, *connect.Request[api.AddExpenseRequest]) (*connect.Response[api.AddExpenseResponse], error)
	UpdateExpense(context.Context, *connect.Request[api.UpdateExpenseRequest]) (*connect.Response[api.UpdateExpenseResponse], error)
	DeleteExpense(context.Context, *connect.Request[api.DeleteExpenseRequest]) (*connect.Response[api.DeleteExpenseResponse], error)
	DeleteExpenses(context.Context, *connect.Request[api.DeleteExpensesRequest]) (*connect.Response[api.DeleteExpensesResponse], error)
	ListExpenses(context.Context, *connect.Request[api.ListExpensesRequest]) (*connect.Response[api.ListExpensesResponse], error)
	WatchExpenses(context.Context, *connect.Request[api.WatchExpensesRequest], *connect.ServerStream[api.ListExpensesResponse]) error
}

// NewExpenseServiceHandler builds an HTTP handler from the service
// implementation. It returns the path on which to mount the handler.
func NewExpenseServiceHandler(svc ExpenseServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	addExpense := connect.NewUnaryHandler(ExpenseServiceAddExpenseProcedure, svc.AddExpense, opts...)
	updateExpense := connect.NewUnaryHandler(ExpenseServiceUpdateExpenseProcedure, svc.UpdateExpense, opts...)
	deleteExpense := connect.NewUnaryHandler(ExpenseServiceDeleteExpenseProcedure, svc.DeleteExpense, opts...)
	deleteExpenses := connect.NewUnaryHandler(ExpenseServiceDeleteExpensesProcedure, svc.DeleteExpenses, opts...)
	listExpenses := connect.NewUnaryHandler(ExpenseServiceListExpensesProcedure, svc.ListExpenses, opts...)
	watchExpenses := connect.NewServerStreamHandler(ExpenseServiceWatchExpensesProcedure, svc.WatchExpenses, opts...)

	return "/" + ExpenseServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case ExpenseServiceAddExpenseProcedure:
			addExpense.ServeHTTP(w, r)
		case ExpenseServiceUpdateExpenseProcedure:
			updateExpense.ServeHTTP(w, r)
		case ExpenseServiceDeleteExpenseProcedure:
			deleteExpense.ServeHTTP(w, r)
		case ExpenseServiceDeleteExpensesProcedure:
			deleteExpenses.ServeHTTP(w, r)
		case ExpenseServiceListExpensesProcedure:
			listExpenses.ServeHTTP(w, r)
		case ExpenseServiceWatchExpensesProcedure:
			watchExpenses.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}
