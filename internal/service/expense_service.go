package service

import (
	"context"
	"log/slog"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/tripsplit/internal/archive"
	"github.com/mmynk/tripsplit/internal/calculator"
	"github.com/mmynk/tripsplit/internal/middleware"
	"github.com/mmynk/tripsplit/internal/models"
	"github.com/mmynk/tripsplit/internal/storage"
	"github.com/mmynk/tripsplit/pkg/api"
)

// ExpenseService implements the Connect ExpenseService.
type ExpenseService struct {
	store    storage.Store
	archiver *archive.Archiver
}

// NewExpenseService creates a new ExpenseService with the given storage backend.
func NewExpenseService(store storage.Store, archiver *archive.Archiver) *ExpenseService {
	return &ExpenseService{store: store, archiver: archiver}
}

// AddExpense records a new expense. The payer defaults to the session
// participant.
func (s *ExpenseService) AddExpense(ctx context.Context, req *connect.Request[api.AddExpenseRequest]) (*connect.Response[api.AddExpenseResponse], error) {
	slog.Info("AddExpense request received", "title", req.Msg.Title, "payer", req.Msg.Payer)

	if req.Msg.Amount == nil {
		return nil, toConnectError("AddExpense", models.Invalid("amount", "is required"))
	}
	category, err := models.ParseCategory(req.Msg.Category)
	if err != nil {
		return nil, toConnectError("AddExpense", err)
	}

	payer := strings.TrimSpace(req.Msg.Payer)
	if payer == "" {
		payer = middleware.GetParticipant(ctx)
	}

	expense := &models.Expense{
		Title:    strings.TrimSpace(req.Msg.Title),
		Amount:   *req.Msg.Amount,
		Payer:    payer,
		Category: category,
	}
	if err := expense.Validate(); err != nil {
		return nil, toConnectError("AddExpense", err)
	}

	if err := s.store.CreateExpense(ctx, expense); err != nil {
		return nil, toConnectError("AddExpense", err)
	}

	slog.Info("Expense added", "expense_id", expense.ID, "amount", expense.Amount, "category", expense.Category)
	return connect.NewResponse(&api.AddExpenseResponse{Expense: toAPIExpense(*expense)}), nil
}

// UpdateExpense edits the title, amount, payer or category of an expense.
func (s *ExpenseService) UpdateExpense(ctx context.Context, req *connect.Request[api.UpdateExpenseRequest]) (*connect.Response[api.UpdateExpenseResponse], error) {
	slog.Info("UpdateExpense request received", "expense_id", req.Msg.ID)

	if req.Msg.ID == "" {
		return nil, toConnectError("UpdateExpense", models.Invalid("id", "is required"))
	}

	patch := models.ExpensePatch{
		Title:  trimmed(req.Msg.Title),
		Amount: req.Msg.Amount,
		Payer:  trimmed(req.Msg.Payer),
	}
	if req.Msg.Category != nil {
		category, err := models.ParseCategory(*req.Msg.Category)
		if err != nil {
			return nil, toConnectError("UpdateExpense", err)
		}
		patch.Category = &category
	}

	existing, err := s.store.GetExpense(ctx, req.Msg.ID)
	if err != nil {
		return nil, toConnectError("UpdateExpense", err)
	}

	updated := patch.Apply(*existing)
	if err := updated.Validate(); err != nil {
		return nil, toConnectError("UpdateExpense", err)
	}

	if err := s.store.UpdateExpense(ctx, &updated); err != nil {
		return nil, toConnectError("UpdateExpense", err)
	}

	return connect.NewResponse(&api.UpdateExpenseResponse{Expense: toAPIExpense(updated)}), nil
}

// DeleteExpense removes a single expense.
func (s *ExpenseService) DeleteExpense(ctx context.Context, req *connect.Request[api.DeleteExpenseRequest]) (*connect.Response[api.DeleteExpenseResponse], error) {
	slog.Info("DeleteExpense request received", "expense_id", req.Msg.ID)

	if req.Msg.ID == "" {
		return nil, toConnectError("DeleteExpense", models.Invalid("id", "is required"))
	}
	if err := s.store.DeleteExpense(ctx, req.Msg.ID); err != nil {
		return nil, toConnectError("DeleteExpense", err)
	}

	return connect.NewResponse(&api.DeleteExpenseResponse{}), nil
}

// DeleteExpenses removes several expenses concurrently, reporting every
// failure. Clients use it to finish a partially failed settlement.
func (s *ExpenseService) DeleteExpenses(ctx context.Context, req *connect.Request[api.DeleteExpensesRequest]) (*connect.Response[api.DeleteExpensesResponse], error) {
	slog.Info("DeleteExpenses request received", "count", len(req.Msg.IDs))

	if len(req.Msg.IDs) == 0 {
		return nil, toConnectError("DeleteExpenses", models.Invalid("ids", "at least one id is required"))
	}
	if err := s.archiver.DeleteAll(ctx, req.Msg.IDs); err != nil {
		return nil, toConnectError("DeleteExpenses", err)
	}

	return connect.NewResponse(&api.DeleteExpensesResponse{Deleted: len(req.Msg.IDs)}), nil
}

// ListExpenses returns live expenses, newest first, optionally limited to
// one category.
func (s *ExpenseService) ListExpenses(ctx context.Context, req *connect.Request[api.ListExpensesRequest]) (*connect.Response[api.ListExpensesResponse], error) {
	resp, err := s.listExpenses(ctx, req.Msg.Category)
	if err != nil {
		return nil, toConnectError("ListExpenses", err)
	}
	return connect.NewResponse(resp), nil
}

// WatchExpenses streams the expense list on start and after every change.
func (s *ExpenseService) WatchExpenses(ctx context.Context, req *connect.Request[api.WatchExpensesRequest], stream *connect.ServerStream[api.ListExpensesResponse]) error {
	slog.Info("WatchExpenses started", "participant", middleware.GetParticipant(ctx), "category", req.Msg.Category)

	// Reject a bad filter before streaming anything.
	if req.Msg.Category != "" {
		if _, err := models.ParseCategory(req.Msg.Category); err != nil {
			return toConnectError("WatchExpenses", err)
		}
	}

	return watch(ctx, s.store, storage.CollectionExpenses, "WatchExpenses",
		func(ctx context.Context) (*api.ListExpensesResponse, error) {
			return s.listExpenses(ctx, req.Msg.Category)
		},
		stream.Send,
	)
}

func (s *ExpenseService) listExpenses(ctx context.Context, category string) (*api.ListExpensesResponse, error) {
	expenses, err := s.store.ListExpenses(ctx)
	if err != nil {
		return nil, err
	}
	totals := calculator.CategoryTotals(expenses)

	if category != "" {
		c, err := models.ParseCategory(category)
		if err != nil {
			return nil, err
		}
		expenses = calculator.FilterByCategory(expenses, c)
	}

	return &api.ListExpensesResponse{
		Expenses:       toAPIExpenses(expenses),
		Total:          models.SumAmounts(expenses),
		CategoryTotals: toAPICategoryTotals(totals),
	}, nil
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	return &t
}
