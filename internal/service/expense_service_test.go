package service

import (
	"context"
	"testing"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/tripsplit/internal/models"
	"github.com/mmynk/tripsplit/pkg/api"
)

func TestAddExpense(t *testing.T) {
	ts := setupTestServer(t)
	ctx := context.Background()

	t.Run("valid", func(t *testing.T) {
		e := ts.addExpense(t, " Grab to Hotel ", 85000, "Caca", models.CategoryTransport)
		if e.ID == "" || e.Date.IsZero() {
			t.Errorf("expected ID and date to be set: %+v", e)
		}
		if e.Title != "Grab to Hotel" || e.Amount != 85000 || e.Payer != "Caca" || e.Category != "transport" {
			t.Errorf("unexpected expense: %+v", e)
		}
	})

	t.Run("payer defaults to the session participant", func(t *testing.T) {
		e := ts.addExpense(t, "Es teh", 5000, "", models.CategoryMakanan)
		if e.Payer != "Iwa" {
			t.Errorf("Payer = %q, want Iwa", e.Payer)
		}
	})

	t.Run("payer outside the roster is accepted", func(t *testing.T) {
		e := ts.addExpense(t, "Sewa motor", 150000, "Budi", models.CategoryTransport)
		if e.Payer != "Budi" {
			t.Errorf("Payer = %q, want Budi", e.Payer)
		}
	})

	tests := []struct {
		name string
		req  *api.AddExpenseRequest
	}{
		{"missing title", &api.AddExpenseRequest{Amount: amount(1000), Category: "alat"}},
		{"missing amount", &api.AddExpenseRequest{Title: "Tenda", Category: "alat"}},
		{"negative amount", &api.AddExpenseRequest{Title: "Tenda", Amount: amount(-1), Category: "alat"}},
		{"bad category", &api.AddExpenseRequest{Title: "Tenda", Amount: amount(1000), Category: "hotel"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ts.expenses.AddExpense(ctx, connect.NewRequest(tt.req))
			assertCode(t, err, connect.CodeInvalidArgument)
		})
	}

	t.Run("rejected input writes nothing", func(t *testing.T) {
		resp, err := ts.expenses.ListExpenses(ctx, connect.NewRequest(&api.ListExpensesRequest{}))
		if err != nil {
			t.Fatalf("ListExpenses failed: %v", err)
		}
		if len(resp.Msg.Expenses) != 3 {
			t.Errorf("expected 3 expenses, got %d", len(resp.Msg.Expenses))
		}
	})
}

func TestUpdateExpense(t *testing.T) {
	ts := setupTestServer(t)
	ctx := context.Background()
	e := ts.addExpense(t, "Bensin", 100000, "Ciko", models.CategoryTransport)

	resp, err := ts.expenses.UpdateExpense(ctx, connect.NewRequest(&api.UpdateExpenseRequest{
		ID:       e.ID,
		Amount:   amount(120000),
		Category: str("ALAT"),
	}))
	if err != nil {
		t.Fatalf("UpdateExpense failed: %v", err)
	}
	got := resp.Msg.Expense
	if got.Amount != 120000 || got.Category != "alat" || got.Title != "Bensin" || got.Payer != "Ciko" {
		t.Errorf("unexpected expense: %+v", got)
	}

	t.Run("blank payer is rejected", func(t *testing.T) {
		_, err := ts.expenses.UpdateExpense(ctx, connect.NewRequest(&api.UpdateExpenseRequest{ID: e.ID, Payer: str(" ")}))
		assertCode(t, err, connect.CodeInvalidArgument)
	})

	t.Run("not found", func(t *testing.T) {
		_, err := ts.expenses.UpdateExpense(ctx, connect.NewRequest(&api.UpdateExpenseRequest{ID: "nope", Title: str("x")}))
		assertCode(t, err, connect.CodeNotFound)
	})
}

func TestDeleteExpense(t *testing.T) {
	ts := setupTestServer(t)
	ctx := context.Background()
	e := ts.addExpense(t, "Es teh", 5000, "Iwa", models.CategoryMakanan)

	if _, err := ts.expenses.DeleteExpense(ctx, connect.NewRequest(&api.DeleteExpenseRequest{ID: e.ID})); err != nil {
		t.Fatalf("DeleteExpense failed: %v", err)
	}

	_, err := ts.expenses.DeleteExpense(ctx, connect.NewRequest(&api.DeleteExpenseRequest{ID: e.ID}))
	assertCode(t, err, connect.CodeNotFound)
}

func TestDeleteExpenses(t *testing.T) {
	store := &flakyStore{Store: newSQLiteStore(t), failDelete: map[string]bool{}}
	ts := setupTestServerWithStore(t, store)
	ctx := context.Background()

	a := ts.addExpense(t, "Villa", 400000, "Iwa", models.CategoryAlat)
	b := ts.addExpense(t, "Makan", 100000, "Caca", models.CategoryMakanan)
	store.failDelete[b.ID] = true

	_, err := ts.expenses.DeleteExpenses(ctx, connect.NewRequest(&api.DeleteExpensesRequest{IDs: []string{a.ID, b.ID}}))
	assertCode(t, err, connect.CodeAborted)

	settlementID, failed, ok := api.PartialFailure(err)
	if !ok || settlementID != "" || len(failed) != 1 || failed[0] != b.ID {
		t.Errorf("PartialFailure = %q, %v, %v", settlementID, failed, ok)
	}

	delete(store.failDelete, b.ID)
	resp, err := ts.expenses.DeleteExpenses(ctx, connect.NewRequest(&api.DeleteExpensesRequest{IDs: failed}))
	if err != nil {
		t.Fatalf("retry failed: %v", err)
	}
	if resp.Msg.Deleted != 1 {
		t.Errorf("Deleted = %d, want 1", resp.Msg.Deleted)
	}

	t.Run("empty request", func(t *testing.T) {
		_, err := ts.expenses.DeleteExpenses(ctx, connect.NewRequest(&api.DeleteExpensesRequest{}))
		assertCode(t, err, connect.CodeInvalidArgument)
	})
}

func TestListExpenses(t *testing.T) {
	ts := setupTestServer(t)
	ctx := context.Background()

	ts.addExpense(t, "Grab", 85000, "Iwa", models.CategoryTransport)
	ts.addExpense(t, "Tenda", 300000, "Chris", models.CategoryAlat)
	ts.addExpense(t, "Nasi goreng", 60000, "Caca", models.CategoryMakanan)
	ts.addExpense(t, "Bensin", 15000, "Ciko", models.CategoryTransport)

	t.Run("all, newest first", func(t *testing.T) {
		resp, err := ts.expenses.ListExpenses(ctx, connect.NewRequest(&api.ListExpensesRequest{}))
		if err != nil {
			t.Fatalf("ListExpenses failed: %v", err)
		}
		if len(resp.Msg.Expenses) != 4 || resp.Msg.Expenses[0].Title != "Bensin" {
			t.Errorf("unexpected expenses: %+v", resp.Msg.Expenses)
		}
		if resp.Msg.Total != 460000 {
			t.Errorf("Total = %d, want 460000", resp.Msg.Total)
		}
	})

	t.Run("by category", func(t *testing.T) {
		resp, err := ts.expenses.ListExpenses(ctx, connect.NewRequest(&api.ListExpensesRequest{Category: "transport"}))
		if err != nil {
			t.Fatalf("ListExpenses failed: %v", err)
		}
		if len(resp.Msg.Expenses) != 2 || resp.Msg.Total != 100000 {
			t.Errorf("unexpected transport list: %+v", resp.Msg)
		}
		want := map[string]int64{"transport": 100000, "alat": 300000, "makanan": 60000}
		for c, v := range want {
			if resp.Msg.CategoryTotals[c] != v {
				t.Errorf("CategoryTotals[%s] = %d, want %d", c, resp.Msg.CategoryTotals[c], v)
			}
		}
	})

	t.Run("unknown category", func(t *testing.T) {
		_, err := ts.expenses.ListExpenses(ctx, connect.NewRequest(&api.ListExpensesRequest{Category: "hotel"}))
		assertCode(t, err, connect.CodeInvalidArgument)
	})
}

func TestWatchExpenses(t *testing.T) {
	ts := setupTestServer(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	stream, err := ts.expenses.WatchExpenses(ctx, connect.NewRequest(&api.WatchExpensesRequest{}))
	if err != nil {
		t.Fatalf("WatchExpenses failed: %v", err)
	}
	defer stream.Close()

	if !stream.Receive() {
		t.Fatalf("expected initial snapshot: %v", stream.Err())
	}
	if n := len(stream.Msg().Expenses); n != 0 {
		t.Fatalf("initial snapshot has %d expenses, want 0", n)
	}

	ts.addExpense(t, "Galon", 20000, "Iwa", models.CategoryMakanan)

	if !stream.Receive() {
		t.Fatalf("expected a snapshot after the write: %v", stream.Err())
	}
	msg := stream.Msg()
	if len(msg.Expenses) != 1 || msg.Expenses[0].Title != "Galon" || msg.Total != 20000 {
		t.Errorf("unexpected snapshot: %+v", msg)
	}
}
