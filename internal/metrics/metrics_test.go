package metrics

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetrics(t *testing.T) {
	m := New()

	m.ObserveRPC("/tripsplit.v1.ExpenseService/AddExpense", "ok", 10*time.Millisecond)
	m.ObserveRPC("/tripsplit.v1.ExpenseService/AddExpense", "ok", 20*time.Millisecond)
	m.SettlementArchived(false)
	m.SettlementArchived(true)
	m.InventoryExpenseCreated()
	m.SetOutstanding(500000)

	if got := testutil.ToFloat64(m.rpcRequests.WithLabelValues("/tripsplit.v1.ExpenseService/AddExpense", "ok")); got != 2 {
		t.Errorf("rpc_requests_total = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.settlements); got != 2 {
		t.Errorf("settlements_total = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.partialArchives); got != 1 {
		t.Errorf("partial_archive_failures_total = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.bridgeExpenses); got != 1 {
		t.Errorf("inventory_expenses_total = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.outstanding); got != 500000 {
		t.Errorf("outstanding_expense_rupiah = %v, want 500000", got)
	}
}

func TestNilMetrics(t *testing.T) {
	var m *Metrics
	m.ObserveRPC("x", "ok", time.Second)
	m.SettlementArchived(true)
	m.InventoryExpenseCreated()
	m.SetOutstanding(1)
}

func TestHandler(t *testing.T) {
	m := New()
	m.SettlementArchived(false)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, _ := io.ReadAll(rec.Body)
	if !strings.Contains(string(body), "tripsplit_settlements_total 1") {
		t.Errorf("metrics output missing settlements counter:\n%s", body)
	}
}
