package scheduler

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/mmynk/tripsplit/internal/calculator"
	"github.com/mmynk/tripsplit/internal/models"
)

type fakeLister struct {
	expenses []models.Expense
	err      error
}

func (f fakeLister) ListExpenses(ctx context.Context) ([]models.Expense, error) {
	return f.expenses, f.err
}

func newTestScheduler(t *testing.T, store ExpenseLister, roster models.Roster) (*Scheduler, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	return New("0 20 * * *", store, roster, nil, logger), &buf
}

func TestDigest(t *testing.T) {
	store := fakeLister{expenses: []models.Expense{
		{ID: "a", Title: "Villa", Amount: 400000, Payer: "Chris", Category: models.CategoryAlat},
		{ID: "b", Title: "Makan", Amount: 100000, Payer: "Iwa", Category: models.CategoryMakanan},
	}}
	s, buf := newTestScheduler(t, store, models.NewRoster("Iwa", "Caca", "Ciko", "Chris"))

	result, err := s.Digest(context.Background())
	if err != nil {
		t.Fatalf("Digest failed: %v", err)
	}
	if result.TotalExpense != 500000 || len(result.Receivables) != 2 {
		t.Errorf("unexpected result: %+v", result)
	}

	out := buf.String()
	for _, want := range []string{"Rp 500,000", "Rp 125,000", "payer=Chris", "Rp 100,000"} {
		if !strings.Contains(out, want) {
			t.Errorf("digest log missing %q:\n%s", want, out)
		}
	}
}

func TestDigest_Errors(t *testing.T) {
	t.Run("store failure", func(t *testing.T) {
		s, _ := newTestScheduler(t, fakeLister{err: errors.New("boom")}, models.DefaultRoster())
		if _, err := s.Digest(context.Background()); err == nil {
			t.Error("expected an error")
		}
	})

	t.Run("empty roster", func(t *testing.T) {
		s, _ := newTestScheduler(t, fakeLister{}, models.NewRoster())
		if _, err := s.Digest(context.Background()); !errors.Is(err, calculator.ErrDegenerateInput) {
			t.Errorf("expected ErrDegenerateInput, got %v", err)
		}
	})
}

func TestStart(t *testing.T) {
	s := New("not a cron", fakeLister{}, models.DefaultRoster(), nil, nil)
	if err := s.Start(); err == nil {
		t.Fatal("expected an invalid schedule to be rejected")
	}

	s = New("@every 1h", fakeLister{}, models.DefaultRoster(), nil, nil)
	if err := s.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	s.Stop()
}
