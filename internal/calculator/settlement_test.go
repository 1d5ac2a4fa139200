package calculator

import (
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/mmynk/tripsplit/internal/models"
)

func expense(payer string, amount int64) models.Expense {
	return models.Expense{Title: "x", Payer: payer, Amount: amount, Category: models.CategoryMakanan}
}

func TestComputeSettlement(t *testing.T) {
	tests := []struct {
		name         string
		expenses     []models.Expense
		roster       models.Roster
		wantErr      error
		validateFunc func(t *testing.T, res *Result)
	}{
		{
			name:     "gross receivables per payer",
			expenses: []models.Expense{expense("Dojeng", 5000000), expense("Iwa", 700000)},
			roster:   models.DefaultRoster(),
			validateFunc: func(t *testing.T, res *Result) {
				if res.TotalExpense != 5700000 {
					t.Errorf("TotalExpense = %d, want 5700000", res.TotalExpense)
				}
				if res.SharePerPerson != 5700000.0/7 {
					t.Errorf("SharePerPerson = %v, want %v", res.SharePerPerson, 5700000.0/7)
				}
				if len(res.Receivables) != 2 {
					t.Fatalf("expected 2 receivables, got %d", len(res.Receivables))
				}
				// Roster order: Iwa comes before Dojeng.
				if res.Receivables[0].Payer != "Iwa" || res.Receivables[1].Payer != "Dojeng" {
					t.Errorf("receivables out of roster order: %+v", res.Receivables)
				}
				if res.Receivables[1].AmountPerUser != 5000000.0/7 {
					t.Errorf("Dojeng AmountPerUser = %v", res.Receivables[1].AmountPerUser)
				}
			},
		},
		{
			name:     "participants who never paid still count",
			expenses: []models.Expense{expense("Iwa", 300000)},
			roster:   models.NewRoster("Iwa", "Caca", "Ciko"),
			validateFunc: func(t *testing.T, res *Result) {
				if res.SharePerPerson != 100000 {
					t.Errorf("SharePerPerson = %v, want 100000", res.SharePerPerson)
				}
				if res.PaidBy["Caca"] != 0 || res.PaidBy["Ciko"] != 0 {
					t.Errorf("non-payers should be present with 0: %v", res.PaidBy)
				}
				if len(res.Receivables) != 1 {
					t.Errorf("zero-paid entries must be omitted: %+v", res.Receivables)
				}
			},
		},
		{
			name:     "unknown payer accumulates without changing N",
			expenses: []models.Expense{expense("Budi", 90000), expense("Iwa", 30000), expense("Budi", 30000)},
			roster:   models.NewRoster("Iwa", "Caca", "Ciko"),
			validateFunc: func(t *testing.T, res *Result) {
				if res.Participants != 3 {
					t.Errorf("Participants = %d, want 3", res.Participants)
				}
				if res.PaidBy["Budi"] != 120000 {
					t.Errorf("PaidBy[Budi] = %d, want 120000", res.PaidBy["Budi"])
				}
				wantPayers := []string{"Iwa", "Caca", "Ciko", "Budi"}
				if !reflect.DeepEqual(res.Payers, wantPayers) {
					t.Errorf("Payers = %v, want %v", res.Payers, wantPayers)
				}
				last := res.Receivables[len(res.Receivables)-1]
				if last.Payer != "Budi" || last.AmountPerUser != 40000 {
					t.Errorf("Budi receivable = %+v", last)
				}
			},
		},
		{
			name:     "opposing debts are not netted",
			expenses: []models.Expense{expense("Iwa", 100000), expense("Caca", 100000)},
			roster:   models.NewRoster("Iwa", "Caca"),
			validateFunc: func(t *testing.T, res *Result) {
				if len(res.Receivables) != 2 {
					t.Fatalf("expected one instruction per payer, got %+v", res.Receivables)
				}
				for _, r := range res.Receivables {
					if r.AmountPerUser != 50000 {
						t.Errorf("%s AmountPerUser = %v, want 50000", r.Payer, r.AmountPerUser)
					}
				}
			},
		},
		{
			name:     "no expenses",
			expenses: nil,
			roster:   models.DefaultRoster(),
			validateFunc: func(t *testing.T, res *Result) {
				if res.TotalExpense != 0 || res.SharePerPerson != 0 {
					t.Errorf("expected zero totals, got %+v", res)
				}
				if res.Receivables == nil || len(res.Receivables) != 0 {
					t.Errorf("Receivables = %v, want empty", res.Receivables)
				}
			},
		},
		{
			name:     "zero participants is degenerate",
			expenses: []models.Expense{expense("Iwa", 1000)},
			roster:   models.NewRoster(),
			wantErr:  ErrDegenerateInput,
		},
		{
			name:     "zero participants with no expenses is still degenerate",
			expenses: nil,
			roster:   models.Roster{},
			wantErr:  ErrDegenerateInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := ComputeSettlement(tt.expenses, tt.roster)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("ComputeSettlement() error = %v, want %v", err, tt.wantErr)
				}
				if res != nil {
					t.Errorf("expected nil result on error, got %+v", res)
				}
				return
			}
			if err != nil {
				t.Fatalf("ComputeSettlement() unexpected error: %v", err)
			}
			if math.IsNaN(res.SharePerPerson) || math.IsInf(res.SharePerPerson, 0) {
				t.Fatalf("SharePerPerson = %v", res.SharePerPerson)
			}
			if tt.validateFunc != nil {
				tt.validateFunc(t, res)
			}
		})
	}
}

func TestComputeSettlement_ReceivablesSumToTotal(t *testing.T) {
	roster := models.DefaultRoster()
	expenses := []models.Expense{
		expense("Iwa", 125000), expense("Caca", 80000), expense("Iwa", 15500),
		expense("Adrian", 1), expense("Haneul", 999999), expense("Chris", 0),
	}

	res, err := ComputeSettlement(expenses, roster)
	if err != nil {
		t.Fatalf("ComputeSettlement failed: %v", err)
	}

	var sum int64
	var perUser float64
	for _, r := range res.Receivables {
		sum += r.TotalPaid
		perUser += r.AmountPerUser
	}
	if sum != res.TotalExpense {
		t.Errorf("sum of TotalPaid = %d, want %d", sum, res.TotalExpense)
	}
	if math.Abs(perUser-res.SharePerPerson) > 1e-6 {
		t.Errorf("sum of AmountPerUser = %v, want %v", perUser, res.SharePerPerson)
	}
}

func TestComputeSettlement_Idempotent(t *testing.T) {
	roster := models.NewRoster("Iwa", "Caca")
	expenses := []models.Expense{expense("Caca", 70000), expense("Budi", 10000)}
	before := models.CloneExpenses(expenses)

	first, err := ComputeSettlement(expenses, roster)
	if err != nil {
		t.Fatalf("first call failed: %v", err)
	}
	second, err := ComputeSettlement(expenses, roster)
	if err != nil {
		t.Fatalf("second call failed: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Errorf("results differ:\n%+v\n%+v", first, second)
	}
	if !reflect.DeepEqual(expenses, before) {
		t.Errorf("inputs mutated: %+v", expenses)
	}
	if roster.Len() != 2 {
		t.Errorf("roster mutated: %v", roster.Names())
	}
}

func TestBreakdown(t *testing.T) {
	res, err := ComputeSettlement(
		[]models.Expense{expense("Caca", 10), expense("Ciko", 50), expense("Budi", 50)},
		models.NewRoster("Iwa", "Caca", "Ciko"),
	)
	if err != nil {
		t.Fatalf("ComputeSettlement failed: %v", err)
	}

	got := res.Breakdown()
	want := []PaidAmount{{"Ciko", 50}, {"Budi", 50}, {"Caca", 10}, {"Iwa", 0}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Breakdown() = %v, want %v", got, want)
	}
}

func TestRound(t *testing.T) {
	tests := []struct {
		in   float64
		want int64
	}{
		{5000000.0 / 7, 714286},
		{100000.0 / 3, 33333},
		{2.5, 3},
		{0, 0},
	}
	for _, tt := range tests {
		if got := Round(tt.in); got != tt.want {
			t.Errorf("Round(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestCategoryTotals(t *testing.T) {
	expenses := []models.Expense{
		{Amount: 100, Category: models.CategoryTransport},
		{Amount: 250, Category: models.CategoryMakanan},
		{Amount: 50, Category: models.CategoryMakanan},
	}

	totals := CategoryTotals(expenses)
	if totals[models.CategoryTransport] != 100 || totals[models.CategoryMakanan] != 300 {
		t.Errorf("CategoryTotals() = %v", totals)
	}
	if v, ok := totals[models.CategoryAlat]; !ok || v != 0 {
		t.Errorf("alat should be present with 0, got %v (present=%v)", v, ok)
	}

	if got := FilterByCategory(expenses, models.CategoryMakanan); len(got) != 2 || got[0].Amount != 250 {
		t.Errorf("FilterByCategory() = %v", got)
	}
}
