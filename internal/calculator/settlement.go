package calculator

import (
	"errors"
	"math"
	"sort"

	"github.com/mmynk/tripsplit/internal/models"
)

// ErrDegenerateInput is returned when a settlement is computed against an
// empty roster. Dividing by zero participants has no meaningful answer.
var ErrDegenerateInput = errors.New("settlement needs at least one participant")

// Receivable is a gross payment instruction: every participant pays
// Payer AmountPerUser.
type Receivable struct {
	Payer         string
	TotalPaid     int64
	AmountPerUser float64 // TotalPaid / participants, unrounded
}

// PaidAmount is one line of the paid-by breakdown.
type PaidAmount struct {
	Name   string
	Amount int64
}

// Result is the outcome of ComputeSettlement.
type Result struct {
	TotalExpense   int64
	SharePerPerson float64 // TotalExpense / Participants, unrounded
	Participants   int

	// PaidBy maps every roster name (and every unknown payer) to the total
	// they fronted.
	PaidBy map[string]int64

	// Payers lists the keys of PaidBy in insertion order: roster order
	// first, then unknown payers in the order their expenses appear.
	Payers []string

	Receivables []Receivable
}

// ComputeSettlement splits the expenses equally across the roster.
//
// Algorithm:
//   - total = sum of expense amounts
//   - share = total / N, where N is the roster size (not the payer count)
//   - paid[payer] accumulates each expense; payers missing from the roster
//     get their own key but do not change N
//   - for every payer with paid > 0: everyone owes them paid / N
//
// Opposing debts are not netted; the result is a gross instruction list.
func ComputeSettlement(expenses []models.Expense, roster models.Roster) (*Result, error) {
	n := roster.Len()
	if n == 0 {
		return nil, ErrDegenerateInput
	}

	res := &Result{
		Participants: n,
		PaidBy:       make(map[string]int64, n),
		Payers:       roster.Names(),
		Receivables:  []Receivable{},
	}
	for _, name := range res.Payers {
		res.PaidBy[name] = 0
	}

	for _, e := range expenses {
		res.TotalExpense += e.Amount
		if _, known := res.PaidBy[e.Payer]; !known {
			res.Payers = append(res.Payers, e.Payer)
		}
		res.PaidBy[e.Payer] += e.Amount
	}

	res.SharePerPerson = float64(res.TotalExpense) / float64(n)

	for _, payer := range res.Payers {
		paid := res.PaidBy[payer]
		if paid <= 0 {
			continue
		}
		res.Receivables = append(res.Receivables, Receivable{
			Payer:         payer,
			TotalPaid:     paid,
			AmountPerUser: float64(paid) / float64(n),
		})
	}

	return res, nil
}

// Breakdown returns PaidBy sorted by amount, largest first.
// Ties keep insertion order.
func (r *Result) Breakdown() []PaidAmount {
	out := make([]PaidAmount, len(r.Payers))
	for i, name := range r.Payers {
		out[i] = PaidAmount{Name: name, Amount: r.PaidBy[name]}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Amount > out[j].Amount
	})
	return out
}

// Round rounds an amount to the nearest whole currency unit for display.
// Never feed the result back into further arithmetic.
func Round(v float64) int64 {
	return int64(math.Round(v))
}
