package service

import (
	"github.com/mmynk/tripsplit/internal/calculator"
	"github.com/mmynk/tripsplit/internal/models"
	"github.com/mmynk/tripsplit/pkg/api"
)

func toAPIExpense(e models.Expense) api.Expense {
	return api.Expense{
		ID:       e.ID,
		Title:    e.Title,
		Amount:   e.Amount,
		Payer:    e.Payer,
		Category: string(e.Category),
		Date:     e.Date,
	}
}

func toAPIExpenses(expenses []models.Expense) []api.Expense {
	out := make([]api.Expense, len(expenses))
	for i, e := range expenses {
		out[i] = toAPIExpense(e)
	}
	return out
}

func toAPIItem(i models.InventoryItem) api.InventoryItem {
	i = i.Clone()
	return api.InventoryItem{
		ID:             i.ID,
		Name:           i.Name,
		QuantityNeeded: i.QuantityNeeded,
		IsBought:       i.IsBought,
		Price:          i.Price,
		Purchaser:      i.Purchaser,
	}
}

func fromAPIItem(i api.InventoryItem) models.InventoryItem {
	return models.InventoryItem{
		ID:             i.ID,
		Name:           i.Name,
		QuantityNeeded: i.QuantityNeeded,
		IsBought:       i.IsBought,
		Price:          i.Price,
		Purchaser:      i.Purchaser,
	}.Clone()
}

func toAPISettlement(s models.Settlement) api.Settlement {
	return api.Settlement{
		ID:           s.ID,
		Date:         s.Date,
		Note:         s.Note,
		TotalAmount:  s.TotalAmount,
		Participants: s.Participants,
		Expenses:     toAPIExpenses(s.Expenses),
	}
}

func toAPICategoryTotals(totals map[models.Category]int64) map[string]int64 {
	out := make(map[string]int64, len(totals))
	for c, v := range totals {
		out[string(c)] = v
	}
	return out
}

func toAPIPreview(result *calculator.Result, roster models.Roster, expenses []models.Expense) api.SettlementPreview {
	breakdown := result.Breakdown()
	paidBy := make([]api.PaidAmount, len(breakdown))
	for i, p := range breakdown {
		paidBy[i] = api.PaidAmount{Name: p.Name, Amount: p.Amount}
	}

	receivables := make([]api.Receivable, len(result.Receivables))
	for i, r := range result.Receivables {
		receivables[i] = api.Receivable{
			Payer:         r.Payer,
			TotalPaid:     r.TotalPaid,
			AmountPerUser: r.AmountPerUser,
		}
	}

	return api.SettlementPreview{
		TotalExpense:   result.TotalExpense,
		SharePerPerson: result.SharePerPerson,
		Participants:   roster.Names(),
		PaidBy:         paidBy,
		Receivables:    receivables,
		CategoryTotals: toAPICategoryTotals(calculator.CategoryTotals(expenses)),
	}
}
