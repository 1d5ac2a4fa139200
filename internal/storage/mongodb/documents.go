package mongodb

import (
	"time"

	"github.com/mmynk/tripsplit/internal/models"
)

type expenseDoc struct {
	ID       string    `bson:"_id"`
	Title    string    `bson:"title"`
	Amount   int64     `bson:"amount"`
	Payer    string    `bson:"payer"`
	Category string    `bson:"category"`
	Date     time.Time `bson:"date"`
	// DateNanos keeps sub-millisecond precision that BSON dates drop.
	DateNanos int64 `bson:"date_nanos"`
}

type inventoryDoc struct {
	ID             string  `bson:"_id"`
	Name           string  `bson:"name"`
	QuantityNeeded string  `bson:"quantity_needed"`
	IsBought       bool    `bson:"is_bought"`
	Price          *int64  `bson:"price,omitempty"`
	Purchaser      *string `bson:"purchaser,omitempty"`
	CreatedAt      int64   `bson:"created_at"`
}

type settlementDoc struct {
	ID           string       `bson:"_id"`
	Date         time.Time    `bson:"date"`
	DateNanos    int64        `bson:"date_nanos"`
	Note         string       `bson:"note"`
	TotalAmount  int64        `bson:"total_amount"`
	Participants []string     `bson:"participants,omitempty"`
	Expenses     []expenseDoc `bson:"expenses"`
}

func toExpenseDoc(e models.Expense) expenseDoc {
	return expenseDoc{
		ID:        e.ID,
		Title:     e.Title,
		Amount:    e.Amount,
		Payer:     e.Payer,
		Category:  string(e.Category),
		Date:      e.Date,
		DateNanos: e.Date.UnixNano(),
	}
}

func (d expenseDoc) model() models.Expense {
	return models.Expense{
		ID:       d.ID,
		Title:    d.Title,
		Amount:   d.Amount,
		Payer:    d.Payer,
		Category: models.Category(d.Category),
		Date:     time.Unix(0, d.DateNanos).UTC(),
	}
}

func toInventoryDoc(i models.InventoryItem, createdAt int64) inventoryDoc {
	i = i.Clone()
	return inventoryDoc{
		ID:             i.ID,
		Name:           i.Name,
		QuantityNeeded: i.QuantityNeeded,
		IsBought:       i.IsBought,
		Price:          i.Price,
		Purchaser:      i.Purchaser,
		CreatedAt:      createdAt,
	}
}

func (d inventoryDoc) model() models.InventoryItem {
	return models.InventoryItem{
		ID:             d.ID,
		Name:           d.Name,
		QuantityNeeded: d.QuantityNeeded,
		IsBought:       d.IsBought,
		Price:          d.Price,
		Purchaser:      d.Purchaser,
	}
}

func toSettlementDoc(s models.Settlement) settlementDoc {
	doc := settlementDoc{
		ID:           s.ID,
		Date:         s.Date,
		DateNanos:    s.Date.UnixNano(),
		Note:         s.Note,
		TotalAmount:  s.TotalAmount,
		Participants: s.Participants,
		Expenses:     make([]expenseDoc, len(s.Expenses)),
	}
	for i, e := range s.Expenses {
		doc.Expenses[i] = toExpenseDoc(e)
	}
	return doc
}

func (d settlementDoc) model() models.Settlement {
	s := models.Settlement{
		ID:           d.ID,
		Date:         time.Unix(0, d.DateNanos).UTC(),
		Note:         d.Note,
		TotalAmount:  d.TotalAmount,
		Participants: d.Participants,
		Expenses:     make([]models.Expense, len(d.Expenses)),
	}
	for i, e := range d.Expenses {
		s.Expenses[i] = e.model()
	}
	return s
}
