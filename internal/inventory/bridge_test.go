package inventory

import (
	"testing"
	"time"

	"github.com/mmynk/tripsplit/internal/models"
)

func bought(name string, price int64, purchaser string) models.InventoryItem {
	item := models.InventoryItem{Name: name}
	item.MarkBought(price, purchaser)
	return item
}

func TestPurchaseExpense(t *testing.T) {
	now := time.Date(2024, 8, 17, 10, 0, 0, 0, time.UTC)
	unbought := models.InventoryItem{Name: "Galon"}
	alreadyBought := bought("Galon", 15000, "Caca")

	tests := []struct {
		name   string
		prev   *models.InventoryItem
		next   models.InventoryItem
		wantOK bool
	}{
		{"new item created bought", nil, bought("Galon", 20000, "Iwa"), true},
		{"unbought item marked bought", &unbought, bought("Galon", 20000, "Iwa"), true},
		{"zero price creates nothing", &unbought, bought("Beras", 0, "Iwa"), false},
		{"new item not bought", nil, models.InventoryItem{Name: "Telur"}, false},
		{"editing an already bought item", &alreadyBought, bought("Galon", 20000, "Iwa"), false},
		{"unmarking creates nothing", &alreadyBought, unbought, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exp, ok := PurchaseExpense(tt.prev, tt.next, now)
			if ok != tt.wantOK {
				t.Fatalf("PurchaseExpense() ok = %v, want %v", ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if exp.Title != tt.next.Name || exp.Amount != *tt.next.Price || exp.Payer != *tt.next.Purchaser {
				t.Errorf("expense does not mirror item: %+v", exp)
			}
			if exp.Category != models.CategoryMakanan {
				t.Errorf("Category = %q, want makanan", exp.Category)
			}
			if !exp.Date.Equal(now) {
				t.Errorf("Date = %v, want %v", exp.Date, now)
			}
			if err := exp.Validate(); err != nil {
				t.Errorf("generated expense invalid: %v", err)
			}
		})
	}
}

func TestPurchaseExpense_Galon(t *testing.T) {
	exp, ok := PurchaseExpense(nil, bought("Galon", 20000, "Iwa"), time.Now())
	if !ok {
		t.Fatal("expected an expense")
	}
	want := models.Expense{Title: "Galon", Amount: 20000, Payer: "Iwa", Category: models.CategoryMakanan}
	exp.Date = time.Time{}
	if exp != want {
		t.Errorf("got %+v, want %+v", exp, want)
	}
}
