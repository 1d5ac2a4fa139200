package api

import "time"

// Expense is a live or archived expense.
type Expense struct {
	ID       string    `json:"id"`
	Title    string    `json:"title"`
	Amount   int64     `json:"amount"`
	Payer    string    `json:"payer"`
	Category string    `json:"category"`
	Date     time.Time `json:"date"`
}

// InventoryItem is a shopping-list entry. Price and Purchaser are set only
// when IsBought is true.
type InventoryItem struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	QuantityNeeded string  `json:"quantityNeeded,omitempty"`
	IsBought       bool    `json:"isBought"`
	Price          *int64  `json:"price,omitempty"`
	Purchaser      *string `json:"purchaser,omitempty"`
}

// Settlement is an archived snapshot of expenses.
type Settlement struct {
	ID           string    `json:"id"`
	Date         time.Time `json:"date"`
	Note         string    `json:"note"`
	TotalAmount  int64     `json:"totalAmount"`
	Participants []string  `json:"participants,omitempty"`
	Expenses     []Expense `json:"expenses"`
}

// PaidAmount is one row of the paid-by breakdown.
type PaidAmount struct {
	Name   string `json:"name"`
	Amount int64  `json:"amount"`
}

// Receivable says every participant owes Payer AmountPerUser.
type Receivable struct {
	Payer         string  `json:"payer"`
	TotalPaid     int64   `json:"totalPaid"`
	AmountPerUser float64 `json:"amountPerUser"`
}

// SettlementPreview is the computed settlement over a set of expenses.
// PaidBy is sorted by amount descending; Receivables follow payer order.
type SettlementPreview struct {
	TotalExpense   int64            `json:"totalExpense"`
	SharePerPerson float64          `json:"sharePerPerson"`
	Participants   []string         `json:"participants"`
	PaidBy         []PaidAmount     `json:"paidBy"`
	Receivables    []Receivable     `json:"receivables"`
	CategoryTotals map[string]int64 `json:"categoryTotals"`
}

// SessionService

type ListParticipantsRequest struct{}

type ListParticipantsResponse struct {
	Participants []string `json:"participants"`
}

// SelectParticipantRequest picks Name as the current participant. Extra
// lists ad hoc names this device added to the roster; Name may be one of
// them.
type SelectParticipantRequest struct {
	Name  string   `json:"name"`
	Extra []string `json:"extra,omitempty"`
}

type SelectParticipantResponse struct {
	Participant  string   `json:"participant"`
	Token        string   `json:"token"`
	Participants []string `json:"participants"`
}

// ExpenseService

// AddExpenseRequest creates an expense. Payer defaults to the session
// participant; Amount is required.
type AddExpenseRequest struct {
	Title    string `json:"title"`
	Amount   *int64 `json:"amount"`
	Payer    string `json:"payer,omitempty"`
	Category string `json:"category"`
}

type AddExpenseResponse struct {
	Expense Expense `json:"expense"`
}

// UpdateExpenseRequest edits the fields that are set.
type UpdateExpenseRequest struct {
	ID       string  `json:"id"`
	Title    *string `json:"title,omitempty"`
	Amount   *int64  `json:"amount,omitempty"`
	Payer    *string `json:"payer,omitempty"`
	Category *string `json:"category,omitempty"`
}

type UpdateExpenseResponse struct {
	Expense Expense `json:"expense"`
}

type DeleteExpenseRequest struct {
	ID string `json:"id"`
}

type DeleteExpenseResponse struct{}

// DeleteExpensesRequest deletes several expenses at once, reporting every
// failure. Used to retry after a partial archive failure.
type DeleteExpensesRequest struct {
	IDs []string `json:"ids"`
}

type DeleteExpensesResponse struct {
	Deleted int `json:"deleted"`
}

// ListExpensesRequest optionally filters by category.
type ListExpensesRequest struct {
	Category string `json:"category,omitempty"`
}

// ListExpensesResponse lists expenses newest first. Total is the sum of the
// listed expenses; CategoryTotals covers every live expense.
type ListExpensesResponse struct {
	Expenses       []Expense        `json:"expenses"`
	Total          int64            `json:"total"`
	CategoryTotals map[string]int64 `json:"categoryTotals"`
}

type WatchExpensesRequest struct {
	Category string `json:"category,omitempty"`
}

// InventoryService

type AddItemRequest struct {
	Name           string  `json:"name"`
	QuantityNeeded string  `json:"quantityNeeded,omitempty"`
	IsBought       bool    `json:"isBought"`
	Price          *int64  `json:"price,omitempty"`
	Purchaser      *string `json:"purchaser,omitempty"`
}

// AddItemResponse carries the expense created when the item was added as
// already bought.
type AddItemResponse struct {
	Item    InventoryItem `json:"item"`
	Expense *Expense      `json:"expense,omitempty"`
}

// UpdateItemRequest replaces every field of the item.
type UpdateItemRequest struct {
	Item InventoryItem `json:"item"`
}

type UpdateItemResponse struct {
	Item    InventoryItem `json:"item"`
	Expense *Expense      `json:"expense,omitempty"`
}

// MarkBoughtRequest marks an item bought. Purchaser defaults to the session
// participant.
type MarkBoughtRequest struct {
	ID        string `json:"id"`
	Price     int64  `json:"price"`
	Purchaser string `json:"purchaser,omitempty"`
}

type MarkBoughtResponse struct {
	Item    InventoryItem `json:"item"`
	Expense *Expense      `json:"expense,omitempty"`
}

type UnmarkBoughtRequest struct {
	ID string `json:"id"`
}

type UnmarkBoughtResponse struct {
	Item InventoryItem `json:"item"`
}

type DeleteItemRequest struct {
	ID string `json:"id"`
}

type DeleteItemResponse struct{}

type ListItemsRequest struct{}

type ListItemsResponse struct {
	Items []InventoryItem `json:"items"`
}

type WatchInventoryRequest struct{}

// SettlementService

// PreviewSettlementRequest computes the settlement of the live expenses.
// Participants replaces the roster when set.
type PreviewSettlementRequest struct {
	Participants []string `json:"participants,omitempty"`
}

type PreviewSettlementResponse struct {
	Preview SettlementPreview `json:"preview"`
}

type SettleUpRequest struct {
	Note string `json:"note"`
}

type SettleUpResponse struct {
	Settlement Settlement `json:"settlement"`
}

type ListSettlementsRequest struct{}

type ListSettlementsResponse struct {
	Settlements []Settlement `json:"settlements"`
}

type GetSettlementRequest struct {
	ID string `json:"id"`
}

// GetSettlementResponse includes the settlement computed over its snapshot.
type GetSettlementResponse struct {
	Settlement Settlement        `json:"settlement"`
	Summary    SettlementPreview `json:"summary"`
}

type WatchSettlementsRequest struct{}
