package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/tripsplit/internal/inventory"
	"github.com/mmynk/tripsplit/internal/metrics"
	"github.com/mmynk/tripsplit/internal/middleware"
	"github.com/mmynk/tripsplit/internal/models"
	"github.com/mmynk/tripsplit/internal/storage"
	"github.com/mmynk/tripsplit/pkg/api"
)

// InventoryService implements the Connect InventoryService: the shared
// shopping list. Buying an item with a price records a makanan expense.
type InventoryService struct {
	store   storage.Store
	metrics *metrics.Metrics
	now     func() time.Time
}

// NewInventoryService creates a new InventoryService. m may be nil.
func NewInventoryService(store storage.Store, m *metrics.Metrics) *InventoryService {
	return &InventoryService{
		store:   store,
		metrics: m,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// AddItem adds an item to the list. An item added as already bought
// records its expense right away.
func (s *InventoryService) AddItem(ctx context.Context, req *connect.Request[api.AddItemRequest]) (*connect.Response[api.AddItemResponse], error) {
	slog.Info("AddItem request received", "name", req.Msg.Name, "is_bought", req.Msg.IsBought)

	item := fromAPIItem(api.InventoryItem{
		Name:           req.Msg.Name,
		QuantityNeeded: req.Msg.QuantityNeeded,
		IsBought:       req.Msg.IsBought,
		Price:          req.Msg.Price,
		Purchaser:      req.Msg.Purchaser,
	})
	s.prepare(ctx, &item)
	if err := item.Validate(); err != nil {
		return nil, toConnectError("AddItem", err)
	}

	if err := s.store.CreateInventoryItem(ctx, &item); err != nil {
		return nil, toConnectError("AddItem", err)
	}

	expense, err := s.recordPurchase(ctx, nil, item)
	if err != nil {
		return nil, toConnectError("AddItem", err)
	}

	return connect.NewResponse(&api.AddItemResponse{Item: toAPIItem(item), Expense: expense}), nil
}

// UpdateItem replaces every field of an item.
func (s *InventoryService) UpdateItem(ctx context.Context, req *connect.Request[api.UpdateItemRequest]) (*connect.Response[api.UpdateItemResponse], error) {
	slog.Info("UpdateItem request received", "item_id", req.Msg.Item.ID)

	if req.Msg.Item.ID == "" {
		return nil, toConnectError("UpdateItem", models.Invalid("id", "is required"))
	}

	next := fromAPIItem(req.Msg.Item)
	s.prepare(ctx, &next)
	if err := next.Validate(); err != nil {
		return nil, toConnectError("UpdateItem", err)
	}

	expense, err := s.save(ctx, next)
	if err != nil {
		return nil, toConnectError("UpdateItem", err)
	}

	return connect.NewResponse(&api.UpdateItemResponse{Item: toAPIItem(next), Expense: expense}), nil
}

// MarkBought records a purchase. The purchaser defaults to the session
// participant.
func (s *InventoryService) MarkBought(ctx context.Context, req *connect.Request[api.MarkBoughtRequest]) (*connect.Response[api.MarkBoughtResponse], error) {
	slog.Info("MarkBought request received", "item_id", req.Msg.ID, "price", req.Msg.Price)

	if req.Msg.ID == "" {
		return nil, toConnectError("MarkBought", models.Invalid("id", "is required"))
	}

	current, err := s.store.GetInventoryItem(ctx, req.Msg.ID)
	if err != nil {
		return nil, toConnectError("MarkBought", err)
	}

	purchaser := strings.TrimSpace(req.Msg.Purchaser)
	if purchaser == "" {
		purchaser = middleware.GetParticipant(ctx)
	}

	next := current.Clone()
	next.MarkBought(req.Msg.Price, purchaser)
	if err := next.Validate(); err != nil {
		return nil, toConnectError("MarkBought", err)
	}

	expense, err := s.saveFrom(ctx, current, next)
	if err != nil {
		return nil, toConnectError("MarkBought", err)
	}

	return connect.NewResponse(&api.MarkBoughtResponse{Item: toAPIItem(next), Expense: expense}), nil
}

// UnmarkBought reverts an item to not bought. The expense recorded when it
// was bought stays.
func (s *InventoryService) UnmarkBought(ctx context.Context, req *connect.Request[api.UnmarkBoughtRequest]) (*connect.Response[api.UnmarkBoughtResponse], error) {
	slog.Info("UnmarkBought request received", "item_id", req.Msg.ID)

	if req.Msg.ID == "" {
		return nil, toConnectError("UnmarkBought", models.Invalid("id", "is required"))
	}

	item, err := s.store.GetInventoryItem(ctx, req.Msg.ID)
	if err != nil {
		return nil, toConnectError("UnmarkBought", err)
	}

	item.Unmark()
	if err := s.store.UpdateInventoryItem(ctx, item); err != nil {
		return nil, toConnectError("UnmarkBought", err)
	}

	return connect.NewResponse(&api.UnmarkBoughtResponse{Item: toAPIItem(*item)}), nil
}

// DeleteItem removes an item from the list.
func (s *InventoryService) DeleteItem(ctx context.Context, req *connect.Request[api.DeleteItemRequest]) (*connect.Response[api.DeleteItemResponse], error) {
	slog.Info("DeleteItem request received", "item_id", req.Msg.ID)

	if req.Msg.ID == "" {
		return nil, toConnectError("DeleteItem", models.Invalid("id", "is required"))
	}
	if err := s.store.DeleteInventoryItem(ctx, req.Msg.ID); err != nil {
		return nil, toConnectError("DeleteItem", err)
	}

	return connect.NewResponse(&api.DeleteItemResponse{}), nil
}

// ListItems returns the shopping list in the order items were added.
func (s *InventoryService) ListItems(ctx context.Context, req *connect.Request[api.ListItemsRequest]) (*connect.Response[api.ListItemsResponse], error) {
	resp, err := s.listItems(ctx)
	if err != nil {
		return nil, toConnectError("ListItems", err)
	}
	return connect.NewResponse(resp), nil
}

// WatchInventory streams the shopping list on start and after every change.
func (s *InventoryService) WatchInventory(ctx context.Context, req *connect.Request[api.WatchInventoryRequest], stream *connect.ServerStream[api.ListItemsResponse]) error {
	slog.Info("WatchInventory started", "participant", middleware.GetParticipant(ctx))
	return watch(ctx, s.store, storage.CollectionInventory, "WatchInventory", s.listItems, stream.Send)
}

func (s *InventoryService) listItems(ctx context.Context) (*api.ListItemsResponse, error) {
	items, err := s.store.ListInventory(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]api.InventoryItem, len(items))
	for i, item := range items {
		out[i] = toAPIItem(item)
	}
	return &api.ListItemsResponse{Items: out}, nil
}

// prepare trims the item, drops purchase details from unbought items, and
// fills a missing purchaser with the session participant.
func (s *InventoryService) prepare(ctx context.Context, item *models.InventoryItem) {
	item.Normalize()
	if item.IsBought && (item.Purchaser == nil || strings.TrimSpace(*item.Purchaser) == "") {
		if p := middleware.GetParticipant(ctx); p != "" {
			item.Purchaser = &p
		}
	}
}

// save loads the stored item and writes next over it.
func (s *InventoryService) save(ctx context.Context, next models.InventoryItem) (*api.Expense, error) {
	current, err := s.store.GetInventoryItem(ctx, next.ID)
	if err != nil {
		return nil, err
	}
	return s.saveFrom(ctx, current, next)
}

func (s *InventoryService) saveFrom(ctx context.Context, prev *models.InventoryItem, next models.InventoryItem) (*api.Expense, error) {
	if err := s.store.UpdateInventoryItem(ctx, &next); err != nil {
		return nil, err
	}
	return s.recordPurchase(ctx, prev, next)
}

// recordPurchase creates the expense for a purchase when the item just
// became bought. It returns nil when no expense is due.
func (s *InventoryService) recordPurchase(ctx context.Context, prev *models.InventoryItem, next models.InventoryItem) (*api.Expense, error) {
	expense, ok := inventory.PurchaseExpense(prev, next, s.now())
	if !ok {
		return nil, nil
	}

	if err := s.store.CreateExpense(ctx, &expense); err != nil {
		return nil, fmt.Errorf("item %s saved but its expense was not recorded: %w", next.ID, err)
	}
	s.metrics.InventoryExpenseCreated()

	slog.Info("Expense recorded for purchase",
		"item_id", next.ID,
		"expense_id", expense.ID,
		"amount", expense.Amount,
		"payer", expense.Payer,
	)
	out := toAPIExpense(expense)
	return &out, nil
}
