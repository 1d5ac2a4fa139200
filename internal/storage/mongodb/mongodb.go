// Package mongodb provides a MongoDB-backed implementation of the storage.Store interface.
package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mmynk/tripsplit/internal/models"
	"github.com/mmynk/tripsplit/internal/storage"
)

// Ensure MongoStore implements storage.Store
var _ storage.Store = (*MongoStore)(nil)

// MongoStore implements storage.Store with one MongoDB collection per
// record collection. Settlements embed their expense snapshot.
type MongoStore struct {
	*storage.Hub
	client *mongo.Client
	db     *mongo.Database
}

// New connects to MongoDB and verifies the connection.
func New(ctx context.Context, uri, dbName string) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	// Ping the database to verify connection
	if err := client.Ping(ctx, nil); err != nil {
		client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &MongoStore{
		Hub:    storage.NewHub(),
		client: client,
		db:     client.Database(dbName),
	}, nil
}

// Close closes the MongoDB connection.
func (s *MongoStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

// Drop removes every collection. Used by tests.
func (s *MongoStore) Drop(ctx context.Context) error {
	return s.db.Drop(ctx)
}

func (s *MongoStore) coll(c storage.Collection) *mongo.Collection {
	return s.db.Collection(string(c))
}

func byID(id string) bson.M {
	return bson.M{"_id": id}
}

// CreateExpense persists a new expense.
func (s *MongoStore) CreateExpense(ctx context.Context, expense *models.Expense) error {
	if expense.ID == "" {
		expense.ID = uuid.New().String()
	}
	if expense.Date.IsZero() {
		expense.Date = time.Now().UTC()
	}

	if _, err := s.coll(storage.CollectionExpenses).InsertOne(ctx, toExpenseDoc(*expense)); err != nil {
		return storage.Unavailable("insert expense", err)
	}

	s.Publish(storage.CollectionExpenses)
	return nil
}

// GetExpense retrieves an expense by ID.
func (s *MongoStore) GetExpense(ctx context.Context, id string) (*models.Expense, error) {
	var doc expenseDoc
	err := s.coll(storage.CollectionExpenses).FindOne(ctx, byID(id)).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, storage.NotFound(storage.CollectionExpenses, id)
	}
	if err != nil {
		return nil, storage.Unavailable("get expense", err)
	}
	expense := doc.model()
	return &expense, nil
}

// UpdateExpense replaces the editable fields of an existing expense.
func (s *MongoStore) UpdateExpense(ctx context.Context, expense *models.Expense) error {
	res, err := s.coll(storage.CollectionExpenses).UpdateOne(ctx, byID(expense.ID), bson.M{"$set": bson.M{
		"title":    expense.Title,
		"amount":   expense.Amount,
		"payer":    expense.Payer,
		"category": string(expense.Category),
	}})
	if err != nil {
		return storage.Unavailable("update expense", err)
	}
	if res.MatchedCount == 0 {
		return storage.NotFound(storage.CollectionExpenses, expense.ID)
	}

	s.Publish(storage.CollectionExpenses)
	return nil
}

// DeleteExpense removes an expense by ID.
func (s *MongoStore) DeleteExpense(ctx context.Context, id string) error {
	return s.deleteOne(ctx, storage.CollectionExpenses, id, "delete expense")
}

// ListExpenses returns all expenses ordered by date, newest first.
func (s *MongoStore) ListExpenses(ctx context.Context) ([]models.Expense, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date_nanos", Value: -1}})
	var docs []expenseDoc
	if err := s.findAll(ctx, storage.CollectionExpenses, opts, &docs); err != nil {
		return nil, storage.Unavailable("list expenses", err)
	}

	expenses := make([]models.Expense, len(docs))
	for i, d := range docs {
		expenses[i] = d.model()
	}
	return expenses, nil
}

// CreateInventoryItem persists a new shopping-list item.
func (s *MongoStore) CreateInventoryItem(ctx context.Context, item *models.InventoryItem) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}

	doc := toInventoryDoc(*item, time.Now().UnixNano())
	if _, err := s.coll(storage.CollectionInventory).InsertOne(ctx, doc); err != nil {
		return storage.Unavailable("insert inventory item", err)
	}

	s.Publish(storage.CollectionInventory)
	return nil
}

// GetInventoryItem retrieves an item by ID.
func (s *MongoStore) GetInventoryItem(ctx context.Context, id string) (*models.InventoryItem, error) {
	var doc inventoryDoc
	err := s.coll(storage.CollectionInventory).FindOne(ctx, byID(id)).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, storage.NotFound(storage.CollectionInventory, id)
	}
	if err != nil {
		return nil, storage.Unavailable("get inventory item", err)
	}
	item := doc.model()
	return &item, nil
}

// UpdateInventoryItem replaces every field of an existing item.
// Unset price and purchaser are removed from the document.
func (s *MongoStore) UpdateInventoryItem(ctx context.Context, item *models.InventoryItem) error {
	set := bson.M{
		"name":            item.Name,
		"quantity_needed": item.QuantityNeeded,
		"is_bought":       item.IsBought,
	}
	unset := bson.M{}
	if item.Price != nil {
		set["price"] = *item.Price
	} else {
		unset["price"] = ""
	}
	if item.Purchaser != nil {
		set["purchaser"] = *item.Purchaser
	} else {
		unset["purchaser"] = ""
	}

	update := bson.M{"$set": set}
	if len(unset) > 0 {
		update["$unset"] = unset
	}

	res, err := s.coll(storage.CollectionInventory).UpdateOne(ctx, byID(item.ID), update)
	if err != nil {
		return storage.Unavailable("update inventory item", err)
	}
	if res.MatchedCount == 0 {
		return storage.NotFound(storage.CollectionInventory, item.ID)
	}

	s.Publish(storage.CollectionInventory)
	return nil
}

// DeleteInventoryItem removes an item by ID.
func (s *MongoStore) DeleteInventoryItem(ctx context.Context, id string) error {
	return s.deleteOne(ctx, storage.CollectionInventory, id, "delete inventory item")
}

// ListInventory returns every item in the order it was added.
func (s *MongoStore) ListInventory(ctx context.Context) ([]models.InventoryItem, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	var docs []inventoryDoc
	if err := s.findAll(ctx, storage.CollectionInventory, opts, &docs); err != nil {
		return nil, storage.Unavailable("list inventory", err)
	}

	items := make([]models.InventoryItem, len(docs))
	for i, d := range docs {
		items[i] = d.model()
	}
	return items, nil
}

// CreateSettlement persists a settlement with its embedded snapshot.
// A single document insert is atomic, so no transaction is needed.
func (s *MongoStore) CreateSettlement(ctx context.Context, settlement *models.Settlement) error {
	if settlement.ID == "" {
		settlement.ID = uuid.New().String()
	}
	if settlement.Date.IsZero() {
		settlement.Date = time.Now().UTC()
	}

	if _, err := s.coll(storage.CollectionSettlements).InsertOne(ctx, toSettlementDoc(*settlement)); err != nil {
		return storage.Unavailable("insert settlement", err)
	}

	s.Publish(storage.CollectionSettlements)
	return nil
}

// GetSettlement retrieves a settlement by ID.
func (s *MongoStore) GetSettlement(ctx context.Context, id string) (*models.Settlement, error) {
	var doc settlementDoc
	err := s.coll(storage.CollectionSettlements).FindOne(ctx, byID(id)).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, storage.NotFound(storage.CollectionSettlements, id)
	}
	if err != nil {
		return nil, storage.Unavailable("get settlement", err)
	}
	settlement := doc.model()
	return &settlement, nil
}

// ListSettlements retrieves all settlements, newest first.
func (s *MongoStore) ListSettlements(ctx context.Context) ([]models.Settlement, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date_nanos", Value: -1}})
	var docs []settlementDoc
	if err := s.findAll(ctx, storage.CollectionSettlements, opts, &docs); err != nil {
		return nil, storage.Unavailable("list settlements", err)
	}

	settlements := make([]models.Settlement, len(docs))
	for i, d := range docs {
		settlements[i] = d.model()
	}
	return settlements, nil
}

func (s *MongoStore) deleteOne(ctx context.Context, c storage.Collection, id, op string) error {
	res, err := s.coll(c).DeleteOne(ctx, byID(id))
	if err != nil {
		return storage.Unavailable(op, err)
	}
	if res.DeletedCount == 0 {
		return storage.NotFound(c, id)
	}

	s.Publish(c)
	return nil
}

func (s *MongoStore) findAll(ctx context.Context, c storage.Collection, opts *options.FindOptions, out any) error {
	cursor, err := s.coll(c).Find(ctx, bson.M{}, opts)
	if err != nil {
		return err
	}
	return cursor.All(ctx, out)
}
