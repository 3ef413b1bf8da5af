package database

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/bean-buzz/beanbuzz-backend/models"
)

// OrderFilter carries the optional equality filters for listing orders.
// Each field filters its own document field; filters combine with AND.
type OrderFilter struct {
	OrderStatus   string
	PaymentStatus string
	PaymentMethod string
	CustomerName  string
	TableNumber   string
}

func (f OrderFilter) query() bson.M {
	q := bson.M{}
	if f.OrderStatus != "" {
		q["orderStatus"] = f.OrderStatus
	}
	if f.PaymentStatus != "" {
		q["paymentStatus"] = f.PaymentStatus
	}
	if f.PaymentMethod != "" {
		q["paymentMethod"] = f.PaymentMethod
	}
	if f.CustomerName != "" {
		q["customerName"] = f.CustomerName
	}
	if f.TableNumber != "" {
		q["tableNumber"] = f.TableNumber
	}
	return q
}

// OrderStore is the persistence contract for orders.
type OrderStore interface {
	Create(ctx context.Context, order *models.Order) (*models.Order, error)
	List(ctx context.Context, filter OrderFilter) ([]models.Order, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error)
	// Save replaces the stored order document. The read-modify-write cycle
	// around it is not atomic against concurrent updates to the same order;
	// at this system's scale a lost update is an accepted limitation.
	Save(ctx context.Context, order *models.Order) (*models.Order, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type mongoOrderStore struct {
	col *mongo.Collection
}

// NewOrderStore returns an OrderStore backed by the orders collection.
func NewOrderStore(db *mongo.Database) OrderStore {
	return &mongoOrderStore{col: db.Collection(ordersCollection)}
}

func (s *mongoOrderStore) Create(ctx context.Context, order *models.Order) (*models.Order, error) {
	now := time.Now().UTC()
	order.CreatedAt = now
	order.UpdatedAt = now
	if order.ID.IsZero() {
		order.ID = primitive.NewObjectID()
	}
	if _, err := s.col.InsertOne(ctx, order); err != nil {
		return nil, mapWriteError(err)
	}
	return order, nil
}

func (s *mongoOrderStore) List(ctx context.Context, filter OrderFilter) ([]models.Order, error) {
	cursor, err := s.col.Find(ctx, filter.query())
	if err != nil {
		return nil, err
	}
	var orders []models.Order
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (s *mongoOrderStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error) {
	var order models.Order
	err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&order)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (s *mongoOrderStore) Save(ctx context.Context, order *models.Order) (*models.Order, error) {
	order.UpdatedAt = time.Now().UTC()

	var updated models.Order
	err := s.col.FindOneAndReplace(
		ctx,
		bson.M{"_id": order.ID},
		order,
		options.FindOneAndReplace().SetReturnDocument(options.After),
	).Decode(&updated)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, mapWriteError(err)
	}
	return &updated, nil
}

func (s *mongoOrderStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
