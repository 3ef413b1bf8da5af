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

// MenuStore is the persistence contract for the menu catalog.
type MenuStore interface {
	List(ctx context.Context) ([]models.MenuItem, error)
	ListByCategory(ctx context.Context, category string) ([]models.MenuItem, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.MenuItem, error)
	Create(ctx context.Context, item *models.MenuItem) (*models.MenuItem, error)
	Update(ctx context.Context, id primitive.ObjectID, item *models.MenuItem) (*models.MenuItem, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type mongoMenuStore struct {
	col *mongo.Collection
}

// NewMenuStore returns a MenuStore backed by the menu collection.
func NewMenuStore(db *mongo.Database) MenuStore {
	return &mongoMenuStore{col: db.Collection(menuCollection)}
}

func (s *mongoMenuStore) List(ctx context.Context) ([]models.MenuItem, error) {
	return s.find(ctx, bson.M{})
}

func (s *mongoMenuStore) ListByCategory(ctx context.Context, category string) ([]models.MenuItem, error) {
	return s.find(ctx, bson.M{"category": category})
}

func (s *mongoMenuStore) find(ctx context.Context, filter bson.M) ([]models.MenuItem, error) {
	cursor, err := s.col.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	var items []models.MenuItem
	if err := cursor.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (s *mongoMenuStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.MenuItem, error) {
	var item models.MenuItem
	err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&item)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *mongoMenuStore) Create(ctx context.Context, item *models.MenuItem) (*models.MenuItem, error) {
	now := time.Now().UTC()
	item.CreatedAt = now
	item.UpdatedAt = now
	if item.ID.IsZero() {
		item.ID = primitive.NewObjectID()
	}
	if _, err := s.col.InsertOne(ctx, item); err != nil {
		return nil, mapWriteError(err)
	}
	return item, nil
}

func (s *mongoMenuStore) Update(ctx context.Context, id primitive.ObjectID, item *models.MenuItem) (*models.MenuItem, error) {
	existing, err := s.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	item.ID = id
	item.CreatedAt = existing.CreatedAt
	item.UpdatedAt = time.Now().UTC()

	var updated models.MenuItem
	err = s.col.FindOneAndReplace(
		ctx,
		bson.M{"_id": id},
		item,
		options.FindOneAndReplace().SetReturnDocument(options.After),
	).Decode(&updated)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *mongoMenuStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
