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

// ReviewFilter narrows the review listing. Search is a case-insensitive
// substring match on the author name; Status is an exact match when set.
type ReviewFilter struct {
	Search      string
	Status      string
	OldestFirst bool
}

func (f ReviewFilter) query() bson.M {
	q := bson.M{}
	if f.Search != "" {
		q["userName"] = bson.M{"$regex": f.Search, "$options": "i"}
	}
	if f.Status != "" && f.Status != "all" {
		q["reviewStatus"] = f.Status
	}
	return q
}

// ReviewUpdate carries a partial review patch; nil fields are left alone.
type ReviewUpdate struct {
	UserName      *string
	Rating        *int
	ReviewMessage *string
	ReviewStatus  *models.ReviewStatus
}

// ReviewStore is the persistence contract for customer reviews.
type ReviewStore interface {
	// List returns one page of reviews plus the total count of documents
	// matching the filter.
	List(ctx context.Context, filter ReviewFilter, skip, limit int64) ([]models.Review, int64, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Review, error)
	Create(ctx context.Context, review *models.Review) (*models.Review, error)
	Update(ctx context.Context, id primitive.ObjectID, patch ReviewUpdate) (*models.Review, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type mongoReviewStore struct {
	col *mongo.Collection
}

// NewReviewStore returns a ReviewStore backed by the reviews collection.
func NewReviewStore(db *mongo.Database) ReviewStore {
	return &mongoReviewStore{col: db.Collection(reviewsCollection)}
}

func (s *mongoReviewStore) List(ctx context.Context, filter ReviewFilter, skip, limit int64) ([]models.Review, int64, error) {
	query := filter.query()

	sortDir := -1
	if filter.OldestFirst {
		sortDir = 1
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: sortDir}}).
		SetSkip(skip).
		SetLimit(limit)

	cursor, err := s.col.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, err
	}
	var reviews []models.Review
	if err := cursor.All(ctx, &reviews); err != nil {
		return nil, 0, err
	}

	total, err := s.col.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, err
	}
	return reviews, total, nil
}

func (s *mongoReviewStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Review, error) {
	var review models.Review
	err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&review)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &review, nil
}

func (s *mongoReviewStore) Create(ctx context.Context, review *models.Review) (*models.Review, error) {
	now := time.Now().UTC()
	review.CreatedAt = now
	review.UpdatedAt = now
	if review.ID.IsZero() {
		review.ID = primitive.NewObjectID()
	}
	if review.ReviewStatus == "" {
		review.ReviewStatus = models.ReviewApproved
	}
	if _, err := s.col.InsertOne(ctx, review); err != nil {
		return nil, mapWriteError(err)
	}
	return review, nil
}

func (s *mongoReviewStore) Update(ctx context.Context, id primitive.ObjectID, patch ReviewUpdate) (*models.Review, error) {
	set := bson.M{"updatedAt": time.Now().UTC()}
	if patch.UserName != nil {
		set["userName"] = *patch.UserName
	}
	if patch.Rating != nil {
		set["rating"] = *patch.Rating
	}
	if patch.ReviewMessage != nil {
		set["reviewMessage"] = *patch.ReviewMessage
	}
	if patch.ReviewStatus != nil {
		set["reviewStatus"] = *patch.ReviewStatus
	}

	var updated models.Review
	err := s.col.FindOneAndUpdate(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *mongoReviewStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
