package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/akshat/recipe-box/backend/internal/models"
)

// MongoStore handles saved-recipe CRUD in MongoDB.
type MongoStore struct {
	col *mongo.Collection
}

func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{col: db.Collection("saved_recipes")}
}

// Insert stores a new saved recipe and returns its hex id. The caller is
// expected to have set Position; CreatedAt is stamped here.
func (s *MongoStore) Insert(ctx context.Context, rec *models.SavedRecipe) (string, error) {
	rec.CreatedAt = time.Now()
	res, err := s.col.InsertOne(ctx, rec)
	if err != nil {
		return "", fmt.Errorf("mongo insert: %w", err)
	}
	oid := res.InsertedID.(primitive.ObjectID)
	return oid.Hex(), nil
}

// ListByUser returns the user's saved recipes sorted by position ascending.
func (s *MongoStore) ListByUser(ctx context.Context, userID string) ([]models.SavedRecipe, error) {
	opts := options.Find().SetSort(bson.D{{Key: "position", Value: 1}})
	cur, err := s.col.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var recs []models.SavedRecipe
	if err := cur.All(ctx, &recs); err != nil {
		return nil, err
	}
	return recs, nil
}

// GetByID returns the saved recipe only if it belongs to userID.
func (s *MongoStore) GetByID(ctx context.Context, userID, id string) (*models.SavedRecipe, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	var rec models.SavedRecipe
	err = s.col.FindOne(ctx, bson.M{"_id": oid, "user_id": userID}).Decode(&rec)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// NextPosition returns the position for a new save: one past the user's
// highest existing position, or 0 for an empty list. Counting documents is
// not enough here, since removals leave gaps and a count would tie a
// surviving record.
func (s *MongoStore) NextPosition(ctx context.Context, userID string) (int, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "position", Value: -1}})
	var rec models.SavedRecipe
	err := s.col.FindOne(ctx, bson.M{"user_id": userID}, opts).Decode(&rec)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return rec.Position + 1, nil
}

// SetPosition updates one record's position, scoped to the owner.
func (s *MongoStore) SetPosition(ctx context.Context, userID, id string, position int) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}
	res, err := s.col.UpdateOne(ctx,
		bson.M{"_id": oid, "user_id": userID},
		bson.M{"$set": bson.M{"position": position}},
	)
	if err != nil {
		return fmt.Errorf("mongo update position: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes the record if it belongs to userID.
func (s *MongoStore) Delete(ctx context.Context, userID, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}
	res, err := s.col.DeleteOne(ctx, bson.M{"_id": oid, "user_id": userID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
