package counters

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const DefaultCollection = "counters"

type counterDocument struct {
	ID    string `bson:"_id"`
	Value int64  `bson:"value"`
}

// MongoRepository stores counters as documents keyed by id.
type MongoRepository struct {
	collection *mongo.Collection
}

// NewMongoRepository uses the named collection in db.
func NewMongoRepository(db *mongo.Database, collection string) *MongoRepository {
	if collection == "" {
		collection = DefaultCollection
	}
	return &MongoRepository{collection: db.Collection(collection)}
}

var _ Repository = (*MongoRepository)(nil)

func (r *MongoRepository) Get(ctx context.Context, id string) (*Counter, error) {
	var doc counterDocument
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		return nil, mapMongoError("get", id, err)
	}
	return &Counter{ID: doc.ID, Value: doc.Value}, nil
}

func (r *MongoRepository) Ensure(ctx context.Context, id string) (*Counter, error) {
	opts := options.UpdateOne().SetUpsert(true)
	if _, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$setOnInsert": bson.M{"value": int64(0)}}, opts); err != nil {
		return nil, mapMongoError("ensure", id, err)
	}
	return r.Get(ctx, id)
}

// Add applies $inc and returns the updated document.
func (r *MongoRepository) Add(ctx context.Context, id string, delta int64) (*Counter, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc counterDocument
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$inc": bson.M{"value": delta}}, opts).Decode(&doc)
	if err != nil {
		return nil, mapMongoError("add", id, err)
	}
	return &Counter{ID: doc.ID, Value: doc.Value}, nil
}

func mapMongoError(op, id string, err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return &NotFoundError{Key: id}
	}
	return fmt.Errorf("counters: %s %q: %w", op, id, err)
}
