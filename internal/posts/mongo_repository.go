package posts

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/auteur-engineer/website/internal/blocks"
)

const DefaultCollection = "posts"

type postDocument struct {
	ID        bson.ObjectID   `bson:"_id,omitempty"`
	Title     blocks.Field    `bson:"title"`
	Blocks    []blocks.Tagged `bson:"blocks"`
	CreatedAt time.Time       `bson:"created_at"`
	UpdatedAt time.Time       `bson:"updated_at"`
}

// MongoRepository stores posts as documents in a MongoDB collection.
// AppendBlock is a $push, applied atomically by the server.
type MongoRepository struct {
	collection *mongo.Collection
	now        func() time.Time
}

// NewMongoRepository uses the named collection in db.
func NewMongoRepository(db *mongo.Database, collection string) *MongoRepository {
	if collection == "" {
		collection = DefaultCollection
	}
	return &MongoRepository{
		collection: db.Collection(collection),
		now:        func() time.Time { return time.Now().UTC() },
	}
}

var _ Repository = (*MongoRepository)(nil)

func (r *MongoRepository) Create(ctx context.Context, post *Post) (*Post, error) {
	if post.ID != "" {
		return nil, ErrIDAssigned
	}
	now := r.now()
	doc := postDocument{
		Title:     post.Title,
		Blocks:    post.Blocks.Tagged(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	res, err := r.collection.InsertOne(ctx, doc)
	if err != nil {
		return nil, storeError("create", err)
	}
	id, ok := res.InsertedID.(bson.ObjectID)
	if !ok {
		return nil, storeError("create", errors.New("store returned a non ObjectID key"))
	}
	doc.ID = id
	return documentToPost(&doc)
}

func (r *MongoRepository) GetByID(ctx context.Context, id string) (*Post, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, notFound(id)
	}
	var doc postDocument
	if err := r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		return nil, r.mapError("get", id, err)
	}
	return documentToPost(&doc)
}

func (r *MongoRepository) List(ctx context.Context) ([]*Post, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, storeError("list", err)
	}
	var docs []postDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, storeError("list", err)
	}
	out := make([]*Post, 0, len(docs))
	for i := range docs {
		post, err := documentToPost(&docs[i])
		if err != nil {
			return nil, err
		}
		out = append(out, post)
	}
	return out, nil
}

func (r *MongoRepository) Replace(ctx context.Context, id string, post *Post) (*Post, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, notFound(id)
	}
	update := bson.M{"$set": bson.M{
		"title":      post.Title,
		"blocks":     post.Blocks.Tagged(),
		"updated_at": r.now(),
	}}
	return r.findOneAndUpdate(ctx, "replace", id, oid, update)
}

func (r *MongoRepository) AppendBlock(ctx context.Context, id string, block blocks.Block) (*Post, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, notFound(id)
	}
	update := bson.M{
		"$push": bson.M{"blocks": blocks.ToTagged(block)},
		"$set":  bson.M{"updated_at": r.now()},
	}
	return r.findOneAndUpdate(ctx, "append", id, oid, update)
}

func (r *MongoRepository) findOneAndUpdate(ctx context.Context, op, id string, oid bson.ObjectID, update bson.M) (*Post, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc postDocument
	if err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(&doc); err != nil {
		return nil, r.mapError(op, id, err)
	}
	return documentToPost(&doc)
}

func (r *MongoRepository) mapError(op, id string, err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return notFound(id)
	}
	return storeError(op, err)
}

func documentToPost(doc *postDocument) (*Post, error) {
	list, err := blocks.FromTaggedList(doc.Blocks)
	if err != nil {
		return nil, storeError("decode", err)
	}
	post := &Post{
		ID:     doc.ID.Hex(),
		Title:  doc.Title,
		Blocks: list,
	}
	if err := post.Title.Validate(); err != nil {
		return nil, storeError("decode", err)
	}
	return post, nil
}
