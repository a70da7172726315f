package repository

import (
	"context"
	"errors"

	"github.com/tranvd/ragchat-be/types"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// DocumentRepo mirrors store documents into a mongo collection keyed by
// document id, with a secondary index on metadata.timestamp so old
// documents can be cleaned up in insertion order.
type DocumentRepo struct {
	collection *mongo.Collection
}

func NewDocumentRepo(collection *mongo.Collection) *DocumentRepo {
	return &DocumentRepo{
		collection: collection,
	}
}

// EnsureIndexes creates the timestamp index used for time-ordered cleanup
func (r *DocumentRepo) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "metadata.timestamp", Value: 1}},
	})
	return err
}

func (r *DocumentRepo) Put(ctx context.Context, doc *types.Document) error {
	_, err := r.collection.ReplaceOne(ctx,
		bson.M{"_id": doc.ID},
		doc,
		options.Replace().SetUpsert(true),
	)
	return err
}

func (r *DocumentRepo) Get(ctx context.Context, id string) (*types.Document, error) {
	var doc types.Document
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &doc, nil
}

func (r *DocumentRepo) Delete(ctx context.Context, id string) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

func (r *DocumentRepo) ListAll(ctx context.Context) ([]types.Document, error) {
	cursor, err := r.collection.Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "metadata.timestamp", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []types.Document
	for cursor.Next(ctx) {
		var doc types.Document
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, cursor.Err()
}
