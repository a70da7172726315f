package database

import (
	"context"

	"github.com/tranvd/ragchat-be/types"
)

// DocumentStore is the durable keyed collection the in-memory store
// mirrors its documents into. Implementations index by document id and
// keep a secondary index on metadata.timestamp for time-ordered cleanup.
type DocumentStore interface {
	Put(ctx context.Context, doc *types.Document) error
	Get(ctx context.Context, id string) (*types.Document, error)
	Delete(ctx context.Context, id string) error
	ListAll(ctx context.Context) ([]types.Document, error)
}
