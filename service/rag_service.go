package service

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/tranvd/ragchat-be/database"
	"github.com/tranvd/ragchat-be/types"
)

// RAGStore is an in-memory keyed collection of documents with capacity
// enforcement, lexical-similarity search and context rendering. When a
// persistence store is attached, inserts, removals and evictions are
// mirrored into it best-effort; a mirror failure never fails the
// in-memory operation.
type RAGStore struct {
	mu       sync.RWMutex
	config   types.RAGConfig
	embedder Embedder
	docs     map[string]*types.Document
	order    []string // insertion order, also the eviction tie-break
	persist  database.DocumentStore
}

// NewRAGStore creates a document store. Zero-valued config fields fall
// back to DefaultRAGConfig; a negative MaxDocuments is rejected.
func NewRAGStore(config types.RAGConfig, embedder Embedder) (*RAGStore, error) {
	if config.MaxDocuments == 0 {
		config.MaxDocuments = types.DefaultRAGConfig.MaxDocuments
	}
	if config.MaxDocuments < 0 {
		return nil, fmt.Errorf("invalid max_documents: %d", config.MaxDocuments)
	}
	if config.SimilarityThreshold == 0 {
		config.SimilarityThreshold = types.DefaultRAGConfig.SimilarityThreshold
	}
	if config.MaxRetrievedDocs == 0 {
		config.MaxRetrievedDocs = types.DefaultRAGConfig.MaxRetrievedDocs
	}
	if embedder == nil {
		embedder = NewHashingEmbedder()
	}
	return &RAGStore{
		config:   config,
		embedder: embedder,
		docs:     make(map[string]*types.Document),
	}, nil
}

// AttachPersistence sets the durable mirror for this store
func (s *RAGStore) AttachPersistence(store database.DocumentStore) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.persist = store
}

// AddDocument stores a document and returns its generated id. Timestamp
// and Size metadata are assigned here and override caller values. When
// the insert pushes the store past MaxDocuments, the oldest document by
// timestamp is evicted.
func (s *RAGStore) AddDocument(ctx context.Context, title, content string, metadata types.DocumentMetadata) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := &types.Document{
		ID:        uuid.NewString(),
		Title:     title,
		Content:   content,
		Embedding: s.embedder.Embed(content),
		Metadata:  metadata,
	}
	doc.Metadata.Timestamp = time.Now().UnixMilli()
	doc.Metadata.Size = utf8.RuneCountInString(content)

	s.docs[doc.ID] = doc
	s.order = append(s.order, doc.ID)
	s.mirrorPut(ctx, doc)

	for len(s.docs) > s.config.MaxDocuments {
		s.evictOldest(ctx)
	}
	return doc.ID
}

// RemoveDocument deletes a document by id. Missing ids report false
// rather than an error.
func (s *RAGStore) RemoveDocument(ctx context.Context, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.docs[id]; !ok {
		return false
	}
	s.deleteLocked(ctx, id)
	return true
}

// GetDocument returns a document by id, or nil when absent
func (s *RAGStore) GetDocument(id string) *types.Document {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.docs[id]
	if !ok {
		return nil
	}
	copied := *doc
	return &copied
}

// GetAllDocuments returns a snapshot of all documents in insertion order
func (s *RAGStore) GetAllDocuments() []types.Document {
	s.mu.RLock()
	defer s.mu.RUnlock()

	docs := make([]types.Document, 0, len(s.docs))
	for _, id := range s.order {
		docs = append(docs, *s.docs[id])
	}
	return docs
}

// SearchDocuments scores every stored document against the query and
// returns at most MaxRetrievedDocs of them, best first. Documents below
// SimilarityThreshold are discarded. An empty or whitespace-only query
// returns no results without scoring anything.
func (s *RAGStore) SearchDocuments(query string) []types.Document {
	if strings.TrimSpace(query) == "" {
		return nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	queryEmbedding := s.embedder.Embed(query)

	type scoredDoc struct {
		doc   *types.Document
		score float64
	}
	scored := make([]scoredDoc, 0, len(s.docs))
	for _, id := range s.order {
		doc := s.docs[id]
		var score float64
		if len(doc.Embedding) > 0 {
			score = CosineSimilarity(queryEmbedding, doc.Embedding)
		} else {
			// documents restored without a vector
			score = tokenOverlap(query, doc.Content)
		}
		if score >= s.config.SimilarityThreshold {
			scored = append(scored, scoredDoc{doc: doc, score: score})
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})

	limit := s.config.MaxRetrievedDocs
	if limit > len(scored) {
		limit = len(scored)
	}
	results := make([]types.Document, 0, limit)
	for _, sd := range scored[:limit] {
		results = append(results, *sd.doc)
	}
	return results
}

// GenerateContext renders retrieved documents into a single text block
// suitable for prepending to an outgoing chat message
func (s *RAGStore) GenerateContext(docs []types.Document) string {
	if len(docs) == 0 {
		return ""
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Context from %d relevant document(s):\n\n", len(docs))
	for i, doc := range docs {
		if i > 0 {
			b.WriteString("\n\n---\n\n")
		}
		fmt.Fprintf(&b, "Document %d (%s):\n%s", i+1, doc.Title, doc.Content)
	}
	return b.String()
}

// Clear removes all documents
func (s *RAGStore) Clear(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, id := range s.order {
		s.mirrorDelete(ctx, id)
	}
	s.docs = make(map[string]*types.Document)
	s.order = nil
}

// Stats returns the document count and the total stored content size
func (s *RAGStore) Stats() types.StoreStats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := types.StoreStats{DocumentCount: len(s.docs)}
	for _, doc := range s.docs {
		stats.TotalSize += doc.Metadata.Size
	}
	return stats
}

// LoadPersisted restores documents from the attached persistence store.
// Documents persisted without an embedding are re-embedded on the way in.
func (s *RAGStore) LoadPersisted(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.persist == nil {
		return nil
	}
	docs, err := s.persist.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to load persisted documents: %v", err)
	}
	for i := range docs {
		doc := docs[i]
		if len(doc.Embedding) == 0 {
			doc.Embedding = s.embedder.Embed(doc.Content)
		}
		if _, ok := s.docs[doc.ID]; !ok {
			s.order = append(s.order, doc.ID)
		}
		s.docs[doc.ID] = &doc
	}
	for len(s.docs) > s.config.MaxDocuments {
		s.evictOldest(ctx)
	}
	return nil
}

// evictOldest removes the document with the smallest timestamp. Ties are
// broken by insertion order. Callers hold the write lock.
func (s *RAGStore) evictOldest(ctx context.Context) {
	if len(s.order) == 0 {
		return
	}
	oldest := s.order[0]
	for _, id := range s.order[1:] {
		if s.docs[id].Metadata.Timestamp < s.docs[oldest].Metadata.Timestamp {
			oldest = id
		}
	}
	s.deleteLocked(ctx, oldest)
}

func (s *RAGStore) deleteLocked(ctx context.Context, id string) {
	delete(s.docs, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	s.mirrorDelete(ctx, id)
}

func (s *RAGStore) mirrorPut(ctx context.Context, doc *types.Document) {
	if s.persist == nil {
		return
	}
	if err := s.persist.Put(ctx, doc); err != nil {
		log.Printf("Failed to persist document %s: %v", doc.ID, err)
	}
}

func (s *RAGStore) mirrorDelete(ctx context.Context, id string) {
	if s.persist == nil {
		return
	}
	if err := s.persist.Delete(ctx, id); err != nil {
		log.Printf("Failed to delete persisted document %s: %v", id, err)
	}
}
