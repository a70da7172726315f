package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tranvd/ragchat-be/types"
)

func newTestStore(t *testing.T, config types.RAGConfig) *RAGStore {
	t.Helper()
	store, err := NewRAGStore(config, NewHashingEmbedder())
	require.NoError(t, err)
	return store
}

// fakeDocumentStore is an in-memory stand-in for the durable mirror
type fakeDocumentStore struct {
	docs    map[string]types.Document
	puts    int
	deletes int
}

func newFakeDocumentStore() *fakeDocumentStore {
	return &fakeDocumentStore{docs: make(map[string]types.Document)}
}

func (f *fakeDocumentStore) Put(_ context.Context, doc *types.Document) error {
	f.puts++
	f.docs[doc.ID] = *doc
	return nil
}

func (f *fakeDocumentStore) Get(_ context.Context, id string) (*types.Document, error) {
	doc, ok := f.docs[id]
	if !ok {
		return nil, nil
	}
	return &doc, nil
}

func (f *fakeDocumentStore) Delete(_ context.Context, id string) error {
	f.deletes++
	delete(f.docs, id)
	return nil
}

func (f *fakeDocumentStore) ListAll(_ context.Context) ([]types.Document, error) {
	docs := make([]types.Document, 0, len(f.docs))
	for _, doc := range f.docs {
		docs = append(docs, doc)
	}
	return docs, nil
}

func TestNewRAGStoreConfig(t *testing.T) {
	store, err := NewRAGStore(types.RAGConfig{}, nil)
	require.NoError(t, err)
	assert.Equal(t, types.DefaultRAGConfig.MaxDocuments, store.config.MaxDocuments)
	assert.Equal(t, types.DefaultRAGConfig.SimilarityThreshold, store.config.SimilarityThreshold)
	assert.Equal(t, types.DefaultRAGConfig.MaxRetrievedDocs, store.config.MaxRetrievedDocs)

	_, err = NewRAGStore(types.RAGConfig{MaxDocuments: -1}, nil)
	assert.Error(t, err)
}

func TestAddDocumentAssignsMetadata(t *testing.T) {
	store := newTestStore(t, types.RAGConfig{})

	// caller-supplied timestamp and size must be overridden
	id := store.AddDocument(context.Background(), "title", "some content here", types.DocumentMetadata{
		Source:    "unit",
		Timestamp: 12345,
		Size:      999,
	})
	require.NotEmpty(t, id)

	doc := store.GetDocument(id)
	require.NotNil(t, doc)
	assert.Equal(t, "unit", doc.Metadata.Source)
	assert.NotEqual(t, int64(12345), doc.Metadata.Timestamp)
	assert.Positive(t, doc.Metadata.Timestamp)
	assert.Equal(t, len("some content here"), doc.Metadata.Size)
	assert.Len(t, doc.Embedding, EmbeddingDimension)
}

func TestAddDocumentUniqueIDs(t *testing.T) {
	store := newTestStore(t, types.RAGConfig{})

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		id := store.AddDocument(context.Background(), "t", "c", types.DocumentMetadata{})
		assert.False(t, seen[id], "id %s reused", id)
		seen[id] = true
	}
}

func TestCapacityEviction(t *testing.T) {
	store := newTestStore(t, types.RAGConfig{MaxDocuments: 3})

	first := store.AddDocument(context.Background(), "first", "oldest content", types.DocumentMetadata{})
	ids := []string{first}
	for _, title := range []string{"second", "third", "fourth"} {
		ids = append(ids, store.AddDocument(context.Background(), title, title+" content", types.DocumentMetadata{}))
	}

	assert.Equal(t, 3, store.Stats().DocumentCount)
	assert.Nil(t, store.GetDocument(first), "oldest document should have been evicted")
	for _, id := range ids[1:] {
		assert.NotNil(t, store.GetDocument(id))
	}
}

func TestRemoveDocument(t *testing.T) {
	store := newTestStore(t, types.RAGConfig{})

	id := store.AddDocument(context.Background(), "t", "c", types.DocumentMetadata{})
	assert.True(t, store.RemoveDocument(context.Background(), id))
	assert.False(t, store.RemoveDocument(context.Background(), id))
	assert.False(t, store.RemoveDocument(context.Background(), "missing"))
}

func TestGetAllDocumentsInsertionOrder(t *testing.T) {
	store := newTestStore(t, types.RAGConfig{})

	store.AddDocument(context.Background(), "a", "alpha", types.DocumentMetadata{})
	store.AddDocument(context.Background(), "b", "beta", types.DocumentMetadata{})
	store.AddDocument(context.Background(), "c", "gamma", types.DocumentMetadata{})

	docs := store.GetAllDocuments()
	require.Len(t, docs, 3)
	assert.Equal(t, []string{"a", "b", "c"}, []string{docs[0].Title, docs[1].Title, docs[2].Title})
}

func TestSearchDocumentsEmptyQuery(t *testing.T) {
	store := newTestStore(t, types.RAGConfig{})
	store.AddDocument(context.Background(), "t", "some content", types.DocumentMetadata{})

	assert.Empty(t, store.SearchDocuments(""))
	assert.Empty(t, store.SearchDocuments("   "))
	assert.Empty(t, store.SearchDocuments("\t\n"))
}

func TestSearchDocumentsRanking(t *testing.T) {
	store := newTestStore(t, types.RAGConfig{})

	a := store.AddDocument(context.Background(), "A", "the quick brown fox", types.DocumentMetadata{})
	store.AddDocument(context.Background(), "B", "jumps over the lazy dog", types.DocumentMetadata{})

	results := store.SearchDocuments("quick fox")
	require.Len(t, results, 1, "only the overlapping document clears the default threshold")
	assert.Equal(t, a, results[0].ID)
	assert.Equal(t, "A", results[0].Title)
}

func TestSearchDocumentsLimit(t *testing.T) {
	store := newTestStore(t, types.RAGConfig{MaxRetrievedDocs: 2, SimilarityThreshold: 0.1})

	for _, title := range []string{"one", "two", "three", "four"} {
		store.AddDocument(context.Background(), title, "shared keyword text", types.DocumentMetadata{})
	}

	results := store.SearchDocuments("shared keyword")
	assert.Len(t, results, 2)
}

func TestSearchDocumentsThreshold(t *testing.T) {
	store := newTestStore(t, types.RAGConfig{SimilarityThreshold: 0.99})

	store.AddDocument(context.Background(), "t", "completely different words", types.DocumentMetadata{})
	assert.Empty(t, store.SearchDocuments("unrelated query"))
}

func TestSearchDocumentsLexicalFallback(t *testing.T) {
	store := newTestStore(t, types.RAGConfig{})

	id := store.AddDocument(context.Background(), "t", "the quick brown fox", types.DocumentMetadata{})

	// simulate a document restored without its vector
	store.mu.Lock()
	store.docs[id].Embedding = nil
	store.mu.Unlock()

	results := store.SearchDocuments("quick fox")
	require.Len(t, results, 1)
	assert.Equal(t, id, results[0].ID)
}

func TestGenerateContext(t *testing.T) {
	store := newTestStore(t, types.RAGConfig{})

	assert.Equal(t, "", store.GenerateContext(nil))
	assert.Equal(t, "", store.GenerateContext([]types.Document{}))

	single := store.GenerateContext([]types.Document{
		{Title: "Guide", Content: "how to operate the machine"},
	})
	assert.Contains(t, single, "Context from 1 relevant document(s):")
	assert.Contains(t, single, "Document 1 (Guide):")
	assert.Contains(t, single, "how to operate the machine")

	double := store.GenerateContext([]types.Document{
		{Title: "First", Content: "alpha"},
		{Title: "Second", Content: "beta"},
	})
	assert.Contains(t, double, "Context from 2 relevant document(s):")
	assert.Contains(t, double, "Document 1 (First):\nalpha")
	assert.Contains(t, double, "Document 2 (Second):\nbeta")
	assert.Equal(t, 1, strings.Count(double, "\n---\n"), "blocks separated by one delimiter line")
}

func TestClearAndStats(t *testing.T) {
	store := newTestStore(t, types.RAGConfig{})

	store.AddDocument(context.Background(), "a", "12345", types.DocumentMetadata{})
	store.AddDocument(context.Background(), "b", "1234567890", types.DocumentMetadata{})

	stats := store.Stats()
	assert.Equal(t, 2, stats.DocumentCount)
	assert.Equal(t, 15, stats.TotalSize)

	store.Clear(context.Background())
	stats = store.Stats()
	assert.Zero(t, stats.DocumentCount)
	assert.Zero(t, stats.TotalSize)
	assert.Empty(t, store.GetAllDocuments())
}

func TestPersistenceMirror(t *testing.T) {
	store := newTestStore(t, types.RAGConfig{MaxDocuments: 2})
	fake := newFakeDocumentStore()
	store.AttachPersistence(fake)

	first := store.AddDocument(context.Background(), "first", "oldest", types.DocumentMetadata{})
	store.AddDocument(context.Background(), "second", "newer", types.DocumentMetadata{})
	assert.Len(t, fake.docs, 2)

	// eviction reaches the mirror too
	store.AddDocument(context.Background(), "third", "newest", types.DocumentMetadata{})
	assert.Len(t, fake.docs, 2)
	_, evicted := fake.docs[first]
	assert.False(t, evicted)

	store.Clear(context.Background())
	assert.Empty(t, fake.docs)
}

func TestLoadPersisted(t *testing.T) {
	fake := newFakeDocumentStore()
	fake.docs["doc-1"] = types.Document{
		ID:      "doc-1",
		Title:   "restored",
		Content: "the quick brown fox",
		Metadata: types.DocumentMetadata{
			Timestamp: 1,
			Size:      len("the quick brown fox"),
		},
	}

	store := newTestStore(t, types.RAGConfig{})
	store.AttachPersistence(fake)
	require.NoError(t, store.LoadPersisted(context.Background()))

	doc := store.GetDocument("doc-1")
	require.NotNil(t, doc)
	assert.Equal(t, "restored", doc.Title)
	assert.Len(t, doc.Embedding, EmbeddingDimension, "missing vectors are recomputed on load")

	results := store.SearchDocuments("quick fox")
	require.Len(t, results, 1)
	assert.Equal(t, "doc-1", results[0].ID)
}
