package types

// Document represents a knowledge base document held by the retrieval store
type Document struct {
	ID        string           `bson:"_id" json:"id"`
	Title     string           `bson:"title" json:"title"`
	Content   string           `bson:"content" json:"content"`
	Embedding []float64        `bson:"embedding,omitempty" json:"embedding,omitempty"`
	Metadata  DocumentMetadata `bson:"metadata" json:"metadata"`
}

// DocumentMetadata contains additional document information.
// Timestamp and Size are assigned by the store at insertion time and
// override anything the caller supplies for those fields.
type DocumentMetadata struct {
	Source    string            `bson:"source,omitempty" json:"source,omitempty"`
	Type      string            `bson:"type,omitempty" json:"type,omitempty"`
	Timestamp int64             `bson:"timestamp" json:"timestamp"`
	Size      int               `bson:"size" json:"size"`
	Custom    map[string]string `bson:"custom,omitempty" json:"custom,omitempty"`
}

// RAGConfig contains configuration options for the document store.
// ChunkSize and ChunkOverlap are reserved for chunked storage; whole
// documents are embedded and stored for now.
type RAGConfig struct {
	MaxDocuments        int     `mapstructure:"max_documents"`
	ChunkSize           int     `mapstructure:"chunk_size"`
	ChunkOverlap        int     `mapstructure:"chunk_overlap"`
	SimilarityThreshold float64 `mapstructure:"similarity_threshold"`
	MaxRetrievedDocs    int     `mapstructure:"max_retrieved_docs"`
}

var DefaultRAGConfig = RAGConfig{
	MaxDocuments:        1000,
	ChunkSize:           1024,
	ChunkOverlap:        128,
	SimilarityThreshold: 0.5,
	MaxRetrievedDocs:    5,
}

// StoreStats is a snapshot of the document store counters
type StoreStats struct {
	DocumentCount int `json:"document_count"`
	TotalSize     int `json:"total_size"`
}
