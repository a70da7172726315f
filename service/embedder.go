package service

import (
	"math"
	"strings"
)

// EmbeddingDimension is the fixed length of generated vectors
const EmbeddingDimension = 100

// Embedder converts text into a fixed-length vector used for similarity
// scoring. The document store treats it as a pluggable strategy so a real
// embedding model can replace the default lexical one without touching
// the search or ranking logic.
type Embedder interface {
	Embed(text string) []float64
	Dimension() int
}

// HashingEmbedder is a bag-of-hashed-tokens embedder. Each token is
// hashed into one of the vector's buckets and the result is
// L2-normalized. Collisions are expected; the vector is a cheap
// deterministic similarity signal, not a semantic representation.
type HashingEmbedder struct {
	dimension int
}

func NewHashingEmbedder() *HashingEmbedder {
	return &HashingEmbedder{dimension: EmbeddingDimension}
}

func (e *HashingEmbedder) Dimension() int { return e.dimension }

func (e *HashingEmbedder) Embed(text string) []float64 {
	vec := make([]float64, e.dimension)
	for _, token := range strings.Fields(strings.ToLower(text)) {
		// rolling hash with signed 32-bit wraparound
		var hash int32
		for _, c := range token {
			hash = hash*31 + int32(c)
		}
		idx := int(hash)
		if idx < 0 {
			idx = -idx
		}
		vec[idx%e.dimension]++
	}
	normalize(vec)
	return vec
}

// normalize scales vec to unit Euclidean length in place. A zero vector
// is left untouched.
func normalize(vec []float64) {
	var sum float64
	for _, v := range vec {
		sum += v * v
	}
	norm := math.Sqrt(sum)
	if norm == 0 {
		return
	}
	for i := range vec {
		vec[i] /= norm
	}
}

// CosineSimilarity returns the dot product over norms of a and b.
// Mismatched dimensions or a zero-norm operand score 0.
func CosineSimilarity(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// tokenOverlap scores the fraction of query tokens that appear in the
// target text. Used as a fallback when a document has no embedding.
func tokenOverlap(query, text string) float64 {
	queryTokens := strings.Fields(strings.ToLower(query))
	if len(queryTokens) == 0 {
		return 0
	}
	textTokens := make(map[string]bool)
	for _, t := range strings.Fields(strings.ToLower(text)) {
		textTokens[t] = true
	}
	matched := 0
	for _, t := range queryTokens {
		if textTokens[t] {
			matched++
		}
	}
	return float64(matched) / float64(len(queryTokens))
}
