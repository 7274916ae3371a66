package model

// MemoryRecord is a single candidate entry in a memory collection.
// Content is an opaque payload carried through to results verbatim.
// A record without an embedding is never scored and never an error.
type MemoryRecord struct {
	ID        string         `json:"id,omitempty"`
	Content   any            `json:"content"`
	Embedding []float32      `json:"embedding,omitempty"`
	Metadata  map[string]any `json:"metadata,omitempty"`
}

// DefaultID is substituted for records that carry no identifier.
const DefaultID = "unknown"

// HasEmbedding reports whether the record can participate in similarity scoring.
func (r MemoryRecord) HasEmbedding() bool {
	return len(r.Embedding) > 0
}
