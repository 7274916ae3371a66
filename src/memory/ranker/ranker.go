// Package ranker selects the top-K most similar memory records for a query
// embedding using an exact, brute-force cosine-similarity scan.
package ranker

import (
	"fmt"
	"sort"

	"github.com/recall-labs/go-recall/src/memory/model"
)

// ScoredResult pairs a candidate's payload with its similarity score.
// Field order matches the wire output: content, score, metadata, id.
type ScoredResult struct {
	Content  any            `json:"content"`
	Score    float64        `json:"score"`
	Metadata map[string]any `json:"metadata"`
	ID       string         `json:"id"`
}

// Rank scores every candidate carrying an embedding against the query and
// returns the topK best, ordered by descending score. Candidates without an
// embedding are skipped, not errors. The sort is stable: candidates with
// equal scores keep their input order. A topK larger than the scored set
// returns everything; topK of zero returns an empty slice. A negative topK
// is rejected.
func Rank(query []float32, candidates []model.MemoryRecord, topK int) ([]ScoredResult, error) {
	if topK < 0 {
		return nil, fmt.Errorf("result limit must not be negative, got %d", topK)
	}
	results := make([]ScoredResult, 0, len(candidates))
	for _, rec := range candidates {
		if !rec.HasEmbedding() {
			continue
		}
		id := rec.ID
		if id == "" {
			id = model.DefaultID
		}
		metadata := rec.Metadata
		if metadata == nil {
			metadata = map[string]any{}
		}
		results = append(results, ScoredResult{
			Content:  rec.Content,
			Score:    model.CosineSimilarity(query, rec.Embedding),
			Metadata: metadata,
			ID:       id,
		})
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	if len(results) > topK {
		results = results[:topK]
	}
	return results, nil
}
