// Package retrieval is the invocation boundary for similarity search: it
// parses inputs, runs the ranker over a candidate source, and guarantees
// that every failure is reported as a single-element error envelope instead
// of escaping or mixing with partial results.
package retrieval

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"

	json "github.com/alpkeskin/gotoon"

	"github.com/recall-labs/go-recall/src/memory/model"
	"github.com/recall-labs/go-recall/src/memory/ranker"
	"github.com/recall-labs/go-recall/src/memory/source"
)

// Request carries one fully-parsed retrieval invocation.
type Request struct {
	Query []float32
	TopK  int
}

// ArgumentError reports an invocation argument that cannot be interpreted,
// such as a non-integer or negative result limit.
type ArgumentError struct {
	Err error
}

func (e *ArgumentError) Error() string {
	return "invalid argument: " + e.Err.Error()
}

func (e *ArgumentError) Unwrap() error { return e.Err }

// ParseQuery parses a JSON array of numbers into a query vector. Any other
// top-level value, including null, is a format error.
func ParseQuery(raw string) ([]float32, error) {
	var query []float32
	if err := json.Unmarshal([]byte(raw), &query); err != nil {
		return nil, &source.InputFormatError{Err: fmt.Errorf("query vector: %w", err)}
	}
	if query == nil {
		return nil, &source.InputFormatError{Err: errors.New("query vector: expected a JSON array")}
	}
	return query, nil
}

// ParseTopK parses the result-count bound. Negative limits are rejected;
// the permissive drop-last slicing of loosely-typed hosts is not honored.
func ParseTopK(raw string) (int, error) {
	topK, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &ArgumentError{Err: fmt.Errorf("top-k: %w", err)}
	}
	if topK < 0 {
		return 0, &ArgumentError{Err: fmt.Errorf("top-k must not be negative, got %d", topK)}
	}
	return topK, nil
}

// Retrieve loads the candidate collection and ranks it against the request.
func Retrieve(ctx context.Context, src source.Source, req Request) ([]ranker.ScoredResult, error) {
	if req.TopK < 0 {
		return nil, &ArgumentError{Err: fmt.Errorf("top-k must not be negative, got %d", req.TopK)}
	}
	candidates, err := src.Load(ctx)
	if err != nil {
		return nil, err
	}
	return ranker.Rank(req.Query, candidates, req.TopK)
}

// RetrieveRecords ranks an already-loaded candidate slice.
func RetrieveRecords(ctx context.Context, records []model.MemoryRecord, req Request) ([]ranker.ScoredResult, error) {
	return Retrieve(ctx, source.SliceSource(records), req)
}

// WriteResults emits the ranked results as a JSON array.
func WriteResults(w io.Writer, results []ranker.ScoredResult) error {
	if results == nil {
		results = []ranker.ScoredResult{}
	}
	data, err := json.Marshal(results)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// WriteError emits the error envelope: a single-element array holding one
// object whose only key is "error". It replaces the normal output entirely.
func WriteError(w io.Writer, failure error) error {
	envelope := []map[string]string{{"error": failure.Error()}}
	data, err := json.Marshal(envelope)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// EncodeTOON renders results in token-oriented object notation, the compact
// form used when injecting retrieved memories into a model prompt.
func EncodeTOON(results []ranker.ScoredResult) (string, error) {
	if results == nil {
		results = []ranker.ScoredResult{}
	}
	return json.Encode(results)
}
