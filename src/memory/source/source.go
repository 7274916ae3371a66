// Package source supplies candidate memory collections to the ranker and
// hosts the file-backed agent memory store.
package source

import (
	"context"

	"github.com/recall-labs/go-recall/src/memory/model"
)

// Source yields a flat, fully-loaded candidate collection. Implementations
// must not require the caller to page or stream; the ranker consumes the
// whole slice in one pass.
type Source interface {
	Load(ctx context.Context) ([]model.MemoryRecord, error)
}

// SliceSource wraps an already-loaded record slice.
type SliceSource []model.MemoryRecord

func (s SliceSource) Load(_ context.Context) ([]model.MemoryRecord, error) {
	return s, nil
}
