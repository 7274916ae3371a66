package source

import (
	"context"
	"errors"
	"os"

	json "github.com/alpkeskin/gotoon"

	"github.com/recall-labs/go-recall/src/memory/model"
)

// FileSource loads a memory collection from a JSON document holding an
// array of record-shaped objects. The file is re-read on every Load; the
// core keeps no cross-invocation state.
type FileSource struct {
	Path string
}

func NewFileSource(path string) *FileSource {
	return &FileSource{Path: path}
}

func (f *FileSource) Load(_ context.Context) ([]model.MemoryRecord, error) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, &ResourceError{Err: err}
	}
	return DecodeRecords(data)
}

// DecodeRecords parses a JSON array of memory objects. Malformed JSON or a
// non-array top level is an InputFormatError; individual records decode
// leniently, coercing or dropping ill-typed fields.
func DecodeRecords(data []byte) ([]model.MemoryRecord, error) {
	var raw []any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &InputFormatError{Err: err}
	}
	records := make([]model.MemoryRecord, 0, len(raw))
	for _, item := range raw {
		if _, ok := item.(map[string]any); !ok {
			return nil, &InputFormatError{Err: errors.New("memory document entries must be objects")}
		}
		records = append(records, model.RecordFromAny(item))
	}
	return records, nil
}
