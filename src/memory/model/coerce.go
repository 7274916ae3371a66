package model

import (
	json "github.com/alpkeskin/gotoon"
)

// Coercion helpers for the loosely-typed JSON documents memory collections
// arrive in. Unexpected shapes coerce to zero values rather than erroring;
// structural validation happens at the document level, not per field.

func FloatFromAny(v any) float64 {
	switch t := v.(type) {
	case float64:
		return t
	case float32:
		return float64(t)
	case int:
		return float64(t)
	case int64:
		return float64(t)
	case json.Number:
		f, _ := t.Float64()
		return f
	case string:
		var f float64
		if err := json.Unmarshal([]byte(t), &f); err == nil {
			return f
		}
	}
	return 0
}

func StringFromAny(v any) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}

func Float32SliceFromAny(v any) []float32 {
	switch t := v.(type) {
	case nil:
		return nil
	case []float32:
		out := make([]float32, len(t))
		copy(out, t)
		return out
	case []float64:
		out := make([]float32, len(t))
		for i, val := range t {
			out[i] = float32(val)
		}
		return out
	case []any:
		out := make([]float32, 0, len(t))
		for _, val := range t {
			out = append(out, float32(FloatFromAny(val)))
		}
		return out
	case json.RawMessage:
		var arr []float64
		if err := json.Unmarshal(t, &arr); err == nil {
			return Float32SliceFromAny(arr)
		}
	}
	return nil
}

func MapFromAny(v any) map[string]any {
	switch t := v.(type) {
	case nil:
		return nil
	case map[string]any:
		return CloneMetadata(t)
	}
	return nil
}

func CloneMetadata(meta map[string]any) map[string]any {
	if meta == nil {
		return map[string]any{}
	}
	cp := make(map[string]any, len(meta))
	for k, v := range meta {
		cp[k] = v
	}
	return cp
}

// RecordFromAny coerces one decoded JSON object into a MemoryRecord.
// Missing or ill-typed fields fall back to zero values; defaults for
// id and metadata are applied at ranking time, not here.
func RecordFromAny(v any) MemoryRecord {
	obj, ok := v.(map[string]any)
	if !ok {
		return MemoryRecord{}
	}
	var rec MemoryRecord
	if id, ok := obj["id"].(string); ok {
		rec.ID = id
	}
	rec.Content = obj["content"]
	rec.Embedding = Float32SliceFromAny(obj["embedding"])
	rec.Metadata = MapFromAny(obj["metadata"])
	return rec
}
