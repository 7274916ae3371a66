package model

import (
	"math"
	"testing"

	json "github.com/alpkeskin/gotoon"
)

func TestFloatFromAny(t *testing.T) {
	cases := []struct {
		name string
		in   any
		want float64
	}{
		{"float64", 1.5, 1.5},
		{"int", 2, 2},
		{"json", json.Number("3.25"), 3.25},
		{"string", "4.5", 4.5},
		{"invalid", struct{}{}, 0},
	}
	for _, tc := range cases {
		if got := FloatFromAny(tc.in); math.Abs(got-tc.want) > 1e-9 {
			t.Errorf("%s: expected %v, got %v", tc.name, tc.want, got)
		}
	}
}

func TestStringFromAny(t *testing.T) {
	if got := StringFromAny(nil); got != "" {
		t.Fatalf("expected empty string, got %q", got)
	}
	if got := StringFromAny("hello"); got != "hello" {
		t.Fatalf("expected \"hello\", got %q", got)
	}
	got := StringFromAny(map[string]int{"answer": 42})
	if got != "{\"answer\":42}" {
		t.Fatalf("unexpected serialization: %q", got)
	}
}

func TestFloat32SliceFromAny(t *testing.T) {
	got := Float32SliceFromAny([]any{json.Number("0.5"), 1, 2.5})
	if len(got) != 3 || got[0] != 0.5 || got[1] != 1 || got[2] != 2.5 {
		t.Fatalf("unexpected slice: %#v", got)
	}
	if Float32SliceFromAny("not a vector") != nil {
		t.Fatal("expected nil for non-numeric input")
	}
	if Float32SliceFromAny(nil) != nil {
		t.Fatal("expected nil for nil input")
	}
}

func TestCloneMetadataReturnsCopy(t *testing.T) {
	original := map[string]any{"foo": "bar"}
	cloned := CloneMetadata(original)
	cloned["foo"] = "baz"
	if original["foo"].(string) != "bar" {
		t.Fatal("expected original to remain unchanged")
	}
	if CloneMetadata(nil) == nil {
		t.Fatal("expected empty map for nil input")
	}
}

func TestRecordFromAny(t *testing.T) {
	rec := RecordFromAny(map[string]any{
		"id":        "mem-1",
		"content":   "remembered text",
		"embedding": []any{0.1, 0.2},
		"metadata":  map[string]any{"source": "chat"},
	})
	if rec.ID != "mem-1" {
		t.Fatalf("unexpected id: %q", rec.ID)
	}
	if rec.Content != "remembered text" {
		t.Fatalf("unexpected content: %v", rec.Content)
	}
	if len(rec.Embedding) != 2 {
		t.Fatalf("unexpected embedding: %#v", rec.Embedding)
	}
	if rec.Metadata["source"] != "chat" {
		t.Fatalf("unexpected metadata: %#v", rec.Metadata)
	}
}

func TestRecordFromAnyDefaultsMissingFields(t *testing.T) {
	rec := RecordFromAny(map[string]any{"content": "bare"})
	if rec.ID != "" || rec.Metadata != nil || rec.HasEmbedding() {
		t.Fatalf("expected zero-valued optional fields, got %#v", rec)
	}
	if rec := RecordFromAny("not an object"); rec.Content != nil {
		t.Fatalf("expected empty record for non-object input, got %#v", rec)
	}
}

func TestRecordFromAnyIgnoresIllTypedFields(t *testing.T) {
	rec := RecordFromAny(map[string]any{
		"id":        12,
		"content":   "x",
		"embedding": "oops",
		"metadata":  []any{"not", "a", "map"},
	})
	if rec.ID != "" {
		t.Fatalf("expected non-string id to be dropped, got %q", rec.ID)
	}
	if rec.HasEmbedding() {
		t.Fatalf("expected ill-typed embedding to be dropped, got %#v", rec.Embedding)
	}
	if rec.Metadata != nil {
		t.Fatalf("expected ill-typed metadata to be dropped, got %#v", rec.Metadata)
	}
}
