package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	json "github.com/alpkeskin/gotoon"
)

func writeMemoryFixture(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "memories.json")
	doc := `[
		{"id": "a", "content": "x", "embedding": [1, 0]},
		{"id": "b", "content": "y", "embedding": [0, 1]},
		{"id": "c", "content": "z", "embedding": []}
	]`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	return path
}

func TestRunRank(t *testing.T) {
	var buf bytes.Buffer
	runRank(&buf, "[1, 0]", writeMemoryFixture(t), "2", "json")
	var results []map[string]any
	if err := json.Unmarshal(buf.Bytes(), &results); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, buf.String())
	}
	if len(results) != 2 || results[0]["id"] != "a" || results[1]["id"] != "b" {
		t.Fatalf("unexpected output: %s", buf.String())
	}
}

func TestRunRankErrorEnvelope(t *testing.T) {
	cases := []struct {
		name              string
		query, file, topK string
	}{
		{"malformed query", "not json", writeMemoryFixture(t), "2"},
		{"null query", "null", writeMemoryFixture(t), "2"},
		{"missing file", "[1, 0]", filepath.Join(t.TempDir(), "absent.json"), "2"},
		{"bad top-k", "[1, 0]", writeMemoryFixture(t), "two"},
		{"negative top-k", "[1, 0]", writeMemoryFixture(t), "-1"},
	}
	for _, tc := range cases {
		var buf bytes.Buffer
		runRank(&buf, tc.query, tc.file, tc.topK, "json")
		var envelope []map[string]string
		if err := json.Unmarshal(buf.Bytes(), &envelope); err != nil {
			t.Fatalf("%s: envelope is not valid JSON: %v", tc.name, err)
		}
		if len(envelope) != 1 || envelope[0]["error"] == "" {
			t.Fatalf("%s: unexpected envelope: %s", tc.name, buf.String())
		}
	}
}

func TestRunRankTopKZero(t *testing.T) {
	var buf bytes.Buffer
	runRank(&buf, "[1, 0]", writeMemoryFixture(t), "0", "json")
	var results []map[string]any
	if err := json.Unmarshal(buf.Bytes(), &results); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if len(results) != 0 {
		t.Fatalf("expected empty array, got %s", buf.String())
	}
}

func TestRunRankTOONFormat(t *testing.T) {
	var buf bytes.Buffer
	runRank(&buf, "[1, 0]", writeMemoryFixture(t), "1", "toon")
	if buf.Len() == 0 {
		t.Fatal("expected TOON output")
	}
	if json.Valid(buf.Bytes()) {
		t.Fatalf("expected non-JSON TOON output, got %s", buf.String())
	}
}
