// Tests for JSONL read/write helpers.
package sqlite

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestReadJSONLSkipsMalformedLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "records.jsonl")
	content := `{"a": 1}
not json at all

{"b": 2}
{broken
{"c": 3}
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	records, err := readJSONL(path)
	if err != nil {
		t.Fatalf("readJSONL failed: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected 3 valid records, got %d", len(records))
	}
}

func TestReadJSONLMissingFile(t *testing.T) {
	_, err := readJSONL(filepath.Join(t.TempDir(), "absent.jsonl"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestWriteJSONLRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.jsonl")
	records := []json.RawMessage{
		json.RawMessage(`{"startup_id":"s-1"}`),
		json.RawMessage(`{"startup_id":"s-2"}`),
	}

	if err := writeJSONL(path, records); err != nil {
		t.Fatalf("writeJSONL failed: %v", err)
	}

	got, err := readJSONL(path)
	if err != nil {
		t.Fatalf("readJSONL failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 records, got %d", len(got))
	}
	if string(got[0]) != `{"startup_id":"s-1"}` {
		t.Errorf("record mismatch: %s", got[0])
	}
}

func TestWriteJSONLReplacesExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.jsonl")
	if err := writeJSONL(path, []json.RawMessage{json.RawMessage(`{"old":true}`)}); err != nil {
		t.Fatalf("first write failed: %v", err)
	}
	if err := writeJSONL(path, []json.RawMessage{json.RawMessage(`{"new":true}`)}); err != nil {
		t.Fatalf("second write failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading file: %v", err)
	}
	if strings.Contains(string(data), "old") {
		t.Errorf("rewrite left stale content: %s", data)
	}

	// No temp files left behind.
	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatalf("reading dir: %v", err)
	}
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".tmp") {
			t.Errorf("leftover temp file: %s", e.Name())
		}
	}
}

func TestMarshalLines(t *testing.T) {
	type rec struct {
		ID string `json:"id"`
	}
	lines, err := marshalLines([]*rec{{ID: "a"}, {ID: "b"}})
	if err != nil {
		t.Fatalf("marshalLines failed: %v", err)
	}
	if len(lines) != 2 || string(lines[0]) != `{"id":"a"}` {
		t.Fatalf("unexpected lines: %v", lines)
	}
}
