// internal/storage/file_storage_test.go
package storage

import (
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestSaveAndLoadJSONFile(t *testing.T) {
	fs := NewFileStorage()
	path := filepath.Join(t.TempDir(), "nested", "dir", "data.json")

	payload := map[string][]string{"General": {"Squat"}}
	if err := fs.SaveJSONFile(path, payload); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	raw, err := fs.LoadTextFile(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	var loaded map[string][]string
	if err := json.Unmarshal(raw, &loaded); err != nil {
		t.Fatalf("saved content is not valid JSON: %v", err)
	}
	if !reflect.DeepEqual(payload, loaded) {
		t.Fatalf("round trip changed data: %v vs %v", payload, loaded)
	}
}

func TestSaveLeavesNoTempFile(t *testing.T) {
	fs := NewFileStorage()
	dir := t.TempDir()
	path := filepath.Join(dir, "data.json")

	if err := fs.SaveJSONFile(path, map[string]int{"a": 1}); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("reading dir failed: %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != "data.json" {
		t.Fatalf("unexpected directory contents: %v", entries)
	}
}

func TestSaveOverwritesAtomically(t *testing.T) {
	fs := NewFileStorage()
	path := filepath.Join(t.TempDir(), "data.json")

	if err := fs.SaveTextFile(path, []byte("first")); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if err := fs.SaveTextFile(path, []byte("second")); err != nil {
		t.Fatalf("overwrite failed: %v", err)
	}

	raw, err := fs.LoadTextFile(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if string(raw) != "second" {
		t.Fatalf("unexpected content after overwrite: %q", raw)
	}
}

func TestLoadMissingFile(t *testing.T) {
	fs := NewFileStorage()

	if _, err := fs.LoadTextFile(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatal("loading a missing file should fail")
	}
}

func TestFileExists(t *testing.T) {
	fs := NewFileStorage()
	dir := t.TempDir()
	path := filepath.Join(dir, "data.json")

	if fs.FileExists(path) {
		t.Fatal("missing file should not exist")
	}
	if fs.FileExists(dir) {
		t.Fatal("a directory is not a file")
	}

	if err := os.WriteFile(path, []byte("{}"), 0644); err != nil {
		t.Fatalf("writing file failed: %v", err)
	}
	if !fs.FileExists(path) {
		t.Fatal("existing file should be reported")
	}
}

func TestEnsureParentDirIdempotent(t *testing.T) {
	fs := NewFileStorage()
	path := filepath.Join(t.TempDir(), "sub", "data.json")

	if err := fs.EnsureParentDir(path); err != nil {
		t.Fatalf("first ensure failed: %v", err)
	}
	// An already existing directory is success
	if err := fs.EnsureParentDir(path); err != nil {
		t.Fatalf("second ensure failed: %v", err)
	}
}
