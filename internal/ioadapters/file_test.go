package ioadapters

import (
	"path/filepath"
	"testing"

	"github.com/vE5li/igt5/internal/data"
)

func TestReadWriteFileRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")

	if err := WriteFile(path, "hello igt5"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	content, err := ReadFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if content != "hello igt5" {
		t.Fatalf("expected %q, got %q", "hello igt5", content)
	}
}

func TestReadFileMissing(t *testing.T) {
	if _, err := ReadFile(filepath.Join(t.TempDir(), "missing.txt")); err == nil {
		t.Fatalf("expected an error for a missing file")
	}
}

func TestWriteReadMapRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "project.data")

	m, err := data.NewMap().Insert(data.Keyword("name"), data.String("igt5"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := WriteMap(path, m); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	parsed, err := ReadMap(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	parsedMap, ok := parsed.(data.Map)
	if !ok {
		t.Fatalf("expected a map, got %T", parsed)
	}
	name, found := parsedMap.Index(data.Keyword("name"))
	if !found || name.(data.String) != "igt5" {
		t.Fatalf("expected name igt5 to survive the round trip, got %v", name)
	}
}

func TestWriteReadListRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "items.data")

	list := data.NewList(data.Integer(1), data.Integer(2), data.Integer(3))

	if err := WriteList(path, list); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	parsed, err := ReadList(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	parsedList, ok := parsed.(data.List)
	if !ok {
		t.Fatalf("expected a list, got %T", parsed)
	}
	if parsedList.Len() != 3 {
		t.Fatalf("expected 3 items, got %d", parsedList.Len())
	}
}

func TestWriteMapRejectsNonMap(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.data")
	if err := WriteMap(path, data.Integer(5)); err == nil {
		t.Fatalf("expected an error writing a non-map as a map")
	}
}
