package serialize

import (
	"testing"

	"github.com/vE5li/igt5/internal/data"
)

func TestDataFromJSONObject(t *testing.T) {
	parsed, err := DataFromJSON(`{"name": "igt5", "count": 3, "ok": true}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	m, ok := parsed.(data.Map)
	if !ok {
		t.Fatalf("expected a map, got %T", parsed)
	}
	name, found := m.Index(data.Identifier("name"))
	if !found || name.(data.String) != "igt5" {
		t.Fatalf("expected name to be igt5, got %v", name)
	}
	count, found := m.Index(data.Identifier("count"))
	if !found || count.(data.Integer) != 3 {
		t.Fatalf("expected count to be 3, got %v", count)
	}
}

func TestDataFromJSONArray(t *testing.T) {
	parsed, err := DataFromJSON(`[1, 2.5, "x"]`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	list, ok := parsed.(data.List)
	if !ok {
		t.Fatalf("expected a list, got %T", parsed)
	}
	if list.Len() != 3 {
		t.Fatalf("expected 3 items, got %d", list.Len())
	}
	if list.Items()[0].(data.Integer) != 1 {
		t.Fatalf("expected 1, got %v", list.Items()[0])
	}
	if list.Items()[1].(data.Float) != 2.5 {
		t.Fatalf("expected 2.5, got %v", list.Items()[1])
	}
}

func TestDataFromJSONInvalid(t *testing.T) {
	if _, err := DataFromJSON("{not json"); err == nil {
		t.Fatalf("expected an error for invalid JSON")
	}
}

func TestDataToJSONRoundTrips(t *testing.T) {
	m, err := data.NewMap().Insert(data.Keyword("name"), data.String("igt5"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	m, err = m.Insert(data.Keyword("items"), data.NewList(data.Integer(1), data.Integer(2)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	text, err := DataToJSON(m)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	parsed, err := DataFromJSON(text)
	if err != nil {
		t.Fatalf("unexpected error parsing %q: %v", text, err)
	}
	parsedMap, ok := parsed.(data.Map)
	if !ok {
		t.Fatalf("expected a map, got %T", parsed)
	}
	name, found := parsedMap.Index(data.Identifier("name"))
	if !found || name.(data.String) != "igt5" {
		t.Fatalf("expected name igt5 to survive the round trip, got %v", name)
	}
}
