package serialize

import (
	"testing"

	"github.com/vE5li/igt5/internal/data"
)

func TestDataFromYAMLObject(t *testing.T) {
	parsed, err := DataFromYAML("name: igt5\ncount: 3\nok: true\n")
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

func TestDataFromYAMLList(t *testing.T) {
	parsed, err := DataFromYAML("- 1\n- 2\n- three\n")
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
}

func TestDataToYAMLRoundTrips(t *testing.T) {
	m, err := data.NewMap().Insert(data.Keyword("name"), data.String("igt5"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	m, err = m.Insert(data.Keyword("pipeline"), data.NewList(data.Identifier("expand"), data.Identifier("build")))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	text, err := DataToYAML(m)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	parsed, err := DataFromYAML(text)
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
