package serialize

import (
	"testing"

	"github.com/vE5li/igt5/internal/data"
)

func TestSerializeScalars(t *testing.T) {
	tests := []struct {
		name     string
		value    data.Data
		expected string
	}{
		{"identifier", data.Identifier("foo"), "foo"},
		{"keyword", data.Keyword("bar"), "#bar"},
		{"integer", data.Integer(42), "42"},
		{"negative integer", data.Integer(-7), "-7"},
		{"float with fraction", data.Float(1.5), "1.5"},
		{"float without fraction", data.Float(2), "2.0"},
		{"boolean true", data.Boolean(true), "$true"},
		{"boolean false", data.Boolean(false), "$false"},
		{"string", data.String("hi"), `"hi"`},
		{"character", data.Character('x'), "'x'"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Serialize(tt.value); got != tt.expected {
				t.Errorf("Serialize(%v) = %q, want %q", tt.value, got, tt.expected)
			}
		})
	}
}

func TestSerializeEscapesLiterals(t *testing.T) {
	value := data.String("a\\b\nc\"d")
	got := Serialize(value)
	want := `"a\\b\nc\"d"`
	if got != want {
		t.Fatalf("Serialize() = %q, want %q", got, want)
	}
}

func TestSerializePath(t *testing.T) {
	path, err := data.NewPath([]data.Data{data.Keyword("a"), data.Keyword("b"), data.Integer(3)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, want := Serialize(path), "#a:#b:3"; got != want {
		t.Fatalf("Serialize(path) = %q, want %q", got, want)
	}
}

func TestSerializeRoundTripsThroughDeserialize(t *testing.T) {
	m, err := data.NewMap().Insert(data.Keyword("name"), data.String("igt5"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	m, err = m.Insert(data.Keyword("values"), data.NewList(data.Integer(1), data.Integer(2), data.Boolean(true)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	text := Serialize(m)
	parsed, err := Deserialize(text)
	if err != nil {
		t.Fatalf("unexpected error parsing %q: %v", text, err)
	}
	if !parsed.Equal(m) {
		t.Fatalf("round trip mismatch: got %v, want %v", parsed, m)
	}
}

func TestDeserializeMap(t *testing.T) {
	parsed, err := Deserialize(`{ #name "igt5" #count 3 }`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	m, ok := parsed.(data.Map)
	if !ok {
		t.Fatalf("expected a map, got %T", parsed)
	}
	name, found := m.Index(data.Keyword("name"))
	if !found || name.(data.String) != "igt5" {
		t.Fatalf("expected name to be igt5, got %v", name)
	}
	count, found := m.Index(data.Keyword("count"))
	if !found || count.(data.Integer) != 3 {
		t.Fatalf("expected count to be 3, got %v", count)
	}
}

func TestDeserializeList(t *testing.T) {
	parsed, err := Deserialize(`[ 1 2 -3 ]`)
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
	if list.Items()[2].(data.Integer) != -3 {
		t.Fatalf("expected -3 as the third item, got %v", list.Items()[2])
	}
}

func TestDeserializeFloat(t *testing.T) {
	parsed, err := Deserialize("-3.25")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	f, ok := parsed.(data.Float)
	if !ok {
		t.Fatalf("expected a float, got %T", parsed)
	}
	if float64(f) != -3.25 {
		t.Fatalf("expected -3.25, got %v", f)
	}
}

func TestDeserializeBoolean(t *testing.T) {
	parsed, err := Deserialize("$true")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if parsed.(data.Boolean) != true {
		t.Fatalf("expected true, got %v", parsed)
	}

	if _, err := Deserialize("$maybe"); err == nil {
		t.Fatalf("expected an error for an unrecognized boolean word")
	}
}

func TestDeserializeCharacterRejectsMultipleBytes(t *testing.T) {
	if _, err := Deserialize("'ab'"); err == nil {
		t.Fatalf("expected an error for a multi-byte character literal")
	}
}

func TestDeserializePath(t *testing.T) {
	parsed, err := Deserialize("#root:#build:#context")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	path, ok := parsed.(data.Path)
	if !ok {
		t.Fatalf("expected a path, got %T", parsed)
	}
	if len(path.Steps) != 3 {
		t.Fatalf("expected 3 path steps, got %d", len(path.Steps))
	}
}

func TestDeserializeRejectsPathMapKey(t *testing.T) {
	if _, err := Deserialize(`{ #a:#b 1 }`); err == nil {
		t.Fatalf("expected an error for a path used as a map key")
	}
}

func TestDeserializeSkipsComments(t *testing.T) {
	parsed, err := Deserialize("@ a line comment\n@@ a block comment @@ #value")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if parsed.(data.Keyword) != data.Keyword("value") {
		t.Fatalf("expected #value after the comments, got %v", parsed)
	}
}

func TestEncodeDecodeMap(t *testing.T) {
	m, err := data.NewMap().Insert(data.Keyword("a"), data.Integer(1))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	encoded, err := EncodeMap(m)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	decoded, err := DecodeMap(encoded)
	if err != nil {
		t.Fatalf("unexpected error decoding %q: %v", encoded, err)
	}
	if !decoded.Equal(m) {
		t.Fatalf("round trip mismatch: got %v, want %v", decoded, m)
	}
}

func TestEncodeDecodeList(t *testing.T) {
	list := data.NewList(data.String("a"), data.String("b"))
	encoded, err := EncodeList(list)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	decoded, err := DecodeList(encoded)
	if err != nil {
		t.Fatalf("unexpected error decoding %q: %v", encoded, err)
	}
	if !decoded.Equal(list) {
		t.Fatalf("round trip mismatch: got %v, want %v", decoded, list)
	}
}

func TestEncodeMapRejectsNonMap(t *testing.T) {
	if _, err := EncodeMap(data.Integer(1)); err == nil {
		t.Fatalf("expected an error encoding a non-map as a map")
	}
}
