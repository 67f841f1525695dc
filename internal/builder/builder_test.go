package builder

import (
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"

	"github.com/vE5li/igt5/internal/data"
	"github.com/vE5li/igt5/internal/parser"
	"github.com/vE5li/igt5/internal/template"
	"github.com/vE5li/igt5/internal/token"
	"github.com/vE5li/igt5/internal/tokenizer"
)

func mustInsert(t *testing.T, m data.Map, key string, value data.Data) data.Map {
	t.Helper()
	out, err := m.Insert(data.Keyword(key), value)
	if err != nil {
		t.Fatalf("insert %s: %v", key, err)
	}
	return out
}

func buildGrammar(t *testing.T, body data.Data) data.Map {
	t.Helper()
	templateRoot := data.NewMap()
	templateRoot = mustInsert(t, templateRoot, "top", body)
	root := data.NewMap()
	root = mustInsert(t, root, "template", templateRoot)
	return root
}

// TestBuildConfirmedIntegerList runs the full C4->C5->C6 pipeline over a
// small "confirmed list of integers separated by comma" grammar and checks
// the resulting Data tree shape (§4.6 item 4's List/Confirmed build rule).
func TestBuildConfirmedIntegerList(t *testing.T) {
	part := data.NewList(data.Keyword("integer"))
	separator := data.NewList(data.Keyword("operator"), data.NewList(data.Identifier("comma")))
	topPiece := data.NewList(data.Keyword("confirmed"), data.Identifier("item"), part, separator)
	flavor := data.NewList(topPiece)
	body := data.NewList(flavor)
	root := buildGrammar(t, body)

	registry := &tokenizer.Registry{HasIntegers: true, OperatorNames: []string{"comma"}}
	templates, err := template.Load(root, registry)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	tokens := []token.Token{
		{Kind: token.Integer, Integer: 1},
		{Kind: token.Operator, Text: "comma"},
		{Kind: token.Integer, Integer: 2},
	}
	decisions, err := parser.New(tokens, templates, registry).Parse()
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	result, _, err := New(tokens, decisions, templates).Build(true)
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	itemsData, ok := result.Index(data.Identifier("item"))
	if !ok {
		t.Fatalf("expected key item in %s", result.String())
	}
	items, ok := itemsData.(data.List)
	if !ok {
		t.Fatalf("expected item to be a list, got %s", itemsData.String())
	}
	if items.Len() != 2 {
		t.Fatalf("expected 2 list items, got %d", items.Len())
	}

	first, ok := items.Items()[0].(data.Map)
	if !ok {
		t.Fatalf("expected list item to be a map")
	}
	partValue, ok := first.Index(data.Identifier("part"))
	if !ok {
		t.Fatalf("expected part key in list item")
	}
	if partValue.(data.Integer) != 1 {
		t.Fatalf("expected first part to be 1, got %s", partValue.String())
	}
	if _, ok := first.Index(data.Identifier("separator")); !ok {
		t.Fatalf("expected first item to carry a separator")
	}

	if _, ok := result.Index(data.Keyword("position")); !ok {
		t.Fatalf("expected a position submap")
	}
}

// TestBuildSkipsComments checks that a Comment token interleaved in the raw
// stream is transparently skipped when building a terminal piece, per
// find!'s "advance through any intervening Comment tokens" rule.
func TestBuildSkipsComments(t *testing.T) {
	piece := data.NewList(data.Keyword("keyword"))
	flavor := data.NewList(piece)
	body := data.NewList(flavor)
	root := buildGrammar(t, body)

	registry := &tokenizer.Registry{KeywordNames: []string{"fn"}}
	templates, err := template.Load(root, registry)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	parseTokens := []token.Token{{Kind: token.Keyword, Text: "fn"}}
	decisions, err := parser.New(parseTokens, templates, registry).Parse()
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	rawTokens := []token.Token{
		{Kind: token.Comment, Text: " note"},
		{Kind: token.Keyword, Text: "fn"},
	}
	result, _, err := New(rawTokens, decisions, templates).Build(true)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if result.Len() == 0 {
		t.Fatalf("expected a non-empty result map")
	}
}

// TestBuildConfirmedIntegerListGolden snapshots the built Data tree for the
// confirmed-list grammar with go-snaps (§4.6 item 4's List/Confirmed rule).
func TestBuildConfirmedIntegerListGolden(t *testing.T) {
	part := data.NewList(data.Keyword("integer"))
	separator := data.NewList(data.Keyword("operator"), data.NewList(data.Identifier("comma")))
	topPiece := data.NewList(data.Keyword("confirmed"), data.Identifier("item"), part, separator)
	flavor := data.NewList(topPiece)
	body := data.NewList(flavor)
	root := buildGrammar(t, body)

	registry := &tokenizer.Registry{HasIntegers: true, OperatorNames: []string{"comma"}}
	templates, err := template.Load(root, registry)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	tokens := []token.Token{
		{Kind: token.Integer, Integer: 1},
		{Kind: token.Operator, Text: "comma"},
		{Kind: token.Integer, Integer: 2},
	}
	decisions, err := parser.New(tokens, templates, registry).Parse()
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	result, _, err := New(tokens, decisions, templates).Build(true)
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	snaps.MatchSnapshot(t, "confirmed_integer_list_build", result.String())
}
