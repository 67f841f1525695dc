package parser

import (
	"fmt"
	"strings"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"

	"github.com/vE5li/igt5/internal/data"
	"github.com/vE5li/igt5/internal/template"
	"github.com/vE5li/igt5/internal/token"
	"github.com/vE5li/igt5/internal/tokenizer"
)

// formatDecisions renders a committed decision stream one-per-line for
// golden comparison.
func formatDecisions(decisions []template.Decision) string {
	lines := make([]string, len(decisions))
	for i, decision := range decisions {
		switch decision.Kind {
		case template.DecisionTemplate:
			lines[i] = decision.Kind.String() + " " + decision.Template
		case template.DecisionFilter, template.DecisionFlavor:
			lines[i] = fmt.Sprintf("%s %d", decision.Kind, decision.Index)
		default:
			lines[i] = decision.Kind.String()
		}
	}
	return strings.Join(lines, "\n")
}

func mustInsert(t *testing.T, m data.Map, key string, value data.Data) data.Map {
	t.Helper()
	out, err := m.Insert(data.Keyword(key), value)
	if err != nil {
		t.Fatalf("insert %s: %v", key, err)
	}
	return out
}

// buildGrammar wraps a single top-level template body (a list of flavors,
// themselves lists of pieces) into the `{template: {top: body}}` shape
// template.Load expects.
func buildGrammar(t *testing.T, body data.Data) data.Map {
	t.Helper()
	templateRoot := data.NewMap()
	templateRoot = mustInsert(t, templateRoot, "top", body)
	root := data.NewMap()
	root = mustInsert(t, root, "template", templateRoot)
	return root
}

func TestParseSingleKeyword(t *testing.T) {
	// top = [ [ #keyword ] ]  -- matches exactly one keyword token, any name.
	piece := data.NewList(data.Keyword("keyword"))
	flavor := data.NewList(piece)
	body := data.NewList(flavor)
	root := buildGrammar(t, body)

	registry := &tokenizer.Registry{KeywordNames: []string{"fn"}}
	templates, err := template.Load(root, registry)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	tokens := []token.Token{{Kind: token.Keyword, Text: "fn"}}
	decisions, err := New(tokens, templates, registry).Parse()
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(decisions) == 0 {
		t.Fatalf("expected a non-empty decision stream")
	}
}

func TestParseConfirmedIntegerList(t *testing.T) {
	// top = [ [ #confirmed item [ #integer ] [ #operator [ comma ] ] ] ]
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
	decisions, err := New(tokens, templates, registry).Parse()
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(decisions) == 0 {
		t.Fatalf("expected a non-empty decision stream")
	}
}

func TestParseFailsOnLeftoverTokens(t *testing.T) {
	piece := data.NewList(data.Keyword("keyword"))
	flavor := data.NewList(piece)
	body := data.NewList(flavor)
	root := buildGrammar(t, body)

	registry := &tokenizer.Registry{KeywordNames: []string{"fn"}}
	templates, err := template.Load(root, registry)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	tokens := []token.Token{
		{Kind: token.Keyword, Text: "fn"},
		{Kind: token.Keyword, Text: "fn"},
	}
	if _, err := New(tokens, templates, registry).Parse(); err == nil {
		t.Fatalf("expected failure: top only matches a single keyword")
	}
}

// TestParseConfirmedIntegerListGolden snapshots the committed decision
// stream for the confirmed-list grammar with go-snaps.
func TestParseConfirmedIntegerListGolden(t *testing.T) {
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
	decisions, err := New(tokens, templates, registry).Parse()
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	snaps.MatchSnapshot(t, "confirmed_integer_list_decisions", formatDecisions(decisions))
}
