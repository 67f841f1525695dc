package template

import (
	"testing"

	"github.com/vE5li/igt5/internal/data"
	"github.com/vE5li/igt5/internal/tokenizer"
)

// buildS4Root constructs the §8.2 S4 grammar: top is a confirmed list of
// integer items separated by the "comma" operator.
func buildS4Root(t *testing.T) data.Map {
	t.Helper()

	part := data.NewList(data.Keyword("integer"))
	separator := data.NewList(data.Keyword("operator"), data.NewList(data.Identifier("comma")))
	topPiece := data.NewList(data.Keyword("confirmed"), data.Identifier("item"), part, separator)
	flavor := data.NewList(topPiece)
	body := data.NewList(flavor)

	templateRoot := data.NewMap()
	templateRoot, err := templateRoot.Insert(data.Keyword("top"), body)
	if err != nil {
		t.Fatalf("insert top: %v", err)
	}

	root := data.NewMap()
	root, err = root.Insert(data.Keyword("template"), templateRoot)
	if err != nil {
		t.Fatalf("insert template: %v", err)
	}
	return root
}

func TestLoadS4Grammar(t *testing.T) {
	root := buildS4Root(t)
	registry := &tokenizer.Registry{HasIntegers: true, OperatorNames: []string{"comma"}}

	templates, err := Load(root, registry)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	top := templates.Get("top")
	if top == nil {
		t.Fatalf("template top not found")
	}
	if top.Widthless != False {
		t.Fatalf("top should not be widthless, got %v", top.Widthless)
	}
	if !containsStr(top.TokenList, "integer") {
		t.Fatalf("top.TokenList should contain integer, got %v", top.TokenList)
	}
}

func TestLoadRejectsUnknownOperatorFilter(t *testing.T) {
	root := buildS4Root(t)
	registry := &tokenizer.Registry{HasIntegers: true, OperatorNames: []string{"semicolon"}}

	if _, err := Load(root, registry); err == nil {
		t.Fatalf("expected validation error for unknown operator filter")
	}
}

func TestWidthlessTemplateIsTrue(t *testing.T) {
	// top = [ [ #data #flag $true ] ]  -- a single Data piece, always widthless.
	dataPiece := data.NewList(data.Keyword("data"), data.Identifier("flag"), data.Boolean(true))
	flavor := data.NewList(dataPiece)
	body := data.NewList(flavor)

	templateRoot := data.NewMap()
	templateRoot, err := templateRoot.Insert(data.Keyword("top"), body)
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	root := data.NewMap()
	root, err = root.Insert(data.Keyword("template"), templateRoot)
	if err != nil {
		t.Fatalf("insert: %v", err)
	}

	templates, err := Load(root, &tokenizer.Registry{})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if templates.Get("top").Widthless != True {
		t.Fatalf("top should be widthless")
	}
}
