package engine

import (
	"testing"

	"github.com/vE5li/igt5/internal/data"
)

func newScopes(t *testing.T) Scopes {
	t.Helper()
	root := data.Data(data.NewMap())
	scope := data.Data(data.NewMap())
	build := data.Data(data.NewMap())
	context := data.Data(data.NewMap())
	return Scopes{Root: &root, Scope: &scope, Build: &build, Context: &context}
}

func TestInstructionType(t *testing.T) {
	e := New(nil)
	scopes := newScopes(t)
	var last data.Data
	var pass string

	_, err := e.Instruction("type", []data.Data{data.Integer(3)}, NewStack(nil), &last, &pass, scopes)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if last.(data.Keyword) != data.Keyword("integer") {
		t.Fatalf("expected #integer, got %v", last)
	}
}

func TestInstructionEmpty(t *testing.T) {
	e := New(nil)
	scopes := newScopes(t)
	var last data.Data
	var pass string

	_, err := e.Instruction("empty", []data.Data{data.NewList()}, NewStack(nil), &last, &pass, scopes)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if last.(data.Boolean) != true {
		t.Fatalf("expected true for an empty list")
	}
}

func TestInstructionMerge(t *testing.T) {
	e := New(nil)
	scopes := newScopes(t)
	var last data.Data
	var pass string

	a := data.NewList(data.Integer(1))
	b := data.NewList(data.Integer(2))
	_, err := e.Instruction("merge", []data.Data{a, b}, NewStack(nil), &last, &pass, scopes)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	merged, ok := last.(data.List)
	if !ok {
		t.Fatalf("expected a list, got %T", last)
	}
	if merged.Len() != 2 {
		t.Fatalf("expected 2 items, got %d", merged.Len())
	}
}

func TestInstructionMapAndIndex(t *testing.T) {
	e := New(nil)
	scopes := newScopes(t)
	var last data.Data
	var pass string

	_, err := e.Instruction("map", []data.Data{data.Keyword("name"), data.String("igt5")}, NewStack(nil), &last, &pass, scopes)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	built := last

	_, err = e.Instruction("index", []data.Data{built, data.Keyword("name")}, NewStack(nil), &last, &pass, scopes)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if last.(data.String) != "igt5" {
		t.Fatalf("expected igt5, got %v", last)
	}
}

func TestInstructionUnknown(t *testing.T) {
	e := New(nil)
	scopes := newScopes(t)
	var last data.Data
	var pass string

	if _, err := e.Instruction("not_a_real_instruction", []data.Data{}, NewStack(nil), &last, &pass, scopes); err == nil {
		t.Fatalf("expected an error for an unknown instruction")
	}
}

func TestInstructionModifyScope(t *testing.T) {
	e := New(nil)
	scopes := newScopes(t)
	var last data.Data
	var pass string

	_, err := e.Instruction("modify", []data.Data{data.Keyword("scope"), data.Integer(7)}, NewStack(nil), &last, &pass, scopes)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if (*scopes.Scope).(data.Integer) != 7 {
		t.Fatalf("expected scope to be overwritten with 7, got %v", *scopes.Scope)
	}
}
