package engine

import (
	"testing"

	"github.com/vE5li/igt5/internal/data"
)

func TestInvokeBodyAddsAndReturns(t *testing.T) {
	body := data.NewList(
		data.Keyword("add"),
		data.NewList(data.Keyword("data"), data.Integer(2)),
		data.NewList(data.Keyword("data"), data.Integer(3)),
		data.Keyword("return"),
		data.NewList(data.Keyword("last")),
	)

	e := New(nil)
	root := data.Data(data.NewMap())
	build := data.Data(data.NewMap())
	context := data.Data(data.NewMap())
	var pass string

	result, err := InvokeBody(body, nil, &pass, &root, &build, &context, e.Instruction)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.(data.Integer) != 5 {
		t.Fatalf("expected 5, got %v", result)
	}
}

func TestInvokeBodyBindsParameters(t *testing.T) {
	spec := data.NewList(data.Keyword("single"), data.Keyword("amount"))
	amountPath, err := data.NewPath([]data.Data{data.Keyword("scope"), data.Keyword("amount")})
	if err != nil {
		t.Fatalf("unexpected error building path: %v", err)
	}
	body := data.NewList(
		spec,
		data.Keyword("add"),
		data.NewList(amountPath),
		data.NewList(data.Keyword("data"), data.Integer(1)),
		data.Keyword("return"),
		data.NewList(data.Keyword("last")),
	)

	e := New(nil)
	root := data.Data(data.NewMap())
	build := data.Data(data.NewMap())
	context := data.Data(data.NewMap())
	var pass string

	result, err := InvokeBody(body, []data.Data{data.Integer(41)}, &pass, &root, &build, &context, e.Instruction)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.(data.Integer) != 42 {
		t.Fatalf("expected 42, got %v", result)
	}
}

func TestInvokeBodyRejectsDuplicateParameterNames(t *testing.T) {
	specA := data.NewList(data.Keyword("single"), data.Keyword("x"))
	specB := data.NewList(data.Keyword("single"), data.Keyword("x"))
	body := data.NewList(specA, specB, data.Keyword("terminate"))

	e := New(nil)
	root := data.Data(data.NewMap())
	build := data.Data(data.NewMap())
	context := data.Data(data.NewMap())
	var pass string

	if _, err := InvokeBody(body, []data.Data{data.Integer(1), data.Integer(2)}, &pass, &root, &build, &context, e.Instruction); err == nil {
		t.Fatalf("expected an error for duplicate parameter names")
	}
}
