package engine

import (
	"testing"

	"github.com/vE5li/igt5/internal/data"
)

func TestResolveConditionAlways(t *testing.T) {
	state, length, err := ResolveCondition([]data.Data{data.Keyword("always")}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !state || length != 1 {
		t.Fatalf("expected always to be true with width 1, got %v/%d", state, length)
	}
}

func TestResolveConditionZero(t *testing.T) {
	state, length, err := ResolveCondition([]data.Data{data.Keyword("zero"), data.Integer(0)}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !state || length != 2 {
		t.Fatalf("expected zero(0) to be true with width 2, got %v/%d", state, length)
	}

	state, _, err = ResolveCondition([]data.Data{data.Keyword("zero"), data.Integer(3)}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if state {
		t.Fatalf("expected zero(3) to be false")
	}
}

func TestResolveConditionNegation(t *testing.T) {
	state, _, err := ResolveCondition([]data.Data{data.Keyword("not_zero"), data.Integer(3)}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !state {
		t.Fatalf("expected not_zero(3) to be true")
	}
}

func TestResolveConditionEquals(t *testing.T) {
	state, length, err := ResolveCondition([]data.Data{data.Keyword("equals"), data.Integer(4), data.Integer(4)}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !state || length != 3 {
		t.Fatalf("expected equals(4, 4) to be true with width 3, got %v/%d", state, length)
	}
}

func TestResolveConditionLastSome(t *testing.T) {
	state, _, err := ResolveCondition([]data.Data{data.Keyword("last_some")}, data.Integer(1))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !state {
		t.Fatalf("expected last_some to be true when last is non-nil")
	}

	state, _, err = ResolveCondition([]data.Data{data.Keyword("last_some")}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if state {
		t.Fatalf("expected last_some to be false when last is nil")
	}
}

func TestResolveConditionUnknown(t *testing.T) {
	if _, _, err := ResolveCondition([]data.Data{data.Keyword("nonsense")}, nil); err == nil {
		t.Fatalf("expected an error for an unknown condition")
	}
}

func TestResolveConditionContains(t *testing.T) {
	list := data.NewList(data.Integer(1), data.Integer(2), data.Integer(3))
	state, _, err := ResolveCondition([]data.Data{data.Keyword("contains"), list, data.Integer(2)}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !state {
		t.Fatalf("expected contains([1,2,3], 2) to be true")
	}
}
