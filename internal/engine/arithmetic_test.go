package engine

import (
	"testing"

	"github.com/vE5li/igt5/internal/data"
)

func TestAddReducesLeftToRight(t *testing.T) {
	result, err := Add([]data.Data{data.Integer(1), data.Integer(2), data.Integer(3)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.(data.Integer) != 6 {
		t.Fatalf("expected 6, got %v", result)
	}
}

func TestAddPromotesToFloat(t *testing.T) {
	result, err := Add([]data.Data{data.Integer(1), data.Float(0.5)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := result.(data.Float); !ok {
		t.Fatalf("expected a float result, got %T", result)
	}
}

func TestDivideByZero(t *testing.T) {
	if _, err := Divide([]data.Data{data.Integer(1), data.Integer(0)}); err == nil {
		t.Fatalf("expected division by zero to fail")
	}
}

func TestNegateAndAbsolute(t *testing.T) {
	neg, err := Negate(data.Integer(5))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if neg.(data.Integer) != -5 {
		t.Fatalf("expected -5, got %v", neg)
	}

	abs, err := Absolute(data.Integer(-5))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if abs.(data.Integer) != 5 {
		t.Fatalf("expected 5, got %v", abs)
	}
}

func TestBitwiseAndPreservesCharacterKind(t *testing.T) {
	result, err := And([]data.Data{data.Character(0xFF), data.Character(0x0F)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ch, ok := result.(data.Character)
	if !ok {
		t.Fatalf("expected a character result, got %T", result)
	}
	if ch != 0x0F {
		t.Fatalf("expected 0x0F, got %v", ch)
	}
}

func TestNotOnBoolean(t *testing.T) {
	result, err := Not(data.Boolean(true))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.(data.Boolean) != false {
		t.Fatalf("expected false, got %v", result)
	}
}

func TestShiftLeftAndRight(t *testing.T) {
	left, err := ShiftLeft(data.Integer(1), data.Integer(4))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if left.(data.Integer) != 16 {
		t.Fatalf("expected 16, got %v", left)
	}

	right, err := ShiftRight(data.Integer(16), data.Integer(4))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if right.(data.Integer) != 1 {
		t.Fatalf("expected 1, got %v", right)
	}
}

func TestToIntegerToFloatToCharacter(t *testing.T) {
	i, err := ToInteger(data.Float(3.9))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if i.(data.Integer) != 3 {
		t.Fatalf("expected 3, got %v", i)
	}

	f, err := ToFloat(data.Integer(3))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.(data.Float) != 3.0 {
		t.Fatalf("expected 3.0, got %v", f)
	}

	c, err := ToCharacter(data.Integer(65))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.(data.Character) != 'A' {
		t.Fatalf("expected 'A', got %v", c)
	}
}
