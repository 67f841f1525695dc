package engine

import (
	"io"
	"testing"

	"github.com/vE5li/igt5/internal/data"
	"github.com/vE5li/igt5/internal/serialize"
)

func serializeHook(value data.Data) (string, error) {
	return serialize.Serialize(value), nil
}

func TestShellLoopExecutesInstructionsUntilExit(t *testing.T) {
	lines := []string{`#type [#data 3]`, `exit`}
	index := 0

	ctx := &Context{
		Input: func() (string, error) {
			if index >= len(lines) {
				return "", io.EOF
			}
			line := lines[index]
			index++
			return line, nil
		},
		Deserialize: serialize.Deserialize,
		Serialize:   serializeHook,
	}

	e := New(ctx)
	scopes := newScopes(t)
	var last data.Data
	var pass string

	if _, err := e.Instruction("shell", nil, NewStack(nil), &last, &pass, scopes); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestShellLoopStopsOnInputError(t *testing.T) {
	ctx := &Context{
		Input: func() (string, error) { return "", io.EOF },
		Deserialize: serialize.Deserialize,
		Serialize:   serializeHook,
	}

	e := New(ctx)
	scopes := newScopes(t)
	var last data.Data
	var pass string

	if _, err := e.Instruction("shell", nil, NewStack(nil), &last, &pass, scopes); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestShellLoopReportsErrorsAndContinues(t *testing.T) {
	lines := []string{`#not_an_instruction`, `exit`}
	index := 0

	ctx := &Context{
		Input: func() (string, error) {
			if index >= len(lines) {
				return "", io.EOF
			}
			line := lines[index]
			index++
			return line, nil
		},
		Deserialize: serialize.Deserialize,
		Serialize:   serializeHook,
	}

	e := New(ctx)
	scopes := newScopes(t)
	var last data.Data
	var pass string

	if _, err := e.Instruction("shell", nil, NewStack(nil), &last, &pass, scopes); err != nil {
		t.Fatalf("shell should swallow per-line errors, got: %v", err)
	}
}
