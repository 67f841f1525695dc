// Package cerrors implements the closed error taxonomy of §7: every
// fallible operation in charstream, tokenizer, template, parser, builder,
// engine and pipeline returns a *CompilerError built from one of the
// constructors below (internal/data returns its own plain errors). CompilerError.Format renders it with source
// context the same way the teacher's internal/errors package formats
// compiler errors; cmd/igt5/cmd/errors.go is the CLI boundary that calls
// Format (or the root config's function.<kind> override, per §7) on every
// displayed error.
//
// The package is named cerrors, not errors, so call sites can `import
// "errors"` for errors.Is/errors.As alongside it without a name clash —
// the same accommodation the teacher's own internal/errors package needs.
package cerrors

import (
	"fmt"
	"strings"

	"github.com/vE5li/igt5/internal/token"
)

// Kind identifies which §7 taxonomy variant an error carries.
type Kind string

const (
	KindMessage                 Kind = "message"
	KindTag                     Kind = "tag"
	KindCompiler                Kind = "compiler"
	KindTokenizer                Kind = "tokenizer"
	KindParser                  Kind = "parser"
	KindBuilder                 Kind = "builder"
	KindExecute                 Kind = "execute"
	KindInvalidItemCount        Kind = "invalid_item_count"
	KindInvalidCondition        Kind = "invalid_condition"
	KindUnexpectedToken         Kind = "unexpected_token"
	KindInvalidToken            Kind = "invalid_token"
	KindInvalidLocation         Kind = "invalid_location"
	KindExpected                Kind = "expected"
	KindExpectedFound           Kind = "expected_found"
	KindExpectedParameter       Kind = "expected_parameter"
	KindExpectedParameterFound  Kind = "expected_parameter_found"
	KindUnexpectedParameter     Kind = "unexpected_parameter"
	KindInvalidType             Kind = "invalid_type"
	KindInvalidVariadic         Kind = "invalid_variadic"
	KindMissingEntry            Kind = "missing_entry"
	KindMissingFile             Kind = "missing_file"
	KindInexplicitOverwrite     Kind = "inexplicit_overwrite"
	KindUnclosedScope           Kind = "unclosed_scope"
	KindInvalidCompilerFunction Kind = "invalid_compiler_function"
	KindUnexpectedCompilerFunc  Kind = "unexpected_compiler_function"
	KindExpectedLocation        Kind = "expected_location"
	KindExpectedLocationFound   Kind = "expected_location_found"
	KindExpectedImmediate       Kind = "expected_immediate"
	KindUnexpectedImmediate     Kind = "unexpected_immediate"
	KindNoPreviousReturn        Kind = "no_previous_return"
	KindIndexOutOfBounds        Kind = "index_out_of_bounds"
	KindNothingToParse          Kind = "nothing_to_parse"
	KindUnterminatedToken       Kind = "unterminated_token"
	KindUnterminatedEscape      Kind = "unterminated_escape_sequence"
	KindInvalidEscapeSequence   Kind = "invalid_escape_sequence"
	KindInvalidPrefix           Kind = "invalid_prefix"
	KindInvalidSuffix           Kind = "invalid_suffix"
	KindInvalidNumber           Kind = "invalid_number"
	KindInvalidNumberSystem     Kind = "invalid_number_system"
	KindExpectedWord            Kind = "expected_word"
	KindExpectedWordFound       Kind = "expected_word_found"
	KindNonAsciiCharacter       Kind = "non_ascii_character"
	KindAmbiguousIdentifier     Kind = "ambiguous_identifier"
	KindEmptyLiteral            Kind = "empty_literal"
	KindDuplicateBreaking       Kind = "duplicate_breaking"
	KindDuplicateNonBreaking    Kind = "duplicate_non_breaking"
	KindDuplicateSignature      Kind = "duplicate_signature"
	KindExpectedBooleanFound    Kind = "expected_boolean_found"
	KindInvalidCharacterLength  Kind = "invalid_character_length"
	KindInvalidPathLength       Kind = "invalid_path_length"
	KindExpectedCondition       Kind = "expected_condition"
	KindExpectedConditionFound  Kind = "expected_condition_found"
	KindUnregisteredCharacter   Kind = "unregistered_character"
)

// CompilerError is the single concrete error type returned throughout the
// toolkit. Operand carries whatever §7 variant-specific payload the Kind
// needs (an instruction keyword for Tag, a function name for Execute, a
// list of child errors for the grouped variants, …); it is intentionally
// loosely typed since each Kind interprets it differently — callers use
// the New* constructors rather than building one by hand.
type CompilerError struct {
	Kind      Kind
	Message   string
	Operand   any
	Positions []token.Position
	Source    string
	File      string
	Inner     error
}

func (e *CompilerError) Error() string {
	return e.Format(false)
}

func (e *CompilerError) Unwrap() error {
	return e.Inner
}

// Format renders the error with a caret-annotated source excerpt, the same
// shape as the teacher's CompilerError.Format.
func (e *CompilerError) Format(color bool) string {
	var sb strings.Builder

	pos := token.Position{}
	if len(e.Positions) > 0 {
		pos = e.Positions[0]
	}

	if e.File != "" {
		fmt.Fprintf(&sb, "Error in %s:%d:%d\n", e.File, pos.Line, pos.Character)
	} else if pos.Line != 0 {
		fmt.Fprintf(&sb, "Error at line %d:%d\n", pos.Line, pos.Character)
	} else {
		sb.WriteString("Error\n")
	}

	if line := sourceLine(e.Source, pos.Line); line != "" {
		prefix := fmt.Sprintf("%4d | ", pos.Line)
		sb.WriteString(prefix)
		sb.WriteString(line)
		sb.WriteString("\n")
		sb.WriteString(strings.Repeat(" ", len(prefix)+max(pos.Character-1, 0)))
		if color {
			sb.WriteString("\033[1;31m")
		}
		sb.WriteString("^")
		if color {
			sb.WriteString("\033[0m")
		}
		sb.WriteString("\n")
	}

	if color {
		sb.WriteString("\033[1m")
	}
	sb.WriteString(e.Message)
	if color {
		sb.WriteString("\033[0m")
	}
	if e.Inner != nil {
		sb.WriteString("\n  caused by: ")
		sb.WriteString(e.Inner.Error())
	}
	return sb.String()
}

func sourceLine(source string, lineNum int) string {
	if source == "" || lineNum < 1 {
		return ""
	}
	lines := strings.Split(source, "\n")
	if lineNum > len(lines) {
		return ""
	}
	return lines[lineNum-1]
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// New builds a CompilerError of the given kind with a default message. The
// default messages follow the template spirit of §7; the CLI boundary
// (cmd/igt5/cmd/errors.go) overrides this default per Kind via the root
// config's function.<kind> hook when one is declared, falling back to it
// otherwise — cerrors itself cannot call the hook directly since running a
// function body requires internal/engine, which already imports cerrors.
func New(kind Kind, message string, positions []token.Position) *CompilerError {
	return &CompilerError{Kind: kind, Message: message, Positions: positions}
}

func Message(text string) *CompilerError {
	return New(KindMessage, text, nil)
}

// Tag wraps inner with the instruction keyword under which it occurred, per
// §7's propagation rule.
func Tag(keyword string, inner error) *CompilerError {
	return &CompilerError{
		Kind:    KindTag,
		Message: fmt.Sprintf("in %s: %s", keyword, inner),
		Operand: keyword,
		Inner:   inner,
	}
}

// Execute wraps inner with the name of the function whose body raised it.
func Execute(function string, inner error) *CompilerError {
	return &CompilerError{
		Kind:    KindExecute,
		Message: fmt.Sprintf("while executing function.%s: %s", function, inner),
		Operand: function,
		Inner:   inner,
	}
}

func Grouped(kind Kind, errs []error) *CompilerError {
	msgs := make([]string, len(errs))
	for i, e := range errs {
		msgs[i] = e.Error()
	}
	return &CompilerError{
		Kind:    kind,
		Message: strings.Join(msgs, "\n"),
		Operand: errs,
	}
}

func ExpectedFound(expected, found string, positions []token.Position) *CompilerError {
	return New(KindExpectedFound, fmt.Sprintf("expected %s, found %s", expected, found), positions)
}

func MissingEntry(key string) *CompilerError {
	return New(KindMissingEntry, fmt.Sprintf("missing entry %q", key), nil)
}

func MissingFile(path string) *CompilerError {
	return New(KindMissingFile, fmt.Sprintf("missing file %q", path), nil)
}

func IndexOutOfBounds(index, max int) *CompilerError {
	return New(KindIndexOutOfBounds, fmt.Sprintf("index %d out of bounds (max %d)", index, max), nil)
}

func InexplicitOverwrite(key string) *CompilerError {
	return New(KindInexplicitOverwrite, fmt.Sprintf("key %q already present; use overwrite to replace it", key), nil)
}
