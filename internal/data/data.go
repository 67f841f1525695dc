// Package data implements the universal value model of §3: a small closed
// sum of variants that doubles as AST, configuration, runtime value and IR
// for the rest of the toolkit. Every operation used elsewhere (index,
// slice, merge, modify, compare, serialize) is a method or free function
// defined here, mirroring the way the teacher's internal/ast package is the
// single source of truth for every AST node shape the parser and
// interpreter share.
package data

import "fmt"

// Kind tags which of the nine §3.1 variants a Data value holds.
type Kind int

const (
	KindMap Kind = iota
	KindList
	KindPath
	KindIdentifier
	KindKeyword
	KindString
	KindCharacter
	KindInteger
	KindFloat
	KindBoolean
)

func (k Kind) String() string {
	switch k {
	case KindMap:
		return "map"
	case KindList:
		return "list"
	case KindPath:
		return "path"
	case KindIdentifier:
		return "identifier"
	case KindKeyword:
		return "keyword"
	case KindString:
		return "string"
	case KindCharacter:
		return "character"
	case KindInteger:
		return "integer"
	case KindFloat:
		return "float"
	case KindBoolean:
		return "boolean"
	default:
		return "unknown"
	}
}

// Data is the universal value. Implementations are Map, List, Path,
// Identifier, Keyword, String, Character, Integer, Float and Boolean —
// the set is closed; callers pattern-match with a type switch on Kind()
// or a Go type switch, the same way the teacher's ast.Node methods are
// dispatched.
type Data interface {
	Kind() Kind
	Equal(other Data) bool
	String() string
}

// --- derived type predicates (§3.1) ---

// IsKey reports whether d is one of the narrow "key" variants: identifier,
// keyword, string, character or boolean. This is distinct from whether d
// may be inserted as a Map key — see IsMapKeyEligible — the two do not
// coincide in the spec (path and integer are map-key eligible but are not
// "key" variants in the narrow predicate used for parameter filters).
func IsKey(d Data) bool {
	switch d.Kind() {
	case KindIdentifier, KindKeyword, KindString, KindCharacter, KindBoolean:
		return true
	default:
		return false
	}
}

// IsSelector reports whether d can appear as a Path step or as an index
// argument: identifier, keyword, string, character, integer or boolean.
func IsSelector(d Data) bool {
	switch d.Kind() {
	case KindIdentifier, KindKeyword, KindString, KindCharacter, KindInteger, KindBoolean:
		return true
	default:
		return false
	}
}

// IsLiteral reports whether d is string, character, identifier or keyword.
func IsLiteral(d Data) bool {
	switch d.Kind() {
	case KindString, KindCharacter, KindIdentifier, KindKeyword:
		return true
	default:
		return false
	}
}

// IsContainer reports whether d supports indexing/iteration: map, list,
// path, string, identifier or keyword.
func IsContainer(d Data) bool {
	switch d.Kind() {
	case KindMap, KindList, KindPath, KindString, KindIdentifier, KindKeyword:
		return true
	default:
		return false
	}
}

// IsLocation reports whether d can name a location: path, identifier,
// keyword, string, character, integer or boolean.
func IsLocation(d Data) bool {
	if d.Kind() == KindPath {
		return true
	}
	return IsSelector(d)
}

// IsNumber reports whether d is integer, float or character.
func IsNumber(d Data) bool {
	switch d.Kind() {
	case KindInteger, KindFloat, KindCharacter:
		return true
	default:
		return false
	}
}

// IsMapKeyEligible reports whether d may be inserted as a Map key: every
// variant except Map, List and Float (§3.1, §3.4).
func IsMapKeyEligible(d Data) bool {
	switch d.Kind() {
	case KindMap, KindList, KindFloat:
		return false
	default:
		return true
	}
}

// ErrNotContainer is an exported sentinel error value; no function in
// this module returns or references it.
var ErrNotContainer = fmt.Errorf("value is not a container")
