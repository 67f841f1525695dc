package engine

import (
	"fmt"

	"github.com/vE5li/igt5/internal/data"
)

// ParameterType is one filter an instruction or function parameter can
// narrow its accepted values to (§4.7). A nil filter list means any value
// is accepted.
type ParameterType int

const (
	TypeMap ParameterType = iota
	TypeList
	TypePath
	TypeIdentifier
	TypeKeyword
	TypeString
	TypeCharacter
	TypeInteger
	TypeFloat
	TypeBoolean
	TypeContainer
	TypeKey
	TypeLiteral
	TypeSelector
	TypeNumber
	TypeLocation
)

func (t ParameterType) matches(d data.Data) bool {
	switch t {
	case TypeMap:
		return d.Kind() == data.KindMap
	case TypeList:
		return d.Kind() == data.KindList
	case TypePath:
		return d.Kind() == data.KindPath
	case TypeIdentifier:
		return d.Kind() == data.KindIdentifier
	case TypeKeyword:
		return d.Kind() == data.KindKeyword
	case TypeString:
		return d.Kind() == data.KindString
	case TypeCharacter:
		return d.Kind() == data.KindCharacter
	case TypeInteger:
		return d.Kind() == data.KindInteger
	case TypeFloat:
		return d.Kind() == data.KindFloat
	case TypeBoolean:
		return d.Kind() == data.KindBoolean
	case TypeContainer:
		return data.IsContainer(d)
	case TypeKey:
		return data.IsKey(d)
	case TypeLiteral:
		return data.IsLiteral(d)
	case TypeSelector:
		return data.IsSelector(d)
	case TypeNumber:
		return data.IsNumber(d)
	case TypeLocation:
		return data.IsLocation(d)
	default:
		return false
	}
}

func (t ParameterType) String() string {
	switch t {
	case TypeMap:
		return "map"
	case TypeList:
		return "list"
	case TypePath:
		return "path"
	case TypeIdentifier:
		return "identifier"
	case TypeKeyword:
		return "keyword"
	case TypeString:
		return "string"
	case TypeCharacter:
		return "character"
	case TypeInteger:
		return "integer"
	case TypeFloat:
		return "float"
	case TypeBoolean:
		return "boolean"
	case TypeContainer:
		return "container"
	case TypeKey:
		return "key"
	case TypeLiteral:
		return "literal"
	case TypeSelector:
		return "selector"
	case TypeNumber:
		return "number"
	case TypeLocation:
		return "location"
	default:
		return "unknown"
	}
}

// Parameter describes one formal instruction parameter: an optional type
// filter (nil accepts anything).
type Parameter struct {
	Filter []ParameterType
}

func any() Parameter                    { return Parameter{} }
func of(types ...ParameterType) Parameter { return Parameter{Filter: types} }

func (p Parameter) validate(index int, value data.Data) error {
	if p.Filter == nil {
		return nil
	}
	for _, t := range p.Filter {
		if t.matches(value) {
			return nil
		}
	}
	return fmt.Errorf("parameter %d: expected one of %v, found %s", index+1, p.Filter, value.Kind())
}

// validateParameters implements InstructionParameter::validate: pop the
// formal parameters off source in order (the last one absorbs every
// remaining value when variadic is true), type-checking each against its
// filter, and erroring on anything left over.
func validateParameters(source []data.Data, formals []Parameter, variadic bool) ([]data.Data, error) {
	collected := make([]data.Data, 0, len(source))
	idx := 0
	for i, formal := range formals {
		if variadic && i == len(formals)-1 {
			for idx < len(source) {
				if err := formal.validate(i, source[idx]); err != nil {
					return nil, err
				}
				collected = append(collected, source[idx])
				idx++
			}
			continue
		}
		if idx >= len(source) {
			return nil, fmt.Errorf("expected parameter %d", i+1)
		}
		if err := formal.validate(i, source[idx]); err != nil {
			return nil, err
		}
		collected = append(collected, source[idx])
		idx++
	}
	if idx < len(source) {
		return nil, fmt.Errorf("unexpected parameter %s", source[idx].String())
	}
	return collected, nil
}
