package engine

import (
	"unicode"

	"github.com/vE5li/igt5/internal/cerrors"
	"github.com/vE5li/igt5/internal/charstream"
	"github.com/vE5li/igt5/internal/data"
)

// conditionDescription records a condition keyword's arity (§4.7.1): width
// is operand count + 1 (the keyword itself). Evaluate is the condition's
// actual test, given the condition's own operands (source[1:width]) and
// the engine's current `last` value (only `last_some`/`not_last_some`
// read it).
type conditionDescription struct {
	width    int
	evaluate func(operands []data.Data, last data.Data) (bool, error)
}

func cond(width int, fn func(operands []data.Data, last data.Data) (bool, error)) conditionDescription {
	return conditionDescription{width: width, evaluate: fn}
}

func literalText(d data.Data) string {
	switch v := d.(type) {
	case data.Identifier:
		return string(v)
	case data.Keyword:
		return string(v)
	case data.String:
		return string(v)
	case data.Character:
		return string(rune(v))
	default:
		return d.String()
	}
}

func isUppercaseLiteral(d data.Data) bool {
	text := literalText(d)
	for _, r := range text {
		if !unicode.IsUpper(r) {
			return false
		}
	}
	return true
}

func isLowercaseLiteral(d data.Data) bool {
	text := literalText(d)
	for _, r := range text {
		if !unicode.IsLower(r) {
			return false
		}
	}
	return true
}

func isPureLiteral(d data.Data) bool {
	stream, _ := charstream.New("", "")
	return stream.IsPure(literalText(d))
}

var zero = []data.Data{data.Integer(0), data.Float(0), data.Character(0)}

func isZero(d data.Data) bool {
	for _, z := range zero {
		if d.Equal(z) {
			return true
		}
	}
	return false
}

func lengthOf(d data.Data) (int, error) {
	return data.Length(d)
}

// The condition/not_condition entries look names up in conditions itself,
// so they are added here rather than in the table literal below.
func init() {
	conditions["condition"] = cond(2, func(o []data.Data, _ data.Data) (bool, error) { _, ok := conditions[literalText(o[0])]; return ok, nil })
	conditions["not_condition"] = cond(2, func(o []data.Data, _ data.Data) (bool, error) { _, ok := conditions[literalText(o[0])]; return !ok, nil })
}

// conditions is the §4.7.1 condition table: every `<name>`/`not_<name>`
// pair, ported from original_source's stack/description.rs +
// stack/mod.rs's resolve_condition match.
var conditions = map[string]conditionDescription{
	"always":     cond(1, func(_ []data.Data, _ data.Data) (bool, error) { return true, nil }),
	"not_always": cond(1, func(_ []data.Data, _ data.Data) (bool, error) { return false, nil }),

	"zero":     cond(2, func(o []data.Data, _ data.Data) (bool, error) { return isZero(o[0]), nil }),
	"not_zero": cond(2, func(o []data.Data, _ data.Data) (bool, error) { return !isZero(o[0]), nil }),

	"true":     cond(2, func(o []data.Data, _ data.Data) (bool, error) { return o[0].Equal(data.Boolean(true)), nil }),
	"not_true": cond(2, func(o []data.Data, _ data.Data) (bool, error) { return !o[0].Equal(data.Boolean(true)), nil }),

	"false":     cond(2, func(o []data.Data, _ data.Data) (bool, error) { return o[0].Equal(data.Boolean(false)), nil }),
	"not_false": cond(2, func(o []data.Data, _ data.Data) (bool, error) { return !o[0].Equal(data.Boolean(false)), nil }),

	"empty": cond(2, func(o []data.Data, _ data.Data) (bool, error) {
		n, err := lengthOf(o[0])
		return n == 0, err
	}),
	"not_empty": cond(2, func(o []data.Data, _ data.Data) (bool, error) {
		n, err := lengthOf(o[0])
		return n != 0, err
	}),

	"instruction":     cond(2, func(o []data.Data, _ data.Data) (bool, error) { _, ok := instructions[literalText(o[0])]; return ok, nil }),
	"not_instruction": cond(2, func(o []data.Data, _ data.Data) (bool, error) { _, ok := instructions[literalText(o[0])]; return !ok, nil }),

	"last_some":     cond(1, func(_ []data.Data, last data.Data) (bool, error) { return last != nil, nil }),
	"not_last_some": cond(1, func(_ []data.Data, last data.Data) (bool, error) { return last == nil, nil }),

	"uppercase":     cond(2, func(o []data.Data, _ data.Data) (bool, error) { return isUppercaseLiteral(o[0]), nil }),
	"not_uppercase": cond(2, func(o []data.Data, _ data.Data) (bool, error) { return !isUppercaseLiteral(o[0]), nil }),

	"lowercase":     cond(2, func(o []data.Data, _ data.Data) (bool, error) { return isLowercaseLiteral(o[0]), nil }),
	"not_lowercase": cond(2, func(o []data.Data, _ data.Data) (bool, error) { return !isLowercaseLiteral(o[0]), nil }),

	"equals":     cond(3, func(o []data.Data, _ data.Data) (bool, error) { return o[0].Equal(o[1]), nil }),
	"not_equals": cond(3, func(o []data.Data, _ data.Data) (bool, error) { return !o[0].Equal(o[1]), nil }),

	"present": cond(3, func(o []data.Data, _ data.Data) (bool, error) {
		_, ok, err := data.Index(o[0], o[1])
		return ok, err
	}),
	"not_present": cond(3, func(o []data.Data, _ data.Data) (bool, error) {
		_, ok, err := data.Index(o[0], o[1])
		return !ok, err
	}),

	"bigger":     cond(3, func(o []data.Data, _ data.Data) (bool, error) { return data.Compare(o[0], o[1]) > 0, nil }),
	"not_bigger": cond(3, func(o []data.Data, _ data.Data) (bool, error) { return data.Compare(o[0], o[1]) <= 0, nil }),

	"smaller":     cond(3, func(o []data.Data, _ data.Data) (bool, error) { return data.Compare(o[0], o[1]) < 0, nil }),
	"not_smaller": cond(3, func(o []data.Data, _ data.Data) (bool, error) { return data.Compare(o[0], o[1]) >= 0, nil }),

	"contains": cond(3, func(o []data.Data, _ data.Data) (bool, error) { return data.ContainsOp(o[0], o[1]) }),
	"not_contains": cond(3, func(o []data.Data, _ data.Data) (bool, error) {
		ok, err := data.ContainsOp(o[0], o[1])
		return !ok, err
	}),

	"pure":     cond(2, func(o []data.Data, _ data.Data) (bool, error) { return isPureLiteral(o[0]), nil }),
	"not_pure": cond(2, func(o []data.Data, _ data.Data) (bool, error) { return !isPureLiteral(o[0]), nil }),

	"file_present":     cond(2, func(o []data.Data, _ data.Data) (bool, error) { return fileExists(literalText(o[0])), nil }),
	"not_file_present": cond(2, func(o []data.Data, _ data.Data) (bool, error) { return !fileExists(literalText(o[0])), nil }),

	"map":     cond(2, func(o []data.Data, _ data.Data) (bool, error) { return o[0].Kind() == data.KindMap, nil }),
	"not_map": cond(2, func(o []data.Data, _ data.Data) (bool, error) { return o[0].Kind() != data.KindMap, nil }),

	"list":     cond(2, func(o []data.Data, _ data.Data) (bool, error) { return o[0].Kind() == data.KindList, nil }),
	"not_list": cond(2, func(o []data.Data, _ data.Data) (bool, error) { return o[0].Kind() != data.KindList, nil }),

	"path":     cond(2, func(o []data.Data, _ data.Data) (bool, error) { return o[0].Kind() == data.KindPath, nil }),
	"not_path": cond(2, func(o []data.Data, _ data.Data) (bool, error) { return o[0].Kind() != data.KindPath, nil }),

	"string":     cond(2, func(o []data.Data, _ data.Data) (bool, error) { return o[0].Kind() == data.KindString, nil }),
	"not_string": cond(2, func(o []data.Data, _ data.Data) (bool, error) { return o[0].Kind() != data.KindString, nil }),

	"character":     cond(2, func(o []data.Data, _ data.Data) (bool, error) { return o[0].Kind() == data.KindCharacter, nil }),
	"not_character": cond(2, func(o []data.Data, _ data.Data) (bool, error) { return o[0].Kind() != data.KindCharacter, nil }),

	"identifier":     cond(2, func(o []data.Data, _ data.Data) (bool, error) { return o[0].Kind() == data.KindIdentifier, nil }),
	"not_identifier": cond(2, func(o []data.Data, _ data.Data) (bool, error) { return o[0].Kind() != data.KindIdentifier, nil }),

	"keyword":     cond(2, func(o []data.Data, _ data.Data) (bool, error) { return o[0].Kind() == data.KindKeyword, nil }),
	"not_keyword": cond(2, func(o []data.Data, _ data.Data) (bool, error) { return o[0].Kind() != data.KindKeyword, nil }),

	"integer":     cond(2, func(o []data.Data, _ data.Data) (bool, error) { return o[0].Kind() == data.KindInteger, nil }),
	"not_integer": cond(2, func(o []data.Data, _ data.Data) (bool, error) { return o[0].Kind() != data.KindInteger, nil }),

	"float":     cond(2, func(o []data.Data, _ data.Data) (bool, error) { return o[0].Kind() == data.KindFloat, nil }),
	"not_float": cond(2, func(o []data.Data, _ data.Data) (bool, error) { return o[0].Kind() != data.KindFloat, nil }),

	"boolean":     cond(2, func(o []data.Data, _ data.Data) (bool, error) { return o[0].Kind() == data.KindBoolean, nil }),
	"not_boolean": cond(2, func(o []data.Data, _ data.Data) (bool, error) { return o[0].Kind() != data.KindBoolean, nil }),

	"key":     cond(2, func(o []data.Data, _ data.Data) (bool, error) { return data.IsKey(o[0]), nil }),
	"not_key": cond(2, func(o []data.Data, _ data.Data) (bool, error) { return !data.IsKey(o[0]), nil }),

	"container":     cond(2, func(o []data.Data, _ data.Data) (bool, error) { return data.IsContainer(o[0]), nil }),
	"not_container": cond(2, func(o []data.Data, _ data.Data) (bool, error) { return !data.IsContainer(o[0]), nil }),

	"literal":     cond(2, func(o []data.Data, _ data.Data) (bool, error) { return data.IsLiteral(o[0]), nil }),
	"not_literal": cond(2, func(o []data.Data, _ data.Data) (bool, error) { return !data.IsLiteral(o[0]), nil }),

	"selector":     cond(2, func(o []data.Data, _ data.Data) (bool, error) { return data.IsSelector(o[0]), nil }),
	"not_selector": cond(2, func(o []data.Data, _ data.Data) (bool, error) { return !data.IsSelector(o[0]), nil }),

	"number":     cond(2, func(o []data.Data, _ data.Data) (bool, error) { return data.IsNumber(o[0]), nil }),
	"not_number": cond(2, func(o []data.Data, _ data.Data) (bool, error) { return !data.IsNumber(o[0]), nil }),

	"location":     cond(2, func(o []data.Data, _ data.Data) (bool, error) { return data.IsLocation(o[0]), nil }),
	"not_location": cond(2, func(o []data.Data, _ data.Data) (bool, error) { return !data.IsLocation(o[0]), nil }),
}

// ResolveCondition implements `DataStack::resolve_condition`: source[0]
// must be a condition keyword, source[1:width] are its operands. Returns
// the boolean result and how many source elements the condition
// consumed (width), so callers like `ensure`/`boolean` can tell operands
// from a trailing error message.
func ResolveCondition(source []data.Data, last data.Data) (bool, int, error) {
	if len(source) == 0 {
		return false, 0, cerrors.New(cerrors.KindExpectedCondition, "expected a condition", nil)
	}
	kw, ok := source[0].(data.Keyword)
	if !ok {
		return false, 0, cerrors.New(cerrors.KindExpectedConditionFound, "expected a condition keyword, found "+source[0].String(), nil)
	}
	description, ok := conditions[string(kw)]
	if !ok {
		return false, 0, cerrors.Message("condition #" + string(kw) + " does not exist")
	}
	if description.width > len(source) {
		return false, 0, cerrors.Message("condition #" + string(kw) + " expects more operands than were given")
	}
	state, err := description.evaluate(source[1:description.width], last)
	if err != nil {
		return false, 0, err
	}
	return state, description.width, nil
}
