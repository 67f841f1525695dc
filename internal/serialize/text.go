// Package serialize implements §6.2's self-hosted text format: the
// language serializing itself, used by read_map/write_map/read_list/
// write_list and the serialize/deserialize instructions. json.go and
// yaml.go add bridges to the two external formats a compiler config may
// also be authored in.
package serialize

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/vE5li/igt5/internal/cerrors"
	"github.com/vE5li/igt5/internal/data"
)

// Serialize renders a Data value in the native text format (§6.2).
// Ported from Data::serialize in original_source's types/data/mod.rs.
func Serialize(value data.Data) string {
	switch v := value.(type) {
	case data.Map:
		var sb strings.Builder
		sb.WriteString("{")
		for _, entry := range v.Entries() {
			sb.WriteString(" ")
			sb.WriteString(Serialize(entry.Key))
			sb.WriteString(" ")
			sb.WriteString(Serialize(entry.Value))
		}
		sb.WriteString(" }")
		return sb.String()

	case data.List:
		var sb strings.Builder
		sb.WriteString("[")
		for _, item := range v.Items() {
			sb.WriteString(" ")
			sb.WriteString(Serialize(item))
		}
		sb.WriteString(" ]")
		return sb.String()

	case data.Path:
		parts := make([]string, len(v.Steps))
		for i, step := range v.Steps {
			parts[i] = Serialize(step)
		}
		return strings.Join(parts, ":")

	case data.Identifier:
		return string(v)

	case data.Keyword:
		return "#" + string(v)

	case data.String:
		return serializeLiteral(string(v), '"')

	case data.Character:
		return serializeLiteral(string(rune(v)), '\'')

	case data.Integer:
		return strconv.FormatInt(int64(v), 10)

	case data.Float:
		text := strconv.FormatFloat(float64(v), 'g', -1, 64)
		if !strings.Contains(text, ".") {
			text += ".0"
		}
		return text

	case data.Boolean:
		if v {
			return "$true"
		}
		return "$false"

	default:
		return fmt.Sprintf("%v", value)
	}
}

// EncodeMap renders a Map the way read_map/write_map do on disk: one
// "key value" pair per line rather than the brace-delimited form
// Serialize produces, so a hand-edited config file stays one entry per
// line. Ported from write_map in original_source's interface/file.rs.
func EncodeMap(value data.Data) (string, error) {
	m, ok := value.(data.Map)
	if !ok {
		return "", cerrors.ExpectedFound("map", value.Kind().String(), nil)
	}
	var sb strings.Builder
	for _, entry := range m.Entries() {
		sb.WriteString(Serialize(entry.Key))
		sb.WriteString(" ")
		sb.WriteString(Serialize(entry.Value))
		sb.WriteString("\n")
	}
	return sb.String(), nil
}

// EncodeList renders a List as one serialized item per line, the
// write_list counterpart to EncodeMap.
func EncodeList(value data.Data) (string, error) {
	l, ok := value.(data.List)
	if !ok {
		return "", cerrors.ExpectedFound("list", value.Kind().String(), nil)
	}
	var sb strings.Builder
	for _, item := range l.Items() {
		sb.WriteString(Serialize(item))
		sb.WriteString("\n")
	}
	return sb.String(), nil
}

// DecodeMap parses read_map's file shape: bare "key value" pairs with no
// enclosing braces, recovered by wrapping the text in { } before handing
// it to Deserialize.
func DecodeMap(text string) (data.Data, error) {
	return Deserialize("{" + text + "}")
}

// DecodeList parses read_list's file shape: bare items with no
// enclosing brackets.
func DecodeList(text string) (data.Data, error) {
	return Deserialize("[" + text + "]")
}

// serializeLiteral escapes a string's control and delimiter characters
// using the §6.2 escape set and wraps it in delimiter on both sides.
func serializeLiteral(source string, delimiter byte) string {
	var sb strings.Builder
	sb.WriteByte(delimiter)
	for i := 0; i < len(source); i++ {
		ch := source[i]
		switch ch {
		case '\\':
			sb.WriteString(`\\`)
		case 0:
			sb.WriteString(`\0`)
		case 8:
			sb.WriteString(`\b`)
		case 27:
			sb.WriteString(`\e`)
		case '\n':
			sb.WriteString(`\n`)
		case '\t':
			sb.WriteString(`\t`)
		case '\r':
			sb.WriteString(`\r`)
		case '\'':
			sb.WriteString(`\'`)
		case '"':
			sb.WriteString(`\"`)
		default:
			sb.WriteByte(ch)
		}
	}
	sb.WriteByte(delimiter)
	return sb.String()
}
