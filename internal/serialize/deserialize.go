package serialize

import (
	"strconv"
	"strings"

	"github.com/vE5li/igt5/internal/cerrors"
	"github.com/vE5li/igt5/internal/charstream"
	"github.com/vE5li/igt5/internal/data"
	"github.com/vE5li/igt5/internal/token"
)

// Deserialize parses the native text format (§6.2) back into a Data
// value. Ported from parse_data/collect/check_path/update in
// original_source's internal/parse/mod.rs; the stream's default breaking
// set already matches this grammar exactly, so no extra registration is
// needed.
func Deserialize(text string) (data.Data, error) {
	stream, err := charstream.New(text, "")
	if err != nil {
		return nil, err
	}
	return parseData(stream)
}

func here(stream *charstream.Stream) []token.Position {
	return []token.Position{stream.CurrentPosition()}
}

// skipSeparators discards whitespace, the `. ; \n \t \r` separators, and
// both comment styles (`@ … \n` line, `@@ … @@` block) between tokens.
func skipSeparators(stream *charstream.Stream) error {
	for {
		ch, ok := stream.Peek()
		if !ok {
			return nil
		}
		switch ch {
		case '\n', '\t', '\r', ';', '.', ' ':
			stream.Advance()
		case '@':
			stream.Advance()
			if stream.Check('@') {
				closed := false
				for !closed {
					next, ok := stream.Advance()
					if !ok {
						return cerrors.New(cerrors.KindUnterminatedToken, "unterminated block comment", here(stream))
					}
					if next == '@' && stream.Check('@') {
						closed = true
					}
				}
			} else {
				for {
					next, ok := stream.Peek()
					if !ok {
						break
					}
					stream.Advance()
					if next == '\n' {
						break
					}
				}
			}
		default:
			return nil
		}
	}
}

// collect reads a delimited literal's raw bytes (everything up to but not
// including the matching, unescaped delimiter), resolving the §6.2
// escape set along the way: \\ \0 \b \e \n \t \r \' \" and a numeric
// \[code] escape (decimal byte value).
func collect(stream *charstream.Stream, name string, delimiter byte) (string, error) {
	var sb strings.Builder
	for {
		ch, ok := stream.Advance()
		if !ok {
			return "", cerrors.New(cerrors.KindUnterminatedToken, "unterminated "+name, here(stream))
		}
		if ch == delimiter {
			return sb.String(), nil
		}
		if ch != '\\' {
			sb.WriteByte(ch)
			continue
		}

		escape, ok := stream.Advance()
		if !ok {
			return "", cerrors.New(cerrors.KindUnterminatedEscape, "unterminated escape sequence", here(stream))
		}
		switch escape {
		case '\\':
			sb.WriteByte('\\')
		case '0':
			sb.WriteByte(0)
		case 'b':
			sb.WriteByte(8)
		case 'e':
			sb.WriteByte(27)
		case 'n':
			sb.WriteByte('\n')
		case 't':
			sb.WriteByte('\t')
		case 'r':
			sb.WriteByte('\r')
		case '\'':
			sb.WriteByte('\'')
		case '"':
			sb.WriteByte('"')
		default:
			if escape < '0' || escape > '9' {
				return "", cerrors.New(cerrors.KindInvalidEscapeSequence, "invalid escape sequence", here(stream))
			}
			code := []byte{escape}
			for {
				next, ok := stream.Peek()
				if !ok || next < '0' || next > '9' {
					break
				}
				stream.Advance()
				code = append(code, next)
			}
			value, err := strconv.Atoi(string(code))
			if err != nil || value > 255 {
				return "", cerrors.New(cerrors.KindInvalidEscapeSequence, "invalid numeric escape sequence", here(stream))
			}
			sb.WriteByte(byte(value))
		}
	}
}

// checkPath extends a just-parsed selector into a Path if a `:` follows,
// recursively consuming further `:`-separated selector steps.
func checkPath(stream *charstream.Stream, first data.Data) (data.Data, error) {
	if !stream.Check(':') {
		return first, nil
	}
	rest, err := parseData(stream)
	if err != nil {
		return nil, err
	}
	if restPath, ok := rest.(data.Path); ok {
		steps := append([]data.Data{first}, restPath.Steps...)
		path, err := data.NewPath(steps)
		if err != nil {
			return nil, err
		}
		return path, nil
	}
	path, err := data.NewPath([]data.Data{first, rest})
	if err != nil {
		return nil, err
	}
	return path, nil
}

// parseData parses one Data value, per §6.2's grammar.
func parseData(stream *charstream.Stream) (data.Data, error) {
	if err := skipSeparators(stream); err != nil {
		return nil, err
	}

	ch, ok := stream.Peek()
	if !ok {
		return nil, cerrors.New(cerrors.KindNothingToParse, "nothing to parse", here(stream))
	}

	switch ch {
	case '{':
		stream.Advance()
		return parseMap(stream)

	case '[':
		stream.Advance()
		return parseList(stream)

	case '#':
		stream.Advance()
		word, err := stream.TillBreaking()
		if err != nil {
			return nil, err
		}
		return checkPath(stream, data.Keyword(word))

	case '\'':
		stream.Advance()
		text, err := collect(stream, "character", '\'')
		if err != nil {
			return nil, err
		}
		if len(text) != 1 {
			return nil, cerrors.New(cerrors.KindInvalidCharacterLength, "a character literal must be exactly one byte", here(stream))
		}
		return checkPath(stream, data.Character(text[0]))

	case '"':
		stream.Advance()
		text, err := collect(stream, "string", '"')
		if err != nil {
			return nil, err
		}
		return checkPath(stream, data.String(text))

	case '$':
		stream.Advance()
		word, err := stream.TillBreaking()
		if err != nil {
			return nil, err
		}
		switch word {
		case "true":
			return data.Boolean(true), nil
		case "false":
			return data.Boolean(false), nil
		default:
			return nil, cerrors.New(cerrors.KindExpectedBooleanFound, "expected $true or $false, found $"+word, here(stream))
		}

	case '-':
		stream.Advance()
		word, err := stream.TillBreaking()
		if err != nil {
			return nil, err
		}
		var floatSource *string
		if stream.Check('.') {
			tail, err := stream.TillBreaking()
			if err != nil {
				return nil, err
			}
			floatSource = &tail
		}
		value, ok, err := parseNumber(word, floatSource, true)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, cerrors.New(cerrors.KindInvalidNumber, "expected a number after -", here(stream))
		}
		return value, nil

	default:
		word, err := stream.TillBreaking()
		if err != nil {
			return nil, err
		}
		var floatSource *string
		if stream.Check('.') {
			tail, err := stream.TillBreaking()
			if err != nil {
				return nil, err
			}
			floatSource = &tail
		}
		value, ok, err := parseNumber(word, floatSource, false)
		if err != nil {
			return nil, err
		}
		if ok {
			return value, nil
		}
		if floatSource != nil {
			word = word + "." + *floatSource
		}
		return checkPath(stream, data.Identifier(word))
	}
}

// parseNumber mirrors parse_number: source parses as an int64 or it
// doesn't (ok=false means "not a number", fine when the caller falls
// back to treating it as an identifier). A present floatSource commits
// to a float result, erroring if either half isn't all-digits.
func parseNumber(source string, floatSource *string, negative bool) (data.Data, bool, error) {
	value, integerErr := strconv.ParseInt(source, 10, 64)

	if floatSource != nil {
		fractional, err := strconv.ParseInt(*floatSource, 10, 64)
		if err != nil || integerErr != nil {
			return nil, false, cerrors.New(cerrors.KindInvalidNumber, "invalid decimal number", nil)
		}
		scale := 1.0
		for i := 0; i < len(*floatSource); i++ {
			scale *= 10
		}
		result := float64(value) + float64(fractional)/scale
		if negative {
			result = -result
		}
		return data.Float(result), true, nil
	}

	if integerErr != nil {
		return nil, false, nil
	}
	if negative {
		value = -value
	}
	return data.Integer(value), true, nil
}

func parseMap(stream *charstream.Stream) (data.Data, error) {
	result := data.NewMap()
	for {
		if err := skipSeparators(stream); err != nil {
			return nil, err
		}
		if stream.Check('}') {
			return result, nil
		}
		if stream.Empty() {
			return nil, cerrors.New(cerrors.KindUnterminatedToken, "unterminated map", here(stream))
		}

		key, err := parseData(stream)
		if err != nil {
			return nil, err
		}
		if key.Kind() == data.KindPath || key.Kind() == data.KindInteger {
			return nil, cerrors.New(cerrors.KindInvalidType, "a map key may not be a path or an integer", here(stream))
		}

		value, err := parseData(stream)
		if err != nil {
			return nil, err
		}

		inserted, err := result.Insert(key, value)
		if err != nil {
			return nil, cerrors.InexplicitOverwrite(key.String())
		}
		result = inserted
	}
}

func parseList(stream *charstream.Stream) (data.Data, error) {
	var items []data.Data
	for {
		if err := skipSeparators(stream); err != nil {
			return nil, err
		}
		if stream.Check(']') {
			return data.NewList(items...), nil
		}
		if stream.Empty() {
			return nil, cerrors.New(cerrors.KindUnterminatedToken, "unterminated list", here(stream))
		}

		item, err := parseData(stream)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
}
