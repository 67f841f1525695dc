package serialize

import (
	"strconv"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/vE5li/igt5/internal/cerrors"
	"github.com/vE5li/igt5/internal/data"
)

// DataFromJSON converts a JSON document into a Data tree, for compiler
// configs authored in JSON and for the inspect command's --query flag.
// Objects become Maps keyed by Identifier (JSON keys have no keyword
// sigil, so they're the nearest key variant that round-trips cleanly),
// arrays become Lists, and numbers split on whether gjson parsed them
// with a fractional part.
func DataFromJSON(text string) (data.Data, error) {
	if !gjson.Valid(text) {
		return nil, cerrors.New(cerrors.KindInvalidToken, "invalid JSON document", nil)
	}
	return fromJSONValue(gjson.Parse(text)), nil
}

func fromJSONValue(value gjson.Result) data.Data {
	switch value.Type {
	case gjson.True:
		return data.Boolean(true)
	case gjson.False:
		return data.Boolean(false)
	case gjson.Number:
		if isWholeNumber(value.Raw) {
			return data.Integer(value.Int())
		}
		return data.Float(value.Float())
	case gjson.String:
		return data.String(value.String())
	case gjson.JSON:
		if value.IsArray() {
			var items []data.Data
			value.ForEach(func(_, item gjson.Result) bool {
				items = append(items, fromJSONValue(item))
				return true
			})
			return data.NewList(items...)
		}
		result := data.NewMap()
		value.ForEach(func(key, item gjson.Result) bool {
			inserted, err := result.Overwrite(data.Identifier(key.String()), fromJSONValue(item))
			if err == nil {
				result = inserted
			}
			return true
		})
		return result
	default:
		return data.Boolean(false)
	}
}

func isWholeNumber(raw string) bool {
	_, err := strconv.ParseInt(raw, 10, 64)
	return err == nil
}

// DataToJSON renders a Data tree as JSON, for `compile --format json`.
// Map keys are flattened through Literal (identifiers, keywords and
// strings have a printable text form JSON can use as an object key);
// every other key, characters and Paths included, uses its native
// serialized text form.
func DataToJSON(value data.Data) (string, error) {
	return toJSONValue("", value)
}

func toJSONValue(path string, value data.Data) (string, error) {
	switch v := value.(type) {
	case data.Map:
		json := "{}"
		var err error
		for _, entry := range v.Entries() {
			key, ok := data.Literal(entry.Key)
			if !ok {
				key = Serialize(entry.Key)
			}
			json, err = setJSONField(json, key, entry.Value)
			if err != nil {
				return "", err
			}
		}
		return json, nil

	case data.List:
		json := "[]"
		var err error
		for i, item := range v.Items() {
			json, err = setJSONField(json, strconv.Itoa(i), item)
			if err != nil {
				return "", err
			}
		}
		return json, nil

	default:
		encoded, err := sjson.Set("{}", "value", jsonScalar(value))
		if err != nil {
			return "", err
		}
		return gjson.Get(encoded, "value").Raw, nil
	}
}

func setJSONField(json, key string, value data.Data) (string, error) {
	switch value.(type) {
	case data.Map, data.List:
		nested, err := toJSONValue(key, value)
		if err != nil {
			return "", err
		}
		return sjson.SetRaw(json, key, nested)
	default:
		return sjson.Set(json, key, jsonScalar(value))
	}
}

func jsonScalar(value data.Data) any {
	switch v := value.(type) {
	case data.Integer:
		return int64(v)
	case data.Float:
		return float64(v)
	case data.Boolean:
		return bool(v)
	case data.Identifier, data.Keyword, data.String:
		text, _ := data.Literal(v)
		return text
	default:
		return Serialize(v)
	}
}
