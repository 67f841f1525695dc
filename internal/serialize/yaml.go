package serialize

import (
	"github.com/goccy/go-yaml"

	"github.com/vE5li/igt5/internal/cerrors"
	"github.com/vE5li/igt5/internal/data"
)

// DataFromYAML reads a compiler config authored as YAML (accepted
// alongside the native text format via `-p project.yaml`). It decodes
// into the same generic shape encoding/json would (map[string]any,
// []any, scalars) and reuses fromGenericValue to build the Data tree,
// so a YAML and a JSON config of the same project converge on an
// identical tree.
func DataFromYAML(text string) (data.Data, error) {
	var generic any
	if err := yaml.Unmarshal([]byte(text), &generic); err != nil {
		return nil, cerrors.New(cerrors.KindInvalidToken, "invalid YAML document: "+err.Error(), nil)
	}
	return fromGenericValue(generic), nil
}

// DataToYAML renders a Data tree back out as YAML.
func DataToYAML(value data.Data) (string, error) {
	encoded, err := yaml.Marshal(toGenericValue(value))
	if err != nil {
		return "", err
	}
	return string(encoded), nil
}

func fromGenericValue(value any) data.Data {
	switch v := value.(type) {
	case nil:
		return data.Boolean(false)
	case bool:
		return data.Boolean(v)
	case int:
		return data.Integer(int64(v))
	case int64:
		return data.Integer(v)
	case uint64:
		return data.Integer(int64(v))
	case float64:
		if float64(int64(v)) == v {
			return data.Integer(int64(v))
		}
		return data.Float(v)
	case string:
		return data.String(v)
	case []any:
		items := make([]data.Data, len(v))
		for i, item := range v {
			items[i] = fromGenericValue(item)
		}
		return data.NewList(items...)
	case map[string]any:
		result := data.NewMap()
		for key, item := range v {
			inserted, err := result.Overwrite(data.Identifier(key), fromGenericValue(item))
			if err == nil {
				result = inserted
			}
		}
		return result
	case map[any]any:
		result := data.NewMap()
		for key, item := range v {
			keyText, ok := key.(string)
			if !ok {
				continue
			}
			inserted, err := result.Overwrite(data.Identifier(keyText), fromGenericValue(item))
			if err == nil {
				result = inserted
			}
		}
		return result
	default:
		return data.Boolean(false)
	}
}

func toGenericValue(value data.Data) any {
	switch v := value.(type) {
	case data.Map:
		result := make(map[string]any, v.Len())
		for _, entry := range v.Entries() {
			key, ok := data.Literal(entry.Key)
			if !ok {
				key = Serialize(entry.Key)
			}
			result[key] = toGenericValue(entry.Value)
		}
		return result
	case data.List:
		items := v.Items()
		result := make([]any, len(items))
		for i, item := range items {
			result[i] = toGenericValue(item)
		}
		return result
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
