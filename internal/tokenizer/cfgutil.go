package tokenizer

import "github.com/vE5li/igt5/internal/data"

// The tokenizer configuration is itself Data (§4.2): these helpers pull
// typed shapes out of the generic map/list tree the compiler config hands
// us, the same "config is data too" approach the teacher takes with its
// own cobra flag structs — except here the "struct" is whatever the
// config author wrote in the project file.

func subMap(m data.Map, key string) (data.Map, bool) {
	v, ok := m.Index(data.Keyword(key))
	if !ok {
		return data.Map{}, false
	}
	sub, ok := v.(data.Map)
	return sub, ok
}

func subList(m data.Map, key string) (data.List, bool) {
	v, ok := m.Index(data.Keyword(key))
	if !ok {
		return data.List{}, false
	}
	lst, ok := v.(data.List)
	return lst, ok
}

// literalAt returns the literal text of m[key], accepting String,
// Identifier or Keyword payloads (they share an underlying character
// sequence — §3.1).
func literalAt(m data.Map, key string) (string, bool) {
	v, ok := m.Index(data.Keyword(key))
	if !ok {
		return "", false
	}
	return data.Literal(v)
}

func asLiteralText(d data.Data) (string, bool) {
	return data.Literal(d)
}

// keywordName returns name if d is Keyword(name).
func keywordName(d data.Data) (string, bool) {
	kw, ok := d.(data.Keyword)
	if !ok {
		return "", false
	}
	return string(kw), true
}

func stringListOf(l data.List) []string {
	items := l.Items()
	out := make([]string, 0, len(items))
	for _, item := range items {
		if text, ok := asLiteralText(item); ok {
			out = append(out, text)
		}
	}
	return out
}

// longestFirst stable-sorts strings longest first, the matching order
// §4.2 requires for suffix/prefix/translate tables.
func longestFirst(items []string) []string {
	out := append([]string(nil), items...)
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && len(out[j]) > len(out[j-1]); j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}
