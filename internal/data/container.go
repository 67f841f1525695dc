package data

import "strings"

// rebuildLiteral reconstructs a literal-backed value of the same Kind as
// sample but with new text — used by the literal-splicing operations
// below to preserve whether the receiver was a String, Identifier or
// Keyword.
func rebuildLiteral(sample Data, text string) Data {
	switch sample.(type) {
	case Identifier:
		return Identifier(text)
	case Keyword:
		return Keyword(text)
	default:
		return String(text)
	}
}

func literalText(d Data) (string, bool) {
	return Literal(d)
}

// ContainsOp implements §3.2 "contains" element-wise on containers and
// substring-wise on literals.
func ContainsOp(container Data, value Data) (bool, error) {
	switch c := container.(type) {
	case Map:
		if !IsKey(value) {
			return false, nil
		}
		return c.Contains(value), nil
	case List:
		return c.Contains(value), nil
	case Path:
		for _, step := range c.Steps {
			if step.Equal(value) {
				return true, nil
			}
		}
		return false, nil
	default:
		text, ok := literalText(container)
		if !ok {
			return false, errNotAContainer(container)
		}
		needle, ok := literalText(value)
		if !ok {
			return false, errNotSelector(value)
		}
		return strings.Contains(text, needle), nil
	}
}

// PositionOp returns the 1-based position of value within container: the
// element index for a List, the sorted-rank of a key for a Map, the step
// index for a Path, or the 1-based substring offset for a literal.
func PositionOp(container Data, value Data) (Data, bool, error) {
	switch c := container.(type) {
	case List:
		pos, ok := c.Position(value)
		if !ok {
			return nil, false, nil
		}
		return Integer(pos), true, nil
	case Map:
		if !IsKey(value) {
			return nil, false, nil
		}
		for i, e := range c.Entries() {
			if e.Key.Equal(value) {
				return Integer(i + 1), true, nil
			}
		}
		return nil, false, nil
	case Path:
		for i, step := range c.Steps {
			if step.Equal(value) {
				return Integer(i + 1), true, nil
			}
		}
		return nil, false, nil
	default:
		text, ok := literalText(container)
		if !ok {
			return nil, false, errNotAContainer(container)
		}
		needle, ok := literalText(value)
		if !ok {
			return nil, false, errNotSelector(value)
		}
		idx := strings.Index(text, needle)
		if idx < 0 {
			return nil, false, nil
		}
		return Integer(idx + 1), true, nil
	}
}

// ReplaceOp replaces occurrences of old with replacement: element-wise for
// List/Map values, substring-wise for literals.
func ReplaceOp(container Data, old, replacement Data) (Data, error) {
	switch c := container.(type) {
	case List:
		items := c.Items()
		for i, item := range items {
			if item.Equal(old) {
				items[i] = replacement
			}
		}
		return List{items: items}, nil
	case Map:
		entries := c.Entries()
		for i, e := range entries {
			if e.Value.Equal(old) {
				entries[i].Value = replacement
			}
		}
		return Map{entries: entries}, nil
	default:
		text, ok := literalText(container)
		if !ok {
			return nil, errNotAContainer(container)
		}
		oldText, ok := literalText(old)
		if !ok {
			return nil, errNotSelector(old)
		}
		newText, ok := literalText(replacement)
		if !ok {
			return nil, errNotSelector(replacement)
		}
		return rebuildLiteral(container, strings.ReplaceAll(text, oldText, newText)), nil
	}
}

// InsertAt implements container/location insertion (§3.2): Map insertion
// by key (fails on collision), List insertion by 1-based position, and
// literal splicing — the provided literal's text is spliced in at the
// 1-based character position without removing anything.
func InsertAt(container Data, selector Data, value Data) (Data, error) {
	switch c := container.(type) {
	case Map:
		return c.Insert(selector, value)
	case List:
		i, ok := asInteger(selector)
		if !ok {
			return nil, errNotSelector(selector)
		}
		return c.Insert(i, value)
	default:
		return spliceLiteral(container, selector, value, false)
	}
}

// OverwriteAt is InsertAt's collision-tolerant counterpart: Map overwrite
// replaces an existing key, List overwrite replaces the element at a
// position, and literal overwrite splices the new text in place of the
// single character at that position.
func OverwriteAt(container Data, selector Data, value Data) (Data, error) {
	switch c := container.(type) {
	case Map:
		return c.Overwrite(selector, value)
	case List:
		i, ok := asInteger(selector)
		if !ok {
			return nil, errNotSelector(selector)
		}
		return c.Overwrite(i, value)
	default:
		return spliceLiteral(container, selector, value, true)
	}
}

// Length reports a container's element count: Map entries, List items,
// Path steps, or literal character count.
func Length(container Data) (int, error) {
	switch c := container.(type) {
	case Map:
		return c.Len(), nil
	case List:
		return c.Len(), nil
	case Path:
		return len(c.Steps), nil
	default:
		text, ok := literalText(container)
		if !ok {
			return 0, errNotAContainer(container)
		}
		return len(text), nil
	}
}

// RemoveAt implements container/location removal: Map removal by key,
// List removal by 1-based position, and literal removal of the single
// character at that position.
func RemoveAt(container Data, selector Data) (Data, error) {
	switch c := container.(type) {
	case Map:
		return c.Remove(selector), nil
	case List:
		i, ok := asInteger(selector)
		if !ok {
			return nil, errNotSelector(selector)
		}
		return c.Remove(i)
	default:
		text, ok := literalText(container)
		if !ok {
			return nil, errNotAContainer(container)
		}
		i, ok := asInteger(selector)
		if !ok {
			return nil, errNotSelector(selector)
		}
		idx, found, err := resolveIndex(i, len(text))
		if err != nil {
			return nil, err
		}
		if !found {
			return nil, IndexOutOfRange(i, len(text))
		}
		return rebuildLiteral(container, text[:idx]+text[idx+1:]), nil
	}
}

// SliceAt implements container/location slicing between two 1-based,
// inclusive, wrap-around selectors: a List range, or a literal substring.
func SliceAt(container Data, from, to Data) (Data, error) {
	fromIndex, ok := asInteger(from)
	if !ok {
		return nil, errNotSelector(from)
	}
	toIndex, ok := asInteger(to)
	if !ok {
		return nil, errNotSelector(to)
	}
	switch c := container.(type) {
	case List:
		return c.Slice(fromIndex, toIndex)
	default:
		text, ok := literalText(container)
		if !ok {
			return nil, errNotAContainer(container)
		}
		start, found, err := resolveIndex(fromIndex, len(text))
		if err != nil {
			return nil, err
		}
		if !found {
			return nil, IndexOutOfRange(fromIndex, len(text))
		}
		end, found, err := resolveIndex(toIndex, len(text))
		if err != nil {
			return nil, err
		}
		if !found {
			return nil, IndexOutOfRange(toIndex, len(text))
		}
		if end < start {
			return rebuildLiteral(container, ""), nil
		}
		return rebuildLiteral(container, text[start:end+1]), nil
	}
}

func spliceLiteral(container Data, selector Data, value Data, overwrite bool) (Data, error) {
	text, ok := literalText(container)
	if !ok {
		return nil, errNotAContainer(container)
	}
	insertText, ok := literalText(value)
	if !ok {
		return nil, errNotSelector(value)
	}
	i, ok := asInteger(selector)
	if !ok {
		return nil, errNotSelector(selector)
	}
	length := len(text)
	if overwrite {
		length = len(text) // overwrite targets an existing character, same bound
	} else {
		length = len(text) + 1
	}
	idx, found, err := resolveIndex(i, length)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, IndexOutOfRange(i, len(text))
	}
	var result string
	if overwrite {
		result = text[:idx] + insertText + text[idx+1:]
	} else {
		result = text[:idx] + insertText + text[idx:]
	}
	return rebuildLiteral(container, result), nil
}
