package data

// Index performs the general §3.2 indexing: an integer selector walks a
// List or Path positionally (1-based, negative wrap-around); a selector
// indexing a Map looks the key up directly; indexing a string-backed
// literal (String, Identifier, Keyword) yields a Character; a Path
// selector walks its steps left to right through successive containers,
// each intermediate landing spot required to be a container (§3.2).
func Index(container Data, selector Data) (Data, bool, error) {
	if path, ok := selector.(Path); ok {
		return indexByPath(container, path)
	}
	return indexOne(container, selector)
}

func indexByPath(container Data, path Path) (Data, bool, error) {
	current := container
	for i, step := range path.Steps {
		value, found, err := indexOne(current, step)
		if err != nil {
			return nil, false, err
		}
		if !found {
			return nil, false, nil
		}
		if i < len(path.Steps)-1 {
			if !IsContainer(value) {
				return nil, false, errIntermediateNotContainer(value)
			}
		}
		current = value
	}
	return current, true, nil
}

func indexOne(container Data, selector Data) (Data, bool, error) {
	switch c := container.(type) {
	case Map:
		if !IsKey(selector) {
			return nil, false, errNotSelector(selector)
		}
		v, ok := c.Index(selector)
		return v, ok, nil
	case List:
		i, ok := asInteger(selector)
		if !ok {
			return nil, false, errNotSelector(selector)
		}
		return c.Index(i)
	case Path:
		i, ok := asInteger(selector)
		if !ok {
			return nil, false, errNotSelector(selector)
		}
		idx, found, err := resolveIndexTriple(i, len(c.Steps))
		if err != nil || !found {
			return nil, false, err
		}
		return c.Steps[idx], true, nil
	case String:
		return indexLiteral(string(c), selector)
	case Identifier:
		return indexLiteral(string(c), selector)
	case Keyword:
		return indexLiteral(string(c), selector)
	default:
		return nil, false, errNotAContainer(container)
	}
}

func resolveIndexTriple(i int64, length int) (int, bool, error) {
	return resolveIndex(i, length)
}

func asInteger(d Data) (int64, bool) {
	switch v := d.(type) {
	case Integer:
		return int64(v), true
	case Character:
		return int64(v), true
	default:
		return 0, false
	}
}

func indexLiteral(text string, selector Data) (Data, bool, error) {
	i, ok := asInteger(selector)
	if !ok {
		return nil, false, errNotSelector(selector)
	}
	idx, found, err := resolveIndex(i, len(text))
	if err != nil || !found {
		return nil, false, err
	}
	return Character(text[idx]), true, nil
}
