package data

import "strings"

// Fill pads container up to targetLength by appending copies of filler at
// the end; FillBack pads by prepending at the start. Both are no-ops if
// the container is already at or past targetLength. They back the `fill`
// and `fill_back` instructions (§4.7 container category).
func Fill(container Data, filler Data, targetLength int) (Data, error) {
	return fillImpl(container, filler, targetLength, false)
}

func FillBack(container Data, filler Data, targetLength int) (Data, error) {
	return fillImpl(container, filler, targetLength, true)
}

func fillImpl(container Data, filler Data, targetLength int, front bool) (Data, error) {
	switch c := container.(type) {
	case List:
		missing := targetLength - c.Len()
		if missing <= 0 {
			return c, nil
		}
		pad := make([]Data, missing)
		for i := range pad {
			pad[i] = filler
		}
		if front {
			return List{items: append(pad, c.items...)}, nil
		}
		return List{items: append(append([]Data(nil), c.items...), pad...)}, nil
	default:
		text, ok := literalText(container)
		if !ok {
			return nil, errNotAContainer(container)
		}
		fillText, ok := literalText(filler)
		if !ok {
			return nil, errNotSelector(filler)
		}
		missing := targetLength - len(text)
		if missing <= 0 || fillText == "" {
			return container, nil
		}
		pad := strings.Repeat(fillText, missing)
		if len(pad) > missing {
			pad = pad[:missing]
		}
		if front {
			return rebuildLiteral(container, pad+text), nil
		}
		return rebuildLiteral(container, text+pad), nil
	}
}
