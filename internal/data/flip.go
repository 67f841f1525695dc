package data

// Flip reverses any container (§3.2, invariant §8.1.5: Flip(Flip(x)) ==
// x). For Map, flipping reverses the physical entry order rather than
// re-deriving a sort order; the Map methods that rely on sortedness
// (Index, Insert, Overwrite) are not meant to be called on a freshly
// flipped map before flipping it back — Flip is a snapshot transform, not
// a standing container operation, matching the value-semantic, no-hidden-
// invariant philosophy of §3.3.
func Flip(container Data) (Data, error) {
	switch c := container.(type) {
	case List:
		return c.Flip(), nil
	case Path:
		steps := append([]Data(nil), c.Steps...)
		for i, j := 0, len(steps)-1; i < j; i, j = i+1, j-1 {
			steps[i], steps[j] = steps[j], steps[i]
		}
		return Path{Steps: steps}, nil
	case Map:
		entries := c.Entries()
		for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
			entries[i], entries[j] = entries[j], entries[i]
		}
		return Map{entries: entries}, nil
	default:
		text, ok := literalText(container)
		if !ok {
			return nil, errNotAContainer(container)
		}
		bytes := []byte(text)
		for i, j := 0, len(bytes)-1; i < j; i, j = i+1, j-1 {
			bytes[i], bytes[j] = bytes[j], bytes[i]
		}
		return rebuildLiteral(container, string(bytes)), nil
	}
}
