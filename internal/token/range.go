package token

import "sort"

// Fuze merges adjacent positions that share file/source/line into single,
// wider positions. It is idempotent: Fuze(Fuze(ps)) == Fuze(ps).
func Fuze(positions []Position) []Position {
	if len(positions) == 0 {
		return nil
	}

	groups := groupByFileSource(positions)
	var out []Position
	for _, group := range groups {
		out = append(out, fuzeGroup(group)...)
	}
	return out
}

func fuzeGroup(group []Position) []Position {
	sorted := append([]Position(nil), group...)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Line != sorted[j].Line {
			return sorted[i].Line < sorted[j].Line
		}
		return sorted[i].Character < sorted[j].Character
	})

	var out []Position
	current := sorted[0]
	for _, next := range sorted[1:] {
		if next.Line == current.Line && next.Character <= current.Character+current.Length {
			end := max(current.Character+current.Length, next.Character+next.Length)
			current.Length = end - current.Character
			continue
		}
		out = append(out, current)
		current = next
	}
	out = append(out, current)
	return out
}

// Range expands a set of positions into the minimal covering set of
// per-line ranges: one Position per distinct line, spanning from the
// smallest Character reached on that line to the largest end column.
func Range(positions []Position) []Position {
	if len(positions) == 0 {
		return nil
	}

	groups := groupByFileSource(positions)
	var out []Position
	for _, group := range groups {
		out = append(out, rangeGroup(group)...)
	}
	return out
}

func rangeGroup(group []Position) []Position {
	byLine := map[int]*Position{}
	var lines []int
	for _, p := range group {
		end := p.Character + p.Length
		if existing, ok := byLine[p.Line]; ok {
			existingEnd := existing.Character + existing.Length
			if p.Character < existing.Character {
				existing.Character = p.Character
			}
			if end > existingEnd {
				existingEnd = end
			}
			existing.Length = existingEnd - existing.Character
		} else {
			copyOf := p
			copyOf.Length = end - p.Character
			byLine[p.Line] = &copyOf
			lines = append(lines, p.Line)
		}
	}

	sort.Ints(lines)
	out := make([]Position, 0, len(lines))
	for _, line := range lines {
		out = append(out, *byLine[line])
	}
	return out
}

func groupByFileSource(positions []Position) [][]Position {
	type key struct{ file, source string }
	order := []key{}
	groups := map[key][]Position{}
	for _, p := range positions {
		k := key{p.File, p.Source}
		if _, ok := groups[k]; !ok {
			order = append(order, k)
		}
		groups[k] = append(groups[k], p)
	}
	out := make([][]Position, 0, len(order))
	for _, k := range order {
		out = append(out, groups[k])
	}
	return out
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
