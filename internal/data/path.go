package data

import "strings"

// Path is an ordered sequence of at least two selectors, used as a
// compound key for multi-step indexing (§3.1, §3.2).
type Path struct {
	Steps []Data
}

// NewPath validates the §3.1 invariant (length >= 2, every step a
// selector) before constructing a Path.
func NewPath(steps []Data) (Path, error) {
	if len(steps) < 2 {
		return Path{}, invalidPathLength(len(steps))
	}
	for _, s := range steps {
		if !IsSelector(s) {
			return Path{}, errNotSelector(s)
		}
	}
	return Path{Steps: append([]Data(nil), steps...)}, nil
}

func (p Path) Kind() Kind { return KindPath }

func (p Path) Equal(other Data) bool {
	o, ok := other.(Path)
	if !ok || len(p.Steps) != len(o.Steps) {
		return false
	}
	for i := range p.Steps {
		if !p.Steps[i].Equal(o.Steps[i]) {
			return false
		}
	}
	return true
}

func (p Path) String() string {
	parts := make([]string, len(p.Steps))
	for i, s := range p.Steps {
		parts[i] = selectorString(s)
	}
	return strings.Join(parts, ":")
}

func selectorString(d Data) string {
	switch v := d.(type) {
	case Identifier:
		return string(v)
	case Keyword:
		return "#" + string(v)
	case String:
		return string(v)
	case Character:
		return string(rune(v))
	case Integer:
		return v.String()
	case Boolean:
		return v.String()
	default:
		return d.String()
	}
}

// Head returns the first step and, if there remain >= 2 steps, a
// sub-Path of the rest; otherwise it returns the single remaining step
// unwrapped (walking a Path always bottoms out on a plain selector).
func (p Path) Head() (first Data, rest Data) {
	first = p.Steps[0]
	if len(p.Steps) == 2 {
		return first, p.Steps[1]
	}
	sub, _ := NewPath(p.Steps[1:])
	return first, sub
}
