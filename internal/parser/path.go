// Package parser implements the §4.5 path-enumeration parser: given the
// template table built by internal/template, it walks the token stream and
// enumerates every grammatically possible Decision sequence, reducing
// competing paths down to the single best match.
package parser

import "github.com/vE5li/igt5/internal/template"

// Path is one candidate parse in progress: the decisions committed so far,
// where it started, how many tokens it has consumed, and whether it has
// reached a confirmed (list-terminal) state.
type Path struct {
	Decisions []template.Decision
	Index     int
	Width     int
	Confirmed bool
}

func newPath(decisions []template.Decision, index, width int, confirmed bool) Path {
	return Path{Decisions: decisions, Index: index, Width: width, Confirmed: confirmed}
}

// Evaluate implements §4.5.1: two paths are only comparable once they've
// consumed the same width; ties are broken by the first decision (read
// left to right) whose Compare is non-nil.
func (p Path) Evaluate(other Path) *bool {
	if p.Width != other.Width {
		return nil
	}
	for i := range p.Decisions {
		if result := p.Decisions[i].Compare(other.Decisions[i]); result != nil {
			return result
		}
	}
	panic("paths of equal width produced no comparable decision")
}

func derive(path Path, newPaths []Path) []Path {
	derived := make([]Path, 0, len(newPaths))
	for _, np := range newPaths {
		combined := make([]template.Decision, 0, len(path.Decisions)+len(np.Decisions))
		combined = append(combined, path.Decisions...)
		combined = append(combined, np.Decisions...)
		derived = append(derived, newPath(combined, path.Index, path.Width+np.Width, path.Confirmed || np.Confirmed))
	}
	return derived
}

func pushDecision(paths []Path, decision template.Decision) {
	for i := range paths {
		paths[i].Decisions = append(paths[i].Decisions, decision)
	}
}

func injectDecision(paths []Path, decision template.Decision) {
	for i := range paths {
		withHead := make([]template.Decision, 0, len(paths[i].Decisions)+1)
		withHead = append(withHead, decision)
		withHead = append(withHead, paths[i].Decisions...)
		paths[i].Decisions = withHead
	}
}

// reducePaths drops every path that loses a pairwise Evaluate comparison
// against another path still in the slice, mirroring Parser::reduce_paths.
func reducePaths(paths []Path) []Path {
	base := 0
outer:
	for base+1 < len(paths) {
		offset := base + 1
		for offset < len(paths) {
			switch result := paths[base].Evaluate(paths[offset]); {
			case result == nil:
				offset++
			case *result:
				paths = append(paths[:base], paths[base+1:]...)
				continue outer
			default:
				paths = append(paths[:offset], paths[offset+1:]...)
			}
		}
		base++
	}
	return paths
}
