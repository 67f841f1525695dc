package data

import "fmt"

// groupRank gives the §3.4 group precedence, highest first: Path >
// Identifier > Keyword > String > Character > Boolean > Integer. Map,
// List and Float have no rank — Compare panics on them, since they are
// never map-key eligible (§3.1) and the ordering is only defined among
// key-eligible variants.
func groupRank(k Kind) int {
	switch k {
	case KindPath:
		return 0
	case KindIdentifier:
		return 1
	case KindKeyword:
		return 2
	case KindString:
		return 3
	case KindCharacter:
		return 4
	case KindBoolean:
		return 5
	case KindInteger:
		return 6
	default:
		panic(fmt.Sprintf("data: %s has no total ordering rank", k))
	}
}

// Compare implements the total ordering of §3.4 among key-eligible
// variants. It returns -1, 0 or 1. Panics if a or b is Map, List or
// Float — those are never map-key eligible, so callers must not invoke
// Compare on them (the Map implementation never does).
func Compare(a, b Data) int {
	ra, rb := groupRank(a.Kind()), groupRank(b.Kind())
	if ra != rb {
		if ra < rb {
			return -1
		}
		return 1
	}

	switch av := a.(type) {
	case Path:
		return comparePath(av, b.(Path))
	case Identifier:
		return compareString(string(av), string(b.(Identifier)))
	case Keyword:
		return compareString(string(av), string(b.(Keyword)))
	case String:
		return compareString(string(av), string(b.(String)))
	case Character:
		return compareInt(int64(av), int64(b.(Character)))
	case Boolean:
		bb := b.(Boolean)
		if av == bb {
			return 0
		}
		if !bool(av) && bool(bb) {
			return -1
		}
		return 1
	case Integer:
		return compareInt(int64(av), int64(b.(Integer)))
	default:
		panic(fmt.Sprintf("data: %s has no total ordering rank", a.Kind()))
	}
}

func compareString(a, b string) int {
	if a < b {
		return -1
	}
	if a > b {
		return 1
	}
	return 0
}

func compareInt(a, b int64) int {
	if a < b {
		return -1
	}
	if a > b {
		return 1
	}
	return 0
}

func comparePath(a, b Path) int {
	for i := 0; i < len(a.Steps) && i < len(b.Steps); i++ {
		if c := Compare(a.Steps[i], b.Steps[i]); c != 0 {
			return c
		}
	}
	return compareInt(int64(len(a.Steps)), int64(len(b.Steps)))
}
