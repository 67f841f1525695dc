// Package template implements the grammar-as-data model of §3.6/§4.4: templates,
// flavors and pieces are pulled on demand from the compiler config, validated
// against a tokenizer VariantRegistry, and analyzed for widthlessness and
// start sets so the parser (internal/parser) can enumerate matches.
package template

// DecisionKind identifies which §4.5 parser choice a Decision records.
type DecisionKind int

const (
	DecisionTemplate DecisionKind = iota
	DecisionFilter
	DecisionFlavor
	DecisionList
	DecisionNext
	DecisionEnd
)

func (k DecisionKind) String() string {
	switch k {
	case DecisionTemplate:
		return "template"
	case DecisionFilter:
		return "filter"
	case DecisionFlavor:
		return "flavor"
	case DecisionList:
		return "list"
	case DecisionNext:
		return "next"
	case DecisionEnd:
		return "end"
	default:
		return "?"
	}
}

// Decision is one committed parser choice (§4.5): which template a path
// entered, which flavor or filter alternative it took, or a list-iteration
// marker (List/Next/End).
type Decision struct {
	Kind     DecisionKind
	Template string
	Index    int
}

func TemplateDecision(name string) Decision { return Decision{Kind: DecisionTemplate, Template: name} }
func FilterDecision(i int) Decision         { return Decision{Kind: DecisionFilter, Index: i} }
func FlavorDecision(i int) Decision         { return Decision{Kind: DecisionFlavor, Index: i} }
func ListDecision() Decision                { return Decision{Kind: DecisionList} }
func NextDecision() Decision                { return Decision{Kind: DecisionNext} }
func EndDecision() Decision                 { return Decision{Kind: DecisionEnd} }

// Compare implements §4.5.1's pairwise decision ordering: nil means a tie
// (keep comparing later decisions), a non-nil bool reports whether self
// loses to other (true = self loses).
func (d Decision) Compare(other Decision) *bool {
	yes, no := true, false
	switch d.Kind {
	case DecisionFilter, DecisionFlavor:
		if d.Index == other.Index {
			return nil
		}
		result := d.Index > other.Index
		return &result
	case DecisionNext:
		switch other.Kind {
		case DecisionNext:
			return nil
		case DecisionEnd:
			return &yes
		}
		panic("incomparable decisions: Next vs " + other.Kind.String())
	case DecisionEnd:
		switch other.Kind {
		case DecisionEnd:
			return nil
		case DecisionNext:
			return &no
		}
		panic("incomparable decisions: End vs " + other.Kind.String())
	default:
		if d != other {
			panic("incomparable decisions: " + d.Kind.String() + " vs " + other.Kind.String())
		}
		return nil
	}
}
