package engine

import "github.com/vE5li/igt5/internal/data"

// flowKind tags which of the four §5 flow-control shapes a frame on the
// flow stack represents.
type flowKind int

const (
	flowCondition flowKind = iota
	flowFor
	flowWhile
	flowIndexIteration
)

// flow is one frame of the flow stack alongside the data stack (§4.7,
// §5): `if`/`while` push a Condition/While frame, `for` pushes a For
// frame, `iterate` pushes an IndexIteration frame carrying the remaining
// selector/instance pairs. Tagged struct, not four concrete types,
// mirroring the Piece/Token precedent: every frame kind is driven through
// a single switch in DataStack.update.
type flow struct {
	kind flowKind

	// flowCondition
	state bool

	// flowFor
	current, end, step int64

	// flowWhile
	source      []data.Data
	initialLast data.Data

	// flowIndexIteration
	iterators []data.Data

	saved int
}

// iterationPair builds the {selector, instance} map `iterate` yields on
// every step (ported from the `iterate`/`pairs` instruction's shared
// shape).
func iterationPair(selector, instance data.Data) data.Data {
	m := data.NewMap()
	m, _ = m.Insert(data.Identifier("selector"), selector)
	m, _ = m.Insert(data.Identifier("instance"), instance)
	return m
}
