package data

import "strings"

// List is the ordered sequence container of §3.1.
type List struct {
	items []Data
}

func NewList(items ...Data) List {
	return List{items: append([]Data(nil), items...)}
}

func (l List) Kind() Kind { return KindList }
func (l List) Len() int   { return len(l.items) }

func (l List) Equal(other Data) bool {
	o, ok := other.(List)
	if !ok || len(l.items) != len(o.items) {
		return false
	}
	for i := range l.items {
		if !l.items[i].Equal(o.items[i]) {
			return false
		}
	}
	return true
}

func (l List) String() string {
	parts := make([]string, len(l.items))
	for i, item := range l.items {
		parts[i] = item.String()
	}
	if len(parts) == 0 {
		return "[ ]"
	}
	return "[ " + strings.Join(parts, " ") + " ]"
}

func (l List) Items() []Data {
	return append([]Data(nil), l.items...)
}

// resolveIndex implements §3.2's 1-based, negative-wrap-around integer
// indexing rule: i maps to i-1 for i>0, to len+i for i<0, and is an error
// for i==0. The returned bool reports whether the resolved position is in
// range; out-of-range is reported to the caller as "missing", not as an
// error, per §3.2.
func resolveIndex(i int64, length int) (int, bool, error) {
	if i == 0 {
		return 0, false, errZeroIndex()
	}
	var idx int
	if i > 0 {
		idx = int(i) - 1
	} else {
		idx = length + int(i)
	}
	if idx < 0 || idx >= length {
		return 0, false, nil
	}
	return idx, true, nil
}

// Index resolves a 1-based, possibly negative integer selector against
// the list.
func (l List) Index(i int64) (Data, bool, error) {
	idx, ok, err := resolveIndex(i, len(l.items))
	if err != nil || !ok {
		return nil, false, err
	}
	return l.items[idx], true, nil
}

func (l List) clone() []Data {
	return append([]Data(nil), l.items...)
}

// Insert places value at the 1-based position i, shifting later elements
// right. Fails if i is out of the extended range [±(len+1)].
func (l List) Insert(i int64, value Data) (List, error) {
	idx, ok, err := resolveIndex(i, len(l.items)+1)
	if err != nil {
		return l, err
	}
	if !ok {
		return l, IndexOutOfRange(i, len(l.items))
	}
	items := l.clone()
	items = append(items, nil)
	copy(items[idx+1:], items[idx:])
	items[idx] = value
	return List{items: items}, nil
}

// Overwrite replaces the element at position i.
func (l List) Overwrite(i int64, value Data) (List, error) {
	idx, ok, err := resolveIndex(i, len(l.items))
	if err != nil {
		return l, err
	}
	if !ok {
		return l, IndexOutOfRange(i, len(l.items))
	}
	items := l.clone()
	items[idx] = value
	return List{items: items}, nil
}

func (l List) Push(value Data) List {
	items := l.clone()
	items = append(items, value)
	return List{items: items}
}

// AppendList concatenates other onto l (distinct from Merge, which also
// concatenates lists but goes through the general §3.2 dispatch).
func (l List) AppendList(other List) List {
	items := l.clone()
	items = append(items, other.items...)
	return List{items: items}
}

func MergeLists(a, b List) List {
	return a.AppendList(b)
}

func (l List) Remove(i int64) (List, error) {
	idx, ok, err := resolveIndex(i, len(l.items))
	if err != nil {
		return l, err
	}
	if !ok {
		return l, IndexOutOfRange(i, len(l.items))
	}
	items := l.clone()
	items = append(items[:idx], items[idx+1:]...)
	return List{items: items}, nil
}

// Slice returns items [from, to] inclusive, both 1-based and negative
// wrap-around per §3.2's indexing rule.
func (l List) Slice(from, to int64) (List, error) {
	fromIdx, ok, err := resolveIndex(from, len(l.items))
	if err != nil {
		return List{}, err
	}
	if !ok {
		return List{}, IndexOutOfRange(from, len(l.items))
	}
	toIdx, ok, err := resolveIndex(to, len(l.items))
	if err != nil {
		return List{}, err
	}
	if !ok {
		return List{}, IndexOutOfRange(to, len(l.items))
	}
	if toIdx < fromIdx {
		return List{}, nil
	}
	return List{items: append([]Data(nil), l.items[fromIdx:toIdx+1]...)}, nil
}

// Flip reverses a list. Flip(Flip(x)) == x for every container (§8.1.5).
func (l List) Flip() List {
	items := l.clone()
	for i, j := 0, len(items)-1; i < j; i, j = i+1, j-1 {
		items[i], items[j] = items[j], items[i]
	}
	return List{items: items}
}

func (l List) Position(value Data) (int64, bool) {
	for i, item := range l.items {
		if item.Equal(value) {
			return int64(i + 1), true
		}
	}
	return 0, false
}

func (l List) Contains(value Data) bool {
	_, ok := l.Position(value)
	return ok
}

func (l List) Empty() bool { return len(l.items) == 0 }

func IndexOutOfRange(i int64, length int) error {
	return &dataError{msgIndexOutOfRange(i, length)}
}

func msgIndexOutOfRange(i int64, length int) string {
	return "index " + Integer(i).String() + " out of range for length " + Integer(int64(length)).String()
}
