package data

import (
	"sort"
	"strings"
)

// Entry is one key/value pair of a Map.
type Entry struct {
	Key   Data
	Value Data
}

// Map is the ordered, key-sorted associative container of §3.1. It is
// kept sorted by the total key order of §3.4 at all times, so iteration
// order is deterministic and independent of insertion order — callers
// that want insertion order should keep a separate List of keys.
//
// Map behaves as value-semantic: every mutating method returns a new Map
// and leaves the receiver untouched, matching §3.3's "copy-on-write
// ownership is an implementation detail, not a visible contract" note.
// The implementation here takes the plain-owned-sequence option §9
// explicitly allows rather than a persistent tree, since Map values in
// practice (compiler configs, parsed nodes) are small.
type Map struct {
	entries []Entry
}

// NewMap builds an empty map.
func NewMap() Map { return Map{} }

func (m Map) Kind() Kind { return KindMap }

func (m Map) Len() int { return len(m.entries) }

func (m Map) Equal(other Data) bool {
	o, ok := other.(Map)
	if !ok || len(m.entries) != len(o.entries) {
		return false
	}
	for i := range m.entries {
		if !m.entries[i].Key.Equal(o.entries[i].Key) || !m.entries[i].Value.Equal(o.entries[i].Value) {
			return false
		}
	}
	return true
}

func (m Map) String() string {
	var sb strings.Builder
	sb.WriteString("{ ")
	for _, e := range m.entries {
		sb.WriteString(e.Key.String())
		sb.WriteString(" ")
		sb.WriteString(e.Value.String())
		sb.WriteString(" ")
	}
	sb.WriteString("}")
	return sb.String()
}

// search returns the insertion index for key and whether an equal key was
// found at that index.
func (m Map) search(key Data) (int, bool) {
	idx := sort.Search(len(m.entries), func(i int) bool {
		return Compare(m.entries[i].Key, key) >= 0
	})
	if idx < len(m.entries) && Compare(m.entries[idx].Key, key) == 0 {
		return idx, true
	}
	return idx, false
}

// Index looks up key, returning its value and true, or (nil, false) if
// absent — a missing entry is not an error (§3.2).
func (m Map) Index(key Data) (Data, bool) {
	idx, found := m.search(key)
	if !found {
		return nil, false
	}
	return m.entries[idx].Value, true
}

func (m Map) Contains(key Data) bool {
	_, found := m.search(key)
	return found
}

func (m Map) clone() []Entry {
	return append([]Entry(nil), m.entries...)
}

// Insert adds key/value, failing if key already exists or is not
// map-key-eligible (§3.1, §3.2).
func (m Map) Insert(key, value Data) (Map, error) {
	if !IsMapKeyEligible(key) {
		return m, errKeyNotEligible(key)
	}
	idx, found := m.search(key)
	if found {
		return m, errKeyExists(key)
	}
	entries := m.clone()
	entries = append(entries, Entry{})
	copy(entries[idx+1:], entries[idx:])
	entries[idx] = Entry{Key: key, Value: value}
	return Map{entries: entries}, nil
}

// Overwrite inserts key/value, replacing any existing entry for key.
func (m Map) Overwrite(key, value Data) (Map, error) {
	if !IsMapKeyEligible(key) {
		return m, errKeyNotEligible(key)
	}
	idx, found := m.search(key)
	entries := m.clone()
	if found {
		entries[idx] = Entry{Key: key, Value: value}
		return Map{entries: entries}, nil
	}
	entries = append(entries, Entry{})
	copy(entries[idx+1:], entries[idx:])
	entries[idx] = Entry{Key: key, Value: value}
	return Map{entries: entries}, nil
}

// Remove drops key if present; it is a no-op (not an error) if absent.
func (m Map) Remove(key Data) Map {
	idx, found := m.search(key)
	if !found {
		return m
	}
	entries := m.clone()
	entries = append(entries[:idx], entries[idx+1:]...)
	return Map{entries: entries}
}

func (m Map) Keys() List {
	items := make([]Data, len(m.entries))
	for i, e := range m.entries {
		items[i] = e.Key
	}
	return List{items: items}
}

func (m Map) Values() List {
	items := make([]Data, len(m.entries))
	for i, e := range m.entries {
		items[i] = e.Value
	}
	return List{items: items}
}

// Pairs returns one 2-element List per entry: [key value].
func (m Map) Pairs() List {
	items := make([]Data, len(m.entries))
	for i, e := range m.entries {
		items[i] = List{items: []Data{e.Key, e.Value}}
	}
	return List{items: items}
}

func (m Map) Entries() []Entry {
	return m.clone()
}

// MergeMaps deep-merges two maps (§3.2): equal leaf values pass, unequal
// non-container leaves fail, conflicting sub-maps recurse, conflicting
// lists concatenate (via Merge on List).
func MergeMaps(a, b Map) (Map, error) {
	result := a
	var err error
	for _, e := range b.entries {
		existing, found := result.Index(e.Key)
		if !found {
			result, err = result.Insert(e.Key, e.Value)
			if err != nil {
				return Map{}, err
			}
			continue
		}
		merged, mergeErr := Merge(existing, e.Value)
		if mergeErr != nil {
			return Map{}, mergeErr
		}
		result, err = result.Overwrite(e.Key, merged)
		if err != nil {
			return Map{}, err
		}
	}
	return result, nil
}

// Merge implements the general §3.2 merge rule across every container
// shape, dispatching to MergeMaps/MergeLists for the recursive cases.
func Merge(a, b Data) (Data, error) {
	if a.Equal(b) {
		return a, nil
	}
	switch av := a.(type) {
	case Map:
		bv, ok := b.(Map)
		if !ok {
			return nil, errMergeConflict(a, b)
		}
		return MergeMaps(av, bv)
	case List:
		bv, ok := b.(List)
		if !ok {
			return nil, errMergeConflict(a, b)
		}
		return MergeLists(av, bv), nil
	default:
		return nil, errMergeConflict(a, b)
	}
}
