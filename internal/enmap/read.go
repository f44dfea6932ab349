package enmap

import "math"

// Fetch returns the entry with the given name, or a not-found error.
func (m *Enmap[V]) Fetch(name string) (Entry[V], error) {
	e, ok := m.byName[name]
	if !ok {
		return Entry[V]{}, NewNameNotFoundError(name)
	}
	return *e, nil
}

// FetchByID resolves the name through the id index and returns the entry,
// or a not-found error.
func (m *Enmap[V]) FetchByID(id int64) (Entry[V], error) {
	name, ok := m.byID[id]
	if !ok {
		return Entry[V]{}, NewIDNotFoundError(id)
	}
	return *m.byName[name], nil
}

// FetchByRange returns all entries whose id lies in [start, start+length),
// in insertion order. A range covering the whole store returns every
// entry; an empty result is not an error.
func (m *Enmap[V]) FetchByRange(start, length int64) []Entry[V] {
	hi := start + length
	if hi < start { // sum overflowed, saturate
		hi = math.MaxInt64
	}
	out := []Entry[V]{}
	for _, n := range m.order {
		e := m.byName[n]
		if e.ID >= start && e.ID < hi {
			out = append(out, *e)
		}
	}
	return out
}

// Filter returns all entries satisfying pred, in insertion order.
func (m *Enmap[V]) Filter(pred func(Entry[V]) bool) []Entry[V] {
	out := []Entry[V]{}
	for _, n := range m.order {
		if e := m.byName[n]; pred(*e) {
			out = append(out, *e)
		}
	}
	return out
}

// Find returns the first entry in insertion order satisfying pred.
// Absence is a normal outcome, reported through the boolean.
func (m *Enmap[V]) Find(pred func(Entry[V]) bool) (Entry[V], bool) {
	for _, n := range m.order {
		if e := m.byName[n]; pred(*e) {
			return *e, true
		}
	}
	return Entry[V]{}, false
}

// Has reports whether an entry with the given name exists.
func (m *Enmap[V]) Has(name string) bool {
	_, ok := m.byName[name]
	return ok
}

// Len returns the current entry count.
func (m *Enmap[V]) Len() int {
	return len(m.byName)
}
