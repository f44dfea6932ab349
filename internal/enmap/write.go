package enmap

import (
	"context"
	"fmt"
	"math"
	"reflect"
)

// Add inserts a new entry under the given name and assigns it the next
// sequential id. Fails with a duplication error if the name exists.
// If the store is persistent and initiated, the entry is mirrored before
// the eviction check runs.
func (m *Enmap[V]) Add(ctx context.Context, name string, value V) error {
	_, err := m.Ensure(ctx, name, value)
	return err
}

// Ensure is Add returning the created entry, for callers that need the
// assigned id immediately. Same duplication and eviction rules.
func (m *Enmap[V]) Ensure(ctx context.Context, name string, value V) (Entry[V], error) {
	if _, ok := m.byName[name]; ok {
		return Entry[V]{}, NewNameDuplicationError(name)
	}

	// Encode before mutating so a bad value leaves the store unchanged.
	var data string
	if m.mirror != nil {
		var err error
		if data, err = encodeData(value); err != nil {
			return Entry[V]{}, fmt.Errorf("add %q: %w", name, err)
		}
	}

	e := &Entry[V]{ID: m.nextID, Name: name, Data: value}
	m.byName[name] = e
	m.byID[e.ID] = name
	m.order = append(m.order, name)
	m.nextID++

	if m.mirror != nil {
		if err := m.mirror.Insert(ctx, e.ID, name, data); err != nil {
			return *e, fmt.Errorf("add %q: %w", name, err)
		}
	}

	if err := m.evict(ctx, e.ID); err != nil {
		return *e, err
	}
	return *e, nil
}

// evict removes the entry exactly MaxEntries positions older than the id
// just inserted, once the cap is exceeded. A no-op when that id does not
// exist (already deleted or never assigned).
func (m *Enmap[V]) evict(ctx context.Context, newID int64) error {
	if m.opts.MaxEntries <= 0 || len(m.byName) <= m.opts.MaxEntries {
		return nil
	}

	victimID := newID - int64(m.opts.MaxEntries)
	name, ok := m.byID[victimID]
	if !ok {
		return nil
	}

	m.remove(name, victimID)
	m.log.Debug("evicted oldest entry", "store", m.opts.Name, "id", victimID, "name", name)

	if m.mirror != nil {
		if err := m.mirror.DeleteName(ctx, name); err != nil {
			return fmt.Errorf("evict %q: %w", name, err)
		}
	}
	return nil
}

// remove deletes one entry from both indices and the insertion order.
func (m *Enmap[V]) remove(name string, id int64) {
	delete(m.byName, name)
	delete(m.byID, id)
	for i, n := range m.order {
		if n == name {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
}

// Delete removes the entry with the given name from both indices.
// Fails with a not-found error if the name is absent.
func (m *Enmap[V]) Delete(ctx context.Context, name string) error {
	e, ok := m.byName[name]
	if !ok {
		return NewNameNotFoundError(name)
	}

	m.remove(name, e.ID)

	if m.mirror != nil {
		if err := m.mirror.DeleteID(ctx, e.ID); err != nil {
			return fmt.Errorf("delete %q: %w", name, err)
		}
	}
	return nil
}

// DeleteByID resolves the name through the id index and removes the
// entry. Fails with a not-found error if the id is absent.
func (m *Enmap[V]) DeleteByID(ctx context.Context, id int64) error {
	name, ok := m.byID[id]
	if !ok {
		return NewIDNotFoundError(id)
	}
	return m.Delete(ctx, name)
}

// DeleteByRange removes all entries whose id falls in [start, start+length]
// inclusive.
//
// When start+length reaches or exceeds the current entry count, the whole
// store is cleared and the id counter resets to zero. The comparison is
// against the entry count, not the actual id span, so after deletions a
// range can clear the store even when ids above it still exist.
func (m *Enmap[V]) DeleteByRange(ctx context.Context, start, length int64) error {
	hi := start + length
	if hi < start { // sum overflowed, saturate
		hi = math.MaxInt64
	}
	if hi >= int64(len(m.byName)) {
		return m.Clear(ctx)
	}

	keep := make([]string, 0, len(m.order))
	for _, n := range m.order {
		e := m.byName[n]
		if e.ID >= start && e.ID <= hi {
			delete(m.byName, n)
			delete(m.byID, e.ID)
			continue
		}
		keep = append(keep, n)
	}
	m.order = keep

	if m.mirror != nil {
		if err := m.mirror.DeleteRange(ctx, start, hi); err != nil {
			return fmt.Errorf("delete range [%d,%d]: %w", start, hi, err)
		}
	}
	return nil
}

// Clear removes every entry and resets the id counter to zero. Subsequent
// entries may reuse ids of previously stored ones.
func (m *Enmap[V]) Clear(ctx context.Context) error {
	m.byName = make(map[string]*Entry[V])
	m.byID = make(map[int64]string)
	m.order = m.order[:0]
	m.nextID = 0

	if m.mirror != nil {
		if err := m.mirror.Clear(ctx); err != nil {
			return fmt.Errorf("clear store %q: %w", m.opts.Name, err)
		}
	}
	return nil
}

// Override replaces the data of an existing entry while preserving its id.
// Fails with a not-found error if the name is absent.
func (m *Enmap[V]) Override(ctx context.Context, name string, value V) error {
	old, ok := m.byName[name]
	if !ok {
		return NewNameNotFoundError(name)
	}

	var data string
	if m.mirror != nil {
		var err error
		if data, err = encodeData(value); err != nil {
			return fmt.Errorf("override %q: %w", name, err)
		}
	}

	m.byName[name] = &Entry[V]{ID: old.ID, Name: name, Data: value}

	if m.mirror != nil {
		if err := m.mirror.Replace(ctx, old.ID, name, data); err != nil {
			return fmt.Errorf("override %q: %w", name, err)
		}
	}
	return nil
}

// OverrideByID resolves the name through the id index and delegates to
// Override. Fails with a not-found error if the id is absent.
func (m *Enmap[V]) OverrideByID(ctx context.Context, id int64, value V) error {
	name, ok := m.byID[id]
	if !ok {
		return NewIDNotFoundError(id)
	}
	return m.Override(ctx, name, value)
}

// SetValue mutates part or all of an entry's data.
//
// When the entry's data is a string-keyed map, key selects the element to
// replace: it must be non-empty (key-undefined error otherwise) and must
// already exist in the map (invalid-key error otherwise; keys are never
// created implicitly). For any other data the whole value is replaced and
// key is ignored; value must then be assignable to the store's element
// type.
//
// Implemented as mutate-then-Override, so it inherits Override's
// persistence and id-preservation behavior.
func (m *Enmap[V]) SetValue(ctx context.Context, name, key string, value any) error {
	e, ok := m.byName[name]
	if !ok {
		return NewNameNotFoundError(name)
	}

	rv := reflect.ValueOf(e.Data)
	if rv.Kind() == reflect.Map && rv.Type().Key().Kind() == reflect.String {
		if key == "" {
			return NewKeyUndefinedError()
		}

		mk := reflect.ValueOf(key).Convert(rv.Type().Key())
		if !rv.MapIndex(mk).IsValid() {
			return NewInvalidKeyError(key, m.opts.Name)
		}

		elem := rv.Type().Elem()
		nv := reflect.ValueOf(value)
		switch {
		case !nv.IsValid():
			nv = reflect.Zero(elem)
		case nv.Type().AssignableTo(elem):
		case nv.Type().ConvertibleTo(elem):
			nv = nv.Convert(elem)
		default:
			return fmt.Errorf("set value %q key %q: %T is not assignable to %s", name, key, value, elem)
		}

		rv.SetMapIndex(mk, nv)
		return m.Override(ctx, name, e.Data)
	}

	v, ok := value.(V)
	if !ok {
		return fmt.Errorf("set value %q: %T is not assignable to the store element type", name, value)
	}
	return m.Override(ctx, name, v)
}

// SetValueByID resolves the name through the id index and delegates to
// SetValue. Fails with a not-found error if the id is absent.
func (m *Enmap[V]) SetValueByID(ctx context.Context, id int64, key string, value any) error {
	name, ok := m.byID[id]
	if !ok {
		return NewIDNotFoundError(id)
	}
	return m.SetValue(ctx, name, key, value)
}
