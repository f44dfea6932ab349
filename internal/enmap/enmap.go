package enmap

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/MierenManz/D-Enmap/internal/mirror"
)

// Driver names for the persistence mirror.
const (
	DriverSQLite = "sqlite"
	DriverBolt   = "bolt"
)

// DefaultDir is the base directory for persistence files when Options.Dir
// is left empty.
const DefaultDir = "data"

// Entry is a stored record. ID is assigned once at creation and never
// changes, not even across Override.
type Entry[V any] struct {
	ID   int64
	Name string
	Data V
}

// Options configure a store at construction.
type Options struct {
	// Name identifies the store and names its persistence file. Required
	// for persistence. When set, the storage directory is created if
	// absent whether or not persistence is enabled.
	Name string

	// Dir is the base directory for persistence files. Defaults to DefaultDir.
	Dir string

	// MaxEntries caps the stored entry count. When an insert pushes the
	// count above the cap, the entry exactly MaxEntries positions older
	// than the newest is evicted. Zero disables the cap.
	MaxEntries int

	// Persistent requests durable mirroring. Requires Name. The mirror is
	// opened by Init, not at construction.
	Persistent bool

	// Driver selects the mirror backend: DriverSQLite (default) or DriverBolt.
	Driver string

	// Logger receives replay and eviction diagnostics. Defaults to slog.Default().
	Logger *slog.Logger
}

// Enmap is a keyed container mapping unique names and auto-assigned
// sequential ids to values of a single element type.
//
// Two synchronized indices back every operation: name to entry and id to
// name. The bijection between them holds after every completed call.
// Ids strictly increase and are never reused while the instance lives;
// only a full clear resets the counter.
type Enmap[V any] struct {
	opts Options
	log  *slog.Logger

	nextID int64
	byName map[string]*Entry[V]
	byID   map[int64]string
	order  []string // entry names in insertion order

	mirror mirror.Mirror // nil until Init succeeds
}

// New creates a store from the given options. If a name is set, the
// storage directory is created if absent; a failure to do so is logged
// but not fatal.
func New[V any](opts Options) (*Enmap[V], error) {
	if opts.MaxEntries < 0 {
		return nil, fmt.Errorf("max entries must not be negative, got %d", opts.MaxEntries)
	}
	if opts.Dir == "" {
		opts.Dir = DefaultDir
	}
	if opts.Driver == "" {
		opts.Driver = DriverSQLite
	}
	if opts.Driver != DriverSQLite && opts.Driver != DriverBolt {
		return nil, fmt.Errorf("unknown mirror driver %q", opts.Driver)
	}
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}

	m := &Enmap[V]{
		opts:   opts,
		log:    log,
		byName: make(map[string]*Entry[V]),
		byID:   make(map[int64]string),
	}

	if opts.Name != "" {
		if err := os.MkdirAll(opts.Dir, 0o755); err != nil {
			log.Warn("failed to create storage directory", "dir", opts.Dir, "err", err)
		}
	}

	return m, nil
}

// Init opens the persistence mirror and replays previously stored rows
// into memory. It must be called before any operation is expected to
// reach the mirror. Fails with a non-persistent error unless both a name
// and the persistent flag were configured. Calling Init on an already
// initiated store is a no-op.
//
// Rows are replayed oldest id first through the normal insert path, so
// the usual invariants and the eviction rule apply to replayed data
// exactly as to fresh inserts. Replayed entries receive fresh sequential
// ids starting at zero.
//
// Init must run before the first mutation: initiating a store that
// already holds entries fails, since replaying rows on top of them would
// collide with the live indices. This also rules out re-initiating an
// instance after Close unless it was cleared first.
func (m *Enmap[V]) Init(ctx context.Context) error {
	if !m.opts.Persistent || m.opts.Name == "" {
		return NewNonPersistentError(m.opts.Name, "initiated")
	}
	if m.mirror != nil {
		return nil
	}
	if len(m.byName) > 0 {
		return fmt.Errorf("init store %q: store already holds entries", m.opts.Name)
	}

	h, err := m.openMirror()
	if err != nil {
		return fmt.Errorf("init store %q: %w", m.opts.Name, err)
	}

	if err := h.EnsureSchema(ctx); err != nil {
		h.Close()
		return fmt.Errorf("init store %q: %w", m.opts.Name, err)
	}

	rows, err := h.LoadAll(ctx)
	if err != nil {
		h.Close()
		return fmt.Errorf("init store %q: %w", m.opts.Name, err)
	}

	// The mirror handle is attached only after replay completes, so the
	// inserts below stay in memory instead of re-writing existing rows.
	for _, r := range rows {
		v, err := decodeData[V](r.Data)
		if err != nil {
			h.Close()
			return fmt.Errorf("init store %q: replay row %d: %w", m.opts.Name, r.ID, err)
		}
		if err := m.Add(ctx, r.Name, v); err != nil {
			h.Close()
			return fmt.Errorf("init store %q: replay row %d: %w", m.opts.Name, r.ID, err)
		}
	}

	m.mirror = h

	// Replay assigns fresh sequential ids. When the stored ids were not
	// dense from zero (rows deleted or evicted since they were written),
	// the mirror's id column no longer matches memory and id-keyed mirror
	// writes would hit the wrong rows. Rewrite the mirror so the bijection
	// between memory and mirror holds again.
	if replayRenumbered(rows, m.Len()) {
		if err := m.rewriteMirror(ctx); err != nil {
			return fmt.Errorf("init store %q: %w", m.opts.Name, err)
		}
		m.log.Debug("compacted mirror after replay", "store", m.opts.Name, "rows", len(rows), "entries", m.Len())
	}

	m.log.Debug("initiated persistent store", "store", m.opts.Name, "driver", m.opts.Driver, "rows", len(rows))
	return nil
}

// replayRenumbered reports whether replaying the given rows assigned any
// entry an id different from its stored one.
func replayRenumbered(rows []mirror.Row, entries int) bool {
	if len(rows) != entries {
		return true
	}
	for i, r := range rows {
		if r.ID != int64(i) {
			return true
		}
	}
	return false
}

// rewriteMirror replaces the mirror's contents with the current in-memory
// entries.
func (m *Enmap[V]) rewriteMirror(ctx context.Context) error {
	if err := m.mirror.Clear(ctx); err != nil {
		return err
	}
	for _, name := range m.order {
		e := m.byName[name]
		data, err := encodeData(e.Data)
		if err != nil {
			return err
		}
		if err := m.mirror.Insert(ctx, e.ID, name, data); err != nil {
			return err
		}
	}
	return nil
}

// openMirror opens the driver selected at construction.
func (m *Enmap[V]) openMirror() (mirror.Mirror, error) {
	switch m.opts.Driver {
	case DriverBolt:
		return mirror.OpenBolt(filepath.Join(m.opts.Dir, m.opts.Name+".bolt"), m.opts.Name)
	default:
		return mirror.OpenSQLite(filepath.Join(m.opts.Dir, m.opts.Name+".db"), m.opts.Name)
	}
}

// Close closes the persistence handle. Fails with a non-persistent error
// when the store holds no handle, either because persistence was never
// configured or because Init was never called.
func (m *Enmap[V]) Close() error {
	if m.mirror == nil {
		return NewNonPersistentError(m.opts.Name, "closed")
	}
	err := m.mirror.Close()
	m.mirror = nil
	if err != nil {
		return fmt.Errorf("close store %q: %w", m.opts.Name, err)
	}
	return nil
}
