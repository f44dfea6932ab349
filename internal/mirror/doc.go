// Package mirror provides durable write-through backends for the store core.
//
// A mirror shadows the in-memory indices of a single named store: every
// completed mutation corresponds to exactly one row operation against the
// backing file, and at startup the stored rows are replayed back into
// memory. Two drivers are provided:
//
//   - SQLite (default): one <name>.db file per store, one table per store
//     with columns (id INTEGER, name TEXT, data TEXT).
//   - Bolt: one <name>.bolt file per store, one bucket per store with
//     big-endian id keys so cursor order equals id order.
//
// Drivers implement the Mirror interface and treat entry data as opaque
// JSON text. There is no rollback protocol: a write failure after the
// in-memory mutation leaves memory and mirror desynchronized, which the
// store core documents as an accepted limitation.
package mirror
