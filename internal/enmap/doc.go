// Package enmap implements an in-process keyed data store: a generic
// container mapping unique string names and auto-assigned sequential ids
// to values of a single element type, with optional write-through
// persistence and an optional maximum-size eviction policy.
//
// # Indices
//
// Every entry is reachable through two synchronized indices, name to
// entry and id to name, which form a bijection after every completed
// operation. Ids are assigned from a strictly increasing per-store
// counter and are never reused during the life of an instance; only a
// full clear resets the counter to zero.
//
// # Persistence
//
// A store constructed with a name and the persistent flag mirrors every
// data-changing mutation to an embedded database file once Init has been
// called. Init also replays previously stored rows back into memory, so
// a fresh instance observes the entries a previous one wrote. Mirror
// writes are synchronous and not transactional with the in-memory
// mutation: a crash between the two can desynchronize memory and mirror.
// The mirror drivers live in the internal/mirror package.
//
// # Concurrency
//
// The store assumes a single writer and performs no internal locking.
// Callers that share one instance across goroutines must serialize
// access externally.
package enmap
