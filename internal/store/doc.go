// Package store provides persistent storage for stashd using SQLite.
//
// # Architecture
//
// The store package uses an interface-driven architecture with two
// specialized interfaces:
//
//   - UserStore: identity records, token lookup, admin existence
//   - EntryStore: per-user key-value entries
//
// SQLiteStore implements both in a single struct backed by database/sql
// with the modernc.org/sqlite driver. The *sql.DB pool is the only shared
// mutable state; isolation is delegated entirely to SQLite's per-statement
// atomicity.
//
// # Ownership
//
// Every entry statement filters by the owning user id. Callers pass the id
// of the authenticated identity, never one taken from request input, so a
// user cannot observe or mutate another user's entries even for an
// identical key string.
//
// # Schema
//
// User ids are assigned by AUTOINCREMENT; usernames and tokens carry UNIQUE
// constraints. Entries carry a UNIQUE(user_id, key) index and cascade on
// user deletion.
package store
