// Package sqlite provides SQLite-backed persistence for chat sessions
// and share snapshots.
//
// Sessions and share snapshots live in separate tables keyed by
// session id and share token respectively, so the two namespaces can
// never collide. The database is opened in WAL mode with a busy
// timeout; migrations are embedded and applied on open.
package sqlite
