// Package store persists validated programs in SQLite, keyed by their
// content-addressed program ID. Recording the same program twice is a
// no-op, so the ID doubles as a dedup key across runs.
//
// Alongside each program the store keeps a per-operation index of
// mnemonics, which makes "which stored programs use this operation"
// a single query.
package store
