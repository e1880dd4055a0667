// Package store provides SQLite-backed persistence for model snapshots
// and motif-run records.
//
// Models live for one editing session and are replaced wholesale; the
// store keeps whole snapshots keyed by UUIDv7 ids, with objects and
// morphisms persisted by bound type name in declaration order so a load
// replays the exact insertion sequence.
//
// # Critical Patterns
//
//   - Deterministic reads: element queries ORDER BY position ASC,
//     id ASC COLLATE BINARY, so a loaded model iterates identically to
//     the saved one.
//   - Snapshot ids are UUIDv7: time-sortable, generated at save time.
//   - Motif-run images are stored as canonical JSON produced by
//     model.MarshalCanonical; byte-identical for structurally equal
//     result lists.
//
// # Database Configuration
//
//   - WAL mode: concurrent reads during writes
//   - synchronous=NORMAL: balance durability/performance
//   - busy_timeout=5000: wait for locks up to 5 seconds
//   - foreign_keys=ON: enforce referential integrity
package store
