// Package store is the Local Data Store of the service-order system.
//
// # Architecture
//
// The store owns the canonical in-memory copy of every domain collection
// (ordens de serviço, clientes, equipamentos, the empresa singleton, anexos,
// the audit trail and user settings) as one aggregate, the Snapshot. Every
// mutating operation re-serializes the full aggregate into a persistence
// Slot and then notifies subscribers synchronously.
//
// Construct one Store per process with New and inject it into collaborators:
//
//	slot, err := store.NewSQLiteSlot(cfg.Database.Path)
//	st := store.New(slot, logger)
//	if err := st.Init(); err != nil { ... }
//
// There is no package-level instance; tests build isolated stores on a
// MemorySlot.
//
// # Persistence
//
// The Slot holds one serialized copy of the aggregate inside a versioned
// envelope:
//
//	{"version": "1.0.0", "data": {...}, "lastUpdated": "..."}
//
// On Init, an empty slot or a version mismatch falls back to the seed
// dataset. Slot write failures are logged and swallowed: the in-memory
// aggregate stays authoritative and is re-written on the next mutation.
//
// # Identity
//
// Domain ids are monotonic per entity kind (cliente-3, equipamento-7,
// OS-2026-0012) and never reused after deletion; the counters persist inside
// the snapshot. Audit entries and anexos use random UUIDs.
//
// # Errors
//
//   - ErrNotFound: requested entity does not exist
//   - ConflictError: delete blocked by referencing service orders
//   - ValidationError: malformed import payload or dangling reference
package store
