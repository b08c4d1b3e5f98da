// Package memstore provides an in-memory record store with the same method set and the same
// conditional-write semantics as postgresengine.RecordStore, for handler tests without a database.
//
// Failures can be injected per operation to exercise retry and error paths.
package memstore
