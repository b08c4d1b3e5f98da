// Package postgreswrapper creates a postgresengine.RecordStore on a real PostgreSQL database for
// integration tests, on the adapter selected by the ADAPTER_TYPE environment variable.
//
// Tests are skipped unless POSTGRES_TEST_DSN is set. Every wrapper works on its own set of freshly
// created tables, which are dropped again by Close.
package postgreswrapper
