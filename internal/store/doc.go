// Package store manages the archive's SQLite tables.
//
// The loader owns every table through drop-and-replace operations; the reader
// only queries. Each replace runs in its own transaction, so a reader querying
// mid-load can observe a torn join across tables. That gap is inherited from
// the data model (no cross-table transaction) and is documented on the loader.
//
// Referential integrity between tables is a soft convention: no foreign keys
// are declared, and dangling role or file references must be tolerated by
// readers as "no data".
package store
