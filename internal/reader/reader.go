// Package reader is the query side of the archive: read-only SQL against the
// store followed by in-memory reshaping. Filtering and joining happen in SQL;
// grouping, nesting, and display fields are computed in Go.
//
// Every query that returns members filters on gdpr_permission, so members
// without consent never appear in any listing.
package reader

import (
	"database/sql"
	"errors"
	"log/slog"

	"knarchief/internal/config"
	"knarchief/internal/store"
)

// ErrNotFound is returned by detail queries that match no row. Callers
// translate it into a not-found response instead of treating it as a fault.
var ErrNotFound = errors.New("not found")

// Reader answers display queries against a loaded store.
type Reader struct {
	db     *sql.DB
	cfg    *config.Config
	logger *slog.Logger
}

// New builds a reader over an open store.
func New(cfg *config.Config, st *store.Store, logger *slog.Logger) *Reader {
	return &Reader{
		db:     st.DB(),
		cfg:    cfg,
		logger: logger.With("component", "reader"),
	}
}

func strPtr(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	return &v.String
}

func intPtr(v sql.NullInt64) *int64 {
	if !v.Valid {
		return nil
	}
	return &v.Int64
}
