package testsupport

import (
	"testing"

	"knarchief/internal/config"
	"knarchief/internal/store"
)

// MustOpenStore opens the archive store for a test config and closes it on
// cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *store.Store {
	t.Helper()

	st, err := store.Open(cfg)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})
	return st
}
