package testsupport

import (
	"context"
	"testing"

	"tvrip/internal/config"
	"tvrip/internal/database"
)

// MustOpenStore opens a database.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *database.Store {
	t.Helper()

	store, err := database.Open(cfg.Paths.Database)
	if err != nil {
		t.Fatalf("database.Open: %v", err)
	}
	t.Cleanup(func() {
		_ = store.Close()
	})
	return store
}

// SeedSeason replaces a season's episodes with the given names.
func SeedSeason(t testing.TB, store *database.Store, program string, season int, names ...string) {
	t.Helper()

	if err := store.ReplaceEpisodes(context.Background(), program, season, names); err != nil {
		t.Fatalf("store.ReplaceEpisodes: %v", err)
	}
}
