package repositories_test

import (
	"context"
	"github.com/myrjola/mattepaint/internal/sqlite"
	"github.com/myrjola/mattepaint/internal/testhelpers"
	"io"
	"testing"
)

// newTestDB creates a new seeded in-memory database for testing purposes.
func newTestDB(t *testing.T) *sqlite.Database {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	dbs, err := sqlite.NewDatabase(ctx, ":memory:", testhelpers.NewLogger(io.Discard))
	if err != nil {
		cancel()
		t.Fatal(err)
	}

	t.Cleanup(func() {
		cancel()
		// Closing twice is fine for tests that close the database themselves.
		_ = dbs.Close()
	})

	return dbs
}
