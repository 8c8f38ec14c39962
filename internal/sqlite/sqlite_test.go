package sqlite_test

import (
	"context"
	"github.com/myrjola/mattepaint/internal/sqlite"
	"github.com/myrjola/mattepaint/internal/testhelpers"
	"github.com/stretchr/testify/require"
	"io"
	"testing"
)

func TestNewDatabase(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	logger := testhelpers.NewLogger(io.Discard)

	db, err := sqlite.NewDatabase(ctx, ":memory:", logger)
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, db.Close())
	})

	tests := []struct {
		table string
		want  int
	}{
		{table: "hdris", want: 6},
		{table: "hdri_frames", want: 100},
		{table: "scans", want: 6},
		{table: "scan_files", want: 5},
	}
	for _, tt := range tests {
		t.Run(tt.table, func(t *testing.T) {
			var got int
			err = db.ReadOnly.GetContext(ctx, &got, "SELECT COUNT(*) FROM "+tt.table)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}

	t.Run("read-only pool rejects writes", func(t *testing.T) {
		_, err = db.ReadOnly.ExecContext(ctx, "DELETE FROM scans")
		require.Error(t, err)
	})
}

func TestNewDatabase_idempotentFixtures(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	logger := testhelpers.NewLogger(io.Discard)
	url := t.TempDir() + "/mattepaint.sqlite"

	db, err := sqlite.NewDatabase(ctx, url, logger)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	db, err = sqlite.NewDatabase(ctx, url, logger)
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, db.Close())
	})

	var frames int
	require.NoError(t, db.ReadOnly.GetContext(ctx, &frames, "SELECT COUNT(*) FROM hdri_frames WHERE hdri_id = 1"))
	require.Equal(t, 20, frames)

	var slug string
	require.NoError(t, db.ReadOnly.GetContext(ctx, &slug, "SELECT slug FROM scans WHERE id = 5"))
	require.Equal(t, "urban-debris-scan", slug)
}
