package main

import (
	"context"
	"github.com/myrjola/mattepaint/internal/errors"
	"github.com/myrjola/mattepaint/internal/sqlite"
	"github.com/myrjola/mattepaint/internal/testhelpers"
	"log/slog"
	"os"
	"time"
)

func main() {
	logger := testhelpers.NewLogger(os.Stdout)
	var (
		err       error
		start     = time.Now()
		ctx       context.Context
		sqliteURL string
		ok        bool
		cancel    context.CancelFunc
	)
	ctx = context.Background()
	ctx, cancel = context.WithTimeout(ctx, 5*time.Second) //nolint:mnd // 5 seconds

	if sqliteURL, ok = os.LookupEnv("MATTEPAINT_SQLITE_URL"); !ok {
		logger.LogAttrs(ctx, slog.LevelError, "MATTEPAINT_SQLITE_URL not set")
		os.Exit(1)
	}

	var db *sqlite.Database
	if db, err = sqlite.NewDatabase(ctx, sqliteURL, logger); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "error creating database",
			slog.String("url", sqliteURL), errors.SlogError(err))
		os.Exit(1)
	}

	// The catalog is reseeded on every start so the counts are known after a migration.
	wantCounts := []struct {
		table string
		count int
	}{
		{table: "hdris", count: 6},
		{table: "hdri_frames", count: 100},
		{table: "scans", count: 6},
		{table: "scan_files", count: 5},
	}
	for _, want := range wantCounts {
		var count int
		if err = db.ReadOnly.GetContext(ctx, &count, "SELECT COUNT(*) FROM "+want.table); err != nil {
			logger.LogAttrs(ctx, slog.LevelError, "error counting rows",
				slog.String("table", want.table), errors.SlogError(err))
			os.Exit(1)
		}
		if count < want.count {
			logger.LogAttrs(ctx, slog.LevelError, "missing rows, something is likely wrong",
				slog.String("table", want.table), slog.Int("count", count), slog.Int("want", want.count))
			os.Exit(1)
		}
		logger.LogAttrs(ctx, slog.LevelInfo, "row count", slog.String("table", want.table), slog.Int("count", count))
	}

	logger.LogAttrs(ctx, slog.LevelInfo, "Migration test successful 🙌", slog.Duration("duration", time.Since(start)))
	cancel()
	_ = db.Close()
	os.Exit(0)
}
