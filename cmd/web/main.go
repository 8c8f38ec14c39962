package main

import (
	"context"
	"github.com/gorilla/websocket"
	"github.com/joho/godotenv"
	"github.com/myrjola/mattepaint/internal/envstruct"
	"github.com/myrjola/mattepaint/internal/errors"
	"github.com/myrjola/mattepaint/internal/logging"
	"github.com/myrjola/mattepaint/internal/pprofserver"
	"github.com/myrjola/mattepaint/internal/repositories"
	"github.com/myrjola/mattepaint/internal/sqlite"
	"io/fs"
	"log/slog"
	"os"
	"time"
)

type application struct {
	logger      *slog.Logger
	hdris       *repositories.HdriRepository
	scans       *repositories.ScanRepository
	breadcrumbs *repositories.BreadcrumbStore
	upgrader    websocket.Upgrader
	// shutdown is closed when the server starts shutting down so that open event streams end.
	shutdown chan struct{}
}

type config struct {
	// Addr is the address to listen on. It's possible to choose the address dynamically with localhost:0.
	Addr string `env:"MATTEPAINT_ADDR" envDefault:"localhost:4000"`
	// SqliteURL is the URL to the SQLite database. You can use ":memory:" for an ephemeral in-memory database.
	SqliteURL string `env:"MATTEPAINT_SQLITE_URL" envDefault:"./mattepaint.sqlite"`
	// PprofPort is the loopback port of the pprof server. Empty disables it.
	PprofPort string `env:"MATTEPAINT_PPROF_PORT" envDefault:""`
	// ListLatency and LookupLatency delay the catalog fetches.
	ListLatency   time.Duration `env:"MATTEPAINT_LIST_LATENCY" envDefault:"800ms"`
	LookupLatency time.Duration `env:"MATTEPAINT_LOOKUP_LATENCY" envDefault:"500ms"`
}

func run(ctx context.Context, logger *slog.Logger, lookupEnv func(string) (string, bool)) error {
	var (
		err error
		cfg config
		dbs *sqlite.Database
	)

	if err = envstruct.Populate(&cfg, lookupEnv); err != nil {
		return errors.Wrap(err, "populate config")
	}

	if cfg.PprofPort != "" {
		// Initialise pprof listening on localhost so that it's not open to the world.
		pprofserver.Launch(ctx, cfg.PprofPort, logger)
	}

	if dbs, err = sqlite.NewDatabase(ctx, cfg.SqliteURL, logger); err != nil {
		return errors.Wrap(err, "open database", slog.String("url", cfg.SqliteURL))
	}
	defer func() {
		if closeErr := dbs.Close(); closeErr != nil {
			logger.LogAttrs(context.WithoutCancel(ctx), slog.LevelError, "failed to close database",
				errors.SlogError(closeErr))
		}
	}()

	latency := repositories.Latency{List: cfg.ListLatency, Lookup: cfg.LookupLatency}
	app := application{
		logger:      logger,
		hdris:       repositories.NewHdriRepository(dbs, logger, latency),
		scans:       repositories.NewScanRepository(dbs, logger, latency),
		breadcrumbs: repositories.NewBreadcrumbStore(),
		upgrader: websocket.Upgrader{ //nolint:exhaustruct // defaults are fine
			HandshakeTimeout: time.Second,
		},
		shutdown: make(chan struct{}),
	}
	defer app.hdris.Close()
	defer app.scans.Close()
	defer app.breadcrumbs.Close()

	if err = app.configureAndStartServer(ctx, cfg.Addr); err != nil {
		return errors.Wrap(err, "start server")
	}

	return nil
}

func main() {
	ctx := context.Background()
	loggerHandler := logging.NewContextHandler(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		AddSource:   true,
		Level:       slog.LevelDebug,
		ReplaceAttr: nil,
	}))
	logger := slog.New(loggerHandler)

	// The .env file is optional, the environment takes precedence over it.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		err = errors.Wrap(err, "load .env")
		logger.LogAttrs(ctx, slog.LevelError, "failure loading environment", errors.SlogError(err))
		os.Exit(1)
	}

	if err := run(ctx, logger, os.LookupEnv); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "failure starting application", errors.SlogError(err))
		os.Exit(1)
	}
}
