package catalog

import (
	"context"
	"fmt"
	"github.com/myrjola/mattepaint/internal/envstruct"
	"github.com/myrjola/mattepaint/internal/errors"
	"github.com/myrjola/mattepaint/internal/logging"
	"github.com/myrjola/mattepaint/internal/models"
	"github.com/myrjola/mattepaint/internal/repositories"
	"github.com/myrjola/mattepaint/internal/sqlite"
	"github.com/spf13/cobra"
	"log/slog"
	"os"
	"strconv"
)

var Group = &cobra.Group{
	ID:    "catalog",
	Title: "Catalog",
}

const (
	sqliteURLFlag = "sqlite-url"
	outputFlag    = "output"
)

type config struct {
	SqliteURL string `env:"MATTEPAINT_SQLITE_URL" envDefault:"./mattepaint.sqlite"`
}

// Register adds the catalog commands and their persistent flags to root.
func Register(root *cobra.Command) {
	root.AddGroup(Group)
	root.PersistentFlags().String(sqliteURLFlag, "",
		"SQLite URL, defaults to MATTEPAINT_SQLITE_URL or ./mattepaint.sqlite")
	root.PersistentFlags().StringP(outputFlag, "o", string(formatJSON), "output format: json or yaml")
	root.AddCommand(newHdrisCmd(), newScansCmd())
}

// fetcher is the part of the repositories the commands use.
type fetcher[T repositories.Record] interface {
	FetchList(ctx context.Context) error
	FetchByID(ctx context.Context, id int64) (*T, error)
	List() []T
	Close()
}

func newHdrisCmd() *cobra.Command {
	open := func(dbs *sqlite.Database, logger *slog.Logger) fetcher[models.Hdri] {
		return repositories.NewHdriRepository(dbs, logger, repositories.Latency{})
	}
	return newEntityCmd("hdris", "HDRI sequences", open)
}

func newScansCmd() *cobra.Command {
	open := func(dbs *sqlite.Database, logger *slog.Logger) fetcher[models.Scan] {
		return repositories.NewScanRepository(dbs, logger, repositories.Latency{})
	}
	return newEntityCmd("scans", "3D scans", open)
}

func newEntityCmd[T repositories.Record](
	name, title string,
	open func(*sqlite.Database, *slog.Logger) fetcher[T],
) *cobra.Command {
	cmd := &cobra.Command{ //nolint:exhaustruct // defaults are fine
		Use:     name,
		GroupID: Group.ID,
		Short:   fmt.Sprintf("Inspect %s", title),
	}

	list := &cobra.Command{ //nolint:exhaustruct // defaults are fine
		Use:   "list",
		Short: fmt.Sprintf("List all %s", title),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withRepository(cmd, open, func(ctx context.Context, repo fetcher[T]) (any, error) {
				if err := repo.FetchList(ctx); err != nil {
					return nil, errors.Wrap(err, "fetch list")
				}
				return repo.List(), nil
			})
		},
	}

	get := &cobra.Command{ //nolint:exhaustruct // defaults are fine
		Use:   "get <id>",
		Short: fmt.Sprintf("Show one of the %s", title),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return errors.Wrap(err, "parse id", slog.String("id", args[0]))
			}
			return withRepository(cmd, open, func(ctx context.Context, repo fetcher[T]) (any, error) {
				item, fetchErr := repo.FetchByID(ctx, id)
				if fetchErr != nil {
					return nil, errors.Wrap(fetchErr, "fetch by id", slog.Int64("id", id))
				}
				return item, nil
			})
		},
	}

	cmd.AddCommand(list, get)
	return cmd
}

// withRepository opens the database and the repository, runs query and writes its result in the chosen format.
func withRepository[T repositories.Record](
	cmd *cobra.Command,
	open func(*sqlite.Database, *slog.Logger) fetcher[T],
	query func(ctx context.Context, repo fetcher[T]) (any, error),
) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	format, err := parseFormat(cmd.Flag(outputFlag).Value.String())
	if err != nil {
		return err
	}

	url := cmd.Flag(sqliteURLFlag).Value.String()
	if url == "" {
		var cfg config
		if err = envstruct.Populate(&cfg, os.LookupEnv); err != nil {
			return errors.Wrap(err, "populate config")
		}
		url = cfg.SqliteURL
	}

	// Schema synchronisation logs at info level, the CLI only reports problems.
	logger := slog.New(logging.NewContextHandler(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
		AddSource:   false,
		Level:       slog.LevelWarn,
		ReplaceAttr: nil,
	})))

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	var dbs *sqlite.Database
	if dbs, err = sqlite.NewDatabase(ctx, url, logger); err != nil {
		return errors.Wrap(err, "open database", slog.String("url", url))
	}
	defer func() {
		_ = dbs.Close()
	}()

	repo := open(dbs, logger)
	defer repo.Close()

	var result any
	if result, err = query(ctx, repo); err != nil {
		return err
	}
	return write(cmd.OutOrStdout(), format, result)
}
