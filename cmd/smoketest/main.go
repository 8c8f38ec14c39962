package main

import (
	"context"
	"github.com/myrjola/mattepaint/internal/e2etest"
	"github.com/myrjola/mattepaint/internal/errors"
	"github.com/myrjola/mattepaint/internal/logging"
	"log/slog"
	"net/http"
	"os"
	"time"
)

type listResponse struct {
	Items []struct {
		ID int64 `json:"id"`
	} `json:"items"`
	State string `json:"state"`
}

// TestCatalog checks that the server is healthy and that both catalogs can be listed.
func TestCatalog(client *e2etest.Client) error {
	ctx := context.Background()
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second) //nolint:mnd // 10 seconds
	defer cancel()

	status, err := client.GetJSON(ctx, "/api/healthy", nil)
	if err != nil {
		return errors.Wrap(err, "check health")
	}
	if status != http.StatusOK {
		return errors.New("unhealthy server", slog.Int("status", status))
	}

	for _, urlPath := range []string{"/api/hdris", "/api/scans"} {
		var list listResponse
		if status, err = client.GetJSON(ctx, urlPath, &list); err != nil {
			return errors.Wrap(err, "get list", slog.String("path", urlPath))
		}
		if status != http.StatusOK {
			return errors.New("unexpected status code", slog.String("path", urlPath), slog.Int("status", status))
		}
		if len(list.Items) == 0 {
			return errors.New("empty list", slog.String("path", urlPath))
		}
	}
	return nil
}

func main() {
	loggerHandler := logging.NewContextHandler(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		AddSource:   false,
		Level:       slog.LevelDebug,
		ReplaceAttr: nil,
	}))
	logger := slog.New(loggerHandler)
	ctx := context.Background()

	if len(os.Args) != 2 { //nolint:mnd // we expect only hostname to be passed as argument.
		logger.LogAttrs(ctx, slog.LevelError, "usage: smoketest <hostname>")
		os.Exit(1)
	}

	var (
		hostname = os.Args[1]
		url      = "https://" + hostname
		client   *e2etest.Client
		err      error
	)
	ctx = logging.WithAttrs(ctx, slog.String("hostname", url))

	if client, err = e2etest.NewClient(url); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "error creating client", errors.SlogError(err))
		os.Exit(1)
	}
	if err = TestCatalog(client); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "error testing catalog", errors.SlogError(err))
		os.Exit(1)
	}

	logger.LogAttrs(ctx, slog.LevelInfo, "Smoke test successful 🙌")
	os.Exit(0)
}
