package e2etest

import (
	"context"
	"fmt"
	"github.com/myrjola/mattepaint/internal/errors"
	"github.com/myrjola/mattepaint/internal/logging"
	"io"
	"log/slog"
)

// RunFunc starts the application and blocks until it has shut down. It has the signature of the web server's run.
type RunFunc func(ctx context.Context, logger *slog.Logger, lookupEnv func(string) (string, bool)) error

type Server struct {
	url    string
	client *Client
	cancel context.CancelCauseFunc
	// done receives the result of run once the server has stopped.
	done chan error
}

// LogAddrKey is the key used to log the address the server is listening on.
const LogAddrKey = "addr"

// readyPath answers 200 as soon as the server accepts requests.
const readyPath = "/api/healthy"

// errStopped is the cancellation cause of a server stopped with [Server.Stop].
var errStopped = errors.NewSentinel("test server stopped")

// StartServer starts the test server, waits for it to be ready, and returns a handle for driving it.
//
// logSink is the writer to which the server logs are written. You usually want to use [io.Discard].
// lookupEnv has the signature of [os.LookupEnv] and configures the server. The server is expected to log the
// address it's listening on with the LogAddrKey attribute exactly once.
func StartServer(
	ctx context.Context,
	logSink io.Writer,
	lookupEnv func(string) (string, bool),
	run RunFunc,
) (*Server, error) {
	ctx, cancel := context.WithCancelCause(ctx)

	// The port is allocated dynamically so it has to be picked up from the log output.
	addrCh := make(chan string, 1)
	logger := slog.New(logging.NewContextHandler(slog.NewTextHandler(logSink, &slog.HandlerOptions{
		AddSource: false,
		Level:     slog.LevelDebug,
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Key == LogAddrKey {
				select {
				case addrCh <- a.Value.String():
				default:
				}
			}
			return a
		},
	})))

	done := make(chan error, 1)
	go func() {
		err := run(ctx, logger, lookupEnv)
		if err != nil {
			cancel(err)
		}
		done <- err
	}()

	select {
	case <-ctx.Done():
		return nil, errors.Wrap(context.Cause(ctx), "server stopped before it was ready")
	case addr := <-addrCh:
		serverURL := fmt.Sprintf("http://%s", addr)
		client, err := NewClient(serverURL)
		if err != nil {
			cancel(err)
			return nil, errors.Wrap(err, "new client")
		}
		if err = client.WaitForReady(ctx, readyPath); err != nil {
			cancel(err)
			return nil, errors.Wrap(err, "wait for ready", slog.String("url", serverURL))
		}
		return &Server{
			url:    serverURL,
			client: client,
			cancel: cancel,
			done:   done,
		}, nil
	}
}

// Stop shuts the server down gracefully and waits until run has returned. It returns the error of run, if any.
func (s *Server) Stop(ctx context.Context) error {
	s.cancel(errStopped)
	select {
	case err := <-s.done:
		// Stop is idempotent.
		s.done <- err
		return err
	case <-ctx.Done():
		return errors.Wrap(ctx.Err(), "wait for server to stop")
	}
}

func (s *Server) Client() *Client {
	return s.client
}

func (s *Server) URL() string {
	return s.url
}
