package testhelpers

import (
	"github.com/myrjola/mattepaint/internal/logging"
	"io"
	"log/slog"
)

// NewLogger creates a debug level logger writing to logSink, usually [io.Discard]. Attributes stored in the
// context with [logging.WithAttrs] are included like in production.
func NewLogger(logSink io.Writer) *slog.Logger {
	return slog.New(logging.NewContextHandler(slog.NewTextHandler(logSink, &slog.HandlerOptions{
		AddSource:   false,
		Level:       slog.LevelDebug,
		ReplaceAttr: nil,
	})))
}
