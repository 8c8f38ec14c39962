package catalog

import (
	"encoding/json"
	"github.com/myrjola/mattepaint/internal/errors"
	"gopkg.in/yaml.v3"
	"io"
	"log/slog"
)

type format string

const (
	formatJSON format = "json"
	formatYAML format = "yaml"
)

var errUnknownFormat = errors.NewSentinel("unknown output format")

func parseFormat(s string) (format, error) {
	switch f := format(s); f {
	case formatJSON, formatYAML:
		return f, nil
	default:
		return "", errors.Wrap(errUnknownFormat, "parse format", slog.String("format", s))
	}
}

func write(w io.Writer, f format, v any) error {
	switch f {
	case formatYAML:
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2) //nolint:mnd // two spaces
		if err := encoder.Encode(v); err != nil {
			return errors.Wrap(err, "encode yaml")
		}
		if err := encoder.Close(); err != nil {
			return errors.Wrap(err, "close yaml encoder")
		}
	case formatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(v); err != nil {
			return errors.Wrap(err, "encode json")
		}
	}
	return nil
}
