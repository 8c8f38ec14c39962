package errors

import (
	"log/slog"
)

// SlogError renders err as a slog group holding the full message and the source location and attributes of every
// AnnotatedError in its chain, innermost last.
func SlogError(err error) slog.Attr {
	if err == nil {
		return slog.String("error", "<nil>")
	}
	attrs := []slog.Attr{slog.String("msg", err.Error())}
	var annotations []slog.Attr
	collectAnnotations(err, &annotations)
	if len(annotations) > 0 {
		attrs = append(attrs, slog.Attr{Key: "trace", Value: slog.GroupValue(annotations...)})
	}
	return slog.Attr{Key: "error", Value: slog.GroupValue(attrs...)}
}

// collectAnnotations walks both single and multi-error wrapping.
func collectAnnotations(err error, annotations *[]slog.Attr) {
	if err == nil {
		return
	}
	if annotated, ok := err.(AnnotatedError); ok {
		*annotations = append(*annotations, slog.Any(annotated.msg, annotated))
	}
	switch e := err.(type) {
	case interface{ Unwrap() []error }:
		for _, inner := range e.Unwrap() {
			collectAnnotations(inner, annotations)
		}
	case interface{ Unwrap() error }:
		collectAnnotations(e.Unwrap(), annotations)
	}
}
