package errors

import (
	"github.com/stretchr/testify/require"
	"log/slog"
	"slices"
	"testing"
)

func TestAnnotatedError(t *testing.T) {
	err := New("test error", slog.String("id", "123"))
	require.Equal(t, "test error", err.Error())

	// Assert that wrapping sentinel errors work as expected.
	sentinel := NewSentinel("test error")
	require.NotErrorIs(t, err, NewSentinel("test error"))
	wrapped := err.Wrap(sentinel)
	require.ErrorIs(t, wrapped, sentinel)

	// Ensure log values are coming through.
	group := err.LogValue().Group()
	require.Contains(t, group, slog.String("id", "123"))

	// Assert there's a valid source
	sourceIdx := slices.IndexFunc(group, func(attr slog.Attr) bool {
		return attr.Key == "source"
	})
	require.NotEqual(t, -1, sourceIdx)
	require.Contains(t, group[sourceIdx].Value.String(), "annotatederror_test.go")
}

func TestWrap(t *testing.T) {
	sentinel := NewSentinel("record not found")

	require.NoError(t, Wrap(nil, "nothing to wrap"))

	err := Wrap(sentinel, "find hdri", slog.Int64("id", 42))
	require.ErrorIs(t, err, sentinel)
	require.Equal(t, "find hdri: record not found", err.Error())

	var annotated AnnotatedError
	require.True(t, As(err, &annotated))
	require.Contains(t, annotated.Source(), "annotatederror_test.go")

	outer := Wrap(err, "fetch by id")
	require.Equal(t, "fetch by id: find hdri: record not found", outer.Error())
	require.ErrorIs(t, outer, sentinel)
}

func TestSlogError(t *testing.T) {
	err := Wrap(Join(NewSentinel("first"), Wrap(NewSentinel("second"), "inner")), "outer")

	attr := SlogError(err)
	require.Equal(t, "error", attr.Key)
	group := attr.Value.Group()
	require.Equal(t, "msg", group[0].Key)
	require.Equal(t, err.Error(), group[0].Value.String())

	traceIdx := slices.IndexFunc(group, func(attr slog.Attr) bool {
		return attr.Key == "trace"
	})
	require.NotEqual(t, -1, traceIdx)
	trace := group[traceIdx].Value.Group()
	require.Len(t, trace, 2)
	require.Equal(t, "outer", trace[0].Key)
	require.Equal(t, "inner", trace[1].Key)
}
