package main

import (
	"github.com/stretchr/testify/require"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func Test_timeoutHandler(t *testing.T) {
	// The handler deadline is 20ms.
	const serverTimeout = 520 * time.Millisecond

	t.Run("slow handler", func(t *testing.T) {
		slow := http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
			<-r.Context().Done()
		})
		rec := httptest.NewRecorder()
		timeoutHandler(slow, serverTimeout).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/hdris", nil))

		require.Equal(t, http.StatusServiceUnavailable, rec.Code)
		require.Equal(t, "application/json", rec.Header().Get("Content-Type"))
		require.JSONEq(t, timeoutBody, rec.Body.String())
	})

	t.Run("fast handler", func(t *testing.T) {
		fast := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "text/plain; charset=utf-8")
			_, _ = w.Write([]byte("ok"))
		})
		rec := httptest.NewRecorder()
		timeoutHandler(fast, serverTimeout).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/healthy", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, "text/plain; charset=utf-8", rec.Header().Get("Content-Type"))
		require.Equal(t, "ok", rec.Body.String())
	})
}
