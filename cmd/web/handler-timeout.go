package main

import (
	"net/http"
	"time"
)

const timeoutBody = `{"error":"Service Unavailable"}`

// timeoutHandler responds with a 503 Service Unavailable JSON error when the handler does not meet the deadline.
func timeoutHandler(h http.Handler, defaultTimeout time.Duration) http.Handler {
	// We want the timeout to be a little shorter than the server's read timeout so that the
	// timeout handler has a chance to respond before the server closes the connection.
	httpHandlerTimeout := defaultTimeout - 500*time.Millisecond //nolint:mnd // 500ms
	th := http.TimeoutHandler(h, httpHandlerTimeout, timeoutBody)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// http.TimeoutHandler writes timeoutBody without headers. Headers set by h replace this one when h finishes in
		// time.
		w.Header().Set("Content-Type", "application/json")
		th.ServeHTTP(w, r)
	})
}
