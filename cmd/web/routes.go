package main

import (
	"github.com/justinas/alice"
	"net/http"
)

func (app *application) routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/healthy", app.healthy)

	mux.Handle("GET /api/hdris", timeout(listHandler(app, app.hdris)))
	mux.Handle("GET /api/hdris/{id}", timeout(byIDHandler(app, app.hdris)))
	mux.HandleFunc("GET /api/hdris/events", catalogEventsHandler(app, app.hdris))

	mux.Handle("GET /api/scans", timeout(listHandler(app, app.scans)))
	mux.Handle("GET /api/scans/{id}", timeout(byIDHandler(app, app.scans)))
	mux.HandleFunc("GET /api/scans/events", catalogEventsHandler(app, app.scans))

	mux.Handle("GET /api/breadcrumbs", timeout(http.HandlerFunc(app.getBreadcrumbs)))
	mux.Handle("PUT /api/breadcrumbs", timeout(http.HandlerFunc(app.putBreadcrumbs)))
	mux.HandleFunc("GET /api/breadcrumbs/events", app.breadcrumbEvents)

	mux.HandleFunc("/", app.notFound)

	common := alice.New(app.recoverPanic, app.logRequest, secureHeaders, app.noSurf, commonContext)
	return common.Then(mux)
}

// timeout is applied to every route except the event streams, which stay open until the client leaves.
func timeout(h http.Handler) http.Handler {
	return timeoutHandler(h, defaultTimeout)
}
