package main

import (
	"context"
	"github.com/myrjola/mattepaint/internal/errors"
	"github.com/myrjola/mattepaint/internal/repositories"
	"log/slog"
	"net/http"
	"strconv"
)

// catalog is the part of the HDRI and scan repositories the handlers use.
type catalog[T repositories.Record] interface {
	FetchList(ctx context.Context) error
	FetchByID(ctx context.Context, id int64) (*T, error)
	Snapshot() repositories.Snapshot[T]
	Subscribe() (<-chan repositories.Snapshot[T], func())
}

type snapshotResponse[T repositories.Record] struct {
	Items []T                `json:"items"`
	State repositories.State `json:"state"`
	Error string             `json:"error,omitempty"`
}

func newSnapshotResponse[T repositories.Record](s repositories.Snapshot[T]) snapshotResponse[T] {
	resp := snapshotResponse[T]{
		Items: s.Items,
		State: s.State,
		Error: "",
	}
	if resp.Items == nil {
		resp.Items = []T{}
	}
	if s.Err != nil {
		resp.Error = s.Err.Error()
	}
	return resp
}

// listHandler responds with the catalog list. The list is fetched when it's still empty or when the query has
// refresh=true.
func listHandler[T repositories.Record](app *application, repo catalog[T]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		refresh := r.URL.Query().Get("refresh") == "true"
		if refresh || len(repo.Snapshot().Items) == 0 {
			if err := repo.FetchList(r.Context()); err != nil {
				app.serverError(w, r, errors.Wrap(err, "fetch list"))
				return
			}
		}
		app.writeJSON(w, r, http.StatusOK, newSnapshotResponse(repo.Snapshot()))
	}
}

func byIDHandler[T repositories.Record](app *application, repo catalog[T]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
		if err != nil {
			app.clientError(w, r, http.StatusBadRequest)
			return
		}

		var item *T
		if item, err = repo.FetchByID(r.Context(), id); err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				app.notFound(w, r)
				return
			}
			app.serverError(w, r, errors.Wrap(err, "fetch by id", slog.Int64("id", id)))
			return
		}
		app.writeJSON(w, r, http.StatusOK, item)
	}
}

func catalogEventsHandler[T repositories.Record](app *application, repo catalog[T]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snapshots, unsubscribe := repo.Subscribe()
		defer unsubscribe()
		streamEvents(app, w, r, snapshots, newSnapshotResponse[T])
	}
}
