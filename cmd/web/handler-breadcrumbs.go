package main

import (
	"encoding/json"
	"github.com/myrjola/mattepaint/internal/models"
	"net/http"
)

// maxBreadcrumbsBody bounds the request body, the trail itself has no size limit.
const maxBreadcrumbsBody = 1 << 20

func (app *application) getBreadcrumbs(w http.ResponseWriter, r *http.Request) {
	app.writeJSON(w, r, http.StatusOK, app.breadcrumbs.Get())
}

// putBreadcrumbs replaces the trail with the JSON array in the request body.
func (app *application) putBreadcrumbs(w http.ResponseWriter, r *http.Request) {
	var crumbs []models.Breadcrumb
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBreadcrumbsBody))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&crumbs); err != nil {
		app.clientError(w, r, http.StatusBadRequest)
		return
	}
	app.breadcrumbs.Set(crumbs)
	app.writeJSON(w, r, http.StatusOK, app.breadcrumbs.Get())
}

func (app *application) breadcrumbEvents(w http.ResponseWriter, r *http.Request) {
	trail, unsubscribe := app.breadcrumbs.Subscribe()
	defer unsubscribe()
	streamEvents(app, w, r, trail, func(crumbs []models.Breadcrumb) []models.Breadcrumb { return crumbs })
}
