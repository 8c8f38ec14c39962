package main

import (
	"github.com/gorilla/websocket"
	"github.com/myrjola/mattepaint/internal/errors"
	"log/slog"
	"net/http"
	"time"
)

const writeWait = time.Second

// streamEvents upgrades the request to a WebSocket and writes every value received from updates as a JSON message
// until the client goes away, updates is closed or the server shuts down.
func streamEvents[T, M any](
	app *application,
	w http.ResponseWriter,
	r *http.Request,
	updates <-chan T,
	message func(T) M,
) {
	ctx := r.Context()
	conn, err := app.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// The upgrader has already responded to the client.
		app.logger.LogAttrs(ctx, slog.LevelWarn, "upgrading to websocket", errors.SlogError(err))
		return
	}
	defer func() {
		_ = conn.Close()
	}()

	// Clients don't send anything but the reads are needed to notice when the connection is closed.
	clientGone := make(chan struct{})
	go func() {
		defer close(clientGone)
		for {
			if _, _, readErr := conn.NextReader(); readErr != nil {
				return
			}
		}
	}()

	// updates is only closed when the application tears down, after the shutdown has begun.
	goingAway := websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down")
	for {
		select {
		case <-clientGone:
			return
		case <-app.shutdown:
			_ = conn.WriteControl(websocket.CloseMessage, goingAway, time.Now().Add(writeWait))
			return
		case v, ok := <-updates:
			if !ok {
				_ = conn.WriteControl(websocket.CloseMessage, goingAway, time.Now().Add(writeWait))
				return
			}
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err = conn.WriteJSON(message(v)); err != nil {
				app.logger.LogAttrs(ctx, slog.LevelDebug, "event stream ended", errors.SlogError(err))
				return
			}
		}
	}
}
