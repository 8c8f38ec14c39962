package contexthelpers

import (
	"context"
)

// CurrentPath returns the URL path of the request being served, the server side counterpart of the
// navigation path breadcrumbs are built from.
func CurrentPath(ctx context.Context) string {
	currentPath, ok := ctx.Value(currentPathContextKey).(string)
	if !ok {
		return ""
	}

	return currentPath
}

func RequestID(ctx context.Context) string {
	requestID, ok := ctx.Value(requestIDContextKey).(string)
	if !ok {
		return ""
	}

	return requestID
}
