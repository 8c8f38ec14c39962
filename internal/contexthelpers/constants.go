package contexthelpers

type contextKey string

const currentPathContextKey = contextKey("currentPath")
const requestIDContextKey = contextKey("requestID")
