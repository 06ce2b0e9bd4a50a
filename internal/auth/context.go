package auth

import "net/http"

type contextKey string

// UserIDContextKey is the request-context key holding the authenticated
// user ID, set by the auth middleware.
const UserIDContextKey contextKey = "user_id"

// UserIDFromRequest extracts the authenticated user ID from the request
// context.
func UserIDFromRequest(r *http.Request) (string, bool) {
	uid, ok := r.Context().Value(UserIDContextKey).(string)
	return uid, ok && uid != ""
}
