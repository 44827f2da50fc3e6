// Package session defines the caller identity threaded through every request.
// Handlers never poke at raw JWT claims; the auth middleware resolves the
// token into one of these and stores it in the gin context.
package session

// ContextKey is the gin context key the auth middleware stores a Session under
const ContextKey = "session"

// Session identifies the caller of a request. A guest session only carries
// the generated guest id; an authenticated one is backed by a user row.
type Session struct {
	UserID  string
	Email   string
	IsGuest bool
	IsAdmin bool
}
