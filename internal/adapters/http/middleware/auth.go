package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"portal/internal/domain/role"
	"portal/internal/domain/session"
)

// contextKey is an unexported type for context keys in this package.
type contextKey string

const (
	browserContextKey contextKey = "browser"
	recordContextKey  contextKey = "record"
)

const browserCookieName = "portal_browser"

// RecordLoader defines the session store surface the guard needs. Loads
// are fresh reads so a logout is respected by the very next request.
type RecordLoader interface {
	Load(ctx context.Context, browserID string, ro role.Role) (session.Record, bool, error)
}

// BrowserIdentity ensures every request carries a stable browser ID. A
// request without the cookie gets a fresh UUID that scopes all session
// state for that browser from then on.
func BrowserIdentity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := ""
		if cookie, err := r.Cookie(browserCookieName); err == nil {
			if parsed, err := uuid.Parse(cookie.Value); err == nil {
				id = parsed.String()
			}
		}
		if id == "" {
			id = uuid.NewString()
			http.SetCookie(w, &http.Cookie{
				Name:     browserCookieName,
				Value:    id,
				HttpOnly: true,
				Secure:   false, // Allow HTTP for local development
				SameSite: http.SameSiteLaxMode,
				Path:     "/",
				MaxAge:   365 * 86400,
			})
		}
		ctx := context.WithValue(r.Context(), browserContextKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// BrowserID extracts the browser ID from the request context.
func BrowserID(ctx context.Context) string {
	id, _ := ctx.Value(browserContextKey).(string)
	return id
}

// Guard returns middleware protecting one role's dashboard. The session
// record is re-read from the store on every request; a missing or
// malformed record redirects to the role's login screen before any
// handler runs.
// INVARIANT: A guarded handler always finds a record in context
func Guard(ro role.Role, records RecordLoader) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rec, ok, err := records.Load(r.Context(), BrowserID(r.Context()), ro)
			if err != nil {
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				return
			}
			if !ok {
				http.Redirect(w, r, ro.LoginPath, http.StatusSeeOther)
				return
			}
			ctx := context.WithValue(r.Context(), recordContextKey, rec)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RecordFromContext extracts the guarded session record.
func RecordFromContext(ctx context.Context) (session.Record, bool) {
	rec, ok := ctx.Value(recordContextKey).(session.Record)
	return rec, ok
}

// ContextWithBrowserID returns a context carrying the given browser ID.
// Intended for use in tests.
func ContextWithBrowserID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, browserContextKey, id)
}
