// Package session persists per-browser portal state. A Store is the
// key-value capability standing in for the browser's local storage: every
// value is an opaque string scoped to one browser identity. The Records
// layer on top gives role-keyed session record semantics to the rest of
// the app.
package session

import "context"

// Store is the browser-scoped key-value persistence port.
// Implementations must treat (browserID, key) as the unit of storage and
// never interpret values.
type Store interface {
	// Get returns the stored value, with ok=false when the key is absent.
	Get(ctx context.Context, browserID, key string) (value string, ok bool, err error)

	// Set stores the value, replacing any previous one.
	Set(ctx context.Context, browserID, key, value string) error

	// Delete removes the key. Deleting an absent key is not an error.
	Delete(ctx context.Context, browserID, key string) error
}
