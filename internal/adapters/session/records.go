package session

import (
	"context"
	"log/slog"

	"portal/internal/domain/dashboard"
	"portal/internal/domain/role"
	domain "portal/internal/domain/session"
)

// Records is the session store adapter: role-keyed save/load/clear of
// session records over a Store. Every load is a fresh read — nothing is
// cached in memory, so a logout in one request is respected by the next
// guard check.
type Records struct {
	store Store
}

// NewRecords creates a Records adapter over the given store.
func NewRecords(store Store) *Records {
	return &Records{store: store}
}

// Save persists the record under the role's storage key.
// PRE: rec is non-nil
// POST: Record is stored serialized; subsequent Load returns it
func (r *Records) Save(ctx context.Context, browserID string, ro role.Role, rec domain.Record) error {
	raw, err := rec.Encode()
	if err != nil {
		return err
	}
	return r.store.Set(ctx, browserID, ro.StorageKey, raw)
}

// Load returns the role's session record. Missing and malformed stored data
// are treated identically: ok=false, no error. Guard logic redirects on
// ok=false and must never crash on bad data.
// PRE: browserID is non-empty
// POST: Returns the record and true, or nil and false
func (r *Records) Load(ctx context.Context, browserID string, ro role.Role) (domain.Record, bool, error) {
	raw, ok, err := r.store.Get(ctx, browserID, ro.StorageKey)
	if err != nil {
		return nil, false, err
	}
	if !ok {
		return nil, false, nil
	}
	rec, ok := domain.Decode(raw)
	if !ok {
		slog.Warn("session_record_malformed", "role", ro.Name, "storage_key", ro.StorageKey)
		return nil, false, nil
	}
	return rec, true, nil
}

// Clear removes the role's session record and the tab collections cached
// under it. The other role's keys are untouched.
// PRE: browserID is non-empty
// POST: The role's storage key and derived cache keys are absent
func (r *Records) Clear(ctx context.Context, browserID string, ro role.Role) error {
	if err := r.store.Delete(ctx, browserID, ro.StorageKey); err != nil {
		return err
	}
	for _, t := range dashboard.TabsFor(ro) {
		if !dashboard.RemoteBacked(ro, t) {
			continue
		}
		if err := r.store.Delete(ctx, browserID, ro.CacheKey(string(t))); err != nil {
			return err
		}
	}
	return nil
}
