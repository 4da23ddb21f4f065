package projections

import (
	"context"
	"strings"

	"portal/internal/domain/dashboard"
	"portal/internal/domain/role"
	"portal/internal/domain/session"
)

// GetDashboardQuery carries input for the dashboard projection.
type GetDashboardQuery struct {
	Role      role.Role
	BrowserID string
	RawTab    string // ?tab= value, unvalidated
}

// ProfileField is one label/value pair rendered on the profile tab.
type ProfileField struct {
	Label string
	Value string
}

// GetDashboardResult carries the output of the dashboard projection.
type GetDashboardResult struct {
	Record        session.Record
	ActiveTab     dashboard.Tab
	Tabs          []dashboard.Tab
	ProfileFields []ProfileField
}

// GetDashboardDeps holds dependencies for the dashboard projection.
type GetDashboardDeps struct {
	Records SessionRecords
}

// QueryGetDashboard resolves the role's session record and the active tab.
// An unknown or absent tab parameter falls back to the profile tab rather
// than erroring.
// PRE: BrowserID is non-empty
// POST: ActiveTab is one of Tabs; ErrNotLoggedIn when no record exists
// INVARIANT: Exactly one tab is active
func QueryGetDashboard(ctx context.Context, query GetDashboardQuery, deps GetDashboardDeps) (GetDashboardResult, error) {
	rec, ok, err := deps.Records.Load(ctx, query.BrowserID, query.Role)
	if err != nil {
		return GetDashboardResult{}, err
	}
	if !ok {
		return GetDashboardResult{}, ErrNotLoggedIn
	}

	return GetDashboardResult{
		Record:        rec,
		ActiveTab:     dashboard.ParseTab(query.Role, query.RawTab),
		Tabs:          dashboard.TabsFor(query.Role),
		ProfileFields: profileFields(rec),
	}, nil
}

// profileFields flattens the record into rendered label/value pairs, in
// stable field-name order. Whatever identity fields the upstream returned
// are shown; nothing is required to be present.
func profileFields(rec session.Record) []ProfileField {
	var out []ProfileField
	for _, name := range rec.FieldNames() {
		if strings.Contains(strings.ToLower(name), "password") {
			continue
		}
		out = append(out, ProfileField{Label: fieldLabel(name), Value: rec.Field(name)})
	}
	return out
}

// fieldLabel turns an upstream field name into a display label:
// "registration_number" and "enrollmentDate" both become readable words.
func fieldLabel(name string) string {
	var b strings.Builder
	prevLower := false
	for _, r := range name {
		switch {
		case r == '_':
			b.WriteRune(' ')
			prevLower = false
			continue
		case r >= 'A' && r <= 'Z' && prevLower:
			b.WriteRune(' ')
		}
		b.WriteRune(r)
		prevLower = r >= 'a' && r <= 'z'
	}
	words := strings.Fields(b.String())
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
