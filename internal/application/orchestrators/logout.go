package orchestrators

import (
	"context"
	"log/slog"

	"portal/internal/domain/role"
)

// RecordsForLogout defines the session store surface needed by Logout.
type RecordsForLogout interface {
	Clear(ctx context.Context, browserID string, ro role.Role) error
}

// LogoutInput carries input for the logout orchestrator.
type LogoutInput struct {
	Role      role.Role
	BrowserID string
}

// LogoutDeps holds dependencies for Logout.
type LogoutDeps struct {
	Records RecordsForLogout
}

// ExecuteLogout removes the role's session record and its cached tab
// collections. The other role's session, if any, is untouched. Logging out
// when already logged out is a no-op, not an error.
// PRE: BrowserID is non-empty
// POST: The role's guard checks fail until the next successful login
func ExecuteLogout(ctx context.Context, input LogoutInput, deps LogoutDeps) error {
	if err := deps.Records.Clear(ctx, input.BrowserID, input.Role); err != nil {
		return err
	}
	slog.Info("auth_event", "event", "logout", "role", input.Role.Name)
	return nil
}
