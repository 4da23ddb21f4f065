package orchestrators

import (
	"context"
	"log/slog"

	"portal/internal/application/forms"
	"portal/internal/domain/role"
	"portal/internal/domain/session"
)

// AuthAPIForLogin defines the upstream API surface needed by Login.
type AuthAPIForLogin interface {
	Login(ctx context.Context, endpoint string, payload map[string]string, envelopeKey string) (session.Record, error)
}

// RecordsForLogin defines the session store surface needed by Login.
type RecordsForLogin interface {
	Save(ctx context.Context, browserID string, ro role.Role, rec session.Record) error
}

// LoginInput carries input for the login orchestrator.
type LoginInput struct {
	Role      role.Role
	BrowserID string
	Draft     forms.Draft
}

// LoginResult carries the result of a successful login.
type LoginResult struct {
	Record session.Record
}

// LoginDeps holds dependencies for Login.
type LoginDeps struct {
	API     AuthAPIForLogin
	Records RecordsForLogin
}

// ExecuteLogin forwards credentials upstream and, on success, persists the
// returned record under the role's storage key. Only then does the browser
// count as logged in for that role.
// PRE: Draft was built from the role's login form
// POST: On success the record is stored and returned; on failure nothing
// is stored and the error carries a user-visible message
func ExecuteLogin(ctx context.Context, input LoginInput, deps LoginDeps) (LoginResult, error) {
	def := forms.LoginForm(input.Role)
	if err := forms.Validate(def, input.Draft); err != nil {
		slog.Info("auth_event", "event", "login_rejected", "role", input.Role.Name, "reason", "incomplete_form")
		return LoginResult{}, err
	}

	rec, err := deps.API.Login(ctx, input.Role.LoginEndpoint, input.Draft.Payload(def), input.Role.EnvelopeKey)
	if err != nil {
		slog.Info("auth_event", "event", "login_failed", "role", input.Role.Name)
		return LoginResult{}, err
	}

	if err := deps.Records.Save(ctx, input.BrowserID, input.Role, rec); err != nil {
		return LoginResult{}, err
	}

	slog.Info("auth_event", "event", "login_success", "role", input.Role.Name, "id", rec.Field(input.Role.IDField))
	return LoginResult{Record: rec}, nil
}
