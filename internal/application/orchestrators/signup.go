package orchestrators

import (
	"context"
	"fmt"
	"log/slog"

	"portal/internal/adapters/email"
	"portal/internal/application/forms"
	"portal/internal/domain/role"
)

// AuthAPIForSignup defines the upstream API surface needed by Signup.
type AuthAPIForSignup interface {
	Signup(ctx context.Context, endpoint string, payload map[string]string) error
}

// SignupInput carries input for the signup orchestrator.
type SignupInput struct {
	Role      role.Role
	BrowserID string
	Draft     forms.Draft
}

// SignupResult carries the result of a successful signup.
type SignupResult struct {
	Name  string
	Email string
}

// SignupDeps holds dependencies for Signup.
type SignupDeps struct {
	API   AuthAPIForSignup
	Email email.Sender // nil disables the welcome email
}

// ExecuteSignup validates the registration form locally, forwards it
// upstream, and sends a best-effort welcome email. A successful signup
// creates no session: the user still has to log in.
// PRE: Draft was built from the role's signup form
// POST: On success the account exists upstream and no record is stored;
// a mismatch or missing field is rejected before any network call
func ExecuteSignup(ctx context.Context, input SignupInput, deps SignupDeps) (SignupResult, error) {
	def := forms.SignupForm(input.Role)
	if err := forms.Validate(def, input.Draft); err != nil {
		slog.Info("auth_event", "event", "signup_rejected", "role", input.Role.Name, "reason", "local_validation")
		return SignupResult{}, err
	}

	if err := deps.API.Signup(ctx, input.Role.SignupEndpoint, input.Draft.Payload(def)); err != nil {
		slog.Info("auth_event", "event", "signup_failed", "role", input.Role.Name)
		return SignupResult{}, err
	}

	result := SignupResult{Name: input.Draft["name"], Email: input.Draft["email"]}
	slog.Info("auth_event", "event", "signup_success", "role", input.Role.Name, "email", result.Email)

	// Welcome email is a courtesy: a send failure never fails the signup.
	if deps.Email != nil && result.Email != "" {
		if _, err := deps.Email.Send(ctx, welcomeEmail(input.Role, result)); err != nil {
			slog.Warn("welcome_email_failed", "role", input.Role.Name, "email", result.Email, "error", err)
		}
	}

	return result, nil
}

// welcomeEmail builds the post-registration message for a new account.
func welcomeEmail(ro role.Role, res SignupResult) email.SendRequest {
	return email.SendRequest{
		To:      []string{res.Email},
		Subject: "Welcome to the Attendance Portal",
		HTML: fmt.Sprintf(
			"<p>Hi %s,</p><p>Your %s account has been created. You can now <a href=%q>log in</a> and view your dashboard.</p>",
			res.Name, ro.Label, ro.LoginPath,
		),
	}
}
