// Package forms defines the login and signup screens' field sets and the
// draft values collected from them. A Draft lives for one submission: it is
// built from posted values, validated locally, reduced to an API payload,
// and rendered back (minus passwords) when the submission fails.
package forms

import (
	"errors"
	"net/url"

	"portal/internal/domain/role"
)

// Validation errors surfaced before any network call is made.
var (
	ErrPasswordMismatch = errors.New("Passwords don't match!")
	ErrMissingFields    = errors.New("Please fill in all fields")
)

// Field describes one input on a screen.
type Field struct {
	Name        string // posted name, matching the upstream payload key
	Label       string
	Type        string // "text", "email", or "password"
	Placeholder string
}

// Definition is one screen's form: its fields in render order plus which
// field, if any, is a confirmation that must match ConfirmTarget and is
// stripped from the payload.
type Definition struct {
	Fields        []Field
	ConfirmField  string // name of the confirm input ("" when none)
	ConfirmTarget string // name of the field it must match
}

// studentLogin etc. fix the field sets per screen. Names match the
// upstream API's payload keys verbatim (including the facultyId camelCase).
var (
	studentLogin = Definition{
		Fields: []Field{
			{Name: "registration_number", Label: "Registration Number", Type: "text", Placeholder: "Enter your registration number"},
			{Name: "password", Label: "Password", Type: "password", Placeholder: "Enter your password"},
		},
	}

	studentSignup = Definition{
		Fields: []Field{
			{Name: "registration_number", Label: "Registration Number", Type: "text", Placeholder: "Registration Number"},
			{Name: "name", Label: "Full Name", Type: "text", Placeholder: "Full Name"},
			{Name: "section", Label: "Section", Type: "text", Placeholder: "Section"},
			{Name: "email", Label: "Email", Type: "email", Placeholder: "Email"},
			{Name: "department", Label: "Department", Type: "text", Placeholder: "Department"},
			{Name: "year", Label: "Year", Type: "text", Placeholder: "Year"},
			{Name: "password", Label: "Password", Type: "password", Placeholder: "Password"},
			{Name: "confirmPassword", Label: "Confirm Password", Type: "password", Placeholder: "Confirm Password"},
		},
		ConfirmField:  "confirmPassword",
		ConfirmTarget: "password",
	}

	facultyLogin = Definition{
		Fields: []Field{
			{Name: "facultyId", Label: "Faculty ID", Type: "text", Placeholder: "Enter your faculty ID"},
			{Name: "password", Label: "Password", Type: "password", Placeholder: "Enter your password"},
		},
	}

	facultySignup = Definition{
		Fields: []Field{
			{Name: "facultyId", Label: "Faculty ID", Type: "text", Placeholder: "Faculty ID"},
			{Name: "name", Label: "Full Name", Type: "text", Placeholder: "Full Name"},
			{Name: "email", Label: "Email", Type: "email", Placeholder: "Email"},
			{Name: "department", Label: "Department", Type: "text", Placeholder: "Department"},
			{Name: "subjects", Label: "Teaching Subjects", Type: "text", Placeholder: "Subjects (comma separated)"},
			{Name: "sections", Label: "Assigned Sections", Type: "text", Placeholder: "Sections (comma separated)"},
			{Name: "password", Label: "Password", Type: "password", Placeholder: "Password"},
			{Name: "confirmPassword", Label: "Confirm Password", Type: "password", Placeholder: "Confirm Password"},
		},
		ConfirmField:  "confirmPassword",
		ConfirmTarget: "password",
	}
)

// LoginForm returns the login definition for a role.
func LoginForm(r role.Role) Definition {
	if r.Name == role.NameFaculty {
		return facultyLogin
	}
	return studentLogin
}

// SignupForm returns the signup definition for a role.
func SignupForm(r role.Role) Definition {
	if r.Name == role.NameFaculty {
		return facultySignup
	}
	return studentSignup
}

// Draft is the mutable field-name → value record for one submission.
type Draft map[string]string

// DraftFrom collects the definition's fields from posted values. Fields the
// definition does not declare are ignored; absent fields come back as "".
// PRE: none
// POST: Returned draft has exactly one entry per declared field
func DraftFrom(def Definition, values url.Values) Draft {
	d := make(Draft, len(def.Fields))
	for _, f := range def.Fields {
		d[f.Name] = values.Get(f.Name)
	}
	return d
}

// Validate performs the screen's local checks. A password/confirm mismatch
// is rejected here, before any network call.
// PRE: d was built by DraftFrom for this definition
// POST: nil means the draft may be submitted upstream
func Validate(def Definition, d Draft) error {
	for _, f := range def.Fields {
		if d[f.Name] == "" {
			return ErrMissingFields
		}
	}
	if def.ConfirmField != "" && d[def.ConfirmField] != d[def.ConfirmTarget] {
		return ErrPasswordMismatch
	}
	return nil
}

// Payload returns the upstream API payload: every declared field except the
// confirmation field.
// PRE: d was built by DraftFrom for this definition
// POST: Result never contains the confirm field; d is not mutated
func (d Draft) Payload(def Definition) map[string]string {
	out := make(map[string]string, len(d))
	for _, f := range def.Fields {
		if f.Name == def.ConfirmField {
			continue
		}
		out[f.Name] = d[f.Name]
	}
	return out
}

// Sticky returns the draft values safe to render back into a failed form:
// everything except password-typed fields.
// PRE: d was built by DraftFrom for this definition
// POST: Result contains no password values; d is not mutated
func (d Draft) Sticky(def Definition) map[string]string {
	out := make(map[string]string, len(d))
	for _, f := range def.Fields {
		if f.Type == "password" {
			continue
		}
		out[f.Name] = d[f.Name]
	}
	return out
}
