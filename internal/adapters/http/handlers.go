package web

import (
	"bytes"
	"encoding/json"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/gorilla/csrf"
	"github.com/yuin/goldmark"
	goldmarkHTML "github.com/yuin/goldmark/renderer/html"

	"portal/internal/adapters/api"
	"portal/internal/adapters/http/middleware"
	"portal/internal/application/forms"
	"portal/internal/application/orchestrators"
	"portal/internal/domain/role"
)

// templatesDir is relative to the working directory; tests point it at the
// package-local templates directory.
var templatesDir = "internal/adapters/http/templates"

// announcementPath is the markdown file rendered on the home page.
var announcementPath = "static/announcement.md"

// mdRenderer is a goldmark instance configured for safe HTML output.
// Raw HTML in markdown input is escaped (WithUnsafe is NOT set), preventing XSS.
var mdRenderer = goldmark.New(
	goldmark.WithRendererOptions(
		goldmarkHTML.WithHardWraps(),
	),
)

// internalError logs the real error and returns a generic message to the client.
// This prevents leaking internal details per OWASP A05.
func internalError(w http.ResponseWriter, err error) {
	slog.Error("internal_error", "error", err.Error())
	http.Error(w, "internal server error", http.StatusInternalServerError)
}

// userMessage maps an auth-flow error to the text shown in the form. Local
// validation errors carry their own wording; anything else goes through the
// upstream error mapping with the flow's generic fallback.
func userMessage(err error, fallback string) string {
	if errors.Is(err, forms.ErrPasswordMismatch) || errors.Is(err, forms.ErrMissingFields) {
		return err.Error()
	}
	return api.UserMessage(err, fallback)
}

func renderTemplate(w http.ResponseWriter, r *http.Request, templateName string, data any) {
	funcMap := template.FuncMap{
		"csrfToken": func() string { return csrf.Token(r) },
		"csrfField": func() template.HTML { return csrf.TemplateField(r) },
		"renderMarkdown": func(md string) template.HTML {
			var buf bytes.Buffer
			if err := mdRenderer.Convert([]byte(md), &buf); err != nil {
				return template.HTML(template.HTMLEscapeString(md))
			}
			return template.HTML(buf.String())
		},
		"pct": func(p float64) string {
			return strconv.FormatFloat(p, 'f', -1, 64) + "%"
		},
	}

	layoutPath := filepath.Join(templatesDir, "layout.html")
	pagePath := filepath.Join(templatesDir, templateName)
	tpl, err := template.New("layout.html").Funcs(funcMap).ParseFiles(layoutPath, pagePath)
	if err != nil {
		http.Error(w, "Template error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tpl.Execute(w, data); err != nil {
		http.Error(w, "Render error: "+err.Error(), http.StatusInternalServerError)
		return
	}
}

// browserID is a shorthand for the browser ID in request context.
func browserID(r *http.Request) string {
	return middleware.BrowserID(r.Context())
}

// --- Home ---

type homePage struct {
	Roles        []role.Role
	Announcement string
}

// handleHome renders the landing page: one portal card per role plus the
// markdown announcement block, when the file exists.
func handleHome(w http.ResponseWriter, r *http.Request) {
	page := homePage{Roles: role.All}
	if md, err := os.ReadFile(announcementPath); err == nil {
		page.Announcement = string(md)
	}
	renderTemplate(w, r, "home.html", page)
}

// --- Health ---

// handleHealthz reports liveness plus a recent performance snapshot.
func handleHealthz(w http.ResponseWriter, r *http.Request) {
	resp := map[string]any{"status": "ok"}
	if perfCollector != nil {
		resp["perf"] = perfCollector.Snapshot(time.Now().Add(-5*time.Minute), 5)
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("healthz_encode_failed", "error", err)
	}
}

// --- Auth flows ---

type authPage struct {
	Role   role.Role
	Form   forms.Definition
	Values map[string]string
	Error  string
	Flash  string
}

// handleLoginPage renders the role's login form. An already logged-in
// browser is sent straight to its dashboard.
func handleLoginPage(ro role.Role) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		browserID := browserID(r)
		if _, ok, err := deps.Records.Load(r.Context(), browserID, ro); err == nil && ok {
			http.Redirect(w, r, ro.ProfilePath, http.StatusSeeOther)
			return
		}
		page := authPage{Role: ro, Form: forms.LoginForm(ro)}
		if r.URL.Query().Get("registered") == "1" {
			page.Flash = "Registration successful! Please login."
		}
		renderTemplate(w, r, "login.html", page)
	}
}

// handleLoginSubmit runs the login flow: single-flight per browser, local
// validation, upstream call, session persist, redirect to the dashboard.
func handleLoginSubmit(ro role.Role) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "bad form", http.StatusBadRequest)
			return
		}
		browserID := browserID(r)
		def := forms.LoginForm(ro)
		draft := forms.DraftFrom(def, r.PostForm)
		page := authPage{Role: ro, Form: def, Values: draft.Sticky(def)}

		action := ro.Name + ":login"
		if !submissions.Acquire(browserID, action) {
			page.Error = "Submission already in progress"
			renderTemplate(w, r, "login.html", page)
			return
		}
		defer submissions.Release(browserID, action)

		_, err := orchestrators.ExecuteLogin(r.Context(), orchestrators.LoginInput{
			Role:      ro,
			BrowserID: browserID,
			Draft:     draft,
		}, orchestrators.LoginDeps{API: deps.API, Records: deps.Records})
		if err != nil {
			page.Error = userMessage(err, "Login failed")
			renderTemplate(w, r, "login.html", page)
			return
		}
		http.Redirect(w, r, ro.ProfilePath, http.StatusSeeOther)
	}
}

// handleSignupPage renders the role's registration form.
func handleSignupPage(ro role.Role) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		renderTemplate(w, r, "signup.html", authPage{Role: ro, Form: forms.SignupForm(ro)})
	}
}

// handleSignupSubmit runs the signup flow. Success lands on the login page
// with a flash; no session is created.
func handleSignupSubmit(ro role.Role) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "bad form", http.StatusBadRequest)
			return
		}
		browserID := browserID(r)
		def := forms.SignupForm(ro)
		draft := forms.DraftFrom(def, r.PostForm)
		page := authPage{Role: ro, Form: def, Values: draft.Sticky(def)}

		action := ro.Name + ":signup"
		if !submissions.Acquire(browserID, action) {
			page.Error = "Submission already in progress"
			renderTemplate(w, r, "signup.html", page)
			return
		}
		defer submissions.Release(browserID, action)

		_, err := orchestrators.ExecuteSignup(r.Context(), orchestrators.SignupInput{
			Role:      ro,
			BrowserID: browserID,
			Draft:     draft,
		}, orchestrators.SignupDeps{API: deps.API, Email: deps.Email})
		if err != nil {
			page.Error = userMessage(err, "Registration failed")
			renderTemplate(w, r, "signup.html", page)
			return
		}
		http.Redirect(w, r, ro.LoginPath+"?registered=1", http.StatusSeeOther)
	}
}

// handleLogout clears the role's session and returns to its login screen.
func handleLogout(ro role.Role) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := orchestrators.ExecuteLogout(r.Context(), orchestrators.LogoutInput{
			Role:      ro,
			BrowserID: browserID(r),
		}, orchestrators.LogoutDeps{Records: deps.Records})
		if err != nil {
			internalError(w, err)
			return
		}
		http.Redirect(w, r, ro.LoginPath, http.StatusSeeOther)
	}
}
