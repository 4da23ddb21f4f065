package web

import (
	"net/http"

	"portal/internal/adapters/http/middleware"
	"portal/internal/domain/role"
)

// registerRoutes attaches every page handler to the mux. Dashboard routes
// sit behind the role's guard; everything else is public.
func registerRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/{$}", handleHome)
	mux.HandleFunc("/healthz", handleHealthz)

	for _, ro := range role.All {
		mux.Handle("GET "+ro.LoginPath, handleLoginPage(ro))
		mux.Handle("POST "+ro.LoginPath, handleLoginSubmit(ro))
		mux.Handle("GET "+ro.SignupPath, handleSignupPage(ro))
		mux.Handle("POST "+ro.SignupPath, handleSignupSubmit(ro))
		mux.Handle("POST "+ro.LogoutPath, handleLogout(ro))
		mux.Handle("GET "+ro.ProfilePath,
			middleware.Guard(ro, deps.Records)(handleDashboard(ro)))
	}
}
