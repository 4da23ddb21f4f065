// Package web serves the portal's server-rendered pages: the home screen,
// the per-role login and signup flows, and the guarded dashboards.
package web

import (
	"crypto/rand"
	"encoding/hex"
	"log"
	"net/http"
	"os"
	"time"

	"portal/internal/adapters/api"
	"portal/internal/adapters/email"
	"portal/internal/adapters/http/middleware"
	"portal/internal/adapters/http/perf"
	"portal/internal/adapters/session"
	"portal/internal/application/inflight"
)

// Deps holds everything the handlers need.
type Deps struct {
	Records    *session.Records
	Cache      session.Store
	API        *api.Client
	Attendance api.AttendanceProvider
	Email      email.Sender // nil disables the welcome email
}

// Global deps instance (set by NewMux)
var deps *Deps

// Global in-flight submission registry (set by NewMux)
var submissions *inflight.Registry

// Global perf collector (set by NewMux)
var perfCollector *perf.Collector

// RateLimitPerSecond controls the per-IP rate limit. Tests can increase this.
var RateLimitPerSecond = 10

// loadCSRFKey reads the CSRF secret from PORTAL_CSRF_KEY (hex-encoded, 32 bytes).
// In production, the key MUST be set. In development, a random key is generated per startup.
func loadCSRFKey() []byte {
	if keyHex := os.Getenv("PORTAL_CSRF_KEY"); keyHex != "" {
		key, err := hex.DecodeString(keyHex)
		if err != nil || len(key) != 32 {
			log.Fatal("PORTAL_CSRF_KEY must be 64 hex characters (32 bytes)")
		}
		return key
	}
	if os.Getenv("PORTAL_ENV") == "production" {
		log.Fatal("PORTAL_CSRF_KEY is required in production")
	}
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		log.Fatalf("failed to generate CSRF key: %v", err)
	}
	log.Println("WARNING: using random CSRF key (tokens won't survive restart). Set PORTAL_CSRF_KEY for production.")
	return key
}

// trustedOrigins returns the origins the CSRF check accepts, derived from
// the listen address so local development works out of the box.
func trustedOrigins() []string {
	origins := []string{"localhost:3000", "127.0.0.1:3000"}
	if extra := os.Getenv("PORTAL_TRUSTED_ORIGIN"); extra != "" {
		origins = append(origins, extra)
	}
	return origins
}

// NewMux wires HTTP handlers for the portal.
func NewMux(staticDir string, d *Deps, collector *perf.Collector) http.Handler {
	deps = d
	perfCollector = collector
	submissions = inflight.NewRegistry()

	mux := http.NewServeMux()
	mux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(http.Dir(staticDir))))
	registerRoutes(mux)

	limiter := middleware.NewRateLimiter(RateLimitPerSecond, time.Second)

	// Apply middleware: Timing -> RateLimit -> BrowserIdentity -> CSRF -> SecurityHeaders -> Mux
	return middleware.Chain(mux,
		middleware.SecurityHeaders,
		middleware.CSRF(loadCSRFKey(), trustedOrigins()),
		middleware.BrowserIdentity,
		middleware.RateLimit(limiter),
		middleware.Timing(collector),
	)
}
