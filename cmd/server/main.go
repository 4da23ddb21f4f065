package main

import (
	"database/sql"
	"log"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	_ "modernc.org/sqlite"

	"portal/internal/adapters/api"
	emailPkg "portal/internal/adapters/email"
	web "portal/internal/adapters/http"
	"portal/internal/adapters/http/perf"
	sessionStore "portal/internal/adapters/session"
	"portal/internal/adapters/storage"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	// .env is optional; real environments set PORTAL_* directly.
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded configuration from .env")
	}

	// Browser-state database with WAL mode, foreign keys, and busy timeout
	dbPath := envOrDefault("PORTAL_DB", "portal.db")
	dsn := dbPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(ON)&_pragma=synchronous(NORMAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	// Connection pool settings for WAL mode
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)

	if err := db.Ping(); err != nil {
		log.Fatalf("database unreachable: %v", err)
	}

	if err := storage.MigrateDB(db, dbPath); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	// Performance instrumentation: wrap DB with timing, create collector
	collector := perf.NewCollector(perf.DefaultRingSize)
	timedDB := storage.NewTimedDB(db, collector)

	store := sessionStore.NewSQLiteStore(timedDB)

	// Upstream attendance API client
	apiBase := envOrDefault("PORTAL_API_BASE", "http://localhost:8000")
	apiClient := api.NewClient(apiBase, collector)

	// Email sender for signup welcome mail
	var sender emailPkg.Sender
	resendKey := os.Getenv("PORTAL_RESEND_KEY")
	emailFrom := envOrDefault("PORTAL_EMAIL_FROM", "Attendance Portal <noreply@portal.local>")
	if resendKey != "" {
		sender = emailPkg.NewResendSender(resendKey, emailFrom)
		log.Println("Email sender configured (Resend)")
	} else {
		sender = emailPkg.NewNoopSender()
		log.Println("Email sender configured (noop — set PORTAL_RESEND_KEY for real delivery)")
	}

	mux := web.NewMux("static", &web.Deps{
		Records:    sessionStore.NewRecords(store),
		Cache:      store,
		API:        apiClient,
		Attendance: api.NewSampleAttendanceProvider(),
		Email:      sender,
	}, collector)

	addr := envOrDefault("PORTAL_ADDR", ":3000")
	log.Printf("Portal %s starting on %s (api=%s, env=%s, schema=%d)",
		version, addr, apiBase, envOrDefault("PORTAL_ENV", "development"), storage.LatestSchemaVersion())

	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
