package main

import (
	"context"
	"database/sql"
	"log"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	_ "modernc.org/sqlite"

	"academia/internal/adapters/api"
	"academia/internal/adapters/api/attendances"
	"academia/internal/adapters/api/auditapi"
	"academia/internal/adapters/api/authapi"
	"academia/internal/adapters/api/billingapi"
	"academia/internal/adapters/api/classes"
	"academia/internal/adapters/api/dancestyles"
	"academia/internal/adapters/api/enrollments"
	"academia/internal/adapters/api/people"
	"academia/internal/adapters/api/reports"
	web "academia/internal/adapters/http"
	"academia/internal/adapters/push"
	"academia/internal/adapters/storage"
	preferenceStore "academia/internal/adapters/storage/preference"
	sessionStore "academia/internal/adapters/storage/session"
	"academia/internal/application/registration"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	// Local database holds only sessions and UI preferences; domain data
	// lives in the backend.
	dbPath := envOrDefault("ACADEMIA_DB", "academia.db")
	dsn := dbPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(ON)&_pragma=synchronous(NORMAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)

	if err := db.Ping(); err != nil {
		log.Fatalf("database unreachable: %v", err)
	}
	if err := storage.InitDB(db); err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	timedDB := storage.NewTimedDB(db)
	sessions := sessionStore.NewSQLiteStore(timedDB)
	preferences := preferenceStore.NewSQLiteStore(timedDB)

	apiURL := envOrDefault("ACADEMIA_API_URL", "http://localhost:5225/api")
	client := api.NewClient(apiURL)

	hub := push.NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// The notification stream authenticates with a service token so it
	// survives individual user logouts. Without one the console still
	// works, just without live updates.
	if token := os.Getenv("ACADEMIA_PUSH_TOKEN"); token != "" {
		channel := push.NewChannel(apiURL, func() string { return token }, hub)
		go channel.Run(ctx)
	} else {
		log.Println("ACADEMIA_PUSH_TOKEN not set: live notifications disabled")
	}

	// Expired sessions pile up otherwise; sweep hourly.
	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if n, err := sessions.DeleteExpired(ctx); err != nil {
					slog.Warn("auth_event", "event", "session_sweep_failed", "error", err)
				} else if n > 0 {
					slog.Info("auth_event", "event", "sessions_swept", "count", n)
				}
			}
		}
	}()

	services := &web.Services{
		Auth:        authapi.NewRESTService(client),
		People:      people.NewRESTService(client),
		Classes:     classes.NewRESTService(client),
		Attendance:  attendances.NewRESTService(client),
		Enrollments: enrollments.NewRESTService(client),
		Billing:     billingapi.NewRESTService(client),
		Styles:      dancestyles.NewRESTService(client),
		Audit:       auditapi.NewRESTService(client),
		Reports:     reports.NewRESTService(client),
		Sessions:    sessions,
		Preferences: preferences,
		Book:        registration.NewBook(),
		Hub:         hub,
	}

	mux := web.NewMux("static", services)

	addr := envOrDefault("ACADEMIA_ADDR", ":8080")
	log.Printf("Academia %s starting on %s (env=%s, api=%s)", version, addr, envOrDefault("ACADEMIA_ENV", "development"), apiURL)

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
