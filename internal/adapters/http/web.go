package web

import (
	"crypto/rand"
	"encoding/hex"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"academia/internal/adapters/api/attendances"
	"academia/internal/adapters/api/auditapi"
	"academia/internal/adapters/api/authapi"
	"academia/internal/adapters/api/billingapi"
	"academia/internal/adapters/api/classes"
	"academia/internal/adapters/api/dancestyles"
	"academia/internal/adapters/api/enrollments"
	"academia/internal/adapters/api/people"
	"academia/internal/adapters/api/reports"
	"academia/internal/adapters/http/middleware"
	"academia/internal/adapters/push"
	preferenceStore "academia/internal/adapters/storage/preference"
	sessionStore "academia/internal/adapters/storage/session"
	"academia/internal/application/registration"
)

// Services holds the backend service and local store dependencies.
type Services struct {
	Auth        authapi.Service
	People      people.Service
	Classes     classes.Service
	Attendance  attendances.Service
	Enrollments enrollments.Service
	Billing     billingapi.Service
	Styles      dancestyles.Service
	Audit       auditapi.Service
	Reports     reports.Service

	Sessions    sessionStore.Store
	Preferences preferenceStore.Store
	Book        *registration.Book
	Hub         *push.Hub
}

// loadCSRFKey reads the CSRF secret from ACADEMIA_CSRF_KEY (hex-encoded, 32 bytes).
// In production, the key MUST be set. In development, a random key is generated per startup.
func loadCSRFKey() []byte {
	if keyHex := os.Getenv("ACADEMIA_CSRF_KEY"); keyHex != "" {
		key, err := hex.DecodeString(keyHex)
		if err != nil || len(key) != 32 {
			log.Fatal("ACADEMIA_CSRF_KEY must be 64 hex characters (32 bytes)")
		}
		return key
	}
	if os.Getenv("ACADEMIA_ENV") == "production" {
		log.Fatal("ACADEMIA_CSRF_KEY is required in production")
	}
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		log.Fatalf("failed to generate CSRF key: %v", err)
	}
	log.Println("WARNING: using random CSRF key (sessions won't survive restart). Set ACADEMIA_CSRF_KEY for production.")
	return key
}

// Global services instance (set by NewMux)
var services *Services

// RateLimitPerSecond controls the per-IP rate limit. Tests can increase this.
var RateLimitPerSecond = 10

// NewMux wires HTTP handlers for the console.
func NewMux(staticDir string, s *Services) http.Handler {
	services = s
	middleware.SecureCookies = os.Getenv("ACADEMIA_ENV") == "production"

	mux := http.NewServeMux()
	mux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(http.Dir(staticDir))))
	registerRoutes(mux)

	csrfKey := loadCSRFKey()

	trustedOrigins := []string{"localhost:8080", "127.0.0.1:8080"}
	if extra := os.Getenv("ACADEMIA_TRUSTED_ORIGINS"); extra != "" {
		trustedOrigins = append(trustedOrigins, strings.Split(extra, ",")...)
	}

	limiter := middleware.NewRateLimiter(RateLimitPerSecond, time.Second)

	// Apply middleware: Timing -> RateLimit -> Auth -> CSRF -> SecurityHeaders -> Mux
	return middleware.Chain(mux,
		middleware.SecurityHeaders,
		middleware.CSRF(csrfKey, trustedOrigins),
		middleware.Auth(s.Sessions),
		middleware.RateLimit(limiter),
		middleware.Timing(),
	)
}

// registerRoutes attaches every page handler to the mux.
func registerRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/", handleDashboard)
	mux.HandleFunc("/login", handleLogin)
	mux.HandleFunc("/logout", handleLogout)

	mux.HandleFunc("/personas", handlePeople)
	mux.HandleFunc("/personas/eliminar", handlePersonDelete)

	mux.HandleFunc("/clases", handleClasses)
	mux.HandleFunc("/clases/eliminar", handleClassDelete)

	mux.Handle("/asistencias", requireRegistrar(http.HandlerFunc(handleAttendanceRegister)))
	mux.Handle("/asistencias/toggle", requireRegistrar(http.HandlerFunc(handleAttendanceToggle)))
	mux.Handle("/asistencias/guardar", requireRegistrar(http.HandlerFunc(handleAttendanceSave)))
	mux.HandleFunc("/asistencias/historial", handleAttendanceHistory)

	mux.HandleFunc("/inscripciones", handleEnrollments)
	mux.HandleFunc("/inscripciones/eliminar", handleEnrollmentDelete)

	mux.HandleFunc("/cobros", handleBilling)
	mux.HandleFunc("/cobros/eliminar", handlePaymentDelete)
	mux.HandleFunc("/cobros/resumen", handleBillingSummary)
	mux.HandleFunc("/cobros/historial", handleBillingHistory)

	mux.HandleFunc("/estilos-danza", handleStyles)
	mux.HandleFunc("/estilos-danza/eliminar", handleStyleDelete)

	mux.HandleFunc("/auditoria", handleAudit)

	mux.HandleFunc("/reportes", handleReportDownload)
	mux.HandleFunc("/eventos", handleEvents)
	mux.HandleFunc("/preferencias/sidebar", handleSidebarToggle)
}

// requireRegistrar gates the attendance registration views to the roles
// allowed to mark attendance.
func requireRegistrar(next http.Handler) http.Handler {
	return middleware.RequireRole("administrador", "profesor")(next)
}
