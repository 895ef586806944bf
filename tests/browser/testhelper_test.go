package browser_test

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/playwright-community/playwright-go"

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

// fakeBackend is an in-process stand-in for the remote academy API. It
// serves canned data wrapped in the backend's envelope and records the
// attendance writes it receives.
type fakeBackend struct {
	mu sync.Mutex

	// BlockRegistration makes /Asistencias/clase/{id}/validar refuse.
	BlockRegistration bool

	// CreatedAttendances collects every POST /Asistencias payload.
	CreatedAttendances []map[string]any

	// DeletedAttendances collects every DELETE /Asistencias/{id} id.
	DeletedAttendances []string

	server *httptest.Server
}

func envelope(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"success":   true,
		"message":   "",
		"data":      data,
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

// paged wraps rows in the backend's paginated list shape. The real list
// endpoints all answer this way; the canned data fits on one page.
func paged(w http.ResponseWriter, rows []any) {
	envelope(w, map[string]any{
		"data": rows, "totalRecords": len(rows), "page": 1, "pageSize": 10,
		"totalPages": 1, "hasNextPage": false, "hasPreviousPage": false,
	})
}

func newFakeBackend(t *testing.T) *fakeBackend {
	t.Helper()
	fb := &fakeBackend{}

	teacher := map[string]any{"idPersona": 2, "nombre": "Marta", "apellido": "Ríos", "rol": "profesor", "activo": true, "nombreCompleto": "Marta Ríos"}
	ana := map[string]any{"idPersona": 3, "nombre": "Ana", "apellido": "García", "rol": "estudiante", "activo": true, "nombreCompleto": "Ana García"}
	luis := map[string]any{"idPersona": 4, "nombre": "Luis", "apellido": "Pérez", "rol": "estudiante", "activo": true, "nombreCompleto": "Luis Pérez"}
	style := map[string]any{"idEstilo": 1, "nombreEsti": "Ballet", "nivelDificultad": "Principiante", "activo": true, "descripcion": "Técnica **clásica**"}
	ballet := map[string]any{
		"idClase": 10, "nombreClase": "Ballet Infantil", "diaSemana": "Lunes", "hora": "17:00:00",
		"duracionMinutos": 60, "capacidadMax": 20, "precioMensuClas": 35.0, "activa": true,
		"profesor": teacher, "estiloDanza": style, "estudiantesInscritos": 2,
	}

	mux := http.NewServeMux()

	mux.HandleFunc("/Auth/login", func(w http.ResponseWriter, r *http.Request) {
		var creds struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		json.NewDecoder(r.Body).Decode(&creds)
		if creds.Password != "Clave123!" {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]any{"success": false, "message": "Credenciales inválidas"})
			return
		}
		// Opaque token: the console decodes claims opportunistically and
		// treats unreadable tokens as live.
		json.NewEncoder(w).Encode(map[string]any{
			"token": "test-token", "nombre": "Sofía", "apellido": "Admin",
			"email": creds.Email, "rol": "administrador", "idPersona": 1,
		})
	})

	mux.HandleFunc("/Personas", func(w http.ResponseWriter, r *http.Request) {
		paged(w, []any{teacher, ana, luis})
	})
	mux.HandleFunc("/Personas/profesores", func(w http.ResponseWriter, r *http.Request) {
		envelope(w, []any{teacher})
	})
	mux.HandleFunc("/Personas/estudiantes", func(w http.ResponseWriter, r *http.Request) {
		envelope(w, []any{ana, luis})
	})

	mux.HandleFunc("/Clases", func(w http.ResponseWriter, r *http.Request) {
		paged(w, []any{ballet})
	})
	mux.HandleFunc("/Clases/estadisticas", func(w http.ResponseWriter, r *http.Request) {
		envelope(w, map[string]any{
			"totalClases": 1, "clasesActivas": 1, "totalEstudiantes": 2,
			"capacidadTotal": 20, "cuposDisponibles": 18, "porcentajeOcupacion": 10.0,
			"clasesPorEstilo": []any{map[string]any{"idEstilo": 1, "cantidadClases": 1, "estudiantesInscritos": 2}},
		})
	})
	mux.HandleFunc("/Clases/10/estudiantes", func(w http.ResponseWriter, r *http.Request) {
		// Ana appears twice on purpose: the console must dedupe.
		envelope(w, []any{ana, ana, luis})
	})

	mux.HandleFunc("/Asistencias", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			var payload map[string]any
			json.NewDecoder(r.Body).Decode(&payload)
			fb.mu.Lock()
			fb.CreatedAttendances = append(fb.CreatedAttendances, payload)
			id := 100 + len(fb.CreatedAttendances)
			fb.mu.Unlock()
			envelope(w, map[string]any{
				"idAsist": id, "fechaAsis": payload["fechaAsis"], "estadoAsis": payload["estadoAsis"],
			})
			return
		}
		paged(w, []any{})
	})
	mux.HandleFunc("/Asistencias/", func(w http.ResponseWriter, r *http.Request) {
		rest := strings.TrimPrefix(r.URL.Path, "/Asistencias/")
		switch {
		case rest == "clase/10/validar":
			fb.mu.Lock()
			blocked := fb.BlockRegistration
			fb.mu.Unlock()
			envelope(w, map[string]any{
				"puedeRegistrar": !blocked, "mensaje": "",
				"diaSemanaClase": "Lunes", "diaActual": "Martes",
			})
		case strings.HasPrefix(rest, "clase/"):
			envelope(w, []any{})
		case r.Method == http.MethodDelete:
			fb.mu.Lock()
			fb.DeletedAttendances = append(fb.DeletedAttendances, rest)
			fb.mu.Unlock()
			envelope(w, nil)
		default:
			envelope(w, []any{})
		}
	})

	mux.HandleFunc("/Inscripciones", func(w http.ResponseWriter, r *http.Request) {
		paged(w, []any{map[string]any{
			"idInsc": 50, "fechaInsc": "2026-02-01", "estado": "activa",
			"estudiante": ana, "clase": ballet,
		}})
	})

	mux.HandleFunc("/Cobros", func(w http.ResponseWriter, r *http.Request) {
		paged(w, []any{map[string]any{
			"idCobro": 70, "monto": 35.0, "mesCorrespondiente": "Agosto", "anioCorrespondiente": 2026,
			"estadoCobro": "pagado", "tipoCobro": "mensual", "metodoPago": "Efectivo",
			"fechaPago": "2026-08-05", "estudiante": ana,
		}})
	})
	mux.HandleFunc("/Cobros/resumen-pagos", func(w http.ResponseWriter, r *http.Request) {
		envelope(w, []any{
			map[string]any{"idEstudiante": 3, "nombreCompleto": "Ana García", "pagoMes": true, "tipoPago": "mensual"},
			map[string]any{"idEstudiante": 4, "nombreCompleto": "Luis Pérez", "pagoMes": false, "tipoPago": "mensual"},
		})
	})

	mux.HandleFunc("/EstilosDanza", func(w http.ResponseWriter, r *http.Request) {
		paged(w, []any{style})
	})
	mux.HandleFunc("/EstilosDanza/activos", func(w http.ResponseWriter, r *http.Request) {
		envelope(w, []any{style})
	})

	mux.HandleFunc("/Audit", func(w http.ResponseWriter, r *http.Request) {
		envelope(w, map[string]any{
			"logs": []any{map[string]any{
				"idAudit": 1, "tablaAfectada": "Personas", "tipoOperacion": "INSERT",
				"fechaOperacion": "2026-08-29T10:00:00", "nombreUsuario": "Sofía Admin", "exitoso": true,
			}},
			"total": 1, "pagina": 1, "tamañoPagina": 10, "totalPaginas": 1,
		})
	})
	mux.HandleFunc("/Audit/resumen", func(w http.ResponseWriter, r *http.Request) {
		envelope(w, map[string]any{"totalOperaciones": 12, "totalInserts": 5, "totalUpdates": 4, "totalDeletes": 3})
	})
	mux.HandleFunc("/Audit/tablas", func(w http.ResponseWriter, r *http.Request) {
		envelope(w, []string{"Personas", "Clases"})
	})
	mux.HandleFunc("/Audit/tipos-operacion", func(w http.ResponseWriter, r *http.Request) {
		envelope(w, []string{"INSERT", "UPDATE", "DELETE"})
	})

	fb.server = httptest.NewServer(mux)
	t.Cleanup(fb.server.Close)
	return fb
}

// testApp holds the running console, its fake backend, and Playwright handles.
type testApp struct {
	BaseURL string
	Backend *fakeBackend
	DB      *sql.DB
	Server  *http.Server
	PW      *playwright.Playwright
	Browser playwright.Browser
}

// newTestApp wires the console against a fake backend and starts it on a
// free port.
func newTestApp(t *testing.T) *testApp {
	t.Helper()

	backend := newFakeBackend(t)

	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")
	dsn := dbPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(ON)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		t.Fatalf("failed to open test DB: %v", err)
	}
	if err := storage.InitDB(db); err != nil {
		t.Fatalf("failed to initialize test DB: %v", err)
	}

	timedDB := storage.NewTimedDB(db)
	client := api.NewClient(backend.server.URL)

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
		Sessions:    sessionStore.NewSQLiteStore(timedDB),
		Preferences: preferenceStore.NewSQLiteStore(timedDB),
		Book:        registration.NewBook(),
		Hub:         push.NewHub(),
	}

	// Find a free port
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("failed to find free port: %v", err)
	}
	port := listener.Addr().(*net.TCPAddr).Port
	listener.Close()

	// Change to project root so relative template/static paths work
	projectRoot := findProjectRoot(t)
	origDir, _ := os.Getwd()
	if err := os.Chdir(projectRoot); err != nil {
		t.Fatalf("failed to chdir to project root: %v", err)
	}
	t.Cleanup(func() { os.Chdir(origDir) })

	t.Setenv("ACADEMIA_TRUSTED_ORIGINS", fmt.Sprintf("127.0.0.1:%d,localhost:%d", port, port))

	mux := web.NewMux("static", services)
	srv := &http.Server{
		Addr:    fmt.Sprintf("127.0.0.1:%d", port),
		Handler: mux,
	}
	go func() {
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			log.Printf("test server error: %v", err)
		}
	}()

	// Wait for server to be ready
	baseURL := fmt.Sprintf("http://127.0.0.1:%d", port)
	for i := 0; i < 50; i++ {
		resp, err := http.Get(baseURL + "/login")
		if err == nil {
			resp.Body.Close()
			break
		}
		time.Sleep(100 * time.Millisecond)
	}

	pw, err := playwright.Run()
	if err != nil {
		t.Fatalf("failed to start Playwright: %v", err)
	}
	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(true),
	})
	if err != nil {
		t.Fatalf("failed to launch browser: %v", err)
	}

	app := &testApp{
		BaseURL: baseURL,
		Backend: backend,
		DB:      db,
		Server:  srv,
		PW:      pw,
		Browser: browser,
	}

	t.Cleanup(func() {
		browser.Close()
		pw.Stop()
		srv.Close()
		db.Close()
	})

	return app
}

// newPage creates a new browser page (tab).
func (a *testApp) newPage(t *testing.T) playwright.Page {
	t.Helper()
	page, err := a.Browser.NewPage()
	if err != nil {
		t.Fatalf("failed to create page: %v", err)
	}
	t.Cleanup(func() { page.Close() })
	return page
}

// login navigates to the login page and signs in as the admin account the
// fake backend accepts.
func (a *testApp) login(t *testing.T, page playwright.Page) {
	t.Helper()
	if _, err := page.Goto(a.BaseURL + "/login"); err != nil {
		t.Fatalf("failed to navigate to login: %v", err)
	}
	if err := page.Locator("input[name=Email]").Fill("sofia@academia.test"); err != nil {
		t.Fatalf("failed to fill email: %v", err)
	}
	if err := page.Locator("input[name=Password]").Fill("Clave123!"); err != nil {
		t.Fatalf("failed to fill password: %v", err)
	}
	if err := page.Locator("button[type=submit]").Click(); err != nil {
		t.Fatalf("failed to click login: %v", err)
	}
	if err := page.WaitForURL(a.BaseURL+"/", playwright.PageWaitForURLOptions{
		Timeout: playwright.Float(10000),
	}); err != nil {
		t.Fatalf("login did not redirect to dashboard: %v", err)
	}
}

// findProjectRoot walks up from the working directory to find the project root (contains go.mod).
func findProjectRoot(t *testing.T) string {
	t.Helper()
	dir, err := os.Getwd()
	if err != nil {
		t.Fatalf("failed to get working directory: %v", err)
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			t.Fatalf("could not find project root (go.mod) from working directory")
		}
		dir = parent
	}
}
