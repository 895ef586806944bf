package web

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/csrf"
	"github.com/yuin/goldmark"
	goldmarkHTML "github.com/yuin/goldmark/renderer/html"

	"academia/internal/adapters/api"
	"academia/internal/adapters/http/middleware"
	preferenceStore "academia/internal/adapters/storage/preference"
	"academia/internal/application/orchestrators"
	"academia/internal/application/projections"
	"academia/internal/domain/identity"
	domainSession "academia/internal/domain/session"
)

// timeNow is a variable for testability.
var timeNow = time.Now

// validate checks form drafts before they go to the backend. The backend
// validates again; this only catches obvious mistakes early.
var validate = validator.New()

// mdRenderer is a goldmark instance configured for safe HTML output.
// Raw HTML in markdown input is escaped (WithUnsafe is NOT set), preventing XSS.
var mdRenderer = goldmark.New(
	goldmark.WithRendererOptions(
		goldmarkHTML.WithHardWraps(),
	),
)

const templatesDir = "internal/adapters/http/templates"

// flash is a one-shot message carried across a redirect in a cookie.
type flash struct {
	Kind    string `json:"kind"` // "success" or "error"
	Message string `json:"message"`
}

const flashCookieName = "academia_flash"

func setFlash(w http.ResponseWriter, kind, message string) {
	payload, _ := json.Marshal(flash{Kind: kind, Message: message})
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieName,
		Value:    base64.URLEncoding.EncodeToString(payload),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   60,
	})
}

func popFlash(w http.ResponseWriter, r *http.Request) *flash {
	cookie, err := r.Cookie(flashCookieName)
	if err != nil || cookie.Value == "" {
		return nil
	}
	http.SetCookie(w, &http.Cookie{
		Name: flashCookieName, Value: "", Path: "/", MaxAge: -1,
		HttpOnly: true, SameSite: http.SameSiteLaxMode,
	})
	raw, err := base64.URLEncoding.DecodeString(cookie.Value)
	if err != nil {
		return nil
	}
	var f flash
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil
	}
	return &f
}

// sessionAndCtx resolves the current session and returns a request
// context carrying its bearer token for backend calls.
func sessionAndCtx(r *http.Request) (domainSession.Session, *http.Request, bool) {
	s, ok := middleware.GetSessionFromContext(r.Context())
	if !ok {
		return domainSession.Session{}, r, false
	}
	ctx := api.WithToken(r.Context(), s.User.Token)
	return s, r.WithContext(ctx), true
}

// forceLogout tears the session down and sends the user to the login
// page. Used when the backend answers 401 mid-session.
func forceLogout(w http.ResponseWriter, r *http.Request, s domainSession.Session) {
	slog.Info("auth_event", "event", "forced_logout", "person_id", s.User.PersonID)
	_ = services.Sessions.Delete(r.Context(), s.ID)
	services.Book.Drop(s.ID)
	middleware.ClearSessionCookie(w)
	setFlash(w, "error", "Tu sesión ha expirado. Inicia sesión nuevamente.")
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// userMessage maps an error to the text shown in a toast.
func userMessage(err error) string {
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return err.Error()
}

// failBack records the error as a flash and redirects to the given path.
// A backend 401 overrides the redirect with a forced logout.
func failBack(w http.ResponseWriter, r *http.Request, s domainSession.Session, err error, path string) {
	if api.IsUnauthorized(err) {
		forceLogout(w, r, s)
		return
	}
	setFlash(w, "error", userMessage(err))
	http.Redirect(w, r, path, http.StatusSeeOther)
}

// internalError logs the real error and returns a generic message to the client.
func internalError(w http.ResponseWriter, err error) {
	slog.Error("internal_error", "error", err.Error())
	http.Error(w, "internal server error", http.StatusInternalServerError)
}

// renderTemplate renders a page template inside the layout.
func renderTemplate(w http.ResponseWriter, r *http.Request, templateName string, data map[string]any) {
	s, ok := middleware.GetSessionFromContext(r.Context())
	var user identity.User
	if ok {
		user = s.User
	}

	sidebarCollapsed := false
	if ok {
		if v, err := services.Preferences.Get(r.Context(), user.PersonID, preferenceStore.KeySidebarCollapsed); err == nil {
			sidebarCollapsed = v == "1"
		}
	}

	funcMap := template.FuncMap{
		"currentUser":      func() identity.User { return user },
		"isLoggedIn":       func() bool { return ok },
		"isAdmin":          func() bool { return user.Admin() },
		"canRegister":      func() bool { return user.CanRegisterAttendance() },
		"sidebarCollapsed": func() bool { return sidebarCollapsed },
		"csrfToken":        func() string { return csrf.Token(r) },
		"renderMarkdown": func(md string) template.HTML {
			var buf bytes.Buffer
			if err := mdRenderer.Convert([]byte(md), &buf); err != nil {
				return template.HTML(template.HTMLEscapeString(md))
			}
			return template.HTML(buf.String())
		},
		"add":         func(a, b int) int { return a + b },
		"sub":         func(a, b int) int { return a - b },
		"money":       func(v float64) string { return fmt.Sprintf("$%.2f", v) },
		"queryEscape": url.QueryEscape,
		"pageQuery": func(page int, q url.Values) template.URL {
			next := url.Values{}
			for key, values := range q {
				for _, v := range values {
					next.Add(key, v)
				}
			}
			next.Set("page", strconv.Itoa(page))
			return template.URL(next.Encode())
		},
	}

	if data == nil {
		data = map[string]any{}
	}
	if _, present := data["Flash"]; !present {
		data["Flash"] = popFlash(w, r)
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
	}
}

// handleLogin handles GET (form) and POST (credentials) for /login.
func handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method == "GET" {
		if _, ok := middleware.GetSessionFromContext(r.Context()); ok {
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
		renderTemplate(w, r, "login.html", nil)
		return
	}

	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}

	result, err := orchestrators.ExecuteLogin(r.Context(), orchestrators.LoginInput{
		Email:    r.FormValue("Email"),
		Password: r.FormValue("Password"),
	}, orchestrators.LoginDeps{
		Auth:         services.Auth,
		SessionStore: services.Sessions,
	})
	if err != nil {
		renderTemplate(w, r, "login.html", map[string]any{
			"Error": userMessage(err),
			"Email": r.FormValue("Email"),
		})
		return
	}

	middleware.SetSessionCookie(w, result.Session.ID)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// handleLogout tears down the current session.
func handleLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if s, ok := middleware.GetSessionFromContext(r.Context()); ok {
		slog.Info("auth_event", "event", "logout", "person_id", s.User.PersonID)
		_ = services.Sessions.Delete(r.Context(), s.ID)
		services.Book.Drop(s.ID)
	}
	middleware.ClearSessionCookie(w)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// handleDashboard renders the landing page stats.
func handleDashboard(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	s, r, ok := sessionAndCtx(r)
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	result := projections.QueryGetDashboard(r.Context(), projections.GetDashboardDeps{
		Classes: services.Classes,
		Billing: services.Billing,
	}, timeNow())

	if api.IsUnauthorized(result.StatsErr) || api.IsUnauthorized(result.SummaryErr) {
		forceLogout(w, r, s)
		return
	}

	renderTemplate(w, r, "dashboard.html", map[string]any{
		"Stats":        result.Stats,
		"StatsErr":     result.StatsErr != nil,
		"PaidCount":    result.PaidCount,
		"UnpaidCount":  result.UnpaidCount,
		"SummaryMonth": result.SummaryMonth,
		"SummaryErr":   result.SummaryErr != nil,
	})
}

// handleSidebarToggle flips the persisted sidebar preference.
func handleSidebarToggle(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	s, ok := middleware.GetSessionFromContext(r.Context())
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	current, err := services.Preferences.Get(r.Context(), s.User.PersonID, preferenceStore.KeySidebarCollapsed)
	if err != nil {
		internalError(w, err)
		return
	}
	next := "1"
	if current == "1" {
		next = "0"
	}
	if err := services.Preferences.Set(r.Context(), s.User.PersonID, preferenceStore.KeySidebarCollapsed, next); err != nil {
		internalError(w, err)
		return
	}
	http.Redirect(w, r, redirectTarget(r), http.StatusSeeOther)
}

// redirectTarget picks a same-site path to return to after an action.
func redirectTarget(r *http.Request) string {
	if ref := r.Header.Get("Referer"); ref != "" {
		if u, err := url.Parse(ref); err == nil && u.Path != "" && strings.HasPrefix(u.Path, "/") {
			target := u.Path
			if u.RawQuery != "" {
				target += "?" + u.RawQuery
			}
			return target
		}
	}
	return "/"
}
