package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

// TestClient_AttachesBearerToken verifies the token travels from the
// context into the Authorization header.
func TestClient_AttachesBearerToken(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"success":true,"data":null}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	ctx := WithToken(context.Background(), "abc123")
	if err := client.Get(ctx, "/Personas", nil, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotAuth != "Bearer abc123" {
		t.Errorf("expected Bearer abc123, got %q", gotAuth)
	}
}

// TestClient_NoTokenNoHeader verifies anonymous calls carry no Authorization.
func TestClient_NoTokenNoHeader(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"success":true}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	if err := client.Get(context.Background(), "/EstilosDanza", nil, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotAuth != "" {
		t.Errorf("expected no Authorization header, got %q", gotAuth)
	}
}

// TestClient_DecodesEnvelopeData verifies the data field is unwrapped.
func TestClient_DecodesEnvelopeData(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":true,"message":"ok","data":{"idPersona":7,"nombre":"Ana"}}`))
	}))
	defer server.Close()

	var out struct {
		ID        int    `json:"idPersona"`
		FirstName string `json:"nombre"`
	}
	client := NewClient(server.URL)
	if err := client.Get(context.Background(), "/Personas/7", nil, &out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.ID != 7 || out.FirstName != "Ana" {
		t.Errorf("unexpected decode: %+v", out)
	}
}

// TestClient_RawBodyFallback verifies non-enveloped responses (the login
// endpoint) decode from the whole body.
func TestClient_RawBodyFallback(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"token":"t1","rol":"administrador"}`))
	}))
	defer server.Close()

	var out struct {
		Token string `json:"token"`
		Role  string `json:"rol"`
	}
	client := NewClient(server.URL)
	if err := client.Post(context.Background(), "/Auth/login", map[string]string{"email": "a"}, &out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Token != "t1" || out.Role != "administrador" {
		t.Errorf("unexpected decode: %+v", out)
	}
}

// TestClient_ErrorTaxonomy verifies status codes map to the typed predicates
// and the envelope message survives.
func TestClient_ErrorTaxonomy(t *testing.T) {
	tests := []struct {
		status    int
		body      string
		predicate func(error) bool
		name      string
		message   string
	}{
		{401, `{"success":false,"message":""}`, IsUnauthorized, "unauthorized", "Sesión expirada"},
		{403, `{"success":false}`, IsForbidden, "forbidden", "No tienes permisos para realizar esta acción"},
		{404, `{"success":false}`, IsNotFound, "notfound", "Recurso no encontrado"},
		{409, `{"success":false,"message":"estilo en uso"}`, IsConflict, "conflict", "estilo en uso"},
		{400, `{"success":false,"message":"monto inválido"}`, IsValidation, "validation", "monto inválido"},
		{500, `{"success":false}`, func(err error) bool { return !IsUnauthorized(err) }, "internal", "Error interno del servidor"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			err := NewClient(server.URL).Get(context.Background(), "/x", nil, nil)
			if err == nil {
				t.Fatal("expected error")
			}
			if !tt.predicate(err) {
				t.Errorf("predicate failed for status %d: %v", tt.status, err)
			}
			if err.Error() != tt.message {
				t.Errorf("expected message %q, got %q", tt.message, err.Error())
			}
		})
	}
}

// TestClient_DetailCode verifies the errors field yields a machine code in
// both shapes the backend emits.
func TestClient_DetailCode(t *testing.T) {
	for body, want := range map[string]string{
		`{"success":false,"errors":{"code":"ESTILO_EN_USO"}}`: "ESTILO_EN_USO",
		`{"success":false,"errors":"DUPLICADO"}`:              "DUPLICADO",
		`{"success":false}`:                                   "",
	} {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusConflict)
			w.Write([]byte(body))
		}))
		err := NewClient(server.URL).Get(context.Background(), "/x", nil, nil)
		server.Close()
		if err == nil {
			t.Fatal("expected error")
		}
		if got := DetailCode(err); got != want {
			t.Errorf("body %s: expected code %q, got %q", body, want, got)
		}
	}
}

// TestParams_SkipsZeroValues verifies optional filters stay off the wire.
func TestParams_SkipsZeroValues(t *testing.T) {
	truthy := true
	q := Params(map[string]any{
		"busqueda":     "ana",
		"idEstudiante": 0,
		"idClase":      4,
		"rol":          "",
		"exitoso":      &truthy,
		"nada":         (*bool)(nil),
	})
	if q.Get("busqueda") != "ana" || q.Get("idClase") != "4" || q.Get("exitoso") != "true" {
		t.Errorf("unexpected params: %v", q)
	}
	for _, absent := range []string{"idEstudiante", "rol", "nada"} {
		if q.Has(absent) {
			t.Errorf("expected %s to be omitted, got %q", absent, q.Get(absent))
		}
	}
}

// TestPageParams_Normalize verifies defaults and clamping.
func TestPageParams_Normalize(t *testing.T) {
	p := PageParams{}.Normalize()
	if p.Page != 1 || p.PageSize != DefaultPageSize {
		t.Errorf("unexpected defaults: %+v", p)
	}
	p = PageParams{Page: 3, PageSize: 1000}.Normalize()
	if p.PageSize != MaxPageSize {
		t.Errorf("expected pageSize clamped to %d, got %d", MaxPageSize, p.PageSize)
	}
}
