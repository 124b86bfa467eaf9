package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Xunop/aldiaa/internal/http/request"
)

func TestHandleCORSPreflight(t *testing.T) {
	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { called = true })

	r := httptest.NewRequest(http.MethodOptions, "/api/v1/books", nil)
	w := httptest.NewRecorder()
	HandleCORS(next).ServeHTTP(w, r)

	if called {
		t.Fatal("preflight must not reach the handler")
	}
	if w.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", w.Code)
	}
	if w.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Fatal("missing CORS header")
	}
}

func TestLoggingRequestStoresClientIP(t *testing.T) {
	var seen string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = request.ClientIP(r)
	})

	r := httptest.NewRequest(http.MethodGet, "/api/v1/books", nil)
	r.Header.Set("X-Real-Ip", "198.51.100.4")
	LoggingRequest(next).ServeHTTP(httptest.NewRecorder(), r)

	if seen != "198.51.100.4" {
		t.Fatalf("unexpected client ip %q", seen)
	}
}
