package server

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	v1 "github.com/Xunop/aldiaa/internal/api/v1"
	"github.com/Xunop/aldiaa/internal/catalog"
	"github.com/Xunop/aldiaa/internal/session"
	"github.com/Xunop/aldiaa/internal/store"
	"github.com/Xunop/aldiaa/internal/store/db"
	"github.com/Xunop/aldiaa/internal/version"
)

type brokenStore struct{}

func (brokenStore) Ping(context.Context) error { return errors.New("gone") }

func newTestHandler(t *testing.T) (*store.Store, *v1.Handler) {
	t.Helper()
	d, err := db.NewDB(filepath.Join(t.TempDir(), "server_test.db"))
	if err != nil {
		t.Fatal(err)
	}
	if err := d.Migrate(context.Background()); err != nil {
		t.Fatal(err)
	}
	s := store.NewStore(d.DB)
	t.Cleanup(func() { s.Close() })
	holder := session.NewHolder(s, 0)
	return s, v1.NewHandler(catalog.New(s, holder, nil, 0), holder, nil)
}

func TestHealthcheckAndVersion(t *testing.T) {
	s, h := newTestHandler(t)
	handler := setupHandler(s, h)

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthcheck", nil))
	if w.Code != http.StatusOK || w.Body.String() != "OK" {
		t.Fatalf("unexpected healthcheck response: %d %q", w.Code, w.Body.String())
	}

	w = httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/version", nil))
	if w.Body.String() != version.GetCurrentVersion() {
		t.Fatalf("unexpected version %q", w.Body.String())
	}
}

func TestHealthcheckFailure(t *testing.T) {
	_, h := newTestHandler(t)
	handler := setupHandler(brokenStore{}, h)

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthcheck", nil))
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("unexpected status %d", w.Code)
	}
}

func TestAPIMounted(t *testing.T) {
	s, h := newTestHandler(t)
	handler := setupHandler(s, h)

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/books", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", w.Code)
	}
}
