package v1 // import "github.com/Xunop/aldiaa/internal/api/v1"

import (
	"net/http"

	"github.com/Xunop/aldiaa/internal/catalog"
	"github.com/Xunop/aldiaa/internal/middleware"
	"github.com/Xunop/aldiaa/internal/session"
	"github.com/gorilla/mux"
)

// SyncIndicator reports whether the mock sync is busy.
type SyncIndicator interface {
	Syncing() bool
}

type Handler struct {
	catalog *catalog.Catalog
	session *session.Holder
	sync    SyncIndicator
}

// NewHandler is a constructor for the v1.Handler
func NewHandler(c *catalog.Catalog, holder *session.Holder, sync SyncIndicator) *Handler {
	return &Handler{
		catalog: c,
		session: holder,
		sync:    sync,
	}
}

func Server(router *mux.Router, handler *Handler) {
	sr := router.PathPrefix("/api/v1").Subrouter()
	sr.Use(middleware.HandleCORS)
	sr.Use(middleware.LoggingRequest)
	sr.Methods(http.MethodOptions)

	sr.HandleFunc("/books", handler.listBooks).Methods(http.MethodGet)
	sr.HandleFunc("/books", handler.createBook).Methods(http.MethodPost)
	sr.HandleFunc("/books/{id}", handler.getBook).Methods(http.MethodGet)
	sr.HandleFunc("/books/{id}", handler.updateBook).Methods(http.MethodPut)
	sr.HandleFunc("/books/{id}", handler.deleteBook).Methods(http.MethodDelete)
	sr.HandleFunc("/stats", handler.getStats).Methods(http.MethodGet)

	sr.HandleFunc("/session", handler.getSession).Methods(http.MethodGet)
	sr.HandleFunc("/session", handler.logout).Methods(http.MethodDelete)
	sr.HandleFunc("/session/login", handler.login).Methods(http.MethodPost)
	sr.HandleFunc("/sync", handler.getSyncStatus).Methods(http.MethodGet)
}
