package server // import "github.com/Xunop/aldiaa/internal/server"

import (
	"context"
	"net/http"
	"time"

	v1 "github.com/Xunop/aldiaa/internal/api/v1"
	"github.com/Xunop/aldiaa/internal/config"
	"github.com/Xunop/aldiaa/internal/log"
	"github.com/Xunop/aldiaa/internal/version"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

const shutdownTimeout = 5 * time.Second

// Pinger reports whether the record store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// StartServer starts the HTTP server. It shuts down once ctx is done and
// closes the returned channel when it has stopped.
func StartServer(ctx context.Context, store Pinger, apiHandler *v1.Handler) (*http.Server, <-chan struct{}) {
	server := &http.Server{
		Addr:              config.Opts.Addr(),
		Handler:           setupHandler(store, apiHandler),
		ReadHeaderTimeout: 10 * time.Second,
	}

	done := make(chan struct{})
	startHTTPServer(server)
	go func() {
		defer close(done)
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Error("HTTP server shutdown error", zap.Error(err))
			return
		}
		log.Info("HTTP server stopped")
	}()

	return server, done
}

func startHTTPServer(server *http.Server) {
	go func() {
		log.Info("Starting HTTP server", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatal("HTTP server error", zap.Error(err))
		}
	}()
}

func setupHandler(store Pinger, apiHandler *v1.Handler) http.Handler {
	router := mux.NewRouter()

	// Setup the API routes
	v1.Server(router, apiHandler)

	router.HandleFunc("/healthcheck", func(w http.ResponseWriter, r *http.Request) {
		if err := store.Ping(r.Context()); err != nil {
			log.Error("Healthcheck failed", zap.Error(err))
			http.Error(w, "Database Connection Error", http.StatusInternalServerError)
			return
		}

		w.Write([]byte("OK"))
	}).Name("healthcheck")

	router.HandleFunc("/version", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(version.GetCurrentVersion()))
	}).Name("version")

	return router
}
