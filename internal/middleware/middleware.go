package middleware // import "github.com/Xunop/aldiaa/internal/middleware"

import (
	"context"
	"net/http"
	"time"

	"github.com/Xunop/aldiaa/internal/http/request"
	"github.com/Xunop/aldiaa/internal/log"
	"go.uber.org/zap"
)

func HandleCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Accept")
		if r.Method == http.MethodOptions {
			w.Header().Set("Access-Control-Max-Age", "7200")
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// LoggingRequest stores the client IP in the request context and logs the
// request once it is served.
func LoggingRequest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientIP := request.FindClientIP(r)
		ctx := context.WithValue(r.Context(), request.ClientIPContextKey, clientIP)

		t1 := time.Now()
		defer func() {
			log.Debug("Incoming request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.String("proto", r.Proto),
				zap.String("client_ip", clientIP),
				zap.Duration("duration", time.Since(t1)))
		}()

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
