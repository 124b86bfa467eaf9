package response

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Xunop/aldiaa/internal/http/request"
	"github.com/Xunop/aldiaa/internal/log"
	"go.uber.org/zap"
)

const contentTypeHeader = `application/json`

// OK creates a new JSON response with a 200 status code.
func OK(w http.ResponseWriter, r *http.Request, body interface{}) {
	builder := New(w, r)
	builder.WithHeader("Content-Type", contentTypeHeader)
	builder.WithBody(toJSON(body))
	builder.Write()
}

// Created sends a created response to the client.
func Created(w http.ResponseWriter, r *http.Request, body interface{}) {
	builder := New(w, r)
	builder.WithStatus(http.StatusCreated)
	builder.WithHeader("Content-Type", contentTypeHeader)
	builder.WithBody(toJSON(body))
	builder.Write()
}

// NoContent sends a no content response to the client.
func NoContent(w http.ResponseWriter, r *http.Request) {
	builder := New(w, r)
	builder.WithStatus(http.StatusNoContent)
	builder.WithHeader("Content-Type", contentTypeHeader)
	builder.Write()
}

// ServerError sends an internal error to the client.
func ServerError(w http.ResponseWriter, r *http.Request, err error) {
	log.Error(http.StatusText(http.StatusInternalServerError),
		zap.Error(err),
		zap.String("client_ip", request.FindClientIP(r)),
		zap.String("request.method", r.Method),
		zap.String("request.uri", r.RequestURI),
		zap.String("request.user_agent", r.UserAgent()),
		zap.Int("response.status_code", http.StatusInternalServerError),
	)

	builder := New(w, r)
	builder.WithStatus(http.StatusInternalServerError)
	builder.WithHeader("Content-Type", contentTypeHeader)
	builder.WithBody(toJSONError(err))
	builder.Write()
}

// BadRequest sends a bad request error to the client.
func BadRequest(w http.ResponseWriter, r *http.Request, err error) {
	log.Warn(http.StatusText(http.StatusBadRequest),
		zap.Error(err),
		zap.String("client_ip", request.FindClientIP(r)),
		zap.String("request.method", r.Method),
		zap.String("request.uri", r.RequestURI),
		zap.String("request.user_agent", r.UserAgent()),
		zap.Int("response.status_code", http.StatusBadRequest),
	)

	builder := New(w, r)
	builder.WithStatus(http.StatusBadRequest)
	builder.WithHeader("Content-Type", contentTypeHeader)
	builder.WithBody(toJSONError(err))
	builder.Write()
}

// NotFound sends a page not found error to the client.
func NotFound(w http.ResponseWriter, r *http.Request) {
	log.Warn(http.StatusText(http.StatusNotFound),
		zap.String("client_ip", request.FindClientIP(r)),
		zap.String("request.method", r.Method),
		zap.String("request.uri", r.RequestURI),
		zap.String("request.user_agent", r.UserAgent()),
		zap.Int("response.status_code", http.StatusNotFound),
	)

	builder := New(w, r)
	builder.WithStatus(http.StatusNotFound)
	builder.WithHeader("Content-Type", contentTypeHeader)
	builder.WithBody(toJSONError(errors.New("resource not found")))
	builder.Write()
}

// Conflict sends a conflict error to the client. extra is merged into the
// error body under the given key when not nil.
func Conflict(w http.ResponseWriter, r *http.Request, err error, key string, extra interface{}) {
	log.Warn(http.StatusText(http.StatusConflict),
		zap.Error(err),
		zap.String("client_ip", request.FindClientIP(r)),
		zap.String("request.method", r.Method),
		zap.String("request.uri", r.RequestURI),
		zap.Int("response.status_code", http.StatusConflict),
	)

	body := map[string]interface{}{"error_message": err.Error()}
	if extra != nil {
		body[key] = extra
	}

	builder := New(w, r)
	builder.WithStatus(http.StatusConflict)
	builder.WithHeader("Content-Type", contentTypeHeader)
	builder.WithBody(toJSON(body))
	builder.Write()
}

func toJSONError(err error) []byte {
	type errorMsg struct {
		ErrorMessage string `json:"error_message"`
	}

	return toJSON(errorMsg{ErrorMessage: err.Error()})
}

func toJSON(v interface{}) []byte {
	b, err := json.Marshal(v)
	if err != nil {
		log.Error("Unable to marshal JSON response", zap.Error(err))
		return []byte("")
	}

	return b
}
