package response // import "github.com/Xunop/aldiaa/internal/http/response"

import (
	"io"
	"net/http"
	"strings"

	"github.com/Xunop/aldiaa/internal/config"
	"github.com/Xunop/aldiaa/internal/log"
	"github.com/andybalholm/brotli"
	"go.uber.org/zap"
)

const compressionThreshold = 1024

// Builder generates HTTP responses.
type Builder struct {
	w                 http.ResponseWriter
	r                 *http.Request
	statusCode        int
	headers           map[string]string
	enableCompression bool
	body              interface{}
}

// New creates a new response builder.
func New(w http.ResponseWriter, r *http.Request) *Builder {
	return &Builder{
		w:                 w,
		r:                 r,
		statusCode:        http.StatusOK,
		headers:           make(map[string]string),
		enableCompression: config.Opts == nil || config.Opts.CompressResponses,
	}
}

// WithStatus uses the given status code to build the response.
func (b *Builder) WithStatus(statusCode int) *Builder {
	b.statusCode = statusCode
	return b
}

// WithHeader adds the given HTTP header to the response.
func (b *Builder) WithHeader(key, value string) *Builder {
	b.headers[key] = value
	return b
}

// WithBody uses the given body to build the response.
func (b *Builder) WithBody(body interface{}) *Builder {
	b.body = body
	return b
}

// WithoutCompression disables HTTP compression.
func (b *Builder) WithoutCompression() *Builder {
	b.enableCompression = false
	return b
}

// Write generates the HTTP response.
func (b *Builder) Write() {
	if b.body == nil {
		b.writeHeaders()
		return
	}

	switch v := b.body.(type) {
	case []byte:
		b.compress(v)
	case string:
		b.compress([]byte(v))
	case error:
		b.compress([]byte(v.Error()))
	case io.Reader:
		// Compression not implemented in this case
		b.writeHeaders()
		if _, err := io.Copy(b.w, v); err != nil {
			log.Error("Unable to write response body", zap.Error(err))
		}
	}
}

func (b *Builder) writeHeaders() {
	b.headers["X-Content-Type-Options"] = "nosniff"
	b.headers["X-Frame-Options"] = "DENY"

	for key, value := range b.headers {
		b.w.Header().Set(key, value)
	}

	b.w.WriteHeader(b.statusCode)
}

func (b *Builder) compress(data []byte) {
	if b.enableCompression && len(data) > compressionThreshold {
		acceptEncoding := b.r.Header.Get("Accept-Encoding")
		if strings.Contains(acceptEncoding, "br") {
			b.headers["Content-Encoding"] = "br"
			b.headers["Vary"] = "Accept-Encoding"
			b.writeHeaders()

			brotliWriter := brotli.NewWriterLevel(b.w, brotli.BestSpeed)
			defer brotliWriter.Close()
			brotliWriter.Write(data)
			return
		}
	}

	b.writeHeaders()
	b.w.Write(data)
}
