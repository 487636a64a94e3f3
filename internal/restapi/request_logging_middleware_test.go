package restapi

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"schedules.onebusaway.org/internal/logging"
)

func TestRequestLoggingMiddleware(t *testing.T) {
	t.Run("logs HTTP request details", func(t *testing.T) {
		var buf bytes.Buffer
		logger := logging.NewStructuredLogger(&buf, slog.LevelInfo)

		testHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("test response"))
		})

		handler := NewRequestLoggingMiddleware(logger)(testHandler)

		req := httptest.NewRequest("GET", "/schedules/R1?key=secret-key", nil)
		req.Header.Set("User-Agent", "test-client/1.0")
		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Equal(t, "test response", recorder.Body.String())

		output := buf.String()
		assert.Contains(t, output, `"level":"INFO"`)
		assert.Contains(t, output, `"msg":"http_request"`)
		assert.Contains(t, output, `"method":"GET"`)
		assert.Contains(t, output, `"path":"/schedules/R1"`)
		assert.Contains(t, output, `"status":200`)
		assert.Contains(t, output, `"bytes":13`)
		assert.Contains(t, output, `"user_agent":"test-client/1.0"`)
		assert.Contains(t, output, `"duration_ms":`)
		assert.Contains(t, output, `"component":"http_server"`)
		assert.NotContains(t, output, "secret-key")
	})

	t.Run("records status written by the handler", func(t *testing.T) {
		var buf bytes.Buffer
		logger := logging.NewStructuredLogger(&buf, slog.LevelInfo)

		handler := NewRequestLoggingMiddleware(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
		}))
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/schedules/x", nil))

		assert.Contains(t, buf.String(), `"status":400`)
	})

	t.Run("handlers can reach the logger through the context", func(t *testing.T) {
		var buf bytes.Buffer
		logger := logging.NewStructuredLogger(&buf, slog.LevelInfo)

		handler := NewRequestLoggingMiddleware(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logging.FromContext(r.Context()).Info("inside handler")
		}))
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/healthz", nil))

		assert.Contains(t, buf.String(), `"msg":"inside handler"`)
	})
}
