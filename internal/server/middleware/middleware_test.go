package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newBufferLogger() (*slog.Logger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug})), buf
}

func TestLogging(t *testing.T) {
	tests := []struct {
		name      string
		path      string
		wantLevel string
		status    int
		wantLog   bool
	}{
		{name: "ok", path: "/api/v1/status", status: http.StatusOK, wantLog: true, wantLevel: "level=INFO"},
		{name: "client error", path: "/api/v1/status", status: http.StatusNotFound, wantLog: true, wantLevel: "level=WARN"},
		{name: "server error", path: "/api/v1/status", status: http.StatusServiceUnavailable, wantLog: true, wantLevel: "level=ERROR"},
		{name: "skipped path", path: "/api/v1/health", status: http.StatusOK, wantLog: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, buf := newBufferLogger()
			handler := Logging(logger, "/api/v1/health")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte("body"))
			}))

			w := httptest.NewRecorder()
			handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.path, nil))

			assert.Equal(t, tt.status, w.Code)
			assert.NotEmpty(t, w.Header().Get(RequestIDHeader))

			out := buf.String()
			if !tt.wantLog {
				assert.Empty(t, out)
				return
			}
			assert.Contains(t, out, tt.wantLevel)
			assert.Contains(t, out, "path="+tt.path)
			assert.Contains(t, out, "bytes_written=4")
		})
	}
}

func TestLogging_KeepsRequestID(t *testing.T) {
	logger, buf := newBufferLogger()
	handler := Logging(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/status", nil)
	req.Header.Set(RequestIDHeader, "req-42")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, "req-42", w.Header().Get(RequestIDHeader))
	assert.Contains(t, buf.String(), "request_id=req-42")
}

func TestRecovery(t *testing.T) {
	logger, buf := newBufferLogger()
	handler := Recovery(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	w := httptest.NewRecorder()
	assert.NotPanics(t, func() {
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/status", nil))
	})

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"internal server error"}`, w.Body.String())
	assert.True(t, strings.Contains(buf.String(), "panic=boom"))
}

func TestRecovery_NoPanic(t *testing.T) {
	logger, buf := newBufferLogger()
	handler := Recovery(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, buf.String())
}
