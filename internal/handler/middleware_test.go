package handler

import (
	"net/http/httptest"
	"testing"

	"github.com/go-playground/assert/v2"
	"github.com/google/uuid"
)

func TestRequestLogger_AssignsRequestID(t *testing.T) {
	r := newTestRouter(newTestDeps())

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/health", nil)
	r.ServeHTTP(w, req)

	_, err := uuid.Parse(w.Header().Get(requestIDHeader))
	assert.Equal(t, nil, err)
}

func TestRequestLogger_KeepsIncomingID(t *testing.T) {
	r := newTestRouter(newTestDeps())

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/health", nil)
	req.Header.Set(requestIDHeader, "req-123")
	r.ServeHTTP(w, req)

	assert.Equal(t, "req-123", w.Header().Get(requestIDHeader))
}
