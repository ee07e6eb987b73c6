package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestClientIPMiddleware(t *testing.T) {
	var got string
	handler := ClientIPMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = ClientIP(r.Context())
	}))

	t.Run("ForwardedFor", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
		handler.ServeHTTP(httptest.NewRecorder(), req)
		if got != "203.0.113.7" {
			t.Errorf("expected first forwarded address, got %q", got)
		}
	})

	t.Run("RemoteAddr", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "192.0.2.4:51234"
		handler.ServeHTTP(httptest.NewRecorder(), req)
		if got != "192.0.2.4" {
			t.Errorf("expected remote host, got %q", got)
		}
	})

	t.Run("Fallback", func(t *testing.T) {
		if ip := ClientIP(httptest.NewRequest(http.MethodGet, "/", nil).Context()); ip != "unknown" {
			t.Errorf("expected unknown, got %q", ip)
		}
	})
}
