package unit

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/csrf"

	"github.com/dstokesj/loginbench/internal/config"
	webmiddleware "github.com/dstokesj/loginbench/internal/web/middleware"
)

// TestCSRFTokenGeneration verifies that CSRF middleware generates valid tokens
func TestCSRFTokenGeneration(t *testing.T) {
	secret := []byte("test-secret-key-32-bytes-long!!!")

	csrfMiddleware := webmiddleware.CSRFProtection(secret, false)

	var token1, token2 string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := csrf.Token(r)
		if token == "" {
			t.Error("CSRF token is empty")
		}
		if token1 == "" {
			token1 = token
		} else {
			token2 = token
		}
		w.WriteHeader(http.StatusOK)
	})

	protectedHandler := csrfMiddleware(handler)

	req1 := httptest.NewRequest("GET", "/", nil)
	w1 := httptest.NewRecorder()
	protectedHandler.ServeHTTP(w1, req1)

	if token1 == "" {
		t.Fatal("Expected CSRF token to be generated, got empty string")
	}
	if len(token1) < 20 {
		t.Errorf("CSRF token too short: got %d bytes, expected at least 20", len(token1))
	}

	// Token differs per session
	req2 := httptest.NewRequest("GET", "/", nil)
	w2 := httptest.NewRecorder()
	protectedHandler.ServeHTTP(w2, req2)

	if token2 == "" {
		t.Fatal("Expected CSRF token to be generated for second request, got empty string")
	}
	if token1 == token2 {
		t.Error("Expected different tokens for different sessions, got same token")
	}
}

// TestCSRFRejectsUntokenedPost verifies a POST without a token is refused
func TestCSRFRejectsUntokenedPost(t *testing.T) {
	secret := []byte("test-secret-key-32-bytes-long!!!")
	csrfMiddleware := webmiddleware.CSRFProtection(secret, false)

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	protectedHandler := csrfMiddleware(handler)

	req := httptest.NewRequest("POST", "/", strings.NewReader("username=user&password=user"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	protectedHandler.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Errorf("Expected status 403, got %d", w.Code)
	}
}

// TestCSRFFailureHandler verifies the custom failure response
func TestCSRFFailureHandler(t *testing.T) {
	req := httptest.NewRequest("POST", "/", nil)
	w := httptest.NewRecorder()

	webmiddleware.CSRFFailureHandler(w, req)

	if w.Code != http.StatusForbidden {
		t.Errorf("Expected status 403, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "CSRF") {
		t.Errorf("Expected CSRF in error message, got: %s", w.Body.String())
	}
}

// TestSecurityHeaders verifies the configured headers are applied
func TestSecurityHeaders(t *testing.T) {
	cfg := config.Default()
	cfg.Server.Security.Headers = config.SecurityHeadersConfig{
		XFrameOptions:         "DENY",
		XContentTypeOptions:   "nosniff",
		ReferrerPolicy:        "strict-origin-when-cross-origin",
		ContentSecurityPolicy: "default-src 'self'",
	}

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	wrapped := webmiddleware.SecurityHeaders(cfg)(handler)

	req := httptest.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()
	wrapped.ServeHTTP(w, req)

	expected := map[string]string{
		"X-Frame-Options":         "DENY",
		"X-Content-Type-Options":  "nosniff",
		"Referrer-Policy":         "strict-origin-when-cross-origin",
		"Content-Security-Policy": "default-src 'self'",
	}
	for header, want := range expected {
		if got := w.Header().Get(header); got != want {
			t.Errorf("%s = %q, want %q", header, got, want)
		}
	}
}

// TestMaxBytes verifies oversized request bodies are rejected
func TestMaxBytes(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "request too large", http.StatusRequestEntityTooLarge)
			return
		}
		w.WriteHeader(http.StatusOK)
	})
	wrapped := webmiddleware.MaxBytes(64)(handler)

	small := httptest.NewRequest("POST", "/", strings.NewReader("username=user&password=user"))
	small.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	wrapped.ServeHTTP(w, small)
	if w.Code != http.StatusOK {
		t.Errorf("small body: expected status 200, got %d", w.Code)
	}

	big := httptest.NewRequest("POST", "/", strings.NewReader("username="+strings.Repeat("a", 1024)))
	big.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w = httptest.NewRecorder()
	wrapped.ServeHTTP(w, big)
	if w.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("oversized body: expected status 413, got %d", w.Code)
	}
}
