package middleware

import (
	"net/http"

	"github.com/dstokesj/loginbench/internal/config"
)

// SecurityHeaders creates middleware that adds HTTP security headers to all responses
func SecurityHeaders(cfg *config.Config) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			headers := cfg.Server.Security.Headers

			// X-Frame-Options: prevents clickjacking
			if headers.XFrameOptions != "" {
				w.Header().Set("X-Frame-Options", headers.XFrameOptions)
			}

			// X-Content-Type-Options: prevents MIME sniffing
			if headers.XContentTypeOptions != "" {
				w.Header().Set("X-Content-Type-Options", headers.XContentTypeOptions)
			}

			// Referrer-Policy: controls referrer information
			if headers.ReferrerPolicy != "" {
				w.Header().Set("Referrer-Policy", headers.ReferrerPolicy)
			}

			// Content-Security-Policy: prevents XSS and other code injection
			if headers.ContentSecurityPolicy != "" {
				w.Header().Set("Content-Security-Policy", headers.ContentSecurityPolicy)
			}

			next.ServeHTTP(w, r)
		})
	}
}
