package middleware

import (
	"net/http"
)

const (
	allowMethods = "GET, POST, OPTIONS"
	allowHeaders = "Origin, Content-Type, Accept, Authorization"
)

// CORS returns middleware that sets cross-origin headers for the configured
// origin and answers OPTIONS preflights with 200 and an empty body.
func CORS(allowedOrigin string) Middleware {
	if allowedOrigin == "" {
		allowedOrigin = "*"
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			setCORSHeaders(w.Header(), r.Header.Get("Origin"), allowedOrigin)
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusOK)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func setCORSHeaders(h http.Header, origin, allowedOrigin string) {
	switch {
	case allowedOrigin == "*":
		h.Set("Access-Control-Allow-Origin", "*")
	case origin == allowedOrigin:
		h.Set("Access-Control-Allow-Origin", origin)
	default:
		return
	}
	h.Set("Access-Control-Allow-Methods", allowMethods)
	h.Set("Access-Control-Allow-Headers", allowHeaders)
}
