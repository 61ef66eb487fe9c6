package middleware

import (
	"net/http"

	"github.com/skillsenselab/uploadrelay/util"
)

const defaultMaxBodySize = 50 * 1024 * 1024 // 50MB

// BodySizeLimit returns middleware that restricts the request body to the
// given size string (e.g. "50MB", "512KB", "2GB").
func BodySizeLimit(maxSize string) Middleware {
	size := util.ParseSize(maxSize, defaultMaxBodySize)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, size)
			next.ServeHTTP(w, r)
		})
	}
}
