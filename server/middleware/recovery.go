package middleware

import (
	"encoding/json"
	"fmt"
	"net/http"
	"runtime/debug"

	apperrors "github.com/skillsenselab/uploadrelay/errors"
	"github.com/skillsenselab/uploadrelay/logger"
)

// Recovery returns middleware that recovers from panics, logs the stack,
// and responds with the standard 500 envelope.
func Recovery(log *logger.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					log.Error("Panic recovered", map[string]interface{}{
						"error":  fmt.Sprintf("%v", rec),
						"stack":  string(debug.Stack()),
						"path":   r.URL.Path,
						"method": r.Method,
					})
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_ = json.NewEncoder(w).Encode(apperrors.Internal(fmt.Errorf("%v", rec)).ToResponse())
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
