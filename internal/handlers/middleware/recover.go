package middleware

import (
	"net/http"

	"github.com/nkiryanov/articlehub/internal/handlers/render"
)

type errorLogger interface {
	Error(msg string, args ...any)
}

// Turn handler panic into 500 response, panic details stay in logs
func Recover(l errorLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					if rec == http.ErrAbortHandler {
						panic(rec)
					}
					l.Error("panic while serving request", "path", r.URL.Path, "reason", rec)
					render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
