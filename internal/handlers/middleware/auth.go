package middleware

import (
	"errors"
	"net/http"

	"github.com/nkiryanov/articlehub/internal/apperrors"
	"github.com/nkiryanov/articlehub/internal/handlers/render"
	"github.com/nkiryanov/articlehub/internal/handlers/userctx"
	"github.com/nkiryanov/articlehub/internal/models"
)

type authService interface {
	Authenticate(r *http.Request) (models.Claims, error)
}

// Let request through only with valid access token
// Claims of the token are available to next handler with userctx.FromContext
func AuthMiddleware(as authService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, err := as.Authenticate(r)
			switch {
			case err == nil:
				next.ServeHTTP(w, r.WithContext(userctx.New(r.Context(), claims)))
			case errors.Is(err, apperrors.ErrTokenMissing):
				render.ServiceError(w, "No token provided", http.StatusUnauthorized)
			default:
				render.ServiceError(w, "Invalid or expired token", http.StatusForbidden)
			}
		})
	}
}
