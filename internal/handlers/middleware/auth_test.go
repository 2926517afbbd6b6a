package middleware

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nkiryanov/articlehub/internal/apperrors"
	"github.com/nkiryanov/articlehub/internal/handlers/userctx"
	"github.com/nkiryanov/articlehub/internal/models"
)

// Allow to use a function as auth service
type authFunc func(r *http.Request) (models.Claims, error)

func (f authFunc) Authenticate(r *http.Request) (models.Claims, error) {
	return f(r)
}

func TestAuthMiddleware(t *testing.T) {
	// Simple handler that try to get claims from context
	// If ok write user id to response
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Must always be true cause middleware has to set claims or write error to response
		claims, ok := userctx.FromContext(r.Context())
		require.True(t, ok)

		w.WriteHeader(http.StatusOK)
		_, err := w.Write([]byte(claims.UserID))
		require.NoError(t, err, "should write user id to response")
	})

	get := func(t *testing.T, h http.Handler) (*http.Response, string) {
		srv := httptest.NewServer(h)
		defer srv.Close()

		resp, err := http.Get(srv.URL + "/test")
		require.NoError(t, err, "should make request to test server")
		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err, "should read response body")
		defer resp.Body.Close() // nolint:errcheck

		return resp, string(body)
	}

	t.Run("auth ok", func(t *testing.T) {
		middleware := AuthMiddleware(authFunc(func(r *http.Request) (models.Claims, error) {
			return models.Claims{UserID: "user-1", Email: "a@b.com"}, nil
		}))

		resp, body := get(t, middleware(handler))

		require.Equalf(t, http.StatusOK, resp.StatusCode, "should return status OK. Resp: %s", body)
		require.Equal(t, "user-1", body, "should return user id in response")
	})

	tests := []struct {
		name         string
		err          error
		expectedCode int
		expectedBody string
	}{
		{
			name:         "no token",
			err:          apperrors.ErrTokenMissing,
			expectedCode: http.StatusUnauthorized,
			expectedBody: `{"error": "service_error", "message": "No token provided"}`,
		},
		{
			name:         "invalid token",
			err:          fmt.Errorf("%w: signature is invalid", apperrors.ErrInvalidToken),
			expectedCode: http.StatusForbidden,
			expectedBody: `{"error": "service_error", "message": "Invalid or expired token"}`,
		},
		{
			name:         "any other error",
			err:          errors.New("boom"),
			expectedCode: http.StatusForbidden,
			expectedBody: `{"error": "service_error", "message": "Invalid or expired token"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			middleware := AuthMiddleware(authFunc(func(r *http.Request) (models.Claims, error) {
				return models.Claims{}, tt.err
			}))

			resp, body := get(t, middleware(handler))

			require.Equalf(t, tt.expectedCode, resp.StatusCode, "not expected code. Resp: %s", body)
			require.JSONEq(t, tt.expectedBody, body)
		})
	}
}
