package handlers

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/nkiryanov/articlehub/internal/logger"
	"github.com/nkiryanov/articlehub/internal/repository"
	"github.com/nkiryanov/articlehub/internal/service/article"
	"github.com/nkiryanov/articlehub/internal/service/auth"
	"github.com/nkiryanov/articlehub/internal/service/auth/tokenmanager"
	"github.com/nkiryanov/articlehub/internal/service/user"
)

// Run http server with production services on top of the storage
func newTestServer(t *testing.T, storage repository.Storage) string {
	t.Helper()

	tokenManager, err := tokenmanager.New(tokenmanager.Config{
		AccessSecret:  "test-access-secret",
		RefreshSecret: "test-refresh-secret",
	})
	require.NoError(t, err, "token manager should be created without errors")

	userService := user.NewService(auth.BcryptHasher{Cost: bcrypt.MinCost}, storage)
	authService, err := auth.NewService(auth.Config{}, tokenManager, userService)
	require.NoError(t, err, "auth service starting error")

	router := NewRouter(
		authService,
		userService,
		article.NewService(storage),
		prometheus.NewRegistry(),
		logger.NewNoOpLogger(),
	)

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	return srv.URL
}

type testResponse struct {
	Code   int
	Header http.Header
	Body   string
}

// Send request with optional bearer token and JSON body
func doRequest(t *testing.T, method string, url string, token string, body string) testResponse {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}

	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return testResponse{Code: resp.StatusCode, Header: resp.Header, Body: string(b)}
}
