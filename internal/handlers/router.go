package handlers

import (
	"context"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/nkiryanov/articlehub/internal/handlers/middleware"
	"github.com/nkiryanov/articlehub/internal/logger"
	"github.com/nkiryanov/articlehub/internal/models"
	"github.com/nkiryanov/articlehub/internal/service/user"
)

// chain applies middlewares in the given order: m1(m2(...(h)))
func chain(h http.Handler, mds ...func(next http.Handler) http.Handler) http.Handler {
	for i := len(mds) - 1; i >= 0; i-- {
		h = mds[i](h)
	}
	return h
}

func NewRouter(
	authService authService,
	userService userService,
	articleService articleService,
	registry *prometheus.Registry,
	logger logger.Logger,
) http.Handler {
	withAuth := middleware.AuthMiddleware(authService)

	mux := http.NewServeMux()

	mux.Handle("POST /users/register", handleRegister(authService, logger))
	mux.Handle("POST /users/login", handleLogin(authService, logger))
	mux.Handle("GET /users/me", handleUserMe(authService, logger))
	mux.Handle("POST /users/refresh-token", handleTokenRefresh(authService, logger))

	mux.Handle("GET /users", handleListUsers(userService, logger))
	mux.Handle("GET /users/{id}", handleGetUser(userService, logger))
	mux.Handle("PUT /users/{id}", withAuth(handleUpdateUser(userService, logger)))
	mux.Handle("DELETE /users/{id}", withAuth(handleDeleteUser(userService, logger)))

	mux.Handle("POST /articles", withAuth(handleCreateArticle(articleService, logger)))
	mux.Handle("GET /articles", handleListArticles(articleService, logger))
	mux.Handle("GET /articles/{id}", handleGetArticle(articleService, logger))
	mux.Handle("PUT /articles/{id}", withAuth(handleUpdateArticle(articleService, logger)))
	mux.Handle("DELETE /articles/{id}", withAuth(handleDeleteArticle(articleService, logger)))

	mux.Handle("GET /livez", handleLivez())
	mux.Handle("GET /metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry}))

	handler := chain(mux,
		middleware.LoggerMiddleware(logger),
		middleware.NewMetrics(registry).Middleware,
		middleware.Recover(logger),
	)

	return handler
}

type authService interface {
	// Register user and issue token pair
	// Has to return apperrors.ErrUserAlreadyExists if email is taken
	Register(ctx context.Context, email string, password string, name string) (models.User, models.TokenPair, error)

	// Login user with email and password
	// Has to return apperrors.ErrUserNotFound if user not found and apperrors.ErrInvalidCredentials on wrong password
	Login(ctx context.Context, email string, password string) (models.User, models.TokenPair, error)

	// Return user the access token belongs to
	WhoAmI(ctx context.Context, access string) (models.User, error)

	// Exchange refresh token to new token pair
	// apperrors.ErrTokenMissing, apperrors.ErrInvalidToken or apperrors.ErrUserNotFound on failure
	Refresh(ctx context.Context, refresh string) (models.TokenPair, error)

	// Verify access token of the request
	Authenticate(r *http.Request) (models.Claims, error)

	// Get access token from request, empty if there is none
	ReadAccessToken(r *http.Request) string

	// Set access token to response
	SetAccessHeader(w http.ResponseWriter, pair models.TokenPair)
}

type userService interface {
	ListUsers(ctx context.Context) ([]models.User, error)
	GetUserByID(ctx context.Context, userID string) (models.User, error)
	UpdateUser(ctx context.Context, userID string, params user.UpdateParams) (models.User, error)
	DeleteUser(ctx context.Context, userID string) error
}

type articleService interface {
	CreateArticle(ctx context.Context, title string, content string) (models.Article, error)
	GetArticle(ctx context.Context, articleID string) (models.Article, error)
	ListArticles(ctx context.Context) ([]models.Article, error)
	UpdateArticle(ctx context.Context, articleID string, upd models.ArticleUpdate) (models.Article, error)
	DeleteArticle(ctx context.Context, articleID string) error
}

func handleLivez() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})
}
