package auth

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/nkiryanov/articlehub/internal/apperrors"
	"github.com/nkiryanov/articlehub/internal/models"
)

const (
	defaultAccessHeaderName = "Authorization"
	defaultAccessAuthScheme = "Bearer"
)

type tokenManager interface {
	GeneratePair(user models.User) (models.TokenPair, error)
	ParseAccess(access string) (models.Claims, error)
	ParseRefresh(refresh string) (models.Claims, error)
}

type userService interface {
	// Hash password and create user
	CreateUser(ctx context.Context, email string, password string, name string) (models.User, error)

	// Check user credentials
	// apperrors.ErrUserNotFound for unknown email, apperrors.ErrInvalidCredentials for wrong password
	Login(ctx context.Context, email string, password string) (models.User, error)

	GetUserByID(ctx context.Context, userID string) (models.User, error)
}

// Where access token travels
// Zero value fields replaced with defaults
type Config struct {
	AccessHeaderName string
	AccessAuthScheme string
}

type AuthService struct {
	accessHeaderName string
	accessAuthScheme string

	tokenManager tokenManager
	userService  userService
}

func NewService(cfg Config, tokenManager tokenManager, userService userService) (*AuthService, error) {
	if cfg.AccessHeaderName == "" {
		cfg.AccessHeaderName = defaultAccessHeaderName
	}
	if cfg.AccessAuthScheme == "" {
		cfg.AccessAuthScheme = defaultAccessAuthScheme
	}

	return &AuthService{
		accessHeaderName: cfg.AccessHeaderName,
		accessAuthScheme: cfg.AccessAuthScheme,
		tokenManager:     tokenManager,
		userService:      userService,
	}, nil
}

// Register new user and issue token pair
// apperrors.ErrUserAlreadyExists if email is taken
func (s *AuthService) Register(ctx context.Context, email string, password string, name string) (models.User, models.TokenPair, error) {
	var pair models.TokenPair

	user, err := s.userService.CreateUser(ctx, email, password, name)
	if err != nil {
		return user, pair, err
	}

	pair, err = s.tokenManager.GeneratePair(user)
	if err != nil {
		return user, pair, fmt.Errorf("token could not generated, sorry. %w", err)
	}

	return user, pair, nil
}

func (s *AuthService) Login(ctx context.Context, email string, password string) (models.User, models.TokenPair, error) {
	var pair models.TokenPair

	user, err := s.userService.Login(ctx, email, password)
	if err != nil {
		return user, pair, err
	}

	pair, err = s.tokenManager.GeneratePair(user)
	if err != nil {
		return user, pair, fmt.Errorf("token could not generated, sorry. %w", err)
	}

	return user, pair, nil
}

// Return user the access token was issued for
func (s *AuthService) WhoAmI(ctx context.Context, access string) (models.User, error) {
	if access == "" {
		return models.User{}, apperrors.ErrTokenMissing
	}

	claims, err := s.tokenManager.ParseAccess(access)
	if err != nil {
		return models.User{}, err
	}

	return s.userService.GetUserByID(ctx, claims.UserID)
}

// Exchange refresh token to brand new pair
// The old refresh token stays valid until it expires
func (s *AuthService) Refresh(ctx context.Context, refresh string) (models.TokenPair, error) {
	var pair models.TokenPair

	if refresh == "" {
		return pair, apperrors.ErrTokenMissing
	}

	claims, err := s.tokenManager.ParseRefresh(refresh)
	if err != nil {
		return pair, err
	}

	user, err := s.userService.GetUserByID(ctx, claims.UserID)
	if err != nil {
		return pair, err
	}

	pair, err = s.tokenManager.GeneratePair(user)
	if err != nil {
		return pair, fmt.Errorf("token could not generated, sorry. %w", err)
	}

	return pair, nil
}

// Read access token from request header
// Empty string if header missing or has other scheme
func (s *AuthService) ReadAccessToken(r *http.Request) string {
	header := r.Header.Get(s.accessHeaderName)

	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, s.accessAuthScheme) {
		return ""
	}

	return strings.TrimSpace(token)
}

// Verify request access token
// apperrors.ErrTokenMissing if there is no token, apperrors.ErrInvalidToken if it is bad
func (s *AuthService) Authenticate(r *http.Request) (models.Claims, error) {
	access := s.ReadAccessToken(r)
	if access == "" {
		return models.Claims{}, apperrors.ErrTokenMissing
	}

	return s.tokenManager.ParseAccess(access)
}

func (s *AuthService) SetAccessHeader(w http.ResponseWriter, pair models.TokenPair) {
	w.Header().Set(s.accessHeaderName, s.accessAuthScheme+" "+pair.Access.Value)
}
