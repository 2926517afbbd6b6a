package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/nkiryanov/articlehub/internal/apperrors"
	"github.com/nkiryanov/articlehub/internal/handlers/render"
	"github.com/nkiryanov/articlehub/internal/logger"
	"github.com/nkiryanov/articlehub/internal/models"
)

// Public part of the user returned with tokens
type userData struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

type authResponse struct {
	Message      string   `json:"message"`
	AccessToken  string   `json:"accessToken"`
	RefreshToken string   `json:"refreshToken"`
	Data         userData `json:"data"`
}

func newAuthResponse(message string, user models.User, pair models.TokenPair) authResponse {
	return authResponse{
		Message:      message,
		AccessToken:  pair.Access.Value,
		RefreshToken: pair.Refresh.Value,
		Data:         userData{ID: user.ID, Email: user.Email, Name: user.Name},
	}
}

func handleRegister(authService authService, l logger.Logger) http.Handler {
	type request struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required,min=6"`
		Name     string `json:"name" validate:"required,nonblank"`
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, err := render.BindAndValidate[request](w, r)
		if err != nil {
			return
		}

		user, pair, err := authService.Register(r.Context(), data.Email, data.Password, data.Name)
		switch {
		case err == nil:
			authService.SetAccessHeader(w, pair)
			render.JSONWithStatus(w, newAuthResponse("User registered successfully", user, pair), http.StatusCreated)
		case errors.Is(err, apperrors.ErrUserAlreadyExists):
			render.ServiceError(w, "User already exists", http.StatusConflict)
		default:
			l.Error("Failed to register user", "error", err)
			render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
		}
	})
}

func handleLogin(authService authService, l logger.Logger) http.Handler {
	type request struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, err := render.BindAndValidate[request](w, r)
		if err != nil {
			return
		}

		user, pair, err := authService.Login(r.Context(), data.Email, data.Password)
		switch {
		case err == nil:
			authService.SetAccessHeader(w, pair)
			render.JSON(w, newAuthResponse("Login successful", user, pair))
		case errors.Is(err, apperrors.ErrUserNotFound):
			render.ServiceError(w, "User not found", http.StatusNotFound)
		case errors.Is(err, apperrors.ErrInvalidCredentials):
			render.ServiceError(w, "Invalid credentials", http.StatusUnauthorized)
		default:
			l.Error("Failed to login user", "error", err)
			render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
		}
	})
}

func handleUserMe(authService authService, l logger.Logger) http.Handler {
	type response struct {
		Message string      `json:"message"`
		Data    userProfile `json:"data"`
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, err := authService.WhoAmI(r.Context(), authService.ReadAccessToken(r))
		switch {
		case err == nil:
			render.JSON(w, response{Message: "User information retrieved successfully", Data: newUserProfile(user)})
		case errors.Is(err, apperrors.ErrTokenMissing):
			render.ServiceError(w, "No token provided", http.StatusUnauthorized)
		case errors.Is(err, apperrors.ErrInvalidToken):
			render.ServiceError(w, "Invalid or expired token", http.StatusForbidden)
		case errors.Is(err, apperrors.ErrUserNotFound):
			render.ServiceError(w, "User not found", http.StatusNotFound)
		default:
			l.Error("Failed to retrieve user information", "error", err)
			render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
		}
	})
}

func handleTokenRefresh(authService authService, l logger.Logger) http.Handler {
	type request struct {
		RefreshToken string `json:"refreshToken"`
	}
	type response struct {
		Message      string `json:"message"`
		AccessToken  string `json:"accessToken"`
		RefreshToken string `json:"refreshToken"`
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Empty body is the same as missing token, not a malformed request
		var data request
		err := json.NewDecoder(r.Body).Decode(&data)
		if err != nil && !errors.Is(err, io.EOF) {
			render.DecodeError(w, err)
			return
		}

		pair, err := authService.Refresh(r.Context(), data.RefreshToken)
		switch {
		case err == nil:
			authService.SetAccessHeader(w, pair)
			render.JSON(w, response{
				Message:      "Token refreshed successfully",
				AccessToken:  pair.Access.Value,
				RefreshToken: pair.Refresh.Value,
			})
		case errors.Is(err, apperrors.ErrTokenMissing):
			render.ServiceError(w, "No refresh token provided", http.StatusUnauthorized)
		case errors.Is(err, apperrors.ErrInvalidToken):
			render.ServiceError(w, "Invalid or expired refresh token", http.StatusForbidden)
		case errors.Is(err, apperrors.ErrUserNotFound):
			render.ServiceError(w, "User not found", http.StatusNotFound)
		default:
			l.Error("Failed to refresh token", "error", err)
			render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
		}
	})
}
