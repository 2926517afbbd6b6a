package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/nkiryanov/articlehub/internal/apperrors"
	"github.com/nkiryanov/articlehub/internal/handlers/render"
	"github.com/nkiryanov/articlehub/internal/logger"
	"github.com/nkiryanov/articlehub/internal/models"
	"github.com/nkiryanov/articlehub/internal/service/user"
)

type userProfile struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

func newUserProfile(u models.User) userProfile {
	return userProfile{ID: u.ID, Name: u.Name, Email: u.Email, CreatedAt: u.CreatedAt}
}

func handleListUsers(userService userService, l logger.Logger) http.Handler {
	type response struct {
		Message string        `json:"message"`
		Data    []userProfile `json:"data"`
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		users, err := userService.ListUsers(r.Context())
		if err != nil {
			l.Error("Failed to list users", "error", err)
			render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		data := make([]userProfile, 0, len(users))
		for _, u := range users {
			data = append(data, newUserProfile(u))
		}

		render.JSON(w, response{Message: "List of all users", Data: data})
	})
}

func handleGetUser(userService userService, l logger.Logger) http.Handler {
	type response struct {
		Message string      `json:"message"`
		Data    userProfile `json:"data"`
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")

		u, err := userService.GetUserByID(r.Context(), id)
		switch {
		case err == nil:
			render.JSON(w, response{Message: "User retrieved successfully", Data: newUserProfile(u)})
		case errors.Is(err, apperrors.ErrUserNotFound):
			render.ServiceError(w, fmt.Sprintf("User with ID %s not found", id), http.StatusNotFound)
		default:
			l.Error("Failed to get user", "id", id, "error", err)
			render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
		}
	})
}

func handleUpdateUser(userService userService, l logger.Logger) http.Handler {
	type request struct {
		Email    *string `json:"email" validate:"omitnil,email"`
		Password *string `json:"password" validate:"omitnil,min=6"`
		Name     *string `json:"name" validate:"omitnil,nonblank"`
	}
	type response struct {
		Message string      `json:"message"`
		Data    userProfile `json:"data"`
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")

		data, err := render.BindAndValidate[request](w, r)
		if err != nil {
			return
		}

		u, err := userService.UpdateUser(r.Context(), id, user.UpdateParams{
			Email:    data.Email,
			Name:     data.Name,
			Password: data.Password,
		})
		switch {
		case err == nil:
			render.JSON(w, response{Message: "User updated successfully", Data: newUserProfile(u)})
		case errors.Is(err, apperrors.ErrUserNotFound):
			render.ServiceError(w, fmt.Sprintf("User with ID %s not found", id), http.StatusNotFound)
		case errors.Is(err, apperrors.ErrUserAlreadyExists):
			render.ServiceError(w, "User already exists", http.StatusConflict)
		default:
			l.Error("Failed to update user", "id", id, "error", err)
			render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
		}
	})
}

func handleDeleteUser(userService userService, l logger.Logger) http.Handler {
	type response struct {
		Message string `json:"message"`
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")

		err := userService.DeleteUser(r.Context(), id)
		switch {
		case err == nil:
			render.JSON(w, response{Message: "User deleted successfully"})
		case errors.Is(err, apperrors.ErrUserNotFound):
			render.ServiceError(w, fmt.Sprintf("User with ID %s not found", id), http.StatusNotFound)
		default:
			l.Error("Failed to delete user", "id", id, "error", err)
			render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
		}
	})
}
