package repository

import (
	"context"

	"github.com/nkiryanov/articlehub/internal/models"
)

// Storage gives access to all the repositories of one backend
type Storage interface {
	User() UserRepo
	Article() ArticleRepo
}

// User repository interface (credential store)
type UserRepo interface {
	// Create user
	// If user with email exists already has to return error apperrors.ErrUserAlreadyExists
	// Uniqueness must be enforced by the store itself (unique index), not by a lookup before insert
	CreateUser(ctx context.Context, email string, hashedPassword string, name string) (models.User, error)

	// Get user by it's id or email
	// If user not found must return apperrors.ErrUserNotFound
	// Malformed id is treated as not found
	GetUserByID(ctx context.Context, userID string) (models.User, error)
	GetUserByEmail(ctx context.Context, email string) (models.User, error)

	// List all users, oldest first
	ListUsers(ctx context.Context) ([]models.User, error)

	// Update only fields that set
	// If user not found must return apperrors.ErrUserNotFound
	// If new email is taken must return apperrors.ErrUserAlreadyExists
	UpdateUser(ctx context.Context, userID string, upd models.UserUpdate) (models.User, error)

	// If user not found must return apperrors.ErrUserNotFound
	DeleteUser(ctx context.Context, userID string) error
}

// Article repository interface
type ArticleRepo interface {
	CreateArticle(ctx context.Context, title string, content string) (models.Article, error)

	// If article not found must return apperrors.ErrArticleNotFound
	GetArticleByID(ctx context.Context, articleID string) (models.Article, error)

	// List all articles, oldest first
	ListArticles(ctx context.Context) ([]models.Article, error)

	// If article not found must return apperrors.ErrArticleNotFound
	UpdateArticle(ctx context.Context, articleID string, upd models.ArticleUpdate) (models.Article, error)

	// If article not found must return apperrors.ErrArticleNotFound
	DeleteArticle(ctx context.Context, articleID string) error
}
