package apperrors

import (
	"errors"
)

var (
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrTokenMissing = errors.New("token not provided")
	ErrInvalidToken = errors.New("invalid or expired token")

	ErrArticleNotFound = errors.New("article not found")
)
