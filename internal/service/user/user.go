package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/nkiryanov/articlehub/internal/apperrors"
	"github.com/nkiryanov/articlehub/internal/models"
	"github.com/nkiryanov/articlehub/internal/repository"
	"github.com/nkiryanov/articlehub/internal/service/auth"
)

var DefaultHasher = auth.DefaultHasher

var errEmptyPassword = errors.New("password must not be empty")

// User fields to change, nil means "keep as is"
// Password is plaintext, it is hashed before it reaches the store
type UpdateParams struct {
	Email    *string
	Name     *string
	Password *string
}

type UserService struct {
	hasher  auth.PasswordHasher
	storage repository.Storage
}

func NewService(hasher auth.PasswordHasher, storage repository.Storage) *UserService {
	if hasher == nil {
		hasher = DefaultHasher
	}

	return &UserService{
		hasher:  hasher,
		storage: storage,
	}
}

func (s *UserService) hash(password string) (string, error) {
	if password == "" {
		return "", errEmptyPassword
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return "", fmt.Errorf("can't use this as password, Err: %w", err)
	}
	return hash, nil
}

func (s *UserService) CreateUser(ctx context.Context, email string, password string, name string) (models.User, error) {
	var user models.User

	hash, err := s.hash(password)
	if err != nil {
		return user, err
	}

	user, err = s.storage.User().CreateUser(ctx, email, hash, name)
	if err != nil {
		return user, fmt.Errorf("can't create user. Err: %w", err)
	}

	return user, nil
}

// Check user credentials and return the user
func (s *UserService) Login(ctx context.Context, email string, password string) (models.User, error) {
	user, err := s.storage.User().GetUserByEmail(ctx, email)
	if err != nil {
		return models.User{}, err
	}

	if err := s.hasher.Compare(user.HashedPassword, password); err != nil {
		return models.User{}, apperrors.ErrInvalidCredentials
	}

	return user, nil
}

func (s *UserService) GetUserByID(ctx context.Context, userID string) (models.User, error) {
	return s.storage.User().GetUserByID(ctx, userID)
}

func (s *UserService) GetUserByEmail(ctx context.Context, email string) (models.User, error) {
	return s.storage.User().GetUserByEmail(ctx, email)
}

func (s *UserService) ListUsers(ctx context.Context) ([]models.User, error) {
	return s.storage.User().ListUsers(ctx)
}

func (s *UserService) UpdateUser(ctx context.Context, userID string, params UpdateParams) (models.User, error) {
	upd := models.UserUpdate{
		Email: params.Email,
		Name:  params.Name,
	}

	if params.Password != nil {
		hash, err := s.hash(*params.Password)
		if err != nil {
			return models.User{}, err
		}
		upd.HashedPassword = &hash
	}

	return s.storage.User().UpdateUser(ctx, userID, upd)
}

func (s *UserService) DeleteUser(ctx context.Context, userID string) error {
	return s.storage.User().DeleteUser(ctx, userID)
}
