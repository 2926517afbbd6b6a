package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/nkiryanov/articlehub/internal/apperrors"
	"github.com/nkiryanov/articlehub/internal/models"
)

type UserRepo struct {
	DB DBTX
}

const createUser = `-- name: CreateUser
INSERT INTO users (id, email, password_hash, name)
VALUES ($1, $2, $3, $4)
RETURNING id, created_at, email, password_hash, name
`

func (r *UserRepo) CreateUser(ctx context.Context, email string, hashedPassword string, name string) (models.User, error) {
	rows, _ := r.DB.Query(ctx, createUser, uuid.New(), email, hashedPassword, name)
	user, err := pgx.CollectOneRow(rows, rowToUser)

	switch {
	case err == nil:
		return user, nil
	case isUniqueViolation(err):
		return user, apperrors.ErrUserAlreadyExists
	default:
		return user, fmt.Errorf("db error: %w", err)
	}
}

const getUserByID = `-- name: getUserByID
SELECT id, created_at, email, password_hash, name FROM users
WHERE id = $1
`

func (r *UserRepo) GetUserByID(ctx context.Context, userID string) (models.User, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return models.User{}, apperrors.ErrUserNotFound
	}

	rows, _ := r.DB.Query(ctx, getUserByID, id)
	user, err := pgx.CollectOneRow(rows, rowToUser)

	return user, userError(err)
}

const getUserByEmail = `-- name: getUserByEmail
SELECT id, created_at, email, password_hash, name FROM users
WHERE email = $1
`

func (r *UserRepo) GetUserByEmail(ctx context.Context, email string) (models.User, error) {
	rows, _ := r.DB.Query(ctx, getUserByEmail, email)
	user, err := pgx.CollectOneRow(rows, rowToUser)

	return user, userError(err)
}

const listUsers = `-- name: listUsers
SELECT id, created_at, email, password_hash, name FROM users
ORDER BY created_at, id
`

func (r *UserRepo) ListUsers(ctx context.Context) ([]models.User, error) {
	rows, _ := r.DB.Query(ctx, listUsers)
	users, err := pgx.CollectRows(rows, rowToUser)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return users, nil
}

// NULL parameter keeps the current column value
const updateUser = `-- name: updateUser
UPDATE users
SET email = COALESCE($2, email),
    name = COALESCE($3, name),
    password_hash = COALESCE($4, password_hash)
WHERE id = $1
RETURNING id, created_at, email, password_hash, name
`

func (r *UserRepo) UpdateUser(ctx context.Context, userID string, upd models.UserUpdate) (models.User, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return models.User{}, apperrors.ErrUserNotFound
	}

	rows, _ := r.DB.Query(ctx, updateUser, id, upd.Email, upd.Name, upd.HashedPassword)
	user, err := pgx.CollectOneRow(rows, rowToUser)

	if isUniqueViolation(err) {
		return user, apperrors.ErrUserAlreadyExists
	}

	return user, userError(err)
}

const deleteUser = `-- name: deleteUser
DELETE FROM users
WHERE id = $1
`

func (r *UserRepo) DeleteUser(ctx context.Context, userID string) error {
	id, err := uuid.Parse(userID)
	if err != nil {
		return apperrors.ErrUserNotFound
	}

	tag, err := r.DB.Exec(ctx, deleteUser, id)
	switch {
	case err != nil:
		return fmt.Errorf("db error: %w", err)
	case tag.RowsAffected() == 0:
		return apperrors.ErrUserNotFound
	default:
		return nil
	}
}

func rowToUser(row pgx.CollectableRow) (models.User, error) {
	var (
		u  models.User
		id uuid.UUID
	)
	err := row.Scan(&id, &u.CreatedAt, &u.Email, &u.HashedPassword, &u.Name)
	u.ID = id.String()
	return u, err
}

func userError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, pgx.ErrNoRows):
		return apperrors.ErrUserNotFound
	default:
		return fmt.Errorf("db error: %w", err)
	}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}
