package mongo

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/nkiryanov/articlehub/internal/apperrors"
	"github.com/nkiryanov/articlehub/internal/models"
	"github.com/nkiryanov/articlehub/internal/testutil"
)

func ptr[T any](v T) *T {
	return &v
}

func Test_UserRepo(t *testing.T) {
	t.Parallel()

	mc := testutil.StartMongoContainer(t)
	t.Cleanup(mc.Terminate)

	newRepo := func(t *testing.T) *UserRepo {
		return NewStorage(testutil.NewMongoDatabase(t, mc.URI)).User().(*UserRepo)
	}

	t.Run("create user ok", func(t *testing.T) {
		r := newRepo(t)

		user, err := r.CreateUser(t.Context(), "a@b.com", "hashedpassword123", "A")

		require.NoError(t, err)
		assert.Len(t, user.ID, 24, "object id in hex")
		assert.Equal(t, "a@b.com", user.Email)
		assert.Equal(t, "A", user.Name)
		assert.Equal(t, "hashedpassword123", user.HashedPassword)
		assert.WithinDuration(t, time.Now(), user.CreatedAt, time.Second)
	})

	t.Run("create user with taken email fail", func(t *testing.T) {
		r := newRepo(t)
		_, err := r.CreateUser(t.Context(), "taken@b.com", "hash", "A")
		require.NoError(t, err)

		_, err = r.CreateUser(t.Context(), "taken@b.com", "other", "B")

		require.ErrorIs(t, err, apperrors.ErrUserAlreadyExists)
	})

	t.Run("get user by id and email ok", func(t *testing.T) {
		r := newRepo(t)
		created, err := r.CreateUser(t.Context(), "find@b.com", "hash", "A")
		require.NoError(t, err)

		byID, err := r.GetUserByID(t.Context(), created.ID)
		require.NoError(t, err)
		assert.Equal(t, created, byID)

		byEmail, err := r.GetUserByEmail(t.Context(), created.Email)
		require.NoError(t, err)
		assert.Equal(t, created, byEmail)
	})

	t.Run("get user not found", func(t *testing.T) {
		r := newRepo(t)

		_, err := r.GetUserByID(t.Context(), primitive.NewObjectID().Hex())
		require.ErrorIs(t, err, apperrors.ErrUserNotFound)

		_, err = r.GetUserByID(t.Context(), "not-an-object-id")
		require.ErrorIs(t, err, apperrors.ErrUserNotFound)

		_, err = r.GetUserByEmail(t.Context(), "nobody@b.com")
		require.ErrorIs(t, err, apperrors.ErrUserNotFound)
	})

	t.Run("list users oldest first", func(t *testing.T) {
		r := newRepo(t)

		empty, err := r.ListUsers(t.Context())
		require.NoError(t, err)
		assert.Empty(t, empty)

		first, err := r.CreateUser(t.Context(), "first@b.com", "hash", "First")
		require.NoError(t, err)
		second, err := r.CreateUser(t.Context(), "second@b.com", "hash", "Second")
		require.NoError(t, err)

		users, err := r.ListUsers(t.Context())

		require.NoError(t, err)
		assert.Equal(t, []models.User{first, second}, users)
	})

	t.Run("update user", func(t *testing.T) {
		r := newRepo(t)
		created, err := r.CreateUser(t.Context(), "upd@b.com", "hash", "Old")
		require.NoError(t, err)
		other, err := r.CreateUser(t.Context(), "other@b.com", "hash", "Other")
		require.NoError(t, err)

		updated, err := r.UpdateUser(t.Context(), created.ID, models.UserUpdate{Name: ptr("New"), HashedPassword: ptr("newhash")})
		require.NoError(t, err)
		assert.Equal(t, "New", updated.Name)
		assert.Equal(t, "newhash", updated.HashedPassword)
		assert.Equal(t, "upd@b.com", updated.Email)

		unchanged, err := r.UpdateUser(t.Context(), created.ID, models.UserUpdate{})
		require.NoError(t, err)
		assert.Equal(t, updated, unchanged)

		_, err = r.UpdateUser(t.Context(), other.ID, models.UserUpdate{Email: ptr("upd@b.com")})
		require.ErrorIs(t, err, apperrors.ErrUserAlreadyExists)

		_, err = r.UpdateUser(t.Context(), primitive.NewObjectID().Hex(), models.UserUpdate{Name: ptr("x")})
		require.ErrorIs(t, err, apperrors.ErrUserNotFound)
	})

	t.Run("delete user", func(t *testing.T) {
		r := newRepo(t)
		created, err := r.CreateUser(t.Context(), "del@b.com", "hash", "A")
		require.NoError(t, err)

		require.NoError(t, r.DeleteUser(t.Context(), created.ID))
		require.ErrorIs(t, r.DeleteUser(t.Context(), created.ID), apperrors.ErrUserNotFound)
		require.ErrorIs(t, r.DeleteUser(t.Context(), "bad"), apperrors.ErrUserNotFound)
	})
}
