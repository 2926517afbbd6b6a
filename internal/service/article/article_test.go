package article

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nkiryanov/articlehub/internal/apperrors"
	"github.com/nkiryanov/articlehub/internal/models"
	"github.com/nkiryanov/articlehub/internal/repository/mongo"
	"github.com/nkiryanov/articlehub/internal/testutil"
)

func TestArticle(t *testing.T) {
	t.Parallel()

	mc := testutil.StartMongoContainer(t)
	t.Cleanup(mc.Terminate)

	newService := func(t *testing.T) *ArticleService {
		return NewService(mongo.NewStorage(testutil.NewMongoDatabase(t, mc.URI)))
	}

	t.Run("crud", func(t *testing.T) {
		s := newService(t)

		created, err := s.CreateArticle(t.Context(), "Title", "Content")
		require.NoError(t, err)
		require.NotEmpty(t, created.ID)

		got, err := s.GetArticle(t.Context(), created.ID)
		require.NoError(t, err)
		require.Equal(t, created, got)

		title := "New title"
		updated, err := s.UpdateArticle(t.Context(), created.ID, models.ArticleUpdate{Title: &title})
		require.NoError(t, err)
		require.Equal(t, "New title", updated.Title)
		require.Equal(t, "Content", updated.Content)

		articles, err := s.ListArticles(t.Context())
		require.NoError(t, err)
		require.Equal(t, []models.Article{updated}, articles)

		require.NoError(t, s.DeleteArticle(t.Context(), created.ID))

		_, err = s.GetArticle(t.Context(), created.ID)
		require.ErrorIs(t, err, apperrors.ErrArticleNotFound)
	})

	t.Run("empty list", func(t *testing.T) {
		s := newService(t)

		articles, err := s.ListArticles(t.Context())

		require.NoError(t, err)
		require.Empty(t, articles)
		require.NotNil(t, articles, "empty list should be rendered as []")
	})
}
