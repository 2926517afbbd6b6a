package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/nkiryanov/articlehub/internal/apperrors"
	"github.com/nkiryanov/articlehub/internal/models"
)

type ArticleRepo struct {
	DB DBTX
}

const createArticle = `-- name: CreateArticle
INSERT INTO articles (id, title, content)
VALUES ($1, $2, $3)
RETURNING id, created_at, title, content
`

func (r *ArticleRepo) CreateArticle(ctx context.Context, title string, content string) (models.Article, error) {
	rows, _ := r.DB.Query(ctx, createArticle, uuid.New(), title, content)
	article, err := pgx.CollectOneRow(rows, rowToArticle)
	if err != nil {
		return article, fmt.Errorf("db error: %w", err)
	}

	return article, nil
}

const getArticleByID = `-- name: getArticleByID
SELECT id, created_at, title, content FROM articles
WHERE id = $1
`

func (r *ArticleRepo) GetArticleByID(ctx context.Context, articleID string) (models.Article, error) {
	id, err := uuid.Parse(articleID)
	if err != nil {
		return models.Article{}, apperrors.ErrArticleNotFound
	}

	rows, _ := r.DB.Query(ctx, getArticleByID, id)
	article, err := pgx.CollectOneRow(rows, rowToArticle)

	return article, articleError(err)
}

const listArticles = `-- name: listArticles
SELECT id, created_at, title, content FROM articles
ORDER BY created_at, id
`

func (r *ArticleRepo) ListArticles(ctx context.Context) ([]models.Article, error) {
	rows, _ := r.DB.Query(ctx, listArticles)
	articles, err := pgx.CollectRows(rows, rowToArticle)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return articles, nil
}

const updateArticle = `-- name: updateArticle
UPDATE articles
SET title = COALESCE($2, title),
    content = COALESCE($3, content)
WHERE id = $1
RETURNING id, created_at, title, content
`

func (r *ArticleRepo) UpdateArticle(ctx context.Context, articleID string, upd models.ArticleUpdate) (models.Article, error) {
	id, err := uuid.Parse(articleID)
	if err != nil {
		return models.Article{}, apperrors.ErrArticleNotFound
	}

	rows, _ := r.DB.Query(ctx, updateArticle, id, upd.Title, upd.Content)
	article, err := pgx.CollectOneRow(rows, rowToArticle)

	return article, articleError(err)
}

const deleteArticle = `-- name: deleteArticle
DELETE FROM articles
WHERE id = $1
`

func (r *ArticleRepo) DeleteArticle(ctx context.Context, articleID string) error {
	id, err := uuid.Parse(articleID)
	if err != nil {
		return apperrors.ErrArticleNotFound
	}

	tag, err := r.DB.Exec(ctx, deleteArticle, id)
	switch {
	case err != nil:
		return fmt.Errorf("db error: %w", err)
	case tag.RowsAffected() == 0:
		return apperrors.ErrArticleNotFound
	default:
		return nil
	}
}

func rowToArticle(row pgx.CollectableRow) (models.Article, error) {
	var (
		a  models.Article
		id uuid.UUID
	)
	err := row.Scan(&id, &a.CreatedAt, &a.Title, &a.Content)
	a.ID = id.String()
	return a, err
}

func articleError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, pgx.ErrNoRows):
		return apperrors.ErrArticleNotFound
	default:
		return fmt.Errorf("db error: %w", err)
	}
}
