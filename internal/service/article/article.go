package article

import (
	"context"

	"github.com/nkiryanov/articlehub/internal/models"
	"github.com/nkiryanov/articlehub/internal/repository"
)

type ArticleService struct {
	storage repository.Storage
}

func NewService(storage repository.Storage) *ArticleService {
	return &ArticleService{storage: storage}
}

func (s *ArticleService) CreateArticle(ctx context.Context, title string, content string) (models.Article, error) {
	return s.storage.Article().CreateArticle(ctx, title, content)
}

// apperrors.ErrArticleNotFound if there is no such article
func (s *ArticleService) GetArticle(ctx context.Context, articleID string) (models.Article, error) {
	return s.storage.Article().GetArticleByID(ctx, articleID)
}

func (s *ArticleService) ListArticles(ctx context.Context) ([]models.Article, error) {
	return s.storage.Article().ListArticles(ctx)
}

func (s *ArticleService) UpdateArticle(ctx context.Context, articleID string, upd models.ArticleUpdate) (models.Article, error) {
	return s.storage.Article().UpdateArticle(ctx, articleID, upd)
}

func (s *ArticleService) DeleteArticle(ctx context.Context, articleID string) error {
	return s.storage.Article().DeleteArticle(ctx, articleID)
}
