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
)

type articleData struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

func newArticleData(a models.Article) articleData {
	return articleData{ID: a.ID, Title: a.Title, Content: a.Content, CreatedAt: a.CreatedAt}
}

type articleResponse struct {
	Message string      `json:"message"`
	Data    articleData `json:"data"`
}

func handleCreateArticle(articleService articleService, l logger.Logger) http.Handler {
	type request struct {
		Title   string `json:"title" validate:"required,nonblank"`
		Content string `json:"content" validate:"required,nonblank"`
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, err := render.BindAndValidate[request](w, r)
		if err != nil {
			return
		}

		article, err := articleService.CreateArticle(r.Context(), data.Title, data.Content)
		if err != nil {
			l.Error("Failed to create article", "error", err)
			render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		render.JSONWithStatus(w, articleResponse{Message: "Article created successfully", Data: newArticleData(article)}, http.StatusCreated)
	})
}

func handleListArticles(articleService articleService, l logger.Logger) http.Handler {
	type response struct {
		Message string        `json:"message"`
		Data    []articleData `json:"data"`
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		articles, err := articleService.ListArticles(r.Context())
		if err != nil {
			l.Error("Failed to list articles", "error", err)
			render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		data := make([]articleData, 0, len(articles))
		for _, a := range articles {
			data = append(data, newArticleData(a))
		}

		render.JSON(w, response{Message: "List of all articles", Data: data})
	})
}

func handleGetArticle(articleService articleService, l logger.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")

		article, err := articleService.GetArticle(r.Context(), id)
		switch {
		case err == nil:
			render.JSON(w, articleResponse{Message: "Article retrieved successfully", Data: newArticleData(article)})
		case errors.Is(err, apperrors.ErrArticleNotFound):
			render.ServiceError(w, fmt.Sprintf("Article with ID %s not found", id), http.StatusNotFound)
		default:
			l.Error("Failed to get article", "id", id, "error", err)
			render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
		}
	})
}

func handleUpdateArticle(articleService articleService, l logger.Logger) http.Handler {
	type request struct {
		Title   *string `json:"title" validate:"omitnil,nonblank"`
		Content *string `json:"content" validate:"omitnil,nonblank"`
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")

		data, err := render.BindAndValidate[request](w, r)
		if err != nil {
			return
		}

		article, err := articleService.UpdateArticle(r.Context(), id, models.ArticleUpdate{Title: data.Title, Content: data.Content})
		switch {
		case err == nil:
			render.JSON(w, articleResponse{Message: "Article updated successfully", Data: newArticleData(article)})
		case errors.Is(err, apperrors.ErrArticleNotFound):
			render.ServiceError(w, fmt.Sprintf("Article with ID %s not found", id), http.StatusNotFound)
		default:
			l.Error("Failed to update article", "id", id, "error", err)
			render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
		}
	})
}

func handleDeleteArticle(articleService articleService, l logger.Logger) http.Handler {
	type response struct {
		Message string `json:"message"`
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")

		err := articleService.DeleteArticle(r.Context(), id)
		switch {
		case err == nil:
			render.JSON(w, response{Message: "Article deleted successfully"})
		case errors.Is(err, apperrors.ErrArticleNotFound):
			render.ServiceError(w, fmt.Sprintf("Article with ID %s not found", id), http.StatusNotFound)
		default:
			l.Error("Failed to delete article", "id", id, "error", err)
			render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
		}
	})
}
