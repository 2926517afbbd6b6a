package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	mongodriver "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/nkiryanov/articlehub/internal/apperrors"
	"github.com/nkiryanov/articlehub/internal/models"
)

type articleDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	CreatedAt time.Time          `bson:"created_at"`
	Title     string             `bson:"title"`
	Content   string             `bson:"content"`
}

func (d articleDocument) toModel() models.Article {
	return models.Article{
		ID:        d.ID.Hex(),
		CreatedAt: d.CreatedAt.UTC(),
		Title:     d.Title,
		Content:   d.Content,
	}
}

type ArticleRepo struct {
	Collection *mongodriver.Collection
}

func (r *ArticleRepo) CreateArticle(ctx context.Context, title string, content string) (models.Article, error) {
	doc := articleDocument{
		ID:        primitive.NewObjectID(),
		CreatedAt: now(),
		Title:     title,
		Content:   content,
	}

	if _, err := r.Collection.InsertOne(ctx, doc); err != nil {
		return models.Article{}, fmt.Errorf("db error: %w", err)
	}

	return doc.toModel(), nil
}

func (r *ArticleRepo) GetArticleByID(ctx context.Context, articleID string) (models.Article, error) {
	oid, err := primitive.ObjectIDFromHex(articleID)
	if err != nil {
		return models.Article{}, apperrors.ErrArticleNotFound
	}

	var doc articleDocument
	err = r.Collection.FindOne(ctx, bson.D{{Key: "_id", Value: oid}}).Decode(&doc)

	if err != nil {
		return models.Article{}, articleError(err)
	}
	return doc.toModel(), nil
}

func (r *ArticleRepo) ListArticles(ctx context.Context) ([]models.Article, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}})

	cur, err := r.Collection.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	var docs []articleDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	articles := make([]models.Article, 0, len(docs))
	for _, d := range docs {
		articles = append(articles, d.toModel())
	}
	return articles, nil
}

func (r *ArticleRepo) UpdateArticle(ctx context.Context, articleID string, upd models.ArticleUpdate) (models.Article, error) {
	oid, err := primitive.ObjectIDFromHex(articleID)
	if err != nil {
		return models.Article{}, apperrors.ErrArticleNotFound
	}

	set := bson.D{}
	if upd.Title != nil {
		set = append(set, bson.E{Key: "title", Value: *upd.Title})
	}
	if upd.Content != nil {
		set = append(set, bson.E{Key: "content", Value: *upd.Content})
	}

	if len(set) == 0 {
		return r.GetArticleByID(ctx, articleID)
	}

	var doc articleDocument
	err = r.Collection.FindOneAndUpdate(
		ctx,
		bson.D{{Key: "_id", Value: oid}},
		bson.D{{Key: "$set", Value: set}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)

	if err != nil {
		return models.Article{}, articleError(err)
	}
	return doc.toModel(), nil
}

func (r *ArticleRepo) DeleteArticle(ctx context.Context, articleID string) error {
	oid, err := primitive.ObjectIDFromHex(articleID)
	if err != nil {
		return apperrors.ErrArticleNotFound
	}

	res, err := r.Collection.DeleteOne(ctx, bson.D{{Key: "_id", Value: oid}})
	switch {
	case err != nil:
		return fmt.Errorf("db error: %w", err)
	case res.DeletedCount == 0:
		return apperrors.ErrArticleNotFound
	default:
		return nil
	}
}

func articleError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongodriver.ErrNoDocuments):
		return apperrors.ErrArticleNotFound
	default:
		return fmt.Errorf("db error: %w", err)
	}
}
