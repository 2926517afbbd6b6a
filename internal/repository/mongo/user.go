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

type userDocument struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	CreatedAt    time.Time          `bson:"created_at"`
	Email        string             `bson:"email"`
	PasswordHash string             `bson:"password_hash"`
	Name         string             `bson:"name"`
}

func (d userDocument) toModel() models.User {
	return models.User{
		ID:             d.ID.Hex(),
		CreatedAt:      d.CreatedAt.UTC(),
		Email:          d.Email,
		HashedPassword: d.PasswordHash,
		Name:           d.Name,
	}
}

type UserRepo struct {
	Collection *mongodriver.Collection
}

func (r *UserRepo) CreateUser(ctx context.Context, email string, hashedPassword string, name string) (models.User, error) {
	doc := userDocument{
		ID:           primitive.NewObjectID(),
		CreatedAt:    now(),
		Email:        email,
		PasswordHash: hashedPassword,
		Name:         name,
	}

	_, err := r.Collection.InsertOne(ctx, doc)
	switch {
	case err == nil:
		return doc.toModel(), nil
	case mongodriver.IsDuplicateKeyError(err):
		return models.User{}, apperrors.ErrUserAlreadyExists
	default:
		return models.User{}, fmt.Errorf("db error: %w", err)
	}
}

func (r *UserRepo) GetUserByID(ctx context.Context, userID string) (models.User, error) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return models.User{}, apperrors.ErrUserNotFound
	}

	return r.findOne(ctx, bson.D{{Key: "_id", Value: oid}})
}

func (r *UserRepo) GetUserByEmail(ctx context.Context, email string) (models.User, error) {
	return r.findOne(ctx, bson.D{{Key: "email", Value: email}})
}

func (r *UserRepo) findOne(ctx context.Context, filter bson.D) (models.User, error) {
	var doc userDocument

	err := r.Collection.FindOne(ctx, filter).Decode(&doc)
	if err != nil {
		return models.User{}, userError(err)
	}
	return doc.toModel(), nil
}

func (r *UserRepo) ListUsers(ctx context.Context) ([]models.User, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}})

	cur, err := r.Collection.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	var docs []userDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	users := make([]models.User, 0, len(docs))
	for _, d := range docs {
		users = append(users, d.toModel())
	}
	return users, nil
}

func (r *UserRepo) UpdateUser(ctx context.Context, userID string, upd models.UserUpdate) (models.User, error) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return models.User{}, apperrors.ErrUserNotFound
	}

	set := bson.D{}
	if upd.Email != nil {
		set = append(set, bson.E{Key: "email", Value: *upd.Email})
	}
	if upd.Name != nil {
		set = append(set, bson.E{Key: "name", Value: *upd.Name})
	}
	if upd.HashedPassword != nil {
		set = append(set, bson.E{Key: "password_hash", Value: *upd.HashedPassword})
	}

	// $set with empty document is rejected by server
	if len(set) == 0 {
		return r.GetUserByID(ctx, userID)
	}

	var doc userDocument
	err = r.Collection.FindOneAndUpdate(
		ctx,
		bson.D{{Key: "_id", Value: oid}},
		bson.D{{Key: "$set", Value: set}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)

	if mongodriver.IsDuplicateKeyError(err) {
		return models.User{}, apperrors.ErrUserAlreadyExists
	}

	if err != nil {
		return models.User{}, userError(err)
	}
	return doc.toModel(), nil
}

func (r *UserRepo) DeleteUser(ctx context.Context, userID string) error {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return apperrors.ErrUserNotFound
	}

	res, err := r.Collection.DeleteOne(ctx, bson.D{{Key: "_id", Value: oid}})
	switch {
	case err != nil:
		return fmt.Errorf("db error: %w", err)
	case res.DeletedCount == 0:
		return apperrors.ErrUserNotFound
	default:
		return nil
	}
}

func userError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongodriver.ErrNoDocuments):
		return apperrors.ErrUserNotFound
	default:
		return fmt.Errorf("db error: %w", err)
	}
}
