package mongo

import (
	"time"

	mongodriver "go.mongodb.org/mongo-driver/mongo"

	"github.com/nkiryanov/articlehub/internal/db"
	"github.com/nkiryanov/articlehub/internal/repository"
)

type Storage struct {
	database *mongodriver.Database
}

// Database should be prepared with db.ConnectMongo (or db.EnsureIndexes) so unique email index exists
func NewStorage(database *mongodriver.Database) repository.Storage {
	return &Storage{database: database}
}

func (s *Storage) User() repository.UserRepo {
	return &UserRepo{Collection: s.database.Collection(db.UsersCollection)}
}

func (s *Storage) Article() repository.ArticleRepo {
	return &ArticleRepo{Collection: s.database.Collection(db.ArticlesCollection)}
}

// Mongo DateTime keeps milliseconds only
func now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}
