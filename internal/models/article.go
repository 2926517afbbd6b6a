package models

import (
	"time"
)

type Article struct {
	ID        string
	CreatedAt time.Time
	Title     string
	Content   string
}

// Partial article update: nil field means "keep as is"
type ArticleUpdate struct {
	Title   *string
	Content *string
}

func (u ArticleUpdate) IsEmpty() bool {
	return u.Title == nil && u.Content == nil
}
