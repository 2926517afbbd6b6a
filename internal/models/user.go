package models

import (
	"time"
)

// User as it kept in the credential store
// HashedPassword must never leave the service layer
type User struct {
	ID             string
	CreatedAt      time.Time
	Email          string
	Name           string
	HashedPassword string
}

// Partial user update: nil field means "keep as is"
type UserUpdate struct {
	Email          *string
	Name           *string
	HashedPassword *string
}

func (u UserUpdate) IsEmpty() bool {
	return u.Email == nil && u.Name == nil && u.HashedPassword == nil
}
