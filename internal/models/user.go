package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID          string    `json:"id" gorm:"primaryKey;type:text"`
	FirebaseUID string    `json:"-" gorm:"uniqueIndex"` // Link to Firebase User UID
	Name        string    `json:"name"`
	Email       string    `json:"email" gorm:"uniqueIndex;not null"`
	Image       string    `json:"image,omitempty"`
	Role        string    `json:"role" gorm:"type:varchar(20);default:'user'"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (u *User) BeforeCreate(_ *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if u.Role == "" {
		u.Role = RoleUser
	}
	return nil
}

// UserCompact is the public projection shown next to posts, replies and
// notifications.
type UserCompact struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Image string `json:"image,omitempty"`
}

func (u User) ToCompact() UserCompact {
	return UserCompact{ID: u.ID, Name: u.Name, Image: u.Image}
}

// FirebaseLoginResponse is returned after a Google sign-in has been exchanged
// for an API session token.
type FirebaseLoginResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}
