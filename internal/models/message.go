package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Message is a private note sent through the contact form. Guests may write
// one, in which case UserID is nil.
type Message struct {
	ID        string    `json:"id" gorm:"primaryKey;type:text"`
	UserID    *string   `json:"user_id" gorm:"type:text;index"`
	User      *User     `json:"user,omitempty" gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;"`
	Content   string    `json:"content" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"created_at" gorm:"index"`
}

func (m *Message) BeforeCreate(_ *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

type SendMessageRequest struct {
	Content string `json:"content" validate:"required,notblank"`
}

type ReplyMessageRequest struct {
	Content string `json:"content" validate:"required,notblank"`
}
