package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	NotificationLike  = "LIKE"
	NotificationReply = "REPLY"

	// NotificationListLimit caps the bell dropdown; there is no pagination.
	NotificationListLimit = 10
)

// Notification is written as a side effect of likes and replies. ReferenceID
// is the guestbook post id and is not a foreign key: it goes stale when the
// post is deleted.
type Notification struct {
	ID            string    `json:"id" gorm:"primaryKey;type:text"`
	UserID        string    `json:"user_id" gorm:"type:text;not null;index"` // recipient
	User          User      `json:"-" gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	TriggerUserID *string   `json:"trigger_user_id" gorm:"type:text;index"`
	TriggerUser   *User     `json:"-" gorm:"foreignKey:TriggerUserID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;"`
	Type          string    `json:"type" gorm:"type:varchar(20);not null"`
	ReferenceID   string    `json:"reference_id" gorm:"type:text;not null"`
	IsRead        bool      `json:"is_read" gorm:"default:false;index"`
	CreatedAt     time.Time `json:"created_at" gorm:"index"`
}

func (n *Notification) BeforeCreate(_ *gorm.DB) error {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	return nil
}

// NotificationView is a notification joined with the user who caused it.
type NotificationView struct {
	Notification
	TriggerUser *UserCompact `json:"trigger_user"`
}
