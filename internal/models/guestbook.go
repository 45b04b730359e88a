package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	DefaultTopic     = "General"
	MaxMessageLength = 500
	MaxTopicLength   = 50
)

// GuestbookPost is a message left on the public guestbook. IsRead only ever
// moves from false to true.
type GuestbookPost struct {
	ID        string    `json:"id" gorm:"primaryKey;type:text"`
	UserID    string    `json:"user_id" gorm:"type:text;not null;index"`
	User      User      `json:"user" gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Message   string    `json:"message" gorm:"type:text;not null"`
	Topic     string    `json:"topic" gorm:"type:varchar(50);default:'General'"`
	IsRead    bool      `json:"is_read" gorm:"default:false;index"`
	CreatedAt time.Time `json:"created_at" gorm:"index"`

	Replies []GuestbookReply `json:"-" gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE;"`
	Likes   []GuestbookLike  `json:"-" gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE;"`
}

func (p *GuestbookPost) BeforeCreate(_ *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.Topic == "" {
		p.Topic = DefaultTopic
	}
	return nil
}

// GuestbookReply belongs to one post and one author.
type GuestbookReply struct {
	ID        string    `json:"id" gorm:"primaryKey;type:text"`
	PostID    string    `json:"post_id" gorm:"type:text;not null;index"`
	UserID    string    `json:"user_id" gorm:"type:text;not null;index"`
	User      User      `json:"user" gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Content   string    `json:"content" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"created_at"`

	Likes []GuestbookReplyLike `json:"-" gorm:"foreignKey:ReplyID;constraint:OnDelete:CASCADE;"`
}

func (r *GuestbookReply) BeforeCreate(_ *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

// GuestbookLike exists iff the user likes the post.
type GuestbookLike struct {
	PostID    string    `json:"post_id" gorm:"primaryKey;type:text"`
	UserID    string    `json:"user_id" gorm:"primaryKey;type:text"`
	User      User      `json:"-" gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	CreatedAt time.Time `json:"created_at"`
}

// GuestbookReplyLike exists iff the user likes the reply.
type GuestbookReplyLike struct {
	ReplyID   string    `json:"reply_id" gorm:"primaryKey;type:text"`
	UserID    string    `json:"user_id" gorm:"primaryKey;type:text"`
	User      User      `json:"-" gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateGuestbookRequest defines the request body for signing the guestbook.
// Overlong messages are truncated rather than rejected.
type CreateGuestbookRequest struct {
	Message string `json:"message" validate:"required,notblank"`
	Topic   string `json:"topic" validate:"omitempty,max=50"`
}

// CreateReplyRequest defines the request body for replying to a post or to
// another reply on the same post.
type CreateReplyRequest struct {
	Content   string `json:"content" validate:"required,notblank"`
	ReplyToID string `json:"reply_to_id,omitempty"`
}

// GuestbookEntry is a post as shown on the public guestbook page.
type GuestbookEntry struct {
	ID        string        `json:"id"`
	Message   string        `json:"message"`
	Topic     string        `json:"topic"`
	CreatedAt time.Time     `json:"created_at"`
	User      UserCompact   `json:"user"`
	LikeCount int64         `json:"like_count"`
	IsLiked   bool          `json:"is_liked"`
	Replies   []ReplyDetail `json:"replies"`
}

// ReplyDetail is a reply with its derived like information for one viewer.
type ReplyDetail struct {
	ID        string      `json:"id"`
	PostID    string      `json:"post_id"`
	UserID    string      `json:"user_id"`
	Content   string      `json:"content"`
	CreatedAt time.Time   `json:"created_at"`
	User      UserCompact `json:"user"`
	Email     string      `json:"email,omitempty"`
	LikeCount int64       `json:"like_count"`
	IsLiked   bool        `json:"is_liked"`
}

// AdminGuestbookRow is one line of the moderation table.
type AdminGuestbookRow struct {
	ID         string      `json:"id"`
	Message    string      `json:"message"`
	Topic      string      `json:"topic"`
	IsRead     bool        `json:"is_read"`
	CreatedAt  time.Time   `json:"created_at"`
	User       UserCompact `json:"user"`
	Email      string      `json:"email"`
	ReplyCount int64       `json:"reply_count"`
}

// Thread is a post with every reply, as inspected by the admin.
type Thread struct {
	Post    ThreadPost    `json:"post"`
	Replies []ReplyDetail `json:"replies"`
}

type ThreadPost struct {
	ID        string      `json:"id"`
	Message   string      `json:"message"`
	Topic     string      `json:"topic"`
	IsRead    bool        `json:"is_read"`
	CreatedAt time.Time   `json:"created_at"`
	User      UserCompact `json:"user"`
	Email     string      `json:"email"`
}
