package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const DefaultBlogPageSize = 6

// BlogPost is an article on the public blog. Images holds the secure URLs
// returned by the image host.
type BlogPost struct {
	ID          string                      `json:"id" gorm:"primaryKey;type:text"`
	Title       string                      `json:"title" gorm:"not null"`
	Slug        string                      `json:"slug" gorm:"uniqueIndex;not null"`
	Excerpt     string                      `json:"excerpt"`
	Content     string                      `json:"content" gorm:"type:text"`
	Images      datatypes.JSONSlice[string] `json:"images"`
	Tags        string                      `json:"tags"`
	IsPublished bool                        `json:"is_published" gorm:"default:false;index"`
	ViewCount   int64                       `json:"view_count" gorm:"default:0"`
	CreatedAt   time.Time                   `json:"created_at" gorm:"index"`
	UpdatedAt   time.Time                   `json:"updated_at"`

	Likes []BlogLike `json:"likes,omitempty" gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE;"`
}

func (p *BlogPost) BeforeCreate(_ *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

type BlogLike struct {
	PostID    string    `json:"post_id" gorm:"primaryKey;type:text"`
	UserID    string    `json:"user_id" gorm:"primaryKey;type:text"`
	User      User      `json:"-" gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	CreatedAt time.Time `json:"created_at"`
}

type BlogPostRequest struct {
	Title       string   `json:"title" validate:"required,notblank,max=200"`
	Excerpt     string   `json:"excerpt" validate:"max=500"`
	Content     string   `json:"content" validate:"required"`
	Images      []string `json:"images" validate:"omitempty,dive,url"`
	Tags        string   `json:"tags"`
	IsPublished bool     `json:"is_published"`
}

type PageMeta struct {
	CurrentPage int   `json:"currentPage"`
	TotalPages  int   `json:"totalPages"`
	TotalItems  int64 `json:"totalItems"`
	HasNextPage bool  `json:"hasNextPage"`
	HasPrevPage bool  `json:"hasPrevPage"`
}

type BlogPage struct {
	Data     []BlogPost `json:"data"`
	Metadata PageMeta   `json:"metadata"`
}
