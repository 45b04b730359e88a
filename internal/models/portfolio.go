package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Project struct {
	ID          string    `json:"id" gorm:"primaryKey;type:text"`
	Title       string    `json:"title" gorm:"not null"`
	Description string    `json:"description" gorm:"type:text;not null"`
	ImageURL    string    `json:"image_url"`
	DemoURL     string    `json:"demo_url"`
	RepoURL     string    `json:"repo_url"`
	TechStack   string    `json:"tech_stack"` // comma separated, e.g. "Go, Postgres"
	IsFeatured  bool      `json:"is_featured" gorm:"default:false"`
	CreatedAt   time.Time `json:"created_at"`
}

func (p *Project) BeforeCreate(_ *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

type TechStack struct {
	ID        string    `json:"id" gorm:"primaryKey;type:text"`
	Name      string    `json:"name" gorm:"not null"`
	Category  string    `json:"category"` // Framework, Language, Database
	IconName  string    `json:"icon_name"`
	CreatedAt time.Time `json:"created_at"`
}

func (t *TechStack) BeforeCreate(_ *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}

type CreateProjectRequest struct {
	Title       string `json:"title" validate:"required,notblank"`
	Description string `json:"description" validate:"required,notblank"`
	ImageURL    string `json:"image_url" validate:"omitempty,url"`
	DemoURL     string `json:"demo_url" validate:"omitempty,url"`
	RepoURL     string `json:"repo_url" validate:"omitempty,url"`
	TechStack   string `json:"tech_stack"`
}

type CreateTechRequest struct {
	Name     string `json:"name" validate:"required,notblank"`
	Category string `json:"category" validate:"required,notblank"`
	IconName string `json:"icon_name"`
}

// Visitor is one page hit. It is stored in MongoDB when available and in the
// visitors table otherwise.
type Visitor struct {
	ID        uint      `json:"id" bson:"-" gorm:"primaryKey"`
	IPAddress string    `json:"ip_address" bson:"ip_address" gorm:"type:varchar(45)"`
	UserAgent string    `json:"user_agent" bson:"user_agent"`
	VisitedAt time.Time `json:"visited_at" bson:"visited_at" gorm:"index"`
}

// DashboardStats feeds the admin overview cards.
type DashboardStats struct {
	Visitors        int64 `json:"visitors"`
	Projects        int64 `json:"projects"`
	GuestbookPosts  int64 `json:"guestbook_posts"`
	UnreadGuestbook int64 `json:"unread_guestbook"`
	Messages        int64 `json:"messages"`
}
