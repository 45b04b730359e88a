package repositories

import (
	"context"

	"github.com/xteonlyone/portfolio/backend/internal/models"
	"gorm.io/gorm"
)

// GuestbookRepository defines the interface for guestbook post operations
type GuestbookRepository interface {
	CreatePost(ctx context.Context, post *models.GuestbookPost) error
	GetPostByID(ctx context.Context, id string) (*models.GuestbookPost, error)
	ListPosts(ctx context.Context) ([]models.GuestbookPost, error)
	MarkAsRead(ctx context.Context, id string) error
	DeletePost(ctx context.Context, id string) error
	CountPosts(ctx context.Context) (int64, error)
	CountUnread(ctx context.Context) (int64, error)
}

type postgresGuestbookRepository struct {
	db *gorm.DB
}

func NewPostgresGuestbookRepository(db *gorm.DB) GuestbookRepository {
	return &postgresGuestbookRepository{db: db}
}

func (r *postgresGuestbookRepository) CreatePost(ctx context.Context, post *models.GuestbookPost) error {
	return r.db.WithContext(ctx).Omit("User").Create(post).Error
}

// GetPostByID returns the post with its author loaded.
func (r *postgresGuestbookRepository) GetPostByID(ctx context.Context, id string) (*models.GuestbookPost, error) {
	var post models.GuestbookPost
	if err := r.db.WithContext(ctx).Preload("User").Where("id = ?", id).First(&post).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// ListPosts returns every post newest-first with its author loaded.
func (r *postgresGuestbookRepository) ListPosts(ctx context.Context) ([]models.GuestbookPost, error) {
	var posts []models.GuestbookPost
	err := r.db.WithContext(ctx).Preload("User").Order("created_at DESC").Find(&posts).Error
	return posts, err
}

// MarkAsRead only ever sets the flag; nothing clears it.
func (r *postgresGuestbookRepository) MarkAsRead(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Model(&models.GuestbookPost{}).Where("id = ?", id).Update("is_read", true).Error
}

// DeletePost removes the post; replies and likes follow through ON DELETE CASCADE.
func (r *postgresGuestbookRepository) DeletePost(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.GuestbookPost{}).Error
}

func (r *postgresGuestbookRepository) CountPosts(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.GuestbookPost{}).Count(&count).Error
	return count, err
}

func (r *postgresGuestbookRepository) CountUnread(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.GuestbookPost{}).Where("is_read = ?", false).Count(&count).Error
	return count, err
}
