package repositories

import (
	"context"

	"github.com/xteonlyone/portfolio/backend/internal/models"
	"gorm.io/gorm"
)

// ReplyRepository defines the interface for guestbook reply operations
type ReplyRepository interface {
	CreateReply(ctx context.Context, reply *models.GuestbookReply) error
	GetReplyByID(ctx context.Context, id string) (*models.GuestbookReply, error)
	GetRepliesByPostIDs(ctx context.Context, postIDs []string, newestFirst bool) ([]models.GuestbookReply, error)
	CountByPostIDs(ctx context.Context, postIDs []string) (map[string]int64, error)
	DeleteReply(ctx context.Context, id string) error
}

// PostgresReplyRepository implements ReplyRepository for PostgreSQL
type PostgresReplyRepository struct {
	db *gorm.DB
}

// NewPostgresReplyRepository creates a new PostgresReplyRepository
func NewPostgresReplyRepository(db *gorm.DB) *PostgresReplyRepository {
	return &PostgresReplyRepository{db: db}
}

// CreateReply creates a new reply in PostgreSQL
func (r *PostgresReplyRepository) CreateReply(ctx context.Context, reply *models.GuestbookReply) error {
	return r.db.WithContext(ctx).Omit("User").Create(reply).Error
}

// GetReplyByID retrieves a reply and its author
func (r *PostgresReplyRepository) GetReplyByID(ctx context.Context, id string) (*models.GuestbookReply, error) {
	var reply models.GuestbookReply
	if err := r.db.WithContext(ctx).Preload("User").Where("id = ?", id).First(&reply).Error; err != nil {
		return nil, err
	}
	return &reply, nil
}

// GetRepliesByPostIDs retrieves the replies of several posts at once
func (r *PostgresReplyRepository) GetRepliesByPostIDs(ctx context.Context, postIDs []string, newestFirst bool) ([]models.GuestbookReply, error) {
	var replies []models.GuestbookReply
	if len(postIDs) == 0 {
		return replies, nil
	}

	order := "created_at ASC"
	if newestFirst {
		order = "created_at DESC"
	}
	err := r.db.WithContext(ctx).Preload("User").
		Where("post_id IN ?", postIDs).
		Order(order).
		Find(&replies).Error
	return replies, err
}

// CountByPostIDs returns the number of replies per post; posts without
// replies are absent from the map.
func (r *PostgresReplyRepository) CountByPostIDs(ctx context.Context, postIDs []string) (map[string]int64, error) {
	return countGrouped(ctx, r.db, &models.GuestbookReply{}, "post_id", postIDs)
}

// DeleteReply deletes a reply by ID; its likes go with it
func (r *PostgresReplyRepository) DeleteReply(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.GuestbookReply{}).Error
}
