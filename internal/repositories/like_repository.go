package repositories

import (
	"context"
	"errors"

	"github.com/xteonlyone/portfolio/backend/internal/models"
	"gorm.io/gorm"
)

var ErrLikeNotFound = errors.New("like not found")

// LikeRepository defines the interface for guestbook post likes. A row's
// existence is the liked state; counts are aggregated on read.
type LikeRepository interface {
	CreateLike(ctx context.Context, like *models.GuestbookLike) error
	DeleteLike(ctx context.Context, postID, userID string) error
	HasUserLikedPost(ctx context.Context, postID, userID string) (bool, error)
	CountByPostIDs(ctx context.Context, postIDs []string) (map[string]int64, error)
	LikedPostIDs(ctx context.Context, userID string, postIDs []string) (map[string]bool, error)
}

// PostgresLikeRepository implements LikeRepository for PostgreSQL
type PostgresLikeRepository struct {
	db *gorm.DB
}

// NewPostgresLikeRepository creates a new PostgresLikeRepository
func NewPostgresLikeRepository(db *gorm.DB) *PostgresLikeRepository {
	return &PostgresLikeRepository{db: db}
}

// CreateLike inserts a like. The composite primary key rejects a second
// like by the same user.
func (r *PostgresLikeRepository) CreateLike(ctx context.Context, like *models.GuestbookLike) error {
	return r.db.WithContext(ctx).Omit("User").Create(like).Error
}

// DeleteLike deletes a like from PostgreSQL
func (r *PostgresLikeRepository) DeleteLike(ctx context.Context, postID, userID string) error {
	res := r.db.WithContext(ctx).Where("post_id = ? AND user_id = ?", postID, userID).Delete(&models.GuestbookLike{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrLikeNotFound
	}
	return nil
}

// HasUserLikedPost checks if a user has liked a specific post
func (r *PostgresLikeRepository) HasUserLikedPost(ctx context.Context, postID, userID string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.GuestbookLike{}).Where("post_id = ? AND user_id = ?", postID, userID).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *PostgresLikeRepository) CountByPostIDs(ctx context.Context, postIDs []string) (map[string]int64, error) {
	return countGrouped(ctx, r.db, &models.GuestbookLike{}, "post_id", postIDs)
}

func (r *PostgresLikeRepository) LikedPostIDs(ctx context.Context, userID string, postIDs []string) (map[string]bool, error) {
	return likedSubset(ctx, r.db, &models.GuestbookLike{}, "post_id", userID, postIDs)
}
