package repositories

import (
	"context"

	"github.com/xteonlyone/portfolio/backend/internal/models"
	"gorm.io/gorm"
)

// ReplyLikeRepository defines the interface for reply like operations
type ReplyLikeRepository interface {
	CreateReplyLike(ctx context.Context, like *models.GuestbookReplyLike) error
	DeleteReplyLike(ctx context.Context, replyID, userID string) error
	HasUserLikedReply(ctx context.Context, replyID, userID string) (bool, error)
	CountByReplyIDs(ctx context.Context, replyIDs []string) (map[string]int64, error)
	LikedReplyIDs(ctx context.Context, userID string, replyIDs []string) (map[string]bool, error)
}

type postgresReplyLikeRepository struct {
	db *gorm.DB
}

func NewPostgresReplyLikeRepository(db *gorm.DB) ReplyLikeRepository {
	return &postgresReplyLikeRepository{db: db}
}

func (r *postgresReplyLikeRepository) CreateReplyLike(ctx context.Context, like *models.GuestbookReplyLike) error {
	return r.db.WithContext(ctx).Omit("User").Create(like).Error
}

func (r *postgresReplyLikeRepository) DeleteReplyLike(ctx context.Context, replyID, userID string) error {
	res := r.db.WithContext(ctx).Where("reply_id = ? AND user_id = ?", replyID, userID).Delete(&models.GuestbookReplyLike{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrLikeNotFound
	}
	return nil
}

func (r *postgresReplyLikeRepository) HasUserLikedReply(ctx context.Context, replyID, userID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.GuestbookReplyLike{}).Where("reply_id = ? AND user_id = ?", replyID, userID).Count(&count).Error
	return count > 0, err
}

func (r *postgresReplyLikeRepository) CountByReplyIDs(ctx context.Context, replyIDs []string) (map[string]int64, error) {
	return countGrouped(ctx, r.db, &models.GuestbookReplyLike{}, "reply_id", replyIDs)
}

func (r *postgresReplyLikeRepository) LikedReplyIDs(ctx context.Context, userID string, replyIDs []string) (map[string]bool, error) {
	return likedSubset(ctx, r.db, &models.GuestbookReplyLike{}, "reply_id", userID, replyIDs)
}
