package repositories

import (
	"context"

	"github.com/xteonlyone/portfolio/backend/internal/models"
	"gorm.io/gorm"
)

// BlogRepository defines the interface for blog post data operations
type BlogRepository interface {
	CreatePost(ctx context.Context, post *models.BlogPost) error
	GetPostByID(ctx context.Context, id string) (*models.BlogPost, error)
	GetPostBySlug(ctx context.Context, slug string) (*models.BlogPost, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	ListAll(ctx context.Context) ([]models.BlogPost, error)
	ListPublished(ctx context.Context, offset, limit int) ([]models.BlogPost, int64, error)
	UpdatePost(ctx context.Context, post *models.BlogPost) error
	DeletePost(ctx context.Context, id string) error
	IncrementViewCount(ctx context.Context, id string) error

	CreateLike(ctx context.Context, like *models.BlogLike) error
	DeleteLike(ctx context.Context, postID, userID string) error
	HasUserLikedPost(ctx context.Context, postID, userID string) (bool, error)
}

type postgresBlogRepository struct {
	db *gorm.DB
}

func NewPostgresBlogRepository(db *gorm.DB) BlogRepository {
	return &postgresBlogRepository{db: db}
}

func (r *postgresBlogRepository) CreatePost(ctx context.Context, post *models.BlogPost) error {
	return r.db.WithContext(ctx).Omit("Likes").Create(post).Error
}

func (r *postgresBlogRepository) GetPostByID(ctx context.Context, id string) (*models.BlogPost, error) {
	var post models.BlogPost
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&post).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postgresBlogRepository) GetPostBySlug(ctx context.Context, slug string) (*models.BlogPost, error) {
	var post models.BlogPost
	if err := r.db.WithContext(ctx).Preload("Likes").Where("slug = ?", slug).First(&post).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postgresBlogRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.BlogPost{}).Where("slug = ?", slug).Count(&count).Error
	return count > 0, err
}

func (r *postgresBlogRepository) ListAll(ctx context.Context) ([]models.BlogPost, error) {
	var posts []models.BlogPost
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&posts).Error
	return posts, err
}

// ListPublished returns one page of published posts and the total number of
// published posts.
func (r *postgresBlogRepository) ListPublished(ctx context.Context, offset, limit int) ([]models.BlogPost, int64, error) {
	var posts []models.BlogPost
	var total int64

	base := r.db.WithContext(ctx).Model(&models.BlogPost{}).Where("is_published = ?", true)
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.WithContext(ctx).Preload("Likes").
		Where("is_published = ?", true).
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&posts).Error
	return posts, total, err
}

func (r *postgresBlogRepository) UpdatePost(ctx context.Context, post *models.BlogPost) error {
	return r.db.WithContext(ctx).Model(post).
		Select("title", "excerpt", "content", "images", "tags", "is_published", "updated_at").
		Updates(post).Error
}

func (r *postgresBlogRepository) DeletePost(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.BlogPost{}).Error
}

func (r *postgresBlogRepository) IncrementViewCount(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Model(&models.BlogPost{}).Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + ?", 1)).Error
}

func (r *postgresBlogRepository) CreateLike(ctx context.Context, like *models.BlogLike) error {
	return r.db.WithContext(ctx).Omit("User").Create(like).Error
}

func (r *postgresBlogRepository) DeleteLike(ctx context.Context, postID, userID string) error {
	res := r.db.WithContext(ctx).Where("post_id = ? AND user_id = ?", postID, userID).Delete(&models.BlogLike{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrLikeNotFound
	}
	return nil
}

func (r *postgresBlogRepository) HasUserLikedPost(ctx context.Context, postID, userID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.BlogLike{}).Where("post_id = ? AND user_id = ?", postID, userID).Count(&count).Error
	return count > 0, err
}
