package services

import (
	"context"
	"errors"
	"math"
	"strings"
	"time"

	"github.com/xteonlyone/portfolio/backend/internal/auth"
	"github.com/xteonlyone/portfolio/backend/internal/models"
	"github.com/xteonlyone/portfolio/backend/internal/repositories"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// BlogService manages articles and their likes and views.
type BlogService struct {
	repo    repositories.BlogRepository
	effects *BestEffort
	policy  auth.Policy
	logger  *zap.Logger
}

func NewBlogService(repo repositories.BlogRepository, effects *BestEffort, policy auth.Policy, logger *zap.Logger) *BlogService {
	return &BlogService{repo: repo, effects: effects, policy: policy, logger: logger}
}

// Create derives the slug from the title. A title that maps to an existing
// slug is rejected with ErrConflict.
func (s *BlogService) Create(ctx context.Context, subject auth.Subject, req models.BlogPostRequest) (*models.BlogPost, error) {
	if err := requireAdmin(s.policy, subject, auth.ActionManageBlog); err != nil {
		return nil, err
	}

	slug := slugify(req.Title)
	if slug == "" {
		return nil, ErrInvalidInput
	}

	exists, err := s.repo.SlugExists(ctx, slug)
	if err != nil {
		return nil, fail(s.logger, "Failed to create post", err, zap.String("slug", slug))
	}
	if exists {
		return nil, ErrConflict
	}

	post := &models.BlogPost{
		Title:       strings.TrimSpace(req.Title),
		Slug:        slug,
		Excerpt:     req.Excerpt,
		Content:     req.Content,
		Images:      images(req.Images),
		Tags:        req.Tags,
		IsPublished: req.IsPublished,
	}
	if err := s.repo.CreatePost(ctx, post); err != nil {
		return nil, fail(s.logger, "Failed to create post", err, zap.String("slug", slug))
	}
	return post, nil
}

// Update rewrites the editable fields. The slug is kept so links stay valid.
func (s *BlogService) Update(ctx context.Context, subject auth.Subject, id string, req models.BlogPostRequest) (*models.BlogPost, error) {
	if err := requireAdmin(s.policy, subject, auth.ActionManageBlog); err != nil {
		return nil, err
	}

	post, err := s.repo.GetPostByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fail(s.logger, "Failed to update post", err, zap.String("post_id", id))
	}

	post.Title = strings.TrimSpace(req.Title)
	post.Excerpt = req.Excerpt
	post.Content = req.Content
	post.Images = images(req.Images)
	post.Tags = req.Tags
	post.IsPublished = req.IsPublished
	post.UpdatedAt = time.Now()

	if err := s.repo.UpdatePost(ctx, post); err != nil {
		return nil, fail(s.logger, "Failed to update post", err, zap.String("post_id", id))
	}
	return post, nil
}

func (s *BlogService) Delete(ctx context.Context, subject auth.Subject, id string) error {
	if err := requireAdmin(s.policy, subject, auth.ActionManageBlog); err != nil {
		return err
	}

	if err := s.repo.DeletePost(ctx, id); err != nil {
		return fail(s.logger, "Failed to delete post", err, zap.String("post_id", id))
	}
	return nil
}

// ListAll includes drafts.
func (s *BlogService) ListAll(ctx context.Context, subject auth.Subject) ([]models.BlogPost, error) {
	if err := requireAdmin(s.policy, subject, auth.ActionManageBlog); err != nil {
		return nil, err
	}

	posts, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, fail(s.logger, "Failed to fetch posts", err)
	}
	return posts, nil
}

// ListPublished returns one page of published posts, newest-first.
func (s *BlogService) ListPublished(ctx context.Context, page, limit int) (*models.BlogPage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = models.DefaultBlogPageSize
	}

	posts, total, err := s.repo.ListPublished(ctx, (page-1)*limit, limit)
	if err != nil {
		return nil, fail(s.logger, "Failed to fetch posts", err, zap.Int("page", page))
	}

	totalPages := int(math.Ceil(float64(total) / float64(limit)))
	return &models.BlogPage{
		Data: posts,
		Metadata: models.PageMeta{
			CurrentPage: page,
			TotalPages:  totalPages,
			TotalItems:  total,
			HasNextPage: page < totalPages,
			HasPrevPage: page > 1,
		},
	}, nil
}

func (s *BlogService) GetBySlug(ctx context.Context, slug string) (*models.BlogPost, error) {
	post, err := s.repo.GetPostBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fail(s.logger, "Failed to fetch post", err, zap.String("slug", slug))
	}
	return post, nil
}

// RecordView bumps the view counter. It never fails the request; it reports
// whether a post with that slug exists.
func (s *BlogService) RecordView(ctx context.Context, slug string) bool {
	var found bool
	s.effects.Run(ctx, "blog-view", func(ctx context.Context) error {
		post, err := s.repo.GetPostBySlug(ctx, slug)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}
		found = true
		return s.repo.IncrementViewCount(ctx, post.ID)
	})
	return found
}

func (s *BlogService) ToggleLike(ctx context.Context, subject auth.Subject, postID string) (bool, error) {
	if !subject.Authenticated() {
		return false, ErrUnauthenticated
	}

	if _, err := s.repo.GetPostByID(ctx, postID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, ErrNotFound
		}
		return false, fail(s.logger, "Failed to like", err, zap.String("post_id", postID))
	}

	liked, err := s.repo.HasUserLikedPost(ctx, postID, subject.ID)
	if err != nil {
		return false, fail(s.logger, "Failed to like", err, zap.String("post_id", postID))
	}

	if liked {
		if err := s.repo.DeleteLike(ctx, postID, subject.ID); err != nil {
			return false, fail(s.logger, "Failed to like", err, zap.String("post_id", postID))
		}
		return false, nil
	}

	if err := s.repo.CreateLike(ctx, &models.BlogLike{PostID: postID, UserID: subject.ID}); err != nil {
		return false, fail(s.logger, "Failed to like", err, zap.String("post_id", postID))
	}
	return true, nil
}

func images(urls []string) []string {
	if urls == nil {
		return []string{}
	}
	return urls
}
