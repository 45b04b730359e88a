package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xteonlyone/portfolio/backend/internal/auth"
	"github.com/xteonlyone/portfolio/backend/internal/models"
	"github.com/xteonlyone/portfolio/backend/internal/repositories"
	"github.com/xteonlyone/portfolio/backend/internal/testutil"
	"go.uber.org/zap"
)

func newBlogService(e *env) *BlogService {
	effects := NewBestEffort(zap.NewNop()).WithSink(func(task string, err error) {
		e.failures = append(e.failures, failure{task: task, err: err})
	})
	return NewBlogService(repositories.NewPostgresBlogRepository(e.db), effects, e.policy, zap.NewNop())
}

func TestBlogCreate_SlugAndConflict(t *testing.T) {
	e := newEnv(t)
	svc := newBlogService(e)
	ctx := context.Background()
	_, admin := e.user(t, "Admin", adminEmail)
	_, ana := e.user(t, "Ana", "ana@example.com")

	req := models.BlogPostRequest{
		Title:   "  Hello, World! Go_is fun ",
		Content: "body",
		Images:  []string{"https://img.example.com/a.png"},
	}

	_, err := svc.Create(ctx, ana, req)
	assert.ErrorIs(t, err, ErrForbidden)

	post, err := svc.Create(ctx, admin, req)
	require.NoError(t, err)
	assert.Equal(t, "hello-world-go-is-fun", post.Slug)
	assert.Equal(t, "Hello, World! Go_is fun", post.Title)

	stored, err := svc.GetBySlug(ctx, post.Slug)
	require.NoError(t, err)
	assert.Equal(t, []string{"https://img.example.com/a.png"}, []string(stored.Images))

	_, err = svc.Create(ctx, admin, req)
	assert.ErrorIs(t, err, ErrConflict)

	_, err = svc.Create(ctx, admin, models.BlogPostRequest{Title: "!!!", Content: "x"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestBlogUpdateAndDelete(t *testing.T) {
	e := newEnv(t)
	svc := newBlogService(e)
	ctx := context.Background()
	_, admin := e.user(t, "Admin", adminEmail)

	post, err := svc.Create(ctx, admin, models.BlogPostRequest{Title: "Draft", Content: "v1"})
	require.NoError(t, err)
	assert.False(t, post.IsPublished)

	updated, err := svc.Update(ctx, admin, post.ID, models.BlogPostRequest{Title: "Final title", Content: "v2", IsPublished: true})
	require.NoError(t, err)
	assert.Equal(t, "draft", updated.Slug)

	stored, err := svc.GetBySlug(ctx, "draft")
	require.NoError(t, err)
	assert.Equal(t, "Final title", stored.Title)
	assert.Equal(t, "v2", stored.Content)
	assert.True(t, stored.IsPublished)

	_, err = svc.Update(ctx, admin, "missing", models.BlogPostRequest{Title: "x", Content: "y"})
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, svc.Delete(ctx, admin, post.ID))
	_, err = svc.GetBySlug(ctx, "draft")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestBlogListPublished_Pagination(t *testing.T) {
	e := newEnv(t)
	svc := newBlogService(e)
	ctx := context.Background()
	_, admin := e.user(t, "Admin", adminEmail)

	for i := 0; i < 8; i++ {
		post := &models.BlogPost{
			Title:       fmt.Sprintf("Post %d", i),
			Slug:        fmt.Sprintf("post-%d", i),
			Content:     "body",
			IsPublished: i != 7,
			CreatedAt:   base.Add(time.Duration(i) * time.Hour),
		}
		require.NoError(t, e.db.Create(post).Error)
	}

	page, err := svc.ListPublished(ctx, 1, 0)
	require.NoError(t, err)
	require.Len(t, page.Data, models.DefaultBlogPageSize)
	assert.Equal(t, "post-6", page.Data[0].Slug)
	assert.Equal(t, models.PageMeta{CurrentPage: 1, TotalPages: 2, TotalItems: 7, HasNextPage: true, HasPrevPage: false}, page.Metadata)

	page, err = svc.ListPublished(ctx, 2, 6)
	require.NoError(t, err)
	require.Len(t, page.Data, 1)
	assert.Equal(t, "post-0", page.Data[0].Slug)
	assert.False(t, page.Metadata.HasNextPage)
	assert.True(t, page.Metadata.HasPrevPage)

	all, err := svc.ListAll(ctx, admin)
	require.NoError(t, err)
	assert.Len(t, all, 8)
	_, err = svc.ListAll(ctx, auth.Subject{})
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestBlogRecordViewAndLike(t *testing.T) {
	e := newEnv(t)
	svc := newBlogService(e)
	ctx := context.Background()
	_, admin := e.user(t, "Admin", adminEmail)
	_, ana := e.user(t, "Ana", "ana@example.com")

	post, err := svc.Create(ctx, admin, models.BlogPostRequest{Title: "Counted", Content: "x", IsPublished: true})
	require.NoError(t, err)

	assert.True(t, svc.RecordView(ctx, "counted"))
	assert.True(t, svc.RecordView(ctx, "counted"))
	assert.False(t, svc.RecordView(ctx, "nope"))
	assert.Empty(t, e.failures)

	stored, err := svc.GetBySlug(ctx, "counted")
	require.NoError(t, err)
	assert.Equal(t, int64(2), stored.ViewCount)

	liked, err := svc.ToggleLike(ctx, ana, post.ID)
	require.NoError(t, err)
	assert.True(t, liked)
	assert.Equal(t, int64(1), testutil.Count(t, e.db, &models.BlogLike{}))

	liked, err = svc.ToggleLike(ctx, ana, post.ID)
	require.NoError(t, err)
	assert.False(t, liked)
	assert.Zero(t, testutil.Count(t, e.db, &models.BlogLike{}))

	_, err = svc.ToggleLike(ctx, auth.Subject{}, post.ID)
	assert.ErrorIs(t, err, ErrUnauthenticated)
	_, err = svc.ToggleLike(ctx, ana, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}
