package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xteonlyone/portfolio/backend/internal/models"
	"github.com/xteonlyone/portfolio/backend/internal/repositories"
	"github.com/xteonlyone/portfolio/backend/internal/testutil"
	"go.uber.org/zap"
)

func TestPortfolioProjectsAndTech(t *testing.T) {
	e := newEnv(t)
	svc := NewPortfolioService(repositories.NewPostgresPortfolioRepository(e.db), e.policy, zap.NewNop())
	ctx := context.Background()
	_, admin := e.user(t, "Admin", adminEmail)
	_, ana := e.user(t, "Ana", "ana@example.com")

	_, err := svc.CreateProject(ctx, ana, models.CreateProjectRequest{Title: "x", Description: "y"})
	assert.ErrorIs(t, err, ErrForbidden)

	project, err := svc.CreateProject(ctx, admin, models.CreateProjectRequest{Title: "Portfolio", Description: "This site", TechStack: "Go, Postgres"})
	require.NoError(t, err)
	assert.True(t, project.IsFeatured)

	_, err = svc.CreateProject(ctx, admin, models.CreateProjectRequest{Title: " ", Description: "y"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	projects, err := svc.ListProjects(ctx)
	require.NoError(t, err)
	require.Len(t, projects, 1)

	tech, err := svc.CreateTech(ctx, admin, models.CreateTechRequest{Name: "Go", Category: "Language"})
	require.NoError(t, err)
	assert.Equal(t, DefaultTechIcon, tech.IconName)

	tech2, err := svc.CreateTech(ctx, admin, models.CreateTechRequest{Name: "Echo", Category: "Framework", IconName: "Zap"})
	require.NoError(t, err)
	assert.Equal(t, "Zap", tech2.IconName)

	list, err := svc.ListTech(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	assert.ErrorIs(t, svc.DeleteTech(ctx, ana, tech.ID), ErrForbidden)
	require.NoError(t, svc.DeleteTech(ctx, admin, tech.ID))
	require.NoError(t, svc.DeleteProject(ctx, admin, project.ID))
	assert.Zero(t, testutil.Count(t, e.db, &models.Project{}))
	assert.Equal(t, int64(1), testutil.Count(t, e.db, &models.TechStack{}))
}

type failingVisitors struct{}

func (failingVisitors) RecordVisit(context.Context, *models.Visitor) error {
	return errors.New("mongo unreachable")
}

func (failingVisitors) CountVisits(context.Context) (int64, error) { return 0, nil }

func TestTrackingAndDashboard(t *testing.T) {
	e := newEnv(t)
	logger := zap.NewNop()
	svc := NewTrackingService(
		repositories.NewPostgresVisitorRepository(e.db),
		e.repos.Posts,
		repositories.NewPostgresMessageRepository(e.db),
		repositories.NewPostgresPortfolioRepository(e.db),
		e.policy,
		logger,
	)
	ctx := context.Background()
	_, admin := e.user(t, "Admin", adminEmail)
	ana, anaSubject := e.user(t, "Ana", "ana@example.com")

	svc.Track(ctx, "10.0.0.1", "curl/8")
	svc.Track(ctx, "", "")
	read := testutil.CreatePost(t, e.db, ana, "one", base)
	testutil.CreatePost(t, e.db, ana, "two", base)
	require.NoError(t, e.repos.Posts.MarkAsRead(ctx, read.ID))

	_, err := svc.DashboardStats(ctx, anaSubject)
	assert.ErrorIs(t, err, ErrForbidden)

	stats, err := svc.DashboardStats(ctx, admin)
	require.NoError(t, err)
	assert.Equal(t, models.DashboardStats{Visitors: 2, GuestbookPosts: 2, UnreadGuestbook: 1}, *stats)

	var unknown models.Visitor
	require.NoError(t, e.db.Where("ip_address = ?", "unknown").First(&unknown).Error)
	assert.Equal(t, "unknown", unknown.UserAgent)

	quiet := NewTrackingService(failingVisitors{}, e.repos.Posts, nil, nil, e.policy, logger)
	assert.NotPanics(t, func() { quiet.Track(ctx, "10.0.0.2", "ua") })
}
