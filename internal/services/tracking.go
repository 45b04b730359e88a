package services

import (
	"context"
	"time"

	"github.com/xteonlyone/portfolio/backend/internal/auth"
	"github.com/xteonlyone/portfolio/backend/internal/models"
	"github.com/xteonlyone/portfolio/backend/internal/repositories"
	"go.uber.org/zap"
)

// TrackingService records page hits and assembles the admin overview.
type TrackingService struct {
	visitors  repositories.VisitorRepository
	posts     repositories.GuestbookRepository
	messages  repositories.MessageRepository
	portfolio repositories.PortfolioRepository
	policy    auth.Policy
	logger    *zap.Logger
}

func NewTrackingService(
	visitors repositories.VisitorRepository,
	posts repositories.GuestbookRepository,
	messages repositories.MessageRepository,
	portfolio repositories.PortfolioRepository,
	policy auth.Policy,
	logger *zap.Logger,
) *TrackingService {
	return &TrackingService{
		visitors:  visitors,
		posts:     posts,
		messages:  messages,
		portfolio: portfolio,
		policy:    policy,
		logger:    logger,
	}
}

// Track stores a hit. Errors are logged and dropped.
func (s *TrackingService) Track(ctx context.Context, ip, userAgent string) {
	if ip == "" {
		ip = "unknown"
	}
	if userAgent == "" {
		userAgent = "unknown"
	}

	err := s.visitors.RecordVisit(ctx, &models.Visitor{IPAddress: ip, UserAgent: userAgent, VisitedAt: time.Now()})
	if err != nil {
		s.logger.Warn("tracking error", zap.String("ip", ip), zap.Error(err))
	}
}

func (s *TrackingService) DashboardStats(ctx context.Context, subject auth.Subject) (*models.DashboardStats, error) {
	if err := requireAdmin(s.policy, subject, auth.ActionViewDashboard); err != nil {
		return nil, err
	}

	var stats models.DashboardStats
	var err error

	if stats.Visitors, err = s.visitors.CountVisits(ctx); err != nil {
		return nil, fail(s.logger, "Failed to load stats", err)
	}
	if stats.Projects, err = s.portfolio.CountProjects(ctx); err != nil {
		return nil, fail(s.logger, "Failed to load stats", err)
	}
	if stats.GuestbookPosts, err = s.posts.CountPosts(ctx); err != nil {
		return nil, fail(s.logger, "Failed to load stats", err)
	}
	if stats.UnreadGuestbook, err = s.posts.CountUnread(ctx); err != nil {
		return nil, fail(s.logger, "Failed to load stats", err)
	}
	if stats.Messages, err = s.messages.CountMessages(ctx); err != nil {
		return nil, fail(s.logger, "Failed to load stats", err)
	}
	return &stats, nil
}
