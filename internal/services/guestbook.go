package services

import (
	"context"
	"strings"

	"github.com/xteonlyone/portfolio/backend/internal/auth"
	"github.com/xteonlyone/portfolio/backend/internal/models"
	"go.uber.org/zap"
)

// GuestbookService is the public guestbook page: signing it and reading it.
type GuestbookService struct {
	repos   SocialRepos
	threads threadLoader
	logger  *zap.Logger
}

func NewGuestbookService(repos SocialRepos, logger *zap.Logger) *GuestbookService {
	return &GuestbookService{
		repos:   repos,
		threads: threadLoader{replies: repos.Replies, replyLikes: repos.ReplyLikes},
		logger:  logger,
	}
}

// CreateEntry signs the guestbook. Messages longer than the limit are cut
// rather than rejected.
func (s *GuestbookService) CreateEntry(ctx context.Context, subject auth.Subject, message, topic string) (*models.GuestbookPost, error) {
	if !subject.Authenticated() {
		return nil, ErrUnauthenticated
	}

	message = strings.TrimSpace(message)
	if message == "" {
		return nil, ErrEmptyContent
	}

	topic = truncateRunes(strings.TrimSpace(topic), models.MaxTopicLength)
	if topic == "" {
		topic = models.DefaultTopic
	}

	post := &models.GuestbookPost{
		UserID:  subject.ID,
		Message: truncateRunes(message, models.MaxMessageLength),
		Topic:   topic,
	}
	if err := s.repos.Posts.CreatePost(ctx, post); err != nil {
		return nil, fail(s.logger, "Failed to sign guestbook", err, zap.String("user_id", subject.ID))
	}
	return post, nil
}

// ListEntries returns posts newest-first with replies oldest-first, each
// carrying like counts and whether the viewer liked it.
func (s *GuestbookService) ListEntries(ctx context.Context, viewer auth.Subject) ([]models.GuestbookEntry, error) {
	posts, err := s.repos.Posts.ListPosts(ctx)
	if err != nil {
		return nil, fail(s.logger, "Failed to fetch guestbook", err)
	}

	ids := make([]string, len(posts))
	for i, p := range posts {
		ids[i] = p.ID
	}

	counts, err := s.repos.Likes.CountByPostIDs(ctx, ids)
	if err != nil {
		return nil, fail(s.logger, "Failed to fetch guestbook", err)
	}
	liked, err := s.repos.Likes.LikedPostIDs(ctx, viewer.ID, ids)
	if err != nil {
		return nil, fail(s.logger, "Failed to fetch guestbook", err)
	}
	replies, err := s.threads.repliesByPost(ctx, ids, viewer.ID, false, false)
	if err != nil {
		return nil, fail(s.logger, "Failed to fetch guestbook", err)
	}

	entries := make([]models.GuestbookEntry, len(posts))
	for i, p := range posts {
		r := replies[p.ID]
		if r == nil {
			r = []models.ReplyDetail{}
		}
		entries[i] = models.GuestbookEntry{
			ID:        p.ID,
			Message:   p.Message,
			Topic:     p.Topic,
			CreatedAt: p.CreatedAt,
			User:      p.User.ToCompact(),
			LikeCount: counts[p.ID],
			IsLiked:   liked[p.ID],
			Replies:   r,
		}
	}
	return entries, nil
}
