package services

import (
	"context"
	"errors"
	"strings"

	"github.com/xteonlyone/portfolio/backend/internal/auth"
	"github.com/xteonlyone/portfolio/backend/internal/models"
	"github.com/xteonlyone/portfolio/backend/pkg/mailer"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// requireAdmin is checked before any validation or write.
func requireAdmin(policy auth.Policy, subject auth.Subject, action auth.Action) error {
	if policy.IsAuthorized(subject, action) {
		return nil
	}
	if !subject.Authenticated() {
		return ErrUnauthenticated
	}
	return ErrForbidden
}

// AdminGuestbookService is the moderation side of the guestbook.
type AdminGuestbookService struct {
	repos   SocialRepos
	social  *SocialService
	threads threadLoader
	policy  auth.Policy
	logger  *zap.Logger
}

func NewAdminGuestbookService(repos SocialRepos, social *SocialService, policy auth.Policy, logger *zap.Logger) *AdminGuestbookService {
	return &AdminGuestbookService{
		repos:   repos,
		social:  social,
		threads: threadLoader{replies: repos.Replies, replyLikes: repos.ReplyLikes},
		policy:  policy,
		logger:  logger,
	}
}

// ListEntries returns every post newest-first for the moderation table.
func (s *AdminGuestbookService) ListEntries(ctx context.Context, subject auth.Subject) ([]models.AdminGuestbookRow, error) {
	if err := requireAdmin(s.policy, subject, auth.ActionModerateGuestbook); err != nil {
		return nil, err
	}

	posts, err := s.repos.Posts.ListPosts(ctx)
	if err != nil {
		return nil, fail(s.logger, "Failed to fetch guestbook", err)
	}

	ids := make([]string, len(posts))
	for i, p := range posts {
		ids[i] = p.ID
	}
	counts, err := s.repos.Replies.CountByPostIDs(ctx, ids)
	if err != nil {
		return nil, fail(s.logger, "Failed to fetch guestbook", err)
	}

	rows := make([]models.AdminGuestbookRow, len(posts))
	for i, p := range posts {
		rows[i] = models.AdminGuestbookRow{
			ID:         p.ID,
			Message:    p.Message,
			Topic:      p.Topic,
			IsRead:     p.IsRead,
			CreatedAt:  p.CreatedAt,
			User:       p.User.ToCompact(),
			Email:      p.User.Email,
			ReplyCount: counts[p.ID],
		}
	}
	return rows, nil
}

// GetThread returns a post with all of its replies newest-first.
func (s *AdminGuestbookService) GetThread(ctx context.Context, subject auth.Subject, postID string) (*models.Thread, error) {
	if err := requireAdmin(s.policy, subject, auth.ActionModerateGuestbook); err != nil {
		return nil, err
	}

	post, err := s.repos.Posts.GetPostByID(ctx, postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fail(s.logger, "Failed to fetch thread", err, zap.String("post_id", postID))
	}

	replies, err := s.threads.repliesByPost(ctx, []string{postID}, subject.ID, true, true)
	if err != nil {
		return nil, fail(s.logger, "Failed to fetch thread", err, zap.String("post_id", postID))
	}

	thread := &models.Thread{
		Post: models.ThreadPost{
			ID:        post.ID,
			Message:   post.Message,
			Topic:     post.Topic,
			IsRead:    post.IsRead,
			CreatedAt: post.CreatedAt,
			User:      post.User.ToCompact(),
			Email:     post.User.Email,
		},
		Replies: replies[postID],
	}
	if thread.Replies == nil {
		thread.Replies = []models.ReplyDetail{}
	}
	return thread, nil
}

// SubmitReply posts an official reply and lets the post owner know.
func (s *AdminGuestbookService) SubmitReply(ctx context.Context, subject auth.Subject, postID, content string) (*models.GuestbookReply, error) {
	if err := requireAdmin(s.policy, subject, auth.ActionModerateGuestbook); err != nil {
		return nil, err
	}

	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrEmptyContent
	}

	post, err := s.repos.Posts.GetPostByID(ctx, postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fail(s.logger, "Failed to reply", err, zap.String("post_id", postID))
	}

	reply := &models.GuestbookReply{PostID: postID, UserID: subject.ID, Content: content}
	if err := s.repos.Replies.CreateReply(ctx, reply); err != nil {
		return nil, fail(s.logger, "Failed to reply", err, zap.String("post_id", postID))
	}
	if err := s.social.loadAuthor(ctx, reply); err != nil {
		return nil, fail(s.logger, "Failed to reply", err, zap.String("reply_id", reply.ID))
	}

	if post.UserID == subject.ID {
		return reply, nil
	}

	if err := s.social.notify(ctx, post.UserID, subject.ID, models.NotificationReply, postID); err != nil {
		return nil, fail(s.logger, "Failed to reply", err, zap.String("post_id", postID))
	}

	if post.User.Email != "" {
		s.social.sendEmail(ctx, "admin-reply-email", s.social.mail.AdminFrom, post.User.Email, mailer.SubjectAdminReply, mailer.AdminReplyNotification{
			RecipientName: nameOr(post.User.Name, "User"),
			ReplyContent:  content,
			PostURL:       s.social.mail.guestbookURL(),
		})
	}
	return reply, nil
}

// MarkAsRead sets the read flag. Nothing clears it.
func (s *AdminGuestbookService) MarkAsRead(ctx context.Context, subject auth.Subject, postID string) error {
	if err := requireAdmin(s.policy, subject, auth.ActionModerateGuestbook); err != nil {
		return err
	}

	if err := s.repos.Posts.MarkAsRead(ctx, postID); err != nil {
		return fail(s.logger, "Failed to update status", err, zap.String("post_id", postID))
	}
	return nil
}

func (s *AdminGuestbookService) DeleteReply(ctx context.Context, subject auth.Subject, replyID string) error {
	if err := requireAdmin(s.policy, subject, auth.ActionModerateGuestbook); err != nil {
		return err
	}

	if err := s.repos.Replies.DeleteReply(ctx, replyID); err != nil {
		return fail(s.logger, "Failed to delete reply", err, zap.String("reply_id", replyID))
	}
	return nil
}

// DeleteEntry removes a post together with its replies and likes.
func (s *AdminGuestbookService) DeleteEntry(ctx context.Context, subject auth.Subject, postID string) error {
	if err := requireAdmin(s.policy, subject, auth.ActionModerateGuestbook); err != nil {
		return err
	}

	if err := s.repos.Posts.DeletePost(ctx, postID); err != nil {
		return fail(s.logger, "Failed to delete", err, zap.String("post_id", postID))
	}
	return nil
}

func (s *AdminGuestbookService) ToggleReplyLike(ctx context.Context, subject auth.Subject, replyID string) (bool, error) {
	if err := requireAdmin(s.policy, subject, auth.ActionModerateGuestbook); err != nil {
		return false, err
	}
	return s.social.ToggleReplyLike(ctx, subject, replyID)
}
