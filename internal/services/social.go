package services

import (
	"context"
	"errors"
	"strings"

	"github.com/xteonlyone/portfolio/backend/internal/auth"
	"github.com/xteonlyone/portfolio/backend/internal/models"
	"github.com/xteonlyone/portfolio/backend/internal/repositories"
	"github.com/xteonlyone/portfolio/backend/pkg/mailer"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// MailSettings are the sender addresses and links used in notification email.
type MailSettings struct {
	From      string
	AdminFrom string
	AppURL    string
}

func (m MailSettings) guestbookURL() string {
	return strings.TrimRight(m.AppURL, "/") + "/guestbook"
}

// SocialRepos groups the repositories the guestbook services share.
type SocialRepos struct {
	Users         repositories.UserRepository
	Posts         repositories.GuestbookRepository
	Replies       repositories.ReplyRepository
	Likes         repositories.LikeRepository
	ReplyLikes    repositories.ReplyLikeRepository
	Notifications repositories.NotificationRepository
}

// SocialService mutates like and reply state and fans out notifications.
type SocialService struct {
	repos   SocialRepos
	mailer  mailer.Mailer
	effects *BestEffort
	mail    MailSettings
	logger  *zap.Logger
}

func NewSocialService(repos SocialRepos, m mailer.Mailer, effects *BestEffort, mail MailSettings, logger *zap.Logger) *SocialService {
	return &SocialService{repos: repos, mailer: m, effects: effects, mail: mail, logger: logger}
}

// ToggleGuestbookLike likes or unlikes a post and reports the new state.
// A new like notifies the post owner unless they liked their own post.
func (s *SocialService) ToggleGuestbookLike(ctx context.Context, subject auth.Subject, postID string) (bool, error) {
	if !subject.Authenticated() {
		return false, ErrUnauthenticated
	}

	post, err := s.repos.Posts.GetPostByID(ctx, postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, ErrNotFound
		}
		return false, fail(s.logger, "Failed to like", err, zap.String("post_id", postID))
	}

	liked, err := s.repos.Likes.HasUserLikedPost(ctx, postID, subject.ID)
	if err != nil {
		return false, fail(s.logger, "Failed to like", err, zap.String("post_id", postID))
	}

	if liked {
		if err := s.repos.Likes.DeleteLike(ctx, postID, subject.ID); err != nil {
			return false, fail(s.logger, "Failed to like", err, zap.String("post_id", postID))
		}
		return false, nil
	}

	if err := s.repos.Likes.CreateLike(ctx, &models.GuestbookLike{PostID: postID, UserID: subject.ID}); err != nil {
		return false, fail(s.logger, "Failed to like", err, zap.String("post_id", postID))
	}

	if post.UserID != subject.ID {
		if err := s.notify(ctx, post.UserID, subject.ID, models.NotificationLike, postID); err != nil {
			return true, fail(s.logger, "Failed to like", err, zap.String("post_id", postID))
		}
	}
	return true, nil
}

// ToggleReplyLike likes or unlikes a reply. Reply likes never notify.
func (s *SocialService) ToggleReplyLike(ctx context.Context, subject auth.Subject, replyID string) (bool, error) {
	if !subject.Authenticated() {
		return false, ErrUnauthenticated
	}

	if _, err := s.repos.Replies.GetReplyByID(ctx, replyID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, ErrNotFound
		}
		return false, fail(s.logger, "Failed to like reply", err, zap.String("reply_id", replyID))
	}

	liked, err := s.repos.ReplyLikes.HasUserLikedReply(ctx, replyID, subject.ID)
	if err != nil {
		return false, fail(s.logger, "Failed to like reply", err, zap.String("reply_id", replyID))
	}

	if liked {
		if err := s.repos.ReplyLikes.DeleteReplyLike(ctx, replyID, subject.ID); err != nil {
			return false, fail(s.logger, "Failed to like reply", err, zap.String("reply_id", replyID))
		}
		return false, nil
	}

	if err := s.repos.ReplyLikes.CreateReplyLike(ctx, &models.GuestbookReplyLike{ReplyID: replyID, UserID: subject.ID}); err != nil {
		return false, fail(s.logger, "Failed to like reply", err, zap.String("reply_id", replyID))
	}
	return true, nil
}

// SubmitReply stores a reply on postID. When replyToID names another reply
// its author is notified, otherwise the post owner is. Nobody is notified
// about their own activity. The email is best-effort.
func (s *SocialService) SubmitReply(ctx context.Context, subject auth.Subject, postID, content, replyToID string) (*models.GuestbookReply, error) {
	if !subject.Authenticated() {
		return nil, ErrUnauthenticated
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
	if err := s.loadAuthor(ctx, reply); err != nil {
		return nil, fail(s.logger, "Failed to reply", err, zap.String("reply_id", reply.ID))
	}

	target, toComment, err := s.replyTarget(ctx, post, replyToID)
	if err != nil {
		return nil, fail(s.logger, "Failed to reply", err, zap.String("reply_to_id", replyToID))
	}
	if target == nil || target.ID == subject.ID {
		return reply, nil
	}

	if err := s.notify(ctx, target.ID, subject.ID, models.NotificationReply, postID); err != nil {
		return nil, fail(s.logger, "Failed to reply", err, zap.String("post_id", postID))
	}

	if target.Email != "" {
		subjectLine := mailer.SubjectReplyToPost
		if toComment {
			subjectLine = mailer.SubjectReplyToComment
		}
		s.sendEmail(ctx, "reply-email", s.mail.From, target.Email, subjectLine, mailer.ReplyNotification{
			RecipientName: nameOr(target.Name, "User"),
			SenderName:    subject.DisplayName(),
			ReplyContent:  content,
			PostURL:       s.mail.guestbookURL(),
		})
	}
	return reply, nil
}

// replyTarget resolves who should hear about a reply. A replyToID that no
// longer exists yields no target.
func (s *SocialService) replyTarget(ctx context.Context, post *models.GuestbookPost, replyToID string) (*models.User, bool, error) {
	if replyToID == "" {
		return &post.User, false, nil
	}

	parent, err := s.repos.Replies.GetReplyByID(ctx, replyToID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, true, nil
		}
		return nil, true, err
	}
	return &parent.User, true, nil
}

// loadAuthor fills reply.User so a freshly created reply renders like a
// listed one.
func (s *SocialService) loadAuthor(ctx context.Context, reply *models.GuestbookReply) error {
	user, err := s.repos.Users.GetUserByID(ctx, reply.UserID)
	if err != nil {
		return err
	}
	reply.User = *user
	return nil
}

func (s *SocialService) notify(ctx context.Context, recipientID, triggerID, kind, referenceID string) error {
	return s.repos.Notifications.CreateNotification(ctx, &models.Notification{
		UserID:        recipientID,
		TriggerUserID: &triggerID,
		Type:          kind,
		ReferenceID:   referenceID,
	})
}

type renderer interface {
	Render() (string, error)
}

func (s *SocialService) sendEmail(ctx context.Context, task, from, to, subjectLine string, body renderer) {
	s.effects.Run(ctx, task, func(ctx context.Context) error {
		html, err := body.Render()
		if err != nil {
			return err
		}
		return s.mailer.Send(ctx, mailer.Email{From: from, To: to, Subject: subjectLine, HTML: html})
	})
}

func nameOr(name, fallback string) string {
	if name == "" {
		return fallback
	}
	return name
}
