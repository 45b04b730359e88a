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

// MessageService handles the private contact form.
type MessageService struct {
	repo   repositories.MessageRepository
	mailer mailer.Mailer
	mail   MailSettings
	policy auth.Policy
	logger *zap.Logger
}

func NewMessageService(repo repositories.MessageRepository, m mailer.Mailer, mail MailSettings, policy auth.Policy, logger *zap.Logger) *MessageService {
	return &MessageService{repo: repo, mailer: m, mail: mail, policy: policy, logger: logger}
}

// Send stores a message. Guests may write too; their message has no author.
func (s *MessageService) Send(ctx context.Context, subject auth.Subject, content string) (*models.Message, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrEmptyContent
	}

	message := &models.Message{Content: truncateRunes(content, models.MaxMessageLength)}
	if subject.Authenticated() {
		message.UserID = &subject.ID
	}

	if err := s.repo.CreateMessage(ctx, message); err != nil {
		return nil, fail(s.logger, "Something went wrong", err)
	}
	return message, nil
}

func (s *MessageService) List(ctx context.Context, subject auth.Subject) ([]models.Message, error) {
	if err := requireAdmin(s.policy, subject, auth.ActionManageMessages); err != nil {
		return nil, err
	}

	messages, err := s.repo.ListMessages(ctx)
	if err != nil {
		return nil, fail(s.logger, "Failed to fetch messages", err)
	}
	return messages, nil
}

func (s *MessageService) Delete(ctx context.Context, subject auth.Subject, id string) error {
	if err := requireAdmin(s.policy, subject, auth.ActionManageMessages); err != nil {
		return err
	}

	if err := s.repo.DeleteMessage(ctx, id); err != nil {
		return fail(s.logger, "Failed to delete message", err, zap.String("message_id", id))
	}
	return nil
}

// Reply emails the author of a message. Sending is the whole operation, so
// a delivery failure is returned to the caller.
func (s *MessageService) Reply(ctx context.Context, subject auth.Subject, id, content string) error {
	if err := requireAdmin(s.policy, subject, auth.ActionManageMessages); err != nil {
		return err
	}

	content = strings.TrimSpace(content)
	if content == "" {
		return ErrEmptyContent
	}

	message, err := s.repo.GetMessageByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fail(s.logger, "Failed to send email", err, zap.String("message_id", id))
	}
	if message.User == nil || message.User.Email == "" {
		return ErrNoRecipient
	}

	html, err := mailer.MessageReply{
		UserName:        nameOr(message.User.Name, "there"),
		OriginalMessage: message.Content,
		ReplyContent:    content,
	}.Render()
	if err != nil {
		return fail(s.logger, "Failed to send email", err, zap.String("message_id", id))
	}

	err = s.mailer.Send(ctx, mailer.Email{
		From:    s.mail.AdminFrom,
		To:      message.User.Email,
		Subject: mailer.SubjectMessageReply,
		HTML:    html,
	})
	if err != nil {
		return fail(s.logger, "Failed to send email", err, zap.String("message_id", id))
	}
	return nil
}
