package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xteonlyone/portfolio/backend/internal/auth"
	"github.com/xteonlyone/portfolio/backend/internal/models"
	"github.com/xteonlyone/portfolio/backend/internal/repositories"
	"github.com/xteonlyone/portfolio/backend/internal/testutil"
	"github.com/xteonlyone/portfolio/backend/pkg/mailer"
	"go.uber.org/zap"
)

func newMessageService(e *env) *MessageService {
	return NewMessageService(repositories.NewPostgresMessageRepository(e.db), e.mailer, e.mail, e.policy, zap.NewNop())
}

func TestMessageSend_GuestsAndMembers(t *testing.T) {
	e := newEnv(t)
	svc := newMessageService(e)
	ctx := context.Background()
	_, ana := e.user(t, "Ana", "ana@example.com")

	guest, err := svc.Send(ctx, auth.Subject{}, "hello from nowhere")
	require.NoError(t, err)
	assert.Nil(t, guest.UserID)

	member, err := svc.Send(ctx, ana, "hello from Ana")
	require.NoError(t, err)
	require.NotNil(t, member.UserID)
	assert.Equal(t, ana.ID, *member.UserID)

	_, err = svc.Send(ctx, ana, "   ")
	assert.ErrorIs(t, err, ErrEmptyContent)

	assert.Equal(t, int64(2), testutil.Count(t, e.db, &models.Message{}))
}

func TestMessageAdminOperations(t *testing.T) {
	e := newEnv(t)
	svc := newMessageService(e)
	ctx := context.Background()
	_, admin := e.user(t, "Admin", adminEmail)
	_, ana := e.user(t, "Ana", "ana@example.com")

	msg, err := svc.Send(ctx, ana, "is this thing on?")
	require.NoError(t, err)

	_, err = svc.List(ctx, ana)
	assert.ErrorIs(t, err, ErrForbidden)
	assert.ErrorIs(t, svc.Delete(ctx, ana, msg.ID), ErrForbidden)
	assert.ErrorIs(t, svc.Reply(ctx, ana, msg.ID, "hi"), ErrForbidden)

	list, err := svc.List(ctx, admin)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Ana", list[0].User.Name)

	require.NoError(t, svc.Reply(ctx, admin, msg.ID, "loud and clear"))
	emails := e.mailer.Emails()
	require.Len(t, emails, 1)
	assert.Equal(t, "ana@example.com", emails[0].To)
	assert.Equal(t, e.mail.AdminFrom, emails[0].From)
	assert.Equal(t, mailer.SubjectMessageReply, emails[0].Subject)
	assert.Contains(t, emails[0].HTML, "is this thing on?")
	assert.Contains(t, emails[0].HTML, "loud and clear")

	require.NoError(t, svc.Delete(ctx, admin, msg.ID))
	assert.Zero(t, testutil.Count(t, e.db, &models.Message{}))
}

func TestMessageReply_Failures(t *testing.T) {
	e := newEnv(t)
	svc := newMessageService(e)
	ctx := context.Background()
	_, admin := e.user(t, "Admin", adminEmail)
	_, ana := e.user(t, "Ana", "ana@example.com")

	guest, err := svc.Send(ctx, auth.Subject{}, "anonymous note")
	require.NoError(t, err)
	assert.ErrorIs(t, svc.Reply(ctx, admin, guest.ID, "hi"), ErrNoRecipient)
	assert.ErrorIs(t, svc.Reply(ctx, admin, "missing", "hi"), ErrNotFound)

	member, err := svc.Send(ctx, ana, "question")
	require.NoError(t, err)
	assert.ErrorIs(t, svc.Reply(ctx, admin, member.ID, " "), ErrEmptyContent)

	e.mailer.Err = errors.New("rejected")
	err = svc.Reply(ctx, admin, member.ID, "answer")
	var actionErr *ActionError
	require.ErrorAs(t, err, &actionErr)
	assert.Equal(t, "Failed to send email", actionErr.Message)
}
