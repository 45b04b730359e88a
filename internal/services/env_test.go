package services

import (
	"testing"
	"time"

	"github.com/xteonlyone/portfolio/backend/internal/auth"
	"github.com/xteonlyone/portfolio/backend/internal/models"
	"github.com/xteonlyone/portfolio/backend/internal/repositories"
	"github.com/xteonlyone/portfolio/backend/internal/testutil"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const adminEmail = "admin@example.com"

var base = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

type failure struct {
	task string
	err  error
}

type env struct {
	db       *gorm.DB
	repos    SocialRepos
	mailer   *testutil.Mailer
	failures []failure
	policy   *auth.AdminEmailPolicy
	mail     MailSettings

	social    *SocialService
	guestbook *GuestbookService
	admin     *AdminGuestbookService
	notes     *NotificationService
}

func newEnv(t *testing.T) *env {
	t.Helper()

	db := testutil.NewDB(t)
	logger := zap.NewNop()

	e := &env{
		db: db,
		repos: SocialRepos{
			Users:         repositories.NewPostgresUserRepository(db),
			Posts:         repositories.NewPostgresGuestbookRepository(db),
			Replies:       repositories.NewPostgresReplyRepository(db),
			Likes:         repositories.NewPostgresLikeRepository(db),
			ReplyLikes:    repositories.NewPostgresReplyLikeRepository(db),
			Notifications: repositories.NewPostgresNotificationRepository(db),
		},
		mailer: &testutil.Mailer{},
		policy: auth.NewAdminEmailPolicy(adminEmail),
		mail: MailSettings{
			From:      "Guestbook <noreply@example.com>",
			AdminFrom: "Admin <admin@example.com>",
			AppURL:    "https://example.com/",
		},
	}

	effects := NewBestEffort(logger).WithSink(func(task string, err error) {
		e.failures = append(e.failures, failure{task: task, err: err})
	})

	e.social = NewSocialService(e.repos, e.mailer, effects, e.mail, logger)
	e.guestbook = NewGuestbookService(e.repos, logger)
	e.admin = NewAdminGuestbookService(e.repos, e.social, e.policy, logger)
	e.notes = NewNotificationService(e.repos.Notifications, logger)
	return e
}

func (e *env) user(t *testing.T, name, email string) (*models.User, auth.Subject) {
	t.Helper()
	u := testutil.CreateUser(t, e.db, name, email)
	return u, auth.SubjectFromUser(u)
}
