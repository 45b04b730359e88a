// Package testutil holds fixtures shared by service and handler tests.
package testutil

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/xteonlyone/portfolio/backend/internal/models"
	"github.com/xteonlyone/portfolio/backend/pkg/mailer"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDB opens a private in-memory SQLite database with foreign keys on and
// the full schema migrated.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(models.All()...))
	return db
}

// CreateUser inserts a user with the given name and email.
func CreateUser(t testing.TB, db *gorm.DB, name, email string) *models.User {
	t.Helper()
	user := &models.User{Name: name, Email: email, FirebaseUID: "fb-" + uuid.NewString()}
	require.NoError(t, db.Create(user).Error)
	return user
}

// CreatePost inserts a guestbook post at a fixed time so ordering is stable.
func CreatePost(t testing.TB, db *gorm.DB, author *models.User, message string, at time.Time) *models.GuestbookPost {
	t.Helper()
	post := &models.GuestbookPost{UserID: author.ID, Message: message, CreatedAt: at}
	require.NoError(t, db.Omit("User").Create(post).Error)
	post.User = *author
	return post
}

// CreateReply inserts a reply at a fixed time.
func CreateReply(t testing.TB, db *gorm.DB, post *models.GuestbookPost, author *models.User, content string, at time.Time) *models.GuestbookReply {
	t.Helper()
	reply := &models.GuestbookReply{PostID: post.ID, UserID: author.ID, Content: content, CreatedAt: at}
	require.NoError(t, db.Omit("User").Create(reply).Error)
	reply.User = *author
	return reply
}

// Notifications returns every notification addressed to userID.
func Notifications(t testing.TB, db *gorm.DB, userID string) []models.Notification {
	t.Helper()
	var rows []models.Notification
	require.NoError(t, db.Where("user_id = ?", userID).Order("created_at ASC").Find(&rows).Error)
	return rows
}

// Count returns the number of rows of model matching the optional condition.
func Count(t testing.TB, db *gorm.DB, model any, query ...any) int64 {
	t.Helper()
	var n int64
	q := db.Model(model)
	if len(query) > 0 {
		q = q.Where(query[0], query[1:]...)
	}
	require.NoError(t, q.Count(&n).Error)
	return n
}

// Mailer records every email and optionally fails.
type Mailer struct {
	mu   sync.Mutex
	Sent []mailer.Email
	Err  error
}

func (m *Mailer) Send(_ context.Context, email mailer.Email) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.Sent = append(m.Sent, email)
	return nil
}

func (m *Mailer) Emails() []mailer.Email {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]mailer.Email(nil), m.Sent...)
}
