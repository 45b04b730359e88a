package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xteonlyone/portfolio/backend/internal/auth"
	"github.com/xteonlyone/portfolio/backend/internal/models"
)

func seedNotifications(t *testing.T, e *env, recipient, trigger string, n int) []models.Notification {
	t.Helper()
	rows := make([]models.Notification, n)
	for i := range rows {
		trig := trigger
		rows[i] = models.Notification{
			UserID:        recipient,
			TriggerUserID: &trig,
			Type:          models.NotificationLike,
			ReferenceID:   "post",
			CreatedAt:     base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, e.db.Omit("User", "TriggerUser").Create(&rows[i]).Error)
	}
	return rows
}

func TestNotificationList_NewestTenWithTrigger(t *testing.T) {
	e := newEnv(t)
	_, ana := e.user(t, "Ana", "ana@example.com")
	budi, _ := e.user(t, "Budi", "budi@example.com")
	rows := seedNotifications(t, e, ana.ID, budi.ID, 12)

	views, err := e.notes.List(context.Background(), ana)
	require.NoError(t, err)
	require.Len(t, views, models.NotificationListLimit)

	assert.Equal(t, rows[11].ID, views[0].ID)
	assert.Equal(t, rows[2].ID, views[9].ID)
	for i := 1; i < len(views); i++ {
		assert.True(t, views[i-1].CreatedAt.After(views[i].CreatedAt))
	}
	require.NotNil(t, views[0].TriggerUser)
	assert.Equal(t, "Budi", views[0].TriggerUser.Name)
}

func TestNotificationList_Anonymous(t *testing.T) {
	e := newEnv(t)

	views, err := e.notes.List(context.Background(), auth.Subject{})
	require.NoError(t, err)
	assert.NotNil(t, views)
	assert.Empty(t, views)

	count, err := e.notes.UnreadCount(context.Background(), auth.Subject{})
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestNotificationList_TriggerUserDeleted(t *testing.T) {
	e := newEnv(t)
	_, ana := e.user(t, "Ana", "ana@example.com")
	budi, _ := e.user(t, "Budi", "budi@example.com")
	seedNotifications(t, e, ana.ID, budi.ID, 1)

	require.NoError(t, e.db.Delete(&models.User{}, "id = ?", budi.ID).Error)

	views, err := e.notes.List(context.Background(), ana)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Nil(t, views[0].TriggerUserID)
	assert.Nil(t, views[0].TriggerUser)
}

func TestNotificationMarkAsRead_ScopedToOwner(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	_, ana := e.user(t, "Ana", "ana@example.com")
	budi, budiSubject := e.user(t, "Budi", "budi@example.com")
	rows := seedNotifications(t, e, ana.ID, budi.ID, 2)

	// Someone else's id matches nothing.
	require.NoError(t, e.notes.MarkAsRead(ctx, budiSubject, rows[0].ID))
	count, err := e.notes.UnreadCount(ctx, ana)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	require.NoError(t, e.notes.MarkAsRead(ctx, ana, rows[0].ID))
	count, err = e.notes.UnreadCount(ctx, ana)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	assert.ErrorIs(t, e.notes.MarkAsRead(ctx, auth.Subject{}, rows[1].ID), ErrUnauthenticated)
}

func TestNotificationMarkAllAsRead(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	_, ana := e.user(t, "Ana", "ana@example.com")
	budi, budiSubject := e.user(t, "Budi", "budi@example.com")
	seedNotifications(t, e, ana.ID, budi.ID, 3)
	seedNotifications(t, e, budi.ID, ana.ID, 2)

	require.NoError(t, e.notes.MarkAllAsRead(ctx, ana))

	count, err := e.notes.UnreadCount(ctx, ana)
	require.NoError(t, err)
	assert.Zero(t, count)

	count, err = e.notes.UnreadCount(ctx, budiSubject)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	// Idempotent.
	require.NoError(t, e.notes.MarkAllAsRead(ctx, ana))
	assert.ErrorIs(t, e.notes.MarkAllAsRead(ctx, auth.Subject{}), ErrUnauthenticated)
}
