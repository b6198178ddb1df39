package playground_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-playground/components/playground"
	"github.com/goliatone/go-playground/components/playground/playgroundtest"
)

func TestNotificationQueueExpiresEachEntryIndependently(t *testing.T) {
	scheduler := playgroundtest.NewScheduler()
	var expired []string
	queue := playground.NewNotificationQueue(scheduler, playground.WithExpireHook(func(n playground.Notification) {
		expired = append(expired, n.Text)
	}))

	queue.Push("A")
	scheduler.Advance(1000 * time.Millisecond)
	queue.Push("B")
	require.Equal(t, 2, queue.Len())

	scheduler.Advance(2000 * time.Millisecond)
	entries := queue.Entries()
	require.Len(t, entries, 1, "A expires at 3000ms")
	assert.Equal(t, "B", entries[0].Text)

	scheduler.Advance(999 * time.Millisecond)
	assert.Equal(t, 1, queue.Len(), "B still visible at 3999ms")

	scheduler.Advance(time.Millisecond)
	assert.Equal(t, 0, queue.Len())
	assert.Equal(t, []string{"A", "B"}, expired)
}

func TestNotificationQueueKeepsDuplicatesInOrder(t *testing.T) {
	scheduler := playgroundtest.NewScheduler()
	queue := playground.NewNotificationQueue(scheduler)
	first := queue.Push("same")
	second := queue.Push("same")
	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, first.CreatedAt.Add(playground.NotificationTTL), first.ExpiresAt)

	entries := queue.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, first.ID, entries[0].ID)
	assert.Equal(t, second.ID, entries[1].ID)

	scheduler.Advance(playground.NotificationTTL)
	assert.Zero(t, queue.Len())
}

func TestNotificationQueueCustomTTL(t *testing.T) {
	scheduler := playgroundtest.NewScheduler()
	queue := playground.NewNotificationQueue(scheduler, playground.WithNotificationTTL(500*time.Millisecond))
	queue.Push("short")
	scheduler.Advance(499 * time.Millisecond)
	assert.Equal(t, 1, queue.Len())
	scheduler.Advance(time.Millisecond)
	assert.Equal(t, 0, queue.Len())
}
