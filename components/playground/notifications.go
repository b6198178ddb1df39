package playground

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// NotificationTTL is how long every notification stays visible.
const NotificationTTL = 3000 * time.Millisecond

// NotificationQueue is an append-only list of self-expiring messages. Every
// entry owns its expiry timer, so later pushes never extend or shorten the
// lifetime of earlier ones.
type NotificationQueue struct {
	mu        sync.RWMutex
	entries   []Notification
	ttl       time.Duration
	scheduler Scheduler
	onExpire  func(Notification)
}

// NotificationOption customizes a queue.
type NotificationOption func(*NotificationQueue)

// WithNotificationTTL overrides the default time to live.
func WithNotificationTTL(ttl time.Duration) NotificationOption {
	return func(q *NotificationQueue) {
		if ttl > 0 {
			q.ttl = ttl
		}
	}
}

// WithExpireHook registers a callback invoked after an entry is removed.
func WithExpireHook(fn func(Notification)) NotificationOption {
	return func(q *NotificationQueue) {
		q.onExpire = fn
	}
}

// NewNotificationQueue builds a queue backed by the scheduler.
func NewNotificationQueue(scheduler Scheduler, opts ...NotificationOption) *NotificationQueue {
	if scheduler == nil {
		scheduler = NewTimerScheduler()
	}
	q := &NotificationQueue{ttl: NotificationTTL, scheduler: scheduler}
	for _, opt := range opts {
		opt(q)
	}
	return q
}

// Push appends text at the tail and schedules its removal. It never fails and
// duplicates are kept.
func (q *NotificationQueue) Push(text string) Notification {
	now := q.scheduler.Now()
	n := Notification{
		ID:        newNotificationID(),
		Text:      text,
		CreatedAt: now,
		ExpiresAt: now.Add(q.ttl),
	}
	q.mu.Lock()
	q.entries = append(q.entries, n)
	q.mu.Unlock()
	q.scheduler.Schedule(q.ttl, func() { q.remove(n.ID) })
	return n
}

func (q *NotificationQueue) remove(id string) {
	q.mu.Lock()
	var removed *Notification
	for i, n := range q.entries {
		if n.ID == id {
			removed = &n
			q.entries = append(q.entries[:i:i], q.entries[i+1:]...)
			break
		}
	}
	q.mu.Unlock()
	if removed != nil && q.onExpire != nil {
		q.onExpire(*removed)
	}
}

// Entries returns the live notifications, oldest first.
func (q *NotificationQueue) Entries() []Notification {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return append([]Notification{}, q.entries...)
}

// Len returns the number of live notifications.
func (q *NotificationQueue) Len() int {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return len(q.entries)
}

func newNotificationID() string {
	if id, err := uuid.NewV7(); err == nil {
		return id.String()
	}
	return uuid.NewString()
}
