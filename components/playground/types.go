package playground

import (
	"context"
	"time"
)

// RefreshHook notifies transports (REST/WebSocket) about playground changes.
type RefreshHook interface {
	PlaygroundUpdated(ctx context.Context, event PlaygroundEvent) error
}

// EventKind classifies playground events.
type EventKind string

const (
	EventStatus             EventKind = "status"
	EventNotificationPush   EventKind = "notification.push"
	EventNotificationExpire EventKind = "notification.expire"
	EventDelay              EventKind = "delay"
	EventRegistration       EventKind = "registration"
	EventTable              EventKind = "table"
	EventModal              EventKind = "modal"
	EventDrag               EventKind = "drag"
)

// PlaygroundEvent describes changes that transports might care about.
type PlaygroundEvent struct {
	Kind           EventKind `json:"kind"`
	Widget         WidgetKey `json:"widget,omitempty"`
	Text           string    `json:"text,omitempty"`
	NotificationID string    `json:"notification_id,omitempty"`
	At             time.Time `json:"at"`
}

// Notification is a transient message shown to the user.
type Notification struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Confirmation is revealed after a successful registration submission.
type Confirmation struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}

// Snapshot is a consistent read of the whole playground state.
type Snapshot struct {
	DelaySeconds  int                  `json:"delay_seconds"`
	Statuses      map[WidgetKey]string `json:"statuses"`
	Notifications []Notification       `json:"notifications"`
	InputValue    string               `json:"input_value"`
	Dragging      bool                 `json:"dragging"`
	ModalOpen     bool                 `json:"modal_open"`
	Registration  RegistrationView     `json:"registration"`
	Table         TableView            `json:"table"`
	DispatchCount map[WidgetKey]int    `json:"dispatch_count"`
}

// RegistrationView exposes the form, its last error and confirmation state.
type RegistrationView struct {
	Form         RegistrationForm `json:"form"`
	Error        string           `json:"error,omitempty"`
	Submitting   bool             `json:"submitting"`
	Confirmation *Confirmation    `json:"confirmation,omitempty"`
}

// TableView exposes the ordered records and the edit mode.
type TableView struct {
	Records   []TableRecord `json:"records"`
	Editing   bool          `json:"editing"`
	EditingID int           `json:"editing_id,omitempty"`
	Draft     *RowFields    `json:"draft,omitempty"`
	Input     NewRowInput   `json:"input"`
}
