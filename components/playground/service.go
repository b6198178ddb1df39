package playground

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	goerrors "github.com/goliatone/go-errors"
)

// Status texts applied by gestures.
const (
	TextSingleClick      = "Single Click Performed!"
	TextDoubleClick      = "Double Click Performed!"
	TextRightClick       = "Right Click Performed!"
	TextHoverEnter       = "You are hovering!"
	TextHoverLeave       = "Hover left!"
	TextDropped          = "Dropped Successfully!"
	TextChecked          = "Checked"
	TextUnchecked        = "Unchecked"
	TextTimedStarted     = "Action Started... Wait..."
	TextTimedFinished    = "Delayed Action Finished!"
	TextBlueLocator      = "Blue Home Clicked!"
	TextYellowLocator    = "Yellow Home Clicked!"
	TextAlertClosed      = "Alert Closed"
	TextConfirmed        = "Confirmed!"
	TextCancelled        = "Cancelled!"
	TextNoInput          = "No input"
	TextModalOpen        = "Open"
	TextModalClosed      = "Closed"
	TextSubmitting       = "Submitting registration..."
	TextRegistrationDone = "Registration Successful!"
)

// Options configures the playground Service. Every collaborator is provided
// via interface so hosts can swap implementations, most notably the Scheduler
// in tests.
type Options struct {
	Catalog          Catalog
	PayloadValidator PayloadValidator
	Scheduler        Scheduler
	RefreshHook      RefreshHook
	Telemetry        Telemetry
	DelaySeconds     int
	NotificationTTL  time.Duration
	// SeedRecords fills the orders table. Nil uses DefaultSeedRecords; an
	// empty slice starts with an empty table.
	SeedRecords []TableRecord
	// Random returns a value in [0,n). It drives order ids and the
	// registration latency.
	Random func(n int) int
}

// Service owns the playground state. A single mutex serializes every
// mutation so each gesture applies atomically; timers only take the lock when
// they fire.
type Service struct {
	opts Options

	mu            sync.Mutex
	delay         *DelayPolicy
	statuses      *StatusStore
	notifications *NotificationQueue
	dispatcher    *Dispatcher
	table         *Table
	registration  registrationState
	inputValue    string
	dragging      bool
	modalOpen     bool
	dispatches    map[WidgetKey]int
}

type registrationState struct {
	form         RegistrationForm
	err          string
	submitting   bool
	confirmation *Confirmation
}

// NewService builds a Service instance with safe defaults.
func NewService(opts Options) *Service {
	if opts.Catalog == nil {
		opts.Catalog = NewRegistry()
	}
	if opts.PayloadValidator == nil {
		opts.PayloadValidator = NewJSONSchemaValidator()
	}
	if opts.Scheduler == nil {
		opts.Scheduler = NewTimerScheduler()
	}
	if opts.RefreshHook == nil {
		opts.RefreshHook = noopRefreshHook{}
	}
	if opts.Random == nil {
		opts.Random = rand.IntN
	}
	if opts.SeedRecords == nil {
		opts.SeedRecords = DefaultSeedRecords()
	}
	opts.Telemetry = normalizeTelemetry(opts.Telemetry)

	s := &Service{opts: opts}
	s.delay = NewDelayPolicy(opts.DelaySeconds)
	s.notifications = NewNotificationQueue(opts.Scheduler,
		WithNotificationTTL(opts.NotificationTTL),
		WithExpireHook(s.notificationExpired),
	)
	s.dispatcher = NewDispatcher(opts.Scheduler, s.delay, s.apply)
	s.resetLocked()
	return s
}

func (s *Service) resetLocked() {
	s.delay.SetDelaySeconds(s.opts.DelaySeconds)
	s.statuses = NewStatusStore(DefaultStatuses(s.opts.Catalog))
	s.table = NewTable(s.opts.SeedRecords, WithRandom(s.opts.Random))
	s.registration = registrationState{form: NewRegistrationForm()}
	s.inputValue = ""
	s.dragging = false
	s.modalOpen = false
	s.dispatches = map[WidgetKey]int{}
}

// Reset restores every widget to its initial state, like a full page reload.
// Tasks already scheduled still run and live notifications still expire.
func (s *Service) Reset(ctx context.Context) {
	s.mu.Lock()
	s.resetLocked()
	s.mu.Unlock()
	s.recordTelemetry(ctx, "playground.reset", nil)
}

// Catalog exposes the widget catalog backing the service.
func (s *Service) Catalog() Catalog {
	return s.opts.Catalog
}

// Scheduler exposes the scheduler used for every timed effect.
func (s *Service) Scheduler() Scheduler {
	return s.opts.Scheduler
}

// GestureRequest is one user gesture on a widget.
type GestureRequest struct {
	Widget  WidgetKey      `json:"widget"`
	Action  string         `json:"action"`
	Payload map[string]any `json:"payload,omitempty"`
}

// GestureResult reports how a gesture was handled. Applied is false when the
// payload did not match and the gesture was ignored. Deferred is set when the
// effect waits on a timer identified by TaskID.
type GestureResult struct {
	Widget   WidgetKey  `json:"widget"`
	Action   string     `json:"action"`
	Applied  bool       `json:"applied"`
	Deferred bool       `json:"deferred"`
	TaskID   string     `json:"task_id,omitempty"`
	DueAt    *time.Time `json:"due_at,omitempty"`
}

// Gesture routes a gesture to its widget. Unknown widgets or actions are
// errors; malformed payloads are ignored without error.
func (s *Service) Gesture(ctx context.Context, req GestureRequest) (GestureResult, error) {
	result := GestureResult{Widget: req.Widget, Action: req.Action}
	def, ok := s.opts.Catalog.Definition(req.Widget)
	if !ok {
		return result, goerrors.New(fmt.Sprintf("widget %q not found", req.Widget), goerrors.CategoryNotFound).
			WithMetadata(map[string]any{"widget": string(req.Widget)})
	}
	action, ok := def.Action(req.Action)
	if !ok {
		return result, goerrors.New(fmt.Sprintf("widget %s does not accept action %q", def.Key, req.Action), goerrors.CategoryBadInput).
			WithMetadata(map[string]any{"widget": string(def.Key), "action": req.Action})
	}
	if err := s.opts.PayloadValidator.Validate(def, action, req.Payload); err != nil {
		s.recordTelemetry(ctx, "playground.gesture.ignored", map[string]any{
			"widget": string(def.Key),
			"action": action.Name,
			"error":  err.Error(),
		})
		return result, nil
	}

	handle, applied := s.handleGesture(ctx, def, action.Name, req.Payload)
	result.Applied = applied
	if handle != nil {
		due := handle.Due
		result.Deferred = true
		result.TaskID = handle.ID
		result.DueAt = &due
	}
	if result.Deferred {
		s.recordTelemetry(ctx, "playground.dispatch.scheduled", map[string]any{
			"widget":  string(def.Key),
			"action":  action.Name,
			"task_id": result.TaskID,
			"due_at":  formatDue(result.DueAt),
		})
	}
	s.recordTelemetry(ctx, "playground.gesture", map[string]any{
		"widget":   string(def.Key),
		"action":   action.Name,
		"applied":  applied,
		"deferred": result.Deferred,
	})
	return result, nil
}

func (s *Service) handleGesture(ctx context.Context, def WidgetDefinition, action string, payload map[string]any) (*TaskHandle, bool) {
	key := def.Key
	switch key {
	case WidgetClick:
		return s.dispatcher.Dispatch(key, TextSingleClick, def.Delayable), true
	case WidgetDoubleClick:
		return s.dispatcher.Dispatch(key, TextDoubleClick, def.Delayable), true
	case WidgetRightClick:
		return s.dispatcher.Dispatch(key, TextRightClick, def.Delayable), true
	case WidgetHover:
		if action == ActionLeave {
			return s.dispatcher.Dispatch(key, TextHoverLeave, def.Delayable), true
		}
		return s.dispatcher.Dispatch(key, TextHoverEnter, def.Delayable), true
	case WidgetDrag:
		return s.handleDrag(ctx, def, action, payload)
	case WidgetInput:
		value := stringField(payload, "value")
		s.mu.Lock()
		s.inputValue = value
		s.mu.Unlock()
		return s.dispatcher.Dispatch(key, "Typed: "+value, def.Delayable), true
	case WidgetDropdown:
		return s.dispatcher.Dispatch(key, "Selected: "+stringField(payload, "value"), def.Delayable), true
	case WidgetRadio:
		return s.dispatcher.Dispatch(key, "Radio: "+stringField(payload, "value"), def.Delayable), true
	case WidgetCheckbox:
		text := TextUnchecked
		if boolField(payload, "checked") {
			text = TextChecked
		}
		return s.dispatcher.Dispatch(key, text, def.Delayable), true
	case WidgetUpload:
		name := stringField(payload, "file_name")
		s.dispatcher.Dispatch(key, fmt.Sprintf("Uploading %s...", name), false)
		return s.dispatcher.DispatchAfter(UploadDuration, key, "Upload Successful: "+name), true
	case WidgetDelayed:
		wait := TimedActionBaseDelay + time.Duration(s.dispatcher.DelaySeconds())*time.Second
		s.dispatcher.Dispatch(key, TextTimedStarted, false)
		return s.dispatcher.DispatchAfter(wait, key, TextTimedFinished), true
	case WidgetLocator:
		text := TextBlueLocator
		if stringField(payload, "variant") == LocatorYellow {
			text = TextYellowLocator
		}
		return s.dispatcher.Dispatch(key, text, def.Delayable), true
	case WidgetPopup:
		return s.dispatcher.Dispatch(key, popupText(action, payload), def.Delayable), true
	case WidgetModal:
		s.setModal(ctx, action == ActionOpen)
		return nil, true
	}
	return nil, false
}

func (s *Service) handleDrag(ctx context.Context, def WidgetDefinition, action string, payload map[string]any) (*TaskHandle, bool) {
	dragging := action == ActionStart
	s.mu.Lock()
	s.dragging = dragging
	s.mu.Unlock()
	s.publish(ctx, PlaygroundEvent{Kind: EventDrag, Widget: def.Key, Text: fmt.Sprintf("%t", dragging)})
	if dragging {
		return nil, true
	}
	if stringField(payload, "token") != DragToken {
		return nil, false
	}
	return s.dispatcher.Dispatch(def.Key, TextDropped, def.Delayable), true
}

func popupText(action string, payload map[string]any) string {
	switch action {
	case ActionConfirm:
		if boolField(payload, "confirmed") {
			return TextConfirmed
		}
		return TextCancelled
	case ActionPrompt:
		if value := stringField(payload, "value"); value != "" {
			return fmt.Sprintf("Hello %s!", value)
		}
		return TextNoInput
	default:
		return TextAlertClosed
	}
}

func (s *Service) setModal(ctx context.Context, open bool) {
	text := TextModalClosed
	if open {
		text = TextModalOpen
	}
	s.mu.Lock()
	s.modalOpen = open
	s.statuses.Set(WidgetModal, text)
	s.mu.Unlock()
	s.publish(ctx, PlaygroundEvent{Kind: EventModal, Widget: WidgetModal, Text: text})
}

// apply is the dispatcher sink. It runs on the gesture goroutine or on a
// timer goroutine.
func (s *Service) apply(key WidgetKey, text string) {
	ctx := context.Background()
	s.mu.Lock()
	events := s.setStatusLocked(key, text)
	s.mu.Unlock()
	s.publish(ctx, events...)
	s.recordTelemetry(ctx, "playground.dispatch.applied", map[string]any{
		"widget": string(key),
		"text":   text,
	})
}

// setStatusLocked writes the status and pushes the notification in the same
// critical section. Callers hold s.mu.
func (s *Service) setStatusLocked(key WidgetKey, text string) []PlaygroundEvent {
	if !s.statuses.Set(key, text) {
		return nil
	}
	s.dispatches[key]++
	n := s.notifications.Push(text)
	return []PlaygroundEvent{
		{Kind: EventStatus, Widget: key, Text: text},
		{Kind: EventNotificationPush, Widget: key, Text: text, NotificationID: n.ID},
	}
}

func (s *Service) notificationExpired(n Notification) {
	s.publish(context.Background(), PlaygroundEvent{
		Kind:           EventNotificationExpire,
		Text:           n.Text,
		NotificationID: n.ID,
	})
}

// DelaySeconds returns the shared delay setting.
func (s *Service) DelaySeconds() int {
	return s.delay.DelaySeconds()
}

// SetDelaySeconds stores n clamped to [0,10]. Dispatches already waiting keep
// the delay they sampled.
func (s *Service) SetDelaySeconds(ctx context.Context, n int) int {
	stored := s.delay.SetDelaySeconds(n)
	s.afterDelayChange(ctx, n, stored)
	return stored
}

// SetDelayInput parses raw user input; non-numeric input counts as 0.
func (s *Service) SetDelayInput(ctx context.Context, raw string) int {
	stored := s.delay.SetDelayInput(raw)
	s.afterDelayChange(ctx, raw, stored)
	return stored
}

func (s *Service) afterDelayChange(ctx context.Context, requested any, stored int) {
	s.publish(ctx, PlaygroundEvent{Kind: EventDelay, Text: fmt.Sprintf("%d", stored)})
	s.recordTelemetry(ctx, "playground.delay.set", map[string]any{
		"requested": requested,
		"seconds":   stored,
	})
}

// UpdateRegistrationField changes one registration form field.
func (s *Service) UpdateRegistrationField(ctx context.Context, name, value string) error {
	s.mu.Lock()
	err := s.registration.form.SetField(name, value)
	s.mu.Unlock()
	if err != nil {
		return err
	}
	s.publish(ctx, PlaygroundEvent{Kind: EventRegistration, Widget: WidgetRegistration})
	return nil
}

// RegistrationSubmission reports the outcome of a submit. TaskID and DueAt
// identify the pending completion when validation passed.
type RegistrationSubmission struct {
	Result  ValidationResult `json:"result"`
	Message string           `json:"message,omitempty"`
	TaskID  string           `json:"task_id,omitempty"`
	DueAt   *time.Time       `json:"due_at,omitempty"`
}

// SubmitRegistration validates the form and, when valid, schedules the
// completion after a random latency in [3000,6000) ms. A non-nil form replaces
// the stored fields first. Field values are kept after success.
func (s *Service) SubmitRegistration(ctx context.Context, form *RegistrationForm) (RegistrationSubmission, error) {
	s.mu.Lock()
	if form != nil {
		s.registration.form = *form
	}
	s.registration.err = ""
	result := ValidateRegistration(s.registration.form)
	if !result.OK {
		s.registration.err = result.Message()
		s.mu.Unlock()
		s.publish(ctx, PlaygroundEvent{Kind: EventRegistration, Widget: WidgetRegistration, Text: result.Message()})
		s.recordTelemetry(ctx, "playground.registration.invalid", map[string]any{
			"fields": result.MissingFieldLabels,
		})
		return RegistrationSubmission{Result: result, Message: result.Message()}, nil
	}
	submitted := s.registration.form
	s.registration.submitting = true
	events := s.setStatusLocked(WidgetRegistration, TextSubmitting)
	s.mu.Unlock()
	s.publish(ctx, events...)

	wait := s.registrationLatency()
	handle := s.dispatcher.After(wait, func() {
		s.completeRegistration(submitted)
	})
	due := handle.Due
	s.recordTelemetry(ctx, "playground.registration.submit", map[string]any{
		"wait_ms": wait.Milliseconds(),
	})
	return RegistrationSubmission{Result: result, TaskID: handle.ID, DueAt: &due}, nil
}

func (s *Service) registrationLatency() time.Duration {
	span := int((RegistrationMaxDelay - RegistrationMinDelay) / time.Millisecond)
	return RegistrationMinDelay + time.Duration(s.opts.Random(span))*time.Millisecond
}

func (s *Service) completeRegistration(form RegistrationForm) {
	s.mu.Lock()
	s.registration.submitting = false
	s.registration.confirmation = &Confirmation{
		FirstName: form.FirstName,
		LastName:  form.LastName,
		Email:     form.Email,
	}
	events := s.setStatusLocked(WidgetRegistration, TextRegistrationDone)
	s.mu.Unlock()
	events = append(events, PlaygroundEvent{Kind: EventRegistration, Widget: WidgetRegistration, Text: TextRegistrationDone})
	s.publish(context.Background(), events...)
}

// DismissConfirmation hides the registration confirmation.
func (s *Service) DismissConfirmation(ctx context.Context) {
	s.mu.Lock()
	s.registration.confirmation = nil
	s.mu.Unlock()
	s.publish(ctx, PlaygroundEvent{Kind: EventRegistration, Widget: WidgetRegistration})
}

// SetTableInput changes one field of the pending new-row input.
func (s *Service) SetTableInput(ctx context.Context, field, value string) error {
	s.mu.Lock()
	err := s.table.SetInputField(field, value)
	s.mu.Unlock()
	if err != nil {
		return err
	}
	s.publish(ctx, PlaygroundEvent{Kind: EventTable, Widget: WidgetTable})
	return nil
}

// AddRow appends a row built from input.
func (s *Service) AddRow(ctx context.Context, input NewRowInput) TableResult {
	return s.tableOp(ctx, "add", func(t *Table) TableResult { return t.AddRow(input) })
}

// SubmitTableInput appends a row from the pending input buffer.
func (s *Service) SubmitTableInput(ctx context.Context) TableResult {
	return s.tableOp(ctx, "add", func(t *Table) TableResult { return t.AddRow(t.Input()) })
}

// DeleteRow removes a row by id.
func (s *Service) DeleteRow(ctx context.Context, id int) TableResult {
	return s.tableOp(ctx, "delete", func(t *Table) TableResult { return t.DeleteRow(id) })
}

// EnterEdit starts editing a row, discarding any other edit.
func (s *Service) EnterEdit(ctx context.Context, id int) TableResult {
	return s.tableOp(ctx, "edit", func(t *Table) TableResult { return t.EnterEdit(id) })
}

// UpdateDraft changes one draft field of the row under edit.
func (s *Service) UpdateDraft(ctx context.Context, id int, field, value string) (TableResult, error) {
	var opErr error
	res := s.tableOp(ctx, "draft", func(t *Table) TableResult {
		res, err := t.UpdateDraft(id, field, value)
		opErr = err
		return res
	})
	return res, opErr
}

// CommitEdit stores the draft of the row under edit.
func (s *Service) CommitEdit(ctx context.Context, id int) TableResult {
	return s.tableOp(ctx, "commit", func(t *Table) TableResult { return t.CommitEdit(id) })
}

// CancelEdit discards the draft of the row under edit.
func (s *Service) CancelEdit(ctx context.Context, id int) TableResult {
	return s.tableOp(ctx, "cancel", func(t *Table) TableResult { return t.CancelEdit(id) })
}

// Reorder moves the row at from to position to. Indexes arrive as drag
// payload text; non-numeric values are ignored.
func (s *Service) Reorder(ctx context.Context, from, to string) TableResult {
	return s.tableOp(ctx, "reorder", func(t *Table) TableResult { return t.ReorderRaw(from, to) })
}

func (s *Service) tableOp(ctx context.Context, op string, fn func(*Table) TableResult) TableResult {
	s.mu.Lock()
	res := fn(s.table)
	var events []PlaygroundEvent
	if res.Message != "" {
		events = s.setStatusLocked(WidgetTable, res.Message)
	}
	if res.Applied || res.Message != "" {
		events = append(events, PlaygroundEvent{Kind: EventTable, Widget: WidgetTable, Text: res.Message})
	}
	s.mu.Unlock()
	s.publish(ctx, events...)
	payload := map[string]any{"op": op, "applied": res.Applied}
	if res.Record != nil {
		payload["row_id"] = res.Record.ID
	}
	s.recordTelemetry(ctx, "playground.table."+op, payload)
	return res
}

// Status returns the current status text of a widget.
func (s *Service) Status(key WidgetKey) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.statuses.Get(key)
}

// Notifications returns the live notifications, oldest first.
func (s *Service) Notifications() []Notification {
	return s.notifications.Entries()
}

// Snapshot returns a consistent copy of the whole playground state.
func (s *Service) Snapshot(ctx context.Context) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	reg := RegistrationView{
		Form:       s.registration.form,
		Error:      s.registration.err,
		Submitting: s.registration.submitting,
	}
	if s.registration.confirmation != nil {
		confirmation := *s.registration.confirmation
		reg.Confirmation = &confirmation
	}
	counts := make(map[WidgetKey]int, len(s.dispatches))
	for key, n := range s.dispatches {
		counts[key] = n
	}
	return Snapshot{
		DelaySeconds:  s.delay.DelaySeconds(),
		Statuses:      s.statuses.All(),
		Notifications: s.notifications.Entries(),
		InputValue:    s.inputValue,
		Dragging:      s.dragging,
		ModalOpen:     s.modalOpen,
		Registration:  reg,
		Table:         s.table.View(),
		DispatchCount: counts,
	}
}

// NotifyPlaygroundUpdated exposes refresh hook invocation for commands and
// transports.
func (s *Service) NotifyPlaygroundUpdated(ctx context.Context, event PlaygroundEvent) error {
	if event.At.IsZero() {
		event.At = s.opts.Scheduler.Now()
	}
	if err := s.opts.RefreshHook.PlaygroundUpdated(ctx, event); err != nil {
		return err
	}
	s.recordTelemetry(ctx, "playground.event", map[string]any{
		"kind":   string(event.Kind),
		"widget": string(event.Widget),
	})
	return nil
}

func (s *Service) publish(ctx context.Context, events ...PlaygroundEvent) {
	for _, event := range events {
		if event.At.IsZero() {
			event.At = s.opts.Scheduler.Now()
		}
		if err := s.opts.RefreshHook.PlaygroundUpdated(ctx, event); err != nil {
			s.recordTelemetry(ctx, "playground.refresh.error", map[string]any{
				"kind":  string(event.Kind),
				"error": err.Error(),
			})
		}
		switch event.Kind {
		case EventNotificationPush:
			s.recordTelemetry(ctx, "playground.notification.push", map[string]any{"id": event.NotificationID})
		case EventNotificationExpire:
			s.recordTelemetry(ctx, "playground.notification.expire", map[string]any{"id": event.NotificationID})
		}
	}
}

func formatDue(at *time.Time) string {
	if at == nil {
		return ""
	}
	return at.Format(time.RFC3339Nano)
}

func (s *Service) recordTelemetry(ctx context.Context, event string, payload map[string]any) {
	s.opts.Telemetry.Record(ctx, event, payload)
}

func stringField(payload map[string]any, key string) string {
	if v, ok := payload[key].(string); ok {
		return v
	}
	return ""
}

func boolField(payload map[string]any, key string) bool {
	v, _ := payload[key].(bool)
	return v
}

type noopRefreshHook struct{}

func (noopRefreshHook) PlaygroundUpdated(context.Context, PlaygroundEvent) error {
	return nil
}
