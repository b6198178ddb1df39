package playground_test

import (
	"context"
	"sync"
	"testing"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-playground/components/playground"
	"github.com/goliatone/go-playground/components/playground/playgroundtest"
)

type recordingTelemetry struct {
	mu     sync.Mutex
	events []string
}

func (r *recordingTelemetry) Record(_ context.Context, event string, _ map[string]any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

func (r *recordingTelemetry) has(event string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.events {
		if e == event {
			return true
		}
	}
	return false
}

type fixture struct {
	service   *playground.Service
	scheduler *playgroundtest.Scheduler
	events    *playgroundtest.Recorder
	telemetry *recordingTelemetry
}

func newFixture(t *testing.T, random ...int) fixture {
	t.Helper()
	if len(random) == 0 {
		random = []int{0}
	}
	scheduler := playgroundtest.NewScheduler()
	events := &playgroundtest.Recorder{}
	telemetry := &recordingTelemetry{}
	service := playground.NewService(playground.Options{
		Scheduler:   scheduler,
		RefreshHook: events,
		Telemetry:   telemetry,
		Random:      playgroundtest.Sequence(random...),
	})
	return fixture{service: service, scheduler: scheduler, events: events, telemetry: telemetry}
}

func (f fixture) gesture(t *testing.T, key playground.WidgetKey, action string, payload map[string]any) playground.GestureResult {
	t.Helper()
	res, err := f.service.Gesture(context.Background(), playground.GestureRequest{Widget: key, Action: action, Payload: payload})
	require.NoError(t, err)
	return res
}

func texts(ns []playground.Notification) []string {
	out := make([]string, len(ns))
	for i, n := range ns {
		out[i] = n.Text
	}
	return out
}

func TestClickWithoutDelayAppliesImmediately(t *testing.T) {
	fx := newFixture(t)
	res := fx.gesture(t, playground.WidgetClick, playground.ActionClick, nil)
	assert.True(t, res.Applied)
	assert.False(t, res.Deferred)
	assert.Equal(t, playground.TextSingleClick, fx.service.Status(playground.WidgetClick))
	assert.Equal(t, []string{playground.TextSingleClick}, texts(fx.service.Notifications()))
	assert.True(t, fx.telemetry.has("playground.dispatch.applied"))

	fx.scheduler.Advance(playground.NotificationTTL)
	assert.Empty(t, fx.service.Notifications())
	assert.Equal(t, playground.TextSingleClick, fx.service.Status(playground.WidgetClick), "status persists after toast expiry")
}

func TestDelayedClickAppliesAfterSampledDelay(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()
	fx.service.SetDelaySeconds(ctx, 2)

	res := fx.gesture(t, playground.WidgetDoubleClick, playground.ActionDoubleClick, nil)
	require.True(t, res.Deferred)
	require.NotNil(t, res.DueAt)
	assert.Equal(t, playgroundtest.Epoch.Add(2*time.Second), *res.DueAt)
	assert.True(t, fx.telemetry.has("playground.dispatch.scheduled"))

	fx.service.SetDelaySeconds(ctx, 9)
	fx.scheduler.Advance(1999 * time.Millisecond)
	assert.Equal(t, "Waiting for action...", fx.service.Status(playground.WidgetDoubleClick))
	assert.Empty(t, fx.service.Notifications())

	fx.scheduler.Advance(time.Millisecond)
	assert.Equal(t, playground.TextDoubleClick, fx.service.Status(playground.WidgetDoubleClick))
	notes := fx.service.Notifications()
	require.Len(t, notes, 1)
	assert.Equal(t, playgroundtest.Epoch.Add(5*time.Second), notes[0].ExpiresAt)
}

func TestRightClickRepeatedKeepsEveryNotification(t *testing.T) {
	fx := newFixture(t)
	fx.gesture(t, playground.WidgetRightClick, playground.ActionContextMenu, nil)
	fx.gesture(t, playground.WidgetRightClick, playground.ActionContextMenu, nil)
	assert.Len(t, fx.service.Notifications(), 2)
	assert.Equal(t, 2, fx.service.Snapshot(context.Background()).DispatchCount[playground.WidgetRightClick])
}

func TestInputGestures(t *testing.T) {
	fx := newFixture(t)
	fx.gesture(t, playground.WidgetInput, playground.ActionChange, map[string]any{"value": "hello"})
	fx.gesture(t, playground.WidgetDropdown, playground.ActionSelect, map[string]any{"value": "Option 2"})
	fx.gesture(t, playground.WidgetRadio, playground.ActionChange, map[string]any{"value": "Radio 1"})
	fx.gesture(t, playground.WidgetCheckbox, playground.ActionChange, map[string]any{"checked": true})

	snap := fx.service.Snapshot(context.Background())
	assert.Equal(t, "Typed: hello", snap.Statuses[playground.WidgetInput])
	assert.Equal(t, "hello", snap.InputValue)
	assert.Equal(t, "Selected: Option 2", snap.Statuses[playground.WidgetDropdown])
	assert.Equal(t, "Radio: Radio 1", snap.Statuses[playground.WidgetRadio])
	assert.Equal(t, playground.TextChecked, snap.Statuses[playground.WidgetCheckbox])

	fx.gesture(t, playground.WidgetCheckbox, playground.ActionChange, map[string]any{"checked": false})
	assert.Equal(t, playground.TextUnchecked, fx.service.Status(playground.WidgetCheckbox))
}

func TestInputGesturesIgnoreGlobalDelay(t *testing.T) {
	fx := newFixture(t)
	fx.service.SetDelaySeconds(context.Background(), 5)
	res := fx.gesture(t, playground.WidgetHover, playground.ActionEnter, nil)
	assert.False(t, res.Deferred)
	assert.Equal(t, playground.TextHoverEnter, fx.service.Status(playground.WidgetHover))
	fx.gesture(t, playground.WidgetHover, playground.ActionLeave, nil)
	assert.Equal(t, playground.TextHoverLeave, fx.service.Status(playground.WidgetHover))
}

func TestMalformedPayloadIsIgnored(t *testing.T) {
	fx := newFixture(t)
	res := fx.gesture(t, playground.WidgetDropdown, playground.ActionSelect, map[string]any{"value": "Option 9"})
	assert.False(t, res.Applied)
	assert.Equal(t, "Select an option", fx.service.Status(playground.WidgetDropdown))
	assert.Empty(t, fx.service.Notifications())
	assert.True(t, fx.telemetry.has("playground.gesture.ignored"))
}

func TestGestureErrorsForUnknownTargets(t *testing.T) {
	fx := newFixture(t)
	_, err := fx.service.Gesture(context.Background(), playground.GestureRequest{Widget: "slider", Action: "click"})
	require.Error(t, err)
	assert.True(t, goerrors.IsNotFound(err))

	_, err = fx.service.Gesture(context.Background(), playground.GestureRequest{Widget: playground.WidgetClick, Action: "swipe"})
	require.Error(t, err)
	assert.True(t, goerrors.IsCategory(err, goerrors.CategoryBadInput))
}

func TestUploadRunsTwoPhases(t *testing.T) {
	fx := newFixture(t)
	fx.service.SetDelaySeconds(context.Background(), 4)
	res := fx.gesture(t, playground.WidgetUpload, playground.ActionSelect, map[string]any{"file_name": "report.pdf"})
	require.True(t, res.Deferred)
	assert.Equal(t, "Uploading report.pdf...", fx.service.Status(playground.WidgetUpload))

	fx.scheduler.Advance(playground.UploadDuration)
	assert.Equal(t, "Upload Successful: report.pdf", fx.service.Status(playground.WidgetUpload))
	assert.Equal(t, []string{"Uploading report.pdf...", "Upload Successful: report.pdf"}, texts(fx.service.Notifications()))
}

func TestTimedActionWaitsBasePlusDelay(t *testing.T) {
	fx := newFixture(t)
	fx.service.SetDelaySeconds(context.Background(), 2)
	fx.gesture(t, playground.WidgetDelayed, playground.ActionStart, nil)
	assert.Equal(t, playground.TextTimedStarted, fx.service.Status(playground.WidgetDelayed))

	fx.scheduler.Advance(4999 * time.Millisecond)
	assert.Equal(t, playground.TextTimedStarted, fx.service.Status(playground.WidgetDelayed))
	fx.scheduler.Advance(time.Millisecond)
	assert.Equal(t, playground.TextTimedFinished, fx.service.Status(playground.WidgetDelayed))
}

func TestDragAndDrop(t *testing.T) {
	fx := newFixture(t)
	fx.gesture(t, playground.WidgetDrag, playground.ActionStart, nil)
	assert.True(t, fx.service.Snapshot(context.Background()).Dragging)

	res := fx.gesture(t, playground.WidgetDrag, playground.ActionDrop, map[string]any{"token": "other"})
	assert.False(t, res.Applied)
	assert.False(t, fx.service.Snapshot(context.Background()).Dragging, "drop clears dragging regardless of token")
	assert.Equal(t, "Waiting for drop...", fx.service.Status(playground.WidgetDrag))

	fx.service.SetDelaySeconds(context.Background(), 1)
	res = fx.gesture(t, playground.WidgetDrag, playground.ActionDrop, map[string]any{"token": playground.DragToken})
	require.True(t, res.Deferred)
	fx.scheduler.Advance(time.Second)
	assert.Equal(t, playground.TextDropped, fx.service.Status(playground.WidgetDrag))
}

func TestPopupsAndLocators(t *testing.T) {
	fx := newFixture(t)
	fx.gesture(t, playground.WidgetPopup, playground.ActionAlert, nil)
	assert.Equal(t, playground.TextAlertClosed, fx.service.Status(playground.WidgetPopup))
	fx.gesture(t, playground.WidgetPopup, playground.ActionConfirm, map[string]any{"confirmed": false})
	assert.Equal(t, playground.TextCancelled, fx.service.Status(playground.WidgetPopup))
	fx.gesture(t, playground.WidgetPopup, playground.ActionConfirm, map[string]any{"confirmed": true})
	assert.Equal(t, playground.TextConfirmed, fx.service.Status(playground.WidgetPopup))
	fx.gesture(t, playground.WidgetPopup, playground.ActionPrompt, map[string]any{"value": "Ada"})
	assert.Equal(t, "Hello Ada!", fx.service.Status(playground.WidgetPopup))
	fx.gesture(t, playground.WidgetPopup, playground.ActionPrompt, nil)
	assert.Equal(t, playground.TextNoInput, fx.service.Status(playground.WidgetPopup))

	fx.gesture(t, playground.WidgetLocator, playground.ActionClick, map[string]any{"variant": playground.LocatorYellow})
	assert.Equal(t, playground.TextYellowLocator, fx.service.Status(playground.WidgetLocator))
	fx.gesture(t, playground.WidgetLocator, playground.ActionClick, map[string]any{"variant": playground.LocatorBlue})
	assert.Equal(t, playground.TextBlueLocator, fx.service.Status(playground.WidgetLocator))
}

func TestModalTogglesWithoutNotification(t *testing.T) {
	fx := newFixture(t)
	fx.gesture(t, playground.WidgetModal, playground.ActionOpen, nil)
	snap := fx.service.Snapshot(context.Background())
	assert.True(t, snap.ModalOpen)
	assert.Equal(t, playground.TextModalOpen, snap.Statuses[playground.WidgetModal])
	assert.Empty(t, snap.Notifications)

	fx.gesture(t, playground.WidgetModal, playground.ActionClose, nil)
	assert.False(t, fx.service.Snapshot(context.Background()).ModalOpen)
	assert.Contains(t, fx.events.Kinds(), playground.EventModal)
}

func TestDelayInputParsing(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()
	assert.Equal(t, 10, fx.service.SetDelaySeconds(ctx, 15))
	assert.Equal(t, 0, fx.service.SetDelayInput(ctx, "abc"))
	assert.Equal(t, 3, fx.service.SetDelayInput(ctx, "3"))
	assert.Equal(t, 3, fx.service.DelaySeconds())
	assert.Contains(t, fx.events.Kinds(), playground.EventDelay)
}

func TestRegistrationInvalidSubmission(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()
	form := playground.RegistrationForm{LastName: "Doe", Email: "a@b.c", Password: "pw", PhoneNumber: "12345"}
	sub, err := fx.service.SubmitRegistration(ctx, &form)
	require.NoError(t, err)
	assert.False(t, sub.Result.OK)
	assert.Equal(t, playground.RegistrationFailedPrefix+"First Name, Phone Number (10 digits)", sub.Message)

	snap := fx.service.Snapshot(ctx)
	assert.Equal(t, sub.Message, snap.Registration.Error)
	assert.False(t, snap.Registration.Submitting)
	assert.Zero(t, fx.scheduler.Pending(), "nothing scheduled for invalid forms")
}

func TestRegistrationSuccessAfterRandomLatency(t *testing.T) {
	fx := newFixture(t, 1500)
	ctx := context.Background()
	require.NoError(t, fx.service.UpdateRegistrationField(ctx, "firstName", "Ada"))
	require.NoError(t, fx.service.UpdateRegistrationField(ctx, "lastName", "Lovelace"))
	require.NoError(t, fx.service.UpdateRegistrationField(ctx, "email", "ada@example.com"))
	require.NoError(t, fx.service.UpdateRegistrationField(ctx, "password", "secret"))
	require.Error(t, fx.service.UpdateRegistrationField(ctx, "nickname", "x"))

	sub, err := fx.service.SubmitRegistration(ctx, nil)
	require.NoError(t, err)
	require.True(t, sub.Result.OK)
	require.NotNil(t, sub.DueAt)
	assert.Equal(t, playgroundtest.Epoch.Add(4500*time.Millisecond), *sub.DueAt)

	snap := fx.service.Snapshot(ctx)
	assert.True(t, snap.Registration.Submitting)
	assert.Equal(t, playground.TextSubmitting, snap.Statuses[playground.WidgetRegistration])

	fx.scheduler.Advance(4500 * time.Millisecond)
	snap = fx.service.Snapshot(ctx)
	assert.False(t, snap.Registration.Submitting)
	require.NotNil(t, snap.Registration.Confirmation)
	assert.Equal(t, "Ada", snap.Registration.Confirmation.FirstName)
	assert.Equal(t, "ada@example.com", snap.Registration.Confirmation.Email)
	assert.Equal(t, playground.TextRegistrationDone, snap.Statuses[playground.WidgetRegistration])
	assert.Equal(t, "Ada", snap.Registration.Form.FirstName, "fields are kept after success")

	fx.service.DismissConfirmation(ctx)
	assert.Nil(t, fx.service.Snapshot(ctx).Registration.Confirmation)
}

func TestRegistrationErrorClearedOnNextSubmit(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()
	_, err := fx.service.SubmitRegistration(ctx, &playground.RegistrationForm{})
	require.NoError(t, err)
	require.NotEmpty(t, fx.service.Snapshot(ctx).Registration.Error)

	valid := playground.RegistrationForm{FirstName: "A", LastName: "B", Email: "c@d.e", Password: "p"}
	_, err = fx.service.SubmitRegistration(ctx, &valid)
	require.NoError(t, err)
	assert.Empty(t, fx.service.Snapshot(ctx).Registration.Error)
}

func TestTableOperationsReportStatus(t *testing.T) {
	fx := newFixture(t, 2468)
	ctx := context.Background()
	require.NoError(t, fx.service.SetTableInput(ctx, "firstName", "Ann"))
	require.NoError(t, fx.service.SetTableInput(ctx, "email", "ann@example.com"))
	require.NoError(t, fx.service.SetTableInput(ctx, "price", "12"))

	res := fx.service.SubmitTableInput(ctx)
	require.True(t, res.Applied)
	assert.Equal(t, "Row 6 added (ORD-12468)", fx.service.Status(playground.WidgetTable))
	assert.Equal(t, playground.NewRowInput{}, fx.service.Snapshot(ctx).Table.Input)

	res = fx.service.AddRow(ctx, playground.NewRowInput{FirstName: "x"})
	assert.False(t, res.Applied)
	assert.Equal(t, playground.AddRowRequiredMessage, fx.service.Status(playground.WidgetTable))

	fx.service.EnterEdit(ctx, 6)
	_, err := fx.service.UpdateDraft(ctx, 6, "price", "$99")
	require.NoError(t, err)
	assert.False(t, fx.service.Reorder(ctx, "0", "1").Applied, "reorder blocked while editing")
	fx.service.CommitEdit(ctx, 6)
	assert.Equal(t, "Row 6 updated", fx.service.Status(playground.WidgetTable))

	res = fx.service.Reorder(ctx, "5", "0")
	require.True(t, res.Applied)
	records := fx.service.Snapshot(ctx).Table.Records
	assert.Equal(t, 6, records[0].ID)
	assert.Equal(t, "$99", records[0].Price)

	fx.service.EnterEdit(ctx, 1)
	fx.service.CancelEdit(ctx, 1)
	assert.Equal(t, "Edit cancelled for row 1", fx.service.Status(playground.WidgetTable))
	fx.service.DeleteRow(ctx, 1)
	assert.Len(t, fx.service.Snapshot(ctx).Table.Records, 5)
	assert.Contains(t, fx.events.Kinds(), playground.EventTable)
	assert.True(t, fx.telemetry.has("playground.table.delete"))
}

func TestSeedRecordsOption(t *testing.T) {
	service := playground.NewService(playground.Options{
		Scheduler:   playgroundtest.NewScheduler(),
		SeedRecords: []playground.TableRecord{},
	})
	assert.Empty(t, service.Snapshot(context.Background()).Table.Records)
}

func TestEventsFollowStatusAndNotificationLifecycle(t *testing.T) {
	fx := newFixture(t)
	fx.gesture(t, playground.WidgetClick, playground.ActionClick, nil)
	fx.scheduler.Advance(playground.NotificationTTL)
	assert.Equal(t, []playground.EventKind{
		playground.EventStatus,
		playground.EventNotificationPush,
		playground.EventNotificationExpire,
	}, fx.events.Kinds())

	events := fx.events.Events()
	assert.Equal(t, events[1].NotificationID, events[2].NotificationID)
	assert.Equal(t, playgroundtest.Epoch.Add(playground.NotificationTTL), events[2].At)
}

func TestResetRestoresDefaults(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()
	fx.service.SetDelaySeconds(ctx, 4)
	fx.gesture(t, playground.WidgetCheckbox, playground.ActionChange, map[string]any{"checked": true})
	fx.service.DeleteRow(ctx, 1)

	fx.service.Reset(ctx)
	snap := fx.service.Snapshot(ctx)
	assert.Equal(t, 0, snap.DelaySeconds)
	assert.Equal(t, "Unchecked", snap.Statuses[playground.WidgetCheckbox])
	assert.Len(t, snap.Table.Records, 5)
	assert.Empty(t, snap.DispatchCount)
}

func TestConcurrentGesturesAreSerialized(t *testing.T) {
	service := playground.NewService(playground.Options{})
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = service.Gesture(context.Background(), playground.GestureRequest{Widget: playground.WidgetClick, Action: playground.ActionClick})
		}()
	}
	wg.Wait()
	assert.Equal(t, 50, service.Snapshot(context.Background()).DispatchCount[playground.WidgetClick])
}
