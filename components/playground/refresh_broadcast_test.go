package playground

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBroadcastHookSubscribe(t *testing.T) {
	hook := NewBroadcastHook()
	ch, cancel := hook.Subscribe()
	defer cancel()
	event := PlaygroundEvent{Kind: EventStatus, Widget: WidgetClick, Text: TextSingleClick}
	if err := hook.PlaygroundUpdated(context.Background(), event); err != nil {
		t.Fatalf("PlaygroundUpdated returned error: %v", err)
	}
	select {
	case e := <-ch:
		if e.Widget != event.Widget {
			t.Fatalf("expected widget %s, got %s", event.Widget, e.Widget)
		}
	default:
		t.Fatalf("expected event to be delivered")
	}
}

func TestBroadcastHookCancelClosesChannel(t *testing.T) {
	hook := NewBroadcastHook()
	ch, cancel := hook.Subscribe()
	require.Equal(t, 1, hook.Subscribers())
	cancel()
	cancel()
	assert.Zero(t, hook.Subscribers())
	_, ok := <-ch
	assert.False(t, ok)
}

func TestBroadcastHookDropsWhenSubscriberIsFull(t *testing.T) {
	hook := NewBroadcastHook()
	_, cancel := hook.Subscribe()
	defer cancel()
	for i := 0; i < subscriberBuffer+10; i++ {
		require.NoError(t, hook.PlaygroundUpdated(context.Background(), PlaygroundEvent{Kind: EventDelay}))
	}
}

type failingHook struct{ calls int }

func (f *failingHook) PlaygroundUpdated(context.Context, PlaygroundEvent) error {
	f.calls++
	return errors.New("boom")
}

func TestMultiHookForwardsToEveryHook(t *testing.T) {
	first := &failingHook{}
	second := &failingHook{}
	hooks := MultiHook{first, nil, second}
	err := hooks.PlaygroundUpdated(context.Background(), PlaygroundEvent{Kind: EventModal})
	require.EqualError(t, err, "boom")
	assert.Equal(t, 1, first.calls)
	assert.Equal(t, 1, second.calls)
}

func TestServeSSEStreamsEvents(t *testing.T) {
	hook := NewBroadcastHook()
	ctx, cancel := context.WithCancel(context.Background())
	req := httptest.NewRequest(http.MethodGet, "/events", nil).WithContext(ctx)
	rec := httptest.NewRecorder()

	done := make(chan struct{})
	go func() {
		hook.ServeSSE(rec, req)
		close(done)
	}()
	require.Eventually(t, func() bool { return hook.Subscribers() == 1 }, time.Second, time.Millisecond)

	require.NoError(t, hook.PlaygroundUpdated(context.Background(), PlaygroundEvent{Kind: EventStatus, Widget: WidgetHover, Text: TextHoverEnter}))
	queued := func() int {
		hook.mu.RLock()
		defer hook.mu.RUnlock()
		return len(hook.subs[0])
	}
	require.Eventually(t, func() bool { return queued() == 0 }, time.Second, time.Millisecond)
	cancel()
	<-done

	assert.Equal(t, "text/event-stream", rec.Header().Get("Content-Type"))
	body := rec.Body.String()
	assert.True(t, strings.HasPrefix(body, "event: status\ndata: "))
	assert.Contains(t, body, `"text":"You are hovering!"`)
	assert.Zero(t, hook.Subscribers())
}

func TestServeWebSocketStreamsEvents(t *testing.T) {
	hook := NewBroadcastHook()
	server := httptest.NewServer(http.HandlerFunc(hook.ServeWebSocket))
	defer server.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(server.URL, "http"), nil)
	require.NoError(t, err)
	defer conn.Close()
	require.Eventually(t, func() bool { return hook.Subscribers() == 1 }, time.Second, time.Millisecond)

	require.NoError(t, hook.PlaygroundUpdated(context.Background(), PlaygroundEvent{Kind: EventTable, Widget: WidgetTable, Text: "Row 6 deleted"}))

	var event PlaygroundEvent
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(time.Second)))
	require.NoError(t, conn.ReadJSON(&event))
	assert.Equal(t, EventTable, event.Kind)
	assert.Equal(t, "Row 6 deleted", event.Text)
}
