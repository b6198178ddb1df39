package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
	playground "github.com/goliatone/go-playground/components/playground"
)

// GestureInput carries one user gesture. Widget accepts camelCase,
// kebab-case or snake_case keys. Result, when set, receives the outcome.
type GestureInput struct {
	Widget  string                    `json:"widget"`
	Action  string                    `json:"action"`
	Payload map[string]any            `json:"payload,omitempty"`
	Result  *playground.GestureResult `json:"-"`
}

type gestureService interface {
	Gesture(ctx context.Context, req playground.GestureRequest) (playground.GestureResult, error)
}

// GestureCommand routes gestures to the playground service.
type GestureCommand struct {
	service   gestureService
	telemetry Telemetry
}

// NewGestureCommand creates a command instance.
func NewGestureCommand(service gestureService, telemetry Telemetry) *GestureCommand {
	return &GestureCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[GestureInput] = (*GestureCommand)(nil)

// Execute resolves the widget key and delegates to the service.
func (c *GestureCommand) Execute(ctx context.Context, msg GestureInput) error {
	if c.service == nil {
		return errors.New("gesture command requires service")
	}
	key, err := playground.ParseWidgetKey(msg.Widget)
	if err != nil {
		return err
	}
	result, err := c.service.Gesture(ctx, playground.GestureRequest{
		Widget:  key,
		Action:  msg.Action,
		Payload: msg.Payload,
	})
	if err != nil {
		return err
	}
	if msg.Result != nil {
		*msg.Result = result
	}
	c.telemetry.Record(ctx, "playground.command.gesture", map[string]any{
		"widget":  string(key),
		"action":  msg.Action,
		"applied": result.Applied,
	})
	return nil
}
