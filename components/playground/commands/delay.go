package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
)

// SetDelayInput updates the shared delay. Seconds wins over Raw when set.
// Stored, when set, receives the clamped value.
type SetDelayInput struct {
	Seconds *int   `json:"seconds,omitempty"`
	Raw     string `json:"raw,omitempty"`
	Stored  *int   `json:"-"`
}

type delayService interface {
	SetDelaySeconds(ctx context.Context, n int) int
	SetDelayInput(ctx context.Context, raw string) int
}

// SetDelayCommand wraps the delay setters.
type SetDelayCommand struct {
	service   delayService
	telemetry Telemetry
}

// NewSetDelayCommand builds the command.
func NewSetDelayCommand(service delayService, telemetry Telemetry) *SetDelayCommand {
	return &SetDelayCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[SetDelayInput] = (*SetDelayCommand)(nil)

// Execute stores the delay.
func (c *SetDelayCommand) Execute(ctx context.Context, msg SetDelayInput) error {
	if c.service == nil {
		return errors.New("delay command requires service")
	}
	var stored int
	if msg.Seconds != nil {
		stored = c.service.SetDelaySeconds(ctx, *msg.Seconds)
	} else {
		stored = c.service.SetDelayInput(ctx, msg.Raw)
	}
	if msg.Stored != nil {
		*msg.Stored = stored
	}
	c.telemetry.Record(ctx, "playground.command.delay", map[string]any{"seconds": stored})
	return nil
}
