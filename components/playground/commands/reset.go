package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
)

// ResetInput restores the playground to its initial state.
type ResetInput struct{}

type resetService interface {
	Reset(ctx context.Context)
}

// ResetCommand wraps Service.Reset.
type ResetCommand struct {
	service   resetService
	telemetry Telemetry
}

// NewResetCommand builds the command.
func NewResetCommand(service resetService, telemetry Telemetry) *ResetCommand {
	return &ResetCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[ResetInput] = (*ResetCommand)(nil)

// Execute resets the playground.
func (c *ResetCommand) Execute(ctx context.Context, _ ResetInput) error {
	if c.service == nil {
		return errors.New("reset command requires service")
	}
	c.service.Reset(ctx)
	c.telemetry.Record(ctx, "playground.command.reset", nil)
	return nil
}
