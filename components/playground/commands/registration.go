package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
	playground "github.com/goliatone/go-playground/components/playground"
)

type registrationService interface {
	UpdateRegistrationField(ctx context.Context, name, value string) error
	SubmitRegistration(ctx context.Context, form *playground.RegistrationForm) (playground.RegistrationSubmission, error)
	DismissConfirmation(ctx context.Context)
}

// UpdateRegistrationFieldInput changes one form field.
type UpdateRegistrationFieldInput struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

// UpdateRegistrationFieldCommand wraps Service.UpdateRegistrationField.
type UpdateRegistrationFieldCommand struct {
	service   registrationService
	telemetry Telemetry
}

// NewUpdateRegistrationFieldCommand builds the command.
func NewUpdateRegistrationFieldCommand(service registrationService, telemetry Telemetry) *UpdateRegistrationFieldCommand {
	return &UpdateRegistrationFieldCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[UpdateRegistrationFieldInput] = (*UpdateRegistrationFieldCommand)(nil)

// Execute applies the field change.
func (c *UpdateRegistrationFieldCommand) Execute(ctx context.Context, msg UpdateRegistrationFieldInput) error {
	if c.service == nil {
		return errors.New("registration field command requires service")
	}
	if err := c.service.UpdateRegistrationField(ctx, msg.Field, msg.Value); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "playground.command.registration.field", map[string]any{"field": msg.Field})
	return nil
}

// SubmitRegistrationInput submits the form. A nil Form submits the stored
// fields. Result, when set, receives the outcome.
type SubmitRegistrationInput struct {
	Form   *playground.RegistrationForm       `json:"form,omitempty"`
	Result *playground.RegistrationSubmission `json:"-"`
}

// SubmitRegistrationCommand wraps Service.SubmitRegistration.
type SubmitRegistrationCommand struct {
	service   registrationService
	telemetry Telemetry
}

// NewSubmitRegistrationCommand builds the command.
func NewSubmitRegistrationCommand(service registrationService, telemetry Telemetry) *SubmitRegistrationCommand {
	return &SubmitRegistrationCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[SubmitRegistrationInput] = (*SubmitRegistrationCommand)(nil)

// Execute validates and submits the form. Validation failures are reported
// through Result, not as errors.
func (c *SubmitRegistrationCommand) Execute(ctx context.Context, msg SubmitRegistrationInput) error {
	if c.service == nil {
		return errors.New("registration submit command requires service")
	}
	submission, err := c.service.SubmitRegistration(ctx, msg.Form)
	if err != nil {
		return err
	}
	if msg.Result != nil {
		*msg.Result = submission
	}
	c.telemetry.Record(ctx, "playground.command.registration.submit", map[string]any{
		"ok": submission.Result.OK,
	})
	return nil
}

// DismissConfirmationInput hides the registration confirmation.
type DismissConfirmationInput struct{}

// DismissConfirmationCommand wraps Service.DismissConfirmation.
type DismissConfirmationCommand struct {
	service registrationService
}

// NewDismissConfirmationCommand builds the command.
func NewDismissConfirmationCommand(service registrationService) *DismissConfirmationCommand {
	return &DismissConfirmationCommand{service: service}
}

var _ gocommand.Commander[DismissConfirmationInput] = (*DismissConfirmationCommand)(nil)

// Execute hides the confirmation.
func (c *DismissConfirmationCommand) Execute(ctx context.Context, _ DismissConfirmationInput) error {
	if c.service == nil {
		return errors.New("dismiss command requires service")
	}
	c.service.DismissConfirmation(ctx)
	return nil
}
