package httpapi

import (
	"context"
	"fmt"

	gocommand "github.com/goliatone/go-command"
	goerrors "github.com/goliatone/go-errors"
	playground "github.com/goliatone/go-playground/components/playground"
	"github.com/goliatone/go-playground/components/playground/commands"
)

// Executor is the transport facing command surface.
type Executor interface {
	Gesture(ctx context.Context, input commands.GestureInput) error
	SetDelay(ctx context.Context, input commands.SetDelayInput) error
	UpdateRegistrationField(ctx context.Context, input commands.UpdateRegistrationFieldInput) error
	SubmitRegistration(ctx context.Context, input commands.SubmitRegistrationInput) error
	DismissConfirmation(ctx context.Context, input commands.DismissConfirmationInput) error
	SetTableInput(ctx context.Context, input commands.TableInputFieldInput) error
	AddRow(ctx context.Context, input commands.AddRowInput) error
	DeleteRow(ctx context.Context, input commands.DeleteRowInput) error
	EditRow(ctx context.Context, input commands.EditRowInput) error
	ReorderRows(ctx context.Context, input commands.ReorderRowsInput) error
	Reset(ctx context.Context, input commands.ResetInput) error
	Login(ctx context.Context, input commands.LoginInput) error
	Logout(ctx context.Context, input commands.LogoutInput) error
}

// CommandExecutor adapts go-command commanders to the Executor interface.
type CommandExecutor struct {
	GestureCommander             gocommand.Commander[commands.GestureInput]
	DelayCommander               gocommand.Commander[commands.SetDelayInput]
	RegistrationFieldCommander   gocommand.Commander[commands.UpdateRegistrationFieldInput]
	SubmitRegistrationCommander  gocommand.Commander[commands.SubmitRegistrationInput]
	DismissConfirmationCommander gocommand.Commander[commands.DismissConfirmationInput]
	TableInputCommander          gocommand.Commander[commands.TableInputFieldInput]
	AddRowCommander              gocommand.Commander[commands.AddRowInput]
	DeleteRowCommander           gocommand.Commander[commands.DeleteRowInput]
	EditRowCommander             gocommand.Commander[commands.EditRowInput]
	ReorderRowsCommander         gocommand.Commander[commands.ReorderRowsInput]
	ResetCommander               gocommand.Commander[commands.ResetInput]
	LoginCommander               gocommand.Commander[commands.LoginInput]
	LogoutCommander              gocommand.Commander[commands.LogoutInput]
}

// NewCommandExecutor wires every command against the service and session
// manager. A nil session manager leaves login and logout unconfigured.
func NewCommandExecutor(service *playground.Service, sessions *playground.SessionManager, telemetry commands.Telemetry) *CommandExecutor {
	exec := &CommandExecutor{
		GestureCommander:             commands.NewGestureCommand(service, telemetry),
		DelayCommander:               commands.NewSetDelayCommand(service, telemetry),
		RegistrationFieldCommander:   commands.NewUpdateRegistrationFieldCommand(service, telemetry),
		SubmitRegistrationCommander:  commands.NewSubmitRegistrationCommand(service, telemetry),
		DismissConfirmationCommander: commands.NewDismissConfirmationCommand(service),
		TableInputCommander:          commands.NewTableInputFieldCommand(service),
		AddRowCommander:              commands.NewAddRowCommand(service, telemetry),
		DeleteRowCommander:           commands.NewDeleteRowCommand(service, telemetry),
		EditRowCommander:             commands.NewEditRowCommand(service, telemetry),
		ReorderRowsCommander:         commands.NewReorderRowsCommand(service, telemetry),
		ResetCommander:               commands.NewResetCommand(service, telemetry),
	}
	if sessions != nil {
		exec.LoginCommander = commands.NewLoginCommand(sessions)
		exec.LogoutCommander = commands.NewLogoutCommand(sessions)
	}
	return exec
}

var _ Executor = (*CommandExecutor)(nil)

func execute[T any](ctx context.Context, name string, cmd gocommand.Commander[T], msg T) error {
	if cmd == nil {
		return goerrors.New(fmt.Sprintf("%s command not configured", name), goerrors.CategoryInternal)
	}
	return cmd.Execute(ctx, msg)
}

func (e *CommandExecutor) Gesture(ctx context.Context, input commands.GestureInput) error {
	return execute(ctx, "gesture", e.GestureCommander, input)
}

func (e *CommandExecutor) SetDelay(ctx context.Context, input commands.SetDelayInput) error {
	return execute(ctx, "delay", e.DelayCommander, input)
}

func (e *CommandExecutor) UpdateRegistrationField(ctx context.Context, input commands.UpdateRegistrationFieldInput) error {
	return execute(ctx, "registration field", e.RegistrationFieldCommander, input)
}

func (e *CommandExecutor) SubmitRegistration(ctx context.Context, input commands.SubmitRegistrationInput) error {
	return execute(ctx, "registration submit", e.SubmitRegistrationCommander, input)
}

func (e *CommandExecutor) DismissConfirmation(ctx context.Context, input commands.DismissConfirmationInput) error {
	return execute(ctx, "dismiss confirmation", e.DismissConfirmationCommander, input)
}

func (e *CommandExecutor) SetTableInput(ctx context.Context, input commands.TableInputFieldInput) error {
	return execute(ctx, "table input", e.TableInputCommander, input)
}

func (e *CommandExecutor) AddRow(ctx context.Context, input commands.AddRowInput) error {
	return execute(ctx, "add row", e.AddRowCommander, input)
}

func (e *CommandExecutor) DeleteRow(ctx context.Context, input commands.DeleteRowInput) error {
	return execute(ctx, "delete row", e.DeleteRowCommander, input)
}

func (e *CommandExecutor) EditRow(ctx context.Context, input commands.EditRowInput) error {
	return execute(ctx, "edit row", e.EditRowCommander, input)
}

func (e *CommandExecutor) ReorderRows(ctx context.Context, input commands.ReorderRowsInput) error {
	return execute(ctx, "reorder rows", e.ReorderRowsCommander, input)
}

func (e *CommandExecutor) Reset(ctx context.Context, input commands.ResetInput) error {
	return execute(ctx, "reset", e.ResetCommander, input)
}

func (e *CommandExecutor) Login(ctx context.Context, input commands.LoginInput) error {
	return execute(ctx, "login", e.LoginCommander, input)
}

func (e *CommandExecutor) Logout(ctx context.Context, input commands.LogoutInput) error {
	return execute(ctx, "logout", e.LogoutCommander, input)
}
