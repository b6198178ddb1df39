package commands

import (
	"context"
	"errors"
	"fmt"

	gocommand "github.com/goliatone/go-command"
	goerrors "github.com/goliatone/go-errors"
	playground "github.com/goliatone/go-playground/components/playground"
)

// Row edit operations.
const (
	EditEnter  = "enter"
	EditDraft  = "draft"
	EditCommit = "commit"
	EditCancel = "cancel"
)

type tableService interface {
	SetTableInput(ctx context.Context, field, value string) error
	AddRow(ctx context.Context, input playground.NewRowInput) playground.TableResult
	SubmitTableInput(ctx context.Context) playground.TableResult
	DeleteRow(ctx context.Context, id int) playground.TableResult
	EnterEdit(ctx context.Context, id int) playground.TableResult
	UpdateDraft(ctx context.Context, id int, field, value string) (playground.TableResult, error)
	CommitEdit(ctx context.Context, id int) playground.TableResult
	CancelEdit(ctx context.Context, id int) playground.TableResult
	Reorder(ctx context.Context, from, to string) playground.TableResult
}

// AddRowInput adds a row. A nil Row submits the pending input buffer.
type AddRowInput struct {
	Row    *playground.NewRowInput `json:"row,omitempty"`
	Result *playground.TableResult `json:"-"`
}

// AddRowCommand wraps Service.AddRow.
type AddRowCommand struct {
	service   tableService
	telemetry Telemetry
}

// NewAddRowCommand builds the command.
func NewAddRowCommand(service tableService, telemetry Telemetry) *AddRowCommand {
	return &AddRowCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[AddRowInput] = (*AddRowCommand)(nil)

// Execute adds the row.
func (c *AddRowCommand) Execute(ctx context.Context, msg AddRowInput) error {
	if c.service == nil {
		return errors.New("add row command requires service")
	}
	var res playground.TableResult
	if msg.Row != nil {
		res = c.service.AddRow(ctx, *msg.Row)
	} else {
		res = c.service.SubmitTableInput(ctx)
	}
	storeResult(msg.Result, res)
	c.telemetry.Record(ctx, "playground.command.table.add", map[string]any{"applied": res.Applied})
	return nil
}

// TableInputFieldInput changes one field of the new-row input buffer.
type TableInputFieldInput struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

// TableInputFieldCommand wraps Service.SetTableInput.
type TableInputFieldCommand struct {
	service tableService
}

// NewTableInputFieldCommand builds the command.
func NewTableInputFieldCommand(service tableService) *TableInputFieldCommand {
	return &TableInputFieldCommand{service: service}
}

var _ gocommand.Commander[TableInputFieldInput] = (*TableInputFieldCommand)(nil)

// Execute updates the buffer.
func (c *TableInputFieldCommand) Execute(ctx context.Context, msg TableInputFieldInput) error {
	if c.service == nil {
		return errors.New("table input command requires service")
	}
	return c.service.SetTableInput(ctx, msg.Field, msg.Value)
}

// DeleteRowInput removes a row by id.
type DeleteRowInput struct {
	ID     int                     `json:"id"`
	Result *playground.TableResult `json:"-"`
}

// DeleteRowCommand wraps Service.DeleteRow.
type DeleteRowCommand struct {
	service   tableService
	telemetry Telemetry
}

// NewDeleteRowCommand builds the command.
func NewDeleteRowCommand(service tableService, telemetry Telemetry) *DeleteRowCommand {
	return &DeleteRowCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[DeleteRowInput] = (*DeleteRowCommand)(nil)

// Execute deletes the row. Absent ids are a no-op.
func (c *DeleteRowCommand) Execute(ctx context.Context, msg DeleteRowInput) error {
	if c.service == nil {
		return errors.New("delete row command requires service")
	}
	res := c.service.DeleteRow(ctx, msg.ID)
	storeResult(msg.Result, res)
	c.telemetry.Record(ctx, "playground.command.table.delete", map[string]any{
		"row_id":  msg.ID,
		"applied": res.Applied,
	})
	return nil
}

// EditRowInput drives the row edit state machine.
type EditRowInput struct {
	ID     int                     `json:"id"`
	Op     string                  `json:"op"`
	Field  string                  `json:"field,omitempty"`
	Value  string                  `json:"value,omitempty"`
	Result *playground.TableResult `json:"-"`
}

// EditRowCommand wraps the enter/draft/commit/cancel operations.
type EditRowCommand struct {
	service   tableService
	telemetry Telemetry
}

// NewEditRowCommand builds the command.
func NewEditRowCommand(service tableService, telemetry Telemetry) *EditRowCommand {
	return &EditRowCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[EditRowInput] = (*EditRowCommand)(nil)

// Execute applies the edit operation.
func (c *EditRowCommand) Execute(ctx context.Context, msg EditRowInput) error {
	if c.service == nil {
		return errors.New("edit row command requires service")
	}
	var res playground.TableResult
	switch msg.Op {
	case EditEnter:
		res = c.service.EnterEdit(ctx, msg.ID)
	case EditDraft:
		var err error
		if res, err = c.service.UpdateDraft(ctx, msg.ID, msg.Field, msg.Value); err != nil {
			return err
		}
	case EditCommit:
		res = c.service.CommitEdit(ctx, msg.ID)
	case EditCancel:
		res = c.service.CancelEdit(ctx, msg.ID)
	default:
		return goerrors.New(fmt.Sprintf("unknown edit operation %q", msg.Op), goerrors.CategoryBadInput)
	}
	storeResult(msg.Result, res)
	c.telemetry.Record(ctx, "playground.command.table.edit", map[string]any{
		"row_id":  msg.ID,
		"op":      msg.Op,
		"applied": res.Applied,
	})
	return nil
}

// ReorderRowsInput moves a row. Indexes are the raw drag payload values.
type ReorderRowsInput struct {
	From   string                  `json:"from"`
	To     string                  `json:"to"`
	Result *playground.TableResult `json:"-"`
}

// ReorderRowsCommand wraps Service.Reorder.
type ReorderRowsCommand struct {
	service   tableService
	telemetry Telemetry
}

// NewReorderRowsCommand builds the command.
func NewReorderRowsCommand(service tableService, telemetry Telemetry) *ReorderRowsCommand {
	return &ReorderRowsCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[ReorderRowsInput] = (*ReorderRowsCommand)(nil)

// Execute applies the new ordering.
func (c *ReorderRowsCommand) Execute(ctx context.Context, msg ReorderRowsInput) error {
	if c.service == nil {
		return errors.New("reorder command requires service")
	}
	res := c.service.Reorder(ctx, msg.From, msg.To)
	storeResult(msg.Result, res)
	c.telemetry.Record(ctx, "playground.command.table.reorder", map[string]any{
		"from":    msg.From,
		"to":      msg.To,
		"applied": res.Applied,
	})
	return nil
}

func storeResult(dst *playground.TableResult, res playground.TableResult) {
	if dst != nil {
		*dst = res
	}
}
