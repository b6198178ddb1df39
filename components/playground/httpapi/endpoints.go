package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	goerrors "github.com/goliatone/go-errors"
	playground "github.com/goliatone/go-playground/components/playground"
	"github.com/goliatone/go-playground/components/playground/commands"
)

// Response is a transport neutral endpoint result.
type Response struct {
	Status    int
	Body      any
	SetCookie string
}

// Endpoints decodes request bodies, runs the matching command and shapes the
// response. Both the net/http handlers and the go-router adapter call it.
type Endpoints struct {
	API Executor
}

type gestureBody struct {
	Action  string         `json:"action"`
	Payload map[string]any `json:"payload,omitempty"`
}

// Gesture applies a widget gesture. Deferred effects answer 202.
func (e Endpoints) Gesture(ctx context.Context, widget string, body []byte) Response {
	var payload gestureBody
	if err := decode(body, &payload); err != nil {
		return failure(err)
	}
	var result playground.GestureResult
	input := commands.GestureInput{Widget: widget, Action: payload.Action, Payload: payload.Payload, Result: &result}
	if err := e.API.Gesture(ctx, input); err != nil {
		return failure(err)
	}
	status := http.StatusOK
	if result.Deferred {
		status = http.StatusAccepted
	}
	return Response{Status: status, Body: result}
}

// SetDelay stores the global delay from a number or raw field text.
func (e Endpoints) SetDelay(ctx context.Context, body []byte) Response {
	var input commands.SetDelayInput
	if err := decode(body, &input); err != nil {
		return failure(err)
	}
	var stored int
	input.Stored = &stored
	if err := e.API.SetDelay(ctx, input); err != nil {
		return failure(err)
	}
	return Response{Status: http.StatusOK, Body: map[string]int{"delay_seconds": stored}}
}

// RegistrationField updates a single form field.
func (e Endpoints) RegistrationField(ctx context.Context, body []byte) Response {
	var input commands.UpdateRegistrationFieldInput
	if err := decode(body, &input); err != nil {
		return failure(err)
	}
	if err := e.API.UpdateRegistrationField(ctx, input); err != nil {
		return failure(err)
	}
	return Response{Status: http.StatusOK, Body: map[string]string{"status": "updated"}}
}

// SubmitRegistration validates and submits the form. An empty body submits the
// stored form. Invalid forms answer 422 with the aggregated message.
func (e Endpoints) SubmitRegistration(ctx context.Context, body []byte) Response {
	var input commands.SubmitRegistrationInput
	if len(strings.TrimSpace(string(body))) > 0 {
		var form playground.RegistrationForm
		if err := decode(body, &form); err != nil {
			return failure(err)
		}
		input.Form = &form
	}
	var result playground.RegistrationSubmission
	input.Result = &result
	if err := e.API.SubmitRegistration(ctx, input); err != nil {
		return failure(err)
	}
	if !result.Result.OK {
		return Response{Status: http.StatusUnprocessableEntity, Body: result}
	}
	return Response{Status: http.StatusAccepted, Body: result}
}

// DismissConfirmation closes the registration confirmation.
func (e Endpoints) DismissConfirmation(ctx context.Context) Response {
	if err := e.API.DismissConfirmation(ctx, commands.DismissConfirmationInput{}); err != nil {
		return failure(err)
	}
	return Response{Status: http.StatusOK, Body: map[string]string{"status": "dismissed"}}
}

// TableInput updates a field of the add row form.
func (e Endpoints) TableInput(ctx context.Context, body []byte) Response {
	var input commands.TableInputFieldInput
	if err := decode(body, &input); err != nil {
		return failure(err)
	}
	if err := e.API.SetTableInput(ctx, input); err != nil {
		return failure(err)
	}
	return Response{Status: http.StatusOK, Body: map[string]string{"status": "updated"}}
}

// AddRow appends a row. An empty body submits the stored add row form.
func (e Endpoints) AddRow(ctx context.Context, body []byte) Response {
	var input commands.AddRowInput
	if len(strings.TrimSpace(string(body))) > 0 {
		var row playground.NewRowInput
		if err := decode(body, &row); err != nil {
			return failure(err)
		}
		input.Row = &row
	}
	var result playground.TableResult
	input.Result = &result
	if err := e.API.AddRow(ctx, input); err != nil {
		return failure(err)
	}
	if result.Applied {
		return Response{Status: http.StatusCreated, Body: result}
	}
	return Response{Status: http.StatusOK, Body: result}
}

// DeleteRow removes the row with the given id.
func (e Endpoints) DeleteRow(ctx context.Context, rawID string) Response {
	id, err := parseRowID(rawID)
	if err != nil {
		return failure(err)
	}
	var result playground.TableResult
	if err := e.API.DeleteRow(ctx, commands.DeleteRowInput{ID: id, Result: &result}); err != nil {
		return failure(err)
	}
	return Response{Status: http.StatusOK, Body: result}
}

type editBody struct {
	Op    string `json:"op"`
	Field string `json:"field,omitempty"`
	Value string `json:"value,omitempty"`
}

// EditRow drives the edit state of a row.
func (e Endpoints) EditRow(ctx context.Context, rawID string, body []byte) Response {
	id, err := parseRowID(rawID)
	if err != nil {
		return failure(err)
	}
	var payload editBody
	if err := decode(body, &payload); err != nil {
		return failure(err)
	}
	var result playground.TableResult
	input := commands.EditRowInput{ID: id, Op: payload.Op, Field: payload.Field, Value: payload.Value, Result: &result}
	if err := e.API.EditRow(ctx, input); err != nil {
		return failure(err)
	}
	return Response{Status: http.StatusOK, Body: result}
}

// ReorderRows moves a row between positions.
func (e Endpoints) ReorderRows(ctx context.Context, body []byte) Response {
	var input commands.ReorderRowsInput
	if err := decode(body, &input); err != nil {
		return failure(err)
	}
	var result playground.TableResult
	input.Result = &result
	if err := e.API.ReorderRows(ctx, input); err != nil {
		return failure(err)
	}
	return Response{Status: http.StatusOK, Body: result}
}

// Reset restores the initial playground state.
func (e Endpoints) Reset(ctx context.Context) Response {
	if err := e.API.Reset(ctx, commands.ResetInput{}); err != nil {
		return failure(err)
	}
	return Response{Status: http.StatusOK, Body: map[string]string{"status": "reset"}}
}

// Login checks credentials and sets the session cookie.
func (e Endpoints) Login(ctx context.Context, body []byte) Response {
	var input commands.LoginInput
	if err := decode(body, &input); err != nil {
		return failure(err)
	}
	var session playground.Session
	var cookie string
	input.Session = &session
	input.SetCookie = &cookie
	if err := e.API.Login(ctx, input); err != nil {
		return failure(err)
	}
	return Response{Status: http.StatusOK, Body: session, SetCookie: cookie}
}

// Logout clears the session cookie.
func (e Endpoints) Logout(ctx context.Context, session playground.Session) Response {
	var cookie string
	if err := e.API.Logout(ctx, commands.LogoutInput{Session: session, SetCookie: &cookie}); err != nil {
		return failure(err)
	}
	return Response{Status: http.StatusOK, Body: map[string]string{"status": "logged_out"}, SetCookie: cookie}
}

func decode(body []byte, dst any) error {
	if len(strings.TrimSpace(string(body))) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryBadInput, "invalid request body")
	}
	return nil
}

func parseRowID(raw string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, goerrors.Wrap(err, goerrors.CategoryBadInput, "row id must be an integer")
	}
	return id, nil
}

func failure(err error) Response {
	return Response{Status: StatusFor(err), Body: ErrorBody(err)}
}
