package gorouter

import (
	"bytes"
	"context"
	"errors"
	"net/http"

	gocommand "github.com/goliatone/go-command"
	router "github.com/goliatone/go-router"

	playground "github.com/goliatone/go-playground/components/playground"
	"github.com/goliatone/go-playground/components/playground/httpapi"
	"github.com/goliatone/go-playground/components/playground/queries"
)

// Config wires go-router with the playground controller, APIs and hooks.
type Config[T any] struct {
	Router     router.Router[T]
	Controller *playground.Controller
	API        httpapi.Executor
	Broadcast  *playground.BroadcastHook
	Snapshot   gocommand.Querier[queries.SnapshotInput, playground.Snapshot]
	Sessions   gocommand.Querier[queries.SessionInput, playground.Session]
	BasePath   string
	Routes     RouteConfig
}

// RouteConfig customizes the relative paths used for playground endpoints.
type RouteConfig struct {
	HTML         string
	State        string
	Gesture      string
	Delay        string
	Registration string
	RegisterForm string
	Confirmation string
	TableInput   string
	Rows         string
	RowID        string
	RowEdit      string
	Reorder      string
	Reset        string
	Login        string
	Logout       string
	WebSocket    string
}

// requestContext is the subset of router.Context the endpoints read and write.
type requestContext interface {
	Context() context.Context
	Body() []byte
	Param(name string, defaultValue ...string) string
	Header(key string) string
	SetHeader(key, value string) router.Context
	JSON(code int, v any) error
	Send(body []byte) error
}

type endpoint func(requestContext) error

// Route is one mounted endpoint.
type Route struct {
	Method  string
	Path    string
	Handler endpoint
}

// Register mounts playground routes (HTML, JSON, REST, WebSocket) on a go-router router.
func Register[T any](cfg Config[T]) error {
	if cfg.Router == nil {
		return errors.New("gorouter: router is required")
	}
	if cfg.Controller == nil {
		return errors.New("gorouter: controller is required")
	}
	base := cfg.BasePath
	if base == "" {
		base = "/playground"
	}
	group := cfg.Router.Group(base)
	for _, route := range Routes(cfg) {
		handler := route.Handler
		wrapped := router.WrapHandler(func(ctx router.Context) error {
			return handler(ctx)
		})
		switch route.Method {
		case http.MethodGet:
			group.Get(route.Path, wrapped)
		case http.MethodDelete:
			group.Delete(route.Path, wrapped)
		default:
			group.Post(route.Path, wrapped)
		}
	}
	if cfg.Broadcast != nil {
		registerWebSocket(group, cfg.Broadcast, cfg.routes().WebSocket)
	}
	return nil
}

// Routes returns the HTTP route table for cfg, relative to the base path.
func Routes[T any](cfg Config[T]) []Route {
	routes := cfg.routes()
	h := handlers{
		controller: cfg.Controller,
		endpoints:  httpapi.Endpoints{API: cfg.API},
		snapshot:   cfg.Snapshot,
		sessions:   cfg.Sessions,
	}
	table := []Route{
		{Method: http.MethodGet, Path: routes.HTML, Handler: h.page},
	}
	if cfg.Snapshot != nil {
		table = append(table, Route{Method: http.MethodGet, Path: routes.State, Handler: h.state})
	}
	if cfg.API == nil {
		return table
	}
	return append(table,
		Route{Method: http.MethodPost, Path: routes.Gesture, Handler: h.gesture},
		Route{Method: http.MethodPost, Path: routes.Delay, Handler: h.delay},
		Route{Method: http.MethodPost, Path: routes.Registration, Handler: h.registrationField},
		Route{Method: http.MethodPost, Path: routes.RegisterForm, Handler: h.submitRegistration},
		Route{Method: http.MethodDelete, Path: routes.Confirmation, Handler: h.dismissConfirmation},
		Route{Method: http.MethodPost, Path: routes.TableInput, Handler: h.tableInput},
		Route{Method: http.MethodPost, Path: routes.Rows, Handler: h.addRow},
		Route{Method: http.MethodDelete, Path: routes.RowID, Handler: h.deleteRow},
		Route{Method: http.MethodPost, Path: routes.RowEdit, Handler: h.editRow},
		Route{Method: http.MethodPost, Path: routes.Reorder, Handler: h.reorder},
		Route{Method: http.MethodPost, Path: routes.Reset, Handler: h.reset},
		Route{Method: http.MethodPost, Path: routes.Login, Handler: h.login},
		Route{Method: http.MethodPost, Path: routes.Logout, Handler: h.logout},
	)
}

type handlers struct {
	controller *playground.Controller
	endpoints  httpapi.Endpoints
	snapshot   gocommand.Querier[queries.SnapshotInput, playground.Snapshot]
	sessions   gocommand.Querier[queries.SessionInput, playground.Session]
}

func (h handlers) page(ctx requestContext) error {
	session := h.session(ctx)
	var buf bytes.Buffer
	if err := h.controller.RenderTemplate(ctx.Context(), session, &buf); err != nil {
		return respondError(ctx, http.StatusInternalServerError, err)
	}
	ctx.SetHeader("Content-Type", "text/html; charset=utf-8")
	return ctx.Send(buf.Bytes())
}

func (h handlers) state(ctx requestContext) error {
	snapshot, err := h.snapshot.Query(ctx.Context(), queries.SnapshotInput{})
	if err != nil {
		return respondError(ctx, httpapi.StatusFor(err), err)
	}
	return ctx.JSON(http.StatusOK, snapshot)
}

func (h handlers) gesture(ctx requestContext) error {
	return respond(ctx, h.endpoints.Gesture(ctx.Context(), ctx.Param("widget"), ctx.Body()))
}

func (h handlers) delay(ctx requestContext) error {
	return respond(ctx, h.endpoints.SetDelay(ctx.Context(), ctx.Body()))
}

func (h handlers) registrationField(ctx requestContext) error {
	return respond(ctx, h.endpoints.RegistrationField(ctx.Context(), ctx.Body()))
}

func (h handlers) submitRegistration(ctx requestContext) error {
	return respond(ctx, h.endpoints.SubmitRegistration(ctx.Context(), ctx.Body()))
}

func (h handlers) dismissConfirmation(ctx requestContext) error {
	return respond(ctx, h.endpoints.DismissConfirmation(ctx.Context()))
}

func (h handlers) tableInput(ctx requestContext) error {
	return respond(ctx, h.endpoints.TableInput(ctx.Context(), ctx.Body()))
}

func (h handlers) addRow(ctx requestContext) error {
	return respond(ctx, h.endpoints.AddRow(ctx.Context(), ctx.Body()))
}

func (h handlers) deleteRow(ctx requestContext) error {
	return respond(ctx, h.endpoints.DeleteRow(ctx.Context(), ctx.Param("id")))
}

func (h handlers) editRow(ctx requestContext) error {
	return respond(ctx, h.endpoints.EditRow(ctx.Context(), ctx.Param("id"), ctx.Body()))
}

func (h handlers) reorder(ctx requestContext) error {
	return respond(ctx, h.endpoints.ReorderRows(ctx.Context(), ctx.Body()))
}

func (h handlers) reset(ctx requestContext) error {
	return respond(ctx, h.endpoints.Reset(ctx.Context()))
}

func (h handlers) login(ctx requestContext) error {
	return respond(ctx, h.endpoints.Login(ctx.Context(), ctx.Body()))
}

func (h handlers) logout(ctx requestContext) error {
	var session playground.Session
	if s := h.session(ctx); s != nil {
		session = *s
	}
	return respond(ctx, h.endpoints.Logout(ctx.Context(), session))
}

// session resolves the visitor session from the Cookie header. Missing or
// invalid cookies mean logged out.
func (h handlers) session(ctx requestContext) *playground.Session {
	if h.sessions == nil {
		return nil
	}
	header := ctx.Header("Cookie")
	if header == "" {
		return nil
	}
	session, err := h.sessions.Query(ctx.Context(), queries.SessionInput{CookieHeader: header})
	if err != nil {
		return nil
	}
	return &session
}

func registerWebSocket[T any](r router.Router[T], hook *playground.BroadcastHook, path string) {
	cfg := router.DefaultWebSocketConfig()
	r.WebSocket(path, cfg, func(ws router.WebSocketContext) error {
		events, cancel := hook.Subscribe()
		defer cancel()
		for {
			select {
			case event, ok := <-events:
				if !ok {
					return nil
				}
				if err := ws.WriteJSON(event); err != nil {
					return err
				}
			case <-ws.Context().Done():
				return ws.Close()
			}
		}
	})
}

func respond(ctx requestContext, resp httpapi.Response) error {
	if resp.SetCookie != "" {
		ctx.SetHeader("Set-Cookie", resp.SetCookie)
	}
	return ctx.JSON(resp.Status, resp.Body)
}

func respondError(ctx requestContext, status int, err error) error {
	return ctx.JSON(status, httpapi.ErrorBody(err))
}

func (cfg Config[T]) routes() RouteConfig {
	return defaultRouteConfig(cfg.Routes)
}

func defaultRouteConfig(routes RouteConfig) RouteConfig {
	if routes.HTML == "" {
		routes.HTML = "/"
	}
	if routes.State == "" {
		routes.State = "/api/state"
	}
	if routes.Gesture == "" {
		routes.Gesture = "/api/widgets/:widget/gesture"
	}
	if routes.Delay == "" {
		routes.Delay = "/api/delay"
	}
	if routes.Registration == "" {
		routes.Registration = "/api/registration/field"
	}
	if routes.RegisterForm == "" {
		routes.RegisterForm = "/api/registration"
	}
	if routes.Confirmation == "" {
		routes.Confirmation = "/api/registration/confirmation"
	}
	if routes.TableInput == "" {
		routes.TableInput = "/api/table/input"
	}
	if routes.Rows == "" {
		routes.Rows = "/api/table/rows"
	}
	if routes.RowID == "" {
		routes.RowID = "/api/table/rows/:id"
	}
	if routes.RowEdit == "" {
		routes.RowEdit = "/api/table/rows/:id/edit"
	}
	if routes.Reorder == "" {
		routes.Reorder = "/api/table/reorder"
	}
	if routes.Reset == "" {
		routes.Reset = "/api/reset"
	}
	if routes.Login == "" {
		routes.Login = "/api/session"
	}
	if routes.Logout == "" {
		routes.Logout = "/api/session/logout"
	}
	if routes.WebSocket == "" {
		routes.WebSocket = "/ws"
	}
	return routes
}
