package playground

import (
	"context"
	"errors"
	"io"
)

// DefaultTemplate is the page template rendered by the controller.
const DefaultTemplate = "playground.html"

type playgroundState interface {
	Snapshot(ctx context.Context) Snapshot
	Catalog() Catalog
}

type chartRenderer interface {
	Render(ctx context.Context) (string, error)
}

// ControllerOptions wires the controller collaborators.
type ControllerOptions struct {
	Service  playgroundState
	Renderer Renderer
	Chart    chartRenderer
	Template string
	Title    string
}

// Controller turns playground state into template payloads.
type Controller struct {
	service  playgroundState
	renderer Renderer
	chart    chartRenderer
	template string
	title    string
}

// NewController wires the service into a controller.
func NewController(opts ControllerOptions) *Controller {
	if opts.Template == "" {
		opts.Template = DefaultTemplate
	}
	if opts.Title == "" {
		opts.Title = "Automation Playground"
	}
	return &Controller{
		service:  opts.Service,
		renderer: opts.Renderer,
		chart:    opts.Chart,
		template: opts.Template,
		title:    opts.Title,
	}
}

// Payload builds the view model for the page. Widget maps use plain string
// keys so templates can index them directly.
func (c *Controller) Payload(ctx context.Context, session *Session) (map[string]any, error) {
	if c.service == nil {
		return nil, errors.New("playground: controller service not configured")
	}
	snap := c.service.Snapshot(ctx)

	widgets := make([]map[string]any, 0, len(snap.Statuses))
	statuses := make(map[string]string, len(snap.Statuses))
	for _, def := range c.service.Catalog().Definitions() {
		status := snap.Statuses[def.Key]
		statuses[string(def.Key)] = status
		widgets = append(widgets, map[string]any{
			"key":         string(def.Key),
			"name":        def.Name,
			"description": def.Description,
			"category":    def.Category,
			"dom_id":      def.ElementID(),
			"status":      status,
			"delayable":   def.Delayable,
		})
	}

	registration := map[string]any{
		"form":         snap.Registration.Form,
		"error":        snap.Registration.Error,
		"submitting":   snap.Registration.Submitting,
		"confirmation": nil,
	}
	if snap.Registration.Confirmation != nil {
		registration["confirmation"] = *snap.Registration.Confirmation
	}

	table := map[string]any{
		"records":    snap.Table.Records,
		"editing":    snap.Table.Editing,
		"editing_id": snap.Table.EditingID,
		"draft":      nil,
		"input":      snap.Table.Input,
	}
	if snap.Table.Draft != nil {
		table["draft"] = *snap.Table.Draft
	}

	payload := map[string]any{
		"title":            c.title,
		"delay":            snap.DelaySeconds,
		"delay_min":        MinDelaySeconds,
		"delay_max":        MaxDelaySeconds,
		"widgets":          widgets,
		"statuses":         statuses,
		"notifications":    snap.Notifications,
		"input_value":      snap.InputValue,
		"dragging":         snap.Dragging,
		"modal_open":       snap.ModalOpen,
		"drag_token":       DragToken,
		"dropdown_options": DropdownOptions,
		"radio_options":    RadioOptions,
		"country_codes":    CountryCodes,
		"registration":     registration,
		"table":            table,
		"session":          nil,
	}
	if session != nil {
		payload["session"] = *session
	}
	if c.chart != nil {
		html, err := c.chart.Render(ctx)
		if err != nil {
			return nil, err
		}
		payload["activity_chart"] = html
	}
	return payload, nil
}

// RenderTemplate renders the page into out.
func (c *Controller) RenderTemplate(ctx context.Context, session *Session, out io.Writer) error {
	if c.renderer == nil {
		return errors.New("playground: controller renderer not configured")
	}
	payload, err := c.Payload(ctx, session)
	if err != nil {
		return err
	}
	_, err = c.renderer.Render(c.template, payload, out)
	return err
}
