package layout

import (
	"context"
	"errors"
	"io"
)

// ControllerOptions wires the service and renderer into a controller.
type ControllerOptions struct {
	Service  *Service
	Renderer Renderer
}

// Controller orchestrates HTTP-facing reads for the dashboard page.
type Controller struct {
	service  *Service
	renderer Renderer
}

// NewController builds a controller. The renderer is optional; without it only
// the JSON payload path is available.
func NewController(opts ControllerOptions) *Controller {
	return &Controller{service: opts.Service, renderer: opts.Renderer}
}

// LayoutPayload is the JSON shape served to client-side grid widgets.
type LayoutPayload struct {
	Grid    GridModel          `json:"grid"`
	Widgets []WidgetPreference `json:"widgets"`
}

// RenderTemplate resolves the grid for a viewer and writes the HTML page.
func (c *Controller) RenderTemplate(ctx context.Context, viewer ViewerContext, out io.Writer) error {
	if c.service == nil {
		return errors.New("layout: controller requires service")
	}
	if c.renderer == nil {
		return errors.New("layout: controller requires renderer")
	}
	grid, err := c.service.Grid(ctx, viewer)
	if err != nil {
		return err
	}
	_, err = c.renderer.Render("grid", map[string]any{
		"grid":   grid,
		"viewer": viewer,
		"saving": false,
	}, out)
	return err
}

// Payload resolves the layout JSON for a viewer.
func (c *Controller) Payload(ctx context.Context, viewer ViewerContext) (LayoutPayload, error) {
	if c.service == nil {
		return LayoutPayload{}, errors.New("layout: controller requires service")
	}
	working, err := c.service.ConfigureLayout(ctx, viewer)
	if err != nil {
		return LayoutPayload{}, err
	}
	return LayoutPayload{
		Grid:    c.service.GridFromLayout(ctx, viewer, working),
		Widgets: working,
	}, nil
}
