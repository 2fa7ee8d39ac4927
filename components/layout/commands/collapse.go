package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
	layout "github.com/sitedeck/go-layout/components/layout"
)

// CollapseWidgetInput identifies the widget whose collapsed flag flips.
type CollapseWidgetInput struct {
	Viewer   layout.ViewerContext `json:"viewer"`
	WidgetID string               `json:"widget_id"`
}

type collapseService interface {
	ToggleCollapsed(ctx context.Context, viewer layout.ViewerContext, widgetID string) ([]layout.WidgetPreference, error)
}

// CollapseWidgetCommand wraps Service.ToggleCollapsed.
type CollapseWidgetCommand struct {
	service   collapseService
	telemetry Telemetry
}

// NewCollapseWidgetCommand builds the command.
func NewCollapseWidgetCommand(service collapseService, telemetry Telemetry) *CollapseWidgetCommand {
	return &CollapseWidgetCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[CollapseWidgetInput] = (*CollapseWidgetCommand)(nil)

// Execute flips the collapsed flag for the widget.
func (c *CollapseWidgetCommand) Execute(ctx context.Context, msg CollapseWidgetInput) error {
	if c.service == nil {
		return errors.New("collapse command requires service")
	}
	if msg.WidgetID == "" {
		return errors.New("collapse command requires widget id")
	}
	if _, err := c.service.ToggleCollapsed(ctx, msg.Viewer, msg.WidgetID); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "layout.widget.collapse", map[string]any{
		"user_id":   msg.Viewer.UserID,
		"widget_id": msg.WidgetID,
	})
	return nil
}
