package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
	layout "github.com/sitedeck/go-layout/components/layout"
)

// ToggleWidgetInput identifies the widget whose visibility flips.
type ToggleWidgetInput struct {
	Viewer   layout.ViewerContext `json:"viewer"`
	WidgetID string               `json:"widget_id"`
}

type visibilityService interface {
	ToggleVisibility(ctx context.Context, viewer layout.ViewerContext, widgetID string) ([]layout.WidgetPreference, error)
}

// ToggleWidgetCommand wraps Service.ToggleVisibility.
type ToggleWidgetCommand struct {
	service   visibilityService
	telemetry Telemetry
}

// NewToggleWidgetCommand builds the command.
func NewToggleWidgetCommand(service visibilityService, telemetry Telemetry) *ToggleWidgetCommand {
	return &ToggleWidgetCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[ToggleWidgetInput] = (*ToggleWidgetCommand)(nil)

// Execute flips the visible flag for the widget.
func (c *ToggleWidgetCommand) Execute(ctx context.Context, msg ToggleWidgetInput) error {
	if c.service == nil {
		return errors.New("toggle command requires service")
	}
	if msg.WidgetID == "" {
		return errors.New("toggle command requires widget id")
	}
	if _, err := c.service.ToggleVisibility(ctx, msg.Viewer, msg.WidgetID); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "layout.widget.toggle", map[string]any{
		"user_id":   msg.Viewer.UserID,
		"widget_id": msg.WidgetID,
	})
	return nil
}
