package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
	layout "github.com/sitedeck/go-layout/components/layout"
)

// CycleSpanInput identifies the widget whose span advances.
type CycleSpanInput struct {
	Viewer   layout.ViewerContext `json:"viewer"`
	WidgetID string               `json:"widget_id"`
}

type spanService interface {
	CycleSpan(ctx context.Context, viewer layout.ViewerContext, widgetID string) ([]layout.WidgetPreference, error)
}

// CycleSpanCommand wraps Service.CycleSpan.
type CycleSpanCommand struct {
	service   spanService
	telemetry Telemetry
}

// NewCycleSpanCommand builds the command.
func NewCycleSpanCommand(service spanService, telemetry Telemetry) *CycleSpanCommand {
	return &CycleSpanCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[CycleSpanInput] = (*CycleSpanCommand)(nil)

// Execute advances the widget span through its cycle.
func (c *CycleSpanCommand) Execute(ctx context.Context, msg CycleSpanInput) error {
	if c.service == nil {
		return errors.New("span command requires service")
	}
	if msg.WidgetID == "" {
		return errors.New("span command requires widget id")
	}
	if _, err := c.service.CycleSpan(ctx, msg.Viewer, msg.WidgetID); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "layout.widget.span", map[string]any{
		"user_id":   msg.Viewer.UserID,
		"widget_id": msg.WidgetID,
	})
	return nil
}
