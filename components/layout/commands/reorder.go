package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
	layout "github.com/sitedeck/go-layout/components/layout"
)

// ReorderWidgetsInput carries drag positions within the visible sequence.
type ReorderWidgetsInput struct {
	Viewer layout.ViewerContext `json:"viewer"`
	From   int                  `json:"from"`
	To     int                  `json:"to"`
}

type reorderService interface {
	Reorder(ctx context.Context, viewer layout.ViewerContext, from, to int) ([]layout.WidgetPreference, error)
}

// ReorderWidgetsCommand wraps Service.Reorder.
type ReorderWidgetsCommand struct {
	service   reorderService
	telemetry Telemetry
}

// NewReorderWidgetsCommand builds the command.
func NewReorderWidgetsCommand(service reorderService, telemetry Telemetry) *ReorderWidgetsCommand {
	return &ReorderWidgetsCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[ReorderWidgetsInput] = (*ReorderWidgetsCommand)(nil)

// Execute applies the new ordering.
func (c *ReorderWidgetsCommand) Execute(ctx context.Context, msg ReorderWidgetsInput) error {
	if c.service == nil {
		return errors.New("reorder command requires service")
	}
	if _, err := c.service.Reorder(ctx, msg.Viewer, msg.From, msg.To); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "layout.widget.reorder", map[string]any{
		"user_id": msg.Viewer.UserID,
		"from":    msg.From,
		"to":      msg.To,
	})
	return nil
}
