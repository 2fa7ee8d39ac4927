package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
	layout "github.com/sitedeck/go-layout/components/layout"
)

// ResetLayoutInput identifies the viewer whose layout resets.
type ResetLayoutInput struct {
	Viewer layout.ViewerContext `json:"viewer"`
}

type resetService interface {
	ResetLayout(ctx context.Context, viewer layout.ViewerContext) ([]layout.WidgetPreference, error)
}

// ResetLayoutCommand wraps Service.ResetLayout.
type ResetLayoutCommand struct {
	service   resetService
	telemetry Telemetry
}

// NewResetLayoutCommand builds the command.
func NewResetLayoutCommand(service resetService, telemetry Telemetry) *ResetLayoutCommand {
	return &ResetLayoutCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[ResetLayoutInput] = (*ResetLayoutCommand)(nil)

// Execute restores the registry-default layout for the viewer.
func (c *ResetLayoutCommand) Execute(ctx context.Context, msg ResetLayoutInput) error {
	if c.service == nil {
		return errors.New("reset command requires service")
	}
	if msg.Viewer.UserID == "" {
		return errors.New("reset command requires viewer user id")
	}
	if _, err := c.service.ResetLayout(ctx, msg.Viewer); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "layout.reset", map[string]any{
		"user_id": msg.Viewer.UserID,
	})
	return nil
}
