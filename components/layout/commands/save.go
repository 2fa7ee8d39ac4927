package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
	layout "github.com/sitedeck/go-layout/components/layout"
)

// SaveLayoutInput carries a wholesale layout save.
type SaveLayoutInput struct {
	Viewer  layout.ViewerContext      `json:"viewer"`
	Widgets []layout.WidgetPreference `json:"widgets"`
	Version int                       `json:"version"`
}

type saveService interface {
	SaveLayout(ctx context.Context, viewer layout.ViewerContext, l layout.PersistedLayout) error
}

// SaveLayoutCommand persists a full per-user layout, last write wins.
type SaveLayoutCommand struct {
	service   saveService
	telemetry Telemetry
}

// NewSaveLayoutCommand creates the command.
func NewSaveLayoutCommand(service saveService, telemetry Telemetry) *SaveLayoutCommand {
	return &SaveLayoutCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[SaveLayoutInput] = (*SaveLayoutCommand)(nil)

// Execute stores the provided layout for the viewer.
func (c *SaveLayoutCommand) Execute(ctx context.Context, msg SaveLayoutInput) error {
	if c.service == nil {
		return errors.New("save command requires service")
	}
	if msg.Viewer.UserID == "" {
		return errors.New("save command requires viewer user id")
	}
	if err := c.service.SaveLayout(ctx, msg.Viewer, layout.PersistedLayout{
		Widgets: msg.Widgets,
		Version: msg.Version,
	}); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "layout.save", map[string]any{
		"user_id": msg.Viewer.UserID,
		"count":   len(msg.Widgets),
	})
	return nil
}
