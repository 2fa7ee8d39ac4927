package httpapi

import (
	"context"

	layout "github.com/sitedeck/go-layout/components/layout"
	"github.com/sitedeck/go-layout/components/layout/commands"
)

// Executor is the command surface route adapters depend on.
type Executor interface {
	Toggle(ctx context.Context, input commands.ToggleWidgetInput) error
	Collapse(ctx context.Context, input commands.CollapseWidgetInput) error
	Span(ctx context.Context, input commands.CycleSpanInput) error
	Reorder(ctx context.Context, input commands.ReorderWidgetsInput) error
	Reset(ctx context.Context, input commands.ResetLayoutInput) error
	Save(ctx context.Context, input commands.SaveLayoutInput) error
}

// CommandExecutor wires the shared commands into the Executor surface.
type CommandExecutor struct {
	toggle   *commands.ToggleWidgetCommand
	collapse *commands.CollapseWidgetCommand
	span     *commands.CycleSpanCommand
	reorder  *commands.ReorderWidgetsCommand
	reset    *commands.ResetLayoutCommand
	save     *commands.SaveLayoutCommand
}

// NewCommandExecutor builds the executor from a layout service.
func NewCommandExecutor(service *layout.Service, telemetry commands.Telemetry) *CommandExecutor {
	return &CommandExecutor{
		toggle:   commands.NewToggleWidgetCommand(service, telemetry),
		collapse: commands.NewCollapseWidgetCommand(service, telemetry),
		span:     commands.NewCycleSpanCommand(service, telemetry),
		reorder:  commands.NewReorderWidgetsCommand(service, telemetry),
		reset:    commands.NewResetLayoutCommand(service, telemetry),
		save:     commands.NewSaveLayoutCommand(service, telemetry),
	}
}

var _ Executor = (*CommandExecutor)(nil)

func (e *CommandExecutor) Toggle(ctx context.Context, input commands.ToggleWidgetInput) error {
	return e.toggle.Execute(ctx, input)
}

func (e *CommandExecutor) Collapse(ctx context.Context, input commands.CollapseWidgetInput) error {
	return e.collapse.Execute(ctx, input)
}

func (e *CommandExecutor) Span(ctx context.Context, input commands.CycleSpanInput) error {
	return e.span.Execute(ctx, input)
}

func (e *CommandExecutor) Reorder(ctx context.Context, input commands.ReorderWidgetsInput) error {
	return e.reorder.Execute(ctx, input)
}

func (e *CommandExecutor) Reset(ctx context.Context, input commands.ResetLayoutInput) error {
	return e.reset.Execute(ctx, input)
}

func (e *CommandExecutor) Save(ctx context.Context, input commands.SaveLayoutInput) error {
	return e.save.Execute(ctx, input)
}
