package projects

import (
	"context"

	layout "github.com/sitedeck/go-layout/components/layout"
)

// PhaseQuery filters the phase progress endpoint. An empty ProjectID returns
// the viewer's primary project.
type PhaseQuery struct {
	ProjectID string
	Viewer    layout.ViewerContext
}

// Phase is a single schedule phase with its completion percentage.
type Phase struct {
	Name     string
	Progress int
}

// PhaseReport is the resolved schedule snapshot for one project.
type PhaseReport struct {
	ProjectID string
	Phases    []Phase
}

// BudgetClient fetches budget time-series from the projects service.
type BudgetClient interface {
	FetchBudgetSeries(ctx context.Context, query layout.BudgetSeriesQuery) ([]layout.BudgetSeriesPoint, error)
}

// PhaseClient fetches schedule phase progress from the projects service.
type PhaseClient interface {
	FetchPhaseProgress(ctx context.Context, query PhaseQuery) (PhaseReport, error)
}

// Client is a convenience union for services that implement all project calls.
type Client interface {
	BudgetClient
	PhaseClient
}
