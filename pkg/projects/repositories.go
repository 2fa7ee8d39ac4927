package projects

import (
	"context"
	"fmt"

	layout "github.com/sitedeck/go-layout/components/layout"
)

// NewBudgetRepository adapts a projects client into the burndown repository.
func NewBudgetRepository(client BudgetClient) layout.BudgetSeriesRepository {
	return &budgetRepository{client: client}
}

type budgetRepository struct {
	client BudgetClient
}

func (r *budgetRepository) FetchBudgetSeries(ctx context.Context, query layout.BudgetSeriesQuery) ([]layout.BudgetSeriesPoint, error) {
	return r.client.FetchBudgetSeries(ctx, query)
}

// NewPhaseTimelineProvider adapts the projects client for the phase timeline
// widget. The returned provider mirrors the stock widget's payload shape.
func NewPhaseTimelineProvider(client PhaseClient) layout.Provider {
	return layout.ProviderFunc(func(ctx context.Context, meta layout.WidgetContext) (layout.WidgetData, error) {
		if client == nil {
			return nil, fmt.Errorf("projects: phase timeline provider requires client")
		}
		report, err := client.FetchPhaseProgress(ctx, PhaseQuery{Viewer: meta.Viewer})
		if err != nil {
			return nil, fmt.Errorf("projects: fetch phase progress: %w", err)
		}
		phases := make([]map[string]any, len(report.Phases))
		for i, phase := range report.Phases {
			phases[i] = map[string]any{
				"name":     phase.Name,
				"progress": phase.Progress,
			}
		}
		return layout.WidgetData{
			"project_id": report.ProjectID,
			"phases":     phases,
		}, nil
	})
}
