package layout

import (
	"context"
	"fmt"
	"time"
)

// BudgetSeriesPoint represents a single budget time-series value.
type BudgetSeriesPoint struct {
	Timestamp time.Time
	Value     float64
}

// BudgetSeriesQuery names the requested series. An empty ProjectID aggregates
// across the viewer's portfolio.
type BudgetSeriesQuery struct {
	ProjectID string
	Series    string // planned | actual | earned
	Viewer    ViewerContext
}

// BudgetSeriesRepository fetches time-series data for the burndown provider.
type BudgetSeriesRepository interface {
	FetchBudgetSeries(ctx context.Context, query BudgetSeriesQuery) ([]BudgetSeriesPoint, error)
}

// BudgetBurndownProvider composes planned/actual/earned-value series into an
// echarts widget, along with the CPI/SPI figures derived from the latest
// points.
type BudgetBurndownProvider struct {
	repo     BudgetSeriesRepository
	renderer *EChartsRenderer
}

// NewBudgetBurndownProvider builds a provider backed by the given repository.
func NewBudgetBurndownProvider(repo BudgetSeriesRepository, renderer *EChartsRenderer) Provider {
	if renderer == nil {
		renderer = NewEChartsRenderer("line")
	}
	return &BudgetBurndownProvider{repo: repo, renderer: renderer}
}

// Fetch renders the budget burndown widget.
func (p *BudgetBurndownProvider) Fetch(ctx context.Context, meta WidgetContext) (WidgetData, error) {
	if p.repo == nil {
		return nil, fmt.Errorf("layout: budget burndown provider requires repository")
	}
	names := []string{"planned", "actual", "earned"}
	titles := map[string]string{"planned": "Planned Value", "actual": "Actual Cost", "earned": "Earned Value"}

	series := make([]ChartSeries, 0, len(names))
	latest := map[string]float64{}
	var xAxis []string
	for _, name := range names {
		points, err := p.repo.FetchBudgetSeries(ctx, BudgetSeriesQuery{
			Series: name,
			Viewer: meta.Viewer,
		})
		if err != nil {
			return nil, fmt.Errorf("layout: budget burndown %s series: %w", name, err)
		}
		if len(points) == 0 {
			continue
		}
		series = append(series, ChartSeries{Name: titles[name], Points: budgetChartPoints(points)})
		latest[name] = points[len(points)-1].Value
		if len(points) > len(xAxis) {
			xAxis = budgetAxisLabels(points)
		}
	}

	key := fmt.Sprintf("%s:%s", meta.Descriptor.ID, meta.Viewer.UserID)
	html, err := p.renderer.RenderSeries(key, meta.Descriptor.Title, "Planned vs actual vs earned", xAxis, series)
	if err != nil {
		return nil, err
	}

	data := WidgetData{
		"chart_html": html,
		"chart_type": "line",
	}
	if ev, ac := latest["earned"], latest["actual"]; ac > 0 {
		data["cpi"] = ev / ac
	}
	if ev, pv := latest["earned"], latest["planned"]; pv > 0 {
		data["spi"] = ev / pv
	}
	return data, nil
}

func budgetChartPoints(points []BudgetSeriesPoint) []ChartPoint {
	out := make([]ChartPoint, len(points))
	for i, point := range points {
		out[i] = ChartPoint{Label: point.Timestamp.Format("Jan 2"), Value: point.Value}
	}
	return out
}

func budgetAxisLabels(points []BudgetSeriesPoint) []string {
	labels := make([]string, len(points))
	for i, point := range points {
		labels[i] = point.Timestamp.Format("Jan 2")
	}
	return labels
}

// NewStaticBudgetRepository returns a repository that always serves the
// provided points, scaled per series so the demo chart looks plausible.
func NewStaticBudgetRepository(points []BudgetSeriesPoint) BudgetSeriesRepository {
	return staticBudgetRepository{points: points}
}

type staticBudgetRepository struct {
	points []BudgetSeriesPoint
}

func (s staticBudgetRepository) FetchBudgetSeries(_ context.Context, query BudgetSeriesQuery) ([]BudgetSeriesPoint, error) {
	factor := 1.0
	switch query.Series {
	case "actual":
		factor = 0.92
	case "earned":
		factor = 0.88
	}
	out := make([]BudgetSeriesPoint, len(s.points))
	for i, point := range s.points {
		out[i] = BudgetSeriesPoint{Timestamp: point.Timestamp, Value: point.Value * factor}
	}
	return out, nil
}
