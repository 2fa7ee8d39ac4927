package projects

import (
	"context"
	"sync"

	layout "github.com/sitedeck/go-layout/components/layout"
)

// MockData seeds deterministic project responses for tests or local demos.
type MockData struct {
	Budget map[string][]layout.BudgetSeriesPoint
	Phases PhaseReport
}

// MockClient implements Client using in-memory fixtures.
type MockClient struct {
	data MockData
	mu   sync.RWMutex
}

// NewMockClient builds a mock projects client from the provided fixtures.
func NewMockClient(data MockData) *MockClient {
	return &MockClient{data: data}
}

// FetchBudgetSeries returns the configured series points keyed by series name.
func (c *MockClient) FetchBudgetSeries(_ context.Context, query layout.BudgetSeriesQuery) ([]layout.BudgetSeriesPoint, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]layout.BudgetSeriesPoint(nil), c.data.Budget[query.Series]...), nil
}

// FetchPhaseProgress returns the configured phase report ignoring filters.
func (c *MockClient) FetchPhaseProgress(context.Context, PhaseQuery) (PhaseReport, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return clonePhases(c.data.Phases), nil
}

func clonePhases(report PhaseReport) PhaseReport {
	out := PhaseReport{ProjectID: report.ProjectID, Phases: make([]Phase, len(report.Phases))}
	copy(out.Phases, report.Phases)
	return out
}
