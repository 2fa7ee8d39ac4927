package projects

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	layout "github.com/sitedeck/go-layout/components/layout"
)

// HTTPConfig configures the HTTP projects client.
type HTTPConfig struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
}

// HTTPClient talks to the SiteDeck projects service via REST endpoints.
type HTTPClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewHTTPClient builds a client capable of hitting the live projects API.
func NewHTTPClient(cfg HTTPConfig) (*HTTPClient, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("projects: base url is required")
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &HTTPClient{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		client:  httpClient,
	}, nil
}

// FetchBudgetSeries implements BudgetClient by calling the budget endpoint.
func (c *HTTPClient) FetchBudgetSeries(ctx context.Context, query layout.BudgetSeriesQuery) ([]layout.BudgetSeriesPoint, error) {
	req := budgetRequest{
		ProjectID: query.ProjectID,
		Series:    query.Series,
		UserID:    query.Viewer.UserID,
		Role:      string(query.Viewer.Role),
	}
	var resp budgetResponse
	if err := c.do(ctx, http.MethodPost, "/budget/series", req, &resp); err != nil {
		return nil, err
	}
	return resp.toPoints()
}

// FetchPhaseProgress implements PhaseClient via the phases endpoint.
func (c *HTTPClient) FetchPhaseProgress(ctx context.Context, query PhaseQuery) (PhaseReport, error) {
	req := phaseRequest{
		ProjectID: query.ProjectID,
		UserID:    query.Viewer.UserID,
		Role:      string(query.Viewer.Role),
	}
	var resp phaseResponse
	if err := c.do(ctx, http.MethodPost, "/phases/progress", req, &resp); err != nil {
		return PhaseReport{}, err
	}
	return resp.toReport(), nil
}

func (c *HTTPClient) do(ctx context.Context, method, path string, payload any, target any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("projects: encode payload: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("projects: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("projects: http request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		var buf bytes.Buffer
		_, _ = buf.ReadFrom(resp.Body)
		return fmt.Errorf("projects: remote error %d: %s", resp.StatusCode, buf.String())
	}
	if target == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return fmt.Errorf("projects: decode response: %w", err)
	}
	return nil
}

type budgetRequest struct {
	ProjectID string `json:"project_id,omitempty"`
	Series    string `json:"series"`
	UserID    string `json:"user_id"`
	Role      string `json:"role,omitempty"`
}

type budgetPoint struct {
	Day   string  `json:"day"`
	Value float64 `json:"value"`
}

type budgetResponse struct {
	Series string        `json:"series"`
	Points []budgetPoint `json:"points"`
}

func (r budgetResponse) toPoints() ([]layout.BudgetSeriesPoint, error) {
	points := make([]layout.BudgetSeriesPoint, len(r.Points))
	for i, point := range r.Points {
		parsedDay, err := time.Parse(time.DateOnly, point.Day)
		if err != nil {
			return nil, fmt.Errorf("projects: parse budget day %q: %w", point.Day, err)
		}
		points[i] = layout.BudgetSeriesPoint{Timestamp: parsedDay, Value: point.Value}
	}
	return points, nil
}

type phaseRequest struct {
	ProjectID string `json:"project_id,omitempty"`
	UserID    string `json:"user_id"`
	Role      string `json:"role,omitempty"`
}

type phaseEntry struct {
	Name     string `json:"name"`
	Progress int    `json:"progress"`
}

type phaseResponse struct {
	ProjectID string       `json:"project_id"`
	Phases    []phaseEntry `json:"phases"`
}

func (r phaseResponse) toReport() PhaseReport {
	phases := make([]Phase, len(r.Phases))
	for i, phase := range r.Phases {
		phases[i] = Phase{Name: phase.Name, Progress: phase.Progress}
	}
	return PhaseReport{ProjectID: r.ProjectID, Phases: phases}
}
