package layout

import "time"

// DefaultWidgetDescriptors returns the stock SiteDeck dashboard widgets in
// their default display order.
func DefaultWidgetDescriptors() []WidgetDescriptor {
	return []WidgetDescriptor{
		{
			ID:          "site.widget.project_overview",
			Title:       "Project Overview",
			Icon:        "clipboard",
			Category:    "projects",
			DefaultSpan: 2,
		},
		{
			ID:          "site.widget.phase_timeline",
			Title:       "Phase Timeline",
			Icon:        "calendar",
			Category:    "projects",
			DefaultSpan: 3,
		},
		{
			ID:          "site.widget.open_checklists",
			Title:       "Open Checklists",
			Icon:        "check-square",
			Category:    "tasks",
			DefaultSpan: 1,
		},
		{
			ID:          "site.widget.budget_burndown",
			Title:       "Budget Burndown",
			Icon:        "trending-down",
			Category:    "budget",
			DefaultSpan: 2,
			MinRole:     RoleProjectManager,
		},
		{
			ID:          "site.widget.recent_photos",
			Title:       "Recent Photos",
			Icon:        "camera",
			Category:    "media",
			DefaultSpan: 1,
		},
		{
			ID:          "site.widget.document_inbox",
			Title:       "Document Inbox",
			Icon:        "file-text",
			Category:    "documents",
			DefaultSpan: 1,
		},
		{
			ID:          "site.widget.insurance_expirations",
			Title:       "Insurance Expirations",
			Icon:        "shield",
			Category:    "compliance",
			DefaultSpan: 1,
			MinRole:     RoleOrgAdmin,
		},
		{
			ID:          "site.widget.team_directory",
			Title:       "Team Directory",
			Icon:        "users",
			Category:    "directory",
			DefaultSpan: 1,
		},
		{
			ID:          "site.widget.notifications",
			Title:       "Notifications",
			Icon:        "bell",
			Category:    "activity",
			DefaultSpan: 1,
		},
		{
			ID:            "site.widget.ai_insights",
			Title:         "AI Insights",
			Icon:          "sparkles",
			Category:      "insights",
			DefaultSpan:   2,
			MinRole:       RoleSupervisor,
			DefaultHidden: true,
		},
	}
}

func defaultBudgetSeries() []BudgetSeriesPoint {
	now := time.Now().UTC()
	values := []float64{182000, 236500, 291000, 348200, 402750, 458900}
	points := make([]BudgetSeriesPoint, len(values))
	for i, value := range values {
		points[i] = BudgetSeriesPoint{
			Timestamp: now.AddDate(0, 0, -7*(len(values)-i)),
			Value:     value,
		}
	}
	return points
}
