package layout

import (
	"context"
	"time"
)

// defaultProviders backs the stock widgets with static demo data. Host
// applications replace these through RegisterProvider or registry hooks.
var defaultProviders = map[string]Provider{
	"site.widget.project_overview": ProviderFunc(func(_ context.Context, _ WidgetContext) (WidgetData, error) {
		return WidgetData{
			"active_projects": 7,
			"on_schedule":     5,
			"at_risk":         2,
			"open_rfis":       14,
		}, nil
	}),
	"site.widget.phase_timeline": ProviderFunc(func(_ context.Context, _ WidgetContext) (WidgetData, error) {
		return WidgetData{
			"phases": []map[string]any{
				{"name": "Sitework", "progress": 100},
				{"name": "Foundation", "progress": 100},
				{"name": "Framing", "progress": 74},
				{"name": "MEP Rough-In", "progress": 31},
				{"name": "Finishes", "progress": 0},
			},
		}, nil
	}),
	"site.widget.open_checklists": ProviderFunc(func(_ context.Context, meta WidgetContext) (WidgetData, error) {
		return WidgetData{
			"assigned_to": meta.Viewer.UserID,
			"open":        9,
			"overdue":     2,
		}, nil
	}),
	"site.widget.budget_burndown": NewBudgetBurndownProvider(
		NewStaticBudgetRepository(defaultBudgetSeries()),
		NewEChartsRenderer("line"),
	),
	"site.widget.recent_photos": ProviderFunc(func(_ context.Context, _ WidgetContext) (WidgetData, error) {
		return WidgetData{
			"photos": []map[string]any{
				{"caption": "North elevation framing", "taken_at": time.Now().UTC().Add(-3 * time.Hour).Format(time.RFC3339)},
				{"caption": "Slab pour, bay 4", "taken_at": time.Now().UTC().Add(-26 * time.Hour).Format(time.RFC3339)},
			},
		}, nil
	}),
	"site.widget.document_inbox": ProviderFunc(func(_ context.Context, _ WidgetContext) (WidgetData, error) {
		return WidgetData{
			"pending_review": 4,
			"recent": []string{
				"Change Order 012 - Rev B",
				"Structural submittal S-204",
			},
		}, nil
	}),
	"site.widget.insurance_expirations": ProviderFunc(func(_ context.Context, _ WidgetContext) (WidgetData, error) {
		return WidgetData{
			"expiring_30_days": 3,
			"expired":          1,
		}, nil
	}),
	"site.widget.team_directory": ProviderFunc(func(_ context.Context, _ WidgetContext) (WidgetData, error) {
		return WidgetData{
			"onsite_today": 23,
			"crews": []string{
				"Concrete", "Framing", "Electrical",
			},
		}, nil
	}),
	"site.widget.notifications": ProviderFunc(func(_ context.Context, meta WidgetContext) (WidgetData, error) {
		return WidgetData{
			"unread": 6,
			"role":   string(meta.Viewer.Role),
		}, nil
	}),
	"site.widget.ai_insights": ProviderFunc(func(_ context.Context, _ WidgetContext) (WidgetData, error) {
		return WidgetData{
			"insights": []string{
				"Framing labor trending 6% over estimate for the last two weeks.",
				"Three submittals awaiting review are on the critical path.",
			},
		}, nil
	}),
}
