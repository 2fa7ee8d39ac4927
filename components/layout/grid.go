package layout

import "fmt"

// GridWidget is one renderable cell of the dashboard grid. Collapsed widgets
// keep their header but suppress the body.
type GridWidget struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Icon      string     `json:"icon,omitempty"`
	Span      int        `json:"span"`
	SpanClass string     `json:"span_class"`
	Collapsed bool       `json:"collapsed"`
	Data      WidgetData `json:"data,omitempty"`
}

// CustomizeEntry backs the customize overlay: every role-visible widget is
// listed regardless of current visibility so hidden widgets can be re-enabled.
type CustomizeEntry struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Visible bool   `json:"visible"`
}

// GridModel is the render model for one viewer's dashboard.
type GridModel struct {
	Widgets     []GridWidget     `json:"widgets"`
	HiddenCount int              `json:"hidden_count"`
	Customize   []CustomizeEntry `json:"customize"`
}

// BuildGrid projects the working layout into its render model: visible entries
// in ascending order with span classes, a count of hidden widgets, and the
// customize overlay entries in registry order.
func BuildGrid(working []WidgetPreference, visible []WidgetDescriptor, data map[string]WidgetData) GridModel {
	descs := make(map[string]WidgetDescriptor, len(visible))
	for _, desc := range visible {
		descs[desc.ID] = desc
	}
	prefs := make(map[string]WidgetPreference, len(working))

	model := GridModel{}
	for _, pref := range working {
		prefs[pref.ID] = pref
		desc, ok := descs[pref.ID]
		if !ok {
			// Deprecated entry carried in storage; never rendered.
			continue
		}
		if !pref.Visible {
			model.HiddenCount++
			continue
		}
		model.Widgets = append(model.Widgets, GridWidget{
			ID:        pref.ID,
			Title:     desc.Title,
			Icon:      desc.Icon,
			Span:      clampSpan(pref.Span),
			SpanClass: spanClass(pref.Span),
			Collapsed: pref.Collapsed,
			Data:      data[pref.ID],
		})
	}
	for _, desc := range visible {
		entry := CustomizeEntry{ID: desc.ID, Title: desc.Title, Visible: !desc.DefaultHidden}
		if pref, ok := prefs[desc.ID]; ok {
			entry.Visible = pref.Visible
		}
		model.Customize = append(model.Customize, entry)
	}
	return model
}

func spanClass(span int) string {
	return fmt.Sprintf("widget-span-%d", clampSpan(span))
}
