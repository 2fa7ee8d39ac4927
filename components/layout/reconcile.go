package layout

import "sort"

// Reconcile merges a persisted layout with the role-filtered registry into the
// working layout. Entries matching a still-registered widget are kept as-is in
// their persisted relative order; widgets new to the registry are appended
// after them with order values past the current maximum, preserving registry
// order among themselves. The result is sorted ascending by order.
//
// Reconcile is deterministic and performs no I/O. Absent or malformed data
// falls back to registry defaults instead of failing.
func Reconcile(persisted *PersistedLayout, visible []WidgetDescriptor) []WidgetPreference {
	if persisted == nil || len(persisted.Widgets) == 0 {
		return defaultPreferences(visible)
	}
	index := make(map[string]WidgetDescriptor, len(visible))
	for _, desc := range visible {
		index[desc.ID] = desc
	}
	merged := make([]WidgetPreference, 0, len(visible))
	seen := make(map[string]struct{}, len(visible))
	maxOrder := -1
	for _, pref := range persisted.Widgets {
		if _, ok := index[pref.ID]; !ok {
			continue
		}
		if _, dup := seen[pref.ID]; dup {
			continue
		}
		pref.Span = clampSpan(pref.Span)
		merged = append(merged, pref)
		seen[pref.ID] = struct{}{}
		if pref.Order > maxOrder {
			maxOrder = pref.Order
		}
	}
	for _, desc := range visible {
		if _, ok := seen[desc.ID]; ok {
			continue
		}
		maxOrder++
		merged = append(merged, WidgetPreference{
			ID:      desc.ID,
			Visible: !desc.DefaultHidden,
			Order:   maxOrder,
			Span:    clampSpan(desc.DefaultSpan),
		})
	}
	sortByOrder(merged)
	return merged
}

// Retained returns persisted entries whose widget is no longer registered or
// visible. They stay in storage untouched so regaining access later restores
// prior preferences instead of resetting them.
func Retained(persisted *PersistedLayout, visible []WidgetDescriptor) []WidgetPreference {
	if persisted == nil || len(persisted.Widgets) == 0 {
		return nil
	}
	ids := make(map[string]struct{}, len(visible))
	for _, desc := range visible {
		ids[desc.ID] = struct{}{}
	}
	var retained []WidgetPreference
	for _, pref := range persisted.Widgets {
		if _, ok := ids[pref.ID]; !ok {
			retained = append(retained, pref)
		}
	}
	return retained
}

func defaultPreferences(visible []WidgetDescriptor) []WidgetPreference {
	prefs := make([]WidgetPreference, 0, len(visible))
	for i, desc := range visible {
		prefs = append(prefs, WidgetPreference{
			ID:      desc.ID,
			Visible: !desc.DefaultHidden,
			Order:   i,
			Span:    clampSpan(desc.DefaultSpan),
		})
	}
	return prefs
}

// sortByOrder sorts ascending by order; the stable sort breaks ties by the
// original relative order.
func sortByOrder(prefs []WidgetPreference) {
	sort.SliceStable(prefs, func(i, j int) bool {
		return prefs[i].Order < prefs[j].Order
	})
}
