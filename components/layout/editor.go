package layout

import "sync"

// Editor owns one session's working layout. Every mutation applies to local
// state synchronously, returns the new working layout, and schedules an
// asynchronous persist through the session's queue. A failed persist is never
// rolled back; the working copy stays authoritative until the next successful
// write re-syncs the store.
type Editor struct {
	mu       sync.Mutex
	viewer   ViewerContext
	registry []WidgetDescriptor
	working  []WidgetPreference
	retained []WidgetPreference
	version  int
	queue    *PersistQueue
}

// NewEditor reconciles the persisted layout against the role-filtered registry
// and binds the persist queue for this session. A nil queue disables
// persistence, which is how tests exercise the pure state transitions.
func NewEditor(viewer ViewerContext, registry []WidgetDescriptor, persisted *PersistedLayout, queue *PersistQueue) *Editor {
	version := 0
	if persisted != nil {
		version = persisted.Version
	}
	return &Editor{
		viewer:   viewer,
		registry: registry,
		working:  Reconcile(persisted, registry),
		retained: Retained(persisted, registry),
		version:  version,
		queue:    queue,
	}
}

// Layout returns a copy of the current working layout.
func (e *Editor) Layout() []WidgetPreference {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshot()
}

// Saving reports whether a persist is still outstanding, driving the
// transient saving indicator in the hosting page.
func (e *Editor) Saving() bool {
	return e.queue != nil && e.queue.Pending() > 0
}

// ToggleVisibility flips the visible flag for the widget without touching its
// order, so re-showing it restores its prior position.
func (e *Editor) ToggleVisibility(id string) []WidgetPreference {
	return e.apply(func() { toggleVisibility(e.working, id) })
}

// ToggleCollapsed flips the collapsed flag for the widget.
func (e *Editor) ToggleCollapsed(id string) []WidgetPreference {
	return e.apply(func() { toggleCollapsed(e.working, id) })
}

// CycleSpan advances the widget's column span through 1 -> 2 -> 3 -> 1.
func (e *Editor) CycleSpan(id string) []WidgetPreference {
	return e.apply(func() { cycleSpan(e.working, id) })
}

// Reorder swaps the order values of the entries at the given positions within
// the visible-only subsequence, then re-sorts. Hidden entries keep their order
// untouched so their relative position survives reorders done while hidden.
func (e *Editor) Reorder(from, to int) []WidgetPreference {
	return e.apply(func() { reorderVisible(e.working, from, to) })
}

// Reset rebuilds the default layout straight from the filtered registry,
// discarding every customization including retained entries, and persists the
// result wholesale.
func (e *Editor) Reset() []WidgetPreference {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.working = defaultPreferences(e.registry)
	e.retained = nil
	e.persistLocked()
	return e.snapshot()
}

func (e *Editor) apply(mutate func()) []WidgetPreference {
	e.mu.Lock()
	defer e.mu.Unlock()
	mutate()
	e.persistLocked()
	return e.snapshot()
}

func (e *Editor) persistLocked() {
	if e.queue == nil {
		return
	}
	e.queue.Enqueue(mergePersisted(e.working, e.retained, e.version))
}

func (e *Editor) snapshot() []WidgetPreference {
	out := make([]WidgetPreference, len(e.working))
	copy(out, e.working)
	return out
}

// mergePersisted rebuilds the wholesale persistence payload: the working
// layout plus retained entries for widgets currently outside the registry.
func mergePersisted(working, retained []WidgetPreference, version int) PersistedLayout {
	widgets := make([]WidgetPreference, 0, len(working)+len(retained))
	widgets = append(widgets, working...)
	widgets = append(widgets, retained...)
	return PersistedLayout{Widgets: widgets, Version: version}
}

func toggleVisibility(prefs []WidgetPreference, id string) bool {
	for i := range prefs {
		if prefs[i].ID == id {
			prefs[i].Visible = !prefs[i].Visible
			return true
		}
	}
	return false
}

func toggleCollapsed(prefs []WidgetPreference, id string) bool {
	for i := range prefs {
		if prefs[i].ID == id {
			prefs[i].Collapsed = !prefs[i].Collapsed
			return true
		}
	}
	return false
}

func cycleSpan(prefs []WidgetPreference, id string) bool {
	for i := range prefs {
		if prefs[i].ID == id {
			prefs[i].Span = nextSpan(prefs[i].Span)
			return true
		}
	}
	return false
}

// reorderVisible operates over the visible-only subsequence: from and to are
// positions among visible entries, mirroring drag-source and drop-target
// indices in the rendered grid.
func reorderVisible(prefs []WidgetPreference, from, to int) bool {
	visible := make([]int, 0, len(prefs))
	for i, pref := range prefs {
		if pref.Visible {
			visible = append(visible, i)
		}
	}
	if from < 0 || to < 0 || from >= len(visible) || to >= len(visible) || from == to {
		return false
	}
	a, b := visible[from], visible[to]
	prefs[a].Order, prefs[b].Order = prefs[b].Order, prefs[a].Order
	sortByOrder(prefs)
	return true
}
