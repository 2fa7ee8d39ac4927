package layout

import (
	"context"
	"fmt"
	"sync"
)

// InMemoryPreferenceStore provides a concurrency-safe default store. It keeps
// the full persisted superset per user, including entries for widgets no
// longer registered.
type InMemoryPreferenceStore struct {
	mu   sync.RWMutex
	data map[string]PersistedLayout
}

// NewInMemoryPreferenceStore creates an empty preference store.
func NewInMemoryPreferenceStore() *InMemoryPreferenceStore {
	return &InMemoryPreferenceStore{
		data: make(map[string]PersistedLayout),
	}
}

// LoadLayout returns the stored layout or nil when the user has none yet.
func (s *InMemoryPreferenceStore) LoadLayout(_ context.Context, viewer ViewerContext) (*PersistedLayout, error) {
	if viewer.UserID == "" {
		return nil, nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	stored, ok := s.data[viewer.UserID]
	if !ok {
		return nil, nil
	}
	out := PersistedLayout{
		Widgets: make([]WidgetPreference, len(stored.Widgets)),
		Version: stored.Version,
	}
	copy(out.Widgets, stored.Widgets)
	return &out, nil
}

// SaveLayout persists the full layout for a viewer, replacing what was there.
func (s *InMemoryPreferenceStore) SaveLayout(_ context.Context, viewer ViewerContext, l PersistedLayout) error {
	if viewer.UserID == "" {
		return fmt.Errorf("layout: preference store requires viewer user id")
	}
	stored := PersistedLayout{
		Widgets: make([]WidgetPreference, len(l.Widgets)),
		Version: l.Version,
	}
	copy(stored.Widgets, l.Widgets)
	for i := range stored.Widgets {
		stored.Widgets[i].Span = clampSpan(stored.Widgets[i].Span)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[viewer.UserID] = stored
	return nil
}

// ResetLayout removes the stored layout so the next load falls back to
// registry defaults.
func (s *InMemoryPreferenceStore) ResetLayout(_ context.Context, viewer ViewerContext) error {
	if viewer.UserID == "" {
		return fmt.Errorf("layout: preference store requires viewer user id")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, viewer.UserID)
	return nil
}
