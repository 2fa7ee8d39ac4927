package layout

import "context"

// PreferenceStore is the persistence boundary for per-user layouts.
// LoadLayout returns nil when the user has no stored layout yet; SaveLayout
// upserts the full layout wholesale (last write wins); ResetLayout clears the
// record so a subsequent LoadLayout returns nil.
type PreferenceStore interface {
	LoadLayout(ctx context.Context, viewer ViewerContext) (*PersistedLayout, error)
	SaveLayout(ctx context.Context, viewer ViewerContext, layout PersistedLayout) error
	ResetLayout(ctx context.Context, viewer ViewerContext) error
}

// DescriptorRegistry stores widget descriptors/providers discoverable via
// hooks or manifests. Descriptors() must preserve registration order: it
// drives default layout order and where new widgets are grafted in.
type DescriptorRegistry interface {
	RegisterDescriptor(desc WidgetDescriptor) error
	RegisterProvider(id string, provider Provider) error
	Descriptor(id string) (WidgetDescriptor, bool)
	Provider(id string) (Provider, bool)
	Descriptors() []WidgetDescriptor
}

// RefreshHook notifies transports (WebSocket/SSE) about layout changes.
type RefreshHook interface {
	LayoutChanged(ctx context.Context, event LayoutEvent) error
}

// WidgetDescriptor describes a widget the hosting application knows how to
// render. Descriptors are immutable at runtime; per-user state lives in
// WidgetPreference.
type WidgetDescriptor struct {
	ID            string         `json:"id" yaml:"id"`
	Title         string         `json:"title" yaml:"title"`
	Icon          string         `json:"icon,omitempty" yaml:"icon,omitempty"`
	Category      string         `json:"category,omitempty" yaml:"category,omitempty"`
	DefaultSpan   int            `json:"default_span,omitempty" yaml:"default_span,omitempty"`
	MinRole       Role           `json:"min_role,omitempty" yaml:"min_role,omitempty"`
	DefaultHidden bool           `json:"default_hidden,omitempty" yaml:"default_hidden,omitempty"`
	Schema        map[string]any `json:"schema,omitempty" yaml:"schema,omitempty"`
}

// WidgetPreference is one persisted per-user entry. Order defines display
// position ascending; Span overrides the descriptor default independently.
type WidgetPreference struct {
	ID        string `json:"id"`
	Visible   bool   `json:"visible"`
	Collapsed bool   `json:"collapsed"`
	Order     int    `json:"order"`
	Span      int    `json:"span"`
}

// PersistedLayout is the durable per-user aggregate. Version is carried
// opaquely; the engine never interprets it.
type PersistedLayout struct {
	Widgets []WidgetPreference `json:"widgets"`
	Version int                `json:"version"`
}

// ViewerContext identifies the user a layout belongs to. The role is passed
// explicitly rather than read from ambient session state so the engine stays
// testable in isolation.
type ViewerContext struct {
	UserID string `json:"user_id"`
	Role   Role   `json:"role"`
}

// LayoutEvent describes a change transports might care about.
type LayoutEvent struct {
	UserID  string             `json:"user_id"`
	Reason  string             `json:"reason"`
	Widgets []WidgetPreference `json:"widgets,omitempty"`
}

// Column spans a widget may occupy.
const (
	minSpan = 1
	maxSpan = 3
)

func clampSpan(span int) int {
	if span < minSpan {
		return minSpan
	}
	if span > maxSpan {
		return maxSpan
	}
	return span
}

func nextSpan(span int) int {
	span = clampSpan(span)
	if span == maxSpan {
		return minSpan
	}
	return span + 1
}
