package layout

import "context"

// Provider fetches the content payload for a widget. It supplies the opaque
// renderable fragment; the layout engine never inspects the payload.
type Provider interface {
	Fetch(ctx context.Context, meta WidgetContext) (WidgetData, error)
}

// WidgetContext contains the metadata needed by providers.
type WidgetContext struct {
	Descriptor WidgetDescriptor
	Preference WidgetPreference
	Viewer     ViewerContext
}

// WidgetData is an opaque payload passed to templates.
type WidgetData map[string]any

// ProviderFunc adapts a function to the Provider interface.
type ProviderFunc func(ctx context.Context, meta WidgetContext) (WidgetData, error)

// Fetch implements Provider.
func (f ProviderFunc) Fetch(ctx context.Context, meta WidgetContext) (WidgetData, error) {
	return f(ctx, meta)
}
