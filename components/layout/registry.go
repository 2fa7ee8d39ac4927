package layout

import (
	"fmt"
	"sync"
)

// WidgetHook lets packages register widgets/providers during init().
type WidgetHook func(reg *Registry) error

var (
	globalHookMu sync.Mutex
	globalHooks  []WidgetHook
)

// RegisterWidgetHook registers a hook executed against new registries.
func RegisterWidgetHook(h WidgetHook) {
	globalHookMu.Lock()
	defer globalHookMu.Unlock()
	globalHooks = append(globalHooks, h)
}

// Registry implements DescriptorRegistry with hook + manifest support.
// Registration order is preserved because it defines the default layout order
// and where newly introduced widgets are appended during reconciliation.
type Registry struct {
	mu           sync.RWMutex
	order        []string
	descriptors  map[string]WidgetDescriptor
	providers    map[string]Provider
	manifestMeta map[string]ManifestProvider
}

// NewRegistry builds a registry seeded with the default SiteDeck widgets and
// applies global hooks.
func NewRegistry() *Registry {
	reg := &Registry{
		descriptors:  map[string]WidgetDescriptor{},
		providers:    map[string]Provider{},
		manifestMeta: map[string]ManifestProvider{},
	}
	reg.registerDefaults()
	_ = reg.ApplyHooks()
	return reg
}

// NewEmptyRegistry builds a registry without the default widget set. Hosting
// pages that assemble their own registry start from here.
func NewEmptyRegistry() *Registry {
	return &Registry{
		descriptors:  map[string]WidgetDescriptor{},
		providers:    map[string]Provider{},
		manifestMeta: map[string]ManifestProvider{},
	}
}

func (r *Registry) registerDefaults() {
	for _, desc := range DefaultWidgetDescriptors() {
		_ = r.RegisterDescriptor(desc)
		if provider, ok := defaultProviders[desc.ID]; ok {
			_ = r.RegisterProvider(desc.ID, provider)
		}
	}
}

// ApplyHooks executes registered widget hooks.
func (r *Registry) ApplyHooks() error {
	globalHookMu.Lock()
	defer globalHookMu.Unlock()
	for _, hook := range globalHooks {
		if err := hook(r); err != nil {
			return err
		}
	}
	return nil
}

// RegisterDescriptor stores widget metadata. Re-registering an id replaces the
// descriptor but keeps its original position.
func (r *Registry) RegisterDescriptor(desc WidgetDescriptor) error {
	if desc.ID == "" {
		return fmt.Errorf("layout: widget descriptor id is required")
	}
	desc.DefaultSpan = clampSpan(desc.DefaultSpan)
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.descriptors[desc.ID]; !exists {
		r.order = append(r.order, desc.ID)
	}
	r.descriptors[desc.ID] = desc
	return nil
}

// RegisterProvider associates a content provider with a descriptor.
func (r *Registry) RegisterProvider(id string, provider Provider) error {
	if id == "" {
		return fmt.Errorf("layout: widget descriptor id is required to register provider")
	}
	if provider == nil {
		return fmt.Errorf("layout: provider cannot be nil")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.descriptors[id]; !ok {
		return fmt.Errorf("layout: widget descriptor %s not found", id)
	}
	r.providers[id] = provider
	return nil
}

// Descriptor fetches a widget descriptor by id.
func (r *Registry) Descriptor(id string) (WidgetDescriptor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	desc, ok := r.descriptors[id]
	return desc, ok
}

// Provider fetches a widget provider by id.
func (r *Registry) Provider(id string) (Provider, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	provider, ok := r.providers[id]
	return provider, ok
}

// ProviderMetadata returns any manifest metadata registered for a widget.
func (r *Registry) ProviderMetadata(id string) (ManifestProvider, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	meta, ok := r.manifestMeta[id]
	return meta, ok
}

// Descriptors returns all registered descriptors in registration order.
func (r *Registry) Descriptors() []WidgetDescriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()
	descs := make([]WidgetDescriptor, 0, len(r.order))
	for _, id := range r.order {
		descs = append(descs, r.descriptors[id])
	}
	return descs
}

// VisibleTo returns the registry narrowed to what the role may see.
func (r *Registry) VisibleTo(role Role) []WidgetDescriptor {
	return FilterByRole(r.Descriptors(), role)
}

func (r *Registry) recordProviderMetadata(id string, meta ManifestProvider) {
	if meta.isZero() {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.manifestMeta[id] = meta
}
