package activity

import "context"

// Config toggles activity emission. Channel overrides the default channel on
// events that do not name one.
type Config struct {
	Enabled bool
	Channel string
}

// Emitter publishes dashboard activity to its hooks when enabled.
type Emitter struct {
	hooks  Hooks
	config Config
}

// NewEmitter builds an emitter. An emitter without hooks is disabled.
func NewEmitter(hooks Hooks, config Config) *Emitter {
	return &Emitter{hooks: hooks, config: config}
}

// Enabled reports whether events will be delivered.
func (e *Emitter) Enabled() bool {
	return e != nil && e.config.Enabled && len(e.hooks) > 0
}

// Emit delivers the event to every hook. Disabled emitters drop events
// silently.
func (e *Emitter) Emit(ctx context.Context, evt Event) error {
	if !e.Enabled() {
		return nil
	}
	if evt.Channel == "" {
		evt.Channel = e.config.Channel
	}
	return e.hooks.Notify(ctx, evt)
}
