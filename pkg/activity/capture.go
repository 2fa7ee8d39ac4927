package activity

import "context"

// CaptureHook collects events in memory for tests and debugging.
type CaptureHook struct {
	Events []Event
}

// Notify implements Hook.
func (h *CaptureHook) Notify(_ context.Context, evt Event) error {
	h.Events = append(h.Events, evt)
	return nil
}
