package layout

import (
	core "github.com/sitedeck/go-layout/components/layout"
)

// Service exposes the underlying components/layout.Service type.
type Service = core.Service

// Options re-export for convenience.
type Options = core.Options

// NewService proxies to the internal constructor.
func NewService(opts Options) *Service {
	return core.NewService(opts)
}
