package playground

import (
	core "github.com/goliatone/go-playground/components/playground"
)

// Service exposes the underlying components/playground.Service type.
type Service = core.Service

// Options re-export for convenience.
type Options = core.Options

// Snapshot re-export for read-only consumers.
type Snapshot = core.Snapshot

// WidgetKey re-export.
type WidgetKey = core.WidgetKey

// NewService proxies to the internal constructor.
func NewService(opts Options) *Service {
	return core.NewService(opts)
}
