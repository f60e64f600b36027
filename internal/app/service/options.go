package service

import "github.com/ghaddam/armnn/internal/ports"

// Option customizes a dependency New wires up by default via
// override-then-default construction.
type Option func(*overrides)

type overrides struct {
	connection      ports.Connection
	observability   ports.Observability
	capture         ports.PeriodicCapture
	versionResolver ports.VersionResolver
}

// WithConnection injects a custom transport connection.
func WithConnection(conn ports.Connection) Option {
	return func(o *overrides) { o.connection = conn }
}

// WithObservability plugs in a custom logging/metrics backend.
func WithObservability(obs ports.Observability) Option {
	return func(o *overrides) { o.observability = obs }
}

// WithCapture overrides the default periodic capture thread.
func WithCapture(c ports.PeriodicCapture) Option {
	return func(o *overrides) { o.capture = c }
}

// WithVersionResolver overrides the default constant packet-version
// resolver.
func WithVersionResolver(r ports.VersionResolver) Option {
	return func(o *overrides) { o.versionResolver = r }
}
