// Package armnnprofiling is the public, hexagonal-wiring-free surface
// over the profiling service: Conf loads a config, StreamIN/StreamOUT
// layer in overrides, and Run drives the session. The builder shape
// mirrors the teacher's pkg/aegisflow.Flow (Conf -> StreamIN ->
// StreamOUT -> Run), generalised from an edge telemetry pipeline to a
// profiling session.
package armnnprofiling

import (
	"context"
	"fmt"
	"time"

	"github.com/ghaddam/armnn/internal/app/config"
	"github.com/ghaddam/armnn/internal/app/service"
)

// Session is a convenience builder so callers can say
// Conf -> StreamIN -> StreamOUT without touching internal packages.
type Session struct {
	cfg  *config.Config
	opts []service.Option
}

// SessionOption mutates the Session after its config is loaded.
type SessionOption func(*Session)

// StreamInOption configures the transport/observability/capture side
// of the service before it is built.
type StreamInOption func(*Session)

// Conf loads YAML from path, applies opts, and returns a Session
// builder.
func Conf(path string, opts ...SessionOption) (*Session, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	return ConfFromConfig(cfg, opts...)
}

// ConfFromConfig bootstraps a Session from an in-memory Config.
func ConfFromConfig(cfg *config.Config, opts ...SessionOption) (*Session, error) {
	if cfg == nil {
		return nil, fmt.Errorf("armnn: config is required")
	}
	s := &Session{cfg: cfg}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s, nil
}

// Config returns the underlying configuration so callers can inspect
// it before building a service.
func (s *Session) Config() *Config {
	if s == nil {
		return nil
	}
	return s.cfg
}

// StreamIN records transport/observability/capture overrides.
func (s *Session) StreamIN(opts ...StreamInOption) *Session {
	if s == nil {
		return nil
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// StreamOUT finalises overrides and builds a Service ready to Run.
func (s *Session) StreamOUT() (*Service, error) {
	if s == nil {
		return nil, fmt.Errorf("armnn: session is nil")
	}
	return service.New(s.cfg, s.opts...)
}

// Run is a shortcut for StreamOUT + Service.RunUntil, ticking once
// per interval until ctx is cancelled.
func (s *Session) Run(ctx context.Context, interval time.Duration) error {
	svc, err := s.StreamOUT()
	if err != nil {
		return err
	}
	if err := svc.StartMetrics(); err != nil {
		return err
	}
	return svc.RunUntil(ctx, interval)
}

func (s *Session) appendOptions(opts ...service.Option) {
	for _, opt := range opts {
		if opt != nil {
			s.opts = append(s.opts, opt)
		}
	}
}

// WithSessionOptions appends raw service.Option values during Conf.
func WithSessionOptions(opts ...service.Option) SessionOption {
	return func(s *Session) {
		if s != nil {
			s.appendOptions(opts...)
		}
	}
}

// StreamInConnection injects a custom transport connection.
func StreamInConnection(conn Connection) StreamInOption {
	return func(s *Session) {
		if s != nil && conn != nil {
			s.appendOptions(service.WithConnection(conn))
		}
	}
}

// StreamInObservability overrides the default Prometheus-backed
// observability stack.
func StreamInObservability(obs Observability) StreamInOption {
	return func(s *Session) {
		if s != nil && obs != nil {
			s.appendOptions(service.WithObservability(obs))
		}
	}
}

// StreamInCapture overrides the default periodic capture thread.
func StreamInCapture(c PeriodicCapture) StreamInOption {
	return func(s *Session) {
		if s != nil && c != nil {
			s.appendOptions(service.WithCapture(c))
		}
	}
}
