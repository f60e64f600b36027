// Package service implements the profiling service: the object that
// owns the counter directory, the session state machine, the command
// handler registry and the send-packet encoder, and drives the
// session's connection lifecycle one step at a time via Run. The
// functional-options constructor and Start/Run/Shutdown lifecycle
// follow an override-then-default wiring, a metrics HTTP server spun
// up alongside the domain logic, and a context-driven blocking Run
// that calls Shutdown on cancellation.
package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ghaddam/armnn/internal/adapters/capture"
	"github.com/ghaddam/armnn/internal/adapters/codec"
	"github.com/ghaddam/armnn/internal/adapters/connection"
	"github.com/ghaddam/armnn/internal/adapters/directory"
	"github.com/ghaddam/armnn/internal/adapters/holder"
	"github.com/ghaddam/armnn/internal/adapters/observability"
	"github.com/ghaddam/armnn/internal/adapters/registry"
	"github.com/ghaddam/armnn/internal/adapters/selection"
	"github.com/ghaddam/armnn/internal/adapters/statemachine"
	"github.com/ghaddam/armnn/internal/adapters/uidalloc"
	"github.com/ghaddam/armnn/internal/adapters/version"
	"github.com/ghaddam/armnn/internal/adapters/wirebuf"
	"github.com/ghaddam/armnn/internal/app/config"
	"github.com/ghaddam/armnn/internal/domain"
	"github.com/ghaddam/armnn/internal/ports"
)

// Service is the profiling session driver.
type Service struct {
	id  string
	cfg *config.Config

	directory *directory.Directory
	sm        *statemachine.StateMachine
	registry  *registry.Registry
	holder    *holder.Holder
	buf       *wirebuf.Buffer
	encoder   *codec.Encoder
	resolver  ports.VersionResolver
	conn      ports.Connection
	obs       ports.Observability
	capture   ports.PeriodicCapture

	enableProfiling atomicBool

	metricsSrv *http.Server
}

// processUids is the one uid allocator of the process, shared by the
// directory of every Service.
var processUids = uidalloc.New()

// New wires the service's collaborators, applying opts over an
// override-then-default pattern, and sets the initial state:
// Uninitialised if cfg.EnableProfiling is false, NotConnected if true.
func New(cfg *config.Config, opts ...Option) (*Service, error) {
	var o overrides
	for _, opt := range opts {
		opt(&o)
	}

	obs := o.observability
	if obs == nil {
		obs = observability.NewPromObs()
	}

	resolver := o.versionResolver
	if resolver == nil {
		resolver = version.NewResolver()
	}

	conn := o.connection
	if conn == nil {
		conn = connection.NewTCPConnection(cfg.Transport.Addr, cfg.Transport.DialTimeout)
	}

	dir := directory.New(processUids)
	buf := wirebuf.New(cfg.Buffer.CapacityBytes)
	enc := codec.New(buf)
	hold := holder.New()

	captureLoop := o.capture
	if captureLoop == nil {
		captureLoop = capture.New(hold, obs, nil)
	}

	reg := registry.New()
	reg.Register(selection.New(hold, captureLoop, enc), selection.PacketID, resolver.Resolve(selection.PacketID))

	initial := domain.StateUninitialised
	if cfg.EnableProfiling {
		initial = domain.StateNotConnected
	}

	svc := &Service{
		id:        uuid.NewString(),
		cfg:       cfg,
		directory: dir,
		sm:        statemachine.New(initial),
		registry:  reg,
		holder:    hold,
		buf:       buf,
		encoder:   enc,
		resolver:  resolver,
		conn:      conn,
		obs:       obs,
		capture:   captureLoop,
	}
	svc.enableProfiling.store(cfg.EnableProfiling)
	return svc, nil
}

// Directory exposes the counter directory for registration calls made
// before the session reaches Active.
func (s *Service) Directory() *directory.Directory { return s.directory }

// ID returns the service's session identifier, generated once at
// construction. It is included in log fields so a run's log lines
// correlate to a single session across reconnects.
func (s *Service) ID() string { return s.id }

// CurrentState reports the session's current state.
func (s *Service) CurrentState() domain.ProfilingState {
	return s.sm.CurrentState()
}

// SetEnableProfiling toggles whether Run should drive the session
// towards NotConnected. It may be called between Run invocations at
// any time; enableProfiling is a mutable flag, not a constructor-time
// constant.
func (s *Service) SetEnableProfiling(enabled bool) {
	s.enableProfiling.store(enabled)
}

// EnableProfiling reports the current value of the mutable enable
// flag.
func (s *Service) EnableProfiling() bool {
	return s.enableProfiling.load()
}

// Run drives one idempotent step of the session lifecycle for the
// current state:
//
//   - Uninitialised: if profiling has been enabled, transition to
//     NotConnected; otherwise a true no-op.
//   - NotConnected: attempt to connect; success moves to
//     WaitingForAck, failure leaves the session in NotConnected.
//   - WaitingForAck: no-op; the transition to Active happens as a
//     side effect of Dispatch delivering the first acknowledged
//     command.
//   - Active: no-op.
//
// Collaborator failures (a failed dial) are absorbed into the state
// machine rather than returned: they convert into a logged, retryable
// state instead of propagating as a call error.
func (s *Service) Run() error {
	switch s.sm.CurrentState() {
	case domain.StateUninitialised:
		if !s.enableProfiling.load() {
			return nil
		}
		return s.sm.TransitionToState(domain.StateNotConnected)

	case domain.StateNotConnected:
		if err := s.conn.Connect(); err != nil {
			s.obs.LogError("profiling_connect_failed", err, ports.Field{Key: "session_id", Value: s.id})
			return nil
		}
		if err := s.sm.TransitionToState(domain.StateWaitingForAck); err != nil {
			return err
		}
		s.obs.LogInfo("profiling_connected", ports.Field{Key: "session_id", Value: s.id})
		return nil

	case domain.StateWaitingForAck, domain.StateActive:
		return nil

	default:
		return fmt.Errorf("armnn: unknown profiling state %v", s.sm.CurrentState())
	}
}

// Dispatch routes an inbound packet to its registered handler,
// resolving the expected protocol version via the service's
// VersionResolver. A successful dispatch while the session is
// WaitingForAck advances it to Active — the selection handler's ack is
// the event that completes the handshake.
func (s *Service) Dispatch(packet domain.Packet) error {
	packetID := packet.Header()
	ver := s.resolver.Resolve(packetID)

	handler, err := s.registry.Get(packetID, ver)
	if err != nil {
		s.obs.IncCounter("armnn_packets_dropped_total", 1)
		s.obs.LogError("no_handler_for_packet", err, ports.Field{Key: "packet_id", Value: packetID})
		return err
	}

	start := time.Now()
	err = handler.Invoke(packet)
	s.obs.ObserveLatency("armnn_dispatch_latency_seconds", time.Since(start).Seconds())

	if err != nil {
		if errors.Is(err, wirebuf.ErrBufferExhausted) {
			s.obs.IncCounter("armnn_buffer_exhausted_total", 1)
		} else {
			s.obs.IncCounter("armnn_malformed_packets_total", 1)
		}
		s.obs.LogError("handler_invoke_failed", err, ports.Field{Key: "packet_id", Value: packetID})
		return err
	}

	s.obs.IncCounter("armnn_packets_dispatched_total", 1)

	if s.sm.CurrentState() == domain.StateWaitingForAck {
		if tErr := s.sm.TransitionToState(domain.StateActive); tErr != nil && !errors.Is(tErr, statemachine.ErrInvalidStateTransition) {
			return tErr
		}
	}
	return nil
}

// StartMetrics serves /metrics on the configured address.
func (s *Service) StartMetrics() error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	s.metricsSrv = &http.Server{Addr: s.cfg.Metrics.Addr, Handler: mux}
	go func() {
		if err := s.metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.obs.LogError("metrics_server_failed", err)
		}
	}()
	return nil
}

// RunUntil blocks, calling Run on a steady tick until ctx is
// cancelled, then shuts the service down. This is the long-running
// counterpart to the single-step Run.
func (s *Service) RunUntil(ctx context.Context, tick time.Duration) error {
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return s.Shutdown(context.Background())
		case <-ticker.C:
			if err := s.Run(); err != nil {
				s.obs.LogError("profiling_run_step_failed", err)
			}
		}
	}
}

// Shutdown stops the capture loop, closes the transport connection and
// the metrics server, joining any cleanup errors.
func (s *Service) Shutdown(ctx context.Context) error {
	s.capture.Stop()

	var errs []error
	if err := s.conn.Close(); err != nil {
		errs = append(errs, err)
	}
	if s.metricsSrv != nil {
		if err := s.metricsSrv.Shutdown(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
