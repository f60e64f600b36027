// Package capture implements the periodic capture thread: it reads
// the holder each period and, until told to stop, keeps doing so on a
// cancellation flag consulted every tick.
package capture

import (
	"sync"
	"time"

	"github.com/ghaddam/armnn/internal/adapters/holder"
	"github.com/ghaddam/armnn/internal/domain"
	"github.com/ghaddam/armnn/internal/ports"
)

// defaultPeriod is used when the holder's installed period is zero
// (nothing selected yet), so the loop still ticks and can pick up a
// freshly installed period promptly instead of blocking forever.
const defaultPeriod = 100 * time.Millisecond

// OnTick is invoked once per capture period with the holder's current
// snapshot. Sampling the actual counters is out of scope (spec §1);
// this is the seam a runtime would hook a sampler into.
type OnTick func(domain.CaptureData)

// Loop implements ports.PeriodicCapture.
type Loop struct {
	holder *holder.Holder
	obs    ports.Observability
	onTick OnTick

	mu      sync.Mutex
	running bool
	cancel  chan struct{}
	wg      sync.WaitGroup
}

// New wires a capture loop to the holder it reads and an optional
// per-tick callback.
func New(h *holder.Holder, obs ports.Observability, onTick OnTick) *Loop {
	return &Loop{holder: h, obs: obs, onTick: onTick}
}

// Start is idempotent: calling it while already running is a no-op.
func (l *Loop) Start() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.running {
		return nil
	}
	l.running = true
	l.cancel = make(chan struct{})
	l.wg.Add(1)
	go l.run(l.cancel)
	if l.obs != nil {
		l.obs.LogInfo("capture_loop_started")
	}
	return nil
}

// Stop signals the loop to exit and waits for it to do so.
func (l *Loop) Stop() {
	l.mu.Lock()
	if !l.running {
		l.mu.Unlock()
		return
	}
	l.running = false
	close(l.cancel)
	l.mu.Unlock()

	l.wg.Wait()
}

// Running reports whether the capture goroutine is currently active.
func (l *Loop) Running() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.running
}

func (l *Loop) run(cancel chan struct{}) {
	defer l.wg.Done()
	for {
		snapshot := l.holder.GetCaptureData()
		period := time.Duration(snapshot.Period) * time.Microsecond
		if period <= 0 {
			period = defaultPeriod
		}

		select {
		case <-cancel:
			return
		case <-time.After(period):
			if l.onTick != nil {
				l.onTick(snapshot)
			}
		}
	}
}
