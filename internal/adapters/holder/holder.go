// Package holder implements the capture-configuration holder: a
// single mutex-guarded (period, counterIds) pair shared between the
// command-dispatch thread and the capture thread. One mutex, copy-in
// on write, copy-out on read, no partial state ever visible to a
// reader.
package holder

import (
	"sync"

	"github.com/ghaddam/armnn/internal/domain"
)

// Holder stores the most recently installed CaptureData snapshot.
type Holder struct {
	mu   sync.Mutex
	data domain.CaptureData
}

// New returns an empty holder: period 0, no counter ids selected.
func New() *Holder {
	return &Holder{}
}

// SetCaptureData replaces the stored snapshot wholesale. Concurrent
// writers serialise on the mutex; there is no partial update.
func (h *Holder) SetCaptureData(period uint32, counterIDs []domain.Uid) {
	ids := make([]domain.Uid, len(counterIDs))
	copy(ids, counterIDs)

	h.mu.Lock()
	h.data = domain.CaptureData{Period: period, CounterIDs: ids}
	h.mu.Unlock()
}

// GetCaptureData returns a value-semantic copy of the current
// snapshot. Readers never observe a torn mix of two writes.
func (h *Holder) GetCaptureData() domain.CaptureData {
	h.mu.Lock()
	snapshot := h.data.Clone()
	h.mu.Unlock()
	return snapshot
}
