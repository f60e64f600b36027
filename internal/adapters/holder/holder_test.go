package holder

import (
	"sync"
	"testing"

	"github.com/ghaddam/armnn/internal/domain"
)

func TestGetCaptureDataReturnsCopy(t *testing.T) {
	h := New()
	h.SetCaptureData(10, []domain.Uid{1, 2, 3})

	snap := h.GetCaptureData()
	snap.CounterIDs[0] = 999

	fresh := h.GetCaptureData()
	if fresh.CounterIDs[0] != 1 {
		t.Fatalf("mutating a returned snapshot must not affect the holder, got %d", fresh.CounterIDs[0])
	}
	if fresh.Period != 10 {
		t.Fatalf("expected period 10, got %d", fresh.Period)
	}
}

func TestConcurrentWritersNeverProduceTornSnapshot(t *testing.T) {
	h := New()
	var wg sync.WaitGroup
	writers := [][]domain.Uid{
		{1, 1, 1},
		{2, 2, 2},
		{3, 3, 3},
	}
	for i, ids := range writers {
		wg.Add(1)
		go func(period uint32, ids []domain.Uid) {
			defer wg.Done()
			for n := 0; n < 100; n++ {
				h.SetCaptureData(period, ids)
			}
		}(uint32(i+1), ids)
	}

	done := make(chan struct{})
	go func() {
		for {
			select {
			case <-done:
				return
			default:
				snap := h.GetCaptureData()
				for _, id := range snap.CounterIDs {
					if uint32(id) != snap.Period {
						t.Errorf("torn snapshot observed: period=%d ids=%v", snap.Period, snap.CounterIDs)
						return
					}
				}
			}
		}
	}()

	wg.Wait()
	close(done)
}
