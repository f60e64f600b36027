package selection

import (
	"encoding/binary"
	"errors"
	"testing"

	"github.com/ghaddam/armnn/internal/adapters/codec"
	"github.com/ghaddam/armnn/internal/adapters/holder"
	"github.com/ghaddam/armnn/internal/adapters/wirebuf"
	"github.com/ghaddam/armnn/internal/domain"
)

type stubCapture struct {
	running    bool
	startCalls int
}

func (s *stubCapture) Start() error { s.startCalls++; s.running = true; return nil }
func (s *stubCapture) Stop()        { s.running = false }
func (s *stubCapture) Running() bool { return s.running }

func selectionPayload(period uint32, ids []uint16) []byte {
	body := make([]byte, 4+2*len(ids))
	binary.LittleEndian.PutUint32(body[0:4], period)
	for i, id := range ids {
		binary.LittleEndian.PutUint16(body[4+2*i:], id)
	}
	return body
}

func TestSelectionHandlerWithPeriodAndCounters(t *testing.T) {
	h := holder.New()
	cap := &stubCapture{}
	buf := wirebuf.New(64)
	enc := codec.New(buf)
	handler := New(h, cap, enc)

	packet := domain.NewPacket(0, selectionPayload(10, []uint16{4000, 5000}))
	if err := handler.Invoke(packet); err != nil {
		t.Fatalf("invoke: %v", err)
	}

	snap := h.GetCaptureData()
	if snap.Period != 10 {
		t.Fatalf("expected period 10, got %d", snap.Period)
	}
	if len(snap.CounterIDs) != 2 || snap.CounterIDs[0] != 4000 || snap.CounterIDs[1] != 5000 {
		t.Fatalf("expected ids [4000 5000], got %v", snap.CounterIDs)
	}
	if cap.startCalls != 1 {
		t.Fatalf("expected capture started once, got %d calls", cap.startCalls)
	}

	raw, _ := buf.Read()
	header, length, body := codec.DecodeAckHeader(raw)
	p := domain.NewPacket(header, nil)
	if p.Family() != codec.SelectionAckFamily || p.ID() != codec.SelectionAckID {
		t.Fatalf("unexpected ack header family=%d id=%d", p.Family(), p.ID())
	}
	if length != 8 {
		t.Fatalf("expected ack length 8, got %d", length)
	}
	if binary.LittleEndian.Uint32(body[0:4]) != 10 {
		t.Fatalf("expected ack period 10")
	}
}

func TestSelectionHandlerPeriodOnly(t *testing.T) {
	h := holder.New()
	cap := &stubCapture{}
	buf := wirebuf.New(32)
	enc := codec.New(buf)
	handler := New(h, cap, enc)

	packet := domain.NewPacket(0, selectionPayload(11, nil))
	if err := handler.Invoke(packet); err != nil {
		t.Fatalf("invoke: %v", err)
	}

	snap := h.GetCaptureData()
	if snap.Period != 11 || len(snap.CounterIDs) != 0 {
		t.Fatalf("expected period 11 with no ids, got %+v", snap)
	}

	raw, n := buf.Read()
	if n != 12 {
		t.Fatalf("expected 12 framed bytes (8 header + 4 body), got %d", n)
	}
	_, length, _ := codec.DecodeAckHeader(raw)
	if length != 4 {
		t.Fatalf("expected ack length 4, got %d", length)
	}
}

func TestSelectionHandlerDoesNotRestartRunningCapture(t *testing.T) {
	h := holder.New()
	cap := &stubCapture{running: true}
	buf := wirebuf.New(64)
	enc := codec.New(buf)
	handler := New(h, cap, enc)

	if err := handler.Invoke(domain.NewPacket(0, selectionPayload(1, nil))); err != nil {
		t.Fatalf("invoke: %v", err)
	}
	if cap.startCalls != 0 {
		t.Fatalf("expected Start not called when already running, got %d calls", cap.startCalls)
	}
}

func TestSelectionHandlerRejectsMalformedPayload(t *testing.T) {
	h := holder.New()
	cap := &stubCapture{}
	buf := wirebuf.New(64)
	enc := codec.New(buf)
	handler := New(h, cap, enc)

	before := h.GetCaptureData()
	if err := handler.Invoke(domain.NewPacket(0, []byte{1, 2, 3})); !errors.Is(err, ErrMalformedPacket) {
		t.Fatalf("expected ErrMalformedPacket, got %v", err)
	}
	after := h.GetCaptureData()
	if before.Period != after.Period || len(after.CounterIDs) != len(before.CounterIDs) {
		t.Fatalf("expected holder unchanged after malformed payload")
	}
}
