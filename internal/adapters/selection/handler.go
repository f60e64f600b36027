// Package selection implements the periodic-counter selection handler
// (spec §4.C10): parses the inbound selection packet, installs the
// result into the capture holder, starts the capture thread if it
// isn't already running, and emits an acknowledgement.
package selection

import (
	"encoding/binary"
	"fmt"

	"github.com/ghaddam/armnn/internal/adapters/codec"
	"github.com/ghaddam/armnn/internal/adapters/holder"
	"github.com/ghaddam/armnn/internal/domain"
	"github.com/ghaddam/armnn/internal/ports"
)

// ErrMalformedPacket is returned when the payload length isn't 4+2k
// bytes. The handler rejects without touching the holder.
var ErrMalformedPacket = fmt.Errorf("armnn: malformed packet")

// PacketID is the well-known id of the periodic-counter selection
// packet (spec §6).
const PacketID = 0x40000

// Handler implements ports.CommandHandler for PacketID.
type Handler struct {
	holder  *holder.Holder
	capture ports.PeriodicCapture
	encoder *codec.Encoder
}

// New wires a selection handler to its collaborators.
func New(h *holder.Holder, capture ports.PeriodicCapture, encoder *codec.Encoder) *Handler {
	return &Handler{holder: h, capture: capture, encoder: encoder}
}

// Invoke parses packet, installs the capture parameters, starts
// capture if needed, and emits the acknowledgement.
func (h *Handler) Invoke(packet domain.Packet) error {
	data := packet.Data()
	if len(data) < 4 || (len(data)-4)%2 != 0 {
		return fmt.Errorf("%w: payload length %d is not 4+2k", ErrMalformedPacket, len(data))
	}

	period := binary.LittleEndian.Uint32(data[0:4])
	k := (len(data) - 4) / 2
	ids := make([]domain.Uid, k)
	for i := 0; i < k; i++ {
		ids[i] = domain.Uid(binary.LittleEndian.Uint16(data[4+2*i:]))
	}

	h.holder.SetCaptureData(period, ids)

	if !h.capture.Running() {
		if err := h.capture.Start(); err != nil {
			return err
		}
	}

	return h.encoder.EncodePeriodicCounterSelectionAck(period, ids)
}
