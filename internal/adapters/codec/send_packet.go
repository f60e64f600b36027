// Package codec implements the send packet encoder: it serialises
// outbound packets into a wirebuf.Buffer using a fixed header +
// length-prefixed body encoding, in the little-endian byte order the
// wire protocol mandates. The reserve/write/commit-or-release
// discipline frames a fixed header ahead of a variable body inside one
// buffer reservation, releasing the reservation on any failure.
package codec

import (
	"encoding/binary"

	"github.com/ghaddam/armnn/internal/adapters/wirebuf"
	"github.com/ghaddam/armnn/internal/domain"
)

// headerLen is the on-wire size of the header word plus the length
// word that precedes every packet body.
const headerLen = 8

// SelectionAckFamily and SelectionAckID identify the outbound
// acknowledgement packet emitted by the periodic-counter selection
// handler.
const (
	SelectionAckFamily = 0
	SelectionAckID     = 4
)

// Encoder writes framed packets into a bounded buffer.
type Encoder struct {
	buf *wirebuf.Buffer
}

// New returns an encoder writing into buf.
func New(buf *wirebuf.Buffer) *Encoder {
	return &Encoder{buf: buf}
}

// EncodePacket reserves space for header+length+body, writes them,
// and commits. On any failure the reservation is released before the
// error is returned, so the buffer is never left permanently reserved.
func (e *Encoder) EncodePacket(header uint32, body []byte) error {
	total := headerLen + len(body)
	region, h, err := e.buf.Reserve(total)
	if err != nil {
		return err
	}

	binary.LittleEndian.PutUint32(region[0:4], header)
	binary.LittleEndian.PutUint32(region[4:8], uint32(len(body)))
	copy(region[8:], body)

	if err := e.buf.Commit(h, total); err != nil {
		_ = e.buf.Release(h)
		return err
	}
	return nil
}

// EncodePeriodicCounterSelectionAck emits the selection
// acknowledgement packet: header (family 0, id 4), a length word, then
// the installed period and counter-id list, all little-endian.
func (e *Encoder) EncodePeriodicCounterSelectionAck(period uint32, counterIDs []domain.Uid) error {
	body := make([]byte, 4+2*len(counterIDs))
	binary.LittleEndian.PutUint32(body[0:4], period)
	for i, id := range counterIDs {
		binary.LittleEndian.PutUint16(body[4+2*i:], uint16(id))
	}

	header := domain.EncodeHeader(SelectionAckFamily, SelectionAckID, 0, 0)
	return e.EncodePacket(header, body)
}

// DecodeAckHeader is a test/inspection helper that splits a raw
// framed packet (as produced by EncodePacket) back into its header
// word, declared body length, and body bytes.
func DecodeAckHeader(raw []byte) (header uint32, length uint32, body []byte) {
	header = binary.LittleEndian.Uint32(raw[0:4])
	length = binary.LittleEndian.Uint32(raw[4:8])
	body = raw[8 : 8+length]
	return
}
