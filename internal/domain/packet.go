package domain

import "errors"

// ErrInvalidPacket is returned by NewPacketWithLength when the declared
// length and the presence of payload bytes disagree.
var ErrInvalidPacket = errors.New("armnn: invalid packet: length/data mismatch")

// Packet header bit layout. Family and id are common to every packet;
// type and class are only meaningful for certain families (see
// Packet.PacketType/PacketClass) but always live at the same bit
// positions so a generic decoder never needs to branch on family.
const (
	headerFamilyShift = 26
	headerFamilyMask  = 0x3F

	headerIDShift = 16
	headerIDMask  = 0x3FF

	headerTypeShift = 8
	headerTypeMask  = 0x7

	headerClassMask = 0x7
)

// Packet is an immutable profiling wire packet: a 32-bit header word
// plus an owned payload. Packets are constructed once and never
// mutated; handlers that need to "modify" a packet build a new one.
type Packet struct {
	header uint32
	data   []byte
}

// NewPacket builds a packet from an already-encoded header word. The
// payload is copied so the caller's buffer can be reused immediately.
// Length is always derived from data, so this constructor can never
// observe the length/data mismatch NewPacketWithLength checks for.
func NewPacket(header uint32, data []byte) Packet {
	cp := make([]byte, len(data))
	copy(cp, data)
	return Packet{header: header, data: cp}
}

// NewPacketWithLength builds a packet from a header, an explicit
// declared length, and payload bytes, enforcing the invariant that
// length == 0 iff data is empty. A caller asserting a non-zero length
// against an empty payload (or vice versa) gets ErrInvalidPacket and no
// packet.
func NewPacketWithLength(header uint32, length uint32, data []byte) (Packet, error) {
	if (length == 0) != (len(data) == 0) {
		return Packet{}, ErrInvalidPacket
	}
	cp := make([]byte, len(data))
	copy(cp, data)
	return Packet{header: header, data: cp}, nil
}

// EncodeHeader packs family/id/type/class into a header word using the
// layout decoded by Family/ID/PacketType/PacketClass below.
func EncodeHeader(family, id, pktType, class uint32) uint32 {
	return (family&headerFamilyMask)<<headerFamilyShift |
		(id&headerIDMask)<<headerIDShift |
		(pktType&headerTypeMask)<<headerTypeShift |
		(class & headerClassMask)
}

// Header returns the raw header word.
func (p Packet) Header() uint32 { return p.header }

// Family returns the packet family (bits 31:26).
func (p Packet) Family() uint32 { return (p.header >> headerFamilyShift) & headerFamilyMask }

// ID returns the packet id within its family (bits 25:16).
func (p Packet) ID() uint32 { return (p.header >> headerIDShift) & headerIDMask }

// PacketType returns bits 10:8, meaningful only for families that
// define a sub-type (timeline and non-control-family packets).
func (p Packet) PacketType() uint32 { return (p.header >> headerTypeShift) & headerTypeMask }

// PacketClass returns bits 2:0, meaningful only alongside PacketType.
func (p Packet) PacketClass() uint32 { return p.header & headerClassMask }

// Data returns the packet payload. Callers must not mutate the
// returned slice; Packet is meant to be treated as immutable.
func (p Packet) Data() []byte { return p.data }

// Length is the payload length in bytes.
func (p Packet) Length() int { return len(p.data) }
