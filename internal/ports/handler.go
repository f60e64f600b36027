package ports

import "github.com/ghaddam/armnn/internal/domain"

// CommandHandler is the capability every registry entry must satisfy:
// something invocable with a borrowed packet. Concrete handlers own
// whatever counters or collaborators they need internally.
type CommandHandler interface {
	Invoke(packet domain.Packet) error
}

// VersionResolver maps an inbound packet id to the protocol version
// the service expects handlers for that id to speak.
type VersionResolver interface {
	Resolve(packetID uint32) domain.Version
}
