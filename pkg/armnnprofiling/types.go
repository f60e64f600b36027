package armnnprofiling

import (
	"github.com/ghaddam/armnn/internal/adapters/directory"
	"github.com/ghaddam/armnn/internal/app/config"
	"github.com/ghaddam/armnn/internal/app/service"
	"github.com/ghaddam/armnn/internal/domain"
	"github.com/ghaddam/armnn/internal/ports"
)

// Type aliases so consumers can build a session without reaching into
// internal packages.
type (
	Config          = config.Config
	TransportConfig = config.TransportConfig
	BufferConfig    = config.BufferConfig
	MetricsConfig   = config.MetricsConfig

	Service       = service.Service
	ServiceOption = service.Option

	Connection      = ports.Connection
	Observability   = ports.Observability
	PeriodicCapture = ports.PeriodicCapture
	Field           = ports.Field

	Packet         = domain.Packet
	Version        = domain.Version
	ProfilingState = domain.ProfilingState
	CaptureData    = domain.CaptureData
	Uid            = domain.Uid

	Category   = domain.Category
	Device     = domain.Device
	CounterSet = domain.CounterSet
	Counter    = domain.Counter

	CounterParams = directory.CounterParams
	Directory     = directory.Directory
)

// Profiling session states, re-exported for callers that want to
// branch on Service.CurrentState() without importing internal/domain.
const (
	StateUninitialised = domain.StateUninitialised
	StateNotConnected  = domain.StateNotConnected
	StateWaitingForAck = domain.StateWaitingForAck
	StateActive        = domain.StateActive
)

// Counter schema enums, re-exported for callers building
// CounterParams values.
const (
	CounterClassDefault        = domain.CounterClassDefault
	CounterClassMultiple       = domain.CounterClassMultiple
	CounterInterpolationStep   = domain.CounterInterpolationStep
	CounterInterpolationLinear = domain.CounterInterpolationLinear
)

// LoadConfig reads, defaults and validates a Config from path.
func LoadConfig(path string) (*Config, error) {
	return config.Load(path)
}

// NewService builds a Service directly from an in-memory Config,
// bypassing the Session builder for callers that already hold one.
func NewService(cfg *Config, opts ...ServiceOption) (*Service, error) {
	return service.New(cfg, opts...)
}

// NewPacket builds a Packet from an already-encoded header word.
func NewPacket(header uint32, data []byte) Packet {
	return domain.NewPacket(header, data)
}

// EncodeHeader packs family/id/type/class into a header word.
func EncodeHeader(family, id, pktType, class uint32) uint32 {
	return domain.EncodeHeader(family, id, pktType, class)
}
