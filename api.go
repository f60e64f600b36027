package armnn

import (
	base "github.com/ghaddam/armnn/pkg/armnnprofiling"
)

// Type aliases so consumers can import github.com/ghaddam/armnn directly
// without reaching into pkg/armnnprofiling.
type (
	Config          = base.Config
	TransportConfig = base.TransportConfig
	BufferConfig    = base.BufferConfig
	MetricsConfig   = base.MetricsConfig

	Session        = base.Session
	SessionOption  = base.SessionOption
	StreamInOption = base.StreamInOption

	Service       = base.Service
	ServiceOption = base.ServiceOption

	Connection      = base.Connection
	Observability   = base.Observability
	PeriodicCapture = base.PeriodicCapture
	Field           = base.Field

	Packet         = base.Packet
	Version        = base.Version
	ProfilingState = base.ProfilingState
	CaptureData    = base.CaptureData
	Uid            = base.Uid

	Category   = base.Category
	Device     = base.Device
	CounterSet = base.CounterSet
	Counter    = base.Counter

	CounterParams = base.CounterParams
	Directory     = base.Directory
)

// Config helpers.
func LoadConfig(path string) (*Config, error) {
	return base.LoadConfig(path)
}

// Session builder helpers.
func Conf(path string, opts ...SessionOption) (*Session, error) {
	return base.Conf(path, opts...)
}

func ConfFromConfig(cfg *Config, opts ...SessionOption) (*Session, error) {
	return base.ConfFromConfig(cfg, opts...)
}

func WithSessionOptions(opts ...ServiceOption) SessionOption {
	return base.WithSessionOptions(opts...)
}

func StreamInConnection(conn Connection) StreamInOption {
	return base.StreamInConnection(conn)
}

func StreamInObservability(obs Observability) StreamInOption {
	return base.StreamInObservability(obs)
}

func StreamInCapture(c PeriodicCapture) StreamInOption {
	return base.StreamInCapture(c)
}

// Service construction and wire helpers.
func NewService(cfg *Config, opts ...ServiceOption) (*Service, error) {
	return base.NewService(cfg, opts...)
}

func NewPacket(header uint32, data []byte) Packet {
	return base.NewPacket(header, data)
}

func EncodeHeader(family, id, pktType, class uint32) uint32 {
	return base.EncodeHeader(family, id, pktType, class)
}
