package ports

// PeriodicCapture is the collaborator a selection handler starts once
// new capture parameters are installed. Start is idempotent: calling
// it while already running must not spawn a second capture loop.
type PeriodicCapture interface {
	Start() error
	Stop()
	Running() bool
}
