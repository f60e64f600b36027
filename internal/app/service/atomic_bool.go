package service

import "sync/atomic"

// atomicBool backs Service.enableProfiling: a plain bool guarded by an
// atomic so SetEnableProfiling can be called concurrently with Run.
type atomicBool struct {
	v atomic.Bool
}

func (b *atomicBool) store(val bool) { b.v.Store(val) }
func (b *atomicBool) load() bool     { return b.v.Load() }
