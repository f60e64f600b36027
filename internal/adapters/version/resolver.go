// Package version implements the packet-version resolver (spec
// §4.C6). The abstraction exists so future packet ids can advertise
// different versions without registry churn, but this protocol
// revision resolves every id to the same constant.
package version

import "github.com/ghaddam/armnn/internal/domain"

// Resolved is the version every packet id currently maps to.
var Resolved = domain.Version{Major: 1, Minor: 0, Patch: 0}

// Resolver implements ports.VersionResolver.
type Resolver struct{}

// NewResolver returns a resolver that answers Resolved for every id.
func NewResolver() Resolver { return Resolver{} }

// Resolve ignores packetID and returns Resolved. Left as a method
// rather than a free function so it satisfies ports.VersionResolver
// and can be swapped out if a future revision needs id-dependent
// versions.
func (Resolver) Resolve(packetID uint32) domain.Version {
	return Resolved
}
