// Package nocopy provides a marker that makes go vet's copylocks check
// report structural copies of the structs embedding it.
//
package nocopy

// NoCopy must be embedded by value, never by pointer. It has no state.
//
type NoCopy struct{}

// Lock is a no-op used by go vet.
func (*NoCopy) Lock() {}

// Unlock is a no-op used by go vet.
func (*NoCopy) Unlock() {}
