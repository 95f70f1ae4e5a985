// Package cgobinding binds the native libblsct through cgo.
//
// It is compiled only with cgo enabled and the blsct build tag, and expects
// the library and its dependencies to be installed where the linker flags
// in cmem.go point:
//
//	go build -tags blsct ./...
package cgobinding
