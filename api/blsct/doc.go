// Package blsct is the ownership and serialization core of the libblsct
// bindings.
//
// Every object libblsct returns lives in native memory. This package wraps
// such objects in a Handle that owns the allocation and releases it exactly
// once, converts result envelopes into Go errors and moves values across the
// boundary as hex strings.
//
// Handles are released explicitly. ALWAYS call Free when you are done with a
// value, or use defer right after creating it. There are no finalizers.
//
// # Quick start
//
//	if err := blsct.SetChain(blsct.Testnet); err != nil {
//	    log.Fatalf("selecting chain: %v", err)
//	}
//
//	s, err := curve.RandomScalar()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer s.Free()
//
//	hex, _ := s.Hex()
//	back, err := curve.ScalarFromHex(hex)
//
// # Errors
//
// A null envelope is an *AllocationFailure, a non-zero status is a
// *DomainFailure carrying the status (and, for the transaction builder, the
// offending index) and text that cannot cross the boundary is an
// *EncodingFailure. All three match their sentinel with errors.Is.
// Misusing a handle, for example reading it after Free, panics with a
// *ContractViolation.
//
// # Library selection
//
// Built with cgo and the blsct tag, the package talks to the native
// libblsct. Otherwise it uses softlib, an in-process implementation of the
// same surface. Use switches the library at run time.
package blsct
