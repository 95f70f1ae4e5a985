// Package curve provides Go bindings for the BLS12-381 primitives of
// libblsct: scalars, G1 points, public keys, double public keys and BLS
// signatures.
//
// Every value owns native memory. ALWAYS call Free when you are done with a
// value, or use defer right after creation. Failing to do so will leak
// memory.
//
// # Quick start
//
//	sk, err := curve.RandomScalar()
//	if err != nil {
//	    log.Fatalf("generating key: %v", err)
//	}
//	defer sk.Free()
//
//	pk := curve.PublicKeyFromScalar(sk)
//	defer pk.Free()
//
//	sig, err := curve.Sign(sk, "navio")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer sig.Free()
//
//	ok, err := sig.Verify(pk, "navio")
//
// Scalars and points are compared through the library, which is the only
// party that knows whether two encodings denote the same element. Keys and
// signatures have canonical encodings and compare byte-wise.
package curve
