// Package rangeproof builds, verifies and opens range proofs.
//
// A proof is a variable-size native blob; every call passes its size along.
// Verification and amount recovery work on batches that are marshaled into
// native vectors, which are released as soon as the call returns.
//
//	nonce := keys.CalcNonce(blindingPubKey, viewKey)
//	res, err := rangeproof.RecoverAmounts([]rangeproof.RecoveryRequest{
//	    {Proof: proof, Nonce: nonce},
//	})
package rangeproof
