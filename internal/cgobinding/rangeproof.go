//go:build cgo && blsct

package cgobinding

/*
#include <string.h>
#include "blsct_shim.h"
*/
import "C"

import "github.com/nav-io/libblsct-bindings/internal/ffi"

func (Library) CreateUint64Vec() ffi.Ptr             { return vptr(C.create_uint64_vec()) }
func (Library) AddToUint64Vec(vec ffi.Ptr, v uint64) { C.add_to_uint64_vec(cptr(vec), C.uint64_t(v)) }
func (Library) DeleteUint64Vec(vec ffi.Ptr)          { C.delete_uint64_vec(cptr(vec)) }
func (Library) CreateRangeProofVec() ffi.Ptr         { return vptr(C.create_range_proof_vec()) }

func (Library) AddToRangeProofVec(vec, proof ffi.Ptr, size int) {
	C.add_to_range_proof_vec(cptr(vec), cptr(proof), C.size_t(size))
}

func (Library) DeleteRangeProofVec(vec ffi.Ptr)     { C.delete_range_proof_vec(cptr(vec)) }
func (Library) CreateAmountRecoveryReqVec() ffi.Ptr { return vptr(C.create_amount_recovery_req_vec()) }

func (Library) AddToAmountRecoveryReqVec(vec, req ffi.Ptr) {
	C.add_to_amount_recovery_req_vec(cptr(vec), cptr(req))
}

func (Library) DeleteAmountRecoveryReqVec(vec ffi.Ptr) { C.delete_amount_recovery_req_vec(cptr(vec)) }

func (Library) BuildRangeProof(amounts, nonce, msg, tokenId ffi.Ptr) ffi.Ptr {
	return gptr(C.build_range_proof(cptr(amounts), cptr(nonce), cstr(msg), cptr(tokenId)))
}

func (Library) VerifyRangeProofs(proofs ffi.Ptr) ffi.Ptr {
	return gptr(C.verify_range_proofs(cptr(proofs)))
}

func (Library) SerializeRangeProof(proof ffi.Ptr, size int) ffi.Ptr {
	return gptr(C.serialize_range_proof(cptr(proof), C.size_t(size)))
}

// DeserializeRangeProof passes the decoded length along; libblsct needs it
// to size the buffer before parsing.
func (Library) DeserializeRangeProof(hex ffi.Ptr) ffi.Ptr {
	n := C.strlen(cstr(hex)) / 2
	return gptr(C.deserialize_range_proof(cstr(hex), n))
}

func (Library) GetRangeProofA(proof ffi.Ptr, size int) ffi.Ptr {
	return vptr(C.get_range_proof_A(cptr(proof), C.size_t(size)))
}

func (Library) GetRangeProofAWip(proof ffi.Ptr, size int) ffi.Ptr {
	return vptr(C.get_range_proof_A_wip(cptr(proof), C.size_t(size)))
}

func (Library) GetRangeProofB(proof ffi.Ptr, size int) ffi.Ptr {
	return vptr(C.get_range_proof_B(cptr(proof), C.size_t(size)))
}

func (Library) GetRangeProofRPrime(proof ffi.Ptr, size int) ffi.Ptr {
	return vptr(C.get_range_proof_r_prime(cptr(proof), C.size_t(size)))
}

func (Library) GetRangeProofSPrime(proof ffi.Ptr, size int) ffi.Ptr {
	return vptr(C.get_range_proof_s_prime(cptr(proof), C.size_t(size)))
}

func (Library) GetRangeProofDeltaPrime(proof ffi.Ptr, size int) ffi.Ptr {
	return vptr(C.get_range_proof_delta_prime(cptr(proof), C.size_t(size)))
}

func (Library) GetRangeProofAlphaHat(proof ffi.Ptr, size int) ffi.Ptr {
	return vptr(C.get_range_proof_alpha_hat(cptr(proof), C.size_t(size)))
}

func (Library) GetRangeProofTauX(proof ffi.Ptr, size int) ffi.Ptr {
	return vptr(C.get_range_proof_tau_x(cptr(proof), C.size_t(size)))
}

func (Library) GenAmountRecoveryReq(proof ffi.Ptr, size int, nonce ffi.Ptr) ffi.Ptr {
	return vptr(C.gen_amount_recovery_req(cptr(proof), C.size_t(size), cptr(nonce)))
}

func (Library) RecoverAmount(reqs ffi.Ptr) ffi.Ptr { return gptr(C.recover_amount(cptr(reqs))) }

func (Library) GetAmountRecoveryResultSize(results ffi.Ptr) int {
	return int(C.get_amount_recovery_result_size(cptr(results)))
}

func (Library) GetAmountRecoveryResultIsSucc(results ffi.Ptr, i int) bool {
	return bool(C.get_amount_recovery_result_is_succ(cptr(results), C.size_t(i)))
}

func (Library) GetAmountRecoveryResultAmount(results ffi.Ptr, i int) uint64 {
	return uint64(C.get_amount_recovery_result_amount(cptr(results), C.size_t(i)))
}

func (Library) GetAmountRecoveryResultMsg(results ffi.Ptr, i int) ffi.Ptr {
	return gptr(C.get_amount_recovery_result_msg(cptr(results), C.size_t(i)))
}
