//go:build cgo && blsct

package cgobinding

/*
#include "blsct_shim.h"
*/
import "C"

import "github.com/nav-io/libblsct-bindings/internal/ffi"

// =========== Scalars =====================

func (Library) GenRandomScalar() ffi.Ptr        { return gptr(C.gen_random_scalar()) }
func (Library) GenScalar(n uint64) ffi.Ptr      { return gptr(C.gen_scalar(C.uint64_t(n))) }
func (Library) ScalarToUint64(s ffi.Ptr) uint64 { return uint64(C.scalar_to_uint64(cptr(s))) }

func (Library) AreScalarEqual(a, b ffi.Ptr) bool {
	return cbool(C.are_scalar_equal(cptr(a), cptr(b)))
}

func (Library) SerializeScalar(s ffi.Ptr) ffi.Ptr     { return gptr(C.serialize_scalar(cptr(s))) }
func (Library) DeserializeScalar(hex ffi.Ptr) ffi.Ptr { return gptr(C.deserialize_scalar(cstr(hex))) }

// =========== Points and public keys =====================

func (Library) GenRandomPoint() ffi.Ptr           { return gptr(C.gen_random_point()) }
func (Library) GenBasePoint() ffi.Ptr             { return gptr(C.gen_base_point()) }
func (Library) PointFromScalar(s ffi.Ptr) ffi.Ptr { return vptr(C.point_from_scalar(cptr(s))) }
func (Library) IsValidPoint(p ffi.Ptr) bool       { return cbool(C.is_valid_point(cptr(p))) }

func (Library) ArePointEqual(a, b ffi.Ptr) bool {
	return cbool(C.are_point_equal(cptr(a), cptr(b)))
}

func (Library) ScalarMultiplyPoint(p, s ffi.Ptr) ffi.Ptr {
	return vptr(C.scalar_muliply_point(cptr(p), cptr(s)))
}

func (Library) SerializePoint(p ffi.Ptr) ffi.Ptr     { return gptr(C.serialize_point(cptr(p))) }
func (Library) DeserializePoint(hex ffi.Ptr) ffi.Ptr { return gptr(C.deserialize_point(cstr(hex))) }

func (Library) GenRandomPublicKey() ffi.Ptr          { return gptr(C.gen_random_public_key()) }
func (Library) ScalarToPubKey(s ffi.Ptr) ffi.Ptr     { return vptr(C.scalar_to_pub_key(cptr(s))) }
func (Library) GetPublicKeyPoint(pk ffi.Ptr) ffi.Ptr { return vptr(C.get_public_key_point(cptr(pk))) }
func (Library) PointToPublicKey(p ffi.Ptr) ffi.Ptr   { return vptr(C.point_to_public_key(cptr(p))) }

// =========== Signatures =====================

func (Library) SignMessage(privKey, msg ffi.Ptr) ffi.Ptr {
	return gptr(C.sign_message(cptr(privKey), cstr(msg)))
}

func (Library) VerifyMsgSig(pubKey, msg, sig ffi.Ptr) bool {
	return bool(C.verify_msg_sig(cptr(pubKey), cstr(msg), cptr(sig)))
}

func (Library) SerializeSignature(sig ffi.Ptr) ffi.Ptr { return gptr(C.serialize_signature(cptr(sig))) }

func (Library) DeserializeSignature(hex ffi.Ptr) ffi.Ptr {
	return gptr(C.deserialize_signature(cstr(hex)))
}
