//go:build cgo && blsct

package cgobinding

/*
#include "blsct_shim.h"
*/
import "C"

import "github.com/nav-io/libblsct-bindings/internal/ffi"

// =========== Key derivation =====================

func (Library) FromSeedToChildKey(seed ffi.Ptr) ffi.Ptr {
	return vptr(C.from_seed_to_child_key(cptr(seed)))
}

func (Library) FromChildKeyToBlindingKey(childKey ffi.Ptr) ffi.Ptr {
	return vptr(C.from_child_key_to_blinding_key(cptr(childKey)))
}

func (Library) FromChildKeyToTokenKey(childKey ffi.Ptr) ffi.Ptr {
	return vptr(C.from_child_key_to_token_key(cptr(childKey)))
}

func (Library) FromChildKeyToTxKey(childKey ffi.Ptr) ffi.Ptr {
	return vptr(C.from_child_key_to_tx_key(cptr(childKey)))
}

func (Library) FromTxKeyToViewKey(txKey ffi.Ptr) ffi.Ptr {
	return vptr(C.from_tx_key_to_view_key(cptr(txKey)))
}

func (Library) FromTxKeyToSpendingKey(txKey ffi.Ptr) ffi.Ptr {
	return vptr(C.from_tx_key_to_spending_key(cptr(txKey)))
}

func (Library) CalcPrivSpendingKey(blindingPubKey, viewKey, spendingKey ffi.Ptr, account int64, address uint64) ffi.Ptr {
	return vptr(C.calc_priv_spending_key(cptr(blindingPubKey), cptr(viewKey), cptr(spendingKey), C.int64_t(account), C.uint64_t(address)))
}

func (Library) CalcNonce(blindingPubKey, viewKey ffi.Ptr) ffi.Ptr {
	return vptr(C.calc_nonce(cptr(blindingPubKey), cptr(viewKey)))
}

func (Library) CalcViewTag(blindingPubKey, viewKey ffi.Ptr) uint64 {
	return uint64(C.calc_view_tag(cptr(blindingPubKey), cptr(viewKey)))
}

func (Library) CalcKeyId(blindingPubKey, spendingPubKey, viewKey ffi.Ptr) ffi.Ptr {
	return vptr(C.calc_key_id(cptr(blindingPubKey), cptr(spendingPubKey), cptr(viewKey)))
}

func (Library) SerializeKeyId(keyId ffi.Ptr) ffi.Ptr { return gptr(C.serialize_key_id(cptr(keyId))) }
func (Library) DeserializeKeyId(hex ffi.Ptr) ffi.Ptr { return gptr(C.deserialize_key_id(cstr(hex))) }

// =========== Addresses =====================

func (Library) GenDoublePubKey(pk1, pk2 ffi.Ptr) ffi.Ptr {
	return gptr(C.gen_double_pub_key(cptr(pk1), cptr(pk2)))
}

func (Library) GenDpkWithKeysAcctAddr(viewKey, spendingPubKey ffi.Ptr, account int64, address uint64) ffi.Ptr {
	return vptr(C.gen_dpk_with_keys_acct_addr(cptr(viewKey), cptr(spendingPubKey), C.int64_t(account), C.uint64_t(address)))
}

func (Library) SerializeDpk(dpk ffi.Ptr) ffi.Ptr   { return gptr(C.serialize_dpk(cptr(dpk))) }
func (Library) DeserializeDpk(hex ffi.Ptr) ffi.Ptr { return gptr(C.deserialize_dpk(cstr(hex))) }

func (Library) GenSubAddrId(account int64, address uint64) ffi.Ptr {
	return vptr(C.gen_sub_addr_id(C.int64_t(account), C.uint64_t(address)))
}

func (Library) GetSubAddrIdAccount(id ffi.Ptr) int64 { return int64(C.get_sub_addr_id_account(cptr(id))) }
func (Library) GetSubAddrIdAddress(id ffi.Ptr) uint64 {
	return uint64(C.get_sub_addr_id_address(cptr(id)))
}

func (Library) SerializeSubAddrId(id ffi.Ptr) ffi.Ptr { return gptr(C.serialize_sub_addr_id(cptr(id))) }

func (Library) DeserializeSubAddrId(hex ffi.Ptr) ffi.Ptr {
	return gptr(C.deserialize_sub_addr_id(cstr(hex)))
}

func (Library) DeriveSubAddress(viewKey, spendingPubKey, subAddrId ffi.Ptr) ffi.Ptr {
	return vptr(C.derive_sub_address(cptr(viewKey), cptr(spendingPubKey), cptr(subAddrId)))
}

func (Library) DpkToSubAddr(dpk ffi.Ptr) ffi.Ptr         { return gptr(C.dpk_to_sub_addr(cptr(dpk))) }
func (Library) SubAddrToDpk(subAddr ffi.Ptr) ffi.Ptr     { return vptr(C.sub_addr_to_dpk(cptr(subAddr))) }
func (Library) SerializeSubAddr(subAddr ffi.Ptr) ffi.Ptr { return gptr(C.serialize_sub_addr(cptr(subAddr))) }
func (Library) DeserializeSubAddr(hex ffi.Ptr) ffi.Ptr   { return gptr(C.deserialize_sub_addr(cstr(hex))) }

func (Library) EncodeAddress(dpk ffi.Ptr, encoding ffi.AddressEncoding) ffi.Ptr {
	return gptr(C.encode_address(cptr(dpk), C.uint8_t(encoding)))
}

func (Library) DecodeAddress(addr ffi.Ptr) ffi.Ptr { return gptr(C.decode_address(cstr(addr))) }

// =========== Token ids =====================

func (Library) GenDefaultTokenId() ffi.Ptr { return gptr(C.gen_default_token_id()) }

func (Library) GenTokenId(token uint64) ffi.Ptr { return gptr(C.gen_token_id(C.uint64_t(token))) }

func (Library) GenTokenIdWithTokenAndSubid(token, subid uint64) ffi.Ptr {
	return gptr(C.gen_token_id_with_token_and_subid(C.uint64_t(token), C.uint64_t(subid)))
}

func (Library) GetTokenIdToken(tokenId ffi.Ptr) uint64 { return uint64(C.get_token_id_token(cptr(tokenId))) }
func (Library) GetTokenIdSubid(tokenId ffi.Ptr) uint64 { return uint64(C.get_token_id_subid(cptr(tokenId))) }

func (Library) SerializeTokenId(tokenId ffi.Ptr) ffi.Ptr {
	return gptr(C.serialize_token_id(cptr(tokenId)))
}

func (Library) DeserializeTokenId(hex ffi.Ptr) ffi.Ptr {
	return gptr(C.deserialize_token_id(cstr(hex)))
}
