//go:build cgo && blsct

package cgobinding

/*
#include "blsct_shim.h"
*/
import "C"

import "github.com/nav-io/libblsct-bindings/internal/ffi"

// =========== Ids, out points and scripts =====================

func (Library) SerializeCtxId(ctxId ffi.Ptr) ffi.Ptr   { return gptr(C.serialize_ctx_id(cptr(ctxId))) }
func (Library) DeserializeCtxId(hex ffi.Ptr) ffi.Ptr   { return gptr(C.deserialize_ctx_id(cstr(hex))) }
func (Library) SerializeScript(script ffi.Ptr) ffi.Ptr { return gptr(C.serialize_script(cptr(script))) }
func (Library) DeserializeScript(hex ffi.Ptr) ffi.Ptr  { return gptr(C.deserialize_script(cstr(hex))) }

func (Library) GenOutPoint(ctxId ffi.Ptr, n uint32) ffi.Ptr {
	return gptr(C.gen_out_point(cptr(ctxId), C.uint32_t(n)))
}

func (Library) GetOutPointN(outPoint ffi.Ptr) uint32 { return uint32(C.get_out_point_n(cptr(outPoint))) }

func (Library) SerializeOutPoint(outPoint ffi.Ptr) ffi.Ptr {
	return gptr(C.serialize_out_point(cptr(outPoint)))
}

func (Library) DeserializeOutPoint(hex ffi.Ptr) ffi.Ptr {
	return gptr(C.deserialize_out_point(cstr(hex)))
}

func (Library) SerializeVectorPredicate(vp ffi.Ptr, size int) ffi.Ptr {
	return gptr(C.serialize_vector_predicate(cptr(vp), C.size_t(size)))
}

func (Library) DeserializeVectorPredicate(hex ffi.Ptr) ffi.Ptr {
	return gptr(C.deserialize_vector_predicate(cstr(hex)))
}

func (Library) AreVectorPredicateEqual(a ffi.Ptr, aSize int, b ffi.Ptr, bSize int) bool {
	return bool(C.are_vector_predicate_equal(cptr(a), C.size_t(aSize), cptr(b), C.size_t(bSize)))
}

// =========== Builder inputs and outputs =====================

func (Library) BuildTxIn(amount, gamma uint64, spendingKey, tokenId, outPoint ffi.Ptr, isStakedCommitment, isRbf bool) ffi.Ptr {
	return gptr(C.build_tx_in(C.uint64_t(amount), C.uint64_t(gamma), cptr(spendingKey), cptr(tokenId), cptr(outPoint), C.bool(isStakedCommitment), C.bool(isRbf)))
}

func (Library) GetTxInAmount(txIn ffi.Ptr) uint64 { return uint64(C.get_tx_in_amount(cptr(txIn))) }
func (Library) GetTxInGamma(txIn ffi.Ptr) uint64  { return uint64(C.get_tx_in_gamma(cptr(txIn))) }

func (Library) GetTxInSpendingKey(txIn ffi.Ptr) ffi.Ptr {
	return vptr(C.get_tx_in_spending_key(cptr(txIn)))
}

func (Library) GetTxInTokenId(txIn ffi.Ptr) ffi.Ptr  { return vptr(C.get_tx_in_token_id(cptr(txIn))) }
func (Library) GetTxInOutPoint(txIn ffi.Ptr) ffi.Ptr { return vptr(C.get_tx_in_out_point(cptr(txIn))) }

func (Library) GetTxInStakedCommitment(txIn ffi.Ptr) bool {
	return bool(C.get_tx_in_staked_commitment(cptr(txIn)))
}

func (Library) GetTxInRbf(txIn ffi.Ptr) bool { return bool(C.get_tx_in_rbf(cptr(txIn))) }

// The tx in and tx out codecs size the object themselves.
func (Library) SerializeTxIn(txIn ffi.Ptr, _ int) ffi.Ptr { return gptr(C.serialize_tx_in(cptr(txIn))) }
func (Library) DeserializeTxIn(hex ffi.Ptr) ffi.Ptr       { return gptr(C.deserialize_tx_in(cstr(hex))) }

func (Library) BuildTxOut(destination ffi.Ptr, amount uint64, memo, tokenId ffi.Ptr, outputType ffi.TxOutputType, minStake uint64, subtractFeeFromAmount bool, blindingKey ffi.Ptr) ffi.Ptr {
	return gptr(C.build_tx_out(cptr(destination), C.uint64_t(amount), cstr(memo), cptr(tokenId),
		C.uint8_t(outputType), C.uint64_t(minStake), C.bool(subtractFeeFromAmount), cptr(blindingKey)))
}

func (Library) GetTxOutDestination(txOut ffi.Ptr) ffi.Ptr {
	return vptr(C.get_tx_out_destination(cptr(txOut)))
}

func (Library) GetTxOutAmount(txOut ffi.Ptr) uint64 { return uint64(C.get_tx_out_amount(cptr(txOut))) }
func (Library) GetTxOutMemo(txOut ffi.Ptr) ffi.Ptr  { return gptr(C.get_tx_out_memo(cptr(txOut))) }

func (Library) GetTxOutTokenId(txOut ffi.Ptr) ffi.Ptr {
	return vptr(C.get_tx_out_token_id(cptr(txOut)))
}

func (Library) GetTxOutOutputType(txOut ffi.Ptr) ffi.TxOutputType {
	return ffi.TxOutputType(C.get_tx_out_output_type(cptr(txOut)))
}

func (Library) GetTxOutMinStake(txOut ffi.Ptr) uint64 {
	return uint64(C.get_tx_out_min_stake(cptr(txOut)))
}

func (Library) GetTxOutSubtractFeeFromAmount(txOut ffi.Ptr) bool {
	return bool(C.get_tx_out_subtract_fee_from_amount(cptr(txOut)))
}

func (Library) GetTxOutBlindingKey(txOut ffi.Ptr) ffi.Ptr {
	return vptr(C.get_tx_out_blinding_key(cptr(txOut)))
}

func (Library) SerializeTxOut(txOut ffi.Ptr, _ int) ffi.Ptr { return gptr(C.serialize_tx_out(cptr(txOut))) }
func (Library) DeserializeTxOut(hex ffi.Ptr) ffi.Ptr        { return gptr(C.deserialize_tx_out(cstr(hex))) }

func (Library) CreateTxInVec() ffi.Ptr           { return vptr(C.create_tx_in_vec()) }
func (Library) AddToTxInVec(vec, txIn ffi.Ptr)   { C.add_to_tx_in_vec(cptr(vec), cptr(txIn)) }
func (Library) DeleteTxInVec(vec ffi.Ptr)        { C.delete_tx_in_vec(cptr(vec)) }
func (Library) CreateTxOutVec() ffi.Ptr          { return vptr(C.create_tx_out_vec()) }
func (Library) AddToTxOutVec(vec, txOut ffi.Ptr) { C.add_to_tx_out_vec(cptr(vec), cptr(txOut)) }
func (Library) DeleteTxOutVec(vec ffi.Ptr)       { C.delete_tx_out_vec(cptr(vec)) }

// =========== Transactions =====================

// The native ctx carries its own length, so the size arguments below are
// only used by implementations that store ctxs as flat buffers.

func (Library) BuildCtx(txIns, txOuts ffi.Ptr) ffi.Ptr {
	return gptr(C.build_ctx(cptr(txIns), cptr(txOuts)))
}

func (Library) GetCtxId(ctx ffi.Ptr, _ int) ffi.Ptr     { return gptr(C.get_ctx_id(cptr(ctx))) }
func (Library) SerializeCtx(ctx ffi.Ptr, _ int) ffi.Ptr { return gptr(C.serialize_ctx(cptr(ctx))) }
func (Library) DeserializeCtx(hex ffi.Ptr) ffi.Ptr      { return gptr(C.deserialize_ctx(cstr(hex))) }

func (Library) GetCtxIns(ctx ffi.Ptr, _ int) ffi.Ptr  { return vptr(C.get_ctx_ins(cptr(ctx))) }
func (Library) GetCtxInsSize(ins ffi.Ptr) int         { return int(C.get_ctx_ins_size(cptr(ins))) }
func (Library) GetCtxInAt(ins ffi.Ptr, i int) ffi.Ptr { return vptr(C.get_ctx_in_at(cptr(ins), C.size_t(i))) }

func (Library) GetCtxOuts(ctx ffi.Ptr, _ int) ffi.Ptr   { return vptr(C.get_ctx_outs(cptr(ctx))) }
func (Library) GetCtxOutsSize(outs ffi.Ptr) int         { return int(C.get_ctx_outs_size(cptr(outs))) }
func (Library) GetCtxOutAt(outs ffi.Ptr, i int) ffi.Ptr { return vptr(C.get_ctx_out_at(cptr(outs), C.size_t(i))) }

func (Library) GetCtxInPrevOutHash(in ffi.Ptr) ffi.Ptr   { return vptr(C.get_ctx_in_prev_out_hash(cptr(in))) }
func (Library) GetCtxInPrevOutN(in ffi.Ptr) uint32       { return uint32(C.get_ctx_in_prev_out_n(cptr(in))) }
func (Library) GetCtxInScriptSig(in ffi.Ptr) ffi.Ptr     { return vptr(C.get_ctx_in_script_sig(cptr(in))) }
func (Library) GetCtxInSequence(in ffi.Ptr) uint32       { return uint32(C.get_ctx_in_sequence(cptr(in))) }
func (Library) GetCtxInScriptWitness(in ffi.Ptr) ffi.Ptr { return vptr(C.get_ctx_in_script_witness(cptr(in))) }

func (Library) GetCtxOutValue(out ffi.Ptr) uint64         { return uint64(C.get_ctx_out_value(cptr(out))) }
func (Library) GetCtxOutScriptPubKey(out ffi.Ptr) ffi.Ptr { return vptr(C.get_ctx_out_script_pub_key(cptr(out))) }
func (Library) GetCtxOutTokenId(out ffi.Ptr) ffi.Ptr      { return vptr(C.get_ctx_out_token_id(cptr(out))) }

func (Library) GetCtxOutVectorPredicate(out ffi.Ptr) ffi.Ptr {
	return gptr(C.get_ctx_out_vector_predicate(cptr(out)))
}

func (Library) GetCtxOutSpendingKey(out ffi.Ptr) ffi.Ptr  { return vptr(C.get_ctx_out_spending_key(cptr(out))) }
func (Library) GetCtxOutEphemeralKey(out ffi.Ptr) ffi.Ptr { return vptr(C.get_ctx_out_ephemeral_key(cptr(out))) }
func (Library) GetCtxOutBlindingKey(out ffi.Ptr) ffi.Ptr  { return vptr(C.get_ctx_out_blinding_key(cptr(out))) }
func (Library) GetCtxOutRangeProof(out ffi.Ptr) ffi.Ptr   { return gptr(C.get_ctx_out_range_proof(cptr(out))) }
func (Library) GetCtxOutViewTag(out ffi.Ptr) uint16       { return uint16(C.get_ctx_out_view_tag(cptr(out))) }
