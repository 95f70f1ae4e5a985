package tx

import (
	"github.com/nav-io/libblsct-bindings/api/blsct"
	"github.com/nav-io/libblsct-bindings/api/curve"
	"github.com/nav-io/libblsct-bindings/api/rangeproof"
	"github.com/nav-io/libblsct-bindings/api/token"
	"github.com/nav-io/libblsct-bindings/internal/ffi"
)

type CTxKind struct{}

func (CTxKind) Name() string { return "ctx" }
func (CTxKind) Size() int    { return 0 }

func (CTxKind) Serialize(lib ffi.Library, p ffi.Ptr, size int) ffi.Ptr {
	return lib.SerializeCtx(p, size)
}

func (CTxKind) Deserialize(lib ffi.Library, hex ffi.Ptr) ffi.Ptr {
	return lib.DeserializeCtx(hex)
}

// CTx is a built, signed confidential transaction.
//
// Ins and Outs return views into the native object. A view is valid only
// while the CTx it came from is alive; using one after Free panics.
type CTx struct {
	blsct.Value[CTxKind]
}

// Build balances ins against outs, adds change and fee outputs and signs
// the result. An amount error reports the offending index through
// *blsct.DomainFailure.
func Build(ins []*TxIn, outs []*TxOut) (*CTx, error) {
	lib, err := blsct.Lib()
	if err != nil {
		return nil, err
	}
	inVec := newTxInVec(lib, ins)
	defer inVec.Free()
	outVec := newTxOutVec(lib, outs)
	defer outVec.Free()

	rv, err := blsct.TakeCTxEnvelope(lib, "build_ctx", lib.BuildCtx(inVec.Ptr(), outVec.Ptr()))
	if err != nil {
		return nil, err
	}
	return &CTx{Value: blsct.Wrap(blsct.FromRawSized[CTxKind](lib, rv.Value, rv.Size, nil))}, nil
}

func CTxFromHex(s string) (*CTx, error) {
	h, err := fromHex[CTxKind](s)
	if err != nil {
		return nil, err
	}
	return &CTx{Value: blsct.Wrap(h)}, nil
}

func (c *CTx) Equal(other *CTx) bool {
	if c == nil || other == nil {
		return false
	}
	return c.BytesEqual(other.Value)
}

func (c *CTx) Clone() (*CTx, error) {
	h, err := c.CloneHandle()
	if err != nil {
		return nil, err
	}
	return &CTx{Value: blsct.Wrap(h)}, nil
}

func (c *CTx) Id() (*CTxId, error) {
	lib := c.Lib()
	s, err := blsct.GoString(lib, "ctx_id", lib.GetCtxId(c.Ptr(), c.Size()))
	if err != nil {
		return nil, err
	}
	return CTxIdFromHex(s)
}

func (c *CTx) Ins() *CTxIns {
	return &CTxIns{ctx: c, ptr: c.Lib().GetCtxIns(c.Ptr(), c.Size())}
}

func (c *CTx) Outs() *CTxOuts {
	return &CTxOuts{ctx: c, ptr: c.Lib().GetCtxOuts(c.Ptr(), c.Size())}
}

// view is a pointer borrowed from a CTx.
type view struct {
	ctx *CTx
	ptr ffi.Ptr
}

func (v view) at(op string) (ffi.Library, ffi.Ptr) {
	if v.ctx.Released() {
		blsct.Violate(op, "view used after its transaction was freed")
	}
	return v.ctx.Lib(), v.ptr
}

type CTxIns view

func (ins *CTxIns) Len() int {
	lib, p := view(*ins).at("ctx_ins")
	return lib.GetCtxInsSize(p)
}

func (ins *CTxIns) At(i int) (*CTxIn, error) {
	lib, p := view(*ins).at("ctx_ins")
	if n := lib.GetCtxInsSize(p); i < 0 || i >= n {
		return nil, blsct.OutOfRange("ctx_ins", i, n)
	}
	return &CTxIn{ctx: ins.ctx, ptr: lib.GetCtxInAt(p, i)}, nil
}

type CTxOuts view

func (outs *CTxOuts) Len() int {
	lib, p := view(*outs).at("ctx_outs")
	return lib.GetCtxOutsSize(p)
}

func (outs *CTxOuts) At(i int) (*CTxOut, error) {
	lib, p := view(*outs).at("ctx_outs")
	if n := lib.GetCtxOutsSize(p); i < 0 || i >= n {
		return nil, blsct.OutOfRange("ctx_outs", i, n)
	}
	return &CTxOut{ctx: outs.ctx, ptr: lib.GetCtxOutAt(p, i)}, nil
}

// CTxIn is a borrowed view of one transaction input. Its accessors return
// owned copies.
type CTxIn view

func (in *CTxIn) at() (ffi.Library, ffi.Ptr) { return view(*in).at("ctx_in") }

func (in *CTxIn) PrevOutHash() *CTxId {
	lib, p := in.at()
	return &CTxId{Value: blsct.Wrap(blsct.FromRawStatic[CTxIdKind](lib, lib.GetCtxInPrevOutHash(p)))}
}

func (in *CTxIn) PrevOutN() uint32 {
	lib, p := in.at()
	return lib.GetCtxInPrevOutN(p)
}

func (in *CTxIn) ScriptSig() *Script {
	lib, p := in.at()
	return &Script{Value: blsct.Wrap(blsct.FromRawStatic[ScriptKind](lib, lib.GetCtxInScriptSig(p)))}
}

func (in *CTxIn) Sequence() uint32 {
	lib, p := in.at()
	return lib.GetCtxInSequence(p)
}

func (in *CTxIn) ScriptWitness() *Script {
	lib, p := in.at()
	return &Script{Value: blsct.Wrap(blsct.FromRawStatic[ScriptKind](lib, lib.GetCtxInScriptWitness(p)))}
}

// CTxOut is a borrowed view of one transaction output. Outputs without
// confidential data, such as the fee output, report identity keys, a zero
// view tag and no range proof.
type CTxOut view

func (out *CTxOut) at() (ffi.Library, ffi.Ptr) { return view(*out).at("ctx_out") }

func (out *CTxOut) Value() uint64 {
	lib, p := out.at()
	return lib.GetCtxOutValue(p)
}

func (out *CTxOut) ScriptPubKey() *Script {
	lib, p := out.at()
	return &Script{Value: blsct.Wrap(blsct.FromRawStatic[ScriptKind](lib, lib.GetCtxOutScriptPubKey(p)))}
}

func (out *CTxOut) TokenId() *token.Id {
	lib, p := out.at()
	return token.IdFromHandle(blsct.FromRawStatic[token.IdKind](lib, lib.GetCtxOutTokenId(p)))
}

func (out *CTxOut) VectorPredicate() (*VectorPredicate, error) {
	lib, p := out.at()
	h, err := blsct.FromEnvelope[VectorPredicateKind](lib, lib.GetCtxOutVectorPredicate(p))
	if err != nil {
		return nil, err
	}
	return &VectorPredicate{Value: blsct.Wrap(h)}, nil
}

func (out *CTxOut) key(fn func(ffi.Library, ffi.Ptr) ffi.Ptr) *curve.Point {
	lib, p := out.at()
	return curve.PointFromHandle(blsct.FromRawStatic[curve.PointKind](lib, fn(lib, p)))
}

func (out *CTxOut) SpendingKey() *curve.Point  { return out.key(ffi.Library.GetCtxOutSpendingKey) }
func (out *CTxOut) EphemeralKey() *curve.Point { return out.key(ffi.Library.GetCtxOutEphemeralKey) }
func (out *CTxOut) BlindingKey() *curve.Point  { return out.key(ffi.Library.GetCtxOutBlindingKey) }

func (out *CTxOut) RangeProof() (*rangeproof.RangeProof, error) {
	lib, p := out.at()
	h, err := blsct.FromEnvelope[rangeproof.ProofKind](lib, lib.GetCtxOutRangeProof(p))
	if err != nil {
		return nil, err
	}
	return rangeproof.FromHandle(h), nil
}

func (out *CTxOut) ViewTag() uint16 {
	lib, p := out.at()
	return lib.GetCtxOutViewTag(p)
}
