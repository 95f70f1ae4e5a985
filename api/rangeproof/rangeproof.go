package rangeproof

import (
	"github.com/nav-io/libblsct-bindings/api/blsct"
	"github.com/nav-io/libblsct-bindings/api/curve"
	"github.com/nav-io/libblsct-bindings/api/token"
	"github.com/nav-io/libblsct-bindings/internal/ffi"
)

type ProofKind struct{}

func (ProofKind) Name() string { return "range_proof" }
func (ProofKind) Size() int    { return 0 }

func (ProofKind) Serialize(lib ffi.Library, p ffi.Ptr, size int) ffi.Ptr {
	return lib.SerializeRangeProof(p, size)
}

func (ProofKind) Deserialize(lib ffi.Library, hex ffi.Ptr) ffi.Ptr {
	return lib.DeserializeRangeProof(hex)
}

// RangeProof proves that committed amounts lie in range. Its size varies
// with the number of amounts and the message length.
type RangeProof struct {
	blsct.Value[ProofKind]
}

func FromHandle(h *blsct.Handle[ProofKind]) *RangeProof {
	return &RangeProof{Value: blsct.Wrap(h)}
}

type uint64VecKind struct{ blsct.NoCodec }

func (uint64VecKind) Name() string { return "uint64_vec" }
func (uint64VecKind) Size() int    { return 0 }

type proofVecKind struct{ blsct.NoCodec }

func (proofVecKind) Name() string { return "range_proof_vec" }
func (proofVecKind) Size() int    { return 0 }

// Build proves amounts under nonce. msg is sealed into the proof and
// recovered together with the first amount.
func Build(amounts []uint64, nonce *curve.Point, msg string, tokenId *token.Id) (*RangeProof, error) {
	lib := nonce.Lib()
	vec := blsct.FromRawSized[uint64VecKind](lib, lib.CreateUint64Vec(), 0, ffi.Library.DeleteUint64Vec)
	defer vec.Free()
	for _, a := range amounts {
		lib.AddToUint64Vec(vec.Ptr(), a)
	}

	cs, err := blsct.CString(lib, "build_range_proof", msg)
	if err != nil {
		return nil, err
	}
	defer lib.Free(cs)

	h, err := blsct.FromEnvelope[ProofKind](lib, lib.BuildRangeProof(vec.Ptr(), nonce.Ptr(), cs, tokenId.Ptr()))
	if err != nil {
		return nil, err
	}
	return FromHandle(h), nil
}

func FromHex(s string) (*RangeProof, error) {
	lib, err := blsct.Lib()
	if err != nil {
		return nil, err
	}
	h, err := blsct.Deserialize[ProofKind](lib, s)
	if err != nil {
		return nil, err
	}
	return FromHandle(h), nil
}

func (rp *RangeProof) point(fn func(lib ffi.Library, p ffi.Ptr, size int) ffi.Ptr) *curve.Point {
	lib := rp.Lib()
	return curve.PointFromHandle(blsct.FromRawStatic[curve.PointKind](lib, fn(lib, rp.Ptr(), rp.Size())))
}

func (rp *RangeProof) scalar(fn func(lib ffi.Library, p ffi.Ptr, size int) ffi.Ptr) *curve.Scalar {
	lib := rp.Lib()
	return curve.ScalarFromHandle(blsct.FromRawStatic[curve.ScalarKind](lib, fn(lib, rp.Ptr(), rp.Size())))
}

func (rp *RangeProof) A() *curve.Point    { return rp.point(ffi.Library.GetRangeProofA) }
func (rp *RangeProof) AWip() *curve.Point { return rp.point(ffi.Library.GetRangeProofAWip) }
func (rp *RangeProof) B() *curve.Point    { return rp.point(ffi.Library.GetRangeProofB) }

func (rp *RangeProof) RPrime() *curve.Scalar     { return rp.scalar(ffi.Library.GetRangeProofRPrime) }
func (rp *RangeProof) SPrime() *curve.Scalar     { return rp.scalar(ffi.Library.GetRangeProofSPrime) }
func (rp *RangeProof) DeltaPrime() *curve.Scalar { return rp.scalar(ffi.Library.GetRangeProofDeltaPrime) }
func (rp *RangeProof) AlphaHat() *curve.Scalar   { return rp.scalar(ffi.Library.GetRangeProofAlphaHat) }
func (rp *RangeProof) TauX() *curve.Scalar       { return rp.scalar(ffi.Library.GetRangeProofTauX) }

func (rp *RangeProof) Equal(other *RangeProof) bool {
	if rp == nil || other == nil {
		return false
	}
	return rp.BytesEqual(other.Value)
}

func (rp *RangeProof) Clone() (*RangeProof, error) {
	h, err := rp.CloneHandle()
	if err != nil {
		return nil, err
	}
	return FromHandle(h), nil
}
