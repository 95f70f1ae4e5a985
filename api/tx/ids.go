package tx

import (
	"github.com/nav-io/libblsct-bindings/api/blsct"
	"github.com/nav-io/libblsct-bindings/internal/ffi"
)

type CTxIdKind struct{}

func (CTxIdKind) Name() string { return "ctx_id" }
func (CTxIdKind) Size() int    { return ffi.CTxIdSize }

func (CTxIdKind) Serialize(lib ffi.Library, p ffi.Ptr, _ int) ffi.Ptr {
	return lib.SerializeCtxId(p)
}

func (CTxIdKind) Deserialize(lib ffi.Library, hex ffi.Ptr) ffi.Ptr {
	return lib.DeserializeCtxId(hex)
}

// CTxId is the double SHA-256 of a transaction's unsigned serialization.
type CTxId struct {
	blsct.Value[CTxIdKind]
}

func RandomCTxId() (*CTxId, error) {
	h, err := blsct.Random[CTxIdKind]()
	if err != nil {
		return nil, err
	}
	return &CTxId{Value: blsct.Wrap(h)}, nil
}

func CTxIdFromHex(s string) (*CTxId, error) {
	h, err := fromHex[CTxIdKind](s)
	if err != nil {
		return nil, err
	}
	return &CTxId{Value: blsct.Wrap(h)}, nil
}

func (id *CTxId) Equal(other *CTxId) bool {
	if id == nil || other == nil {
		return false
	}
	return id.BytesEqual(other.Value)
}

type OutPointKind struct{}

func (OutPointKind) Name() string { return "out_point" }
func (OutPointKind) Size() int    { return ffi.OutPointSize }

func (OutPointKind) Serialize(lib ffi.Library, p ffi.Ptr, _ int) ffi.Ptr {
	return lib.SerializeOutPoint(p)
}

func (OutPointKind) Deserialize(lib ffi.Library, hex ffi.Ptr) ffi.Ptr {
	return lib.DeserializeOutPoint(hex)
}

// OutPoint names output N of the transaction with a given id.
type OutPoint struct {
	blsct.Value[OutPointKind]
}

func NewOutPoint(ctxId *CTxId, n uint32) (*OutPoint, error) {
	lib := ctxId.Lib()
	h, err := blsct.FromEnvelope[OutPointKind](lib, lib.GenOutPoint(ctxId.Ptr(), n))
	if err != nil {
		return nil, err
	}
	return &OutPoint{Value: blsct.Wrap(h)}, nil
}

func OutPointFromHex(s string) (*OutPoint, error) {
	h, err := fromHex[OutPointKind](s)
	if err != nil {
		return nil, err
	}
	return &OutPoint{Value: blsct.Wrap(h)}, nil
}

func (op *OutPoint) N() uint32 { return op.Lib().GetOutPointN(op.Ptr()) }

func (op *OutPoint) Equal(other *OutPoint) bool {
	if op == nil || other == nil {
		return false
	}
	return op.BytesEqual(other.Value)
}

type ScriptKind struct{}

func (ScriptKind) Name() string { return "script" }
func (ScriptKind) Size() int    { return ffi.ScriptSize }

func (ScriptKind) Serialize(lib ffi.Library, p ffi.Ptr, _ int) ffi.Ptr {
	return lib.SerializeScript(p)
}

func (ScriptKind) Deserialize(lib ffi.Library, hex ffi.Ptr) ffi.Ptr {
	return lib.DeserializeScript(hex)
}

type Script struct {
	blsct.Value[ScriptKind]
}

func RandomScript() (*Script, error) {
	h, err := blsct.Random[ScriptKind]()
	if err != nil {
		return nil, err
	}
	return &Script{Value: blsct.Wrap(h)}, nil
}

func ScriptFromHex(s string) (*Script, error) {
	h, err := fromHex[ScriptKind](s)
	if err != nil {
		return nil, err
	}
	return &Script{Value: blsct.Wrap(h)}, nil
}

func (s *Script) Equal(other *Script) bool {
	if s == nil || other == nil {
		return false
	}
	return s.BytesEqual(other.Value)
}

type VectorPredicateKind struct{}

func (VectorPredicateKind) Name() string { return "vector_predicate" }
func (VectorPredicateKind) Size() int    { return 0 }

func (VectorPredicateKind) Serialize(lib ffi.Library, p ffi.Ptr, size int) ffi.Ptr {
	return lib.SerializeVectorPredicate(p, size)
}

func (VectorPredicateKind) Deserialize(lib ffi.Library, hex ffi.Ptr) ffi.Ptr {
	return lib.DeserializeVectorPredicate(hex)
}

// VectorPredicate is an opaque byte string attached to an output. It may be
// empty.
type VectorPredicate struct {
	blsct.Value[VectorPredicateKind]
}

func VectorPredicateFromHex(s string) (*VectorPredicate, error) {
	h, err := fromHex[VectorPredicateKind](s)
	if err != nil {
		return nil, err
	}
	return &VectorPredicate{Value: blsct.Wrap(h)}, nil
}

func (vp *VectorPredicate) Equal(other *VectorPredicate) bool {
	if vp == nil || other == nil {
		return false
	}
	return vp.Lib().AreVectorPredicateEqual(vp.Ptr(), vp.Size(), other.Ptr(), other.Size())
}

func fromHex[K blsct.Kind](s string) (*blsct.Handle[K], error) {
	lib, err := blsct.Lib()
	if err != nil {
		return nil, err
	}
	return blsct.Deserialize[K](lib, s)
}
