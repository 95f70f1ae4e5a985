package address

import (
	"github.com/nav-io/libblsct-bindings/api/blsct"
	"github.com/nav-io/libblsct-bindings/api/curve"
	"github.com/nav-io/libblsct-bindings/api/keys"
	"github.com/nav-io/libblsct-bindings/internal/ffi"
)

type SubAddressIdKind struct{}

func (SubAddressIdKind) Name() string { return "sub_address_id" }
func (SubAddressIdKind) Size() int    { return ffi.SubAddrIdSize }

func (SubAddressIdKind) Serialize(lib ffi.Library, p ffi.Ptr, _ int) ffi.Ptr {
	return lib.SerializeSubAddrId(p)
}

func (SubAddressIdKind) Deserialize(lib ffi.Library, hex ffi.Ptr) ffi.Ptr {
	return lib.DeserializeSubAddrId(hex)
}

// SubAddressId names a sub-address of a wallet by account and index.
type SubAddressId struct {
	blsct.Value[SubAddressIdKind]
}

func NewSubAddressId(account int64, address uint64) (*SubAddressId, error) {
	h, err := blsct.Static[SubAddressIdKind](func(lib ffi.Library) ffi.Ptr {
		return lib.GenSubAddrId(account, address)
	})
	if err != nil {
		return nil, err
	}
	return &SubAddressId{Value: blsct.Wrap(h)}, nil
}

func SubAddressIdFromHex(s string) (*SubAddressId, error) {
	lib, err := blsct.Lib()
	if err != nil {
		return nil, err
	}
	h, err := blsct.Deserialize[SubAddressIdKind](lib, s)
	if err != nil {
		return nil, err
	}
	return &SubAddressId{Value: blsct.Wrap(h)}, nil
}

func (id *SubAddressId) Account() int64  { return id.Lib().GetSubAddrIdAccount(id.Ptr()) }
func (id *SubAddressId) Address() uint64 { return id.Lib().GetSubAddrIdAddress(id.Ptr()) }

func (id *SubAddressId) Equal(other *SubAddressId) bool {
	if id == nil || other == nil {
		return false
	}
	return id.BytesEqual(other.Value)
}

type SubAddressKind struct{}

func (SubAddressKind) Name() string { return "sub_address" }
func (SubAddressKind) Size() int    { return ffi.SubAddrSize }

func (SubAddressKind) Serialize(lib ffi.Library, p ffi.Ptr, _ int) ffi.Ptr {
	return lib.SerializeSubAddr(p)
}

func (SubAddressKind) Deserialize(lib ffi.Library, hex ffi.Ptr) ffi.Ptr {
	return lib.DeserializeSubAddr(hex)
}

// SubAddress is a destination outputs are paid to.
type SubAddress struct {
	blsct.Value[SubAddressKind]
}

func SubAddressFromHandle(h *blsct.Handle[SubAddressKind]) *SubAddress {
	return &SubAddress{Value: blsct.Wrap(h)}
}

// NewSubAddress derives the sub-address id of the wallet holding viewKey
// and spendingPubKey.
func NewSubAddress(viewKey keys.ViewKey, spendingPubKey *curve.PublicKey, id *SubAddressId) *SubAddress {
	lib := viewKey.Lib()
	p := lib.DeriveSubAddress(viewKey.Ptr(), spendingPubKey.Ptr(), id.Ptr())
	return &SubAddress{Value: blsct.Wrap(blsct.FromRawStatic[SubAddressKind](lib, p))}
}

// SubAddressFromDoublePublicKey reinterprets a key pair as a sub-address.
func SubAddressFromDoublePublicKey(dpk *curve.DoublePublicKey) (*SubAddress, error) {
	lib := dpk.Lib()
	h, err := blsct.FromEnvelope[SubAddressKind](lib, lib.DpkToSubAddr(dpk.Ptr()))
	if err != nil {
		return nil, err
	}
	return &SubAddress{Value: blsct.Wrap(h)}, nil
}

func SubAddressFromHex(s string) (*SubAddress, error) {
	lib, err := blsct.Lib()
	if err != nil {
		return nil, err
	}
	h, err := blsct.Deserialize[SubAddressKind](lib, s)
	if err != nil {
		return nil, err
	}
	return &SubAddress{Value: blsct.Wrap(h)}, nil
}

func (sa *SubAddress) DoublePublicKey() *curve.DoublePublicKey {
	lib := sa.Lib()
	p := lib.SubAddrToDpk(sa.Ptr())
	return curve.DoublePublicKeyFromHandle(blsct.FromRawStatic[curve.DoublePublicKeyKind](lib, p))
}

func (sa *SubAddress) Equal(other *SubAddress) bool {
	if sa == nil || other == nil {
		return false
	}
	return sa.BytesEqual(other.Value)
}
