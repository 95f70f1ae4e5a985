package keys

import (
	"github.com/nav-io/libblsct-bindings/api/blsct"
	"github.com/nav-io/libblsct-bindings/api/curve"
	"github.com/nav-io/libblsct-bindings/internal/ffi"
)

// The derivation chain runs
//
//	seed -> ChildKey -> {BlindingKey, TokenKey, TxKey}
//	TxKey -> {ViewKey, SpendingKey}
//
// Every key is a scalar.
type (
	ChildKey        struct{ *curve.Scalar }
	BlindingKey     struct{ *curve.Scalar }
	TokenKey        struct{ *curve.Scalar }
	TxKey           struct{ *curve.Scalar }
	ViewKey         struct{ *curve.Scalar }
	SpendingKey     struct{ *curve.Scalar }
	PrivSpendingKey struct{ *curve.Scalar }
)

func derive(parent *curve.Scalar, fn func(lib ffi.Library, p ffi.Ptr) ffi.Ptr) *curve.Scalar {
	lib := parent.Lib()
	return curve.ScalarFromHandle(blsct.FromRawStatic[curve.ScalarKind](lib, fn(lib, parent.Ptr())))
}

// ChildKeyFromSeed derives the root child key of a wallet from its seed.
func ChildKeyFromSeed(seed *curve.Scalar) ChildKey {
	return ChildKey{derive(seed, ffi.Library.FromSeedToChildKey)}
}

func (k ChildKey) BlindingKey() BlindingKey {
	return BlindingKey{derive(k.Scalar, ffi.Library.FromChildKeyToBlindingKey)}
}

func (k ChildKey) TokenKey() TokenKey {
	return TokenKey{derive(k.Scalar, ffi.Library.FromChildKeyToTokenKey)}
}

func (k ChildKey) TxKey() TxKey {
	return TxKey{derive(k.Scalar, ffi.Library.FromChildKeyToTxKey)}
}

func (k TxKey) ViewKey() ViewKey {
	return ViewKey{derive(k.Scalar, ffi.Library.FromTxKeyToViewKey)}
}

func (k TxKey) SpendingKey() SpendingKey {
	return SpendingKey{derive(k.Scalar, ffi.Library.FromTxKeyToSpendingKey)}
}

// CalcPrivSpendingKey returns the private key that spends an output sent
// with blindingPubKey to the sub-address (account, address).
func CalcPrivSpendingKey(blindingPubKey *curve.PublicKey, viewKey ViewKey, spendingKey SpendingKey, account int64, address uint64) PrivSpendingKey {
	lib := viewKey.Lib()
	p := lib.CalcPrivSpendingKey(blindingPubKey.Ptr(), viewKey.Ptr(), spendingKey.Ptr(), account, address)
	return PrivSpendingKey{curve.ScalarFromHandle(blsct.FromRawStatic[curve.ScalarKind](lib, p))}
}

// CalcNonce returns the nonce shared by the sender of an output and the
// holder of viewKey. Range proofs of the output are recovered with it.
func CalcNonce(blindingPubKey *curve.PublicKey, viewKey ViewKey) *curve.Point {
	return blindingPubKey.GenerateNonce(viewKey.Scalar)
}

// CalcViewTag returns the tag a wallet compares before attempting to
// recover an output.
func CalcViewTag(blindingPubKey *curve.PublicKey, viewKey ViewKey) uint64 {
	return viewKey.Lib().CalcViewTag(blindingPubKey.Ptr(), viewKey.Ptr())
}
