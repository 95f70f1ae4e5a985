package curve

import (
	"github.com/nav-io/libblsct-bindings/api/blsct"
	"github.com/nav-io/libblsct-bindings/internal/ffi"
)

type SignatureKind struct{}

func (SignatureKind) Name() string { return "signature" }
func (SignatureKind) Size() int    { return ffi.SignatureSize }

func (SignatureKind) Serialize(lib ffi.Library, p ffi.Ptr, _ int) ffi.Ptr {
	return lib.SerializeSignature(p)
}

func (SignatureKind) Deserialize(lib ffi.Library, hex ffi.Ptr) ffi.Ptr {
	return lib.DeserializeSignature(hex)
}

// Signature is a BLS signature over a message.
type Signature struct {
	blsct.Value[SignatureKind]
}

func SignatureFromHandle(h *blsct.Handle[SignatureKind]) *Signature {
	return &Signature{Value: blsct.Wrap(h)}
}

// RandomSignature returns random bytes shaped like a signature. It does
// not verify against any key.
func RandomSignature() (*Signature, error) {
	h, err := blsct.Random[SignatureKind]()
	if err != nil {
		return nil, err
	}
	return SignatureFromHandle(h), nil
}

func SignatureFromHex(s string) (*Signature, error) {
	lib, err := blsct.Lib()
	if err != nil {
		return nil, err
	}
	h, err := blsct.Deserialize[SignatureKind](lib, s)
	if err != nil {
		return nil, err
	}
	return SignatureFromHandle(h), nil
}

// Sign signs msg with privKey.
func Sign(privKey *Scalar, msg string) (*Signature, error) {
	lib := privKey.Lib()
	cs, err := blsct.CString(lib, "sign_message", msg)
	if err != nil {
		return nil, err
	}
	defer lib.Free(cs)
	return SignatureFromHandle(blsct.FromRawStatic[SignatureKind](lib, lib.SignMessage(privKey.Ptr(), cs))), nil
}

// Verify reports whether sig is a signature of msg by pubKey.
func (sig *Signature) Verify(pubKey *PublicKey, msg string) (bool, error) {
	lib := sig.Lib()
	cs, err := blsct.CString(lib, "verify_msg_sig", msg)
	if err != nil {
		return false, err
	}
	defer lib.Free(cs)
	return lib.VerifyMsgSig(pubKey.Ptr(), cs, sig.Ptr()), nil
}

func (sig *Signature) Equal(other *Signature) bool {
	if sig == nil || other == nil {
		return false
	}
	return sig.BytesEqual(other.Value)
}
