package softlib

import (
	"encoding/binary"

	"github.com/btcsuite/btcd/btcutil/bech32"

	"github.com/nav-io/libblsct-bindings/internal/ffi"
)

var chainHRP = map[ffi.Chain]string{
	ffi.Mainnet: "nv",
	ffi.Testnet: "tn",
	ffi.Signet:  "tn",
	ffi.Regtest: "nr",
}

// validPointPair accepts two concatenated compressed points.
func validPointPair(b []byte) bool {
	if len(b) != 2*ffi.PointSize {
		return false
	}
	_, ok1 := decodePoint(b[:ffi.PointSize])
	_, ok2 := decodePoint(b[ffi.PointSize:])
	return ok1 && ok2
}

func (l *Library) GenDoublePubKey(pk1, pk2 ffi.Ptr) ffi.Ptr {
	b := make([]byte, 0, ffi.DoublePublicKeySize)
	b = append(b, l.read(pk1, ffi.PublicKeySize)...)
	b = append(b, l.read(pk2, ffi.PublicKeySize)...)
	return l.succ(b)
}

// subAddress derives (C, D) where D = S + H(v, account, address)*G and
// C = v*D.
func (l *Library) subAddress(viewKey, spendingPubKey ffi.Ptr, account int64, address uint64) []byte {
	v := l.scalarAt(viewKey)
	s := l.pointAt(spendingPubKey)
	m := subAddrScalar(&v, account, address)
	mg := mulBase(&m)
	d := add(&s, &mg)
	c := mul(&d, &v)
	b := make([]byte, 0, ffi.SubAddrSize)
	b = append(b, pointBytes(&c)...)
	return append(b, pointBytes(&d)...)
}

func (l *Library) GenDpkWithKeysAcctAddr(viewKey, spendingPubKey ffi.Ptr, account int64, address uint64) ffi.Ptr {
	return l.raw(l.subAddress(viewKey, spendingPubKey, account, address))
}

func (l *Library) SerializeDpk(dpk ffi.Ptr) ffi.Ptr {
	return l.hexCStr(l.read(dpk, ffi.DoublePublicKeySize))
}

func (l *Library) DeserializeDpk(hex ffi.Ptr) ffi.Ptr {
	return l.deserializeFixed(hex, ffi.DoublePublicKeySize, validPointPair)
}

func (l *Library) GenSubAddrId(account int64, address uint64) ffi.Ptr {
	b := make([]byte, ffi.SubAddrIdSize)
	binary.LittleEndian.PutUint64(b[:8], uint64(account))
	binary.LittleEndian.PutUint64(b[8:], address)
	return l.raw(b)
}

func (l *Library) GetSubAddrIdAccount(id ffi.Ptr) int64 {
	return int64(binary.LittleEndian.Uint64(l.read(id, ffi.SubAddrIdSize)[:8]))
}

func (l *Library) GetSubAddrIdAddress(id ffi.Ptr) uint64 {
	return binary.LittleEndian.Uint64(l.read(id, ffi.SubAddrIdSize)[8:])
}

func (l *Library) SerializeSubAddrId(id ffi.Ptr) ffi.Ptr {
	return l.hexCStr(l.read(id, ffi.SubAddrIdSize))
}

func (l *Library) DeserializeSubAddrId(hex ffi.Ptr) ffi.Ptr {
	return l.deserializeFixed(hex, ffi.SubAddrIdSize, nil)
}

func (l *Library) DeriveSubAddress(viewKey, spendingPubKey, subAddrId ffi.Ptr) ffi.Ptr {
	account := l.GetSubAddrIdAccount(subAddrId)
	address := l.GetSubAddrIdAddress(subAddrId)
	return l.raw(l.subAddress(viewKey, spendingPubKey, account, address))
}

// DpkToSubAddr reinterprets a double public key as a sub-address; both
// share a layout.
func (l *Library) DpkToSubAddr(dpk ffi.Ptr) ffi.Ptr {
	b := l.Bytes(dpk, ffi.DoublePublicKeySize)
	if !validPointPair(b) {
		return l.fail(ffi.StatusFailure)
	}
	return l.succ(b)
}

func (l *Library) SubAddrToDpk(subAddr ffi.Ptr) ffi.Ptr {
	return l.raw(l.Bytes(subAddr, ffi.SubAddrSize))
}

func (l *Library) SerializeSubAddr(subAddr ffi.Ptr) ffi.Ptr {
	return l.hexCStr(l.read(subAddr, ffi.SubAddrSize))
}

func (l *Library) DeserializeSubAddr(hex ffi.Ptr) ffi.Ptr {
	return l.deserializeFixed(hex, ffi.SubAddrSize, validPointPair)
}

// EncodeAddress returns an envelope whose value is a C string.
func (l *Library) EncodeAddress(dpk ffi.Ptr, encoding ffi.AddressEncoding) ffi.Ptr {
	data, err := bech32.ConvertBits(l.read(dpk, ffi.DoublePublicKeySize), 8, 5, true)
	if err != nil {
		return l.fail(ffi.StatusFailure)
	}
	hrp := chainHRP[l.GetBlsctChain()]
	var addr string
	switch encoding {
	case ffi.Bech32:
		addr, err = bech32.Encode(hrp, data)
	case ffi.Bech32M:
		addr, err = bech32.EncodeM(hrp, data)
	default:
		return l.fail(ffi.StatusUnknownEncoding)
	}
	if err != nil {
		return l.fail(ffi.StatusFailure)
	}
	buf := append([]byte(addr), 0)
	return l.succ(buf)
}

// DecodeAddress accepts either checksum variant for the active chain and
// returns an envelope holding the double public key.
func (l *Library) DecodeAddress(addr ffi.Ptr) ffi.Ptr {
	hrp, data, version, err := bech32.DecodeNoLimitWithVersion(string(l.cstrArg(addr)))
	if err != nil || version == bech32.VersionUnknown {
		return l.fail(ffi.StatusUnknownEncoding)
	}
	if hrp != chainHRP[l.GetBlsctChain()] {
		return l.fail(ffi.StatusFailure)
	}
	b, err := bech32.ConvertBits(data, 5, 8, false)
	if err != nil || !validPointPair(b) {
		return l.fail(ffi.StatusFailure)
	}
	return l.succ(b)
}
