package softlib

import (
	"bytes"
	"encoding/binary"
	"math"

	"github.com/nav-io/libblsct-bindings/internal/ffi"
)

// A token id is a 256-bit little-endian token followed by a 64-bit subid.
func tokenIdBytes(token, subid uint64) []byte {
	b := make([]byte, ffi.TokenIdSize)
	binary.LittleEndian.PutUint64(b[:8], token)
	binary.LittleEndian.PutUint64(b[32:], subid)
	return b
}

var defaultTokenId = tokenIdBytes(0, math.MaxUint64)

func isDefaultToken(tokenId []byte) bool {
	return bytes.Equal(tokenId, defaultTokenId)
}

func (l *Library) GenDefaultTokenId() ffi.Ptr {
	return l.succ(tokenIdBytes(0, math.MaxUint64))
}

func (l *Library) GenTokenId(token uint64) ffi.Ptr {
	return l.succ(tokenIdBytes(token, math.MaxUint64))
}

func (l *Library) GenTokenIdWithTokenAndSubid(token, subid uint64) ffi.Ptr {
	return l.succ(tokenIdBytes(token, subid))
}

func (l *Library) GetTokenIdToken(tokenId ffi.Ptr) uint64 {
	return binary.LittleEndian.Uint64(l.read(tokenId, ffi.TokenIdSize)[:8])
}

func (l *Library) GetTokenIdSubid(tokenId ffi.Ptr) uint64 {
	return binary.LittleEndian.Uint64(l.read(tokenId, ffi.TokenIdSize)[32:])
}

func (l *Library) SerializeTokenId(tokenId ffi.Ptr) ffi.Ptr {
	return l.hexCStr(l.read(tokenId, ffi.TokenIdSize))
}

func (l *Library) DeserializeTokenId(hex ffi.Ptr) ffi.Ptr {
	return l.deserializeFixed(hex, ffi.TokenIdSize, nil)
}

func (l *Library) SerializeCtxId(ctxId ffi.Ptr) ffi.Ptr {
	return l.hexCStr(l.read(ctxId, ffi.CTxIdSize))
}

func (l *Library) DeserializeCtxId(hex ffi.Ptr) ffi.Ptr {
	return l.deserializeFixed(hex, ffi.CTxIdSize, nil)
}

func (l *Library) SerializeScript(script ffi.Ptr) ffi.Ptr {
	return l.hexCStr(l.read(script, ffi.ScriptSize))
}

func (l *Library) DeserializeScript(hex ffi.Ptr) ffi.Ptr {
	return l.deserializeFixed(hex, ffi.ScriptSize, nil)
}

// An out point is a ctx id followed by a 32-bit little-endian index.
func (l *Library) GenOutPoint(ctxId ffi.Ptr, n uint32) ffi.Ptr {
	b := make([]byte, ffi.OutPointSize)
	copy(b, l.read(ctxId, ffi.CTxIdSize))
	binary.LittleEndian.PutUint32(b[ffi.CTxIdSize:], n)
	return l.succ(b)
}

func (l *Library) GetOutPointN(outPoint ffi.Ptr) uint32 {
	return binary.LittleEndian.Uint32(l.read(outPoint, ffi.OutPointSize)[ffi.CTxIdSize:])
}

func (l *Library) SerializeOutPoint(outPoint ffi.Ptr) ffi.Ptr {
	return l.hexCStr(l.read(outPoint, ffi.OutPointSize))
}

func (l *Library) DeserializeOutPoint(hex ffi.Ptr) ffi.Ptr {
	return l.deserializeFixed(hex, ffi.OutPointSize, nil)
}

// A vector predicate is an opaque byte string, so every well-formed hex
// string decodes. The empty string is the empty predicate.
func (l *Library) SerializeVectorPredicate(p ffi.Ptr, size int) ffi.Ptr {
	return l.hexCStr(l.read(p, size))
}

func (l *Library) DeserializeVectorPredicate(hex ffi.Ptr) ffi.Ptr {
	b, ok := l.decodeHexArg(hex)
	if !ok {
		return l.fail(ffi.StatusUnknownEncoding)
	}
	return l.succ(b)
}

func (l *Library) AreVectorPredicateEqual(a ffi.Ptr, aSize int, b ffi.Ptr, bSize int) bool {
	return aSize == bSize && bytes.Equal(l.read(a, aSize), l.read(b, bSize))
}
