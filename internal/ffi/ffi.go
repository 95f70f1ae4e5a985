// Package ffi describes the native call surface of libblsct.
//
// Every method maps one-to-one onto a C entry point. Values cross the
// boundary as Ptr (the address of a native allocation) plus, where the type
// has no static size, an explicit byte count. Ownership rules follow the C
// library: a method documented as returning an envelope returns a
// malloc'd RetVal that the caller frees; a method returning a bare Ptr
// returns a malloc'd object of the type's static size unless it is marked
// as borrowed.
package ffi

import "github.com/pkg/errors"

// Ptr is the address of a native allocation. The zero value is the null
// pointer.
type Ptr uintptr

// IsNull reports whether p is the null pointer.
func (p Ptr) IsNull() bool { return p == 0 }

// Status is the first field of every result envelope.
type Status uint8

const (
	StatusSuccess               Status = 0
	StatusFailure               Status = 1
	StatusException             Status = 2
	StatusBadSize               Status = 3
	StatusUnknownEncoding       Status = 10
	StatusValueOutsideRange     Status = 11
	StatusDidNotRunToCompletion Status = 12
	StatusInAmountError         Status = 13
	StatusOutAmountError        Status = 14
	StatusBadOutType            Status = 15
	StatusMemoTooLong           Status = 16
	StatusMemAllocFailed        Status = 17
)

var statusNames = map[Status]string{
	StatusSuccess:               "success",
	StatusFailure:               "failure",
	StatusException:             "exception",
	StatusBadSize:               "bad size",
	StatusUnknownEncoding:       "unknown encoding",
	StatusValueOutsideRange:     "value outside the range",
	StatusDidNotRunToCompletion: "did not run to completion",
	StatusInAmountError:         "invalid input amount",
	StatusOutAmountError:        "invalid output amount",
	StatusBadOutType:            "bad output type",
	StatusMemoTooLong:           "memo too long",
	StatusMemAllocFailed:        "memory allocation failed",
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "unknown status"
}

// RetVal mirrors BlsctRetVal.
type RetVal struct {
	Status Status
	Value  Ptr
	Size   int
}

// BoolRetVal mirrors BlsctBoolRetVal.
type BoolRetVal struct {
	Status Status
	Value  bool
}

// AmountsRetVal mirrors BlsctAmountsRetVal. It must be released with
// FreeAmountsRetVal, which also releases Value.
type AmountsRetVal struct {
	Status Status
	Value  Ptr
}

// CTxRetVal mirrors BlsctCTxRetVal.
type CTxRetVal struct {
	Status            Status
	Value             Ptr
	Size              int
	InAmountErrIndex  int
	OutAmountErrIndex int
}

// TxOutputType selects how a transaction output is built.
type TxOutputType uint8

const (
	TxOutputNormal           TxOutputType = 0
	TxOutputStakedCommitment TxOutputType = 1
)

// AddressEncoding selects the checksum variant used for addresses.
type AddressEncoding uint8

const (
	Bech32  AddressEncoding = 0
	Bech32M AddressEncoding = 1
)

// Chain selects network parameters inside the library.
type Chain uint8

const (
	Mainnet Chain = 0
	Testnet Chain = 1
	Signet  Chain = 2
	Regtest Chain = 3
)

var chainNames = map[Chain]string{
	Mainnet: "mainnet",
	Testnet: "testnet",
	Signet:  "signet",
	Regtest: "regtest",
}

func (c Chain) String() string {
	if name, ok := chainNames[c]; ok {
		return name
	}
	return "unknown chain"
}

// ParseChain accepts the lowercase chain names.
func ParseChain(s string) (Chain, error) {
	for c, name := range chainNames {
		if name == s {
			return c, nil
		}
	}
	return 0, errors.Errorf("unknown chain %q", s)
}

// Static sizes of the fixed-layout native types, in bytes.
const (
	ScalarSize          = 32
	PointSize           = 48
	PublicKeySize       = 48
	DoublePublicKeySize = 96
	CTxIdSize           = 32
	KeyIdSize           = 20
	OutPointSize        = 36
	ScriptSize          = 28
	SignatureSize       = 96
	SubAddrSize         = 96
	SubAddrIdSize       = 16
	TokenIdSize         = 40
	MemoMaxSize         = 100
)

// Library is the complete native surface.
type Library interface {
	Memory
	ScalarOps
	PointOps
	KeyOps
	AddressOps
	TokenOps
	TxOps
	RangeProofOps
}

// Memory covers allocation, envelope layouts, the generic hex helpers and
// process-wide library state.
type Memory interface {
	Init()
	// Free releases a pointer obtained from the library or from Alloc.
	Free(p Ptr)
	// Alloc copies b into a fresh native allocation. It returns null when
	// the allocator fails.
	Alloc(b []byte) Ptr
	// Bytes copies n bytes starting at p.
	Bytes(p Ptr, n int) []byte
	// CStringBytes copies a NUL-terminated string, excluding the terminator.
	CStringBytes(p Ptr) []byte

	RetVal(p Ptr) RetVal
	BoolRetVal(p Ptr) BoolRetVal
	AmountsRetVal(p Ptr) AmountsRetVal
	CTxRetVal(p Ptr) CTxRetVal

	GetBlsctChain() Chain
	SetBlsctChain(c Chain)
}

// ScalarOps covers BlsctScalar.
type ScalarOps interface {
	GenRandomScalar() Ptr
	GenScalar(n uint64) Ptr
	ScalarToUint64(s Ptr) uint64
	AreScalarEqual(a, b Ptr) bool
	SerializeScalar(s Ptr) Ptr
	DeserializeScalar(hex Ptr) Ptr
}

// PointOps covers BlsctPoint, BlsctPubKey and BlsctSignature.
type PointOps interface {
	GenRandomPoint() Ptr
	GenBasePoint() Ptr
	PointFromScalar(s Ptr) Ptr
	IsValidPoint(p Ptr) bool
	ArePointEqual(a, b Ptr) bool
	ScalarMultiplyPoint(p, s Ptr) Ptr
	SerializePoint(p Ptr) Ptr
	DeserializePoint(hex Ptr) Ptr

	GenRandomPublicKey() Ptr
	ScalarToPubKey(s Ptr) Ptr
	GetPublicKeyPoint(pk Ptr) Ptr
	PointToPublicKey(p Ptr) Ptr

	SignMessage(privKey, msg Ptr) Ptr
	VerifyMsgSig(pubKey, msg, sig Ptr) bool
	SerializeSignature(sig Ptr) Ptr
	DeserializeSignature(hex Ptr) Ptr
}

// KeyOps covers the key derivation chain and the keys computed from a
// blinding public key.
type KeyOps interface {
	FromSeedToChildKey(seed Ptr) Ptr
	FromChildKeyToBlindingKey(childKey Ptr) Ptr
	FromChildKeyToTokenKey(childKey Ptr) Ptr
	FromChildKeyToTxKey(childKey Ptr) Ptr
	FromTxKeyToViewKey(txKey Ptr) Ptr
	FromTxKeyToSpendingKey(txKey Ptr) Ptr
	CalcPrivSpendingKey(blindingPubKey, viewKey, spendingKey Ptr, account int64, address uint64) Ptr

	CalcNonce(blindingPubKey, viewKey Ptr) Ptr
	CalcViewTag(blindingPubKey, viewKey Ptr) uint64
	CalcKeyId(blindingPubKey, spendingPubKey, viewKey Ptr) Ptr
	SerializeKeyId(keyId Ptr) Ptr
	DeserializeKeyId(hex Ptr) Ptr
}

// AddressOps covers double public keys, sub-addresses and address strings.
type AddressOps interface {
	GenDoublePubKey(pk1, pk2 Ptr) Ptr
	GenDpkWithKeysAcctAddr(viewKey, spendingPubKey Ptr, account int64, address uint64) Ptr
	SerializeDpk(dpk Ptr) Ptr
	DeserializeDpk(hex Ptr) Ptr

	GenSubAddrId(account int64, address uint64) Ptr
	GetSubAddrIdAccount(id Ptr) int64
	GetSubAddrIdAddress(id Ptr) uint64
	SerializeSubAddrId(id Ptr) Ptr
	DeserializeSubAddrId(hex Ptr) Ptr

	DeriveSubAddress(viewKey, spendingPubKey, subAddrId Ptr) Ptr
	DpkToSubAddr(dpk Ptr) Ptr
	SubAddrToDpk(subAddr Ptr) Ptr
	SerializeSubAddr(subAddr Ptr) Ptr
	DeserializeSubAddr(hex Ptr) Ptr

	EncodeAddress(dpk Ptr, encoding AddressEncoding) Ptr
	DecodeAddress(addr Ptr) Ptr
}

// TokenOps covers BlsctTokenId.
type TokenOps interface {
	GenDefaultTokenId() Ptr
	GenTokenId(token uint64) Ptr
	GenTokenIdWithTokenAndSubid(token, subid uint64) Ptr
	GetTokenIdToken(tokenId Ptr) uint64
	GetTokenIdSubid(tokenId Ptr) uint64
	SerializeTokenId(tokenId Ptr) Ptr
	DeserializeTokenId(hex Ptr) Ptr
}

// TxOps covers transaction inputs, outputs, their vectors and the built
// transaction together with its borrowed views.
type TxOps interface {
	SerializeCtxId(ctxId Ptr) Ptr
	DeserializeCtxId(hex Ptr) Ptr
	SerializeScript(script Ptr) Ptr
	DeserializeScript(hex Ptr) Ptr

	GenOutPoint(ctxId Ptr, n uint32) Ptr
	GetOutPointN(outPoint Ptr) uint32
	SerializeOutPoint(outPoint Ptr) Ptr
	DeserializeOutPoint(hex Ptr) Ptr

	SerializeVectorPredicate(vp Ptr, size int) Ptr
	DeserializeVectorPredicate(hex Ptr) Ptr
	AreVectorPredicateEqual(a Ptr, aSize int, b Ptr, bSize int) bool

	BuildTxIn(amount, gamma uint64, spendingKey, tokenId, outPoint Ptr, isStakedCommitment, isRbf bool) Ptr
	GetTxInAmount(txIn Ptr) uint64
	GetTxInGamma(txIn Ptr) uint64
	GetTxInSpendingKey(txIn Ptr) Ptr
	GetTxInTokenId(txIn Ptr) Ptr
	GetTxInOutPoint(txIn Ptr) Ptr
	GetTxInStakedCommitment(txIn Ptr) bool
	GetTxInRbf(txIn Ptr) bool
	SerializeTxIn(txIn Ptr, size int) Ptr
	DeserializeTxIn(hex Ptr) Ptr

	BuildTxOut(destination Ptr, amount uint64, memo, tokenId Ptr, outputType TxOutputType, minStake uint64, subtractFeeFromAmount bool, blindingKey Ptr) Ptr
	GetTxOutDestination(txOut Ptr) Ptr
	GetTxOutAmount(txOut Ptr) uint64
	GetTxOutMemo(txOut Ptr) Ptr
	GetTxOutTokenId(txOut Ptr) Ptr
	GetTxOutOutputType(txOut Ptr) TxOutputType
	GetTxOutMinStake(txOut Ptr) uint64
	GetTxOutSubtractFeeFromAmount(txOut Ptr) bool
	// GetTxOutBlindingKey returns null when the output was built without
	// an explicit blinding key.
	GetTxOutBlindingKey(txOut Ptr) Ptr
	SerializeTxOut(txOut Ptr, size int) Ptr
	DeserializeTxOut(hex Ptr) Ptr

	CreateTxInVec() Ptr
	AddToTxInVec(vec, txIn Ptr)
	DeleteTxInVec(vec Ptr)
	CreateTxOutVec() Ptr
	AddToTxOutVec(vec, txOut Ptr)
	DeleteTxOutVec(vec Ptr)

	BuildCtx(txIns, txOuts Ptr) Ptr
	GetCtxId(ctx Ptr, size int) Ptr
	SerializeCtx(ctx Ptr, size int) Ptr
	DeserializeCtx(hex Ptr) Ptr

	// The following return pointers borrowed from ctx. They stay valid
	// until ctx is freed and must never be freed themselves.
	GetCtxIns(ctx Ptr, size int) Ptr
	GetCtxInsSize(ins Ptr) int
	GetCtxInAt(ins Ptr, i int) Ptr
	GetCtxOuts(ctx Ptr, size int) Ptr
	GetCtxOutsSize(outs Ptr) int
	GetCtxOutAt(outs Ptr, i int) Ptr

	GetCtxInPrevOutHash(in Ptr) Ptr
	GetCtxInPrevOutN(in Ptr) uint32
	GetCtxInScriptSig(in Ptr) Ptr
	GetCtxInSequence(in Ptr) uint32
	GetCtxInScriptWitness(in Ptr) Ptr

	GetCtxOutValue(out Ptr) uint64
	GetCtxOutScriptPubKey(out Ptr) Ptr
	GetCtxOutTokenId(out Ptr) Ptr
	GetCtxOutVectorPredicate(out Ptr) Ptr
	GetCtxOutSpendingKey(out Ptr) Ptr
	GetCtxOutEphemeralKey(out Ptr) Ptr
	GetCtxOutBlindingKey(out Ptr) Ptr
	GetCtxOutRangeProof(out Ptr) Ptr
	GetCtxOutViewTag(out Ptr) uint16
}

// RangeProofOps covers range proofs, their vectors and amount recovery.
type RangeProofOps interface {
	CreateUint64Vec() Ptr
	AddToUint64Vec(vec Ptr, v uint64)
	DeleteUint64Vec(vec Ptr)
	CreateRangeProofVec() Ptr
	AddToRangeProofVec(vec, proof Ptr, size int)
	DeleteRangeProofVec(vec Ptr)
	CreateAmountRecoveryReqVec() Ptr
	// AddToAmountRecoveryReqVec moves ownership of req into vec.
	AddToAmountRecoveryReqVec(vec, req Ptr)
	DeleteAmountRecoveryReqVec(vec Ptr)

	BuildRangeProof(amounts, nonce, msg, tokenId Ptr) Ptr
	VerifyRangeProofs(proofs Ptr) Ptr
	SerializeRangeProof(proof Ptr, size int) Ptr
	DeserializeRangeProof(hex Ptr) Ptr

	GetRangeProofA(proof Ptr, size int) Ptr
	GetRangeProofAWip(proof Ptr, size int) Ptr
	GetRangeProofB(proof Ptr, size int) Ptr
	GetRangeProofRPrime(proof Ptr, size int) Ptr
	GetRangeProofSPrime(proof Ptr, size int) Ptr
	GetRangeProofDeltaPrime(proof Ptr, size int) Ptr
	GetRangeProofAlphaHat(proof Ptr, size int) Ptr
	GetRangeProofTauX(proof Ptr, size int) Ptr

	GenAmountRecoveryReq(proof Ptr, size int, nonce Ptr) Ptr
	RecoverAmount(reqs Ptr) Ptr
	GetAmountRecoveryResultSize(results Ptr) int
	GetAmountRecoveryResultIsSucc(results Ptr, i int) bool
	GetAmountRecoveryResultAmount(results Ptr, i int) uint64
	// GetAmountRecoveryResultMsg returns a string borrowed from results.
	GetAmountRecoveryResultMsg(results Ptr, i int) Ptr
	FreeAmountsRetVal(rv Ptr)
}
