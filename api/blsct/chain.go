package blsct

import (
	"github.com/nav-io/libblsct-bindings/internal/ffi"
	"github.com/nav-io/libblsct-bindings/internal/log"
)

// Chain selects the network parameters of the library, most visibly the
// human-readable part of encoded addresses.
type Chain = ffi.Chain

const (
	Mainnet = ffi.Mainnet
	Testnet = ffi.Testnet
	Signet  = ffi.Signet
	Regtest = ffi.Regtest
)

func GetChain() (Chain, error) {
	lib, err := Lib()
	if err != nil {
		return 0, err
	}
	return lib.GetBlsctChain(), nil
}

func SetChain(c Chain) error {
	lib, err := Lib()
	if err != nil {
		return err
	}
	lib.SetBlsctChain(c)
	log.Infow("chain selected", "chain", c.String())
	return nil
}
