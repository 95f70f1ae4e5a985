package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nav-io/libblsct-bindings/api/address"
	"github.com/nav-io/libblsct-bindings/api/curve"
	"github.com/nav-io/libblsct-bindings/api/keys"
)

// wallet is the key material derived from one seed.
type wallet struct {
	seed     *curve.Scalar
	view     keys.ViewKey
	spending keys.SpendingKey
	spendPub *curve.PublicKey
}

func newWallet(seedHex string) (*wallet, error) {
	var (
		seed *curve.Scalar
		err  error
	)
	if seedHex == "" {
		seed, err = curve.RandomScalar()
	} else {
		seed, err = curve.ScalarFromHex(seedHex)
	}
	if err != nil {
		return nil, err
	}

	child := keys.ChildKeyFromSeed(seed)
	defer child.Free()
	txKey := child.TxKey()
	defer txKey.Free()

	w := &wallet{seed: seed, view: txKey.ViewKey(), spending: txKey.SpendingKey()}
	w.spendPub = curve.PublicKeyFromScalar(w.spending.Scalar)
	return w, nil
}

func (w *wallet) subAddress(account int64, index uint64) (*address.SubAddress, error) {
	id, err := address.NewSubAddressId(account, index)
	if err != nil {
		return nil, err
	}
	defer id.Free()
	return address.NewSubAddress(w.view, w.spendPub, id), nil
}

func (w *wallet) encode(account int64, index uint64, enc address.Encoding) (string, error) {
	sa, err := w.subAddress(account, index)
	if err != nil {
		return "", err
	}
	defer sa.Free()
	dpk := sa.DoublePublicKey()
	defer dpk.Free()
	return address.Encode(dpk, enc)
}

func (w *wallet) Free() {
	w.seed.Free()
	w.view.Free()
	w.spending.Free()
	w.spendPub.Free()
}

func keygenCmd() *cobra.Command {
	var (
		seed    string
		account int64
		index   uint64
	)
	cmd := &cobra.Command{
		Use:   "keygen",
		Short: "Derive wallet keys from a seed and print the first address",
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := newWallet(seed)
			if err != nil {
				return err
			}
			defer w.Free()

			addr, err := w.encode(account, index, address.Bech32M)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "seed:         %s\n", w.seed)
			fmt.Fprintf(out, "view key:     %s\n", w.view.Scalar)
			fmt.Fprintf(out, "spending key: %s\n", w.spending.Scalar)
			fmt.Fprintf(out, "spend pubkey: %s\n", w.spendPub)
			fmt.Fprintf(out, "address:      %s\n", addr)
			return nil
		},
	}
	cmd.Flags().StringVar(&seed, "seed", "", "seed scalar in hex (random when empty)")
	cmd.Flags().Int64Var(&account, "account", 0, "sub-address account")
	cmd.Flags().Uint64Var(&index, "index", 0, "sub-address index")
	return cmd
}
