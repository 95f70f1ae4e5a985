package commands

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/nav-io/libblsct-bindings/api/address"
)

func parseEncoding(s string) (address.Encoding, error) {
	switch strings.ToLower(s) {
	case "bech32":
		return address.Bech32, nil
	case "bech32m":
		return address.Bech32M, nil
	}
	return 0, errors.Errorf("unknown encoding %q", s)
}

func addressCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "address",
		Short: "Encode and decode sub-addresses",
	}
	cmd.AddCommand(addressEncodeCmd(), addressDecodeCmd())
	return cmd
}

func addressEncodeCmd() *cobra.Command {
	var (
		seed     string
		account  int64
		index    uint64
		encoding string
	)
	cmd := &cobra.Command{
		Use:   "encode",
		Short: "Print the address of a sub-address of the wallet with the given seed",
		RunE: func(cmd *cobra.Command, args []string) error {
			enc, err := parseEncoding(encoding)
			if err != nil {
				return err
			}
			w, err := newWallet(seed)
			if err != nil {
				return err
			}
			defer w.Free()

			addr, err := w.encode(account, index, enc)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), addr)
			return nil
		},
	}
	cmd.Flags().StringVar(&seed, "seed", "", "seed scalar in hex")
	cmd.Flags().Int64Var(&account, "account", 0, "sub-address account")
	cmd.Flags().Uint64Var(&index, "index", 0, "sub-address index")
	cmd.Flags().StringVar(&encoding, "encoding", "bech32m", "bech32 or bech32m")
	_ = cmd.MarkFlagRequired("seed")
	return cmd
}

func addressDecodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "decode <address>",
		Short: "Print the double public key behind an address",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dpk, err := address.Decode(args[0])
			if err != nil {
				return err
			}
			defer dpk.Free()
			fmt.Fprintln(cmd.OutOrStdout(), dpk)
			return nil
		},
	}
}
