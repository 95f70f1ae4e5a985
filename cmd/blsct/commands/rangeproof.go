package commands

import (
	"context"
	"fmt"
	"strconv"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/nav-io/libblsct-bindings/api/curve"
	"github.com/nav-io/libblsct-bindings/api/rangeproof"
	"github.com/nav-io/libblsct-bindings/api/token"
)

func rangeProofCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rangeproof",
		Short: "Build, verify and open range proofs",
	}
	cmd.AddCommand(rangeProofBuildCmd(), rangeProofVerifyCmd(), rangeProofRecoverCmd())
	return cmd
}

func rangeProofBuildCmd() *cobra.Command {
	var (
		amounts []string
		msg     string
		nonce   string
	)
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Prove amounts and print the proof with its nonce",
		RunE: func(cmd *cobra.Command, args []string) error {
			values, err := parseAmounts(amounts)
			if err != nil {
				return err
			}
			var n *curve.Point
			if nonce == "" {
				n, err = curve.RandomPoint()
			} else {
				n, err = curve.PointFromHex(nonce)
			}
			if err != nil {
				return err
			}
			defer n.Free()
			tok, err := token.Default()
			if err != nil {
				return err
			}
			defer tok.Free()

			rp, err := rangeproof.Build(values, n, msg, tok)
			if err != nil {
				return err
			}
			defer rp.Free()
			fmt.Fprintf(cmd.OutOrStdout(), "nonce: %s\nproof: %s\n", n, rp)
			return nil
		},
	}
	cmd.Flags().StringSliceVar(&amounts, "amount", nil, "amount to prove (repeatable or comma separated)")
	cmd.Flags().StringVar(&msg, "msg", "", "message sealed into the proof")
	cmd.Flags().StringVar(&nonce, "nonce", "", "nonce point in hex (random when empty)")
	_ = cmd.MarkFlagRequired("amount")
	return cmd
}

func parseAmounts(in []string) ([]uint64, error) {
	out := make([]uint64, 0, len(in))
	for _, s := range in {
		v, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "amount %q", s)
		}
		out = append(out, v)
	}
	return out, nil
}

func proofsFromHex(hexes []string) ([]*rangeproof.RangeProof, func(), error) {
	var proofs []*rangeproof.RangeProof
	release := func() {
		for _, p := range proofs {
			p.Free()
		}
	}
	for _, s := range hexes {
		p, err := rangeproof.FromHex(s)
		if err != nil {
			release()
			return nil, nil, err
		}
		proofs = append(proofs, p)
	}
	return proofs, release, nil
}

func rangeProofVerifyCmd() *cobra.Command {
	var separate bool
	cmd := &cobra.Command{
		Use:   "verify <proof>...",
		Short: "Verify proofs as one batch, or one batch per proof",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			proofs, release, err := proofsFromHex(args)
			if err != nil {
				return err
			}
			defer release()

			if !separate {
				ok, err := rangeproof.Verify(proofs)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), ok)
				return nil
			}
			batches := make([][]*rangeproof.RangeProof, len(proofs))
			for i, p := range proofs {
				batches[i] = []*rangeproof.RangeProof{p}
			}
			res, err := rangeproof.VerifyBatches(context.Background(), batches)
			if err != nil {
				return err
			}
			for i, ok := range res {
				fmt.Fprintf(cmd.OutOrStdout(), "%d: %t\n", i, ok)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&separate, "separate", false, "verify each proof on its own")
	return cmd
}

func rangeProofRecoverCmd() *cobra.Command {
	var proof, nonce string
	cmd := &cobra.Command{
		Use:   "recover",
		Short: "Open a proof with its nonce",
		RunE: func(cmd *cobra.Command, args []string) error {
			rp, err := rangeproof.FromHex(proof)
			if err != nil {
				return err
			}
			defer rp.Free()
			n, err := curve.PointFromHex(nonce)
			if err != nil {
				return err
			}
			defer n.Free()

			res, err := rangeproof.RecoverAmounts([]rangeproof.RecoveryRequest{{Proof: rp, Nonce: n}})
			if err != nil {
				return err
			}
			r := res[0]
			if !r.IsSucc {
				fmt.Fprintln(cmd.OutOrStdout(), "not recoverable with this nonce")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "amount: %d\nmsg:    %s\n", r.Amount, r.Msg)
			return nil
		},
	}
	cmd.Flags().StringVar(&proof, "proof", "", "proof in hex")
	cmd.Flags().StringVar(&nonce, "nonce", "", "nonce point in hex")
	_ = cmd.MarkFlagRequired("proof")
	_ = cmd.MarkFlagRequired("nonce")
	return cmd
}
