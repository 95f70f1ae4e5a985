package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/nav-io/libblsct-bindings/api/curve"
	"github.com/nav-io/libblsct-bindings/api/keys"
	"github.com/nav-io/libblsct-bindings/api/rangeproof"
	"github.com/nav-io/libblsct-bindings/api/token"
	"github.com/nav-io/libblsct-bindings/api/tx"
)

type txOptions struct {
	inAmount  uint64
	outAmount uint64
	memo      string
	seed      string
}

func txCmd() *cobra.Command {
	opts := &txOptions{}
	cmd := &cobra.Command{
		Use:   "tx",
		Short: "Build a transaction from a made-up input and open the payment as its recipient",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTx(cmd.OutOrStdout(), opts)
		},
	}
	cmd.Flags().Uint64Var(&opts.inAmount, "in", 1000000, "amount of the spent output")
	cmd.Flags().Uint64Var(&opts.outAmount, "out", 10000, "amount paid to the recipient")
	cmd.Flags().StringVar(&opts.memo, "memo", "navio", "memo sealed into the payment")
	cmd.Flags().StringVar(&opts.seed, "seed", "", "recipient seed in hex (random when empty)")
	return cmd
}

func runTx(out io.Writer, opts *txOptions) error {
	recipient, err := newWallet(opts.seed)
	if err != nil {
		return err
	}
	defer recipient.Free()
	dest, err := recipient.subAddress(0, 0)
	if err != nil {
		return err
	}
	defer dest.Free()

	tok, err := token.Default()
	if err != nil {
		return err
	}
	defer tok.Free()
	prevId, err := tx.RandomCTxId()
	if err != nil {
		return err
	}
	defer prevId.Free()
	outPoint, err := tx.NewOutPoint(prevId, 0)
	if err != nil {
		return err
	}
	defer outPoint.Free()
	spendKey, err := curve.RandomScalar()
	if err != nil {
		return err
	}
	defer spendKey.Free()

	in, err := tx.NewTxIn(tx.TxInParams{
		Amount:      opts.inAmount,
		Gamma:       100,
		SpendingKey: spendKey,
		TokenId:     tok,
		OutPoint:    outPoint,
	})
	if err != nil {
		return err
	}
	defer in.Free()
	payment, err := tx.NewTxOut(tx.TxOutParams{
		Destination: dest,
		Amount:      opts.outAmount,
		Memo:        opts.memo,
		TokenId:     tok,
		OutputType:  tx.Normal,
	})
	if err != nil {
		return err
	}
	defer payment.Free()

	ctx, err := tx.Build([]*tx.TxIn{in}, []*tx.TxOut{payment})
	if err != nil {
		return err
	}
	defer ctx.Free()

	id, err := ctx.Id()
	if err != nil {
		return err
	}
	defer id.Free()
	fmt.Fprintf(out, "ctx id: %s\n", id)

	outs := ctx.Outs()
	for i := 0; i < outs.Len(); i++ {
		o, err := outs.At(i)
		if err != nil {
			return err
		}
		line, err := describeOutput(o, recipient)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "out %d: value=%d %s\n", i, o.Value(), line)
	}
	return nil
}

// describeOutput tries to open o as the recipient would: compare the view
// tag first and recover the range proof only on a match.
func describeOutput(o *tx.CTxOut, w *wallet) (string, error) {
	rp, err := o.RangeProof()
	if err != nil {
		return "fee", nil
	}
	defer rp.Free()

	bk := o.BlindingKey()
	defer bk.Free()
	blindingPub := curve.PublicKeyFromPoint(bk)
	defer blindingPub.Free()

	if keys.CalcViewTag(blindingPub, w.view) != uint64(o.ViewTag()) {
		return "not ours", nil
	}
	nonce := keys.CalcNonce(blindingPub, w.view)
	defer nonce.Free()
	res, err := rangeproof.RecoverAmounts([]rangeproof.RecoveryRequest{{Proof: rp, Nonce: nonce}})
	if err != nil {
		return "", err
	}
	if !res[0].IsSucc {
		return "not ours", nil
	}
	return fmt.Sprintf("ours amount=%d memo=%q", res[0].Amount, res[0].Msg), nil
}
