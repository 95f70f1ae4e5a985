// Package tx builds confidential transactions.
//
// Inputs and outputs are described with TxIn and TxOut, handed to Build,
// and come back as a signed CTx. Build adds a change output per token and
// a trailing fee output. Inputs and outputs of the built transaction are
// read through views that borrow from the CTx:
//
//	ctx, err := tx.Build([]*tx.TxIn{in}, []*tx.TxOut{out})
//	if err != nil {
//	    var df *blsct.DomainFailure
//	    if errors.As(err, &df) && df.HasIndex {
//	        // df.Index names the offending input or output
//	    }
//	}
//	defer ctx.Free()
//	for i := 0; i < ctx.Outs().Len(); i++ {
//	    out, _ := ctx.Outs().At(i)
//	    _ = out.Value()
//	}
package tx
