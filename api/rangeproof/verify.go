package rangeproof

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/nav-io/libblsct-bindings/api/blsct"
	"github.com/nav-io/libblsct-bindings/internal/ffi"
)

// Verify checks all proofs in one batch. An empty batch verifies.
func Verify(proofs []*RangeProof) (bool, error) {
	lib, err := blsct.Lib()
	if err != nil {
		return false, err
	}
	vec := blsct.FromRawSized[proofVecKind](lib, lib.CreateRangeProofVec(), 0, ffi.Library.DeleteRangeProofVec)
	defer vec.Free()
	for _, p := range proofs {
		lib.AddToRangeProofVec(vec.Ptr(), p.Ptr(), p.Size())
	}
	return blsct.TakeBoolEnvelope(lib, "verify_range_proofs", lib.VerifyRangeProofs(vec.Ptr()))
}

// VerifyBatches verifies independent batches concurrently and returns one
// result per batch. Each batch gets its own native vector.
func VerifyBatches(ctx context.Context, batches [][]*RangeProof) ([]bool, error) {
	results := make([]bool, len(batches))
	g, ctx := errgroup.WithContext(ctx)
	for i, batch := range batches {
		i, batch := i, batch
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			ok, err := Verify(batch)
			if err != nil {
				return err
			}
			results[i] = ok
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
