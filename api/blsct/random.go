package blsct

import (
	"crypto/rand"

	"github.com/pkg/errors"
)

// Random fills a statically sized object of kind K with random bytes and
// places it in native memory through the library allocator.
func Random[K Kind]() (*Handle[K], error) {
	lib, err := Lib()
	if err != nil {
		return nil, err
	}
	k := kindOf[K]()
	b := make([]byte, k.Size())
	if _, err := rand.Read(b); err != nil {
		return nil, errors.Wrapf(err, "%s: reading randomness", k.Name())
	}
	p := lib.Alloc(b)
	if p.IsNull() {
		return nil, allocationFailure(k.Name())
	}
	return FromRawStatic[K](lib, p), nil
}
