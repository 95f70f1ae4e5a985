package blsct

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/nav-io/libblsct-bindings/internal/ffi"
	"github.com/nav-io/libblsct-bindings/internal/log"
	"github.com/nav-io/libblsct-bindings/internal/metrics"
)

// Sentinels matched by errors.Is against the typed failures below.
var (
	ErrAllocation = errors.New("blsct: foreign allocation failed")
	ErrDomain     = errors.New("blsct: foreign call rejected its input")
	ErrEncoding   = errors.New("blsct: string does not cross the foreign boundary")
	ErrIndex      = errors.New("blsct: index out of range")
)

// AllocationFailure is returned when the library hands back a null result
// envelope or cannot allocate memory for a result.
type AllocationFailure struct {
	Op string
}

func (e *AllocationFailure) Error() string {
	return fmt.Sprintf("%s: foreign allocation failed", e.Op)
}

func (e *AllocationFailure) Unwrap() error { return ErrAllocation }

// DomainFailure carries the non-zero status of a result envelope. Index is
// meaningful only when HasIndex is set, which the transaction builder does
// for input and output amount errors.
type DomainFailure struct {
	Op       string
	Status   ffi.Status
	Index    int
	HasIndex bool
}

func (e *DomainFailure) Error() string {
	if e.HasIndex {
		return fmt.Sprintf("%s: %s (status %d) at index %d", e.Op, e.Status, uint8(e.Status), e.Index)
	}
	return fmt.Sprintf("%s: %s (status %d)", e.Op, e.Status, uint8(e.Status))
}

func (e *DomainFailure) Unwrap() error { return ErrDomain }

// EncodingFailure is returned when text cannot be passed to the library as
// a C string or a C string coming back is not valid UTF-8.
type EncodingFailure struct {
	Op     string
	Reason string
}

func (e *EncodingFailure) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Reason)
}

func (e *EncodingFailure) Unwrap() error { return ErrEncoding }

// IndexOutOfRange is returned when an element of a foreign collection is
// requested past its end.
type IndexOutOfRange struct {
	Op    string
	Index int
	Len   int
}

func (e *IndexOutOfRange) Error() string {
	return fmt.Sprintf("%s: index %d out of range [0, %d)", e.Op, e.Index, e.Len)
}

func (e *IndexOutOfRange) Unwrap() error { return ErrIndex }

// OutOfRange reports index i of a collection holding n elements.
func OutOfRange(op string, i, n int) error {
	return errors.WithStack(&IndexOutOfRange{Op: op, Index: i, Len: n})
}

// ContractViolation is the panic value raised when the caller or the library
// breaks the ownership contract: a null pointer where one was promised, a
// released handle being used, a view outliving its transaction.
type ContractViolation struct {
	Op  string
	Msg string
}

func (e *ContractViolation) Error() string {
	return fmt.Sprintf("%s: contract violation: %s", e.Op, e.Msg)
}

// Violate logs and panics with a *ContractViolation.
func Violate(op, format string, args ...any) {
	cv := &ContractViolation{Op: op, Msg: fmt.Sprintf(format, args...)}
	metrics.Failure("contract")
	log.Errorw("contract violation", "op", op, "msg", cv.Msg)
	panic(cv)
}

func allocationFailure(op string) error {
	metrics.Failure("allocation")
	return errors.WithStack(&AllocationFailure{Op: op})
}

func domainFailure(op string, status ffi.Status) error {
	metrics.Failure("domain")
	log.Debugw("foreign call failed", "op", op, "status", uint8(status))
	return errors.WithStack(&DomainFailure{Op: op, Status: status})
}

func encodingFailure(op, reason string) error {
	metrics.Failure("encoding")
	return errors.WithStack(&EncodingFailure{Op: op, Reason: reason})
}
