package kernel

import (
	"math"
	"strconv"

	"dispatch/internal/pkg/errs"
)

// ID identifies a courier or an order. Identifiers are allocated by the owning
// repository, start at 1 and are never reused.
//
// The zero value is not a valid identifier and is used as "no id" by callers that
// need an optional reference without a pointer.
//
// Example:
//
//	id, err := kernel.NewID(42)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(id) // 42
type ID int64

// NewID validates a raw identifier coming from a request or a storage row.
//
// Returns ErrValueIsOutOfRange when raw is not positive.
func NewID(raw int64) (ID, error) {
	id := ID(raw)
	if err := id.Validate(); err != nil {
		return 0, err
	}
	return id, nil
}

// MustID is NewID for identifiers known to be valid, such as literals in tests.
func MustID(raw int64) ID {
	id, err := NewID(raw)
	if err != nil {
		panic(err)
	}
	return id
}

// Validate reports whether the identifier is in the allocatable range.
func (id ID) Validate() error {
	if id < 1 {
		return errs.NewValueIsOutOfRangeError("id", int64(id), int64(1), int64(math.MaxInt64))
	}
	return nil
}

// IsZero is true for the "no id" value.
func (id ID) IsZero() bool {
	return id == 0
}

// Int64 returns the identifier as stored and serialized.
func (id ID) Int64() int64 {
	return int64(id)
}

func (id ID) String() string {
	return strconv.FormatInt(int64(id), 10)
}
