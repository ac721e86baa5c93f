package linked

import (
	"errors"
	"fmt"

	"github.com/bradenaw/linked/internal/arena"
)

var (
	// ErrOutOfRange is matched by every *RangeError.
	ErrOutOfRange = errors.New("linked: out of range")
	// ErrFull is returned when inserting into a List that is at its WithLimit.
	ErrFull = arena.ErrFull
)

// RangeError is returned by accessors called on an empty List or with an index outside
// [0, Len()).
type RangeError struct {
	// Op is the name of the method that failed.
	Op string
	// Index is the offending index. It is meaningless for Front and Back.
	Index int
	// Len is the length of the List at the time of the call.
	Len int

	indexed bool
}

func emptyError(op string) error {
	return &RangeError{Op: op}
}

func indexError(op string, i int, n int) error {
	return &RangeError{Op: op, Index: i, Len: n, indexed: true}
}

func (e *RangeError) Error() string {
	switch {
	case !e.indexed:
		return fmt.Sprintf("linked: %s called on empty List", e.Op)
	case e.Index < 0:
		return fmt.Sprintf("linked: %s: index out of bounds: %d is negative", e.Op, e.Index)
	default:
		return fmt.Sprintf(
			"linked: %s: index out of bounds: %d is >= Len() (%d)",
			e.Op,
			e.Index,
			e.Len,
		)
	}
}

func (e *RangeError) Unwrap() error { return ErrOutOfRange }
