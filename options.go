package linked

import (
	"github.com/bradenaw/linked/internal/arena"
)

// Observer is told about every node a List allocates and frees. See package leak for an
// implementation that reports leaked and double-freed nodes.
type Observer = arena.Observer

// NodeID identifies one node allocation.
type NodeID = arena.NodeID

// Option configures a List.
type Option[T any] func(*options[T])

type options[T any] struct {
	observer Observer
	cloner   func(T) (T, error)
	limit    int
}

// WithObserver attaches o to every node allocation and free made by the List.
func WithObserver[T any](o Observer) Option[T] {
	return func(opts *options[T]) {
		opts.observer = o
	}
}

// WithCloner sets the function used to copy a value into the List. Without it values are stored
// by plain assignment. If clone returns an error the operation storing the value fails with that
// error and the List is left as it was.
func WithCloner[T any](clone func(T) (T, error)) Option[T] {
	return func(opts *options[T]) {
		opts.cloner = clone
	}
}

// WithLimit caps the number of nodes the List may hold. Inserting past the limit fails with
// ErrFull.
func WithLimit[T any](n int) Option[T] {
	return func(opts *options[T]) {
		opts.limit = n
	}
}

func (o *options[T]) clone(value T) (T, error) {
	if o.cloner == nil {
		return value, nil
	}
	return o.cloner(value)
}
