package linked

import (
	"fmt"

	"github.com/bradenaw/linked/internal/arena"
)

// Iterator points at one element of a List, or at its End. Iterators are values: Next and Prev
// return a new Iterator and leave the receiver alone. Two iterators are equal if they point at the
// same node, so == works as well as Equal.
//
// An iterator is invalidated when its element is erased. Dereferencing or moving an invalidated
// iterator panics.
type Iterator[T any] struct {
	c    *chain[T]
	slot arena.Index
	gen  uint32
}

func (it Iterator[T]) node() *arena.Node[T] {
	if it.c == nil {
		panic("linked: use of zero Iterator")
	}
	if it.slot == arena.End {
		panic("linked: dereference of End()")
	}
	if !it.c.nodes.Live(it.slot, it.gen) {
		panic("linked: use of erased iterator")
	}
	return it.c.nodes.Node(it.slot)
}

// Value returns the element it points at.
func (it Iterator[T]) Value() T { return it.node().Value }

// Set replaces the element it points at.
func (it Iterator[T]) Set(value T) { it.node().Value = value }

// IsEnd returns true if it is the End() of its List.
func (it Iterator[T]) IsEnd() bool { return it.slot == arena.End }

// Next returns an iterator to the following element, or End() after the last element.
func (it Iterator[T]) Next() Iterator[T] {
	if it.IsEnd() {
		panic("linked: Next called on End()")
	}
	return it.c.iter(it.node().Next)
}

// Prev returns an iterator to the preceding element. Prev of End() is the last element. Calling
// Prev on the first element, or on End() of an empty List, panics.
func (it Iterator[T]) Prev() Iterator[T] {
	var prev arena.Index
	if it.IsEnd() {
		if it.c == nil {
			panic("linked: use of zero Iterator")
		}
		prev = it.c.tail
	} else {
		prev = it.node().Prev
	}
	if prev == arena.None {
		panic("linked: Prev called on the first element")
	}
	return it.c.iter(prev)
}

// Equal returns true if it and other point at the same node.
func (it Iterator[T]) Equal(other Iterator[T]) bool { return it == other }

// Const returns a read-only view of it.
func (it Iterator[T]) Const() ConstIterator[T] { return ConstIterator[T]{it: it} }

func (it Iterator[T]) String() string {
	if it.IsEnd() {
		return "List.Iterator{End}"
	}
	return fmt.Sprintf("List.Iterator{%d}", it.slot)
}

// ConstIterator is an Iterator that cannot modify the element it points at.
type ConstIterator[T any] struct {
	it Iterator[T]
}

// Value returns the element it points at.
func (it ConstIterator[T]) Value() T { return it.it.Value() }

// IsEnd returns true if it is the End() of its List.
func (it ConstIterator[T]) IsEnd() bool { return it.it.IsEnd() }

// Next returns an iterator to the following element.
func (it ConstIterator[T]) Next() ConstIterator[T] { return it.it.Next().Const() }

// Prev returns an iterator to the preceding element.
func (it ConstIterator[T]) Prev() ConstIterator[T] { return it.it.Prev().Const() }

// Equal returns true if it and other point at the same node.
func (it ConstIterator[T]) Equal(other ConstIterator[T]) bool { return it.it == other.it }

func (it ConstIterator[T]) String() string {
	if it.IsEnd() {
		return "List.ConstIterator{End}"
	}
	return fmt.Sprintf("List.ConstIterator{%d}", it.it.slot)
}
