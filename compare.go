package linked

import (
	"golang.org/x/exp/constraints"
)

// EqualFunc returns true if a and b have the same length and eq holds for each pair of elements
// at the same position.
func EqualFunc[T any](a, b *List[T], eq func(x, y T) bool) bool {
	if a.Len() != b.Len() {
		return false
	}
	ai, bi := a.All(), b.All()
	for {
		x, ok := ai.Next()
		if !ok {
			return true
		}
		y, _ := bi.Next()
		if !eq(x, y) {
			return false
		}
	}
}

// LessFunc returns true if a sorts before b lexicographically: the first position at which the
// two differ decides, and a proper prefix sorts before the longer List.
func LessFunc[T any](a, b *List[T], less func(x, y T) bool) bool {
	ai, bi := a.All(), b.All()
	for {
		x, aok := ai.Next()
		y, bok := bi.Next()
		if !aok || !bok {
			return !aok && bok
		}
		if less(x, y) {
			return true
		}
		if less(y, x) {
			return false
		}
	}
}

// Equal returns true if a and b hold equal elements in the same order.
func Equal[T comparable](a, b *List[T]) bool {
	return EqualFunc(a, b, func(x, y T) bool { return x == y })
}

// NotEqual is !Equal(a, b).
func NotEqual[T comparable](a, b *List[T]) bool { return !Equal(a, b) }

// Less returns true if a sorts lexicographically before b.
func Less[T constraints.Ordered](a, b *List[T]) bool { return LessFunc(a, b, orderedLess[T]) }

// Greater returns true if a sorts lexicographically after b.
func Greater[T constraints.Ordered](a, b *List[T]) bool { return Less(b, a) }

// LessEqual returns true if a does not sort after b.
func LessEqual[T constraints.Ordered](a, b *List[T]) bool { return !Greater(a, b) }

// GreaterEqual returns true if a does not sort before b.
func GreaterEqual[T constraints.Ordered](a, b *List[T]) bool { return !Less(a, b) }

// Compare returns -1 if a sorts before b, 1 if it sorts after, and 0 otherwise.
func Compare[T constraints.Ordered](a, b *List[T]) int {
	if Less(a, b) {
		return -1
	}
	if Less(b, a) {
		return 1
	}
	return 0
}

// Remove erases every element of l equal to value and returns how many were erased.
func Remove[T comparable](l *List[T], value T) int {
	return l.RemoveIf(func(x T) bool { return x == value })
}

// Sort sorts l in ascending order.
func Sort[T constraints.Ordered](l *List[T]) { l.SortFunc(orderedLess[T]) }

func orderedLess[T constraints.Ordered](a, b T) bool { return a < b }
