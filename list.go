// Package linked implements List, a doubly-linked sequence with bidirectional iterators, deep
// copies, equality and lexicographic ordering.
//
// Nodes live in a per-chain arena and are addressed by index, so an Iterator is a small value
// that can detect that the node it points to has been erased. Every node allocation and free can
// be reported to an Observer, which is how package leak verifies that no node is leaked or freed
// twice.
//
// Lists are not safe for concurrent use.
package linked

import (
	"fmt"
	"strings"

	"github.com/bradenaw/juniper/iterator"
	"github.com/bradenaw/juniper/xslices"
	"github.com/bradenaw/juniper/xsort"

	"github.com/bradenaw/linked/internal/arena"
)

// List is a doubly-linked sequence of values. The zero value is an empty List ready to use.
type List[T any] struct {
	c    *chain[T]
	opts options[T]
}

// chain is the node graph of one List. Swap exchanges whole chains, which is why iterators refer
// to the chain and not to the List.
type chain[T any] struct {
	nodes *arena.Arena[T]
	// head is the first node, or arena.End when the chain is empty.
	head arena.Index
	// tail is the sentinel's predecessor, or arena.None when the chain is empty.
	tail arena.Index
	size int
}

func newChain[T any](opts *options[T]) *chain[T] {
	return &chain[T]{
		nodes: arena.New[T](opts.limit, opts.observer),
		head:  arena.End,
		tail:  arena.None,
	}
}

// New returns an empty List.
func New[T any](opts ...Option[T]) *List[T] {
	l := &List[T]{}
	for _, opt := range opts {
		opt(&l.opts)
	}
	l.c = newChain(&l.opts)
	return l
}

// Of returns a List holding values in order.
func Of[T any](values ...T) *List[T] {
	l := New[T]()
	for _, value := range values {
		// Cannot fail without a cloner or a limit.
		_ = l.PushBack(value)
	}
	return l
}

// From returns a List holding copies of values in order.
func From[T any](values []T, opts ...Option[T]) (*List[T], error) {
	return FromIterator(iterator.Slice(values), opts...)
}

// FromIterator returns a List holding copies of the items of iter in order.
func FromIterator[T any](iter iterator.Iterator[T], opts ...Option[T]) (*List[T], error) {
	l := New(opts...)
	for v, ok := iter.Next(); ok; v, ok = iter.Next() {
		if err := l.PushBack(v); err != nil {
			l.Close()
			return nil, err
		}
	}
	return l, nil
}

func (l *List[T]) chain() *chain[T] {
	if l.c == nil {
		l.c = newChain(&l.opts)
	}
	return l.c
}

// Len returns the number of elements in l.
func (l *List[T]) Len() int {
	if l.c == nil {
		return 0
	}
	return l.c.size
}

// Empty returns true if l has no elements.
func (l *List[T]) Empty() bool { return l.Len() == 0 }

// Begin returns an iterator to the first element, or End() if l is empty.
func (l *List[T]) Begin() Iterator[T] {
	c := l.chain()
	return c.iter(c.head)
}

// End returns the past-the-end iterator. It can be decremented to reach the last element but
// never dereferenced.
func (l *List[T]) End() Iterator[T] {
	return l.chain().iter(arena.End)
}

// CBegin is Begin as a ConstIterator.
func (l *List[T]) CBegin() ConstIterator[T] { return l.Begin().Const() }

// CEnd is End as a ConstIterator.
func (l *List[T]) CEnd() ConstIterator[T] { return l.End().Const() }

// Front returns the first element.
func (l *List[T]) Front() (T, error) {
	if l.Empty() {
		var zero T
		return zero, emptyError("Front")
	}
	return l.Begin().Value(), nil
}

// Back returns the last element.
func (l *List[T]) Back() (T, error) {
	if l.Empty() {
		var zero T
		return zero, emptyError("Back")
	}
	return l.End().Prev().Value(), nil
}

// At returns the i-th element. This walks i nodes from the front.
func (l *List[T]) At(i int) (T, error) {
	it, err := l.seek("At", i)
	if err != nil {
		var zero T
		return zero, err
	}
	return it.Value(), nil
}

// SetAt replaces the i-th element with value, copied the way Insert copies.
func (l *List[T]) SetAt(i int, value T) error {
	it, err := l.seek("SetAt", i)
	if err != nil {
		return err
	}
	v, err := l.opts.clone(value)
	if err != nil {
		return err
	}
	it.Set(v)
	return nil
}

func (l *List[T]) seek(op string, i int) (Iterator[T], error) {
	if i < 0 || i >= l.Len() {
		return Iterator[T]{}, indexError(op, i, l.Len())
	}
	it := l.Begin()
	for ; i > 0; i-- {
		it = it.Next()
	}
	return it, nil
}

// Insert adds a copy of value immediately before pos and returns an iterator to it. pos may be
// End() to append or Begin() to prepend.
//
// If copying value fails or l is at its limit, the error is returned and l is unchanged.
func (l *List[T]) Insert(pos Iterator[T], value T) (Iterator[T], error) {
	c := l.chain()
	c.check(pos)

	v, err := l.opts.clone(value)
	if err != nil {
		return Iterator[T]{}, err
	}
	prev := c.prevOf(pos.slot)
	i, err := c.nodes.Alloc(v, prev, pos.slot)
	if err != nil {
		return Iterator[T]{}, err
	}

	if pos.slot == c.head {
		c.head = i
	} else {
		c.nodes.Node(prev).Next = i
	}
	if pos.slot == arena.End {
		c.tail = i
	} else {
		c.nodes.Node(pos.slot).Prev = i
	}
	c.size++
	return c.iter(i), nil
}

// Erase removes the element at pos and returns an iterator to the element that followed it, or
// End() if it was the last. pos, and every copy of it, is invalid afterwards.
//
// Erase panics if pos is End() or no longer refers to an element of l.
func (l *List[T]) Erase(pos Iterator[T]) Iterator[T] {
	c := l.chain()
	if pos.slot == arena.End {
		panic("linked: Erase called with End()")
	}
	c.check(pos)

	node := c.nodes.Node(pos.slot)
	prev, next := node.Prev, node.Next
	if pos.slot == c.head {
		c.head = next
	} else {
		c.nodes.Node(prev).Next = next
	}
	if next == arena.End {
		c.tail = prev
	} else {
		c.nodes.Node(next).Prev = prev
	}
	c.size--
	c.nodes.Free(pos.slot)
	return c.iter(next)
}

// PushBack appends a copy of value.
func (l *List[T]) PushBack(value T) error {
	_, err := l.Insert(l.End(), value)
	return err
}

// PushFront prepends a copy of value.
func (l *List[T]) PushFront(value T) error {
	_, err := l.Insert(l.Begin(), value)
	return err
}

// PopBack removes the last element. It does nothing if l is empty.
func (l *List[T]) PopBack() {
	if l.Empty() {
		return
	}
	l.Erase(l.End().Prev())
}

// PopFront removes the first element. It does nothing if l is empty.
func (l *List[T]) PopFront() {
	if l.Empty() {
		return
	}
	l.Erase(l.Begin())
}

// RemoveIf erases every element for which pred returns true, keeping the order of the rest, and
// returns how many were erased.
func (l *List[T]) RemoveIf(pred func(T) bool) int {
	removed := 0
	for it := l.Begin(); !it.IsEnd(); {
		if pred(it.Value()) {
			it = l.Erase(it)
			removed++
		} else {
			it = it.Next()
		}
	}
	return removed
}

// Resize grows l to n elements by appending zero values, or shrinks it by popping from the back.
func (l *List[T]) Resize(n int) error {
	var zero T
	return l.ResizeFill(n, zero)
}

// ResizeFill grows l to n elements by appending copies of fill, or shrinks it by popping from the
// back. If growing fails partway, the elements appended so far are removed again.
func (l *List[T]) ResizeFill(n int, fill T) error {
	if n < 0 {
		return indexError("Resize", n, l.Len())
	}
	before := l.Len()
	for l.Len() < n {
		if err := l.PushBack(fill); err != nil {
			for l.Len() > before {
				l.PopBack()
			}
			return err
		}
	}
	for l.Len() > n {
		l.PopBack()
	}
	return nil
}

// Clear erases every element.
func (l *List[T]) Clear() {
	for !l.Empty() {
		l.Erase(l.Begin())
	}
}

// Close frees every node of l. Afterwards l is empty and may be reused.
//
// Close panics if any node is still allocated once the chain has been erased, which means the
// chain had lost track of it.
func (l *List[T]) Close() {
	l.Clear()
	if l.c != nil {
		if stray := l.c.nodes.Slots(); len(stray) > 0 {
			panic(fmt.Sprintf("linked: %d nodes not reachable from the chain: %v", len(stray), stray))
		}
	}
	l.c = nil
}

// Swap exchanges the contents of l and other without touching any node. Iterators keep referring
// to the same nodes, which now belong to the other List.
func (l *List[T]) Swap(other *List[T]) {
	l.chain()
	other.chain()
	l.c, other.c = other.c, l.c
}

// Clone returns a List with copies of every element of l, in order, and the same options as l.
func (l *List[T]) Clone() (*List[T], error) {
	out := &List[T]{opts: l.opts}
	if err := out.appendAll(l); err != nil {
		out.Close()
		return nil, err
	}
	return out, nil
}

// Assign replaces the contents of l with copies of the elements of src. If any copy fails l is
// left as it was.
func (l *List[T]) Assign(src *List[T]) error {
	tmp := &List[T]{opts: l.opts}
	defer tmp.Close()
	if err := tmp.appendAll(src); err != nil {
		return err
	}
	l.Swap(tmp)
	return nil
}

func (l *List[T]) appendAll(src *List[T]) error {
	it := src.All()
	for v, ok := it.Next(); ok; v, ok = it.Next() {
		if err := l.PushBack(v); err != nil {
			return err
		}
	}
	return nil
}

// SortFunc sorts l so that less(l[i], l[i-1]) is false for every i. Equal elements keep their
// relative order. Values move between nodes; no node is relinked, allocated or freed.
func (l *List[T]) SortFunc(less func(a, b T) bool) {
	values := l.Slice()
	xsort.SliceStable(values, less)
	i := 0
	for it := l.Begin(); !it.IsEnd(); it = it.Next() {
		it.Set(values[i])
		i++
	}
}

// All returns an iterator over the elements of l from front to back. l must not be modified while
// the iterator is in use.
func (l *List[T]) All() iterator.Iterator[T] {
	c := l.chain()
	return &walker[T]{c: c, slot: c.head}
}

// Backward returns an iterator over the elements of l from back to front. l must not be modified
// while the iterator is in use.
func (l *List[T]) Backward() iterator.Iterator[T] {
	c := l.chain()
	return &walker[T]{c: c, slot: c.tail, backward: true}
}

// Slice returns the elements of l in order.
func (l *List[T]) Slice() []T {
	return iterator.Collect(l.All())
}

// String renders l as List[a, b, c].
func (l *List[T]) String() string {
	elems := xslices.Map(l.Slice(), func(v T) string { return fmt.Sprint(v) })
	return "List[" + strings.Join(elems, ", ") + "]"
}

func (c *chain[T]) iter(i arena.Index) Iterator[T] {
	return Iterator[T]{c: c, slot: i, gen: c.nodes.Gen(i)}
}

func (c *chain[T]) prevOf(i arena.Index) arena.Index {
	if i == arena.End {
		return c.tail
	}
	return c.nodes.Node(i).Prev
}

func (c *chain[T]) check(it Iterator[T]) {
	if it.c != c {
		panic("linked: iterator does not belong to this List")
	}
	if it.slot != arena.End && !c.nodes.Live(it.slot, it.gen) {
		panic("linked: use of erased iterator")
	}
}

type walker[T any] struct {
	c        *chain[T]
	slot     arena.Index
	backward bool
}

func (w *walker[T]) Next() (T, bool) {
	if w.slot < 0 {
		var zero T
		return zero, false
	}
	node := w.c.nodes.Node(w.slot)
	if w.backward {
		w.slot = node.Prev
	} else {
		w.slot = node.Next
	}
	return node.Value, true
}
