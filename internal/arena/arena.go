// Package arena is the node storage behind linked.List: a slot map of list nodes addressed by
// stable indices, with generation tags so that handles to freed slots can be told apart from
// handles to whatever was later allocated in the same slot.
package arena

import (
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/bits-and-blooms/bitset"
)

// Index addresses a slot in an Arena. Non-negative values are real slots, the negative values
// None and End are markers.
type Index int32

const (
	// None means there is no node, e.g. the predecessor of the first node in a chain.
	None Index = -1
	// End is the end-of-sequence sentinel. It never has a slot and never carries a value.
	End Index = -2
)

// ErrFull is returned by Alloc when the arena already holds as many live nodes as its limit.
var ErrFull = errors.New("arena: node limit reached")

// NodeID is the identity of one node allocation. It is unique across every arena in the process,
// and a slot that is freed and reused gets a new identity because its generation changes.
type NodeID struct {
	Arena uint64
	Slot  uint32
	Gen   uint32
}

// Less orders NodeIDs by arena, then slot, then generation.
func (id NodeID) Less(other NodeID) bool {
	if id.Arena != other.Arena {
		return id.Arena < other.Arena
	}
	if id.Slot != other.Slot {
		return id.Slot < other.Slot
	}
	return id.Gen < other.Gen
}

func (id NodeID) String() string {
	return fmt.Sprintf("%d:%d.%d", id.Arena, id.Slot, id.Gen)
}

// Observer is told about every node allocation and every node free.
type Observer interface {
	// RecordAllocated is called immediately after a node has been allocated.
	RecordAllocated(NodeID)
	// RecordFreed is called immediately before a node is released.
	RecordFreed(NodeID)
}

// Node is one slot's contents. Prev and Next are plain indices and carry no ownership.
type Node[T any] struct {
	Value T
	Prev  Index
	Next  Index

	gen uint32
}

var serial atomic.Uint64

// Arena holds the nodes for a single chain.
//
// Pointers returned by Node are only valid until the next call to Alloc, which may grow the
// backing slice.
type Arena[T any] struct {
	id    uint64
	nodes []Node[T]
	free  []Index
	live  *bitset.BitSet
	limit int
	obs   Observer
}

// New returns an empty arena. A limit of zero or less means unlimited. obs may be nil.
func New[T any](limit int, obs Observer) *Arena[T] {
	return &Arena[T]{
		id:    serial.Add(1),
		live:  bitset.New(0),
		limit: limit,
		obs:   obs,
	}
}

// Len returns the number of live nodes.
func (a *Arena[T]) Len() int { return int(a.live.Count()) }

// Alloc stores value in a fresh node linked to prev and next and returns its index. On failure
// nothing has been allocated and the observer is not told anything.
func (a *Arena[T]) Alloc(value T, prev Index, next Index) (Index, error) {
	if a.limit > 0 && a.Len() >= a.limit {
		return None, ErrFull
	}

	var i Index
	if n := len(a.free); n > 0 {
		i = a.free[n-1]
		a.free = a.free[:n-1]
	} else {
		i = Index(len(a.nodes))
		a.nodes = append(a.nodes, Node[T]{})
	}

	node := &a.nodes[i]
	node.Value = value
	node.Prev = prev
	node.Next = next
	a.live.Set(uint(i))

	if a.obs != nil {
		a.obs.RecordAllocated(a.ID(i))
	}
	return i, nil
}

// Free releases the node at i. Freeing a slot that is not live panics.
func (a *Arena[T]) Free(i Index) {
	if !a.isLive(i) {
		panic(fmt.Sprintf("arena: double free of slot %d", i))
	}
	if a.obs != nil {
		a.obs.RecordFreed(a.ID(i))
	}

	node := &a.nodes[i]
	var zero T
	node.Value = zero
	node.Prev = None
	node.Next = None
	node.gen++
	a.live.Clear(uint(i))
	a.free = append(a.free, i)
}

// Node returns the live node at i. It panics if i is not live.
func (a *Arena[T]) Node(i Index) *Node[T] {
	if !a.isLive(i) {
		panic(fmt.Sprintf("arena: slot %d is not live", i))
	}
	return &a.nodes[i]
}

// Gen returns the current generation of slot i.
func (a *Arena[T]) Gen(i Index) uint32 {
	if i < 0 || int(i) >= len(a.nodes) {
		return 0
	}
	return a.nodes[i].gen
}

// Live reports whether slot i is live and still holds the allocation made at generation gen.
func (a *Arena[T]) Live(i Index, gen uint32) bool {
	return a.isLive(i) && a.nodes[i].gen == gen
}

// ID returns the identity of the allocation currently in slot i.
func (a *Arena[T]) ID(i Index) NodeID {
	return NodeID{Arena: a.id, Slot: uint32(i), Gen: a.Gen(i)}
}

// Slots returns the indices of every live slot in increasing order.
func (a *Arena[T]) Slots() []Index {
	out := make([]Index, 0, a.Len())
	for i, ok := a.live.NextSet(0); ok; i, ok = a.live.NextSet(i + 1) {
		out = append(out, Index(i))
	}
	return out
}

func (a *Arena[T]) isLive(i Index) bool {
	return i >= 0 && int(i) < len(a.nodes) && a.live.Test(uint(i))
}
