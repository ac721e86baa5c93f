// Package leak records node allocations and frees reported by linked.List and finds nodes that
// were never freed or were freed more than once.
package leak

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/bradenaw/juniper/xsort"

	"github.com/bradenaw/linked/internal/arena"
)

// NodeID identifies one node allocation.
type NodeID = arena.NodeID

// Observer receives node allocation and free events. *Tracker implements it.
type Observer = arena.Observer

// Tracker is an Observer that remembers every allocated and freed node.
//
// Tracker's methods may be called concurrently, so one Tracker can be shared by Lists used from
// different goroutines.
type Tracker struct {
	m sync.Mutex

	allocated   map[NodeID]struct{}
	freed       map[NodeID]struct{}
	doubleFreed []NodeID
	unknown     []NodeID
}

var _ Observer = &Tracker{}

func NewTracker() *Tracker {
	return &Tracker{
		allocated: make(map[NodeID]struct{}),
		freed:     make(map[NodeID]struct{}),
	}
}

func (t *Tracker) RecordAllocated(id NodeID) {
	t.m.Lock()
	defer t.m.Unlock()
	t.allocated[id] = struct{}{}
}

// RecordFreed records that id was freed. A List never frees the same node twice (its arena panics
// first), so double and unknown frees only show up when other code feeds events to t.
func (t *Tracker) RecordFreed(id NodeID) {
	t.m.Lock()
	defer t.m.Unlock()
	if _, ok := t.allocated[id]; !ok {
		t.unknown = append(t.unknown, id)
		return
	}
	if _, ok := t.freed[id]; ok {
		t.doubleFreed = append(t.doubleFreed, id)
		return
	}
	t.freed[id] = struct{}{}
}

// Report is a snapshot of a Tracker.
type Report struct {
	Allocated int
	Freed     int
	// Leaked holds nodes that were allocated and never freed, in increasing order.
	Leaked []NodeID
	// DoubleFreed holds nodes that were freed more than once, in the order the extra frees
	// happened.
	DoubleFreed []NodeID
	// Unknown holds nodes that were freed without ever being allocated.
	Unknown []NodeID
}

// Clean returns true if nothing leaked and every free matched exactly one allocation.
func (r Report) Clean() bool {
	return len(r.Leaked) == 0 && len(r.DoubleFreed) == 0 && len(r.Unknown) == 0
}

// Report returns the current state of t.
func (t *Tracker) Report() Report {
	t.m.Lock()
	defer t.m.Unlock()

	var leaked []NodeID
	for id := range t.allocated {
		if _, ok := t.freed[id]; !ok {
			leaked = append(leaked, id)
		}
	}
	xsort.Slice(leaked, NodeID.Less)

	return Report{
		Allocated:   len(t.allocated),
		Freed:       len(t.freed),
		Leaked:      leaked,
		DoubleFreed: append([]NodeID(nil), t.doubleFreed...),
		Unknown:     append([]NodeID(nil), t.unknown...),
	}
}

// Err returns an *Error describing the problems in t's Report, or nil if it is clean.
func (t *Tracker) Err() error {
	r := t.Report()
	if r.Clean() {
		return nil
	}
	return &Error{Report: r}
}

// Reset forgets everything t has recorded.
func (t *Tracker) Reset() {
	t.m.Lock()
	defer t.m.Unlock()
	t.allocated = make(map[NodeID]struct{})
	t.freed = make(map[NodeID]struct{})
	t.doubleFreed = nil
	t.unknown = nil
}

// Error is returned by Tracker.Err.
type Error struct {
	Report Report
}

func (e *Error) Error() string {
	var parts []string
	if n := len(e.Report.Leaked); n > 0 {
		parts = append(parts, fmt.Sprintf("%d memory leaks found %v", n, e.Report.Leaked))
	}
	if n := len(e.Report.DoubleFreed); n > 0 {
		parts = append(parts, fmt.Sprintf("%d double frees %v", n, e.Report.DoubleFreed))
	}
	if n := len(e.Report.Unknown); n > 0 {
		parts = append(parts, fmt.Sprintf("%d frees of unknown nodes %v", n, e.Report.Unknown))
	}
	return "leak: " + strings.Join(parts, ", ")
}

type tee []Observer

// Tee returns an Observer that forwards every event to each of observers in order.
func Tee(observers ...Observer) Observer {
	return tee(observers)
}

func (t tee) RecordAllocated(id NodeID) {
	for _, o := range t {
		o.RecordAllocated(id)
	}
}

func (t tee) RecordFreed(id NodeID) {
	for _, o := range t {
		o.RecordFreed(id)
	}
}

type logger struct {
	l *slog.Logger
}

// Logger returns an Observer that logs every event to l at debug level.
func Logger(l *slog.Logger) Observer {
	return logger{l: l}
}

func (o logger) RecordAllocated(id NodeID) {
	o.l.Debug("node allocated", slog.String("node", id.String()))
}

func (o logger) RecordFreed(id NodeID) {
	o.l.Debug("node freed", slog.String("node", id.String()))
}
