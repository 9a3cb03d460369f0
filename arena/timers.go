package arena

import (
	"container/heap"
	"time"

	"github.com/yohamta/donburi"
)

// Effect is what a timer does to its orb when it fires.
type Effect int

const (
	ClearSpawned Effect = iota
	EnableReform
)

func (e Effect) String() string {
	switch e {
	case ClearSpawned:
		return "clear-spawned"
	case EnableReform:
		return "enable-reform"
	}
	return "unknown"
}

// Timer is a one-shot effect scheduled against a specific entity. Entity
// carries donburi's generation, so a recycled handle never matches.
type Timer struct {
	FireAt time.Duration
	OrbID  string
	Entity donburi.Entity
	Effect Effect

	seq uint64
}

// Timers is a min-heap ordered by fire time, then scheduling order.
type Timers struct {
	h   timerHeap
	seq uint64
}

func NewTimers() *Timers {
	return &Timers{}
}

func (t *Timers) Schedule(fireAt time.Duration, orbID string, e donburi.Entity, effect Effect) {
	t.seq++
	heap.Push(&t.h, Timer{
		FireAt: fireAt,
		OrbID:  orbID,
		Entity: e,
		Effect: effect,
		seq:    t.seq,
	})
}

// PopDue removes and returns every timer with FireAt <= now, earliest first.
func (t *Timers) PopDue(now time.Duration) []Timer {
	var due []Timer
	for len(t.h) > 0 && t.h[0].FireAt <= now {
		due = append(due, heap.Pop(&t.h).(Timer))
	}
	return due
}

func (t *Timers) Len() int {
	return len(t.h)
}

// Next returns the earliest pending fire time.
func (t *Timers) Next() (time.Duration, bool) {
	if len(t.h) == 0 {
		return 0, false
	}
	return t.h[0].FireAt, true
}

type timerHeap []Timer

func (h timerHeap) Len() int { return len(h) }

func (h timerHeap) Less(i, j int) bool {
	if h[i].FireAt != h[j].FireAt {
		return h[i].FireAt < h[j].FireAt
	}
	return h[i].seq < h[j].seq
}

func (h timerHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *timerHeap) Push(x any) { *h = append(*h, x.(Timer)) }

func (h *timerHeap) Pop() any {
	old := *h
	n := len(old)
	t := old[n-1]
	*h = old[:n-1]
	return t
}
