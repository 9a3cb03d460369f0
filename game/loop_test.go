package game

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestLoopTicksUntilStopped(t *testing.T) {
	g := New("loop", nil)
	var ticks atomic.Int32
	l := NewLoop(g, 200, func(*Game) { ticks.Add(1) })

	go l.Run()
	deadline := time.Now().Add(2 * time.Second)
	for ticks.Load() < 3 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	l.Stop()

	if ticks.Load() < 3 {
		t.Fatalf("loop ticked %d times", ticks.Load())
	}
	after := ticks.Load()
	time.Sleep(30 * time.Millisecond)
	if ticks.Load() != after {
		t.Fatalf("loop kept ticking after Stop")
	}
	l.Stop()
}
