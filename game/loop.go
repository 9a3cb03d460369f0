package game

import (
	"log"
	"sync"
	"time"
)

// Loop ticks a Game at a fixed rate on its own goroutine. Inbound frames
// still arrive through Game.Deliver; everything else happens here.
type Loop struct {
	game     *Game
	tickRate int
	onTick   func(*Game)

	stopChan chan struct{}
	stopOnce sync.Once
	done     chan struct{}
}

// NewLoop creates a loop. onTick, if set, runs before every tick and is the
// place to feed input such as SetTarget or Split.
func NewLoop(g *Game, tickRate int, onTick func(*Game)) *Loop {
	if tickRate <= 0 {
		tickRate = 60
	}
	return &Loop{
		game:     g,
		tickRate: tickRate,
		onTick:   onTick,
		stopChan: make(chan struct{}),
		done:     make(chan struct{}),
	}
}

func (l *Loop) Run() {
	defer close(l.done)

	interval := time.Second / time.Duration(l.tickRate)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	log.Printf("[game] loop started at %d ticks/second", l.tickRate)

	last := time.Now()
	for {
		select {
		case <-l.stopChan:
			log.Println("[game] loop stopped")
			return
		case now := <-ticker.C:
			if l.onTick != nil {
				l.onTick(l.game)
			}
			l.game.Tick(now.Sub(last))
			last = now
		}
	}
}

// Stop ends Run and waits for the current tick to finish.
func (l *Loop) Stop() {
	l.stopOnce.Do(func() { close(l.stopChan) })
	<-l.done
}
