// Package netconfig defines lightweight constants shared between client and
// relay. It must have zero dependencies on ebiten or any graphics library so
// the relay binary stays headless.
package netconfig

import "time"

// Event names carried in the envelope "t" field.
const (
	EventPosition   = "position"
	EventOrbRemoved = "orb-removed"

	// Legacy aliases accepted for EventOrbRemoved.
	EventDestroyed     = "destroyed"
	EventOrbRemovedDot = "orb.removed"
)

const (
	DefaultPort      = 3000
	WebSocketPath    = "/ws"
	QueryID          = "id"
	PositionInterval = 50 * time.Millisecond
)

// Kind is the canonical meaning of an event name.
type Kind int

const (
	KindUnknown Kind = iota
	KindPosition
	KindOrbRemoved
)

func (k Kind) String() string {
	switch k {
	case KindPosition:
		return EventPosition
	case KindOrbRemoved:
		return EventOrbRemoved
	}
	return "unknown"
}

// Classify maps an event name, including legacy aliases, to its Kind.
func Classify(event string) Kind {
	switch event {
	case EventPosition:
		return KindPosition
	case EventOrbRemoved, EventDestroyed, EventOrbRemovedDot:
		return KindOrbRemoved
	}
	return KindUnknown
}
