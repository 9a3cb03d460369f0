package messages

// OrbState is one orb inside a position snapshot.
type OrbState struct {
	ID string  `json:"id"`
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
	R  float64 `json:"r"` // collision radius
}

// PositionEvent is a full snapshot of one player's orb set. It is sent on a
// fixed cadence whether or not anything changed.
//
// The legacy single-orb flavor carries X, Y and Size at the top level and no
// Orbs; in that flavor the player id doubles as the orb id.
type PositionEvent struct {
	ID   string     `json:"id"`
	Orbs []OrbState `json:"orbs"`

	X    *float64 `json:"x,omitempty"`
	Y    *float64 `json:"y,omitempty"`
	Size *float64 `json:"size,omitempty"`
}

// NewPositionEvent builds a multi-orb snapshot. A nil orbs slice is encoded
// as an empty list so receivers can tell "no orbs" from the legacy flavor.
func NewPositionEvent(playerID string, orbs []OrbState) PositionEvent {
	if orbs == nil {
		orbs = []OrbState{}
	}
	return PositionEvent{ID: playerID, Orbs: orbs}
}

// IsLegacy reports whether the event uses the single-orb {id,x,y,size} shape.
func (p PositionEvent) IsLegacy() bool {
	return len(p.Orbs) == 0 && p.X != nil && p.Y != nil
}

// OrbStates returns the snapshot normalized to the multi-orb shape.
func (p PositionEvent) OrbStates() []OrbState {
	if !p.IsLegacy() {
		return p.Orbs
	}
	var r float64
	if p.Size != nil {
		r = *p.Size
	}
	return []OrbState{{ID: p.ID, X: *p.X, Y: *p.Y, R: r}}
}
