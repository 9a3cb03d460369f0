// Package protocol frames events on the wire. Every frame is a JSON envelope
// {"t": event, "p": payload}; the relay only ever looks at "t".
package protocol

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/automoto/orbs-mp/shared/messages"
	"github.com/automoto/orbs-mp/shared/netconfig"
)

var (
	ErrEmptyFrame   = errors.New("empty frame")
	ErrUnknownEvent = errors.New("unknown event")
)

type Envelope struct {
	T string          `json:"t"`
	P json.RawMessage `json:"p"` // raw payload bytes
}

// Kind classifies the envelope's event name, folding legacy aliases.
func (e Envelope) Kind() netconfig.Kind {
	return netconfig.Classify(e.T)
}

func Encode(t string, payload any) ([]byte, error) {
	if t == "" {
		return nil, fmt.Errorf("encode: empty event name")
	}
	pb, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode %s payload: %w", t, err)
	}
	return json.Marshal(Envelope{T: t, P: pb})
}

func DecodeEnvelope(b []byte) (Envelope, error) {
	if len(b) == 0 {
		return Envelope{}, ErrEmptyFrame
	}
	var e Envelope
	if err := json.Unmarshal(b, &e); err != nil {
		return Envelope{}, fmt.Errorf("decode envelope: %w", err)
	}
	return e, nil
}

func DecodePayload[T any](env Envelope) (T, error) {
	var out T
	if len(env.P) == 0 {
		return out, fmt.Errorf("empty payload for event %q", env.T)
	}
	err := json.Unmarshal(env.P, &out)
	return out, err
}

// EncodePosition frames a position snapshot.
func EncodePosition(ev messages.PositionEvent) ([]byte, error) {
	return Encode(netconfig.EventPosition, ev)
}

// EncodeOrbRemoved frames a removal notice for id.
func EncodeOrbRemoved(id string) ([]byte, error) {
	return Encode(netconfig.EventOrbRemoved, id)
}

// Decoded is an inbound event after payload decoding. Exactly one of
// Position or RemovedID is meaningful, selected by Kind.
type Decoded struct {
	Kind      netconfig.Kind
	Position  messages.PositionEvent
	RemovedID string
}

// Decode parses a whole frame. Unrecognized event names yield ErrUnknownEvent.
func Decode(b []byte) (Decoded, error) {
	env, err := DecodeEnvelope(b)
	if err != nil {
		return Decoded{}, err
	}
	switch env.Kind() {
	case netconfig.KindPosition:
		pos, err := DecodePayload[messages.PositionEvent](env)
		if err != nil {
			return Decoded{}, fmt.Errorf("decode position: %w", err)
		}
		return Decoded{Kind: netconfig.KindPosition, Position: pos}, nil
	case netconfig.KindOrbRemoved:
		id, err := DecodePayload[string](env)
		if err != nil {
			return Decoded{}, fmt.Errorf("decode %s: %w", env.T, err)
		}
		return Decoded{Kind: netconfig.KindOrbRemoved, RemovedID: id}, nil
	}
	return Decoded{}, fmt.Errorf("%w: %q", ErrUnknownEvent, env.T)
}
