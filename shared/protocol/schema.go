package protocol

import (
	"github.com/invopop/jsonschema"

	"github.com/automoto/orbs-mp/shared/messages"
	"github.com/automoto/orbs-mp/shared/netconfig"
)

// Schema describes the event contract as a JSON Schema document.
func Schema() *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		DoNotReference: true,
	}

	position := reflector.Reflect(&messages.PositionEvent{})
	position.Version = ""
	position.Title = netconfig.EventPosition
	position.Description = "Full snapshot of one player's orbs, sent every 50ms."

	removed := &jsonschema.Schema{
		Type:        "string",
		Title:       netconfig.EventOrbRemoved,
		Description: "Id of an orb (or, for legacy clients, a whole player) that was consumed.",
	}

	return &jsonschema.Schema{
		Version:     jsonschema.Version,
		Title:       "Orbs relay event contract",
		Description: "Envelope payloads relayed verbatim between clients.",
		OneOf: []*jsonschema.Schema{
			position,
			removed,
		},
	}
}
