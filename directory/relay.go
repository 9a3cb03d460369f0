// Package directory lists running relays. A relay advertises where clients
// dial it and how it treats departing players; clients pick one and dial it
// with what the advert says.
package directory

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"
	"time"

	"github.com/automoto/orbs-mp/shared/netconfig"
)

// DisconnectMode is what a relay does when a player's connection closes.
type DisconnectMode string

const (
	// DisconnectAnnounce relays broadcast orb-removed carrying the player id.
	DisconnectAnnounce DisconnectMode = "announce"
	// DisconnectSilent relays say nothing; clients must time players out.
	DisconnectSilent DisconnectMode = "silent"
)

// ModeFor maps a relay's announce setting to its advertised mode.
func ModeFor(announce bool) DisconnectMode {
	if announce {
		return DisconnectAnnounce
	}
	return DisconnectSilent
}

var (
	ErrMissingName = errors.New("name required")
	ErrBadAddress  = errors.New("address must be host:port")
	ErrBadPath     = errors.New("path must start with /")
	ErrBadMode     = errors.New("unknown disconnect mode")
)

// Advert is what a relay publishes about itself.
type Advert struct {
	Name       string         `json:"name"`
	Address    string         `json:"address"` // host:port reachable by clients
	Region     string         `json:"region,omitempty"`
	Path       string         `json:"path"` // websocket endpoint
	Disconnect DisconnectMode `json:"disconnect"`
	Players    int            `json:"players"`
}

// Normalize fills defaults. A missing path is the standard endpoint; a
// missing mode is silent since the relay promised nothing.
func (a *Advert) Normalize() {
	a.Name = strings.TrimSpace(a.Name)
	if a.Path == "" {
		a.Path = netconfig.WebSocketPath
	}
	if a.Disconnect == "" {
		a.Disconnect = DisconnectSilent
	}
	if a.Players < 0 {
		a.Players = 0
	}
}

func (a Advert) Validate() error {
	if a.Name == "" {
		return ErrMissingName
	}
	if host, port, err := net.SplitHostPort(a.Address); err != nil || host == "" || port == "" {
		return fmt.Errorf("%w: %q", ErrBadAddress, a.Address)
	}
	if !strings.HasPrefix(a.Path, "/") {
		return fmt.Errorf("%w: %q", ErrBadPath, a.Path)
	}
	switch a.Disconnect {
	case DisconnectAnnounce, DisconnectSilent:
	default:
		return fmt.Errorf("%w: %q", ErrBadMode, a.Disconnect)
	}
	return nil
}

// Relay is a registered advert.
type Relay struct {
	ID string `json:"id"`
	Advert
	LastSeen time.Time `json:"lastSeen"`
}

// DialURL is the websocket URL a client connects to, before the player id
// query is added.
func (r Relay) DialURL() string {
	u := url.URL{Scheme: "ws", Host: r.Address, Path: r.Path}
	return u.String()
}

// AnnouncesDisconnects reports whether clients can rely on removal notices
// for departed players.
func (r Relay) AnnouncesDisconnects() bool {
	return r.Disconnect == DisconnectAnnounce
}
