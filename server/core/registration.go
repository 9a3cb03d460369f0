package core

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	cfg "github.com/automoto/orbs-mp/config"
	"github.com/automoto/orbs-mp/directory"
	"github.com/automoto/orbs-mp/shared/netconfig"
)

// Registration advertises the relay in a directory and keeps the entry
// alive with heartbeats carrying the current player count.
type Registration struct {
	directoryURL string
	advert       directory.Advert
	interval     time.Duration
	server       *Server
	client       *http.Client
	stopCh       chan struct{}
	stopOnce     sync.Once

	mu      sync.Mutex
	relayID string
}

// NewRegistration builds the relay's advert from its options: clients are
// told the websocket path and whether the relay announces disconnects.
func NewRegistration(directoryURL, name, address, region string, server *Server) *Registration {
	return &Registration{
		directoryURL: strings.TrimRight(directoryURL, "/"),
		advert: directory.Advert{
			Name:       name,
			Address:    address,
			Region:     region,
			Path:       netconfig.WebSocketPath,
			Disconnect: directory.ModeFor(server.opts.AnnounceDisconnect),
		},
		interval: cfg.Relay.HeartbeatInterval,
		server:   server,
		client:   &http.Client{Timeout: 5 * time.Second},
		stopCh:   make(chan struct{}),
	}
}

func (r *Registration) Start() {
	if err := r.register(); err != nil {
		log.Printf("[registration] initial registration failed: %v", err)
	}
	go r.heartbeatLoop()
}

// Stop ends heartbeats and removes the relay from the directory so clients
// stop seeing it before the TTL runs out.
func (r *Registration) Stop() {
	r.stopOnce.Do(func() {
		close(r.stopCh)
		if err := r.deregister(); err != nil {
			log.Printf("[registration] deregister failed: %v", err)
		}
	})
}

// ID is the directory-assigned relay id, empty until registered.
func (r *Registration) ID() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.relayID
}

func (r *Registration) setID(id string) {
	r.mu.Lock()
	r.relayID = id
	r.mu.Unlock()
}

func (r *Registration) register() error {
	ad := r.advert
	ad.Players = r.server.PlayerCount()

	resp, err := r.post(r.directoryURL+"/relays", ad)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("register: status %d", resp.StatusCode)
	}
	var rel directory.Relay
	if err := json.NewDecoder(resp.Body).Decode(&rel); err != nil {
		return fmt.Errorf("register: decode: %w", err)
	}

	r.setID(rel.ID)
	log.Printf("[registration] listed as %s (%s, id=%s)", rel.DialURL(), rel.Disconnect, rel.ID)
	return nil
}

func (r *Registration) heartbeatLoop() {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-r.stopCh:
			return
		case <-ticker.C:
			if err := r.sendHeartbeat(); err != nil {
				log.Printf("[registration] heartbeat failed: %v", err)
			}
		}
	}
}

func (r *Registration) sendHeartbeat() error {
	id := r.ID()
	if id == "" {
		return r.register()
	}

	resp, err := r.post(r.directoryURL+"/relays/"+id+"/heartbeat", map[string]int{"players": r.server.PlayerCount()})
	if err != nil {
		return err
	}
	resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusNoContent:
		return nil
	case http.StatusNotFound:
		log.Println("[registration] directory dropped our entry, re-registering")
		r.setID("")
		return r.register()
	}
	return fmt.Errorf("heartbeat: status %d", resp.StatusCode)
}

func (r *Registration) deregister() error {
	id := r.ID()
	if id == "" {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, r.directoryURL+"/relays/"+id, nil)
	if err != nil {
		return err
	}
	resp, err := r.client.Do(req)
	if err != nil {
		return fmt.Errorf("deregister: %w", err)
	}
	resp.Body.Close()
	r.setID("")
	return nil
}

func (r *Registration) post(url string, body any) (*http.Response, error) {
	b, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal: %w", err)
	}
	resp, err := r.client.Post(url, "application/json", bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("post %s: %w", url, err)
	}
	return resp, nil
}
