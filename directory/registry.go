package directory

import (
	"log"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Registry holds the relays that have heartbeated within the TTL. A relay
// registering from an address already listed replaces the old entry, so a
// restarted relay does not show up twice.
type Registry struct {
	mu        sync.RWMutex
	relays    map[string]*Relay
	byAddress map[string]string
	ttl       time.Duration
	now       func() time.Time

	stopCh   chan struct{}
	stopOnce sync.Once
}

func NewRegistry(ttl time.Duration) *Registry {
	r := &Registry{
		relays:    make(map[string]*Relay),
		byAddress: make(map[string]string),
		ttl:       ttl,
		now:       time.Now,
		stopCh:    make(chan struct{}),
	}
	go r.cleanupLoop()
	return r
}

func (r *Registry) Stop() {
	r.stopOnce.Do(func() { close(r.stopCh) })
}

// Register validates and stores an advert, returning the new entry.
func (r *Registry) Register(ad Advert) (Relay, error) {
	ad.Normalize()
	if err := ad.Validate(); err != nil {
		return Relay{}, err
	}
	rel := Relay{ID: uuid.NewString(), Advert: ad, LastSeen: r.now()}

	r.mu.Lock()
	if old, ok := r.byAddress[ad.Address]; ok {
		log.Printf("[directory] %s re-registered, replacing %s", ad.Address, old)
		delete(r.relays, old)
	}
	r.relays[rel.ID] = &rel
	r.byAddress[ad.Address] = rel.ID
	r.mu.Unlock()

	return rel, nil
}

// Heartbeat refreshes a relay and records its player count. It reports
// false for an unknown id.
func (r *Registry) Heartbeat(id string, players int) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	rel, ok := r.relays[id]
	if !ok {
		return false
	}
	rel.LastSeen = r.now()
	rel.Players = max(players, 0)
	return true
}

func (r *Registry) Remove(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.removeLocked(id)
}

func (r *Registry) removeLocked(id string) bool {
	rel, ok := r.relays[id]
	if !ok {
		return false
	}
	delete(r.relays, id)
	if r.byAddress[rel.Address] == id {
		delete(r.byAddress, rel.Address)
	}
	return true
}

// List returns relays in region (all regions when empty), busiest first,
// then by name.
func (r *Registry) List(region string) []Relay {
	r.mu.RLock()
	result := make([]Relay, 0, len(r.relays))
	for _, rel := range r.relays {
		if region != "" && rel.Region != region {
			continue
		}
		result = append(result, *rel)
	}
	r.mu.RUnlock()

	sort.Slice(result, func(i, j int) bool {
		if result[i].Players != result[j].Players {
			return result[i].Players > result[j].Players
		}
		if result[i].Name != result[j].Name {
			return result[i].Name < result[j].Name
		}
		return result[i].ID < result[j].ID
	})
	return result
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.relays)
}

// Expire drops every relay not seen within the TTL as of now.
func (r *Registry) Expire(now time.Time) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	var stale []string
	for id, rel := range r.relays {
		if now.Sub(rel.LastSeen) >= r.ttl {
			stale = append(stale, id)
		}
	}
	for _, id := range stale {
		rel := r.relays[id]
		log.Printf("[directory] expired relay %q at %s, silent for %s",
			rel.Name, rel.Address, now.Sub(rel.LastSeen).Round(time.Second))
		r.removeLocked(id)
	}
	return len(stale)
}

func (r *Registry) cleanupLoop() {
	interval := r.ttl / 3
	if interval <= 0 {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-r.stopCh:
			return
		case now := <-ticker.C:
			r.Expire(now)
		}
	}
}
