package network

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/quasilyte/gdata"
)

const identityKey = "identity"

// ItemStore is the slice of gdata.Manager used for identity storage.
type ItemStore interface {
	LoadItem(itemKey string) ([]byte, error)
	SaveItem(itemKey string, data []byte) error
}

// SavedIdentity is the identity record stored on disk.
type SavedIdentity struct {
	PlayerID string `json:"playerId"`
}

// OpenStore opens the per-user data directory for appName.
func OpenStore(appName string) (ItemStore, error) {
	m, err := gdata.Open(gdata.Config{
		AppName: appName,
	})
	if err != nil {
		return nil, fmt.Errorf("open data store: %w", err)
	}
	return m, nil
}

// LoadIdentity returns the stored player id, minting and saving a new one
// when none exists. A nil store yields a fresh, unsaved id.
func LoadIdentity(store ItemStore) (string, error) {
	if store == nil {
		return uuid.NewString(), nil
	}

	data, err := store.LoadItem(identityKey)
	if err != nil {
		return "", fmt.Errorf("load identity: %w", err)
	}
	if data != nil {
		var saved SavedIdentity
		if err := json.Unmarshal(data, &saved); err == nil && saved.PlayerID != "" {
			return saved.PlayerID, nil
		}
		log.Printf("[client] stored identity unreadable, minting a new one")
	}

	id := uuid.NewString()
	data, err = json.Marshal(SavedIdentity{PlayerID: id})
	if err != nil {
		return "", err
	}
	if err := store.SaveItem(identityKey, data); err != nil {
		return id, fmt.Errorf("save identity: %w", err)
	}
	return id, nil
}
