package network

import (
	"errors"
	"testing"
)

type memStore struct {
	items   map[string][]byte
	saveErr error
}

func (m *memStore) LoadItem(key string) ([]byte, error) {
	return m.items[key], nil
}

func (m *memStore) SaveItem(key string, data []byte) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.items[key] = data
	return nil
}

func TestLoadIdentityPersists(t *testing.T) {
	store := &memStore{items: map[string][]byte{}}

	first, err := LoadIdentity(store)
	if err != nil {
		t.Fatalf("first load: %v", err)
	}
	if first == "" {
		t.Fatal("empty id")
	}
	second, err := LoadIdentity(store)
	if err != nil {
		t.Fatalf("second load: %v", err)
	}
	if first != second {
		t.Fatalf("identity changed: %q then %q", first, second)
	}
}

func TestLoadIdentityReplacesCorruptRecord(t *testing.T) {
	store := &memStore{items: map[string][]byte{identityKey: []byte("{garbage")}}
	id, err := LoadIdentity(store)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if id == "" || string(store.items[identityKey]) == "{garbage" {
		t.Fatalf("corrupt record not replaced: %q", store.items[identityKey])
	}
}

func TestLoadIdentityNilStore(t *testing.T) {
	a, _ := LoadIdentity(nil)
	b, _ := LoadIdentity(nil)
	if a == "" || a == b {
		t.Fatalf("nil store should mint fresh ids, got %q and %q", a, b)
	}
}

func TestLoadIdentitySaveError(t *testing.T) {
	store := &memStore{items: map[string][]byte{}, saveErr: errors.New("disk full")}
	id, err := LoadIdentity(store)
	if err == nil || id == "" {
		t.Fatalf("want id and error, got %q, %v", id, err)
	}
}
