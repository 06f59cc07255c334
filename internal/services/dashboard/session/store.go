package session

import (
	"context"
	"sync"
)

// CredentialStore persists the raw bearer credential between runs.
type CredentialStore interface {
	ReadCredential(ctx context.Context) (string, bool, error)
	WriteCredential(ctx context.Context, credential string) error
	DeleteCredential(ctx context.Context) error
}

// MemoryStore keeps the credential for the lifetime of the process.
type MemoryStore struct {
	mu         sync.Mutex
	credential string
	present    bool
}

// NewMemoryStore returns an empty in-process credential store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// ReadCredential returns the stored credential when present.
func (m *MemoryStore) ReadCredential(context.Context) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.credential, m.present, nil
}

// WriteCredential replaces the stored credential.
func (m *MemoryStore) WriteCredential(_ context.Context, credential string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.credential = credential
	m.present = true
	return nil
}

// DeleteCredential removes the stored credential.
func (m *MemoryStore) DeleteCredential(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.credential = ""
	m.present = false
	return nil
}

var _ CredentialStore = (*MemoryStore)(nil)
