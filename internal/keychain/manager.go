// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package keychain provides centralized, thread-safe keychain operations for docdb.
// It stores the connection host and key saved by `docdb connect` in the OS
// credential store so they never touch the config file.
//
// macOS uses the native `security` command when available, falling back to the
// keyring library; Windows uses the Credential Manager. Other platforms have no
// secure storage and GetManager returns an error there.
package keychain

import (
	"errors"
	"runtime"
	"strings"
	"sync"

	"github.com/99designs/keyring"
)

// Global keychain manager instance
var (
	globalManager *Manager
	globalError   error
	mu            sync.Mutex
)

// ErrNotFound is returned when no connection has been saved.
var ErrNotFound = errors.New("no saved connection")

// Manager provides centralized, thread-safe operations for the OS keychain.
type Manager struct {
	mu      sync.RWMutex
	backend keychainBackend
}

// keychainBackend defines the interface for keychain operations.
type keychainBackend interface {
	Set(key, value string) error
	Get(key string) (string, error)
	Delete(key string) error
}

// ServiceName identifies our keychain/credential store namespace.
const ServiceName = "docdb"

// Keys used for storing secrets in the OS keychain.
const (
	KeyHost = "db_host"
	KeyKey  = "db_key"
)

// NewManager creates a new keychain manager with the OS keyring initialized.
func NewManager() (*Manager, error) {
	if runtime.GOOS == "darwin" {
		backend, err := newSecurityBackend()
		if err == nil {
			return &Manager{backend: backend}, nil
		}
		// Fall through to keyring library if security command fails
	}

	ring, err := openRing()
	if err != nil {
		return nil, err
	}
	return &Manager{backend: ringBackend{ring}}, nil
}

// GetManager returns the global keychain manager instance.
// If initialization fails, it will retry on subsequent calls.
func GetManager() (*Manager, error) {
	mu.Lock()
	defer mu.Unlock()

	if globalManager != nil {
		return globalManager, nil
	}

	globalManager, globalError = NewManager()
	if globalError != nil {
		return nil, globalError
	}
	return globalManager, nil
}

// openRing opens the OS keyring using native platform backends only.
func openRing() (keyring.Keyring, error) {
	var allowedBackends []keyring.BackendType
	switch runtime.GOOS {
	case "darwin":
		// Pass requires 'pass' utility installed: brew install pass
		allowedBackends = []keyring.BackendType{keyring.KeychainBackend, keyring.PassBackend}
	case "windows":
		allowedBackends = []keyring.BackendType{keyring.WinCredBackend}
	default:
		return nil, errors.New("secure storage not supported on this OS (macOS/Windows only)")
	}

	cfg := keyring.Config{
		ServiceName:     ServiceName,
		AllowedBackends: allowedBackends,
		PassPrefix:      ServiceName,
	}
	if runtime.GOOS == "windows" {
		cfg.WinCredPrefix = ServiceName
	}

	ring, err := keyring.Open(cfg)
	if err != nil {
		if runtime.GOOS == "darwin" {
			return nil, errors.New("macOS Keychain unavailable. Install 'pass': brew install pass gnupg && gpg --generate-key && pass init <gpg-key-id>")
		}
		return nil, err
	}
	return ring, nil
}

// ringBackend adapts a keyring.Keyring to keychainBackend.
type ringBackend struct {
	ring keyring.Keyring
}

func (r ringBackend) Set(key, value string) error {
	return r.ring.Set(keyring.Item{Key: key, Data: []byte(value)})
}

func (r ringBackend) Get(key string) (string, error) {
	it, err := r.ring.Get(key)
	if err != nil {
		if errors.Is(err, keyring.ErrKeyNotFound) {
			return "", ErrNotFound
		}
		return "", err
	}
	return string(it.Data), nil
}

func (r ringBackend) Delete(key string) error {
	err := r.ring.Remove(key)
	if errors.Is(err, keyring.ErrKeyNotFound) {
		return nil
	}
	return err
}

// SaveConnection stores the connection host and key.
// An empty key removes any previously saved key.
// This method is thread-safe.
func (m *Manager) SaveConnection(host, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if strings.TrimSpace(host) == "" {
		return errors.New("empty host")
	}
	if err := m.backend.Set(KeyHost, host); err != nil {
		return err
	}
	if key == "" {
		return m.backend.Delete(KeyKey)
	}
	return m.backend.Set(KeyKey, key)
}

// LoadConnection retrieves the saved host and key. It returns ErrNotFound
// when no host has been saved; a missing key is not an error.
// This method is thread-safe.
func (m *Manager) LoadConnection() (host, key string, err error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	host, err = m.backend.Get(KeyHost)
	if err != nil {
		return "", "", err
	}
	if strings.TrimSpace(host) == "" {
		return "", "", ErrNotFound
	}
	key, err = m.backend.Get(KeyKey)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return "", "", err
	}
	return host, key, nil
}

// ClearConnection removes the saved host and key.
// This method is thread-safe.
func (m *Manager) ClearConnection() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	return errors.Join(m.backend.Delete(KeyHost), m.backend.Delete(KeyKey))
}
