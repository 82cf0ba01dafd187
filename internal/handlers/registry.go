package handlers

import (
	"sync"
	"time"

	"phonicscode/internal/game"
)

// sessionEntry pairs a live controller with its persistence record.
type sessionEntry struct {
	ctrl        *game.Controller
	recordID    int64
	lastTouched time.Time
}

// Registry tracks the live game controllers, one per player and game. A
// player navigating away without exiting leaves a controller behind, so
// entries idle past their TTL are closed by CleanupExpired.
type Registry struct {
	mu      sync.Mutex
	entries map[string]*sessionEntry
	ttl     time.Duration
}

// NewRegistry creates a registry whose entries expire after ttl of idleness.
func NewRegistry(ttl time.Duration) *Registry {
	return &Registry{
		entries: make(map[string]*sessionEntry),
		ttl:     ttl,
	}
}

func registryKey(playerID string, kind game.Kind) string {
	return playerID + "|" + kind.String()
}

// Get returns the live entry for a player's game, refreshing its idle timer.
func (reg *Registry) Get(playerID string, kind game.Kind) *sessionEntry {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	entry, ok := reg.entries[registryKey(playerID, kind)]
	if !ok {
		return nil
	}
	entry.lastTouched = time.Now()
	return entry
}

// Put registers a controller, closing any previous one for the same slot.
func (reg *Registry) Put(playerID string, kind game.Kind, ctrl *game.Controller, recordID int64) {
	key := registryKey(playerID, kind)

	reg.mu.Lock()
	previous := reg.entries[key]
	reg.entries[key] = &sessionEntry{
		ctrl:        ctrl,
		recordID:    recordID,
		lastTouched: time.Now(),
	}
	reg.mu.Unlock()

	if previous != nil {
		previous.ctrl.Close()
	}
}

// Remove closes and drops a player's controller, if present.
func (reg *Registry) Remove(playerID string, kind game.Kind) {
	key := registryKey(playerID, kind)

	reg.mu.Lock()
	entry := reg.entries[key]
	delete(reg.entries, key)
	reg.mu.Unlock()

	if entry != nil {
		entry.ctrl.Close()
	}
}

// CleanupExpired closes controllers idle past the TTL. Returns the number of
// entries removed.
func (reg *Registry) CleanupExpired() int {
	now := time.Now()

	reg.mu.Lock()
	var stale []*sessionEntry
	for key, entry := range reg.entries {
		if now.Sub(entry.lastTouched) > reg.ttl {
			stale = append(stale, entry)
			delete(reg.entries, key)
		}
	}
	reg.mu.Unlock()

	for _, entry := range stale {
		entry.ctrl.Close()
	}
	return len(stale)
}

// Len returns the number of live entries.
func (reg *Registry) Len() int {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	return len(reg.entries)
}
