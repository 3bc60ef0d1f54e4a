package game

import (
	"sync"
	"time"
)

// WorldState is the single source of truth for all mutable game state.
// All access must go through its methods to ensure thread-safety.
type WorldState struct {
	mu      sync.RWMutex
	players map[string]*PlayerState
	rooms   map[string]*RoomInstance
}

// NewWorldState creates a new WorldState over the given room instances.
func NewWorldState(rooms map[string]*RoomInstance) *WorldState {
	if rooms == nil {
		rooms = map[string]*RoomInstance{}
	}
	return &WorldState{
		players: make(map[string]*PlayerState),
		rooms:   rooms,
	}
}

// GetRoom returns a room instance by id, or nil.
func (w *WorldState) GetRoom(roomId string) *RoomInstance {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.rooms[roomId]
}

// ForEachRoom calls fn for each room instance.
func (w *WorldState) ForEachRoom(fn func(string, *RoomInstance)) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	for id, ri := range w.rooms {
		fn(id, ri)
	}
}

// GetPlayer returns the player state. Returns nil if player not found.
func (w *WorldState) GetPlayer(charId string) *PlayerState {
	w.mu.RLock()
	defer w.mu.RUnlock()

	return w.players[charId]
}

// AddPlayer registers a playing character. The session layer guarantees at
// most one live session per name; a second registration is rejected.
func (w *WorldState) AddPlayer(charId string, char *Character) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if _, exists := w.players[charId]; exists {
		return ErrPlayerExists
	}

	w.players[charId] = &PlayerState{
		CharId:       charId,
		Character:    char,
		LastActivity: time.Now(),
	}
	return nil
}

// RemovePlayer removes a player from the world state.
func (w *WorldState) RemovePlayer(charId string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if _, exists := w.players[charId]; !exists {
		return ErrPlayerNotFound
	}

	delete(w.players, charId)
	return nil
}

// MarkPlayerActive resets the player's idle timer.
func (w *WorldState) MarkPlayerActive(charId string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if p, ok := w.players[charId]; ok {
		p.LastActivity = time.Now()
	}
}

// ForEachPlayer calls fn for each player in the world while holding the read lock.
func (w *WorldState) ForEachPlayer(fn func(string, *PlayerState)) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	for id, ps := range w.players {
		fn(id, ps)
	}
}

// PlayerState holds all mutable state for an active player.
type PlayerState struct {
	CharId    string
	Character *Character

	LastActivity time.Time
}
