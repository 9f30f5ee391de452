package store

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/minaorangina/wizard/session"
)

var (
	ErrUnknownGameID = errors.New("unknown game ID")
	ErrDuplicateID   = errors.New("game ID already in use")
)

type GameStore interface {
	FindGame(gameID string) (*session.Session, error)
	AddGame(s *session.Session) error
	RemoveGame(gameID string) error
	GameIDs() []string
}

// InMemoryGameStore maps game id to the session running that game.
// Nothing survives a restart.
type InMemoryGameStore struct {
	mu    sync.RWMutex
	Games map[string]*session.Session
}

// NewInMemoryGameStore constructs an InMemoryGameStore
func NewInMemoryGameStore() *InMemoryGameStore {
	return &InMemoryGameStore{
		Games: map[string]*session.Session{},
	}
}

func (s *InMemoryGameStore) FindGame(gameID string) (*session.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	game, ok := s.Games[gameID]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownGameID, gameID)
	}
	return game, nil
}

func (s *InMemoryGameStore) AddGame(game *session.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.Games[game.ID()]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateID, game.ID())
	}
	s.Games[game.ID()] = game
	return nil
}

func (s *InMemoryGameStore) RemoveGame(gameID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.Games[gameID]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownGameID, gameID)
	}
	delete(s.Games, gameID)
	return nil
}

// GameIDs lists the stored games in a stable order.
func (s *InMemoryGameStore) GameIDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.Games))
	for id := range s.Games {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
