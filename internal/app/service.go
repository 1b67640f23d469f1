// Package app manages Hasami Shogi games: seat assignment, move
// submission and per-game snapshot broadcasts. All rule decisions live in
// the domain package; this layer only serializes access per game.
package app

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jaminalder/hasami-shogi/internal/domain"
)

// Errors exposed by the service layer.
var (
	ErrNotFound    = errors.New("game not found")
	ErrNotYourTurn = errors.New("not your turn")
	ErrNotAPlayer  = errors.New("not a player")
)

// GameState is the in-memory state tracked per game. Black is the seat of
// the first player to join, Red the second.
type GameState struct {
	ID      string
	Game    domain.Game
	Black   string
	Red     string
	Created time.Time
	Updated time.Time
}

// Seat returns the color assigned to the player, Empty for spectators.
func (gs *GameState) Seat(playerID string) domain.Occupant {
	switch {
	case playerID != "" && gs.Black == playerID:
		return domain.Black
	case playerID != "" && gs.Red == playerID:
		return domain.Red
	default:
		return domain.Empty
	}
}

type subscriber struct {
	ch        chan []byte
	closeOnce sync.Once
}

func (s *subscriber) close() { s.closeOnce.Do(func() { close(s.ch) }) }

// Service manages games and subscribers.
type Service struct {
	mu     sync.Mutex
	games  map[string]*GameState
	subs   map[string]map[*subscriber]struct{}
	render func(GameState) []byte
}

// NewService creates a service with a no-op broadcast renderer.
func NewService() *Service {
	return NewServiceWithRenderer(nil)
}

// NewServiceWithRenderer allows injecting a renderer for broadcast payloads.
func NewServiceWithRenderer(renderer func(GameState) []byte) *Service {
	if renderer == nil {
		renderer = func(GameState) []byte { return nil }
	}
	return &Service{
		games:  make(map[string]*GameState),
		subs:   make(map[string]map[*subscriber]struct{}),
		render: renderer,
	}
}

// SetRenderer replaces the broadcast renderer function.
func (s *Service) SetRenderer(renderer func(GameState) []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if renderer == nil {
		renderer = func(GameState) []byte { return nil }
	}
	s.render = renderer
}

// CreateGame creates and registers a new game in its initial position.
func (s *Service) CreateGame() (*GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := uuid.NewString()
	now := time.Now()
	gs := &GameState{ID: id, Game: domain.New(), Created: now, Updated: now}
	s.games[id] = gs
	cp := *gs
	return &cp, nil
}

// Get returns a copy of the game state if present.
func (s *Service) Get(id string) (*GameState, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	gs, ok := s.games[id]
	if !ok {
		return nil, false
	}
	cp := *gs
	return &cp, true
}

// Join assigns a seat to the player if available: Black first, then Red.
// Already-seated players keep their seat; everyone else spectates.
func (s *Service) Join(id, playerID string) (domain.Occupant, *GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	gs, ok := s.games[id]
	if !ok {
		return domain.Empty, nil, ErrNotFound
	}
	seat := domain.Empty
	if gs.Black == "" || gs.Black == playerID {
		gs.Black = playerID
		seat = domain.Black
	} else if gs.Red == "" || gs.Red == playerID {
		gs.Red = playerID
		seat = domain.Red
	}
	gs.Updated = time.Now()
	cp := *gs
	return seat, &cp, nil
}

// Play validates seat and turn, applies the move through the rules core,
// and broadcasts the resulting snapshot. Rejections leave the game
// untouched.
func (s *Service) Play(id, playerID, from, to string) (*GameState, domain.Outcome, error) {
	s.mu.Lock()
	gs, ok := s.games[id]
	if !ok {
		s.mu.Unlock()
		return nil, domain.Outcome{}, ErrNotFound
	}
	seat := gs.Seat(playerID)
	if seat == domain.Empty {
		s.mu.Unlock()
		return nil, domain.Outcome{}, ErrNotAPlayer
	}
	if seat != gs.Game.ActivePlayer() {
		s.mu.Unlock()
		return nil, domain.Outcome{}, ErrNotYourTurn
	}
	outcome, err := gs.Game.Move(from, to)
	if err != nil {
		s.mu.Unlock()
		return nil, domain.Outcome{}, err
	}
	gs.Updated = time.Now()

	cp := *gs
	subs := s.copySubsLocked(id)
	payload := s.render(cp)
	s.mu.Unlock()

	// Fan-out; drop slow subscribers by closing and marking for deletion.
	var toDrop []*subscriber
	for sub := range subs {
		select {
		case sub.ch <- payload:
		default:
			sub.close()
			toDrop = append(toDrop, sub)
		}
	}
	if len(toDrop) > 0 {
		s.mu.Lock()
		for _, sub := range toDrop {
			if set, ok := s.subs[id]; ok {
				delete(set, sub)
			}
		}
		s.mu.Unlock()
	}
	return &cp, outcome, nil
}

// Subscribe registers a subscriber for a game. Returns a channel and an
// unsubscribe func. Subscribing to an unknown ID creates the game lazily so
// watchers can connect before the first move.
func (s *Service) Subscribe(ctx context.Context, id string) (<-chan []byte, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.games[id]; !ok {
		now := time.Now()
		s.games[id] = &GameState{ID: id, Game: domain.New(), Created: now, Updated: now}
	}
	set := s.subs[id]
	if set == nil {
		set = make(map[*subscriber]struct{})
		s.subs[id] = set
	}
	sub := &subscriber{ch: make(chan []byte, 1)}
	set[sub] = struct{}{}

	unsubOnce := &sync.Once{}
	unsub := func() {
		unsubOnce.Do(func() {
			s.mu.Lock()
			if set, ok := s.subs[id]; ok {
				delete(set, sub)
			}
			s.mu.Unlock()
			sub.close()
		})
	}
	go func() {
		<-ctx.Done()
		unsub()
	}()
	return sub.ch, unsub
}

func (s *Service) copySubsLocked(id string) map[*subscriber]struct{} {
	out := make(map[*subscriber]struct{})
	if set, ok := s.subs[id]; ok {
		for k := range set {
			out[k] = struct{}{}
		}
	}
	return out
}
