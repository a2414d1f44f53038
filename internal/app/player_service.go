package app

import (
	"context"
	"strings"
	"sync"
	"time"

	"quiz-host-service/internal/domain"
	"github.com/google/uuid"
)

// PlayerService manages the player roster.
type PlayerService struct {
	store DocumentStore
	now   func() time.Time
	newID func() string
	mu    sync.Mutex
}

func NewPlayerService(store DocumentStore) *PlayerService {
	return &PlayerService{store: store, now: time.Now, newID: uuid.NewString}
}

func (s *PlayerService) List(ctx context.Context) ([]domain.Player, error) {
	return loadAll[domain.Player](ctx, s.store, PlayersCollection)
}

func (s *PlayerService) Get(ctx context.Context, id string) (domain.Player, error) {
	players, err := s.List(ctx)
	if err != nil {
		return domain.Player{}, err
	}
	i := indexPlayer(players, id)
	if i < 0 {
		return domain.Player{}, domain.ErrPlayerNotFound
	}
	return players[i], nil
}

func (s *PlayerService) Create(ctx context.Context, name string) (domain.Player, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Player{}, domain.Invalid("Player name is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	players, err := s.List(ctx)
	if err != nil {
		return domain.Player{}, err
	}
	player := domain.Player{ID: s.newID(), Name: name, CreatedAt: s.now().UTC()}
	players = append(players, player)
	if err := saveAll(ctx, s.store, PlayersCollection, players); err != nil {
		return domain.Player{}, err
	}
	return player, nil
}

// Rename changes a player's display name.
func (s *PlayerService) Rename(ctx context.Context, id, name string) (domain.Player, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Player{}, domain.Invalid("Player name is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	players, err := s.List(ctx)
	if err != nil {
		return domain.Player{}, err
	}
	i := indexPlayer(players, id)
	if i < 0 {
		return domain.Player{}, domain.ErrPlayerNotFound
	}
	players[i].Name = name
	if err := saveAll(ctx, s.store, PlayersCollection, players); err != nil {
		return domain.Player{}, err
	}
	return players[i], nil
}

func (s *PlayerService) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	players, err := s.List(ctx)
	if err != nil {
		return err
	}
	i := indexPlayer(players, id)
	if i < 0 {
		return domain.ErrPlayerNotFound
	}
	players = append(players[:i], players[i+1:]...)
	return saveAll(ctx, s.store, PlayersCollection, players)
}

func indexPlayer(players []domain.Player, id string) int {
	for i := range players {
		if players[i].ID == id {
			return i
		}
	}
	return -1
}
