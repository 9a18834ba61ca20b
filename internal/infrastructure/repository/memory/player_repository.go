package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/Porizovatel/kulda/internal/domain/player"
)

type PlayerRepository struct {
	mu      sync.RWMutex
	players map[string]player.Player
}

func NewPlayerRepository(players []player.Player) *PlayerRepository {
	byID := make(map[string]player.Player, len(players))
	for _, item := range players {
		byID[item.ID] = item
	}

	return &PlayerRepository{players: byID}
}

func (r *PlayerRepository) List(_ context.Context) ([]player.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]player.Player, 0, len(r.players))
	for _, item := range r.players {
		out = append(out, item)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })

	return out, nil
}

func (r *PlayerRepository) ListByTeam(_ context.Context, teamID string) ([]player.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]player.Player, 0)
	for _, item := range r.players {
		if item.TeamID == teamID {
			out = append(out, item)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })

	return out, nil
}

func (r *PlayerRepository) GetByID(_ context.Context, playerID string) (player.Player, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.players[playerID]
	return item, ok, nil
}

func (r *PlayerRepository) Create(_ context.Context, item player.Player) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.players[item.ID] = item
	return nil
}

func (r *PlayerRepository) Update(_ context.Context, item player.Player) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.players[item.ID] = item
	return nil
}

func (r *PlayerRepository) Delete(_ context.Context, playerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.players, playerID)
	return nil
}
