package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/Porizovatel/kulda/internal/domain/performance"
)

// PerformanceRepository keys player rows on (match, player) and team rows on
// (match, team), mirroring the unique constraints of the SQL schema.
type PerformanceRepository struct {
	mu      sync.RWMutex
	players map[string]performance.PlayerPerformance
	teams   map[string]performance.TeamPerformance
}

func NewPerformanceRepository() *PerformanceRepository {
	return &PerformanceRepository{
		players: make(map[string]performance.PlayerPerformance),
		teams:   make(map[string]performance.TeamPerformance),
	}
}

func (r *PerformanceRepository) UpsertPlayerPerformances(_ context.Context, items []performance.PlayerPerformance) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, item := range items {
		key := item.MatchID + "|" + item.PlayerID
		if existing, ok := r.players[key]; ok {
			item.ID = existing.ID
		}
		r.players[key] = item
	}

	return nil
}

func (r *PerformanceRepository) UpsertTeamPerformances(_ context.Context, items []performance.TeamPerformance) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, item := range items {
		key := item.MatchID + "|" + item.TeamID
		if existing, ok := r.teams[key]; ok {
			item.ID = existing.ID
		}
		r.teams[key] = item
	}

	return nil
}

func (r *PerformanceRepository) ListPlayerByMatch(ctx context.Context, matchID string) ([]performance.PlayerPerformance, error) {
	return r.ListPlayerByMatchIDs(ctx, []string{matchID})
}

func (r *PerformanceRepository) ListPlayerByMatchIDs(_ context.Context, matchIDs []string) ([]performance.PlayerPerformance, error) {
	wanted := make(map[string]struct{}, len(matchIDs))
	for _, id := range matchIDs {
		wanted[id] = struct{}{}
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]performance.PlayerPerformance, 0)
	for _, item := range r.players {
		if _, ok := wanted[item.MatchID]; ok {
			out = append(out, item)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].MatchID != out[j].MatchID {
			return out[i].MatchID < out[j].MatchID
		}
		if out[i].TeamID != out[j].TeamID {
			return out[i].TeamID < out[j].TeamID
		}
		return out[i].Position < out[j].Position
	})

	return out, nil
}

func (r *PerformanceRepository) ListTeamByMatch(ctx context.Context, matchID string) ([]performance.TeamPerformance, error) {
	return r.ListTeamByMatchIDs(ctx, []string{matchID})
}

func (r *PerformanceRepository) ListTeamByMatchIDs(_ context.Context, matchIDs []string) ([]performance.TeamPerformance, error) {
	wanted := make(map[string]struct{}, len(matchIDs))
	for _, id := range matchIDs {
		wanted[id] = struct{}{}
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]performance.TeamPerformance, 0)
	for _, item := range r.teams {
		if _, ok := wanted[item.MatchID]; ok {
			out = append(out, item)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].MatchID != out[j].MatchID {
			return out[i].MatchID < out[j].MatchID
		}
		return out[i].TeamID < out[j].TeamID
	})

	return out, nil
}

func (r *PerformanceRepository) DeleteByMatch(_ context.Context, matchID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for key, item := range r.players {
		if item.MatchID == matchID {
			delete(r.players, key)
		}
	}
	for key, item := range r.teams {
		if item.MatchID == matchID {
			delete(r.teams, key)
		}
	}

	return nil
}
