package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/Porizovatel/kulda/internal/domain/match"
)

type MatchRepository struct {
	mu      sync.RWMutex
	matches map[string]match.Match
}

func NewMatchRepository(matches []match.Match) *MatchRepository {
	byID := make(map[string]match.Match, len(matches))
	for _, item := range matches {
		byID[item.ID] = item
	}

	return &MatchRepository{matches: byID}
}

func (r *MatchRepository) List(_ context.Context) ([]match.Match, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]match.Match, 0, len(r.matches))
	for _, item := range r.matches {
		out = append(out, item)
	}
	sortMatches(out)

	return out, nil
}

func (r *MatchRepository) ListBySeason(_ context.Context, seasonName string) ([]match.Match, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]match.Match, 0)
	for _, item := range r.matches {
		if item.Season == seasonName {
			out = append(out, item)
		}
	}
	sortMatches(out)

	return out, nil
}

func (r *MatchRepository) GetByID(_ context.Context, matchID string) (match.Match, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.matches[matchID]
	return item, ok, nil
}

func (r *MatchRepository) Create(_ context.Context, item match.Match) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.matches[item.ID] = item
	return nil
}

func (r *MatchRepository) BulkCreate(_ context.Context, items []match.Match) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, item := range items {
		r.matches[item.ID] = item
	}

	return nil
}

func (r *MatchRepository) Update(_ context.Context, item match.Match) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.matches[item.ID] = item
	return nil
}

func (r *MatchRepository) Delete(_ context.Context, matchID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.matches, matchID)
	return nil
}

func (r *MatchRepository) DeleteBySeason(_ context.Context, seasonName string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, item := range r.matches {
		if item.Season == seasonName {
			delete(r.matches, id)
		}
	}

	return nil
}

func sortMatches(items []match.Match) {
	sort.SliceStable(items, func(i, j int) bool {
		if !items[i].Date.Equal(items[j].Date) {
			return items[i].Date.Before(items[j].Date)
		}
		return items[i].ID < items[j].ID
	})
}
