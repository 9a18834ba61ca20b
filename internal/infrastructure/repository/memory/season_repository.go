package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/Porizovatel/kulda/internal/domain/season"
)

type SeasonRepository struct {
	mu      sync.RWMutex
	seasons map[string]season.Season
}

func NewSeasonRepository(seasons []season.Season) *SeasonRepository {
	byID := make(map[string]season.Season, len(seasons))
	for _, item := range seasons {
		byID[item.ID] = item
	}

	return &SeasonRepository{seasons: byID}
}

func (r *SeasonRepository) List(_ context.Context) ([]season.Season, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]season.Season, 0, len(r.seasons))
	for _, item := range r.seasons {
		out = append(out, item)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].StartDate.Equal(out[j].StartDate) {
			return out[i].StartDate.Before(out[j].StartDate)
		}
		return out[i].ID < out[j].ID
	})

	return out, nil
}

func (r *SeasonRepository) GetByID(_ context.Context, seasonID string) (season.Season, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.seasons[seasonID]
	return item, ok, nil
}

func (r *SeasonRepository) GetActive(_ context.Context) (season.Season, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, item := range r.seasons {
		if item.Active {
			return item, true, nil
		}
	}

	return season.Season{}, false, nil
}

func (r *SeasonRepository) Create(_ context.Context, item season.Season) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.seasons[item.ID] = item
	return nil
}

func (r *SeasonRepository) Update(_ context.Context, item season.Season) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.seasons[item.ID] = item
	return nil
}

func (r *SeasonRepository) SetActive(_ context.Context, seasonID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, item := range r.seasons {
		item.Active = id == seasonID
		r.seasons[id] = item
	}

	return nil
}

func (r *SeasonRepository) Delete(_ context.Context, seasonID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.seasons, seasonID)
	return nil
}
