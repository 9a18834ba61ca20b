package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/Porizovatel/kulda/internal/domain/team"
)

type TeamRepository struct {
	mu    sync.RWMutex
	teams map[string]team.Team
}

func NewTeamRepository(teams []team.Team) *TeamRepository {
	byID := make(map[string]team.Team, len(teams))
	for _, item := range teams {
		byID[item.ID] = item
	}

	return &TeamRepository{teams: byID}
}

func (r *TeamRepository) List(_ context.Context) ([]team.Team, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]team.Team, 0, len(r.teams))
	for _, item := range r.teams {
		out = append(out, item)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })

	return out, nil
}

func (r *TeamRepository) GetByID(_ context.Context, teamID string) (team.Team, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.teams[teamID]
	return item, ok, nil
}

func (r *TeamRepository) Create(_ context.Context, item team.Team) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.teams[item.ID] = item
	return nil
}

func (r *TeamRepository) Update(_ context.Context, item team.Team) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.teams[item.ID] = item
	return nil
}

func (r *TeamRepository) Delete(_ context.Context, teamID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.teams, teamID)
	return nil
}
