package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/Porizovatel/kulda/internal/domain/membership"
)

type MembershipRepository struct {
	mu     sync.RWMutex
	stints map[string]membership.Stint
}

func NewMembershipRepository(stints []membership.Stint) *MembershipRepository {
	byID := make(map[string]membership.Stint, len(stints))
	for _, item := range stints {
		byID[item.ID] = item
	}

	return &MembershipRepository{stints: byID}
}

func (r *MembershipRepository) ListByPlayer(_ context.Context, playerID string) ([]membership.Stint, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]membership.Stint, 0)
	for _, item := range r.stints {
		if item.PlayerID == playerID {
			out = append(out, item)
		}
	}
	sortStints(out)

	return out, nil
}

func (r *MembershipRepository) ListByTeam(_ context.Context, teamID string) ([]membership.Stint, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]membership.Stint, 0)
	for _, item := range r.stints {
		if item.TeamID == teamID {
			out = append(out, item)
		}
	}
	sortStints(out)

	return out, nil
}

func (r *MembershipRepository) GetByID(_ context.Context, stintID string) (membership.Stint, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.stints[stintID]
	return item, ok, nil
}

func (r *MembershipRepository) Create(_ context.Context, item membership.Stint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.stints[item.ID] = item
	return nil
}

func (r *MembershipRepository) Update(_ context.Context, item membership.Stint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.stints[item.ID] = item
	return nil
}

func (r *MembershipRepository) Delete(_ context.Context, stintID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.stints, stintID)
	return nil
}

func sortStints(items []membership.Stint) {
	sort.SliceStable(items, func(i, j int) bool {
		if !items[i].JoinDate.Equal(items[j].JoinDate) {
			return items[i].JoinDate.Before(items[j].JoinDate)
		}
		return items[i].ID < items[j].ID
	})
}
