// Package cache wraps the hot read repositories with a TTL store. Writes
// pass through and invalidate the affected keys.
package cache

import (
	"context"

	"github.com/Porizovatel/kulda/internal/domain/match"
	"github.com/Porizovatel/kulda/internal/domain/team"
	basecache "github.com/Porizovatel/kulda/internal/platform/cache"
)

type TeamRepository struct {
	next  team.Repository
	cache *basecache.Store
}

func NewTeamRepository(next team.Repository, cache *basecache.Store) *TeamRepository {
	return &TeamRepository{next: next, cache: cache}
}

func (r *TeamRepository) List(ctx context.Context) ([]team.Team, error) {
	v, err := r.cache.GetOrLoad(ctx, "team:list", func(ctx context.Context) (any, error) {
		items, err := r.next.List(ctx)
		if err != nil {
			return nil, err
		}
		return append([]team.Team(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]team.Team)
	return append([]team.Team(nil), items...), nil
}

func (r *TeamRepository) GetByID(ctx context.Context, teamID string) (team.Team, bool, error) {
	key := "team:id:" + teamID
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByID(ctx, teamID)
		if err != nil {
			return nil, err
		}
		return cachedTeamByID{value: item, exists: exists}, nil
	})
	if err != nil {
		return team.Team{}, false, err
	}

	cached, _ := v.(cachedTeamByID)
	return cached.value, cached.exists, nil
}

func (r *TeamRepository) Create(ctx context.Context, item team.Team) error {
	if err := r.next.Create(ctx, item); err != nil {
		return err
	}
	r.invalidate(ctx, item.ID)
	return nil
}

func (r *TeamRepository) Update(ctx context.Context, item team.Team) error {
	if err := r.next.Update(ctx, item); err != nil {
		return err
	}
	r.invalidate(ctx, item.ID)
	return nil
}

func (r *TeamRepository) Delete(ctx context.Context, teamID string) error {
	if err := r.next.Delete(ctx, teamID); err != nil {
		return err
	}
	r.invalidate(ctx, teamID)
	return nil
}

func (r *TeamRepository) invalidate(ctx context.Context, teamID string) {
	r.cache.Delete(ctx, "team:list")
	r.cache.Delete(ctx, "team:id:"+teamID)
}

type cachedTeamByID struct {
	value  team.Team
	exists bool
}

type MatchRepository struct {
	next  match.Repository
	cache *basecache.Store
}

func NewMatchRepository(next match.Repository, cache *basecache.Store) *MatchRepository {
	return &MatchRepository{next: next, cache: cache}
}

func (r *MatchRepository) List(ctx context.Context) ([]match.Match, error) {
	v, err := r.cache.GetOrLoad(ctx, "match:list", func(ctx context.Context) (any, error) {
		items, err := r.next.List(ctx)
		if err != nil {
			return nil, err
		}
		return append([]match.Match(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]match.Match)
	return append([]match.Match(nil), items...), nil
}

func (r *MatchRepository) ListBySeason(ctx context.Context, seasonName string) ([]match.Match, error) {
	key := "match:list:season:" + seasonName
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, err := r.next.ListBySeason(ctx, seasonName)
		if err != nil {
			return nil, err
		}
		return append([]match.Match(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]match.Match)
	return append([]match.Match(nil), items...), nil
}

func (r *MatchRepository) GetByID(ctx context.Context, matchID string) (match.Match, bool, error) {
	key := "match:id:" + matchID
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByID(ctx, matchID)
		if err != nil {
			return nil, err
		}
		return cachedMatchByID{value: item, exists: exists}, nil
	})
	if err != nil {
		return match.Match{}, false, err
	}

	cached, _ := v.(cachedMatchByID)
	return cached.value, cached.exists, nil
}

func (r *MatchRepository) Create(ctx context.Context, item match.Match) error {
	if err := r.next.Create(ctx, item); err != nil {
		return err
	}
	r.invalidate(ctx, item)
	return nil
}

func (r *MatchRepository) BulkCreate(ctx context.Context, items []match.Match) error {
	if err := r.next.BulkCreate(ctx, items); err != nil {
		return err
	}
	r.cache.DeletePrefix(ctx, "match:")
	return nil
}

func (r *MatchRepository) Update(ctx context.Context, item match.Match) error {
	if err := r.next.Update(ctx, item); err != nil {
		return err
	}
	r.invalidate(ctx, item)
	return nil
}

func (r *MatchRepository) Delete(ctx context.Context, matchID string) error {
	if err := r.next.Delete(ctx, matchID); err != nil {
		return err
	}
	r.cache.DeletePrefix(ctx, "match:")
	return nil
}

func (r *MatchRepository) DeleteBySeason(ctx context.Context, seasonName string) error {
	if err := r.next.DeleteBySeason(ctx, seasonName); err != nil {
		return err
	}
	r.cache.DeletePrefix(ctx, "match:")
	return nil
}

func (r *MatchRepository) invalidate(ctx context.Context, item match.Match) {
	r.cache.Delete(ctx, "match:list")
	r.cache.Delete(ctx, "match:list:season:"+item.Season)
	r.cache.Delete(ctx, "match:id:"+item.ID)
}

type cachedMatchByID struct {
	value  match.Match
	exists bool
}
