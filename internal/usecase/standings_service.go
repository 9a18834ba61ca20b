package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/Porizovatel/kulda/internal/domain/match"
	"github.com/Porizovatel/kulda/internal/domain/performance"
	"github.com/Porizovatel/kulda/internal/domain/season"
	"github.com/Porizovatel/kulda/internal/domain/standing"
	"github.com/Porizovatel/kulda/internal/domain/team"
	"github.com/Porizovatel/kulda/internal/platform/cache"
)

// StandingsService derives the season table from completed matches. Nothing
// here is stored; the table is recomputed (or served from cache) on demand.
type StandingsService struct {
	seasonRepo season.Repository
	teamRepo   team.Repository
	matchRepo  match.Repository
	perfRepo   performance.Repository
	cache      *cache.Store
}

func NewStandingsService(
	seasonRepo season.Repository,
	teamRepo team.Repository,
	matchRepo match.Repository,
	perfRepo performance.Repository,
	store *cache.Store,
) *StandingsService {
	return &StandingsService{
		seasonRepo: seasonRepo,
		teamRepo:   teamRepo,
		matchRepo:  matchRepo,
		perfRepo:   perfRepo,
		cache:      store,
	}
}

// ForSeason computes the ranked table for the given season.
func (s *StandingsService) ForSeason(ctx context.Context, seasonID string) ([]standing.Standing, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingsService.ForSeason")
	defer span.End()

	seasonID = strings.TrimSpace(seasonID)
	if seasonID == "" {
		return nil, fmt.Errorf("%w: season id is required", ErrInvalidInput)
	}

	item, exists, err := s.seasonRepo.GetByID(ctx, seasonID)
	if err != nil {
		return nil, fmt.Errorf("get season: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: season=%s", ErrNotFound, seasonID)
	}

	if s.cache == nil {
		return s.compute(ctx, item)
	}

	value, err := s.cache.GetOrLoad(ctx, standingsCacheKey(item.Name), func(ctx context.Context) (any, error) {
		return s.compute(ctx, item)
	})
	if err != nil {
		return nil, err
	}

	table, ok := value.([]standing.Standing)
	if !ok {
		return s.compute(ctx, item)
	}

	out := make([]standing.Standing, len(table))
	copy(out, table)

	return out, nil
}

func (s *StandingsService) compute(ctx context.Context, item season.Season) ([]standing.Standing, error) {
	teams, err := s.teamRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}

	matches, err := s.matchRepo.ListBySeason(ctx, item.Name)
	if err != nil {
		return nil, fmt.Errorf("list matches by season: %w", err)
	}

	completedIDs := make([]string, 0, len(matches))
	for _, m := range matches {
		if m.Completed {
			completedIDs = append(completedIDs, m.ID)
		}
	}

	var perfs []performance.TeamPerformance
	if len(completedIDs) > 0 {
		perfs, err = s.perfRepo.ListTeamByMatchIDs(ctx, completedIDs)
		if err != nil {
			return nil, fmt.Errorf("list team performances: %w", err)
		}
	}

	byTeam := make(map[string][]performance.TeamPerformance, len(teams))
	for _, p := range perfs {
		byTeam[p.TeamID] = append(byTeam[p.TeamID], p)
	}

	table := make([]standing.Standing, 0, len(teams))
	for _, t := range teams {
		if !t.ActiveDuring(item.StartDate, item.EndDate) {
			continue
		}

		row := standing.Standing{
			TeamID:   t.ID,
			TeamName: t.Name,
			Season:   item.Name,
		}
		for _, p := range byTeam[t.ID] {
			row.MatchesPlayed++
			row.Points += p.Points
			row.AuxiliaryPoints += p.AuxiliaryPoints
			row.TotalPins += p.TotalPins
		}
		if row.MatchesPlayed > 0 {
			row.AvgPins = float64(row.TotalPins) / float64(row.MatchesPlayed)
		}
		row.LostPoints = row.MatchesPlayed*maxAuxiliaryPoints - row.AuxiliaryPoints

		table = append(table, row)
	}

	sort.SliceStable(table, func(i, j int) bool {
		if table[i].Points != table[j].Points {
			return table[i].Points > table[j].Points
		}
		if table[i].AuxiliaryPoints != table[j].AuxiliaryPoints {
			return table[i].AuxiliaryPoints > table[j].AuxiliaryPoints
		}
		return table[i].AvgPins > table[j].AvgPins
	})
	for i := range table {
		table[i].Rank = i + 1
	}

	return table, nil
}
