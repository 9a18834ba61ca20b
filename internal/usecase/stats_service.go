package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/sourcegraph/conc/pool"

	"github.com/Porizovatel/kulda/internal/domain/match"
	"github.com/Porizovatel/kulda/internal/domain/performance"
	"github.com/Porizovatel/kulda/internal/domain/player"
	"github.com/Porizovatel/kulda/internal/domain/season"
)

const statsMaxConcurrentLoads = 4

// PlayerSeasonStats aggregates one player's stored lines over a season.
type PlayerSeasonStats struct {
	PlayerID     string
	PlayerName   string
	Gender       player.Gender
	Season       string
	GamesPlayed  int
	TotalPoints  int
	MaxTotalPins int
	AvgTotalPins float64
	MaxFull      int
	AvgFull      float64
	MaxSpare     int
	AvgSpare     float64
	MaxErrors    int
	AvgErrors    float64
}

// StatsService computes per-player season aggregates from stored performance
// rows. Player records are loaded concurrently; the result order is fixed
// afterwards so callers see a stable table.
type StatsService struct {
	seasonRepo season.Repository
	matchRepo  match.Repository
	perfRepo   performance.Repository
	playerRepo player.Repository
}

func NewStatsService(
	seasonRepo season.Repository,
	matchRepo match.Repository,
	perfRepo performance.Repository,
	playerRepo player.Repository,
) *StatsService {
	return &StatsService{
		seasonRepo: seasonRepo,
		matchRepo:  matchRepo,
		perfRepo:   perfRepo,
		playerRepo: playerRepo,
	}
}

// PlayerStats returns season aggregates for every player with at least one
// stored line, optionally narrowed to one gender.
func (s *StatsService) PlayerStats(ctx context.Context, seasonID string, gender player.Gender) ([]PlayerSeasonStats, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatsService.PlayerStats")
	defer span.End()

	seasonID = strings.TrimSpace(seasonID)
	if seasonID == "" {
		return nil, fmt.Errorf("%w: season id is required", ErrInvalidInput)
	}
	if gender != "" {
		if _, ok := player.AllGenders[gender]; !ok {
			return nil, fmt.Errorf("%w: unknown gender %q", ErrInvalidInput, gender)
		}
	}

	item, exists, err := s.seasonRepo.GetByID(ctx, seasonID)
	if err != nil {
		return nil, fmt.Errorf("get season: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: season=%s", ErrNotFound, seasonID)
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
	if len(completedIDs) == 0 {
		return nil, nil
	}

	rows, err := s.perfRepo.ListPlayerByMatchIDs(ctx, completedIDs)
	if err != nil {
		return nil, fmt.Errorf("list player performances: %w", err)
	}

	byPlayer := make(map[string][]performance.PlayerPerformance)
	for _, row := range rows {
		byPlayer[row.PlayerID] = append(byPlayer[row.PlayerID], row)
	}

	loads := pool.NewWithResults[PlayerSeasonStats]().
		WithErrors().
		WithContext(ctx).
		WithMaxGoroutines(statsMaxConcurrentLoads)

	for playerID, lines := range byPlayer {
		playerID := playerID
		lines := lines
		loads.Go(func(ctx context.Context) (PlayerSeasonStats, error) {
			record, exists, err := s.playerRepo.GetByID(ctx, playerID)
			if err != nil {
				return PlayerSeasonStats{}, fmt.Errorf("get player %s: %w", playerID, err)
			}

			row := aggregatePlayerLines(item.Name, playerID, lines)
			if exists {
				row.PlayerName = record.Name
				row.Gender = record.Gender
			}
			return row, nil
		})
	}

	stats, err := loads.Wait()
	if err != nil {
		return nil, err
	}

	if gender != "" {
		filtered := stats[:0]
		for _, row := range stats {
			if row.Gender == gender {
				filtered = append(filtered, row)
			}
		}
		stats = filtered
	}

	sort.SliceStable(stats, func(i, j int) bool {
		if stats[i].AvgTotalPins != stats[j].AvgTotalPins {
			return stats[i].AvgTotalPins > stats[j].AvgTotalPins
		}
		return stats[i].PlayerID < stats[j].PlayerID
	})

	return stats, nil
}

func aggregatePlayerLines(seasonName, playerID string, lines []performance.PlayerPerformance) PlayerSeasonStats {
	row := PlayerSeasonStats{
		PlayerID:    playerID,
		Season:      seasonName,
		GamesPlayed: len(lines),
	}

	var sumTotal, sumFull, sumSpare, sumErrors int
	for _, line := range lines {
		row.TotalPoints += line.Points
		sumTotal += line.TotalPins
		sumFull += line.Full
		sumSpare += line.Spare
		sumErrors += line.Errors

		if line.TotalPins > row.MaxTotalPins {
			row.MaxTotalPins = line.TotalPins
		}
		if line.Full > row.MaxFull {
			row.MaxFull = line.Full
		}
		if line.Spare > row.MaxSpare {
			row.MaxSpare = line.Spare
		}
		if line.Errors > row.MaxErrors {
			row.MaxErrors = line.Errors
		}
	}

	if row.GamesPlayed > 0 {
		games := float64(row.GamesPlayed)
		row.AvgTotalPins = float64(sumTotal) / games
		row.AvgFull = float64(sumFull) / games
		row.AvgSpare = float64(sumSpare) / games
		row.AvgErrors = float64(sumErrors) / games
	}

	return row
}
