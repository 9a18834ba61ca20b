package usecase

import (
	"errors"
	"testing"
	"time"

	"github.com/Porizovatel/kulda/internal/domain/match"
	"github.com/Porizovatel/kulda/internal/domain/performance"
	"github.com/Porizovatel/kulda/internal/domain/player"
	"github.com/Porizovatel/kulda/internal/domain/season"
	"github.com/Porizovatel/kulda/internal/infrastructure/repository/memory"
)

func statsFixture(t *testing.T) *StatsService {
	t.Helper()

	seasonRepo := memory.NewSeasonRepository([]season.Season{standingsSeason()})
	matchRepo := memory.NewMatchRepository([]match.Match{
		{ID: "m1", Date: time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC), HomeTeamID: "team-zizkov", AwayTeamID: "team-vrsovice", Season: "2025/2026", Completed: true},
		{ID: "m2", Date: time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC), HomeTeamID: "team-vrsovice", AwayTeamID: "team-zizkov", Season: "2025/2026", Completed: true},
		{ID: "m3", Date: time.Date(2025, 10, 22, 0, 0, 0, 0, time.UTC), HomeTeamID: "team-zizkov", AwayTeamID: "team-branik", Season: "2025/2026"},
	})
	perfRepo := memory.NewPerformanceRepository()
	playerRepo := memory.NewPlayerRepository(memory.SeedPlayers())

	rows := []performance.PlayerPerformance{
		{ID: "pp1", MatchID: "m1", PlayerID: "player-novak", TeamID: "team-zizkov", OpponentID: "player-prochazka", Position: 1, Full: 280, Spare: 140, Errors: 2, TotalPins: 420, Points: 2},
		{ID: "pp2", MatchID: "m2", PlayerID: "player-novak", TeamID: "team-zizkov", OpponentID: "player-prochazka", Position: 1, Full: 260, Spare: 120, Errors: 4, TotalPins: 380, Points: 0},
		{ID: "pp3", MatchID: "m1", PlayerID: "player-cerna", TeamID: "team-zizkov", OpponentID: "player-vesela", Position: 4, Full: 270, Spare: 130, Errors: 1, TotalPins: 400, Points: 1},
		// Row on an uncompleted match must never surface.
		{ID: "pp4", MatchID: "m3", PlayerID: "player-novak", TeamID: "team-zizkov", OpponentID: "player-pokorny", Position: 1, Full: 300, Spare: 150, Errors: 0, TotalPins: 450, Points: 2},
	}
	if err := perfRepo.UpsertPlayerPerformances(t.Context(), rows); err != nil {
		t.Fatalf("seed rows: %v", err)
	}

	return NewStatsService(seasonRepo, matchRepo, perfRepo, playerRepo)
}

func TestStatsService_PlayerStats_Aggregates(t *testing.T) {
	service := statsFixture(t)

	stats, err := service.PlayerStats(t.Context(), "season-1", "")
	if err != nil {
		t.Fatalf("player stats: %v", err)
	}
	if len(stats) != 2 {
		t.Fatalf("expected 2 players, got %d", len(stats))
	}

	byID := make(map[string]PlayerSeasonStats, len(stats))
	for _, row := range stats {
		byID[row.PlayerID] = row
	}

	novak := byID["player-novak"]
	if novak.GamesPlayed != 2 {
		t.Fatalf("expected 2 games for novak, got %d", novak.GamesPlayed)
	}
	if novak.TotalPoints != 2 || novak.MaxTotalPins != 420 || novak.AvgTotalPins != 400 {
		t.Fatalf("unexpected novak aggregates: %+v", novak)
	}
	if novak.MaxFull != 280 || novak.AvgFull != 270 || novak.MaxErrors != 4 || novak.AvgErrors != 3 {
		t.Fatalf("unexpected novak maxima: %+v", novak)
	}
	if novak.PlayerName != "Jiri Novak" || novak.Gender != player.GenderMale {
		t.Fatalf("expected player record joined in, got %+v", novak)
	}

	// Sorted by average pins descending: cerna 400 == novak 400, tie falls
	// back to player id.
	if stats[0].PlayerID != "player-cerna" {
		t.Fatalf("expected player-cerna first on id tiebreak, got %s", stats[0].PlayerID)
	}
}

func TestStatsService_PlayerStats_GenderFilter(t *testing.T) {
	service := statsFixture(t)

	stats, err := service.PlayerStats(t.Context(), "season-1", player.GenderFemale)
	if err != nil {
		t.Fatalf("player stats: %v", err)
	}
	if len(stats) != 1 || stats[0].PlayerID != "player-cerna" {
		t.Fatalf("expected only player-cerna, got %+v", stats)
	}
}

func TestStatsService_PlayerStats_UnknownGenderRejected(t *testing.T) {
	service := statsFixture(t)

	_, err := service.PlayerStats(t.Context(), "season-1", "unknown")
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestStatsService_PlayerStats_NoCompletedMatches(t *testing.T) {
	seasonRepo := memory.NewSeasonRepository([]season.Season{standingsSeason()})
	matchRepo := memory.NewMatchRepository(nil)
	service := NewStatsService(seasonRepo, matchRepo, memory.NewPerformanceRepository(), memory.NewPlayerRepository(nil))

	stats, err := service.PlayerStats(t.Context(), "season-1", "")
	if err != nil {
		t.Fatalf("player stats: %v", err)
	}
	if len(stats) != 0 {
		t.Fatalf("expected empty stats, got %d rows", len(stats))
	}
}

func TestStatsService_PlayerStats_UnknownSeason(t *testing.T) {
	service := statsFixture(t)

	_, err := service.PlayerStats(t.Context(), "season-missing", "")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
