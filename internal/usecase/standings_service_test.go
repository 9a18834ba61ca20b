package usecase

import (
	"errors"
	"testing"
	"time"

	"github.com/Porizovatel/kulda/internal/domain/match"
	"github.com/Porizovatel/kulda/internal/domain/performance"
	"github.com/Porizovatel/kulda/internal/domain/season"
	"github.com/Porizovatel/kulda/internal/domain/team"
	"github.com/Porizovatel/kulda/internal/infrastructure/repository/memory"
	"github.com/Porizovatel/kulda/internal/platform/cache"
)

func standingsSeason() season.Season {
	return season.Season{
		ID:        "season-1",
		Name:      "2025/2026",
		StartDate: time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 4, 30, 0, 0, 0, 0, time.UTC),
		Active:    true,
	}
}

func standingsFixture(t *testing.T, store *cache.Store) (*StandingsService, *memory.PerformanceRepository) {
	t.Helper()

	seasonRepo := memory.NewSeasonRepository([]season.Season{standingsSeason()})
	teamRepo := memory.NewTeamRepository(memory.SeedTeams())
	matchRepo := memory.NewMatchRepository([]match.Match{
		{ID: "m1", Date: time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC), HomeTeamID: "team-zizkov", AwayTeamID: "team-vrsovice", Season: "2025/2026", Completed: true},
		{ID: "m2", Date: time.Date(2025, 10, 8, 0, 0, 0, 0, time.UTC), HomeTeamID: "team-branik", AwayTeamID: "team-karlin", Season: "2025/2026", Completed: true},
		{ID: "m3", Date: time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC), HomeTeamID: "team-zizkov", AwayTeamID: "team-branik", Season: "2025/2026"},
	})
	perfRepo := memory.NewPerformanceRepository()

	seed := []performance.TeamPerformance{
		{ID: "tp1", MatchID: "m1", TeamID: "team-zizkov", TotalPins: 1600, Points: 2, AuxiliaryPoints: 7},
		{ID: "tp2", MatchID: "m1", TeamID: "team-vrsovice", TotalPins: 1560, Points: 0, AuxiliaryPoints: 3},
		{ID: "tp3", MatchID: "m2", TeamID: "team-branik", TotalPins: 1580, Points: 2, AuxiliaryPoints: 6},
		{ID: "tp4", MatchID: "m2", TeamID: "team-karlin", TotalPins: 1540, Points: 0, AuxiliaryPoints: 4},
		// m3 is not completed; its rows must never exist, but guard anyway.
	}
	if err := perfRepo.UpsertTeamPerformances(t.Context(), seed); err != nil {
		t.Fatalf("seed team performances: %v", err)
	}

	return NewStandingsService(seasonRepo, teamRepo, matchRepo, perfRepo, store), perfRepo
}

func TestStandingsService_ForSeason_RanksAndDerives(t *testing.T) {
	service, _ := standingsFixture(t, nil)

	table, err := service.ForSeason(t.Context(), "season-1")
	if err != nil {
		t.Fatalf("standings: %v", err)
	}

	if len(table) != 4 {
		t.Fatalf("expected 4 rows, got %d", len(table))
	}

	// Both winners carry 2 points; zizkov outranks branik on auxiliary 7 > 6.
	if table[0].TeamID != "team-zizkov" || table[1].TeamID != "team-branik" {
		t.Fatalf("unexpected top of table: %s, %s", table[0].TeamID, table[1].TeamID)
	}
	if table[2].TeamID != "team-karlin" || table[3].TeamID != "team-vrsovice" {
		t.Fatalf("unexpected bottom of table: %s, %s", table[2].TeamID, table[3].TeamID)
	}

	top := table[0]
	if top.Rank != 1 || top.MatchesPlayed != 1 || top.Points != 2 {
		t.Fatalf("unexpected top row: %+v", top)
	}
	if top.LostPoints != 3 {
		t.Fatalf("expected lost points 10-7=3, got %d", top.LostPoints)
	}
	if top.AvgPins != 1600 {
		t.Fatalf("expected avg pins 1600, got %f", top.AvgPins)
	}

	for i, row := range table {
		if row.Rank != i+1 {
			t.Fatalf("expected dense ranks, got %d at index %d", row.Rank, i)
		}
	}
}

func TestStandingsService_ForSeason_AuxiliaryBreaksPointsTie(t *testing.T) {
	service, _ := standingsFixture(t, nil)

	table, err := service.ForSeason(t.Context(), "season-1")
	if err != nil {
		t.Fatalf("standings: %v", err)
	}

	// karlin and vrsovice both sit on 0 points; karlin leads on auxiliary 4 > 3.
	var karlinRank, vrsoviceRank int
	for _, row := range table {
		switch row.TeamID {
		case "team-karlin":
			karlinRank = row.Rank
		case "team-vrsovice":
			vrsoviceRank = row.Rank
		}
	}
	if karlinRank >= vrsoviceRank {
		t.Fatalf("expected karlin above vrsovice, got ranks %d and %d", karlinRank, vrsoviceRank)
	}
}

func TestStandingsService_ForSeason_AvgPinsBreaksFullTie(t *testing.T) {
	matches := []match.Match{
		{ID: "m1", Date: time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC), HomeTeamID: "team-zizkov", AwayTeamID: "team-vrsovice", Season: "2025/2026", Completed: true},
		{ID: "m2", Date: time.Date(2025, 10, 8, 0, 0, 0, 0, time.UTC), HomeTeamID: "team-branik", AwayTeamID: "team-karlin", Season: "2025/2026", Completed: true},
	}
	// Both winners and both losers tie on points and auxiliary points; only
	// the pin averages separate them.
	rows := []performance.TeamPerformance{
		{ID: "tp1", MatchID: "m1", TeamID: "team-zizkov", TotalPins: 1600, Points: 2, AuxiliaryPoints: 7},
		{ID: "tp2", MatchID: "m1", TeamID: "team-vrsovice", TotalPins: 1560, Points: 0, AuxiliaryPoints: 3},
		{ID: "tp3", MatchID: "m2", TeamID: "team-branik", TotalPins: 1620, Points: 2, AuxiliaryPoints: 7},
		{ID: "tp4", MatchID: "m2", TeamID: "team-karlin", TotalPins: 1500, Points: 0, AuxiliaryPoints: 3},
	}

	reversedTeams := func() []team.Team {
		seeds := memory.SeedTeams()
		out := make([]team.Team, 0, len(seeds))
		for i := len(seeds) - 1; i >= 0; i-- {
			out = append(out, seeds[i])
		}
		return out
	}

	for _, tc := range []struct {
		name  string
		teams []team.Team
	}{
		{name: "seed team order", teams: memory.SeedTeams()},
		{name: "reversed team order", teams: reversedTeams()},
	} {
		t.Run(tc.name, func(t *testing.T) {
			seasonRepo := memory.NewSeasonRepository([]season.Season{standingsSeason()})
			teamRepo := memory.NewTeamRepository(tc.teams)
			matchRepo := memory.NewMatchRepository(matches)
			perfRepo := memory.NewPerformanceRepository()
			if err := perfRepo.UpsertTeamPerformances(t.Context(), rows); err != nil {
				t.Fatalf("seed team performances: %v", err)
			}

			service := NewStandingsService(seasonRepo, teamRepo, matchRepo, perfRepo, nil)

			table, err := service.ForSeason(t.Context(), "season-1")
			if err != nil {
				t.Fatalf("standings: %v", err)
			}

			ranks := make(map[string]int, len(table))
			for _, row := range table {
				ranks[row.TeamID] = row.Rank
			}
			if ranks["team-branik"] >= ranks["team-zizkov"] {
				t.Fatalf("expected branik above zizkov on avg pins 1620 > 1600, got ranks %d and %d",
					ranks["team-branik"], ranks["team-zizkov"])
			}
			if ranks["team-vrsovice"] >= ranks["team-karlin"] {
				t.Fatalf("expected vrsovice above karlin on avg pins 1560 > 1500, got ranks %d and %d",
					ranks["team-vrsovice"], ranks["team-karlin"])
			}
		})
	}
}

func TestStandingsService_ForSeason_ExcludesTeamInactiveDuringSeason(t *testing.T) {
	folded := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)
	teams := append(memory.SeedTeams(), team.Team{
		ID:        "team-folded",
		Name:      "TJ Folded",
		Venue:     "Kuzelna Folded",
		Slot:      team.Slot{DayOfWeek: 5, TimeStart: "17:00", TimeEnd: "20:00"},
		StartDate: time.Date(2019, 9, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   &folded,
	})

	seasonRepo := memory.NewSeasonRepository([]season.Season{standingsSeason()})
	teamRepo := memory.NewTeamRepository(teams)
	matchRepo := memory.NewMatchRepository(nil)
	perfRepo := memory.NewPerformanceRepository()

	service := NewStandingsService(seasonRepo, teamRepo, matchRepo, perfRepo, nil)

	table, err := service.ForSeason(t.Context(), "season-1")
	if err != nil {
		t.Fatalf("standings: %v", err)
	}

	for _, row := range table {
		if row.TeamID == "team-folded" {
			t.Fatal("expected folded team excluded from the table")
		}
	}
	if len(table) != 4 {
		t.Fatalf("expected 4 rows, got %d", len(table))
	}
}

func TestStandingsService_ForSeason_UnknownSeason(t *testing.T) {
	service, _ := standingsFixture(t, nil)

	_, err := service.ForSeason(t.Context(), "season-missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestStandingsService_ForSeason_ServesCachedTable(t *testing.T) {
	store := cache.NewStore(time.Minute)
	service, perfRepo := standingsFixture(t, store)

	first, err := service.ForSeason(t.Context(), "season-1")
	if err != nil {
		t.Fatalf("first standings: %v", err)
	}

	// A write that bypasses the scoring path must not show up while the
	// cached table is live.
	if err := perfRepo.UpsertTeamPerformances(t.Context(), []performance.TeamPerformance{
		{ID: "tp5", MatchID: "m1", TeamID: "team-vrsovice", TotalPins: 1700, Points: 2, AuxiliaryPoints: 8},
	}); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	second, err := service.ForSeason(t.Context(), "season-1")
	if err != nil {
		t.Fatalf("second standings: %v", err)
	}
	if second[0].TeamID != first[0].TeamID {
		t.Fatalf("expected cached table, leader changed from %s to %s", first[0].TeamID, second[0].TeamID)
	}

	store.DeletePrefix(t.Context(), standingsCacheKey("2025/2026"))

	third, err := service.ForSeason(t.Context(), "season-1")
	if err != nil {
		t.Fatalf("third standings: %v", err)
	}
	var vrsovice int
	for _, row := range third {
		if row.TeamID == "team-vrsovice" {
			vrsovice = row.Points
		}
	}
	if vrsovice != 2 {
		t.Fatalf("expected recompute to pick up new row, got %d points", vrsovice)
	}
}
