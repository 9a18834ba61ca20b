package usecase

import (
	"errors"
	"testing"
	"time"

	"github.com/Porizovatel/kulda/internal/domain/match"
	"github.com/Porizovatel/kulda/internal/infrastructure/repository/memory"
	"github.com/Porizovatel/kulda/internal/platform/logging"
)

func matchFixture(t *testing.T, matches []match.Match) (*MatchService, *memory.PerformanceRepository) {
	t.Helper()

	matchRepo := memory.NewMatchRepository(matches)
	teamRepo := memory.NewTeamRepository(memory.SeedTeams())
	perfRepo := memory.NewPerformanceRepository()
	service := NewMatchService(matchRepo, teamRepo, perfRepo, &seqIDGenerator{prefix: "match"}, nil)

	return service, perfRepo
}

func TestMatchService_Create_DefaultsVenueToHomeTeam(t *testing.T) {
	service, _ := matchFixture(t, nil)

	created, err := service.Create(t.Context(), CreateMatchInput{
		Date:       time.Date(2025, 10, 7, 17, 0, 0, 0, time.UTC),
		HomeTeamID: "team-zizkov",
		AwayTeamID: "team-vrsovice",
		Season:     "2025/2026",
	})
	if err != nil {
		t.Fatalf("create match: %v", err)
	}

	if created.Venue == "" {
		t.Fatal("expected venue defaulted from home team")
	}
	if created.Completed {
		t.Fatal("expected new match not completed")
	}

	stored, err := service.Get(t.Context(), created.ID)
	if err != nil {
		t.Fatalf("get match: %v", err)
	}
	if stored.HomeTeamID != "team-zizkov" || stored.AwayTeamID != "team-vrsovice" {
		t.Fatalf("unexpected stored match: %+v", stored)
	}
}

func TestMatchService_Create_UnknownTeam(t *testing.T) {
	service, _ := matchFixture(t, nil)

	_, err := service.Create(t.Context(), CreateMatchInput{
		Date:       time.Date(2025, 10, 7, 17, 0, 0, 0, time.UTC),
		HomeTeamID: "team-missing",
		AwayTeamID: "team-vrsovice",
		Season:     "2025/2026",
	})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMatchService_Create_RejectsSelfPlay(t *testing.T) {
	service, _ := matchFixture(t, nil)

	_, err := service.Create(t.Context(), CreateMatchInput{
		Date:       time.Date(2025, 10, 7, 17, 0, 0, 0, time.UTC),
		HomeTeamID: "team-zizkov",
		AwayTeamID: "team-zizkov",
		Season:     "2025/2026",
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestMatchService_Delete_CascadesPerformances(t *testing.T) {
	matchRepo := memory.NewMatchRepository([]match.Match{
		{ID: "m1", Date: time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC), HomeTeamID: "team-zizkov", AwayTeamID: "team-vrsovice", Season: "2025/2026"},
	})
	perfRepo := memory.NewPerformanceRepository()
	scoring := NewScoringService(matchRepo, perfRepo, nil, &seqIDGenerator{prefix: "perf"}, nil, nil, logging.NewNop())
	service := NewMatchService(matchRepo, memory.NewTeamRepository(memory.SeedTeams()), perfRepo, &seqIDGenerator{prefix: "match"}, nil)

	if _, err := scoring.ScoreMatch(t.Context(), ScoreMatchInput{
		MatchID: "m1",
		Home:    homeLineup(),
		Away:    awayLineup(),
	}); err != nil {
		t.Fatalf("score match: %v", err)
	}

	if err := service.Delete(t.Context(), "m1"); err != nil {
		t.Fatalf("delete match: %v", err)
	}

	if _, err := service.Get(t.Context(), "m1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected match gone, got %v", err)
	}
	rows, err := perfRepo.ListPlayerByMatch(t.Context(), "m1")
	if err != nil {
		t.Fatalf("list rows: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("expected performance rows cascaded, got %d", len(rows))
	}
}

func TestMatchService_ListBySeason_RequiresName(t *testing.T) {
	service, _ := matchFixture(t, nil)

	_, err := service.ListBySeason(t.Context(), "  ")
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
