package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Porizovatel/kulda/internal/domain/match"
	"github.com/Porizovatel/kulda/internal/domain/performance"
	"github.com/Porizovatel/kulda/internal/domain/team"
	"github.com/Porizovatel/kulda/internal/platform/cache"
	idgen "github.com/Porizovatel/kulda/internal/platform/id"
)

type CreateMatchInput struct {
	Date       time.Time
	HomeTeamID string
	AwayTeamID string
	Venue      string // optional, defaults to the home team's venue
	Season     string
}

type UpdateMatchInput struct {
	MatchID string
	Date    time.Time
	Venue   string
}

// MatchService owns fixture records. Deleting a match cascades to its
// performance rows so standings never see orphaned lines.
type MatchService struct {
	matchRepo match.Repository
	teamRepo  team.Repository
	perfRepo  performance.Repository
	idGen     idgen.Generator
	standings *cache.Store
}

func NewMatchService(
	matchRepo match.Repository,
	teamRepo team.Repository,
	perfRepo performance.Repository,
	idGen idgen.Generator,
	standings *cache.Store,
) *MatchService {
	return &MatchService{
		matchRepo: matchRepo,
		teamRepo:  teamRepo,
		perfRepo:  perfRepo,
		idGen:     idGen,
		standings: standings,
	}
}

func (s *MatchService) List(ctx context.Context) ([]match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.List")
	defer span.End()

	items, err := s.matchRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}

	return items, nil
}

func (s *MatchService) ListBySeason(ctx context.Context, seasonName string) ([]match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.ListBySeason")
	defer span.End()

	seasonName = strings.TrimSpace(seasonName)
	if seasonName == "" {
		return nil, fmt.Errorf("%w: season name is required", ErrInvalidInput)
	}

	items, err := s.matchRepo.ListBySeason(ctx, seasonName)
	if err != nil {
		return nil, fmt.Errorf("list matches by season: %w", err)
	}

	return items, nil
}

func (s *MatchService) Get(ctx context.Context, matchID string) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.Get")
	defer span.End()

	matchID = strings.TrimSpace(matchID)
	if matchID == "" {
		return match.Match{}, fmt.Errorf("%w: match id is required", ErrInvalidInput)
	}

	item, exists, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return match.Match{}, fmt.Errorf("get match: %w", err)
	}
	if !exists {
		return match.Match{}, fmt.Errorf("%w: match=%s", ErrNotFound, matchID)
	}

	return item, nil
}

func (s *MatchService) Create(ctx context.Context, input CreateMatchInput) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.Create")
	defer span.End()

	homeTeamID := strings.TrimSpace(input.HomeTeamID)
	awayTeamID := strings.TrimSpace(input.AwayTeamID)

	home, exists, err := s.teamRepo.GetByID(ctx, homeTeamID)
	if err != nil {
		return match.Match{}, fmt.Errorf("get home team: %w", err)
	}
	if !exists {
		return match.Match{}, fmt.Errorf("%w: team=%s", ErrNotFound, homeTeamID)
	}
	if _, exists, err = s.teamRepo.GetByID(ctx, awayTeamID); err != nil {
		return match.Match{}, fmt.Errorf("get away team: %w", err)
	} else if !exists {
		return match.Match{}, fmt.Errorf("%w: team=%s", ErrNotFound, awayTeamID)
	}

	venue := strings.TrimSpace(input.Venue)
	if venue == "" {
		venue = home.Venue
	}

	matchID, err := s.idGen.NewID()
	if err != nil {
		return match.Match{}, fmt.Errorf("generate match id: %w", err)
	}

	item := match.Match{
		ID:         matchID,
		Date:       input.Date,
		HomeTeamID: homeTeamID,
		AwayTeamID: awayTeamID,
		Venue:      venue,
		Season:     strings.TrimSpace(input.Season),
		Completed:  false,
	}
	if err := item.Validate(); err != nil {
		return match.Match{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.matchRepo.Create(ctx, item); err != nil {
		return match.Match{}, fmt.Errorf("create match: %w", err)
	}

	return item, nil
}

func (s *MatchService) Update(ctx context.Context, input UpdateMatchInput) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.Update")
	defer span.End()

	current, err := s.Get(ctx, input.MatchID)
	if err != nil {
		return match.Match{}, err
	}

	if !input.Date.IsZero() {
		current.Date = input.Date
	}
	if venue := strings.TrimSpace(input.Venue); venue != "" {
		current.Venue = venue
	}
	if err := current.Validate(); err != nil {
		return match.Match{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.matchRepo.Update(ctx, current); err != nil {
		return match.Match{}, fmt.Errorf("update match: %w", err)
	}

	return current, nil
}

func (s *MatchService) Delete(ctx context.Context, matchID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.Delete")
	defer span.End()

	item, err := s.Get(ctx, matchID)
	if err != nil {
		return err
	}

	if err := s.perfRepo.DeleteByMatch(ctx, item.ID); err != nil {
		return fmt.Errorf("delete match performances: %w", err)
	}
	if err := s.matchRepo.Delete(ctx, item.ID); err != nil {
		return fmt.Errorf("delete match: %w", err)
	}

	if s.standings != nil && item.Completed {
		s.standings.DeletePrefix(ctx, standingsCacheKey(item.Season))
	}

	return nil
}

// Performances returns the stored player lines for a scored match.
func (s *MatchService) Performances(ctx context.Context, matchID string) ([]performance.PlayerPerformance, []performance.TeamPerformance, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.Performances")
	defer span.End()

	item, err := s.Get(ctx, matchID)
	if err != nil {
		return nil, nil, err
	}

	players, err := s.perfRepo.ListPlayerByMatch(ctx, item.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("list player performances: %w", err)
	}
	teams, err := s.perfRepo.ListTeamByMatch(ctx, item.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("list team performances: %w", err)
	}

	return players, teams, nil
}
