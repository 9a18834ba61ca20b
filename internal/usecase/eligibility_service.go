package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Porizovatel/kulda/internal/domain/membership"
	"github.com/Porizovatel/kulda/internal/domain/player"
)

// EligibilityService answers membership-window questions: who was on a team
// on a given date, and whether a prospective stint would collide with the
// player's windows at other teams.
type EligibilityService struct {
	stintRepo  membership.Repository
	playerRepo player.Repository
	now        func() time.Time
}

func NewEligibilityService(stintRepo membership.Repository, playerRepo player.Repository) *EligibilityService {
	return &EligibilityService{
		stintRepo:  stintRepo,
		playerRepo: playerRepo,
		now:        time.Now,
	}
}

// IsActiveOnDate reports whether the player had a stint at the team whose
// window contains date. Boundary days count as active.
func (s *EligibilityService) IsActiveOnDate(ctx context.Context, playerID, teamID string, date time.Time) (bool, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.EligibilityService.IsActiveOnDate")
	defer span.End()

	playerID = strings.TrimSpace(playerID)
	teamID = strings.TrimSpace(teamID)
	if playerID == "" || teamID == "" {
		return false, fmt.Errorf("%w: player id and team id are required", ErrInvalidInput)
	}

	stints, err := s.stintRepo.ListByPlayer(ctx, playerID)
	if err != nil {
		return false, fmt.Errorf("list stints by player: %w", err)
	}

	for _, stint := range stints {
		if stint.TeamID == teamID && stint.ContainsDate(date) {
			return true, nil
		}
	}

	return false, nil
}

// ActivePlayers returns the players whose stint at the team contains date.
func (s *EligibilityService) ActivePlayers(ctx context.Context, teamID string, date time.Time) ([]player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.EligibilityService.ActivePlayers")
	defer span.End()

	teamID = strings.TrimSpace(teamID)
	if teamID == "" {
		return nil, fmt.Errorf("%w: team id is required", ErrInvalidInput)
	}

	stints, err := s.stintRepo.ListByTeam(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("list stints by team: %w", err)
	}

	out := make([]player.Player, 0, len(stints))
	for _, stint := range stints {
		if !stint.ContainsDate(date) {
			continue
		}
		item, exists, err := s.playerRepo.GetByID(ctx, stint.PlayerID)
		if err != nil {
			return nil, fmt.Errorf("get player: %w", err)
		}
		if !exists {
			continue
		}
		out = append(out, item)
	}

	return out, nil
}

// ActivePlayerCount counts the team's active roster on the given date.
func (s *EligibilityService) ActivePlayerCount(ctx context.Context, teamID string, date time.Time) (int, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.EligibilityService.ActivePlayerCount")
	defer span.End()

	players, err := s.ActivePlayers(ctx, teamID, date)
	if err != nil {
		return 0, err
	}

	return len(players), nil
}

// CanJoin checks a prospective membership window against the player's stints
// at other teams. It is advisory: a false result means the write should not
// be attempted, not that one failed.
func (s *EligibilityService) CanJoin(ctx context.Context, playerID, teamID string, joinDate time.Time, leaveDate *time.Time) (bool, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.EligibilityService.CanJoin")
	defer span.End()

	playerID = strings.TrimSpace(playerID)
	teamID = strings.TrimSpace(teamID)
	if playerID == "" || teamID == "" {
		return false, fmt.Errorf("%w: player id and team id are required", ErrInvalidInput)
	}
	if joinDate.IsZero() {
		return false, fmt.Errorf("%w: join date is required", ErrInvalidInput)
	}
	if leaveDate != nil && leaveDate.Before(joinDate) {
		return false, fmt.Errorf("%w: leave date must not precede join date", ErrInvalidInput)
	}

	stints, err := s.stintRepo.ListByPlayer(ctx, playerID)
	if err != nil {
		return false, fmt.Errorf("list stints by player: %w", err)
	}

	for _, stint := range stints {
		if stint.TeamID == teamID {
			continue
		}
		if stint.Overlaps(joinDate, leaveDate) {
			return false, nil
		}
	}

	return true, nil
}

// CurrentStint derives the player's membership window containing the current
// date. Player rows deliberately carry no join/leave mirror of this.
func (s *EligibilityService) CurrentStint(ctx context.Context, playerID string) (membership.Stint, bool, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.EligibilityService.CurrentStint")
	defer span.End()

	playerID = strings.TrimSpace(playerID)
	if playerID == "" {
		return membership.Stint{}, false, fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}

	stints, err := s.stintRepo.ListByPlayer(ctx, playerID)
	if err != nil {
		return membership.Stint{}, false, fmt.Errorf("list stints by player: %w", err)
	}

	now := s.now()
	for _, stint := range stints {
		if stint.ContainsDate(now) {
			return stint, true, nil
		}
	}

	return membership.Stint{}, false, nil
}
