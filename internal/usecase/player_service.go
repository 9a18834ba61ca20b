package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Porizovatel/kulda/internal/domain/membership"
	"github.com/Porizovatel/kulda/internal/domain/player"
	idgen "github.com/Porizovatel/kulda/internal/platform/id"
)

type CreatePlayerInput struct {
	Name   string
	Gender player.Gender
	// TeamID, when set, opens an initial stint starting at JoinDate.
	TeamID   string
	JoinDate time.Time
}

type UpdatePlayerInput struct {
	PlayerID string
	Name     string
	Gender   player.Gender
}

// PlayerService owns player records and their membership stints. The stint
// windows are authoritative; the player's TeamID is a convenience pointer
// maintained by the join and leave paths.
type PlayerService struct {
	playerRepo  player.Repository
	stintRepo   membership.Repository
	eligibility *EligibilityService
	idGen       idgen.Generator
	now         func() time.Time
}

func NewPlayerService(
	playerRepo player.Repository,
	stintRepo membership.Repository,
	eligibility *EligibilityService,
	idGen idgen.Generator,
) *PlayerService {
	return &PlayerService{
		playerRepo:  playerRepo,
		stintRepo:   stintRepo,
		eligibility: eligibility,
		idGen:       idGen,
		now:         time.Now,
	}
}

func (s *PlayerService) List(ctx context.Context) ([]player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.List")
	defer span.End()

	items, err := s.playerRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}

	return items, nil
}

func (s *PlayerService) Get(ctx context.Context, playerID string) (player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.Get")
	defer span.End()

	playerID = strings.TrimSpace(playerID)
	if playerID == "" {
		return player.Player{}, fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}

	item, exists, err := s.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		return player.Player{}, fmt.Errorf("get player: %w", err)
	}
	if !exists {
		return player.Player{}, fmt.Errorf("%w: player=%s", ErrNotFound, playerID)
	}

	return item, nil
}

func (s *PlayerService) Create(ctx context.Context, input CreatePlayerInput) (player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.Create")
	defer span.End()

	playerID, err := s.idGen.NewID()
	if err != nil {
		return player.Player{}, fmt.Errorf("generate player id: %w", err)
	}

	item := player.Player{
		ID:     playerID,
		Name:   strings.TrimSpace(input.Name),
		Gender: input.Gender,
	}
	if err := item.Validate(); err != nil {
		return player.Player{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.playerRepo.Create(ctx, item); err != nil {
		return player.Player{}, fmt.Errorf("create player: %w", err)
	}

	if teamID := strings.TrimSpace(input.TeamID); teamID != "" {
		joinDate := input.JoinDate
		if joinDate.IsZero() {
			joinDate = s.now()
		}
		if _, err := s.JoinTeam(ctx, item.ID, teamID, joinDate); err != nil {
			return player.Player{}, err
		}
		item.TeamID = teamID
	}

	return item, nil
}

func (s *PlayerService) Update(ctx context.Context, input UpdatePlayerInput) (player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.Update")
	defer span.End()

	current, err := s.Get(ctx, input.PlayerID)
	if err != nil {
		return player.Player{}, err
	}

	if name := strings.TrimSpace(input.Name); name != "" {
		current.Name = name
	}
	if input.Gender != "" {
		current.Gender = input.Gender
	}
	if err := current.Validate(); err != nil {
		return player.Player{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.playerRepo.Update(ctx, current); err != nil {
		return player.Player{}, fmt.Errorf("update player: %w", err)
	}

	return current, nil
}

func (s *PlayerService) Delete(ctx context.Context, playerID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.Delete")
	defer span.End()

	item, err := s.Get(ctx, playerID)
	if err != nil {
		return err
	}

	stints, err := s.stintRepo.ListByPlayer(ctx, item.ID)
	if err != nil {
		return fmt.Errorf("list stints by player: %w", err)
	}
	for _, stint := range stints {
		if err := s.stintRepo.Delete(ctx, stint.ID); err != nil {
			return fmt.Errorf("delete stint: %w", err)
		}
	}

	if err := s.playerRepo.Delete(ctx, item.ID); err != nil {
		return fmt.Errorf("delete player: %w", err)
	}

	return nil
}

// JoinTeam opens a stint at the team starting at joinDate. The window must
// not collide with the player's stints at other teams.
func (s *PlayerService) JoinTeam(ctx context.Context, playerID, teamID string, joinDate time.Time) (membership.Stint, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.JoinTeam")
	defer span.End()

	item, err := s.Get(ctx, playerID)
	if err != nil {
		return membership.Stint{}, err
	}

	teamID = strings.TrimSpace(teamID)
	if teamID == "" {
		return membership.Stint{}, fmt.Errorf("%w: team id is required", ErrInvalidInput)
	}
	if joinDate.IsZero() {
		joinDate = s.now()
	}

	ok, err := s.eligibility.CanJoin(ctx, item.ID, teamID, joinDate, nil)
	if err != nil {
		return membership.Stint{}, err
	}
	if !ok {
		return membership.Stint{}, fmt.Errorf("%w: player %s has an overlapping stint at another team", ErrInvalidInput, item.ID)
	}

	stintID, err := s.idGen.NewID()
	if err != nil {
		return membership.Stint{}, fmt.Errorf("generate stint id: %w", err)
	}

	stint := membership.Stint{
		ID:       stintID,
		PlayerID: item.ID,
		TeamID:   teamID,
		JoinDate: joinDate,
	}
	if err := stint.Validate(); err != nil {
		return membership.Stint{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.stintRepo.Create(ctx, stint); err != nil {
		return membership.Stint{}, fmt.Errorf("create stint: %w", err)
	}

	item.TeamID = teamID
	if err := s.playerRepo.Update(ctx, item); err != nil {
		return membership.Stint{}, fmt.Errorf("update player team pointer: %w", err)
	}

	return stint, nil
}

// LeaveTeam closes the player's open stint at leaveDate.
func (s *PlayerService) LeaveTeam(ctx context.Context, playerID string, leaveDate time.Time) (membership.Stint, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.LeaveTeam")
	defer span.End()

	item, err := s.Get(ctx, playerID)
	if err != nil {
		return membership.Stint{}, err
	}
	if leaveDate.IsZero() {
		leaveDate = s.now()
	}

	stint, exists, err := s.eligibility.CurrentStint(ctx, item.ID)
	if err != nil {
		return membership.Stint{}, err
	}
	if !exists {
		return membership.Stint{}, fmt.Errorf("%w: player %s has no open stint", ErrNotFound, item.ID)
	}
	if leaveDate.Before(stint.JoinDate) {
		return membership.Stint{}, fmt.Errorf("%w: leave date must not precede join date", ErrInvalidInput)
	}

	stint.LeaveDate = &leaveDate
	if err := s.stintRepo.Update(ctx, stint); err != nil {
		return membership.Stint{}, fmt.Errorf("update stint: %w", err)
	}

	item.TeamID = ""
	if err := s.playerRepo.Update(ctx, item); err != nil {
		return membership.Stint{}, fmt.Errorf("update player team pointer: %w", err)
	}

	return stint, nil
}
