package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Porizovatel/kulda/internal/domain/team"
	idgen "github.com/Porizovatel/kulda/internal/platform/id"
)

type CreateTeamInput struct {
	Name      string
	Venue     string
	Slot      team.Slot
	StartDate time.Time
	EndDate   *time.Time
}

type UpdateTeamInput struct {
	TeamID    string
	Name      string
	Venue     string
	Slot      *team.Slot
	StartDate time.Time
	EndDate   *time.Time
}

type TeamService struct {
	teamRepo team.Repository
	idGen    idgen.Generator
}

func NewTeamService(teamRepo team.Repository, idGen idgen.Generator) *TeamService {
	return &TeamService{
		teamRepo: teamRepo,
		idGen:    idGen,
	}
}

func (s *TeamService) List(ctx context.Context) ([]team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.List")
	defer span.End()

	items, err := s.teamRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}

	return items, nil
}

func (s *TeamService) Get(ctx context.Context, teamID string) (team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.Get")
	defer span.End()

	teamID = strings.TrimSpace(teamID)
	if teamID == "" {
		return team.Team{}, fmt.Errorf("%w: team id is required", ErrInvalidInput)
	}

	item, exists, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return team.Team{}, fmt.Errorf("get team: %w", err)
	}
	if !exists {
		return team.Team{}, fmt.Errorf("%w: team=%s", ErrNotFound, teamID)
	}

	return item, nil
}

func (s *TeamService) Create(ctx context.Context, input CreateTeamInput) (team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.Create")
	defer span.End()

	teamID, err := s.idGen.NewID()
	if err != nil {
		return team.Team{}, fmt.Errorf("generate team id: %w", err)
	}

	item := team.Team{
		ID:        teamID,
		Name:      strings.TrimSpace(input.Name),
		Venue:     strings.TrimSpace(input.Venue),
		Slot:      input.Slot,
		StartDate: input.StartDate,
		EndDate:   input.EndDate,
	}
	if err := item.Validate(); err != nil {
		return team.Team{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.teamRepo.Create(ctx, item); err != nil {
		return team.Team{}, fmt.Errorf("create team: %w", err)
	}

	return item, nil
}

func (s *TeamService) Update(ctx context.Context, input UpdateTeamInput) (team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.Update")
	defer span.End()

	current, err := s.Get(ctx, input.TeamID)
	if err != nil {
		return team.Team{}, err
	}

	if name := strings.TrimSpace(input.Name); name != "" {
		current.Name = name
	}
	if venue := strings.TrimSpace(input.Venue); venue != "" {
		current.Venue = venue
	}
	if input.Slot != nil {
		current.Slot = *input.Slot
	}
	if !input.StartDate.IsZero() {
		current.StartDate = input.StartDate
	}
	if input.EndDate != nil {
		current.EndDate = input.EndDate
	}
	if err := current.Validate(); err != nil {
		return team.Team{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.teamRepo.Update(ctx, current); err != nil {
		return team.Team{}, fmt.Errorf("update team: %w", err)
	}

	return current, nil
}

func (s *TeamService) Delete(ctx context.Context, teamID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.Delete")
	defer span.End()

	item, err := s.Get(ctx, teamID)
	if err != nil {
		return err
	}

	if err := s.teamRepo.Delete(ctx, item.ID); err != nil {
		return fmt.Errorf("delete team: %w", err)
	}

	return nil
}
