package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Porizovatel/kulda/internal/domain/season"
	idgen "github.com/Porizovatel/kulda/internal/platform/id"
)

type CreateSeasonInput struct {
	Name      string // optional, derived from the start date when empty
	StartDate time.Time
	EndDate   time.Time
	Active    bool
}

type UpdateSeasonInput struct {
	SeasonID  string
	Name      string
	StartDate time.Time
	EndDate   time.Time
}

// SeasonService owns the season lifecycle, including the single-active-season
// rule.
type SeasonService struct {
	seasonRepo season.Repository
	idGen      idgen.Generator
	now        func() time.Time
}

func NewSeasonService(seasonRepo season.Repository, idGen idgen.Generator) *SeasonService {
	return &SeasonService{
		seasonRepo: seasonRepo,
		idGen:      idGen,
		now:        time.Now,
	}
}

func (s *SeasonService) List(ctx context.Context) ([]season.Season, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SeasonService.List")
	defer span.End()

	items, err := s.seasonRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list seasons: %w", err)
	}

	return items, nil
}

func (s *SeasonService) Get(ctx context.Context, seasonID string) (season.Season, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SeasonService.Get")
	defer span.End()

	seasonID = strings.TrimSpace(seasonID)
	if seasonID == "" {
		return season.Season{}, fmt.Errorf("%w: season id is required", ErrInvalidInput)
	}

	item, exists, err := s.seasonRepo.GetByID(ctx, seasonID)
	if err != nil {
		return season.Season{}, fmt.Errorf("get season: %w", err)
	}
	if !exists {
		return season.Season{}, fmt.Errorf("%w: season=%s", ErrNotFound, seasonID)
	}

	return item, nil
}

func (s *SeasonService) GetActive(ctx context.Context) (season.Season, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SeasonService.GetActive")
	defer span.End()

	item, exists, err := s.seasonRepo.GetActive(ctx)
	if err != nil {
		return season.Season{}, fmt.Errorf("get active season: %w", err)
	}
	if !exists {
		return season.Season{}, fmt.Errorf("%w: no active season", ErrNotFound)
	}

	return item, nil
}

func (s *SeasonService) Create(ctx context.Context, input CreateSeasonInput) (season.Season, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SeasonService.Create")
	defer span.End()

	name := strings.TrimSpace(input.Name)
	if name == "" {
		base := input.StartDate
		if base.IsZero() {
			base = s.now()
		}
		name = season.DefaultName(base)
	}

	seasonID, err := s.idGen.NewID()
	if err != nil {
		return season.Season{}, fmt.Errorf("generate season id: %w", err)
	}

	item := season.Season{
		ID:        seasonID,
		Name:      name,
		StartDate: input.StartDate,
		EndDate:   input.EndDate,
		Active:    input.Active,
	}
	if err := item.Validate(); err != nil {
		return season.Season{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.seasonRepo.Create(ctx, item); err != nil {
		return season.Season{}, fmt.Errorf("create season: %w", err)
	}

	if item.Active {
		if err := s.seasonRepo.SetActive(ctx, item.ID); err != nil {
			return season.Season{}, fmt.Errorf("activate season: %w", err)
		}
	}

	return item, nil
}

func (s *SeasonService) Update(ctx context.Context, input UpdateSeasonInput) (season.Season, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SeasonService.Update")
	defer span.End()

	current, err := s.Get(ctx, input.SeasonID)
	if err != nil {
		return season.Season{}, err
	}

	if name := strings.TrimSpace(input.Name); name != "" {
		current.Name = name
	}
	if !input.StartDate.IsZero() {
		current.StartDate = input.StartDate
	}
	if !input.EndDate.IsZero() {
		current.EndDate = input.EndDate
	}
	if err := current.Validate(); err != nil {
		return season.Season{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.seasonRepo.Update(ctx, current); err != nil {
		return season.Season{}, fmt.Errorf("update season: %w", err)
	}

	return current, nil
}

// Activate makes the season the league's single active one.
func (s *SeasonService) Activate(ctx context.Context, seasonID string) (season.Season, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SeasonService.Activate")
	defer span.End()

	item, err := s.Get(ctx, seasonID)
	if err != nil {
		return season.Season{}, err
	}

	if err := s.seasonRepo.SetActive(ctx, item.ID); err != nil {
		return season.Season{}, fmt.Errorf("activate season: %w", err)
	}
	item.Active = true

	return item, nil
}

func (s *SeasonService) Delete(ctx context.Context, seasonID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.SeasonService.Delete")
	defer span.End()

	item, err := s.Get(ctx, seasonID)
	if err != nil {
		return err
	}

	if err := s.seasonRepo.Delete(ctx, item.ID); err != nil {
		return fmt.Errorf("delete season: %w", err)
	}

	return nil
}
