package usecase

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/Porizovatel/kulda/internal/domain/season"
	seasonmock "github.com/Porizovatel/kulda/internal/mocks/domain/season"
)

func TestSeasonService_Activate_FlipsFlagUsingMockery(t *testing.T) {
	t.Parallel()

	seasonRepo := seasonmock.NewRepository(t)
	service := NewSeasonService(seasonRepo, &seqIDGenerator{prefix: "season"})

	stored := season.Season{
		ID:        "season-1",
		Name:      "2025/2026",
		StartDate: time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 4, 30, 0, 0, 0, 0, time.UTC),
	}

	seasonRepo.
		On("GetByID", mock.Anything, "season-1").
		Return(stored, true, nil).
		Once()
	seasonRepo.
		On("SetActive", mock.Anything, "season-1").
		Return(nil).
		Once()

	activated, err := service.Activate(t.Context(), "season-1")
	if err != nil {
		t.Fatalf("activate: %v", err)
	}
	if !activated.Active {
		t.Fatal("expected returned season marked active")
	}
}

func TestSeasonService_Activate_PropagatesRepoErrorUsingMockery(t *testing.T) {
	t.Parallel()

	seasonRepo := seasonmock.NewRepository(t)
	service := NewSeasonService(seasonRepo, &seqIDGenerator{prefix: "season"})

	stored := season.Season{
		ID:        "season-1",
		Name:      "2025/2026",
		StartDate: time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 4, 30, 0, 0, 0, 0, time.UTC),
	}
	repoErr := errors.New("write conflict")

	seasonRepo.
		On("GetByID", mock.Anything, "season-1").
		Return(stored, true, nil).
		Once()
	seasonRepo.
		On("SetActive", mock.Anything, "season-1").
		Return(repoErr).
		Once()

	_, err := service.Activate(t.Context(), "season-1")
	if !errors.Is(err, repoErr) {
		t.Fatalf("expected repo error wrapped, got %v", err)
	}
}
