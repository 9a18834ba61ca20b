package usecase

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/Porizovatel/kulda/internal/domain/team"
	teammock "github.com/Porizovatel/kulda/internal/mocks/domain/team"
)

func TestTeamService_Create_PersistsValidatedTeamUsingMockery(t *testing.T) {
	t.Parallel()

	teamRepo := teammock.NewRepository(t)
	service := NewTeamService(teamRepo, &seqIDGenerator{prefix: "team"})

	teamRepo.
		On("Create", mock.Anything, mock.MatchedBy(func(item team.Team) bool {
			return item.ID == "team-001" && item.Name == "Sokol Liben" && item.Slot.DayOfWeek == 5
		})).
		Return(nil).
		Once()

	created, err := service.Create(t.Context(), CreateTeamInput{
		Name:      "  Sokol Liben  ",
		Venue:     "Kuzelna Liben",
		Slot:      team.Slot{DayOfWeek: 5, TimeStart: "17:00", TimeEnd: "20:00"},
		StartDate: time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("create team: %v", err)
	}
	if created.Name != "Sokol Liben" {
		t.Fatalf("expected trimmed name, got %q", created.Name)
	}
}

func TestTeamService_Create_RejectsInvalidSlotUsingMockery(t *testing.T) {
	t.Parallel()

	teamRepo := teammock.NewRepository(t)
	service := NewTeamService(teamRepo, &seqIDGenerator{prefix: "team"})

	_, err := service.Create(t.Context(), CreateTeamInput{
		Name:      "Sokol Liben",
		Venue:     "Kuzelna Liben",
		Slot:      team.Slot{DayOfWeek: 7, TimeStart: "17:00", TimeEnd: "20:00"},
		StartDate: time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC),
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestTeamService_Update_AppliesPartialFieldsUsingMockery(t *testing.T) {
	t.Parallel()

	teamRepo := teammock.NewRepository(t)
	service := NewTeamService(teamRepo, &seqIDGenerator{prefix: "team"})

	existing := team.Team{
		ID:        "team-zizkov",
		Name:      "Sokol Zizkov",
		Venue:     "Kuzelna Zizkov",
		Slot:      team.Slot{DayOfWeek: 2, TimeStart: "17:00", TimeEnd: "20:00"},
		StartDate: time.Date(2019, 9, 1, 0, 0, 0, 0, time.UTC),
	}

	teamRepo.
		On("GetByID", mock.Anything, "team-zizkov").
		Return(existing, true, nil).
		Once()
	teamRepo.
		On("Update", mock.Anything, mock.MatchedBy(func(item team.Team) bool {
			return item.Venue == "Kuzelna Harfa" && item.Name == "Sokol Zizkov"
		})).
		Return(nil).
		Once()

	updated, err := service.Update(t.Context(), UpdateTeamInput{
		TeamID: "team-zizkov",
		Venue:  "Kuzelna Harfa",
	})
	if err != nil {
		t.Fatalf("update team: %v", err)
	}
	if updated.Venue != "Kuzelna Harfa" {
		t.Fatalf("expected venue updated, got %q", updated.Venue)
	}
}

func TestTeamService_Get_NotFoundUsingMockery(t *testing.T) {
	t.Parallel()

	teamRepo := teammock.NewRepository(t)
	service := NewTeamService(teamRepo, &seqIDGenerator{prefix: "team"})

	teamRepo.
		On("GetByID", mock.Anything, "team-missing").
		Return(team.Team{}, false, nil).
		Once()

	_, err := service.Get(t.Context(), "team-missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
