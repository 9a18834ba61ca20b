package memory

import (
	"time"

	"github.com/Porizovatel/kulda/internal/domain/membership"
	"github.com/Porizovatel/kulda/internal/domain/player"
	"github.com/Porizovatel/kulda/internal/domain/season"
	"github.com/Porizovatel/kulda/internal/domain/team"
)

const SeasonID20252026 = "season-2025-2026"

func SeedSeasons() []season.Season {
	return []season.Season{
		{
			ID:        SeasonID20252026,
			Name:      "2025/2026",
			StartDate: time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC),
			EndDate:   time.Date(2026, 4, 30, 0, 0, 0, 0, time.UTC),
			Active:    true,
		},
		{
			ID:        "season-2024-2025",
			Name:      "2024/2025",
			StartDate: time.Date(2024, 9, 1, 0, 0, 0, 0, time.UTC),
			EndDate:   time.Date(2025, 4, 30, 0, 0, 0, 0, time.UTC),
			Active:    false,
		},
	}
}

func SeedTeams() []team.Team {
	return []team.Team{
		{
			ID:    "team-zizkov",
			Name:  "Sokol Zizkov",
			Venue: "Kuzelna Zizkov",
			Slot: team.Slot{
				DayOfWeek: 2,
				TimeStart: "17:00",
				TimeEnd:   "20:00",
			},
			StartDate: time.Date(2019, 9, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			ID:    "team-vrsovice",
			Name:  "TJ Vrsovice",
			Venue: "Kuzelna Vrsovice",
			Slot: team.Slot{
				DayOfWeek: 3,
				TimeStart: "18:00",
				TimeEnd:   "21:00",
			},
			StartDate: time.Date(2020, 9, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			ID:    "team-branik",
			Name:  "SK Branik",
			Venue: "Kuzelna Branik",
			Slot: team.Slot{
				DayOfWeek: 4,
				TimeStart: "17:30",
				TimeEnd:   "20:30",
			},
			StartDate: time.Date(2018, 9, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			ID:    "team-karlin",
			Name:  "Slavoj Karlin",
			Venue: "Kuzelna Karlin",
			Slot: team.Slot{
				DayOfWeek: 1,
				TimeStart: "18:30",
				TimeEnd:   "21:30",
			},
			StartDate: time.Date(2021, 9, 1, 0, 0, 0, 0, time.UTC),
		},
	}
}

func SeedPlayers() []player.Player {
	return []player.Player{
		{ID: "player-novak", Name: "Jiri Novak", TeamID: "team-zizkov", Gender: player.GenderMale},
		{ID: "player-svoboda", Name: "Petr Svoboda", TeamID: "team-zizkov", Gender: player.GenderMale},
		{ID: "player-dvorak", Name: "Karel Dvorak", TeamID: "team-zizkov", Gender: player.GenderMale},
		{ID: "player-cerna", Name: "Lenka Cerna", TeamID: "team-zizkov", Gender: player.GenderFemale},
		{ID: "player-prochazka", Name: "Tomas Prochazka", TeamID: "team-vrsovice", Gender: player.GenderMale},
		{ID: "player-vesela", Name: "Hana Vesela", TeamID: "team-vrsovice", Gender: player.GenderFemale},
		{ID: "player-horak", Name: "Milan Horak", TeamID: "team-vrsovice", Gender: player.GenderMale},
		{ID: "player-marek", Name: "Ondrej Marek", TeamID: "team-vrsovice", Gender: player.GenderMale},
		{ID: "player-pokorny", Name: "Vaclav Pokorny", TeamID: "team-branik", Gender: player.GenderMale},
		{ID: "player-kralova", Name: "Eva Kralova", TeamID: "team-branik", Gender: player.GenderFemale},
		{ID: "player-benes", Name: "Radek Benes", TeamID: "team-branik", Gender: player.GenderMale},
		{ID: "player-fiala", Name: "Martin Fiala", TeamID: "team-branik", Gender: player.GenderMale},
		{ID: "player-urban", Name: "Pavel Urban", TeamID: "team-karlin", Gender: player.GenderMale},
		{ID: "player-sedlakova", Name: "Jana Sedlakova", TeamID: "team-karlin", Gender: player.GenderFemale},
		{ID: "player-kolar", Name: "Josef Kolar", TeamID: "team-karlin", Gender: player.GenderMale},
		{ID: "player-zeman", Name: "Lukas Zeman", TeamID: "team-karlin", Gender: player.GenderMale},
	}
}

func SeedStints() []membership.Stint {
	stints := make([]membership.Stint, 0, len(SeedPlayers()))
	for _, item := range SeedPlayers() {
		stints = append(stints, membership.Stint{
			ID:       "stint-" + item.ID,
			PlayerID: item.ID,
			TeamID:   item.TeamID,
			JoinDate: time.Date(2024, 9, 1, 0, 0, 0, 0, time.UTC),
		})
	}
	return stints
}
