package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/Porizovatel/kulda/internal/domain/match"
	"github.com/Porizovatel/kulda/internal/domain/season"
	"github.com/Porizovatel/kulda/internal/domain/team"
	idgen "github.com/Porizovatel/kulda/internal/platform/id"
	"github.com/Porizovatel/kulda/internal/platform/logging"
)

const (
	// maxSlotAttempts bounds the weekly probe per leg so a packed calendar
	// cannot loop forever.
	maxSlotAttempts = 52

	minTeamSpacingDays = 7
	returnLegGapDays   = 14
)

// SkippedLeg records a fixture the generator could not place.
type SkippedLeg struct {
	HomeTeamID string
	AwayTeamID string
	Reason     string
}

type ScheduleResult struct {
	Matches []match.Match
	Skipped []SkippedLeg
}

// ScheduleService builds a double round-robin fixture list for a season.
// Regeneration replaces the season's existing matches wholesale.
type ScheduleService struct {
	seasonRepo season.Repository
	teamRepo   team.Repository
	matchRepo  match.Repository
	idGen      idgen.Generator
	logger     *logging.Logger
}

func NewScheduleService(
	seasonRepo season.Repository,
	teamRepo team.Repository,
	matchRepo match.Repository,
	idGen idgen.Generator,
	logger *logging.Logger,
) *ScheduleService {
	if logger == nil {
		logger = logging.Default()
	}

	return &ScheduleService{
		seasonRepo: seasonRepo,
		teamRepo:   teamRepo,
		matchRepo:  matchRepo,
		idGen:      idGen,
		logger:     logger,
	}
}

// Generate replaces the season's fixtures with a fresh double round-robin.
// Each pair gets a home leg at each team's weekly slot; legs that cannot be
// placed within the season window are reported, not silently dropped.
func (s *ScheduleService) Generate(ctx context.Context, seasonID string) (ScheduleResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScheduleService.Generate")
	defer span.End()

	seasonID = strings.TrimSpace(seasonID)
	if seasonID == "" {
		return ScheduleResult{}, fmt.Errorf("%w: season id is required", ErrInvalidInput)
	}

	item, exists, err := s.seasonRepo.GetByID(ctx, seasonID)
	if err != nil {
		return ScheduleResult{}, fmt.Errorf("get season: %w", err)
	}
	if !exists {
		return ScheduleResult{}, fmt.Errorf("%w: season=%s", ErrNotFound, seasonID)
	}
	if !item.Active {
		return ScheduleResult{}, fmt.Errorf("%w: season %s is not active", ErrInvalidInput, item.Name)
	}

	teams, err := s.teamRepo.List(ctx)
	if err != nil {
		return ScheduleResult{}, fmt.Errorf("list teams: %w", err)
	}

	active := make([]team.Team, 0, len(teams))
	for _, t := range teams {
		if t.ActiveDuring(item.StartDate, item.EndDate) {
			active = append(active, t)
		}
	}
	if len(active) < 2 {
		return ScheduleResult{}, fmt.Errorf("%w: season %s has %d active teams, need at least 2", ErrInvalidInput, item.Name, len(active))
	}

	// Team order is the only source of nondeterminism; pin it.
	sort.SliceStable(active, func(i, j int) bool { return active[i].ID < active[j].ID })

	if err := s.matchRepo.DeleteBySeason(ctx, item.Name); err != nil {
		return ScheduleResult{}, fmt.Errorf("clear season matches: %w", err)
	}

	gen := scheduleRun{
		season: item,
		dates:  make(map[string][]time.Time, len(active)),
		busy:   make(map[string]struct{}, len(active)*4),
	}

	var result ScheduleResult
	for i := 0; i < len(active); i++ {
		for j := i + 1; j < len(active); j++ {
			a := active[i]
			b := active[j]

			firstLeg, placed, reason := gen.placeLeg(a, b, item.StartDate)
			if !placed {
				result.Skipped = append(result.Skipped, SkippedLeg{HomeTeamID: a.ID, AwayTeamID: b.ID, Reason: reason})
			}

			returnFrom := item.StartDate
			if placed {
				returnFrom = firstLeg.AddDate(0, 0, returnLegGapDays)
			}
			secondLeg, returnPlaced, returnReason := gen.placeLeg(b, a, returnFrom)
			if !returnPlaced {
				result.Skipped = append(result.Skipped, SkippedLeg{HomeTeamID: b.ID, AwayTeamID: a.ID, Reason: returnReason})
			}

			if placed {
				m, err := s.newMatch(item.Name, a, b, firstLeg)
				if err != nil {
					return ScheduleResult{}, err
				}
				result.Matches = append(result.Matches, m)
			}
			if returnPlaced {
				m, err := s.newMatch(item.Name, b, a, secondLeg)
				if err != nil {
					return ScheduleResult{}, err
				}
				result.Matches = append(result.Matches, m)
			}
		}
	}

	if len(result.Matches) == 0 {
		return ScheduleResult{}, fmt.Errorf("%w: season %s: no leg fits the window", ErrInfeasible, item.Name)
	}

	sort.SliceStable(result.Matches, func(i, j int) bool {
		return result.Matches[i].Date.Before(result.Matches[j].Date)
	})

	if err := s.matchRepo.BulkCreate(ctx, result.Matches); err != nil {
		return ScheduleResult{}, fmt.Errorf("store generated matches: %w", err)
	}

	for _, skipped := range result.Skipped {
		s.logger.WarnContext(ctx, "fixture leg skipped",
			"season", item.Name,
			"home_team_id", skipped.HomeTeamID,
			"away_team_id", skipped.AwayTeamID,
			"reason", skipped.Reason,
		)
	}

	return result, nil
}

func (s *ScheduleService) newMatch(seasonName string, home, away team.Team, date time.Time) (match.Match, error) {
	matchID, err := s.idGen.NewID()
	if err != nil {
		return match.Match{}, fmt.Errorf("generate match id: %w", err)
	}

	return match.Match{
		ID:         matchID,
		Date:       date,
		HomeTeamID: home.ID,
		AwayTeamID: away.ID,
		Venue:      home.Venue,
		Season:     seasonName,
		Completed:  false,
	}, nil
}

// scheduleRun carries the mutable placement state for one generation pass.
type scheduleRun struct {
	season season.Season
	dates  map[string][]time.Time
	busy   map[string]struct{}
}

// placeLeg walks the home team's weekly slot forward from earliest until it
// finds a date where neither team plays that day and both teams have at
// least a week of rest. A false result carries the reason for diagnostics.
func (r *scheduleRun) placeLeg(home, away team.Team, earliest time.Time) (time.Time, bool, string) {
	candidate := nextSlotDate(earliest, home.Slot)
	var lastReason string

	for attempt := 0; attempt < maxSlotAttempts; attempt++ {
		if candidate.After(r.season.EndDate) {
			return time.Time{}, false, "season window exhausted"
		}

		switch {
		case r.isBusy(home.ID, candidate) || r.isBusy(away.ID, candidate):
			lastReason = "same-day conflict"
		case !r.hasSpacing(home.ID, candidate) || !r.hasSpacing(away.ID, candidate):
			lastReason = "less than a week since previous match"
		default:
			r.commit(home.ID, away.ID, candidate)
			return candidate, true, ""
		}

		candidate = candidate.AddDate(0, 0, 7)
	}

	if lastReason == "" {
		lastReason = "no slot within attempt limit"
	}
	return time.Time{}, false, lastReason
}

func (r *scheduleRun) isBusy(teamID string, date time.Time) bool {
	_, ok := r.busy[busyKey(teamID, date)]
	return ok
}

// hasSpacing checks the candidate against every committed date of the team,
// not just the most recent one. Pairs are placed out of chronological order,
// so a new leg can land before an already committed match.
func (r *scheduleRun) hasSpacing(teamID string, date time.Time) bool {
	for _, committed := range r.dates[teamID] {
		gap := date.Sub(committed)
		if gap < 0 {
			gap = -gap
		}
		if gap < time.Duration(minTeamSpacingDays)*24*time.Hour {
			return false
		}
	}
	return true
}

func (r *scheduleRun) commit(homeID, awayID string, date time.Time) {
	r.busy[busyKey(homeID, date)] = struct{}{}
	r.busy[busyKey(awayID, date)] = struct{}{}
	r.dates[homeID] = append(r.dates[homeID], date)
	r.dates[awayID] = append(r.dates[awayID], date)
}

func busyKey(teamID string, date time.Time) string {
	return teamID + "|" + date.Format("2006-01-02")
}

// nextSlotDate returns the first occurrence of the slot's weekday at the
// slot's start time on or after earliest.
func nextSlotDate(earliest time.Time, slot team.Slot) time.Time {
	date := time.Date(earliest.Year(), earliest.Month(), earliest.Day(), 0, 0, 0, 0, earliest.Location())
	offset := (slot.DayOfWeek - int(date.Weekday()) + 7) % 7
	date = date.AddDate(0, 0, offset)

	start, err := time.Parse("15:04", slot.TimeStart)
	if err != nil {
		return date
	}

	return date.Add(time.Duration(start.Hour())*time.Hour + time.Duration(start.Minute())*time.Minute)
}
