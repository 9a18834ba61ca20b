// Package httpapi exposes the league over a versioned JSON API. Responses
// follow the Google JSON envelope; errors map usecase sentinels onto HTTP
// statuses.
package httpapi

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	jsoniter "github.com/json-iterator/go"

	"github.com/Porizovatel/kulda/internal/domain/match"
	"github.com/Porizovatel/kulda/internal/domain/membership"
	"github.com/Porizovatel/kulda/internal/domain/performance"
	"github.com/Porizovatel/kulda/internal/domain/player"
	"github.com/Porizovatel/kulda/internal/domain/season"
	"github.com/Porizovatel/kulda/internal/domain/standing"
	"github.com/Porizovatel/kulda/internal/domain/team"
	"github.com/Porizovatel/kulda/internal/platform/logging"
	"github.com/Porizovatel/kulda/internal/usecase"
)

const dateLayout = "2006-01-02"

type Handler struct {
	teamService      *usecase.TeamService
	playerService    *usecase.PlayerService
	seasonService    *usecase.SeasonService
	matchService     *usecase.MatchService
	scoringService   *usecase.ScoringService
	standingsService *usecase.StandingsService
	scheduleService  *usecase.ScheduleService
	statsService     *usecase.StatsService
	rescoreService   *usecase.RescoreService
	eligibility      *usecase.EligibilityService
	logger           *logging.Logger
	validator        *validator.Validate
}

func NewHandler(
	teamService *usecase.TeamService,
	playerService *usecase.PlayerService,
	seasonService *usecase.SeasonService,
	matchService *usecase.MatchService,
	scoringService *usecase.ScoringService,
	standingsService *usecase.StandingsService,
	scheduleService *usecase.ScheduleService,
	statsService *usecase.StatsService,
	rescoreService *usecase.RescoreService,
	eligibility *usecase.EligibilityService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		teamService:      teamService,
		playerService:    playerService,
		seasonService:    seasonService,
		matchService:     matchService,
		scoringService:   scoringService,
		standingsService: standingsService,
		scheduleService:  scheduleService,
		statsService:     statsService,
		rescoreService:   rescoreService,
		eligibility:      eligibility,
		logger:           logger,
		validator:        validator.New(),
	}
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

func decodeJSON(body io.Reader, target any) error {
	decoder := jsoniter.NewDecoder(body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(target); err != nil {
		return fmt.Errorf("%w: decode request body: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

func parseDate(raw string) (time.Time, error) {
	value, err := time.Parse(dateLayout, strings.TrimSpace(raw))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid date %q, expected YYYY-MM-DD", usecase.ErrInvalidInput, raw)
	}

	return value, nil
}

func parseOptionalDate(raw string) (*time.Time, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	value, err := parseDate(raw)
	if err != nil {
		return nil, err
	}

	return &value, nil
}

func parseTimestamp(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if value, err := time.Parse(time.RFC3339, raw); err == nil {
		return value, nil
	}
	if value, err := time.Parse(dateLayout, raw); err == nil {
		return value, nil
	}

	return time.Time{}, fmt.Errorf("%w: invalid timestamp %q, expected RFC 3339 or YYYY-MM-DD", usecase.ErrInvalidInput, raw)
}

func nowUTC() time.Time {
	return time.Now().UTC().Truncate(24 * time.Hour)
}

func formatDate(v time.Time) string {
	return v.UTC().Format(dateLayout)
}

func formatOptionalDate(v *time.Time) string {
	if v == nil || v.IsZero() {
		return ""
	}
	return formatDate(*v)
}

type slotRecord struct {
	DayOfWeek int    `json:"day_of_week" validate:"gte=0,lte=6"`
	TimeStart string `json:"time_start" validate:"required"`
	TimeEnd   string `json:"time_end" validate:"required"`
}

type createTeamRequest struct {
	Name      string     `json:"name" validate:"required,max=120"`
	Venue     string     `json:"venue" validate:"required,max=120"`
	Slot      slotRecord `json:"slot" validate:"required"`
	StartDate string     `json:"start_date" validate:"required"`
	EndDate   string     `json:"end_date"`
}

type updateTeamRequest struct {
	Name      string      `json:"name" validate:"omitempty,max=120"`
	Venue     string      `json:"venue" validate:"omitempty,max=120"`
	Slot      *slotRecord `json:"slot"`
	StartDate string      `json:"start_date"`
	EndDate   string      `json:"end_date"`
}

type createPlayerRequest struct {
	Name     string `json:"name" validate:"required,max=120"`
	Gender   string `json:"gender" validate:"required,oneof=male female"`
	TeamID   string `json:"team_id"`
	JoinDate string `json:"join_date" validate:"required_with=TeamID"`
}

type updatePlayerRequest struct {
	Name   string `json:"name" validate:"omitempty,max=120"`
	Gender string `json:"gender" validate:"omitempty,oneof=male female"`
}

type joinTeamRequest struct {
	TeamID   string `json:"team_id" validate:"required"`
	JoinDate string `json:"join_date" validate:"required"`
}

type leaveTeamRequest struct {
	LeaveDate string `json:"leave_date" validate:"required"`
}

type createSeasonRequest struct {
	Name      string `json:"name" validate:"omitempty,max=40"`
	StartDate string `json:"start_date" validate:"required"`
	EndDate   string `json:"end_date" validate:"required"`
	Active    bool   `json:"active"`
}

type updateSeasonRequest struct {
	Name      string `json:"name" validate:"omitempty,max=40"`
	StartDate string `json:"start_date" validate:"required"`
	EndDate   string `json:"end_date" validate:"required"`
}

type createMatchRequest struct {
	Date       string `json:"date" validate:"required"`
	HomeTeamID string `json:"home_team_id" validate:"required"`
	AwayTeamID string `json:"away_team_id" validate:"required"`
	Venue      string `json:"venue" validate:"omitempty,max=120"`
	Season     string `json:"season" validate:"required,max=40"`
}

type updateMatchRequest struct {
	Date  string `json:"date" validate:"required"`
	Venue string `json:"venue" validate:"omitempty,max=120"`
}

type playerScoreRecord struct {
	PlayerID string `json:"player_id" validate:"required"`
	Position int    `json:"position" validate:"gte=1,lte=4"`
	Full     int    `json:"full" validate:"gte=0"`
	Spare    int    `json:"spare" validate:"gte=0"`
	Errors   int    `json:"errors" validate:"gte=0"`
}

type scoreMatchRequest struct {
	Home []playerScoreRecord `json:"home" validate:"required,len=4,dive"`
	Away []playerScoreRecord `json:"away" validate:"required,len=4,dive"`
}

type rescoreRequest struct {
	Season     string `json:"season" validate:"omitempty,max=40"`
	MaxWorkers int    `json:"max_workers" validate:"gte=0"`
}

type teamDTO struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Venue     string  `json:"venue"`
	Slot      slotDTO `json:"slot"`
	StartDate string  `json:"start_date"`
	EndDate   string  `json:"end_date,omitempty"`
}

type slotDTO struct {
	DayOfWeek int    `json:"day_of_week"`
	TimeStart string `json:"time_start"`
	TimeEnd   string `json:"time_end"`
}

type playerDTO struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	TeamID string `json:"team_id,omitempty"`
	Gender string `json:"gender"`
}

type stintDTO struct {
	ID        string `json:"id"`
	PlayerID  string `json:"player_id"`
	TeamID    string `json:"team_id"`
	JoinDate  string `json:"join_date"`
	LeaveDate string `json:"leave_date,omitempty"`
}

type seasonDTO struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Active    bool   `json:"active"`
}

type matchDTO struct {
	ID         string `json:"id"`
	Date       string `json:"date"`
	HomeTeamID string `json:"home_team_id"`
	AwayTeamID string `json:"away_team_id"`
	Venue      string `json:"venue"`
	Season     string `json:"season"`
	Completed  bool   `json:"completed"`
}

type playerPerformanceDTO struct {
	PlayerID   string `json:"player_id"`
	TeamID     string `json:"team_id"`
	OpponentID string `json:"opponent_id,omitempty"`
	Position   int    `json:"position"`
	Full       int    `json:"full"`
	Spare      int    `json:"spare"`
	Errors     int    `json:"errors"`
	TotalPins  int    `json:"total_pins"`
	Points     int    `json:"points"`
}

type teamPerformanceDTO struct {
	TeamID          string `json:"team_id"`
	TotalPins       int    `json:"total_pins"`
	Points          int    `json:"points"`
	AuxiliaryPoints int    `json:"auxiliary_points"`
}

type scoreResultDTO struct {
	Match   matchDTO               `json:"match"`
	Players []playerPerformanceDTO `json:"players"`
	Home    teamPerformanceDTO     `json:"home"`
	Away    teamPerformanceDTO     `json:"away"`
}

type matchDetailDTO struct {
	Match   matchDTO               `json:"match"`
	Players []playerPerformanceDTO `json:"players,omitempty"`
	Teams   []teamPerformanceDTO   `json:"teams,omitempty"`
}

type standingDTO struct {
	Rank            int     `json:"rank"`
	TeamID          string  `json:"team_id"`
	TeamName        string  `json:"team_name"`
	Season          string  `json:"season"`
	MatchesPlayed   int     `json:"matches_played"`
	Points          int     `json:"points"`
	AuxiliaryPoints int     `json:"auxiliary_points"`
	LostPoints      int     `json:"lost_points"`
	TotalPins       int     `json:"total_pins"`
	AvgPins         float64 `json:"avg_pins"`
}

type skippedLegDTO struct {
	HomeTeamID string `json:"home_team_id"`
	AwayTeamID string `json:"away_team_id"`
	Reason     string `json:"reason"`
}

type scheduleResultDTO struct {
	Matches []matchDTO      `json:"matches"`
	Skipped []skippedLegDTO `json:"skipped,omitempty"`
}

type playerStatsDTO struct {
	PlayerID     string  `json:"player_id"`
	PlayerName   string  `json:"player_name"`
	Gender       string  `json:"gender"`
	Season       string  `json:"season"`
	GamesPlayed  int     `json:"games_played"`
	TotalPoints  int     `json:"total_points"`
	MaxTotalPins int     `json:"max_total_pins"`
	AvgTotalPins float64 `json:"avg_total_pins"`
	MaxFull      int     `json:"max_full"`
	AvgFull      float64 `json:"avg_full"`
	MaxSpare     int     `json:"max_spare"`
	AvgSpare     float64 `json:"avg_spare"`
	MaxErrors    int     `json:"max_errors"`
	AvgErrors    float64 `json:"avg_errors"`
}

func teamToDTO(v team.Team) teamDTO {
	return teamDTO{
		ID:    v.ID,
		Name:  v.Name,
		Venue: v.Venue,
		Slot: slotDTO{
			DayOfWeek: v.Slot.DayOfWeek,
			TimeStart: v.Slot.TimeStart,
			TimeEnd:   v.Slot.TimeEnd,
		},
		StartDate: formatDate(v.StartDate),
		EndDate:   formatOptionalDate(v.EndDate),
	}
}

func playerToDTO(v player.Player) playerDTO {
	return playerDTO{
		ID:     v.ID,
		Name:   v.Name,
		TeamID: v.TeamID,
		Gender: string(v.Gender),
	}
}

func stintToDTO(v membership.Stint) stintDTO {
	return stintDTO{
		ID:        v.ID,
		PlayerID:  v.PlayerID,
		TeamID:    v.TeamID,
		JoinDate:  formatDate(v.JoinDate),
		LeaveDate: formatOptionalDate(v.LeaveDate),
	}
}

func seasonToDTO(v season.Season) seasonDTO {
	return seasonDTO{
		ID:        v.ID,
		Name:      v.Name,
		StartDate: formatDate(v.StartDate),
		EndDate:   formatDate(v.EndDate),
		Active:    v.Active,
	}
}

func matchToDTO(v match.Match) matchDTO {
	return matchDTO{
		ID:         v.ID,
		Date:       v.Date.UTC().Format(time.RFC3339),
		HomeTeamID: v.HomeTeamID,
		AwayTeamID: v.AwayTeamID,
		Venue:      v.Venue,
		Season:     v.Season,
		Completed:  v.Completed,
	}
}

func playerPerformanceToDTO(v performance.PlayerPerformance) playerPerformanceDTO {
	return playerPerformanceDTO{
		PlayerID:   v.PlayerID,
		TeamID:     v.TeamID,
		OpponentID: v.OpponentID,
		Position:   v.Position,
		Full:       v.Full,
		Spare:      v.Spare,
		Errors:     v.Errors,
		TotalPins:  v.TotalPins,
		Points:     v.Points,
	}
}

func teamPerformanceToDTO(v performance.TeamPerformance) teamPerformanceDTO {
	return teamPerformanceDTO{
		TeamID:          v.TeamID,
		TotalPins:       v.TotalPins,
		Points:          v.Points,
		AuxiliaryPoints: v.AuxiliaryPoints,
	}
}

func scoreResultToDTO(v usecase.ScoreMatchResult) scoreResultDTO {
	players := make([]playerPerformanceDTO, 0, len(v.Players))
	for _, row := range v.Players {
		players = append(players, playerPerformanceToDTO(row))
	}

	return scoreResultDTO{
		Match:   matchToDTO(v.Match),
		Players: players,
		Home:    teamPerformanceToDTO(v.Home),
		Away:    teamPerformanceToDTO(v.Away),
	}
}

func standingToDTO(v standing.Standing) standingDTO {
	return standingDTO{
		Rank:            v.Rank,
		TeamID:          v.TeamID,
		TeamName:        v.TeamName,
		Season:          v.Season,
		MatchesPlayed:   v.MatchesPlayed,
		Points:          v.Points,
		AuxiliaryPoints: v.AuxiliaryPoints,
		LostPoints:      v.LostPoints,
		TotalPins:       v.TotalPins,
		AvgPins:         v.AvgPins,
	}
}

func scheduleResultToDTO(v usecase.ScheduleResult) scheduleResultDTO {
	matches := make([]matchDTO, 0, len(v.Matches))
	for _, row := range v.Matches {
		matches = append(matches, matchToDTO(row))
	}
	skipped := make([]skippedLegDTO, 0, len(v.Skipped))
	for _, row := range v.Skipped {
		skipped = append(skipped, skippedLegDTO{
			HomeTeamID: row.HomeTeamID,
			AwayTeamID: row.AwayTeamID,
			Reason:     row.Reason,
		})
	}

	return scheduleResultDTO{Matches: matches, Skipped: skipped}
}

func playerStatsToDTO(v usecase.PlayerSeasonStats) playerStatsDTO {
	return playerStatsDTO{
		PlayerID:     v.PlayerID,
		PlayerName:   v.PlayerName,
		Gender:       string(v.Gender),
		Season:       v.Season,
		GamesPlayed:  v.GamesPlayed,
		TotalPoints:  v.TotalPoints,
		MaxTotalPins: v.MaxTotalPins,
		AvgTotalPins: v.AvgTotalPins,
		MaxFull:      v.MaxFull,
		AvgFull:      v.AvgFull,
		MaxSpare:     v.MaxSpare,
		AvgSpare:     v.AvgSpare,
		MaxErrors:    v.MaxErrors,
		AvgErrors:    v.AvgErrors,
	}
}

func scoresFromRecords(records []playerScoreRecord) []usecase.PlayerScore {
	out := make([]usecase.PlayerScore, 0, len(records))
	for _, record := range records {
		out = append(out, usecase.PlayerScore{
			PlayerID: record.PlayerID,
			Position: record.Position,
			Full:     record.Full,
			Spare:    record.Spare,
			Errors:   record.Errors,
		})
	}

	return out
}
