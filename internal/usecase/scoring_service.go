package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/Porizovatel/kulda/internal/domain/match"
	"github.com/Porizovatel/kulda/internal/domain/performance"
	"github.com/Porizovatel/kulda/internal/platform/cache"
	idgen "github.com/Porizovatel/kulda/internal/platform/id"
	"github.com/Porizovatel/kulda/internal/platform/logging"
)

const (
	lineupSize = 4

	duelWinPoints  = 2
	duelDrawPoints = 1

	// maxAuxiliaryPoints is the per-team ceiling: four duels at 2 points
	// plus the team-pins bonus at 2 points.
	maxAuxiliaryPoints = 10
)

// PlayerScore is one player's raw line as entered at the lanes.
type PlayerScore struct {
	PlayerID string
	Position int
	Full     int
	Spare    int
	Errors   int
}

type ScoreMatchInput struct {
	MatchID string
	Home    []PlayerScore
	Away    []PlayerScore
}

type ScoreMatchResult struct {
	Match   match.Match
	Players []performance.PlayerPerformance
	Home    performance.TeamPerformance
	Away    performance.TeamPerformance
}

// MatchResultEvent is published to the outbound webhook after a match is
// scored.
type MatchResultEvent struct {
	MatchID       string
	Season        string
	Date          time.Time
	HomeTeamID    string
	AwayTeamID    string
	HomePoints    int
	AwayPoints    int
	HomeAuxiliary int
	AwayAuxiliary int
	HomePins      int
	AwayPins      int
}

// ResultPublisher delivers completed match results to an external consumer.
type ResultPublisher interface {
	PublishMatchResult(ctx context.Context, event MatchResultEvent) error
}

// ScoringService turns two raw 4-player lineups into duel points, auxiliary
// points and match points, and persists the derived rows.
type ScoringService struct {
	matchRepo   match.Repository
	perfRepo    performance.Repository
	eligibility *EligibilityService
	idGen       idgen.Generator
	standings   *cache.Store
	publisher   ResultPublisher
	logger      *logging.Logger
}

func NewScoringService(
	matchRepo match.Repository,
	perfRepo performance.Repository,
	eligibility *EligibilityService,
	idGen idgen.Generator,
	standings *cache.Store,
	publisher ResultPublisher,
	logger *logging.Logger,
) *ScoringService {
	if logger == nil {
		logger = logging.Default()
	}

	return &ScoringService{
		matchRepo:   matchRepo,
		perfRepo:    perfRepo,
		eligibility: eligibility,
		idGen:       idGen,
		standings:   standings,
		publisher:   publisher,
		logger:      logger,
	}
}

// ScoreMatch validates both lineups, checks eligibility on the match date and
// applies the duel algorithm. Re-running it on a completed match overwrites
// every derived row, so corrections are a plain rescore.
func (s *ScoringService) ScoreMatch(ctx context.Context, input ScoreMatchInput) (ScoreMatchResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoringService.ScoreMatch")
	defer span.End()

	matchID := strings.TrimSpace(input.MatchID)
	if matchID == "" {
		return ScoreMatchResult{}, fmt.Errorf("%w: match id is required", ErrInvalidInput)
	}

	item, exists, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return ScoreMatchResult{}, fmt.Errorf("get match: %w", err)
	}
	if !exists {
		return ScoreMatchResult{}, fmt.Errorf("%w: match=%s", ErrNotFound, matchID)
	}

	home, err := normalizeLineup(input.Home)
	if err != nil {
		return ScoreMatchResult{}, fmt.Errorf("%w: home lineup: %v", ErrInvalidInput, err)
	}
	away, err := normalizeLineup(input.Away)
	if err != nil {
		return ScoreMatchResult{}, fmt.Errorf("%w: away lineup: %v", ErrInvalidInput, err)
	}

	if err := s.checkLineupEligibility(ctx, item.HomeTeamID, home, item.Date); err != nil {
		return ScoreMatchResult{}, err
	}
	if err := s.checkLineupEligibility(ctx, item.AwayTeamID, away, item.Date); err != nil {
		return ScoreMatchResult{}, err
	}

	return s.applyScores(ctx, item, home, away)
}

// applyScores runs the deterministic scoring steps and persists the outcome.
// Lineups must already be normalized; eligibility is the caller's concern so
// historical rescores do not trip over later roster moves.
func (s *ScoringService) applyScores(ctx context.Context, item match.Match, home, away []PlayerScore) (ScoreMatchResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoringService.applyScores")
	defer span.End()

	players := make([]performance.PlayerPerformance, 0, 2*lineupSize)
	var homeDuelPoints, awayDuelPoints int
	var homePins, awayPins int

	for i := 0; i < lineupSize; i++ {
		h := home[i]
		a := away[i]
		hTotal := h.Full + h.Spare
		aTotal := a.Full + a.Spare
		hPts, aPts := splitPoints(hTotal, aTotal)

		homeDuelPoints += hPts
		awayDuelPoints += aPts
		homePins += hTotal
		awayPins += aTotal

		hRow, err := s.playerRow(item, h, item.HomeTeamID, item.AwayTeamID, hTotal, hPts)
		if err != nil {
			return ScoreMatchResult{}, err
		}
		aRow, err := s.playerRow(item, a, item.AwayTeamID, item.HomeTeamID, aTotal, aPts)
		if err != nil {
			return ScoreMatchResult{}, err
		}
		players = append(players, hRow, aRow)
	}

	homeBonus, awayBonus := splitPoints(homePins, awayPins)
	homeAux := homeDuelPoints + homeBonus
	awayAux := awayDuelPoints + awayBonus
	homeMatchPoints, awayMatchPoints := splitPoints(homeAux, awayAux)

	homeTeamID, err := s.idGen.NewID()
	if err != nil {
		return ScoreMatchResult{}, fmt.Errorf("generate team performance id: %w", err)
	}
	awayTeamID, err := s.idGen.NewID()
	if err != nil {
		return ScoreMatchResult{}, fmt.Errorf("generate team performance id: %w", err)
	}

	homePerf := performance.TeamPerformance{
		ID:              homeTeamID,
		MatchID:         item.ID,
		TeamID:          item.HomeTeamID,
		TotalPins:       homePins,
		Points:          homeMatchPoints,
		AuxiliaryPoints: homeAux,
	}
	awayPerf := performance.TeamPerformance{
		ID:              awayTeamID,
		MatchID:         item.ID,
		TeamID:          item.AwayTeamID,
		TotalPins:       awayPins,
		Points:          awayMatchPoints,
		AuxiliaryPoints: awayAux,
	}

	// A corrected lineup may drop a previously stored player, so clear the
	// match's rows before writing the fresh set.
	if err := s.perfRepo.DeleteByMatch(ctx, item.ID); err != nil {
		return ScoreMatchResult{}, fmt.Errorf("clear match performances: %w", err)
	}
	if err := s.perfRepo.UpsertPlayerPerformances(ctx, players); err != nil {
		return ScoreMatchResult{}, fmt.Errorf("upsert player performances: %w", err)
	}
	if err := s.perfRepo.UpsertTeamPerformances(ctx, []performance.TeamPerformance{homePerf, awayPerf}); err != nil {
		return ScoreMatchResult{}, fmt.Errorf("upsert team performances: %w", err)
	}

	item.Completed = true
	if err := s.matchRepo.Update(ctx, item); err != nil {
		return ScoreMatchResult{}, fmt.Errorf("mark match completed: %w", err)
	}

	if s.standings != nil {
		s.standings.DeletePrefix(ctx, standingsCacheKey(item.Season))
	}

	if s.publisher != nil {
		event := MatchResultEvent{
			MatchID:       item.ID,
			Season:        item.Season,
			Date:          item.Date,
			HomeTeamID:    item.HomeTeamID,
			AwayTeamID:    item.AwayTeamID,
			HomePoints:    homeMatchPoints,
			AwayPoints:    awayMatchPoints,
			HomeAuxiliary: homeAux,
			AwayAuxiliary: awayAux,
			HomePins:      homePins,
			AwayPins:      awayPins,
		}
		if err := s.publisher.PublishMatchResult(ctx, event); err != nil {
			s.logger.WarnContext(ctx, "publish match result failed", "match_id", item.ID, "error", err)
		}
	}

	return ScoreMatchResult{
		Match:   item,
		Players: players,
		Home:    homePerf,
		Away:    awayPerf,
	}, nil
}

func (s *ScoringService) playerRow(item match.Match, score PlayerScore, teamID, opponentID string, totalPins, points int) (performance.PlayerPerformance, error) {
	rowID, err := s.idGen.NewID()
	if err != nil {
		return performance.PlayerPerformance{}, fmt.Errorf("generate player performance id: %w", err)
	}

	return performance.PlayerPerformance{
		ID:         rowID,
		MatchID:    item.ID,
		PlayerID:   score.PlayerID,
		TeamID:     teamID,
		OpponentID: opponentID,
		Position:   score.Position,
		Full:       score.Full,
		Spare:      score.Spare,
		Errors:     score.Errors,
		TotalPins:  totalPins,
		Points:     points,
	}, nil
}

func (s *ScoringService) checkLineupEligibility(ctx context.Context, teamID string, lineup []PlayerScore, date time.Time) error {
	if s.eligibility == nil {
		return nil
	}

	for _, score := range lineup {
		active, err := s.eligibility.IsActiveOnDate(ctx, score.PlayerID, teamID, date)
		if err != nil {
			return err
		}
		if !active {
			return fmt.Errorf("%w: player %s was not active at team %s on the match date", ErrInvalidInput, score.PlayerID, teamID)
		}
	}

	return nil
}

// normalizeLineup enforces the all-or-nothing precondition: exactly four
// distinct players occupying distinct positions 1..4 with non-negative raw
// scores. The returned slice is ordered by position.
func normalizeLineup(lineup []PlayerScore) ([]PlayerScore, error) {
	if len(lineup) != lineupSize {
		return nil, fmt.Errorf("incomplete lineup: expected %d players, got %d", lineupSize, len(lineup))
	}

	seenPositions := make(map[int]struct{}, lineupSize)
	seenPlayers := make(map[string]struct{}, lineupSize)
	out := make([]PlayerScore, len(lineup))
	copy(out, lineup)

	for _, score := range out {
		if strings.TrimSpace(score.PlayerID) == "" {
			return nil, fmt.Errorf("player id is required")
		}
		if score.Position < 1 || score.Position > lineupSize {
			return nil, fmt.Errorf("position %d is out of range [1,%d]", score.Position, lineupSize)
		}
		if _, dup := seenPositions[score.Position]; dup {
			return nil, fmt.Errorf("duplicate position %d", score.Position)
		}
		seenPositions[score.Position] = struct{}{}
		if _, dup := seenPlayers[score.PlayerID]; dup {
			return nil, fmt.Errorf("duplicate player %s", score.PlayerID)
		}
		seenPlayers[score.PlayerID] = struct{}{}
		if score.Full < 0 || score.Spare < 0 || score.Errors < 0 {
			return nil, fmt.Errorf("raw scores must be non-negative for player %s", score.PlayerID)
		}
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Position < out[j].Position })

	return out, nil
}

// splitPoints settles one comparison: 2/0 for a win, 1/1 for a tie. Ties are
// first-class outcomes at every level, never special-cased away.
func splitPoints(a, b int) (int, int) {
	switch {
	case a > b:
		return duelWinPoints, 0
	case a < b:
		return 0, duelWinPoints
	default:
		return duelDrawPoints, duelDrawPoints
	}
}

func standingsCacheKey(seasonName string) string {
	return "standings|" + seasonName
}
