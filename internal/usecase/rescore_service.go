package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/Porizovatel/kulda/internal/domain/match"
	"github.com/Porizovatel/kulda/internal/domain/performance"
)

const (
	rescoreStatusSuccess = "success"
	rescoreStatusFailed  = "failed"
	rescoreStatusSkipped = "skipped"

	maxRescoreWorkers = 4
)

type RescoreInput struct {
	// SeasonName narrows the run; empty means every completed match.
	SeasonName string
	MaxWorkers int
}

type RescoreResult struct {
	MatchCount   int                 `json:"match_count"`
	SuccessCount int                 `json:"success_count"`
	FailedCount  int                 `json:"failed_count"`
	SkippedCount int                 `json:"skipped_count"`
	WorkerCount  int                 `json:"worker_count"`
	Tasks        []RescoreTaskResult `json:"tasks"`
}

type RescoreTaskResult struct {
	MatchID    string `json:"match_id"`
	Season     string `json:"season"`
	Status     string `json:"status"`
	DurationMs int64  `json:"duration_ms"`
	Message    string `json:"message,omitempty"`
}

// RescoreService replays the scoring engine over already-completed matches
// from their stored raw lines. It exists for the day the point rules get a
// bug fix and every historical match needs the corrected derivation.
type RescoreService struct {
	matchRepo match.Repository
	perfRepo  performance.Repository
	scoring   *ScoringService
}

func NewRescoreService(matchRepo match.Repository, perfRepo performance.Repository, scoring *ScoringService) *RescoreService {
	return &RescoreService{
		matchRepo: matchRepo,
		perfRepo:  perfRepo,
		scoring:   scoring,
	}
}

func (s *RescoreService) Rescore(ctx context.Context, input RescoreInput) (RescoreResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RescoreService.Rescore")
	defer span.End()

	var (
		matches []match.Match
		err     error
	)
	if seasonName := strings.TrimSpace(input.SeasonName); seasonName != "" {
		matches, err = s.matchRepo.ListBySeason(ctx, seasonName)
	} else {
		matches, err = s.matchRepo.List(ctx)
	}
	if err != nil {
		return RescoreResult{}, fmt.Errorf("list matches: %w", err)
	}

	completed := make([]match.Match, 0, len(matches))
	for _, m := range matches {
		if m.Completed {
			completed = append(completed, m)
		}
	}

	workerCount := normalizeRescoreWorkerCount(input.MaxWorkers, len(completed))
	result := RescoreResult{
		MatchCount:  len(completed),
		WorkerCount: workerCount,
		Tasks:       make([]RescoreTaskResult, 0, len(completed)),
	}
	if len(completed) == 0 {
		return result, nil
	}

	results := make(chan RescoreTaskResult, len(completed))

	var successCount atomic.Int32
	var failedCount atomic.Int32
	var skippedCount atomic.Int32

	pool, err := ants.NewPool(workerCount)
	if err != nil {
		return RescoreResult{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var workers sync.WaitGroup
	for _, item := range completed {
		item := item
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			start := time.Now()
			row := RescoreTaskResult{
				MatchID: item.ID,
				Season:  item.Season,
			}

			status, message := s.rescoreMatch(ctx, item)
			row.Status = status
			row.Message = message
			row.DurationMs = time.Since(start).Milliseconds()

			switch status {
			case rescoreStatusSuccess:
				successCount.Add(1)
			case rescoreStatusSkipped:
				skippedCount.Add(1)
			default:
				failedCount.Add(1)
			}

			results <- row
		}); err != nil {
			workers.Done()
			return RescoreResult{}, fmt.Errorf("submit task to worker pool: %w", err)
		}
	}

	workers.Wait()
	close(results)

	for row := range results {
		result.Tasks = append(result.Tasks, row)
	}

	sort.SliceStable(result.Tasks, func(i, j int) bool {
		return result.Tasks[i].MatchID < result.Tasks[j].MatchID
	})

	result.SuccessCount = int(successCount.Load())
	result.FailedCount = int(failedCount.Load())
	result.SkippedCount = int(skippedCount.Load())
	return result, nil
}

// rescoreMatch rebuilds both lineups from stored rows and re-runs the
// derivation. Eligibility is deliberately not rechecked: roster moves made
// after the match must not invalidate its historical lines.
func (s *RescoreService) rescoreMatch(ctx context.Context, item match.Match) (string, string) {
	rows, err := s.perfRepo.ListPlayerByMatch(ctx, item.ID)
	if err != nil {
		return rescoreStatusFailed, err.Error()
	}
	if len(rows) == 0 {
		return rescoreStatusSkipped, "no stored lines"
	}

	var home, away []PlayerScore
	for _, row := range rows {
		score := PlayerScore{
			PlayerID: row.PlayerID,
			Position: row.Position,
			Full:     row.Full,
			Spare:    row.Spare,
			Errors:   row.Errors,
		}
		switch row.TeamID {
		case item.HomeTeamID:
			home = append(home, score)
		case item.AwayTeamID:
			away = append(away, score)
		default:
			return rescoreStatusFailed, fmt.Sprintf("stored line for player %s references team %s outside the match", row.PlayerID, row.TeamID)
		}
	}

	home, err = normalizeLineup(home)
	if err != nil {
		return rescoreStatusSkipped, fmt.Sprintf("home lineup: %v", err)
	}
	away, err = normalizeLineup(away)
	if err != nil {
		return rescoreStatusSkipped, fmt.Sprintf("away lineup: %v", err)
	}

	if _, err := s.scoring.applyScores(ctx, item, home, away); err != nil {
		return rescoreStatusFailed, err.Error()
	}

	return rescoreStatusSuccess, ""
}

func normalizeRescoreWorkerCount(value int, taskCount int) int {
	if taskCount <= 0 {
		return 1
	}
	if value <= 0 {
		value = 1
	}
	if value > maxRescoreWorkers {
		value = maxRescoreWorkers
	}
	if value > taskCount {
		value = taskCount
	}
	return value
}
