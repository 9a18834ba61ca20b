package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/Porizovatel/kulda/internal/domain/performance"
	qb "github.com/Porizovatel/kulda/internal/platform/querybuilder"
)

const upsertPlayerPerformancesQuery = `INSERT INTO player_performances
    (public_id, match_public_id, player_public_id, team_public_id, opponent_public_id,
     position, full_pins, spare_pins, errors, total_pins, points)
SELECT * FROM unnest(
    $1::text[], $2::text[], $3::text[], $4::text[], $5::text[],
    $6::int[], $7::int[], $8::int[], $9::int[], $10::int[], $11::int[]
)
ON CONFLICT (match_public_id, player_public_id)
DO UPDATE SET
    team_public_id = EXCLUDED.team_public_id,
    opponent_public_id = EXCLUDED.opponent_public_id,
    position = EXCLUDED.position,
    full_pins = EXCLUDED.full_pins,
    spare_pins = EXCLUDED.spare_pins,
    errors = EXCLUDED.errors,
    total_pins = EXCLUDED.total_pins,
    points = EXCLUDED.points,
    updated_at = now()`

const upsertTeamPerformancesQuery = `INSERT INTO team_performances
    (public_id, match_public_id, team_public_id, total_pins, points, auxiliary_points)
SELECT * FROM unnest(
    $1::text[], $2::text[], $3::text[], $4::int[], $5::int[], $6::int[]
)
ON CONFLICT (match_public_id, team_public_id)
DO UPDATE SET
    total_pins = EXCLUDED.total_pins,
    points = EXCLUDED.points,
    auxiliary_points = EXCLUDED.auxiliary_points,
    updated_at = now()`

type PerformanceRepository struct {
	db *sqlx.DB
}

func NewPerformanceRepository(db *sqlx.DB) *PerformanceRepository {
	return &PerformanceRepository{db: db}
}

func (r *PerformanceRepository) UpsertPlayerPerformances(ctx context.Context, items []performance.PlayerPerformance) error {
	if len(items) == 0 {
		return nil
	}

	publicIDs := make([]string, 0, len(items))
	matchIDs := make([]string, 0, len(items))
	playerIDs := make([]string, 0, len(items))
	teamIDs := make([]string, 0, len(items))
	opponentIDs := make([]string, 0, len(items))
	positions := make([]int, 0, len(items))
	fulls := make([]int, 0, len(items))
	spares := make([]int, 0, len(items))
	errorCounts := make([]int, 0, len(items))
	totals := make([]int, 0, len(items))
	points := make([]int, 0, len(items))
	for _, item := range items {
		publicIDs = append(publicIDs, item.ID)
		matchIDs = append(matchIDs, item.MatchID)
		playerIDs = append(playerIDs, item.PlayerID)
		teamIDs = append(teamIDs, item.TeamID)
		opponentIDs = append(opponentIDs, item.OpponentID)
		positions = append(positions, item.Position)
		fulls = append(fulls, item.Full)
		spares = append(spares, item.Spare)
		errorCounts = append(errorCounts, item.Errors)
		totals = append(totals, item.TotalPins)
		points = append(points, item.Points)
	}

	if _, err := r.db.ExecContext(ctx, upsertPlayerPerformancesQuery,
		pq.Array(publicIDs),
		pq.Array(matchIDs),
		pq.Array(playerIDs),
		pq.Array(teamIDs),
		pq.Array(opponentIDs),
		pq.Array(positions),
		pq.Array(fulls),
		pq.Array(spares),
		pq.Array(errorCounts),
		pq.Array(totals),
		pq.Array(points),
	); err != nil {
		return fmt.Errorf("upsert player performances: %w", err)
	}
	return nil
}

func (r *PerformanceRepository) UpsertTeamPerformances(ctx context.Context, items []performance.TeamPerformance) error {
	if len(items) == 0 {
		return nil
	}

	publicIDs := make([]string, 0, len(items))
	matchIDs := make([]string, 0, len(items))
	teamIDs := make([]string, 0, len(items))
	totals := make([]int, 0, len(items))
	points := make([]int, 0, len(items))
	auxiliary := make([]int, 0, len(items))
	for _, item := range items {
		publicIDs = append(publicIDs, item.ID)
		matchIDs = append(matchIDs, item.MatchID)
		teamIDs = append(teamIDs, item.TeamID)
		totals = append(totals, item.TotalPins)
		points = append(points, item.Points)
		auxiliary = append(auxiliary, item.AuxiliaryPoints)
	}

	if _, err := r.db.ExecContext(ctx, upsertTeamPerformancesQuery,
		pq.Array(publicIDs),
		pq.Array(matchIDs),
		pq.Array(teamIDs),
		pq.Array(totals),
		pq.Array(points),
		pq.Array(auxiliary),
	); err != nil {
		return fmt.Errorf("upsert team performances: %w", err)
	}
	return nil
}

func (r *PerformanceRepository) ListPlayerByMatch(ctx context.Context, matchID string) ([]performance.PlayerPerformance, error) {
	return r.ListPlayerByMatchIDs(ctx, []string{matchID})
}

func (r *PerformanceRepository) ListPlayerByMatchIDs(ctx context.Context, matchIDs []string) ([]performance.PlayerPerformance, error) {
	if len(matchIDs) == 0 {
		return nil, nil
	}

	query, args, err := qb.Select("*").From("player_performances").
		Where(qb.In("match_public_id", toAnySlice(matchIDs))).
		OrderBy("match_public_id", "team_public_id", "position").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list player performances query: %w", err)
	}

	var rows []playerPerformanceTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list player performances: %w", err)
	}

	out := make([]performance.PlayerPerformance, 0, len(rows))
	for _, row := range rows {
		out = append(out, performance.PlayerPerformance{
			ID:         row.PublicID,
			MatchID:    row.MatchID,
			PlayerID:   row.PlayerID,
			TeamID:     row.TeamID,
			OpponentID: row.OpponentID,
			Position:   row.Position,
			Full:       row.FullPins,
			Spare:      row.SparePins,
			Errors:     row.Errors,
			TotalPins:  row.TotalPins,
			Points:     row.Points,
		})
	}
	return out, nil
}

func (r *PerformanceRepository) ListTeamByMatch(ctx context.Context, matchID string) ([]performance.TeamPerformance, error) {
	return r.ListTeamByMatchIDs(ctx, []string{matchID})
}

func (r *PerformanceRepository) ListTeamByMatchIDs(ctx context.Context, matchIDs []string) ([]performance.TeamPerformance, error) {
	if len(matchIDs) == 0 {
		return nil, nil
	}

	query, args, err := qb.Select("*").From("team_performances").
		Where(qb.In("match_public_id", toAnySlice(matchIDs))).
		OrderBy("match_public_id", "team_public_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list team performances query: %w", err)
	}

	var rows []teamPerformanceTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list team performances: %w", err)
	}

	out := make([]performance.TeamPerformance, 0, len(rows))
	for _, row := range rows {
		out = append(out, performance.TeamPerformance{
			ID:              row.PublicID,
			MatchID:         row.MatchID,
			TeamID:          row.TeamID,
			TotalPins:       row.TotalPins,
			Points:          row.Points,
			AuxiliaryPoints: row.AuxiliaryPoints,
		})
	}
	return out, nil
}

// DeleteByMatch removes derived rows for good; they are rebuilt from raw
// input on the next scoring run.
func (r *PerformanceRepository) DeleteByMatch(ctx context.Context, matchID string) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM player_performances WHERE match_public_id = $1", matchID); err != nil {
		return fmt.Errorf("delete player performances: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, "DELETE FROM team_performances WHERE match_public_id = $1", matchID); err != nil {
		return fmt.Errorf("delete team performances: %w", err)
	}
	return nil
}

func toAnySlice(values []string) []any {
	out := make([]any, 0, len(values))
	for _, v := range values {
		out = append(out, v)
	}
	return out
}
