package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/Porizovatel/kulda/internal/domain/match"
	qb "github.com/Porizovatel/kulda/internal/platform/querybuilder"
)

const bulkInsertMatchesQuery = `INSERT INTO matches
    (public_id, match_date, home_team_public_id, away_team_public_id, venue, season_name, completed)
SELECT * FROM unnest(
    $1::text[], $2::timestamptz[], $3::text[], $4::text[], $5::text[], $6::text[], $7::boolean[]
)`

type MatchRepository struct {
	db *sqlx.DB
}

func NewMatchRepository(db *sqlx.DB) *MatchRepository {
	return &MatchRepository{db: db}
}

func (r *MatchRepository) List(ctx context.Context) ([]match.Match, error) {
	query, args, err := matchBaseSelectBuilder().
		Where(qb.IsNull("deleted_at")).
		OrderBy("match_date", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list matches query: %w", err)
	}

	return r.selectMatches(ctx, query, args)
}

func (r *MatchRepository) ListBySeason(ctx context.Context, seasonName string) ([]match.Match, error) {
	query, args, err := matchBaseSelectBuilder().
		Where(
			qb.Eq("season_name", seasonName),
			qb.IsNull("deleted_at"),
		).
		OrderBy("match_date", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list matches by season query: %w", err)
	}

	return r.selectMatches(ctx, query, args)
}

func (r *MatchRepository) GetByID(ctx context.Context, matchID string) (match.Match, bool, error) {
	query, args, err := matchBaseSelectBuilder().
		Where(
			qb.Eq("public_id", matchID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return match.Match{}, false, fmt.Errorf("build get match query: %w", err)
	}

	var row matchTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return match.Match{}, false, nil
		}
		return match.Match{}, false, fmt.Errorf("get match: %w", err)
	}

	return matchFromRow(row), true, nil
}

func (r *MatchRepository) Create(ctx context.Context, item match.Match) error {
	insertModel := matchInsertModel{
		PublicID:   item.ID,
		MatchDate:  item.Date,
		HomeTeamID: item.HomeTeamID,
		AwayTeamID: item.AwayTeamID,
		Venue:      item.Venue,
		SeasonName: item.Season,
		Completed:  item.Completed,
	}

	query, args, err := qb.InsertModel("matches", insertModel, "")
	if err != nil {
		return fmt.Errorf("build insert match query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert match: %w", err)
	}
	return nil
}

// BulkCreate writes a generated fixture list in one round trip via unnest.
func (r *MatchRepository) BulkCreate(ctx context.Context, items []match.Match) error {
	if len(items) == 0 {
		return nil
	}

	publicIDs := make([]string, 0, len(items))
	dates := make([]time.Time, 0, len(items))
	homeIDs := make([]string, 0, len(items))
	awayIDs := make([]string, 0, len(items))
	venues := make([]string, 0, len(items))
	seasons := make([]string, 0, len(items))
	completed := make([]bool, 0, len(items))
	for _, item := range items {
		publicIDs = append(publicIDs, item.ID)
		dates = append(dates, item.Date)
		homeIDs = append(homeIDs, item.HomeTeamID)
		awayIDs = append(awayIDs, item.AwayTeamID)
		venues = append(venues, item.Venue)
		seasons = append(seasons, item.Season)
		completed = append(completed, item.Completed)
	}

	if _, err := r.db.ExecContext(ctx, bulkInsertMatchesQuery,
		pq.Array(publicIDs),
		pq.Array(dates),
		pq.Array(homeIDs),
		pq.Array(awayIDs),
		pq.Array(venues),
		pq.Array(seasons),
		pq.Array(completed),
	); err != nil {
		return fmt.Errorf("bulk insert matches: %w", err)
	}
	return nil
}

func (r *MatchRepository) Update(ctx context.Context, item match.Match) error {
	query, args, err := qb.Update("matches").
		Set("match_date", item.Date).
		Set("home_team_public_id", item.HomeTeamID).
		Set("away_team_public_id", item.AwayTeamID).
		Set("venue", item.Venue).
		Set("season_name", item.Season).
		Set("completed", item.Completed).
		SetExpr("updated_at", "now()").
		Where(
			qb.Eq("public_id", item.ID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update match query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update match: %w", err)
	}
	return nil
}

func (r *MatchRepository) Delete(ctx context.Context, matchID string) error {
	query, args, err := qb.Update("matches").
		SetExpr("deleted_at", "now()").
		Where(
			qb.Eq("public_id", matchID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete match query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete match: %w", err)
	}
	return nil
}

func (r *MatchRepository) DeleteBySeason(ctx context.Context, seasonName string) error {
	query, args, err := qb.Update("matches").
		SetExpr("deleted_at", "now()").
		Where(
			qb.Eq("season_name", seasonName),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete matches by season query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete matches by season: %w", err)
	}
	return nil
}

func (r *MatchRepository) selectMatches(ctx context.Context, query string, args []any) ([]match.Match, error) {
	var rows []matchTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select matches: %w", err)
	}

	out := make([]match.Match, 0, len(rows))
	for _, row := range rows {
		out = append(out, matchFromRow(row))
	}
	return out, nil
}

func matchFromRow(row matchTableModel) match.Match {
	return match.Match{
		ID:         row.PublicID,
		Date:       row.MatchDate,
		HomeTeamID: row.HomeTeamID,
		AwayTeamID: row.AwayTeamID,
		Venue:      row.Venue,
		Season:     row.SeasonName,
		Completed:  row.Completed,
	}
}

func matchBaseSelectBuilder() *qb.SelectBuilder {
	return qb.Select("*").From("matches")
}
