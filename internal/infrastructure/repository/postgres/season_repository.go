package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/Porizovatel/kulda/internal/domain/season"
	qb "github.com/Porizovatel/kulda/internal/platform/querybuilder"
)

type SeasonRepository struct {
	db *sqlx.DB
}

func NewSeasonRepository(db *sqlx.DB) *SeasonRepository {
	return &SeasonRepository{db: db}
}

func (r *SeasonRepository) List(ctx context.Context) ([]season.Season, error) {
	query, args, err := seasonBaseSelectBuilder().
		Where(qb.IsNull("deleted_at")).
		OrderBy("start_date", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list seasons query: %w", err)
	}

	var rows []seasonTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list seasons: %w", err)
	}

	out := make([]season.Season, 0, len(rows))
	for _, row := range rows {
		out = append(out, seasonFromRow(row))
	}
	return out, nil
}

func (r *SeasonRepository) GetByID(ctx context.Context, seasonID string) (season.Season, bool, error) {
	query, args, err := seasonBaseSelectBuilder().
		Where(
			qb.Eq("public_id", seasonID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return season.Season{}, false, fmt.Errorf("build get season query: %w", err)
	}

	var row seasonTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return season.Season{}, false, nil
		}
		return season.Season{}, false, fmt.Errorf("get season: %w", err)
	}

	return seasonFromRow(row), true, nil
}

func (r *SeasonRepository) GetActive(ctx context.Context) (season.Season, bool, error) {
	query, args, err := seasonBaseSelectBuilder().
		Where(
			qb.Expr("active = TRUE"),
			qb.IsNull("deleted_at"),
		).
		Limit(1).
		ToSQL()
	if err != nil {
		return season.Season{}, false, fmt.Errorf("build get active season query: %w", err)
	}

	var row seasonTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return season.Season{}, false, nil
		}
		return season.Season{}, false, fmt.Errorf("get active season: %w", err)
	}

	return seasonFromRow(row), true, nil
}

func (r *SeasonRepository) Create(ctx context.Context, item season.Season) error {
	insertModel := seasonInsertModel{
		PublicID:  item.ID,
		Name:      item.Name,
		StartDate: item.StartDate,
		EndDate:   item.EndDate,
		Active:    item.Active,
	}

	query, args, err := qb.InsertModel("seasons", insertModel, "")
	if err != nil {
		return fmt.Errorf("build insert season query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert season: %w", err)
	}
	return nil
}

func (r *SeasonRepository) Update(ctx context.Context, item season.Season) error {
	query, args, err := qb.Update("seasons").
		Set("name", item.Name).
		Set("start_date", item.StartDate).
		Set("end_date", item.EndDate).
		SetExpr("updated_at", "now()").
		Where(
			qb.Eq("public_id", item.ID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update season query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update season: %w", err)
	}
	return nil
}

// SetActive flips the active flag inside one transaction so the partial
// unique index on (active) never sees two active rows.
func (r *SeasonRepository) SetActive(ctx context.Context, seasonID string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin set active season tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	deactivate, deactivateArgs, err := qb.Update("seasons").
		Set("active", false).
		SetExpr("updated_at", "now()").
		Where(
			qb.Expr("active = TRUE"),
			qb.Expr("public_id <> ?", seasonID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build deactivate seasons query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, deactivate, deactivateArgs...); err != nil {
		return fmt.Errorf("deactivate seasons: %w", err)
	}

	activate, activateArgs, err := qb.Update("seasons").
		Set("active", true).
		SetExpr("updated_at", "now()").
		Where(
			qb.Eq("public_id", seasonID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build activate season query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, activate, activateArgs...); err != nil {
		return fmt.Errorf("activate season: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit set active season tx: %w", err)
	}
	return nil
}

func (r *SeasonRepository) Delete(ctx context.Context, seasonID string) error {
	query, args, err := qb.Update("seasons").
		Set("active", false).
		SetExpr("deleted_at", "now()").
		Where(
			qb.Eq("public_id", seasonID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete season query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete season: %w", err)
	}
	return nil
}

func seasonFromRow(row seasonTableModel) season.Season {
	return season.Season{
		ID:        row.PublicID,
		Name:      row.Name,
		StartDate: row.StartDate,
		EndDate:   row.EndDate,
		Active:    row.Active,
	}
}

func seasonBaseSelectBuilder() *qb.SelectBuilder {
	return qb.Select("*").From("seasons")
}
