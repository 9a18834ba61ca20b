package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/Porizovatel/kulda/internal/domain/team"
	qb "github.com/Porizovatel/kulda/internal/platform/querybuilder"
)

type TeamRepository struct {
	db *sqlx.DB
}

func NewTeamRepository(db *sqlx.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

func (r *TeamRepository) List(ctx context.Context) ([]team.Team, error) {
	query, args, err := qb.Select("*").From("teams").
		Where(qb.IsNull("deleted_at")).
		OrderBy("name", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list teams query: %w", err)
	}

	var rows []teamTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}

	out := make([]team.Team, 0, len(rows))
	for _, row := range rows {
		out = append(out, teamFromRow(row))
	}
	return out, nil
}

func (r *TeamRepository) GetByID(ctx context.Context, teamID string) (team.Team, bool, error) {
	query, args, err := qb.Select("*").From("teams").
		Where(
			qb.Eq("public_id", teamID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return team.Team{}, false, fmt.Errorf("build get team query: %w", err)
	}

	var row teamTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return team.Team{}, false, nil
		}
		return team.Team{}, false, fmt.Errorf("get team: %w", err)
	}

	return teamFromRow(row), true, nil
}

func (r *TeamRepository) Create(ctx context.Context, item team.Team) error {
	insertModel := teamInsertModel{
		PublicID:  item.ID,
		Name:      item.Name,
		Venue:     item.Venue,
		DayOfWeek: item.Slot.DayOfWeek,
		TimeStart: item.Slot.TimeStart,
		TimeEnd:   item.Slot.TimeEnd,
		StartDate: item.StartDate,
		EndDate:   ptrToNullTime(item.EndDate),
	}

	query, args, err := qb.InsertModel("teams", insertModel, "")
	if err != nil {
		return fmt.Errorf("build insert team query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert team: %w", err)
	}
	return nil
}

func (r *TeamRepository) Update(ctx context.Context, item team.Team) error {
	query, args, err := qb.Update("teams").
		Set("name", item.Name).
		Set("venue", item.Venue).
		Set("day_of_week", item.Slot.DayOfWeek).
		Set("time_start", item.Slot.TimeStart).
		Set("time_end", item.Slot.TimeEnd).
		Set("start_date", item.StartDate).
		Set("end_date", ptrToNullTime(item.EndDate)).
		SetExpr("updated_at", "now()").
		Where(
			qb.Eq("public_id", item.ID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update team query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update team: %w", err)
	}
	return nil
}

func (r *TeamRepository) Delete(ctx context.Context, teamID string) error {
	query, args, err := qb.Update("teams").
		SetExpr("deleted_at", "now()").
		Where(
			qb.Eq("public_id", teamID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete team query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete team: %w", err)
	}
	return nil
}

func teamFromRow(row teamTableModel) team.Team {
	return team.Team{
		ID:    row.PublicID,
		Name:  row.Name,
		Venue: row.Venue,
		Slot: team.Slot{
			DayOfWeek: row.DayOfWeek,
			TimeStart: row.TimeStart,
			TimeEnd:   row.TimeEnd,
		},
		StartDate: row.StartDate,
		EndDate:   nullTimeToPtr(row.EndDate),
	}
}
