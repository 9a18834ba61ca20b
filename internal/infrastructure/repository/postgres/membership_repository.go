package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/Porizovatel/kulda/internal/domain/membership"
	qb "github.com/Porizovatel/kulda/internal/platform/querybuilder"
)

type MembershipRepository struct {
	db *sqlx.DB
}

func NewMembershipRepository(db *sqlx.DB) *MembershipRepository {
	return &MembershipRepository{db: db}
}

func (r *MembershipRepository) ListByPlayer(ctx context.Context, playerID string) ([]membership.Stint, error) {
	query, args, err := stintBaseSelectBuilder().
		Where(
			qb.Eq("player_public_id", playerID),
			qb.IsNull("deleted_at"),
		).
		OrderBy("join_date", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list stints by player query: %w", err)
	}

	return r.selectStints(ctx, query, args)
}

func (r *MembershipRepository) ListByTeam(ctx context.Context, teamID string) ([]membership.Stint, error) {
	query, args, err := stintBaseSelectBuilder().
		Where(
			qb.Eq("team_public_id", teamID),
			qb.IsNull("deleted_at"),
		).
		OrderBy("join_date", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list stints by team query: %w", err)
	}

	return r.selectStints(ctx, query, args)
}

func (r *MembershipRepository) GetByID(ctx context.Context, stintID string) (membership.Stint, bool, error) {
	query, args, err := stintBaseSelectBuilder().
		Where(
			qb.Eq("public_id", stintID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return membership.Stint{}, false, fmt.Errorf("build get stint query: %w", err)
	}

	var row stintTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return membership.Stint{}, false, nil
		}
		return membership.Stint{}, false, fmt.Errorf("get stint: %w", err)
	}

	return stintFromRow(row), true, nil
}

func (r *MembershipRepository) Create(ctx context.Context, item membership.Stint) error {
	insertModel := stintInsertModel{
		PublicID:  item.ID,
		PlayerID:  item.PlayerID,
		TeamID:    item.TeamID,
		JoinDate:  item.JoinDate,
		LeaveDate: ptrToNullTime(item.LeaveDate),
	}

	query, args, err := qb.InsertModel("player_stints", insertModel, "")
	if err != nil {
		return fmt.Errorf("build insert stint query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert stint: %w", err)
	}
	return nil
}

func (r *MembershipRepository) Update(ctx context.Context, item membership.Stint) error {
	query, args, err := qb.Update("player_stints").
		Set("player_public_id", item.PlayerID).
		Set("team_public_id", item.TeamID).
		Set("join_date", item.JoinDate).
		Set("leave_date", ptrToNullTime(item.LeaveDate)).
		SetExpr("updated_at", "now()").
		Where(
			qb.Eq("public_id", item.ID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update stint query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update stint: %w", err)
	}
	return nil
}

func (r *MembershipRepository) Delete(ctx context.Context, stintID string) error {
	query, args, err := qb.Update("player_stints").
		SetExpr("deleted_at", "now()").
		Where(
			qb.Eq("public_id", stintID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete stint query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete stint: %w", err)
	}
	return nil
}

func (r *MembershipRepository) selectStints(ctx context.Context, query string, args []any) ([]membership.Stint, error) {
	var rows []stintTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select stints: %w", err)
	}

	out := make([]membership.Stint, 0, len(rows))
	for _, row := range rows {
		out = append(out, stintFromRow(row))
	}
	return out, nil
}

func stintFromRow(row stintTableModel) membership.Stint {
	return membership.Stint{
		ID:        row.PublicID,
		PlayerID:  row.PlayerID,
		TeamID:    row.TeamID,
		JoinDate:  row.JoinDate,
		LeaveDate: nullTimeToPtr(row.LeaveDate),
	}
}

func stintBaseSelectBuilder() *qb.SelectBuilder {
	return qb.Select("*").From("player_stints")
}
