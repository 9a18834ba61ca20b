package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/Porizovatel/kulda/internal/domain/player"
	qb "github.com/Porizovatel/kulda/internal/platform/querybuilder"
)

type PlayerRepository struct {
	db *sqlx.DB
}

func NewPlayerRepository(db *sqlx.DB) *PlayerRepository {
	return &PlayerRepository{db: db}
}

func (r *PlayerRepository) List(ctx context.Context) ([]player.Player, error) {
	query, args, err := playerBaseSelectBuilder().
		Where(qb.IsNull("deleted_at")).
		OrderBy("name", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list players query: %w", err)
	}

	return r.selectPlayers(ctx, query, args)
}

func (r *PlayerRepository) ListByTeam(ctx context.Context, teamID string) ([]player.Player, error) {
	query, args, err := playerBaseSelectBuilder().
		Where(
			qb.Eq("team_public_id", teamID),
			qb.IsNull("deleted_at"),
		).
		OrderBy("name", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list players by team query: %w", err)
	}

	return r.selectPlayers(ctx, query, args)
}

func (r *PlayerRepository) GetByID(ctx context.Context, playerID string) (player.Player, bool, error) {
	query, args, err := playerBaseSelectBuilder().
		Where(
			qb.Eq("public_id", playerID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return player.Player{}, false, fmt.Errorf("build get player query: %w", err)
	}

	var row playerTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return player.Player{}, false, nil
		}
		return player.Player{}, false, fmt.Errorf("get player: %w", err)
	}

	return playerFromRow(row), true, nil
}

func (r *PlayerRepository) Create(ctx context.Context, item player.Player) error {
	insertModel := playerInsertModel{
		PublicID: item.ID,
		Name:     item.Name,
		TeamID:   stringToNullString(item.TeamID),
		Gender:   string(item.Gender),
	}

	query, args, err := qb.InsertModel("players", insertModel, "")
	if err != nil {
		return fmt.Errorf("build insert player query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert player: %w", err)
	}
	return nil
}

func (r *PlayerRepository) Update(ctx context.Context, item player.Player) error {
	query, args, err := qb.Update("players").
		Set("name", item.Name).
		Set("team_public_id", stringToNullString(item.TeamID)).
		Set("gender", string(item.Gender)).
		SetExpr("updated_at", "now()").
		Where(
			qb.Eq("public_id", item.ID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update player query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update player: %w", err)
	}
	return nil
}

func (r *PlayerRepository) Delete(ctx context.Context, playerID string) error {
	query, args, err := qb.Update("players").
		SetExpr("deleted_at", "now()").
		Where(
			qb.Eq("public_id", playerID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete player query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete player: %w", err)
	}
	return nil
}

func (r *PlayerRepository) selectPlayers(ctx context.Context, query string, args []any) ([]player.Player, error) {
	var rows []playerTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select players: %w", err)
	}

	out := make([]player.Player, 0, len(rows))
	for _, row := range rows {
		out = append(out, playerFromRow(row))
	}
	return out, nil
}

func playerFromRow(row playerTableModel) player.Player {
	return player.Player{
		ID:     row.PublicID,
		Name:   row.Name,
		TeamID: nullStringToString(row.TeamID),
		Gender: player.Gender(row.Gender),
	}
}

func playerBaseSelectBuilder() *qb.SelectBuilder {
	return qb.Select("*").From("players")
}
