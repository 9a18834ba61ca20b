package postgres

import (
	"database/sql"
	"time"
)

type stintTableModel struct {
	ID        int64        `db:"id"`
	PublicID  string       `db:"public_id"`
	PlayerID  string       `db:"player_public_id"`
	TeamID    string       `db:"team_public_id"`
	JoinDate  time.Time    `db:"join_date"`
	LeaveDate sql.NullTime `db:"leave_date"`
	CreatedAt time.Time    `db:"created_at"`
	UpdatedAt time.Time    `db:"updated_at"`
	DeletedAt *time.Time   `db:"deleted_at"`
}

type stintInsertModel struct {
	PublicID  string       `db:"public_id"`
	PlayerID  string       `db:"player_public_id"`
	TeamID    string       `db:"team_public_id"`
	JoinDate  time.Time    `db:"join_date"`
	LeaveDate sql.NullTime `db:"leave_date"`
}
