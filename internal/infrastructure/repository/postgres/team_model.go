package postgres

import (
	"database/sql"
	"time"
)

type teamTableModel struct {
	ID        int64        `db:"id"`
	PublicID  string       `db:"public_id"`
	Name      string       `db:"name"`
	Venue     string       `db:"venue"`
	DayOfWeek int          `db:"day_of_week"`
	TimeStart string       `db:"time_start"`
	TimeEnd   string       `db:"time_end"`
	StartDate time.Time    `db:"start_date"`
	EndDate   sql.NullTime `db:"end_date"`
	CreatedAt time.Time    `db:"created_at"`
	UpdatedAt time.Time    `db:"updated_at"`
	DeletedAt *time.Time   `db:"deleted_at"`
}

type teamInsertModel struct {
	PublicID  string       `db:"public_id"`
	Name      string       `db:"name"`
	Venue     string       `db:"venue"`
	DayOfWeek int          `db:"day_of_week"`
	TimeStart string       `db:"time_start"`
	TimeEnd   string       `db:"time_end"`
	StartDate time.Time    `db:"start_date"`
	EndDate   sql.NullTime `db:"end_date"`
}
