package postgres

import "time"

type seasonTableModel struct {
	ID        int64      `db:"id"`
	PublicID  string     `db:"public_id"`
	Name      string     `db:"name"`
	StartDate time.Time  `db:"start_date"`
	EndDate   time.Time  `db:"end_date"`
	Active    bool       `db:"active"`
	CreatedAt time.Time  `db:"created_at"`
	UpdatedAt time.Time  `db:"updated_at"`
	DeletedAt *time.Time `db:"deleted_at"`
}

type seasonInsertModel struct {
	PublicID  string    `db:"public_id"`
	Name      string    `db:"name"`
	StartDate time.Time `db:"start_date"`
	EndDate   time.Time `db:"end_date"`
	Active    bool      `db:"active"`
}
