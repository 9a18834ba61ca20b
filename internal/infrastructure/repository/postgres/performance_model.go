package postgres

import "time"

type playerPerformanceTableModel struct {
	ID         int64     `db:"id"`
	PublicID   string    `db:"public_id"`
	MatchID    string    `db:"match_public_id"`
	PlayerID   string    `db:"player_public_id"`
	TeamID     string    `db:"team_public_id"`
	OpponentID string    `db:"opponent_public_id"`
	Position   int       `db:"position"`
	FullPins   int       `db:"full_pins"`
	SparePins  int       `db:"spare_pins"`
	Errors     int       `db:"errors"`
	TotalPins  int       `db:"total_pins"`
	Points     int       `db:"points"`
	CreatedAt  time.Time `db:"created_at"`
	UpdatedAt  time.Time `db:"updated_at"`
}

type teamPerformanceTableModel struct {
	ID              int64     `db:"id"`
	PublicID        string    `db:"public_id"`
	MatchID         string    `db:"match_public_id"`
	TeamID          string    `db:"team_public_id"`
	TotalPins       int       `db:"total_pins"`
	Points          int       `db:"points"`
	AuxiliaryPoints int       `db:"auxiliary_points"`
	CreatedAt       time.Time `db:"created_at"`
	UpdatedAt       time.Time `db:"updated_at"`
}
