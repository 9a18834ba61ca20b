package postgres

import "time"

type matchTableModel struct {
	ID         int64      `db:"id"`
	PublicID   string     `db:"public_id"`
	MatchDate  time.Time  `db:"match_date"`
	HomeTeamID string     `db:"home_team_public_id"`
	AwayTeamID string     `db:"away_team_public_id"`
	Venue      string     `db:"venue"`
	SeasonName string     `db:"season_name"`
	Completed  bool       `db:"completed"`
	CreatedAt  time.Time  `db:"created_at"`
	UpdatedAt  time.Time  `db:"updated_at"`
	DeletedAt  *time.Time `db:"deleted_at"`
}

type matchInsertModel struct {
	PublicID   string    `db:"public_id"`
	MatchDate  time.Time `db:"match_date"`
	HomeTeamID string    `db:"home_team_public_id"`
	AwayTeamID string    `db:"away_team_public_id"`
	Venue      string    `db:"venue"`
	SeasonName string    `db:"season_name"`
	Completed  bool      `db:"completed"`
}
