package match

import (
	"fmt"
	"time"
)

// Match is one league fixture between two teams. Venue mirrors the home
// team's venue at scheduling time; Season carries the season name.
type Match struct {
	ID         string
	Date       time.Time
	HomeTeamID string
	AwayTeamID string
	Venue      string
	Season     string
	Completed  bool
}

func (m Match) Validate() error {
	if m.ID == "" {
		return fmt.Errorf("match id is required")
	}
	if m.Date.IsZero() {
		return fmt.Errorf("match date is required")
	}
	if m.HomeTeamID == "" || m.AwayTeamID == "" {
		return fmt.Errorf("match team ids are required")
	}
	if m.HomeTeamID == m.AwayTeamID {
		return fmt.Errorf("match home and away teams must differ")
	}
	if m.Season == "" {
		return fmt.Errorf("match season is required")
	}

	return nil
}

// Involves reports whether the team plays in this match on either side.
func (m Match) Involves(teamID string) bool {
	return m.HomeTeamID == teamID || m.AwayTeamID == teamID
}
