package season

import (
	"fmt"
	"time"
)

// Season is one league year, e.g. "2025/2026". At most one season carries
// the active flag; the write path deactivates the others when it flips.
type Season struct {
	ID        string
	Name      string
	StartDate time.Time
	EndDate   time.Time
	Active    bool
}

func (s Season) Validate() error {
	if s.ID == "" {
		return fmt.Errorf("season id is required")
	}
	if s.Name == "" {
		return fmt.Errorf("season name is required")
	}
	if s.StartDate.IsZero() || s.EndDate.IsZero() {
		return fmt.Errorf("season start and end dates are required")
	}
	if s.EndDate.Before(s.StartDate) {
		return fmt.Errorf("season end date must not precede start date")
	}

	return nil
}

// DefaultName derives the league-year label from a point in time. Autumn
// dates open the new season, spring dates still belong to the previous one.
func DefaultName(now time.Time) string {
	year := now.Year()
	switch {
	case now.Month() >= time.September:
		return fmt.Sprintf("%d/%d", year, year+1)
	case now.Month() <= time.April:
		return fmt.Sprintf("%d/%d", year-1, year)
	default:
		return fmt.Sprintf("%d/%d", year, year+1)
	}
}
