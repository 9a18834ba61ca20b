package team

import (
	"fmt"
	"time"
)

// Slot is the team's weekly home slot on the lanes.
type Slot struct {
	DayOfWeek int    // 0 = Sunday .. 6 = Saturday
	TimeStart string // HH:MM
	TimeEnd   string // HH:MM
}

// Team is a bowling club competing in the league.
type Team struct {
	ID        string
	Name      string
	Venue     string
	Slot      Slot
	StartDate time.Time
	EndDate   *time.Time
}

func (t Team) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("team id is required")
	}
	if t.Name == "" {
		return fmt.Errorf("team name is required")
	}
	if t.Venue == "" {
		return fmt.Errorf("team venue is required")
	}
	if t.Slot.DayOfWeek < 0 || t.Slot.DayOfWeek > 6 {
		return fmt.Errorf("team slot day of week must be in [0,6]")
	}
	if err := validateClock(t.Slot.TimeStart); err != nil {
		return fmt.Errorf("team slot start: %w", err)
	}
	if err := validateClock(t.Slot.TimeEnd); err != nil {
		return fmt.Errorf("team slot end: %w", err)
	}
	if t.StartDate.IsZero() {
		return fmt.Errorf("team start date is required")
	}
	if t.EndDate != nil && t.EndDate.Before(t.StartDate) {
		return fmt.Errorf("team end date must not precede start date")
	}

	return nil
}

// ActiveDuring reports whether the team's active window overlaps [from, to].
// An absent end date extends the window indefinitely.
func (t Team) ActiveDuring(from, to time.Time) bool {
	if t.StartDate.After(to) {
		return false
	}
	if t.EndDate != nil && t.EndDate.Before(from) {
		return false
	}

	return true
}

func validateClock(v string) error {
	if _, err := time.Parse("15:04", v); err != nil {
		return fmt.Errorf("invalid HH:MM value %q", v)
	}
	return nil
}
