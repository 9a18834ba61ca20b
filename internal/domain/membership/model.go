package membership

import (
	"fmt"
	"time"
)

// Stint is one membership window of a player at a team. A player may have
// several stints over time; windows across different teams must not overlap.
type Stint struct {
	ID        string
	PlayerID  string
	TeamID    string
	JoinDate  time.Time
	LeaveDate *time.Time
}

func (s Stint) Validate() error {
	if s.ID == "" {
		return fmt.Errorf("stint id is required")
	}
	if s.PlayerID == "" {
		return fmt.Errorf("stint player id is required")
	}
	if s.TeamID == "" {
		return fmt.Errorf("stint team id is required")
	}
	if s.JoinDate.IsZero() {
		return fmt.Errorf("stint join date is required")
	}
	if s.LeaveDate != nil && s.LeaveDate.Before(s.JoinDate) {
		return fmt.Errorf("stint leave date must not precede join date")
	}

	return nil
}

// ContainsDate reports whether date falls inside the stint window. Both
// boundary days count as active; an absent leave date leaves the window open.
func (s Stint) ContainsDate(date time.Time) bool {
	if date.Before(s.JoinDate) {
		return false
	}
	if s.LeaveDate != nil && date.After(*s.LeaveDate) {
		return false
	}

	return true
}

// Overlaps reports whether [joinDate, leaveDate?] intersects the stint
// window. Open-ended windows extend to infinity on the leave side.
func (s Stint) Overlaps(joinDate time.Time, leaveDate *time.Time) bool {
	if s.LeaveDate != nil && s.LeaveDate.Before(joinDate) {
		return false
	}
	if leaveDate != nil && leaveDate.Before(s.JoinDate) {
		return false
	}

	return true
}
