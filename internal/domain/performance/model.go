package performance

import "fmt"

// PlayerPerformance is one player's line in a scored match. TotalPins and
// Points are derived by the scoring engine, never entered directly.
type PlayerPerformance struct {
	ID         string
	MatchID    string
	PlayerID   string
	TeamID     string
	OpponentID string
	Position   int // 1..4 within the lineup
	Full       int
	Spare      int
	Errors     int
	TotalPins  int // Full + Spare
	Points     int // 0, 1 or 2 from the positional duel
}

func (p PlayerPerformance) Validate() error {
	if p.MatchID == "" {
		return fmt.Errorf("performance match id is required")
	}
	if p.PlayerID == "" {
		return fmt.Errorf("performance player id is required")
	}
	if p.TeamID == "" {
		return fmt.Errorf("performance team id is required")
	}
	if p.Position < 1 || p.Position > 4 {
		return fmt.Errorf("performance position must be in [1,4]")
	}
	if p.Full < 0 || p.Spare < 0 || p.Errors < 0 {
		return fmt.Errorf("performance raw scores must be non-negative")
	}

	return nil
}

// TeamPerformance is one team's line in a scored match; exactly two rows
// exist per completed match.
type TeamPerformance struct {
	ID              string
	MatchID         string
	TeamID          string
	TotalPins       int
	Points          int // 0, 1 or 2 match points
	AuxiliaryPoints int // duel points + pin bonus, in [0,10]
}
