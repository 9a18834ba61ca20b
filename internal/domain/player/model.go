package player

import "fmt"

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

var AllGenders = map[Gender]struct{}{
	GenderMale:   {},
	GenderFemale: {},
}

// Player is a registered league bowler. TeamID points at the current club
// and is maintained by the membership write path; the authoritative activity
// windows live in the membership stints.
type Player struct {
	ID     string
	Name   string
	TeamID string
	Gender Gender
}

func (p Player) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("player id is required")
	}
	if p.Name == "" {
		return fmt.Errorf("player name is required")
	}
	if _, ok := AllGenders[p.Gender]; !ok {
		return fmt.Errorf("unknown player gender %q", p.Gender)
	}

	return nil
}
