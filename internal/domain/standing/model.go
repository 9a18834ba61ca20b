package standing

// Standing is one row of the season table. Standings are recomputed from
// matches and team performances on demand and never persisted.
type Standing struct {
	TeamID          string
	TeamName        string
	Season          string
	MatchesPlayed   int
	Points          int
	AuxiliaryPoints int
	// LostPoints is the auxiliary-point deficit against the theoretical
	// maximum of 10 per played match.
	LostPoints int
	TotalPins  int
	AvgPins    float64
	Rank       int
}
