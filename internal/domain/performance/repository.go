package performance

import "context"

// Repository describes performance persistence needs from use cases.
// Upserts key on (match, player) and (match, team) so re-scoring overwrites
// previous rows instead of duplicating them.
type Repository interface {
	UpsertPlayerPerformances(ctx context.Context, items []PlayerPerformance) error
	UpsertTeamPerformances(ctx context.Context, items []TeamPerformance) error
	ListPlayerByMatch(ctx context.Context, matchID string) ([]PlayerPerformance, error)
	ListPlayerByMatchIDs(ctx context.Context, matchIDs []string) ([]PlayerPerformance, error)
	ListTeamByMatch(ctx context.Context, matchID string) ([]TeamPerformance, error)
	ListTeamByMatchIDs(ctx context.Context, matchIDs []string) ([]TeamPerformance, error)
	DeleteByMatch(ctx context.Context, matchID string) error
}
