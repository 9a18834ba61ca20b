package match

import "context"

// Repository describes match persistence needs from use cases.
type Repository interface {
	List(ctx context.Context) ([]Match, error)
	ListBySeason(ctx context.Context, seasonName string) ([]Match, error)
	GetByID(ctx context.Context, matchID string) (Match, bool, error)
	Create(ctx context.Context, item Match) error
	// BulkCreate inserts a generated fixture list in one round trip.
	BulkCreate(ctx context.Context, items []Match) error
	Update(ctx context.Context, item Match) error
	Delete(ctx context.Context, matchID string) error
	DeleteBySeason(ctx context.Context, seasonName string) error
}
