package membership

import "context"

// Repository describes membership-stint persistence needs from use cases.
type Repository interface {
	ListByPlayer(ctx context.Context, playerID string) ([]Stint, error)
	ListByTeam(ctx context.Context, teamID string) ([]Stint, error)
	GetByID(ctx context.Context, stintID string) (Stint, bool, error)
	Create(ctx context.Context, item Stint) error
	Update(ctx context.Context, item Stint) error
	Delete(ctx context.Context, stintID string) error
}
