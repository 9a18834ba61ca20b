package usecase

import "errors"

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrForbidden             = errors.New("forbidden")
	ErrInfeasible            = errors.New("no feasible schedule")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)
