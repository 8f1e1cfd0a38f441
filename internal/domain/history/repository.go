package history

import "context"

type Repository interface {
	Create(ctx context.Context, r Record) error

	// List filtra por usuario y ordena por taken_at descendente.
	List(ctx context.Context, userID string, f ListFilter) ([]Entry, error)

	Count(ctx context.Context, f CountFilter) (int, error)
}
