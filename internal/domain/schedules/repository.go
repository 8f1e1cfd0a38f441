package schedules

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, s Schedule) error

	// GetOwned verifica pertenencia vía medicines.user_id; storage.ErrNotFound si no aplica.
	GetOwned(ctx context.Context, id, userID string) (Schedule, error)

	// MarkTaken es condicional (sólo si taken=false); false si no cambió ninguna fila.
	MarkTaken(ctx context.Context, id string, takenAt time.Time) (bool, error)

	// ListByUser devuelve tomas de medicamentos activos del usuario,
	// ordenadas por fecha desc y hora asc.
	ListByUser(ctx context.Context, userID string, f ListFilter) ([]Entry, error)
}
