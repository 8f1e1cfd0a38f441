package medicines

import (
	"context"
	"time"
)

// Repository persiste medicamentos. Todas las operaciones filtran por userID;
// un medicamento de otro usuario es indistinguible de uno inexistente.
type Repository interface {
	Create(ctx context.Context, m Medicine) error

	// GetOwned devuelve storage.ErrNotFound si no existe o no es del usuario.
	// No filtra por Active.
	GetOwned(ctx context.Context, id, userID string) (Medicine, error)

	// ListActive ordena por created_at descendente.
	ListActive(ctx context.Context, userID string) ([]Medicine, error)

	// Update y Deactivate devuelven false si no hubo fila del usuario.
	Update(ctx context.Context, id, userID string, p Patch, updatedAt time.Time) (bool, error)
	Deactivate(ctx context.Context, id, userID string, updatedAt time.Time) (bool, error)

	CountActive(ctx context.Context, userID string) (int, error)
}
