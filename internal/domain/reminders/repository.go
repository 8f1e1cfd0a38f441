package reminders

import "context"

type Repository interface {
	Create(ctx context.Context, r Reminder) error

	// ListEnabled devuelve recordatorios habilitados de medicamentos activos, por hora ascendente.
	ListEnabled(ctx context.Context, userID string) ([]Entry, error)

	// Update y Delete devuelven false si no hubo fila del usuario.
	Update(ctx context.Context, id, userID string, p Patch) (bool, error)
	Delete(ctx context.Context, id, userID string) (bool, error)
}
