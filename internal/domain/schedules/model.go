package schedules

import (
	"time"

	"medicine-tracker/internal/domain/medicines"
)

// Schedule es una toma prevista de un medicamento en una fecha y hora.
// La pertenencia al usuario se hereda del medicamento.
// Una vez Taken=true no se vuelve a modificar.
type Schedule struct {
	ID         string
	MedicineID string

	ScheduledTime string    // "HH:MM"
	ScheduledDate time.Time // fecha de calendario (UTC)

	Taken   bool
	TakenAt *time.Time

	CreatedAt time.Time
}

// Entry es una toma con los datos del medicamento para mostrar.
type Entry struct {
	Schedule

	MedicineName string
	Dosage       string
	Frequency    medicines.Frequency
}

// ListFilter: Date nil = todas las fechas.
type ListFilter struct {
	Date *time.Time
}
