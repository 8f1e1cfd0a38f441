package history

import "time"

// Status del registro de una toma.
// @Enum taken, missed, skipped, late
type Status string

const (
	StatusTaken   Status = "taken"
	StatusMissed  Status = "missed"
	StatusSkipped Status = "skipped"
	StatusLate    Status = "late"
)

func (s Status) Known() bool {
	switch s {
	case StatusTaken, StatusMissed, StatusSkipped, StatusLate:
		return true
	default:
		return false
	}
}

// Record es una entrada del historial de tomas. Append-only.
type Record struct {
	ID         string
	MedicineID string
	UserID     string

	TakenAt time.Time
	Status  Status
	Notes   string

	CreatedAt time.Time
}

// Entry es un registro con los datos del medicamento para mostrar.
type Entry struct {
	Record

	MedicineName string
	Dosage       string
}

// Statistics resume la adherencia de un usuario.
// Los totales de tomas son históricos; AdherenceRate mira sólo la ventana reciente.
type Statistics struct {
	TotalMedicines   int
	TotalDosesTaken  int
	TotalDosesMissed int
	AdherenceRate    float64 // porcentaje 0..100 con 2 decimales
}

// ListFilter: From inclusivo, Before exclusivo; campos vacíos no filtran.
type ListFilter struct {
	From       *time.Time
	Before     *time.Time
	MedicineID string
}

// CountFilter: Status vacío cuenta todos; From nil = sin límite inferior.
type CountFilter struct {
	UserID string
	Status Status
	From   *time.Time
}
