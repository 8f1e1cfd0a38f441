package reminders

import "time"

// Reminder es una hora de aviso configurada para un medicamento.
// Es configuración, no historial: se borra físicamente.
type Reminder struct {
	ID         string
	MedicineID string
	UserID     string

	ReminderTime string // "HH:MM"
	Enabled      bool

	CreatedAt time.Time
}

// Entry agrega nombre y dosis del medicamento.
type Entry struct {
	Reminder

	MedicineName string
	Dosage       string
}

// Patch: nil = no tocar.
type Patch struct {
	ReminderTime *string
	Enabled      *bool
}

func (p Patch) IsEmpty() bool {
	return p.ReminderTime == nil && p.Enabled == nil
}
