package medicines

import "time"

// Frequency define cada cuánto se toma el medicamento.
// @Enum daily, twice-daily, three-times-daily, weekly, as-needed
type Frequency string

const (
	FrequencyDaily           Frequency = "daily"
	FrequencyTwiceDaily      Frequency = "twice-daily"
	FrequencyThreeTimesDaily Frequency = "three-times-daily"
	FrequencyWeekly          Frequency = "weekly"
	FrequencyAsNeeded        Frequency = "as-needed"
)

// Known indica si la frecuencia es una de las soportadas por el generador de tomas.
func (f Frequency) Known() bool {
	switch f {
	case FrequencyDaily, FrequencyTwiceDaily, FrequencyThreeTimesDaily, FrequencyWeekly, FrequencyAsNeeded:
		return true
	default:
		return false
	}
}

// Medicine es un medicamento registrado por un usuario.
// Nunca se borra físicamente: Active=false es el borrado lógico.
type Medicine struct {
	ID     string
	UserID string

	Name      string
	Dosage    string
	Frequency Frequency

	StartDate time.Time  // fecha de calendario (UTC)
	EndDate   *time.Time // opcional

	Notes  string
	Active bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// PatchDate permite distinguir "no enviado" de "enviado como null" (limpiar).
type PatchDate struct {
	Present bool
	Value   *time.Time
}

// Patch contiene sólo los campos a modificar; nil = no tocar.
type Patch struct {
	Name      *string
	Dosage    *string
	Frequency *Frequency
	StartDate *time.Time
	EndDate   PatchDate
	Notes     *string
}

func (p Patch) IsEmpty() bool {
	return p.Name == nil &&
		p.Dosage == nil &&
		p.Frequency == nil &&
		p.StartDate == nil &&
		!p.EndDate.Present &&
		p.Notes == nil
}

// Apply devuelve m con el patch aplicado (no persiste nada).
func (p Patch) Apply(m Medicine) Medicine {
	if p.Name != nil {
		m.Name = *p.Name
	}
	if p.Dosage != nil {
		m.Dosage = *p.Dosage
	}
	if p.Frequency != nil {
		m.Frequency = *p.Frequency
	}
	if p.StartDate != nil {
		m.StartDate = *p.StartDate
	}
	if p.EndDate.Present {
		m.EndDate = p.EndDate.Value
	}
	if p.Notes != nil {
		m.Notes = *p.Notes
	}
	return m
}
