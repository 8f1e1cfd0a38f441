package schedules

import (
	"time"

	"medicine-tracker/internal/domain/medicines"
	"medicine-tracker/internal/platform/dates"
)

// TimesFor mapea una frecuencia a las horas de toma del día.
// weekly sólo produce toma si el medicamento ya empezó (startDate <= today).
// known=false indica una frecuencia no soportada (sin tomas).
func TimesFor(freq medicines.Frequency, startDate, today time.Time) (times []string, known bool) {
	switch freq {
	case medicines.FrequencyDaily:
		return []string{"09:00"}, true
	case medicines.FrequencyTwiceDaily:
		return []string{"09:00", "18:00"}, true
	case medicines.FrequencyThreeTimesDaily:
		return []string{"08:00", "14:00", "20:00"}, true
	case medicines.FrequencyWeekly:
		if dates.Day(startDate).After(dates.Day(today)) {
			return nil, true
		}
		return []string{"09:00"}, true
	case medicines.FrequencyAsNeeded:
		return nil, true
	default:
		return nil, false
	}
}
