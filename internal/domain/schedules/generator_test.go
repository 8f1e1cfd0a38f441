package schedules

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"medicine-tracker/internal/domain/medicines"
)

func TestTimesFor(t *testing.T) {
	today := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)
	past := today.AddDate(0, 0, -10)
	future := today.AddDate(0, 0, 3)

	cases := []struct {
		name  string
		freq  medicines.Frequency
		start time.Time
		want  []string
		known bool
	}{
		{"daily", medicines.FrequencyDaily, past, []string{"09:00"}, true},
		{"daily future start", medicines.FrequencyDaily, future, []string{"09:00"}, true},
		{"twice daily", medicines.FrequencyTwiceDaily, past, []string{"09:00", "18:00"}, true},
		{"three times daily", medicines.FrequencyThreeTimesDaily, past, []string{"08:00", "14:00", "20:00"}, true},
		{"weekly started", medicines.FrequencyWeekly, past, []string{"09:00"}, true},
		{"weekly starts today", medicines.FrequencyWeekly, today.Add(15 * time.Hour), []string{"09:00"}, true},
		{"weekly not started", medicines.FrequencyWeekly, future, nil, true},
		{"as needed", medicines.FrequencyAsNeeded, past, nil, true},
		{"unknown", "hourly", past, nil, false},
		{"empty", "", past, nil, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, known := TimesFor(tc.freq, tc.start, today)
			assert.Equal(t, tc.known, known)
			assert.Equal(t, tc.want, got)
		})
	}
}
