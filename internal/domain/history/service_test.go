package history_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medicine-tracker/internal/adapters/storage/memory"
	"medicine-tracker/internal/domain/history"
	"medicine-tracker/internal/domain/medicines"
	"medicine-tracker/internal/domain/schedules"
	"medicine-tracker/internal/platform/validation"
)

var now = time.Date(2025, 7, 20, 15, 0, 0, 0, time.UTC)

func clock() time.Time { return now }

func seedMedicine(t *testing.T, st *memory.Store, id, userID string) {
	t.Helper()
	err := st.Medicines().Create(context.Background(), medicines.Medicine{
		ID:        id,
		UserID:    userID,
		Name:      "Med " + id,
		Dosage:    "10mg",
		Frequency: medicines.FrequencyDaily,
		StartDate: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	})
	require.NoError(t, err)
}

func record(t *testing.T, svc *history.Service, medID, userID string, status history.Status, at time.Time) {
	t.Helper()
	_, err := svc.Record(context.Background(), history.RecordInput{
		MedicineID: medID,
		UserID:     userID,
		Status:     status,
		TakenAt:    &at,
	})
	require.NoError(t, err)
}

func TestAdherenceRate(t *testing.T) {
	assert.Equal(t, 0.0, history.AdherenceRate(0, 0))
	assert.Equal(t, 100.0, history.AdherenceRate(3, 3))
	assert.Equal(t, 66.67, history.AdherenceRate(2, 3))
	assert.Equal(t, 33.33, history.AdherenceRate(1, 3))
	assert.Equal(t, 14.29, history.AdherenceRate(1, 7))
}

func TestService_Statistics_NoHistory(t *testing.T) {
	st := memory.NewStore()
	svc := history.NewService(st.History(), st.Medicines(), history.WithClock(clock))
	seedMedicine(t, st, "m1", "user-1")

	stats, err := svc.Statistics(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, history.Statistics{TotalMedicines: 1}, stats)
}

func TestService_Statistics_WindowVersusLifetime(t *testing.T) {
	st := memory.NewStore()
	svc := history.NewService(st.History(), st.Medicines(), history.WithClock(clock))
	seedMedicine(t, st, "m1", "user-1")
	seedMedicine(t, st, "m2", "user-2")

	// Fuera de la ventana de 30 días: cuentan sólo en los totales.
	old := now.AddDate(0, 0, -45)
	record(t, svc, "m1", "user-1", history.StatusMissed, old)
	record(t, svc, "m1", "user-1", history.StatusMissed, old.Add(time.Hour))

	// Dentro de la ventana.
	record(t, svc, "m1", "user-1", history.StatusTaken, now.AddDate(0, 0, -2))
	record(t, svc, "m1", "user-1", history.StatusTaken, now.AddDate(0, 0, -1))
	record(t, svc, "m1", "user-1", history.StatusSkipped, now.Add(-time.Hour))

	// Otro usuario no influye.
	record(t, svc, "m2", "user-2", history.StatusMissed, now.Add(-time.Hour))

	stats, err := svc.Statistics(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, 1, stats.TotalMedicines)
	assert.Equal(t, 2, stats.TotalDosesTaken)
	assert.Equal(t, 2, stats.TotalDosesMissed)
	// 2 taken de 3 registros en ventana; los missed viejos no cuentan.
	assert.Equal(t, 66.67, stats.AdherenceRate)
}

func TestService_Statistics_WindowStartsAtMidnight(t *testing.T) {
	st := memory.NewStore()
	svc := history.NewService(st.History(), st.Medicines(), history.WithClock(clock))
	seedMedicine(t, st, "m1", "user-1")

	edge := time.Date(2025, 6, 20, 0, 0, 0, 0, time.UTC) // hoy - 30 días, 00:00
	record(t, svc, "m1", "user-1", history.StatusTaken, edge)
	record(t, svc, "m1", "user-1", history.StatusMissed, edge.Add(-time.Second))

	stats, err := svc.Statistics(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, 1, stats.TotalDosesTaken)
	assert.Equal(t, 1, stats.TotalDosesMissed)
	assert.Equal(t, 100.0, stats.AdherenceRate)
}

func TestService_Record(t *testing.T) {
	st := memory.NewStore()
	svc := history.NewService(st.History(), st.Medicines(), history.WithClock(clock))
	seedMedicine(t, st, "m1", "user-1")
	ctx := context.Background()

	rec, err := svc.Record(ctx, history.RecordInput{MedicineID: "m1", UserID: "user-1", Notes: " ok "})
	require.NoError(t, err)
	assert.Equal(t, history.StatusTaken, rec.Status)
	assert.Equal(t, now, rec.TakenAt)
	assert.Equal(t, "ok", rec.Notes)

	_, err = svc.Record(ctx, history.RecordInput{MedicineID: "m1", UserID: "user-1", Status: "forgotten"})
	require.ErrorIs(t, err, history.ErrInvalidInput)
	assert.Contains(t, validation.Fields(err), "status")

	future := now.Add(time.Hour)
	_, err = svc.Record(ctx, history.RecordInput{MedicineID: "m1", UserID: "user-1", TakenAt: &future})
	require.ErrorIs(t, err, history.ErrInvalidInput)
	assert.Contains(t, validation.Fields(err), "taken_at")

	// dentro de la tolerancia de reloj
	skewed := now.Add(30 * time.Second)
	_, err = svc.Record(ctx, history.RecordInput{MedicineID: "m1", UserID: "user-1", TakenAt: &skewed})
	require.NoError(t, err)

	_, err = svc.Record(ctx, history.RecordInput{UserID: "user-1"})
	assert.ErrorIs(t, err, history.ErrInvalidInput)
}

func TestService_List_Filters(t *testing.T) {
	st := memory.NewStore()
	svc := history.NewService(st.History(), st.Medicines(), history.WithClock(clock))
	seedMedicine(t, st, "m1", "user-1")
	seedMedicine(t, st, "m2", "user-1")
	ctx := context.Background()

	d := func(day, hour int) time.Time { return time.Date(2025, 7, day, hour, 0, 0, 0, time.UTC) }
	record(t, svc, "m1", "user-1", history.StatusTaken, d(10, 9))
	record(t, svc, "m1", "user-1", history.StatusMissed, d(11, 23))
	record(t, svc, "m2", "user-1", history.StatusTaken, d(12, 9))
	record(t, svc, "m2", "user-1", history.StatusTaken, d(14, 9))

	all, err := svc.List(ctx, "user-1", history.Filter{})
	require.NoError(t, err)
	require.Len(t, all, 4)
	assert.Equal(t, d(14, 9), all[0].TakenAt)
	assert.Equal(t, d(10, 9), all[3].TakenAt)
	assert.Equal(t, "Med m2", all[0].MedicineName)

	// date_to es inclusivo
	from, to := d(11, 0), d(12, 0)
	ranged, err := svc.List(ctx, "user-1", history.Filter{DateFrom: &from, DateTo: &to})
	require.NoError(t, err)
	require.Len(t, ranged, 2)
	assert.Equal(t, d(12, 9), ranged[0].TakenAt)
	assert.Equal(t, d(11, 23), ranged[1].TakenAt)

	byMed, err := svc.List(ctx, "user-1", history.Filter{MedicineID: "m1", DateFrom: &from})
	require.NoError(t, err)
	require.Len(t, byMed, 1)
	assert.Equal(t, history.StatusMissed, byMed[0].Status)

	_, err = svc.List(ctx, "user-1", history.Filter{DateFrom: &to, DateTo: &from})
	assert.ErrorIs(t, err, history.ErrInvalidInput)

	none, err := svc.List(ctx, "user-2", history.Filter{})
	require.NoError(t, err)
	assert.Empty(t, none)
}

// Alta de medicamento, toma marcada y estadísticas de punta a punta.
func TestScenario_TwiceDailyAspirin(t *testing.T) {
	st := memory.NewStore()
	hist := history.NewService(st.History(), st.Medicines(), history.WithClock(clock))
	sched := schedules.NewService(st.Schedules(), st.Medicines(), hist, st, schedules.WithClock(clock))
	meds := medicines.NewService(st.Medicines(), sched, st, medicines.WithClock(clock))
	ctx := context.Background()

	m, err := meds.Create(ctx, "1", medicines.CreateInput{
		Name:      "Aspirin",
		Dosage:    "100mg",
		Frequency: medicines.FrequencyTwiceDaily,
		StartDate: time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	today, err := sched.Today(ctx, "1")
	require.NoError(t, err)
	require.Len(t, today, 2)
	assert.Equal(t, "09:00", today[0].ScheduledTime)
	assert.Equal(t, "18:00", today[1].ScheduledTime)

	ok, err := sched.MarkTaken(ctx, today[0].ID, "1")
	require.NoError(t, err)
	require.True(t, ok)

	today, err = sched.Today(ctx, "1")
	require.NoError(t, err)
	assert.True(t, today[0].Taken)
	assert.False(t, today[1].Taken)

	recs, err := hist.List(ctx, "1", history.Filter{MedicineID: m.ID})
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, history.StatusTaken, recs[0].Status)

	stats, err := hist.Statistics(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, 1, stats.TotalMedicines)
	assert.GreaterOrEqual(t, stats.TotalDosesTaken, 1)
	assert.Equal(t, 100.0, stats.AdherenceRate)
}
