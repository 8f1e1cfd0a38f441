// Package storagetest contiene la batería de pruebas que todo backend de persistencia debe pasar.
package storagetest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medicine-tracker/internal/domain/history"
	"medicine-tracker/internal/domain/medicines"
	"medicine-tracker/internal/domain/reminders"
	"medicine-tracker/internal/domain/schedules"
	"medicine-tracker/internal/ports/storage"
)

// Backend es lo que exponen memory.Store y sqlstore.Store.
type Backend interface {
	storage.Transactor
	Medicines() medicines.Repository
	Schedules() schedules.Repository
	History() history.Repository
	Reminders() reminders.Repository
}

var base = time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func newMedicine(id, userID string, createdAt time.Time) medicines.Medicine {
	return medicines.Medicine{
		ID:        id,
		UserID:    userID,
		Name:      "Aspirin " + id,
		Dosage:    "100mg",
		Frequency: medicines.FrequencyDaily,
		StartDate: day(2025, 3, 1),
		Active:    true,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
}

// Run ejecuta todos los casos; newBackend debe devolver un backend vacío en cada llamada.
func Run(t *testing.T, newBackend func(t *testing.T) Backend) {
	t.Run("medicines", func(t *testing.T) { testMedicines(t, newBackend(t)) })
	t.Run("schedules", func(t *testing.T) { testSchedules(t, newBackend(t)) })
	t.Run("history", func(t *testing.T) { testHistory(t, newBackend(t)) })
	t.Run("reminders", func(t *testing.T) { testReminders(t, newBackend(t)) })
	t.Run("transactions", func(t *testing.T) { testTransactions(t, newBackend(t)) })
}

func testMedicines(t *testing.T, b Backend) {
	ctx := context.Background()
	repo := b.Medicines()

	m1 := newMedicine("m1", "u1", base)
	m1.Notes = "with food"
	m2 := newMedicine("m2", "u1", base.Add(time.Hour))
	ed := day(2025, 4, 1)
	m2.EndDate = &ed
	other := newMedicine("m3", "u2", base)

	for _, m := range []medicines.Medicine{m1, m2, other} {
		require.NoError(t, repo.Create(ctx, m))
	}

	got, err := repo.GetOwned(ctx, "m2", "u1")
	require.NoError(t, err)
	assert.Equal(t, "Aspirin m2", got.Name)
	assert.Equal(t, medicines.FrequencyDaily, got.Frequency)
	assert.True(t, got.StartDate.Equal(day(2025, 3, 1)))
	require.NotNil(t, got.EndDate)
	assert.True(t, got.EndDate.Equal(ed))
	assert.True(t, got.Active)
	assert.True(t, got.CreatedAt.Equal(m2.CreatedAt))

	_, err = repo.GetOwned(ctx, "m3", "u1")
	assert.True(t, errors.Is(err, storage.ErrNotFound), "other user's medicine must look missing")
	_, err = repo.GetOwned(ctx, "missing", "u1")
	assert.True(t, errors.Is(err, storage.ErrNotFound))

	list, err := repo.ListActive(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "m2", list[0].ID, "newest first")
	assert.Equal(t, "m1", list[1].ID)
	assert.Equal(t, "with food", list[1].Notes)

	// Patch parcial + limpiar end_date
	newName := "Ibuprofen"
	ok, err := repo.Update(ctx, "m2", "u1", medicines.Patch{
		Name:    &newName,
		EndDate: medicines.PatchDate{Present: true},
	}, base.Add(2*time.Hour))
	require.NoError(t, err)
	assert.True(t, ok)

	got, err = repo.GetOwned(ctx, "m2", "u1")
	require.NoError(t, err)
	assert.Equal(t, "Ibuprofen", got.Name)
	assert.Equal(t, "100mg", got.Dosage)
	assert.Nil(t, got.EndDate)
	assert.True(t, got.UpdatedAt.Equal(base.Add(2*time.Hour)))

	ok, err = repo.Update(ctx, "m3", "u1", medicines.Patch{Name: &newName}, base)
	require.NoError(t, err)
	assert.False(t, ok, "cannot update another user's medicine")

	ok, err = repo.Deactivate(ctx, "m3", "u1", base)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = repo.Deactivate(ctx, "m1", "u1", base.Add(3*time.Hour))
	require.NoError(t, err)
	assert.True(t, ok)

	list, err = repo.ListActive(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "m2", list[0].ID)

	// Soft delete: sigue existiendo
	got, err = repo.GetOwned(ctx, "m1", "u1")
	require.NoError(t, err)
	assert.False(t, got.Active)

	n, err := repo.CountActive(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	n, err = repo.CountActive(ctx, "u2")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func testSchedules(t *testing.T, b Backend) {
	ctx := context.Background()
	meds := b.Medicines()
	repo := b.Schedules()

	require.NoError(t, meds.Create(ctx, newMedicine("m1", "u1", base)))
	require.NoError(t, meds.Create(ctx, newMedicine("m2", "u1", base)))
	require.NoError(t, meds.Create(ctx, newMedicine("m3", "u2", base)))

	today := day(2025, 3, 1)
	yesterday := day(2025, 2, 28)
	rows := []schedules.Schedule{
		{ID: "s1", MedicineID: "m1", ScheduledTime: "18:00", ScheduledDate: today, CreatedAt: base},
		{ID: "s2", MedicineID: "m1", ScheduledTime: "09:00", ScheduledDate: today, CreatedAt: base},
		{ID: "s3", MedicineID: "m1", ScheduledTime: "09:00", ScheduledDate: yesterday, CreatedAt: base},
		{ID: "s4", MedicineID: "m2", ScheduledTime: "08:00", ScheduledDate: today, CreatedAt: base},
		{ID: "s5", MedicineID: "m3", ScheduledTime: "09:00", ScheduledDate: today, CreatedAt: base},
	}
	for _, sc := range rows {
		require.NoError(t, repo.Create(ctx, sc))
	}

	got, err := repo.GetOwned(ctx, "s1", "u1")
	require.NoError(t, err)
	assert.Equal(t, "18:00", got.ScheduledTime)
	assert.True(t, got.ScheduledDate.Equal(today))
	assert.False(t, got.Taken)
	assert.Nil(t, got.TakenAt)

	_, err = repo.GetOwned(ctx, "s5", "u1")
	assert.True(t, errors.Is(err, storage.ErrNotFound))

	// Conditional update: sólo la primera vez cambia.
	takenAt := base.Add(30 * time.Minute)
	changed, err := repo.MarkTaken(ctx, "s2", takenAt)
	require.NoError(t, err)
	assert.True(t, changed)
	changed, err = repo.MarkTaken(ctx, "s2", takenAt.Add(time.Hour))
	require.NoError(t, err)
	assert.False(t, changed)

	got, err = repo.GetOwned(ctx, "s2", "u1")
	require.NoError(t, err)
	assert.True(t, got.Taken)
	require.NotNil(t, got.TakenAt)
	assert.True(t, got.TakenAt.Equal(takenAt), "taken_at must keep the first mark")

	// Hoy: orden por hora ascendente.
	list, err := repo.ListByUser(ctx, "u1", schedules.ListFilter{Date: &today})
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []string{"s4", "s2", "s1"}, []string{list[0].ID, list[1].ID, list[2].ID})
	assert.Equal(t, "Aspirin m2", list[0].MedicineName)
	assert.Equal(t, "100mg", list[0].Dosage)
	assert.Equal(t, medicines.FrequencyDaily, list[0].Frequency)

	// Todas: fecha desc y hora asc.
	list, err = repo.ListByUser(ctx, "u1", schedules.ListFilter{})
	require.NoError(t, err)
	require.Len(t, list, 4)
	assert.Equal(t, "s3", list[3].ID)

	// Medicamento inactivo desaparece del listado.
	ok, err := meds.Deactivate(ctx, "m2", "u1", base)
	require.NoError(t, err)
	require.True(t, ok)
	list, err = repo.ListByUser(ctx, "u1", schedules.ListFilter{Date: &today})
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func testHistory(t *testing.T, b Backend) {
	ctx := context.Background()
	meds := b.Medicines()
	repo := b.History()

	require.NoError(t, meds.Create(ctx, newMedicine("m1", "u1", base)))
	require.NoError(t, meds.Create(ctx, newMedicine("m2", "u1", base)))
	require.NoError(t, meds.Create(ctx, newMedicine("m3", "u2", base)))

	records := []history.Record{
		{ID: "h1", MedicineID: "m1", UserID: "u1", TakenAt: day(2025, 1, 10).Add(9 * time.Hour), Status: history.StatusTaken, CreatedAt: base},
		{ID: "h2", MedicineID: "m1", UserID: "u1", TakenAt: day(2025, 2, 20).Add(9 * time.Hour), Status: history.StatusMissed, CreatedAt: base},
		{ID: "h3", MedicineID: "m2", UserID: "u1", TakenAt: day(2025, 2, 28).Add(23 * time.Hour), Status: history.StatusTaken, Notes: "late night", CreatedAt: base},
		{ID: "h4", MedicineID: "m1", UserID: "u1", TakenAt: day(2025, 3, 1).Add(9 * time.Hour), Status: history.StatusTaken, CreatedAt: base},
		{ID: "h5", MedicineID: "m3", UserID: "u2", TakenAt: day(2025, 3, 1).Add(9 * time.Hour), Status: history.StatusTaken, CreatedAt: base},
	}
	for _, r := range records {
		require.NoError(t, repo.Create(ctx, r))
	}

	all, err := repo.List(ctx, "u1", history.ListFilter{})
	require.NoError(t, err)
	require.Len(t, all, 4)
	assert.Equal(t, []string{"h4", "h3", "h2", "h1"}, []string{all[0].ID, all[1].ID, all[2].ID, all[3].ID})
	assert.Equal(t, "Aspirin m2", all[1].MedicineName)
	assert.Equal(t, "late night", all[1].Notes)
	assert.True(t, all[1].TakenAt.Equal(records[2].TakenAt))

	from := day(2025, 2, 20)
	before := day(2025, 3, 1)
	ranged, err := repo.List(ctx, "u1", history.ListFilter{From: &from, Before: &before})
	require.NoError(t, err)
	require.Len(t, ranged, 2)
	assert.Equal(t, "h3", ranged[0].ID)
	assert.Equal(t, "h2", ranged[1].ID)

	byMed, err := repo.List(ctx, "u1", history.ListFilter{MedicineID: "m1", From: &from})
	require.NoError(t, err)
	require.Len(t, byMed, 2)
	assert.Equal(t, "h4", byMed[0].ID)

	n, err := repo.Count(ctx, history.CountFilter{UserID: "u1"})
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	n, err = repo.Count(ctx, history.CountFilter{UserID: "u1", Status: history.StatusTaken})
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	n, err = repo.Count(ctx, history.CountFilter{UserID: "u1", Status: history.StatusTaken, From: &from})
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = repo.Count(ctx, history.CountFilter{UserID: "nobody"})
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func testReminders(t *testing.T, b Backend) {
	ctx := context.Background()
	meds := b.Medicines()
	repo := b.Reminders()

	require.NoError(t, meds.Create(ctx, newMedicine("m1", "u1", base)))
	require.NoError(t, meds.Create(ctx, newMedicine("m2", "u1", base)))

	for _, r := range []reminders.Reminder{
		{ID: "r1", MedicineID: "m1", UserID: "u1", ReminderTime: "20:00", Enabled: true, CreatedAt: base},
		{ID: "r2", MedicineID: "m1", UserID: "u1", ReminderTime: "08:00", Enabled: true, CreatedAt: base},
		{ID: "r3", MedicineID: "m1", UserID: "u1", ReminderTime: "12:00", Enabled: false, CreatedAt: base},
		{ID: "r4", MedicineID: "m2", UserID: "u1", ReminderTime: "07:00", Enabled: true, CreatedAt: base},
	} {
		require.NoError(t, repo.Create(ctx, r))
	}

	list, err := repo.ListEnabled(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []string{"r4", "r2", "r1"}, []string{list[0].ID, list[1].ID, list[2].ID})
	assert.Equal(t, "Aspirin m1", list[1].MedicineName)

	_, err = meds.Deactivate(ctx, "m2", "u1", base)
	require.NoError(t, err)

	enable := true
	newTime := "06:30"
	ok, err := repo.Update(ctx, "r3", "u1", reminders.Patch{Enabled: &enable, ReminderTime: &newTime})
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.Update(ctx, "r3", "u2", reminders.Patch{Enabled: &enable})
	require.NoError(t, err)
	assert.False(t, ok)

	list, err = repo.ListEnabled(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "r3", list[0].ID)
	assert.Equal(t, "06:30", list[0].ReminderTime)

	ok, err = repo.Delete(ctx, "r1", "u2")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = repo.Delete(ctx, "r1", "u1")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.Delete(ctx, "r1", "u1")
	require.NoError(t, err)
	assert.False(t, ok)

	list, err = repo.ListEnabled(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func testTransactions(t *testing.T, b Backend) {
	ctx := context.Background()
	meds := b.Medicines()
	boom := errors.New("boom")

	err := b.WithinTx(ctx, func(ctx context.Context) error {
		require.NoError(t, meds.Create(ctx, newMedicine("rolled-back", "u1", base)))
		require.NoError(t, b.Schedules().Create(ctx, schedules.Schedule{
			ID: "s-rb", MedicineID: "rolled-back", ScheduledTime: "09:00", ScheduledDate: day(2025, 3, 1), CreatedAt: base,
		}))

		// Dentro del tx se ve lo escrito.
		_, err := meds.GetOwned(ctx, "rolled-back", "u1")
		require.NoError(t, err)
		return boom
	})
	assert.ErrorIs(t, err, boom)

	_, err = meds.GetOwned(ctx, "rolled-back", "u1")
	assert.True(t, errors.Is(err, storage.ErrNotFound), "rollback must discard the medicine")
	_, err = b.Schedules().GetOwned(ctx, "s-rb", "u1")
	assert.True(t, errors.Is(err, storage.ErrNotFound), "rollback must discard the schedule")

	err = b.WithinTx(ctx, func(ctx context.Context) error {
		return meds.Create(ctx, newMedicine("committed", "u1", base))
	})
	require.NoError(t, err)

	_, err = meds.GetOwned(ctx, "committed", "u1")
	assert.NoError(t, err)
}
