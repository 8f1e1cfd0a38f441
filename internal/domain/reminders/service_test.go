package reminders_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medicine-tracker/internal/adapters/storage/memory"
	"medicine-tracker/internal/domain/medicines"
	"medicine-tracker/internal/domain/reminders"
)

func setup(t *testing.T) (*memory.Store, *reminders.Service) {
	t.Helper()
	st := memory.NewStore()
	now := time.Date(2025, 5, 1, 8, 0, 0, 0, time.UTC)
	for _, m := range []medicines.Medicine{
		{ID: "m1", UserID: "user-1", Name: "Levothyroxine", Dosage: "50mcg", Frequency: medicines.FrequencyDaily, StartDate: now, Active: true, CreatedAt: now, UpdatedAt: now},
		{ID: "m2", UserID: "user-1", Name: "Atorvastatin", Dosage: "20mg", Frequency: medicines.FrequencyDaily, StartDate: now, Active: true, CreatedAt: now, UpdatedAt: now},
	} {
		require.NoError(t, st.Medicines().Create(context.Background(), m))
	}
	return st, reminders.NewService(st.Reminders(), st.Medicines())
}

func TestService_CreateAndList(t *testing.T) {
	_, svc := setup(t)
	ctx := context.Background()

	r1, err := svc.Create(ctx, "user-1", reminders.CreateInput{MedicineID: "m2", ReminderTime: "21:00"})
	require.NoError(t, err)
	assert.True(t, r1.Enabled)
	assert.Equal(t, "user-1", r1.UserID)

	_, err = svc.Create(ctx, "user-1", reminders.CreateInput{MedicineID: " m1 ", ReminderTime: "07:15"})
	require.NoError(t, err)

	list, err := svc.List(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "07:15", list[0].ReminderTime)
	assert.Equal(t, "Levothyroxine", list[0].MedicineName)
	assert.Equal(t, "21:00", list[1].ReminderTime)

	other, err := svc.List(ctx, "user-2")
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestService_Create_Errors(t *testing.T) {
	_, svc := setup(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, "user-1", reminders.CreateInput{MedicineID: "m1", ReminderTime: "7am"})
	assert.ErrorIs(t, err, reminders.ErrInvalidInput)

	_, err = svc.Create(ctx, "user-1", reminders.CreateInput{ReminderTime: "07:00"})
	assert.ErrorIs(t, err, reminders.ErrInvalidInput)

	_, err = svc.Create(ctx, "user-2", reminders.CreateInput{MedicineID: "m1", ReminderTime: "07:00"})
	assert.ErrorIs(t, err, medicines.ErrNotFound)

	_, err = svc.Create(ctx, "", reminders.CreateInput{MedicineID: "m1", ReminderTime: "07:00"})
	assert.ErrorIs(t, err, reminders.ErrInvalidInput)
}

func TestService_UpdateAndDelete(t *testing.T) {
	_, svc := setup(t)
	ctx := context.Background()

	rem, err := svc.Create(ctx, "user-1", reminders.CreateInput{MedicineID: "m1", ReminderTime: "07:00"})
	require.NoError(t, err)

	_, err = svc.Update(ctx, rem.ID, "user-1", reminders.UpdateInput{})
	assert.ErrorIs(t, err, reminders.ErrInvalidInput)

	bad := "7:00pm"
	_, err = svc.Update(ctx, rem.ID, "user-1", reminders.UpdateInput{ReminderTime: &bad})
	assert.ErrorIs(t, err, reminders.ErrInvalidInput)

	later := "08:45"
	ok, err := svc.Update(ctx, rem.ID, "user-1", reminders.UpdateInput{ReminderTime: &later})
	require.NoError(t, err)
	assert.True(t, ok)

	list, err := svc.List(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "08:45", list[0].ReminderTime)

	disabled := false
	ok, err = svc.Update(ctx, rem.ID, "user-2", reminders.UpdateInput{Enabled: &disabled})
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = svc.Update(ctx, rem.ID, "user-1", reminders.UpdateInput{Enabled: &disabled})
	require.NoError(t, err)
	assert.True(t, ok)

	list, err = svc.List(ctx, "user-1")
	require.NoError(t, err)
	assert.Empty(t, list)

	ok, err = svc.Delete(ctx, rem.ID, "user-2")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = svc.Delete(ctx, rem.ID, "user-1")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.Delete(ctx, rem.ID, "user-1")
	require.NoError(t, err)
	assert.False(t, ok)
}
