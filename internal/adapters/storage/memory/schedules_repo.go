package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"medicine-tracker/internal/domain/schedules"
	"medicine-tracker/internal/ports/storage"
)

type scheduleRepo struct {
	s *Store
}

func (r *scheduleRepo) Create(ctx context.Context, sc schedules.Schedule) error {
	defer r.s.lock(ctx)()

	if strings.TrimSpace(sc.ID) == "" {
		return errors.New("schedule id required")
	}
	if _, exists := r.s.schedules[sc.ID]; exists {
		return errors.New("schedule already exists")
	}
	if _, ok := r.s.medicines[sc.MedicineID]; !ok {
		return errors.New("schedule references unknown medicine")
	}
	r.s.schedules[sc.ID] = sc
	return nil
}

func (r *scheduleRepo) GetOwned(ctx context.Context, id, userID string) (schedules.Schedule, error) {
	defer r.s.lock(ctx)()

	sc, ok := r.s.schedules[id]
	if !ok {
		return schedules.Schedule{}, storage.ErrNotFound
	}
	m, ok := r.s.medicines[sc.MedicineID]
	if !ok || m.UserID != userID {
		return schedules.Schedule{}, storage.ErrNotFound
	}
	return sc, nil
}

func (r *scheduleRepo) MarkTaken(ctx context.Context, id string, takenAt time.Time) (bool, error) {
	defer r.s.lock(ctx)()

	sc, ok := r.s.schedules[id]
	if !ok || sc.Taken {
		return false, nil
	}
	sc.Taken = true
	sc.TakenAt = &takenAt
	r.s.schedules[id] = sc
	return true, nil
}

func (r *scheduleRepo) ListByUser(ctx context.Context, userID string, f schedules.ListFilter) ([]schedules.Entry, error) {
	defer r.s.lock(ctx)()

	out := make([]schedules.Entry, 0)
	for _, sc := range r.s.schedules {
		m, ok := r.s.medicines[sc.MedicineID]
		if !ok || m.UserID != userID || !m.Active {
			continue
		}
		if f.Date != nil && !sc.ScheduledDate.Equal(*f.Date) {
			continue
		}
		out = append(out, schedules.Entry{
			Schedule:     sc,
			MedicineName: m.Name,
			Dosage:       m.Dosage,
			Frequency:    m.Frequency,
		})
	}

	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if !a.ScheduledDate.Equal(b.ScheduledDate) {
			return a.ScheduledDate.After(b.ScheduledDate)
		}
		if a.ScheduledTime != b.ScheduledTime {
			return a.ScheduledTime < b.ScheduledTime
		}
		return a.ID < b.ID
	})
	return out, nil
}
