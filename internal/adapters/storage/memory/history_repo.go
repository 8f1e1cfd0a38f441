package memory

import (
	"context"
	"errors"
	"sort"
	"strings"

	"medicine-tracker/internal/domain/history"
)

type historyRepo struct {
	s *Store
}

func (r *historyRepo) Create(ctx context.Context, rec history.Record) error {
	defer r.s.lock(ctx)()

	if strings.TrimSpace(rec.ID) == "" {
		return errors.New("history id required")
	}
	if _, exists := r.s.history[rec.ID]; exists {
		return errors.New("history record already exists")
	}
	if _, ok := r.s.medicines[rec.MedicineID]; !ok {
		return errors.New("history references unknown medicine")
	}
	r.s.history[rec.ID] = rec
	return nil
}

func (r *historyRepo) List(ctx context.Context, userID string, f history.ListFilter) ([]history.Entry, error) {
	defer r.s.lock(ctx)()

	out := make([]history.Entry, 0)
	for _, rec := range r.s.history {
		if rec.UserID != userID {
			continue
		}
		if f.MedicineID != "" && rec.MedicineID != f.MedicineID {
			continue
		}
		if f.From != nil && rec.TakenAt.Before(*f.From) {
			continue
		}
		if f.Before != nil && !rec.TakenAt.Before(*f.Before) {
			continue
		}

		e := history.Entry{Record: rec}
		if m, ok := r.s.medicines[rec.MedicineID]; ok {
			e.MedicineName = m.Name
			e.Dosage = m.Dosage
		}
		out = append(out, e)
	}

	sort.Slice(out, func(i, j int) bool {
		if !out[i].TakenAt.Equal(out[j].TakenAt) {
			return out[i].TakenAt.After(out[j].TakenAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (r *historyRepo) Count(ctx context.Context, f history.CountFilter) (int, error) {
	defer r.s.lock(ctx)()

	n := 0
	for _, rec := range r.s.history {
		if rec.UserID != f.UserID {
			continue
		}
		if f.Status != "" && rec.Status != f.Status {
			continue
		}
		if f.From != nil && rec.TakenAt.Before(*f.From) {
			continue
		}
		n++
	}
	return n, nil
}
