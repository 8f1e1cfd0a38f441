package memory

import (
	"context"
	"errors"
	"sort"
	"strings"

	"medicine-tracker/internal/domain/reminders"
)

type reminderRepo struct {
	s *Store
}

func (r *reminderRepo) Create(ctx context.Context, rem reminders.Reminder) error {
	defer r.s.lock(ctx)()

	if strings.TrimSpace(rem.ID) == "" {
		return errors.New("reminder id required")
	}
	if _, exists := r.s.reminders[rem.ID]; exists {
		return errors.New("reminder already exists")
	}
	r.s.reminders[rem.ID] = rem
	return nil
}

func (r *reminderRepo) ListEnabled(ctx context.Context, userID string) ([]reminders.Entry, error) {
	defer r.s.lock(ctx)()

	out := make([]reminders.Entry, 0)
	for _, rem := range r.s.reminders {
		if rem.UserID != userID || !rem.Enabled {
			continue
		}
		m, ok := r.s.medicines[rem.MedicineID]
		if !ok || !m.Active {
			continue
		}
		out = append(out, reminders.Entry{
			Reminder:     rem,
			MedicineName: m.Name,
			Dosage:       m.Dosage,
		})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].ReminderTime != out[j].ReminderTime {
			return out[i].ReminderTime < out[j].ReminderTime
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *reminderRepo) Update(ctx context.Context, id, userID string, p reminders.Patch) (bool, error) {
	defer r.s.lock(ctx)()

	rem, ok := r.s.reminders[id]
	if !ok || rem.UserID != userID {
		return false, nil
	}
	if p.ReminderTime != nil {
		rem.ReminderTime = *p.ReminderTime
	}
	if p.Enabled != nil {
		rem.Enabled = *p.Enabled
	}
	r.s.reminders[id] = rem
	return true, nil
}

func (r *reminderRepo) Delete(ctx context.Context, id, userID string) (bool, error) {
	defer r.s.lock(ctx)()

	rem, ok := r.s.reminders[id]
	if !ok || rem.UserID != userID {
		return false, nil
	}
	delete(r.s.reminders, id)
	return true, nil
}
