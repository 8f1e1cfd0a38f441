package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"medicine-tracker/internal/domain/medicines"
	"medicine-tracker/internal/ports/storage"
)

type medicineRepo struct {
	s *Store
}

func (r *medicineRepo) Create(ctx context.Context, m medicines.Medicine) error {
	defer r.s.lock(ctx)()

	if strings.TrimSpace(m.ID) == "" {
		return errors.New("medicine id required")
	}
	if _, exists := r.s.medicines[m.ID]; exists {
		return errors.New("medicine already exists")
	}
	r.s.medicines[m.ID] = m
	return nil
}

func (r *medicineRepo) GetOwned(ctx context.Context, id, userID string) (medicines.Medicine, error) {
	defer r.s.lock(ctx)()

	m, ok := r.s.medicines[id]
	if !ok || m.UserID != userID {
		return medicines.Medicine{}, storage.ErrNotFound
	}
	return m, nil
}

func (r *medicineRepo) ListActive(ctx context.Context, userID string) ([]medicines.Medicine, error) {
	defer r.s.lock(ctx)()

	out := make([]medicines.Medicine, 0)
	for _, m := range r.s.medicines {
		if m.UserID == userID && m.Active {
			out = append(out, m)
		}
	}

	// created_at desc; id como desempate para orden estable
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (r *medicineRepo) Update(ctx context.Context, id, userID string, p medicines.Patch, updatedAt time.Time) (bool, error) {
	defer r.s.lock(ctx)()

	m, ok := r.s.medicines[id]
	if !ok || m.UserID != userID {
		return false, nil
	}
	m = p.Apply(m)
	m.UpdatedAt = updatedAt
	r.s.medicines[id] = m
	return true, nil
}

func (r *medicineRepo) Deactivate(ctx context.Context, id, userID string, updatedAt time.Time) (bool, error) {
	defer r.s.lock(ctx)()

	m, ok := r.s.medicines[id]
	if !ok || m.UserID != userID {
		return false, nil
	}
	m.Active = false
	m.UpdatedAt = updatedAt
	r.s.medicines[id] = m
	return true, nil
}

func (r *medicineRepo) CountActive(ctx context.Context, userID string) (int, error) {
	defer r.s.lock(ctx)()

	n := 0
	for _, m := range r.s.medicines {
		if m.UserID == userID && m.Active {
			n++
		}
	}
	return n, nil
}
