package reminders

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"medicine-tracker/internal/domain/medicines"
	"medicine-tracker/internal/platform/validation"
	"medicine-tracker/internal/ports/storage"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("reminder not found")
)

// MedicineLookup lo cumple medicines.Repository.
type MedicineLookup interface {
	GetOwned(ctx context.Context, id, userID string) (medicines.Medicine, error)
}

type Service struct {
	repo      Repository
	medicines MedicineLookup
	validate  *validation.Validator
	now       func() time.Time
}

func NewService(repo Repository, meds MedicineLookup) *Service {
	return &Service{
		repo:      repo,
		medicines: meds,
		validate:  validation.Default(),
		now:       time.Now,
	}
}

type CreateInput struct {
	MedicineID   string `json:"medicine_id" validate:"notblank"`
	ReminderTime string `json:"reminder_time" validate:"hhmm"`
}

// Create agrega un recordatorio habilitado. medicines.ErrNotFound si el medicamento no es del usuario.
func (s *Service) Create(ctx context.Context, userID string, in CreateInput) (Reminder, error) {
	if strings.TrimSpace(userID) == "" {
		return Reminder{}, ErrInvalidInput
	}
	in.MedicineID = strings.TrimSpace(in.MedicineID)
	in.ReminderTime = strings.TrimSpace(in.ReminderTime)
	if err := s.validate.Validate(in); err != nil {
		return Reminder{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	if _, err := s.medicines.GetOwned(ctx, in.MedicineID, userID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return Reminder{}, medicines.ErrNotFound
		}
		return Reminder{}, err
	}

	rem := Reminder{
		ID:           uuid.NewString(),
		MedicineID:   in.MedicineID,
		UserID:       userID,
		ReminderTime: in.ReminderTime,
		Enabled:      true,
		CreatedAt:    s.now().UTC(),
	}
	if err := s.repo.Create(ctx, rem); err != nil {
		return Reminder{}, err
	}
	return rem, nil
}

func (s *Service) List(ctx context.Context, userID string) ([]Entry, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrInvalidInput
	}
	return s.repo.ListEnabled(ctx, userID)
}

type UpdateInput struct {
	ReminderTime *string `json:"reminder_time" validate:"omitempty,hhmm"`
	Enabled      *bool   `json:"enabled"`
}

// Update aplica sólo los campos presentes; false si no existe o no es del usuario.
func (s *Service) Update(ctx context.Context, id, userID string, in UpdateInput) (bool, error) {
	if strings.TrimSpace(id) == "" || strings.TrimSpace(userID) == "" {
		return false, ErrInvalidInput
	}
	if in.ReminderTime != nil {
		t := strings.TrimSpace(*in.ReminderTime)
		in.ReminderTime = &t
	}

	p := Patch{ReminderTime: in.ReminderTime, Enabled: in.Enabled}
	if p.IsEmpty() {
		return false, fmt.Errorf("%w: no fields to update", ErrInvalidInput)
	}
	if err := s.validate.Validate(in); err != nil {
		return false, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	return s.repo.Update(ctx, id, userID, p)
}

func (s *Service) Delete(ctx context.Context, id, userID string) (bool, error) {
	if strings.TrimSpace(id) == "" || strings.TrimSpace(userID) == "" {
		return false, ErrInvalidInput
	}
	return s.repo.Delete(ctx, id, userID)
}
