package medicines

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"medicine-tracker/internal/platform/dates"
	"medicine-tracker/internal/platform/metrics"
	"medicine-tracker/internal/platform/validation"
	"medicine-tracker/internal/ports/storage"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("medicine not found")
)

// ScheduleGenerator crea las tomas iniciales de un medicamento recién creado.
// Lo implementa schedules.Service (interfaz acá para evitar ciclo de imports).
type ScheduleGenerator interface {
	GenerateFor(ctx context.Context, m Medicine) (int, error)
}

type Service struct {
	repo      Repository
	schedules ScheduleGenerator
	tx        storage.Transactor
	validate  *validation.Validator
	metrics   *metrics.Metrics
	now       func() time.Time
}

type Option func(*Service)

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithClock reemplaza time.Now (tests).
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func NewService(repo Repository, schedules ScheduleGenerator, tx storage.Transactor, opts ...Option) *Service {
	s := &Service{
		repo:      repo,
		schedules: schedules,
		tx:        tx,
		validate:  validation.Default(),
		now:       time.Now,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

type CreateInput struct {
	Name      string     `json:"name" validate:"notblank,max=200"`
	Dosage    string     `json:"dosage" validate:"notblank,max=100"`
	Frequency Frequency  `json:"frequency" validate:"notblank"`
	StartDate time.Time  `json:"start_date"`
	EndDate   *time.Time `json:"end_date"`
	Notes     string     `json:"notes" validate:"max=2000"`
}

// Create valida, persiste el medicamento y genera sus tomas de hoy en la misma transacción.
// Una frecuencia desconocida no es error: el medicamento se crea sin tomas.
func (s *Service) Create(ctx context.Context, userID string, in CreateInput) (Medicine, error) {
	if strings.TrimSpace(userID) == "" {
		return Medicine{}, ErrInvalidInput
	}

	errs := s.validate.Check(in)
	if in.StartDate.IsZero() {
		errs.Add("start_date", "is required")
	}
	if in.EndDate != nil && !in.StartDate.IsZero() && dates.Day(*in.EndDate).Before(dates.Day(in.StartDate)) {
		errs.Add("end_date", "must not be before start_date")
	}
	if err := errs.Err(); err != nil {
		return Medicine{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	now := s.now().UTC()
	m := Medicine{
		ID:        uuid.NewString(),
		UserID:    userID,
		Name:      strings.TrimSpace(in.Name),
		Dosage:    strings.TrimSpace(in.Dosage),
		Frequency: Frequency(strings.TrimSpace(string(in.Frequency))),
		StartDate: dates.Day(in.StartDate),
		Notes:     strings.TrimSpace(in.Notes),
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if in.EndDate != nil {
		ed := dates.Day(*in.EndDate)
		m.EndDate = &ed
	}

	generated := 0
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.repo.Create(ctx, m); err != nil {
			return fmt.Errorf("create medicine: %w", err)
		}
		n, err := s.schedules.GenerateFor(ctx, m)
		if err != nil {
			return fmt.Errorf("generate schedules: %w", err)
		}
		generated = n
		return nil
	})
	if err != nil {
		return Medicine{}, err
	}

	s.metrics.MedicineCreated()
	s.metrics.SchedulesCreated("generated", generated)
	return m, nil
}

// Get devuelve (medicine, false, nil) si no existe o es de otro usuario.
func (s *Service) Get(ctx context.Context, id, userID string) (Medicine, bool, error) {
	if strings.TrimSpace(id) == "" || strings.TrimSpace(userID) == "" {
		return Medicine{}, false, nil
	}
	m, err := s.repo.GetOwned(ctx, id, userID)
	if errors.Is(err, storage.ErrNotFound) {
		return Medicine{}, false, nil
	}
	if err != nil {
		return Medicine{}, false, err
	}
	return m, true, nil
}

// Owns indica si el medicamento existe y es del usuario (activo o no).
func (s *Service) Owns(ctx context.Context, id, userID string) (bool, error) {
	_, ok, err := s.Get(ctx, id, userID)
	return ok, err
}

func (s *Service) List(ctx context.Context, userID string) ([]Medicine, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrInvalidInput
	}
	return s.repo.ListActive(ctx, userID)
}

type UpdateInput struct {
	Name      *string    `json:"name" validate:"omitempty,notblank,max=200"`
	Dosage    *string    `json:"dosage" validate:"omitempty,notblank,max=100"`
	Frequency *Frequency `json:"frequency" validate:"omitempty,notblank"`
	StartDate *time.Time `json:"start_date"`
	EndDate   PatchDate  `json:"end_date"`
	Notes     *string    `json:"notes" validate:"omitempty,max=2000"`
}

// Update aplica sólo los campos presentes. No regenera tomas.
// Devuelve false si el medicamento no existe o no es del usuario.
func (s *Service) Update(ctx context.Context, id, userID string, in UpdateInput) (bool, error) {
	if strings.TrimSpace(id) == "" || strings.TrimSpace(userID) == "" {
		return false, ErrInvalidInput
	}

	p := Patch{
		Name:      trimmed(in.Name),
		Dosage:    trimmed(in.Dosage),
		Notes:     trimmed(in.Notes),
		EndDate:   in.EndDate,
	}
	if in.Frequency != nil {
		f := Frequency(strings.TrimSpace(string(*in.Frequency)))
		p.Frequency = &f
	}
	if in.StartDate != nil {
		sd := dates.Day(*in.StartDate)
		p.StartDate = &sd
	}
	if in.EndDate.Present && in.EndDate.Value != nil {
		ed := dates.Day(*in.EndDate.Value)
		p.EndDate = PatchDate{Present: true, Value: &ed}
	}
	if p.IsEmpty() {
		return false, fmt.Errorf("%w: no fields to update", ErrInvalidInput)
	}

	// EndDate es un struct: validator recorre sus campos pero no tienen reglas.
	errs := s.validate.Check(in)
	if err := errs.Err(); err != nil {
		return false, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	// El rango de fechas se valida contra el estado actual.
	if p.StartDate != nil || p.EndDate.Present {
		current, ok, err := s.Get(ctx, id, userID)
		if err != nil || !ok {
			return false, err
		}
		merged := p.Apply(current)
		if merged.EndDate != nil && merged.EndDate.Before(merged.StartDate) {
			errs.Add("end_date", "must not be before start_date")
			return false, fmt.Errorf("%w: %w", ErrInvalidInput, errs.Err())
		}
	}

	return s.repo.Update(ctx, id, userID, p, s.now().UTC())
}

// SoftDelete marca el medicamento como inactivo. Sus tomas e historial se conservan.
func (s *Service) SoftDelete(ctx context.Context, id, userID string) (bool, error) {
	if strings.TrimSpace(id) == "" || strings.TrimSpace(userID) == "" {
		return false, ErrInvalidInput
	}
	return s.repo.Deactivate(ctx, id, userID, s.now().UTC())
}

func trimmed(v *string) *string {
	if v == nil {
		return nil
	}
	t := strings.TrimSpace(*v)
	return &t
}
