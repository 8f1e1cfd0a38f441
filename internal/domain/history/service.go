package history

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"medicine-tracker/internal/platform/dates"
	"medicine-tracker/internal/platform/metrics"
	"medicine-tracker/internal/platform/validation"
)

var (
	ErrInvalidInput = errors.New("invalid input")
)

// AdherenceWindowDays es la ventana (en días) sobre la que se calcula AdherenceRate.
const AdherenceWindowDays = 30

// Tolerancia para TakenAt "en el futuro" (relojes de distintos servicios).
const clockSkew = time.Minute

// ActiveMedicineCounter lo cumple medicines.Repository.
type ActiveMedicineCounter interface {
	CountActive(ctx context.Context, userID string) (int, error)
}

type Service struct {
	repo      Repository
	medicines ActiveMedicineCounter
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

func NewService(repo Repository, meds ActiveMedicineCounter, opts ...Option) *Service {
	s := &Service{
		repo:      repo,
		medicines: meds,
		validate:  validation.Default(),
		now:       time.Now,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

type RecordInput struct {
	MedicineID string     `json:"medicine_id" validate:"notblank"`
	UserID     string     `json:"user_id" validate:"notblank"`
	Status     Status     `json:"status" validate:"omitempty,oneof=taken missed skipped late"`
	Notes      string     `json:"notes" validate:"max=2000"`
	TakenAt    *time.Time `json:"taken_at"` // nil = ahora
}

// Record agrega una entrada al historial. Status vacío = taken.
// No verifica pertenencia del medicamento: lo hace quien llama.
func (s *Service) Record(ctx context.Context, in RecordInput) (Record, error) {
	in.Status = Status(strings.TrimSpace(string(in.Status)))
	errs := s.validate.Check(in)

	now := s.now().UTC()
	takenAt := now
	if in.TakenAt != nil {
		takenAt = in.TakenAt.UTC()
		if takenAt.After(now.Add(clockSkew)) {
			errs.Add("taken_at", "must not be in the future")
		}
	}
	if err := errs.Err(); err != nil {
		return Record{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	status := in.Status
	if status == "" {
		status = StatusTaken
	}

	rec := Record{
		ID:         uuid.NewString(),
		MedicineID: strings.TrimSpace(in.MedicineID),
		UserID:     in.UserID,
		TakenAt:    takenAt,
		Status:     status,
		Notes:      strings.TrimSpace(in.Notes),
		CreatedAt:  now,
	}
	if err := s.repo.Create(ctx, rec); err != nil {
		return Record{}, err
	}

	s.metrics.DoseRecorded(string(status))
	return rec, nil
}

// Filter para List: fechas de calendario inclusivas.
type Filter struct {
	DateFrom   *time.Time
	DateTo     *time.Time
	MedicineID string
}

func (s *Service) List(ctx context.Context, userID string, f Filter) ([]Entry, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrInvalidInput
	}
	if f.DateFrom != nil && f.DateTo != nil && f.DateTo.Before(*f.DateFrom) {
		return nil, fmt.Errorf("%w: date_to must not be before date_from", ErrInvalidInput)
	}

	lf := ListFilter{MedicineID: strings.TrimSpace(f.MedicineID)}
	if f.DateFrom != nil {
		from := dates.Day(*f.DateFrom)
		lf.From = &from
	}
	if f.DateTo != nil {
		// date_to es inclusivo: todo el día cuenta.
		before := dates.Day(*f.DateTo).AddDate(0, 0, 1)
		lf.Before = &before
	}

	return s.repo.List(ctx, userID, lf)
}

// Statistics calcula totales históricos y la tasa de adherencia de los últimos 30 días.
// Sin registros en la ventana la tasa es 0.
func (s *Service) Statistics(ctx context.Context, userID string) (Statistics, error) {
	if strings.TrimSpace(userID) == "" {
		return Statistics{}, ErrInvalidInput
	}

	var st Statistics
	var err error

	if st.TotalMedicines, err = s.medicines.CountActive(ctx, userID); err != nil {
		return Statistics{}, fmt.Errorf("count medicines: %w", err)
	}
	if st.TotalDosesTaken, err = s.repo.Count(ctx, CountFilter{UserID: userID, Status: StatusTaken}); err != nil {
		return Statistics{}, fmt.Errorf("count taken: %w", err)
	}
	if st.TotalDosesMissed, err = s.repo.Count(ctx, CountFilter{UserID: userID, Status: StatusMissed}); err != nil {
		return Statistics{}, fmt.Errorf("count missed: %w", err)
	}

	from := dates.Day(s.now()).AddDate(0, 0, -AdherenceWindowDays)
	total, err := s.repo.Count(ctx, CountFilter{UserID: userID, From: &from})
	if err != nil {
		return Statistics{}, fmt.Errorf("count window: %w", err)
	}
	taken, err := s.repo.Count(ctx, CountFilter{UserID: userID, Status: StatusTaken, From: &from})
	if err != nil {
		return Statistics{}, fmt.Errorf("count window taken: %w", err)
	}
	st.AdherenceRate = AdherenceRate(taken, total)

	return st, nil
}

// AdherenceRate = taken*100/total redondeado a 2 decimales; 0 si total es 0.
func AdherenceRate(taken, total int) float64 {
	if total <= 0 {
		return 0
	}
	return math.Round(float64(taken)*100/float64(total)*100) / 100
}
