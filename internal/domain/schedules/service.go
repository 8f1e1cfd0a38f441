package schedules

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"medicine-tracker/internal/domain/history"
	"medicine-tracker/internal/domain/medicines"
	"medicine-tracker/internal/platform/dates"
	"medicine-tracker/internal/platform/logger"
	"medicine-tracker/internal/platform/metrics"
	"medicine-tracker/internal/platform/validation"
	"medicine-tracker/internal/ports/storage"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("schedule not found")
)

// MedicineLookup resuelve un medicamento del usuario (lo cumple medicines.Repository).
type MedicineLookup interface {
	GetOwned(ctx context.Context, id, userID string) (medicines.Medicine, error)
}

// DoseRecorder agrega una entrada al historial (lo cumple history.Service).
type DoseRecorder interface {
	Record(ctx context.Context, in history.RecordInput) (history.Record, error)
}

type Service struct {
	repo      Repository
	medicines MedicineLookup
	doses     DoseRecorder
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

func NewService(repo Repository, meds MedicineLookup, doses DoseRecorder, tx storage.Transactor, opts ...Option) *Service {
	s := &Service{
		repo:      repo,
		medicines: meds,
		doses:     doses,
		tx:        tx,
		validate:  validation.Default(),
		now:       time.Now,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *Service) today() time.Time {
	return dates.Day(s.now())
}

// Generate crea las tomas de hoy para un medicamento según su frecuencia.
// Frecuencia desconocida: se loguea y no se crea nada.
func (s *Service) Generate(ctx context.Context, medicineID string, freq medicines.Frequency, startDate time.Time) ([]Schedule, error) {
	today := s.today()

	times, known := TimesFor(freq, startDate, today)
	if !known {
		logger.FromContext(ctx).Warn("unknown frequency, no schedules generated", map[string]any{
			"medicine_id": medicineID,
			"frequency":   string(freq),
		})
		return nil, nil
	}

	now := s.now().UTC()
	out := make([]Schedule, 0, len(times))
	for _, t := range times {
		sc := Schedule{
			ID:            uuid.NewString(),
			MedicineID:    medicineID,
			ScheduledTime: t,
			ScheduledDate: today,
			CreatedAt:     now,
		}
		if err := s.repo.Create(ctx, sc); err != nil {
			return nil, fmt.Errorf("create schedule %s: %w", t, err)
		}
		out = append(out, sc)
	}
	return out, nil
}

// GenerateFor adapta Generate a medicines.ScheduleGenerator.
func (s *Service) GenerateFor(ctx context.Context, m medicines.Medicine) (int, error) {
	created, err := s.Generate(ctx, m.ID, m.Frequency, m.StartDate)
	return len(created), err
}

type AdHocInput struct {
	MedicineID    string     `json:"medicine_id" validate:"notblank"`
	ScheduledTime string     `json:"scheduled_time" validate:"hhmm"`
	ScheduledDate *time.Time `json:"scheduled_date"` // nil = hoy
}

// CreateAdHoc agrega una toma manual. El medicamento debe ser del usuario (ErrNotFound si no).
func (s *Service) CreateAdHoc(ctx context.Context, userID string, in AdHocInput) (Schedule, error) {
	if strings.TrimSpace(userID) == "" {
		return Schedule{}, ErrInvalidInput
	}
	in.ScheduledTime = strings.TrimSpace(in.ScheduledTime)
	if err := s.validate.Validate(in); err != nil {
		return Schedule{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	if _, err := s.medicines.GetOwned(ctx, strings.TrimSpace(in.MedicineID), userID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return Schedule{}, medicines.ErrNotFound
		}
		return Schedule{}, err
	}

	date := s.today()
	if in.ScheduledDate != nil {
		date = dates.Day(*in.ScheduledDate)
	}

	sc := Schedule{
		ID:            uuid.NewString(),
		MedicineID:    strings.TrimSpace(in.MedicineID),
		ScheduledTime: in.ScheduledTime,
		ScheduledDate: date,
		CreatedAt:     s.now().UTC(),
	}
	if err := s.repo.Create(ctx, sc); err != nil {
		return Schedule{}, err
	}

	s.metrics.SchedulesCreated("manual", 1)
	return sc, nil
}

// List devuelve todas las tomas de medicamentos activos del usuario.
func (s *Service) List(ctx context.Context, userID string) ([]Entry, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrInvalidInput
	}
	return s.repo.ListByUser(ctx, userID, ListFilter{})
}

// Today devuelve las tomas de hoy (UTC) de medicamentos activos, por hora ascendente.
func (s *Service) Today(ctx context.Context, userID string) ([]Entry, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrInvalidInput
	}
	today := s.today()
	return s.repo.ListByUser(ctx, userID, ListFilter{Date: &today})
}

// MarkTaken marca la toma como tomada y agrega el historial en una sola transacción.
// false = no existe o no es del usuario. Repetir sobre una toma ya tomada devuelve true
// sin duplicar historial.
func (s *Service) MarkTaken(ctx context.Context, scheduleID, userID string) (bool, error) {
	if strings.TrimSpace(scheduleID) == "" || strings.TrimSpace(userID) == "" {
		return false, nil
	}

	found := false
	recorded := false
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		sc, err := s.repo.GetOwned(ctx, scheduleID, userID)
		if errors.Is(err, storage.ErrNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		found = true

		if sc.Taken {
			return nil
		}

		takenAt := s.now().UTC()
		changed, err := s.repo.MarkTaken(ctx, sc.ID, takenAt)
		if err != nil {
			return fmt.Errorf("mark schedule taken: %w", err)
		}
		if !changed {
			// Otro request la marcó entre la lectura y el update.
			return nil
		}

		if _, err := s.doses.Record(ctx, history.RecordInput{
			MedicineID: sc.MedicineID,
			UserID:     userID,
			Status:     history.StatusTaken,
			TakenAt:    &takenAt,
		}); err != nil {
			return fmt.Errorf("record dose: %w", err)
		}
		recorded = true
		return nil
	})
	if err != nil {
		return false, err
	}

	if recorded {
		logger.FromContext(ctx).Debug("dose marked as taken", map[string]any{
			"schedule_id": scheduleID,
		})
	}
	return found, nil
}
