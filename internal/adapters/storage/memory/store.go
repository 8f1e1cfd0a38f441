package memory

import (
	"context"
	"maps"
	"sync"

	"medicine-tracker/internal/domain/history"
	"medicine-tracker/internal/domain/medicines"
	"medicine-tracker/internal/domain/reminders"
	"medicine-tracker/internal/domain/schedules"
)

// Store guarda todo en mapas protegidos por un único mutex.
// WithinTx mantiene el lock durante fn y restaura un snapshot si fn falla;
// los repos detectan el tx en el ctx y no vuelven a tomar el lock.
type Store struct {
	mu sync.Mutex

	medicines map[string]medicines.Medicine
	schedules map[string]schedules.Schedule
	history   map[string]history.Record
	reminders map[string]reminders.Reminder
}

func NewStore() *Store {
	return &Store{
		medicines: make(map[string]medicines.Medicine),
		schedules: make(map[string]schedules.Schedule),
		history:   make(map[string]history.Record),
		reminders: make(map[string]reminders.Reminder),
	}
}

type txKey struct{}

func (s *Store) inTx(ctx context.Context) bool {
	owner, _ := ctx.Value(txKey{}).(*Store)
	return owner == s
}

// lock toma el mutex salvo que ctx ya esté dentro de un tx de este store.
func (s *Store) lock(ctx context.Context) func() {
	if s.inTx(ctx) {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if s.inTx(ctx) {
		return fn(ctx)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.snapshot()
	if err := fn(context.WithValue(ctx, txKey{}, s)); err != nil {
		s.restore(snap)
		return err
	}
	return nil
}

type snapshot struct {
	medicines map[string]medicines.Medicine
	schedules map[string]schedules.Schedule
	history   map[string]history.Record
	reminders map[string]reminders.Reminder
}

func (s *Store) snapshot() snapshot {
	return snapshot{
		medicines: maps.Clone(s.medicines),
		schedules: maps.Clone(s.schedules),
		history:   maps.Clone(s.history),
		reminders: maps.Clone(s.reminders),
	}
}

func (s *Store) restore(snap snapshot) {
	s.medicines = snap.medicines
	s.schedules = snap.schedules
	s.history = snap.history
	s.reminders = snap.reminders
}

func (s *Store) Medicines() medicines.Repository { return &medicineRepo{s: s} }
func (s *Store) Schedules() schedules.Repository { return &scheduleRepo{s: s} }
func (s *Store) History() history.Repository     { return &historyRepo{s: s} }
func (s *Store) Reminders() reminders.Repository { return &reminderRepo{s: s} }

// Close existe para cumplir la misma forma que los stores SQL.
func (s *Store) Close() error { return nil }
