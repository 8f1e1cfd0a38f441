package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"medicine-tracker/internal/domain/medicines"
	"medicine-tracker/internal/domain/schedules"
	"medicine-tracker/internal/ports/storage"
)

type SchedulesRepo struct {
	st *Store
}

func (r *SchedulesRepo) Create(ctx context.Context, sc schedules.Schedule) error {
	d := r.st.dialect
	_, err := r.st.exec(ctx, `
		INSERT INTO schedules (
			id, medicine_id,
			scheduled_time, scheduled_date,
			taken, taken_at, created_at
		) VALUES (?,?,?,?,?,?,?)
	`,
		sc.ID,
		sc.MedicineID,
		sc.ScheduledTime,
		d.day(sc.ScheduledDate),
		sc.Taken,
		d.nullTS(sc.TakenAt),
		d.ts(sc.CreatedAt),
	)
	return err
}

func (r *SchedulesRepo) GetOwned(ctx context.Context, id, userID string) (schedules.Schedule, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return schedules.Schedule{}, storage.ErrNotFound
	}

	row := r.st.queryRow(ctx, `
		SELECT s.id, s.medicine_id, s.scheduled_time, s.scheduled_date,
		       s.taken, s.taken_at, s.created_at
		FROM schedules s
		JOIN medicines m ON m.id = s.medicine_id
		WHERE s.id = ? AND m.user_id = ?
	`, id, userID)

	sc, err := scanSchedule(row)
	if errors.Is(err, sql.ErrNoRows) {
		return schedules.Schedule{}, storage.ErrNotFound
	}
	return sc, err
}

func (r *SchedulesRepo) MarkTaken(ctx context.Context, id string, takenAt time.Time) (bool, error) {
	res, err := r.st.exec(ctx, `
		UPDATE schedules
		SET taken = ?, taken_at = ?
		WHERE id = ? AND taken = ?
	`, true, r.st.dialect.ts(takenAt), id, false)
	if err != nil {
		return false, err
	}
	return affected(res)
}

func (r *SchedulesRepo) ListByUser(ctx context.Context, userID string, f schedules.ListFilter) ([]schedules.Entry, error) {
	var sb strings.Builder
	args := []any{userID, true}

	sb.WriteString(`
		SELECT s.id, s.medicine_id, s.scheduled_time, s.scheduled_date,
		       s.taken, s.taken_at, s.created_at,
		       m.name, m.dosage, m.frequency
		FROM schedules s
		JOIN medicines m ON m.id = s.medicine_id
		WHERE m.user_id = ? AND m.active = ?`)
	if f.Date != nil {
		sb.WriteString(" AND s.scheduled_date = ?")
		args = append(args, r.st.dialect.day(*f.Date))
	}
	sb.WriteString(" ORDER BY s.scheduled_date DESC, s.scheduled_time ASC, s.id ASC")

	rows, err := r.st.query(ctx, sb.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]schedules.Entry, 0)
	for rows.Next() {
		var (
			e    schedules.Entry
			freq string
		)
		sc, err := scanSchedule(rows, &e.MedicineName, &e.Dosage, &freq)
		if err != nil {
			return nil, err
		}
		e.Schedule = sc
		e.Frequency = medicines.Frequency(freq)
		out = append(out, e)
	}
	return out, rows.Err()
}

// scanSchedule lee las columnas base de schedules seguidas de extra.
func scanSchedule(row scanner, extra ...any) (schedules.Schedule, error) {
	var (
		sc        schedules.Schedule
		date      dbTime
		takenAt   dbTime
		createdAt dbTime
	)
	dest := []any{
		&sc.ID,
		&sc.MedicineID,
		&sc.ScheduledTime,
		&date,
		&sc.Taken,
		&takenAt,
		&createdAt,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return schedules.Schedule{}, err
	}

	sc.ScheduledDate = date.dayOf()
	sc.TakenAt = takenAt.ptr()
	sc.CreatedAt = createdAt.Time
	return sc, nil
}
