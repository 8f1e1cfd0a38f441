package sqlstore

import (
	"context"
	"strings"

	"medicine-tracker/internal/domain/reminders"
)

type RemindersRepo struct {
	st *Store
}

func (r *RemindersRepo) Create(ctx context.Context, rem reminders.Reminder) error {
	_, err := r.st.exec(ctx, `
		INSERT INTO reminders (
			id, medicine_id, user_id,
			reminder_time, enabled, created_at
		) VALUES (?,?,?,?,?,?)
	`,
		rem.ID,
		rem.MedicineID,
		rem.UserID,
		rem.ReminderTime,
		rem.Enabled,
		r.st.dialect.ts(rem.CreatedAt),
	)
	return err
}

func (r *RemindersRepo) ListEnabled(ctx context.Context, userID string) ([]reminders.Entry, error) {
	rows, err := r.st.query(ctx, `
		SELECT r.id, r.medicine_id, r.user_id, r.reminder_time, r.enabled, r.created_at,
		       m.name, m.dosage
		FROM reminders r
		JOIN medicines m ON m.id = r.medicine_id
		WHERE r.user_id = ? AND r.enabled = ? AND m.active = ?
		ORDER BY r.reminder_time ASC, r.id ASC
	`, userID, true, true)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]reminders.Entry, 0)
	for rows.Next() {
		var (
			e         reminders.Entry
			createdAt dbTime
		)
		if err := rows.Scan(
			&e.ID,
			&e.MedicineID,
			&e.UserID,
			&e.ReminderTime,
			&e.Enabled,
			&createdAt,
			&e.MedicineName,
			&e.Dosage,
		); err != nil {
			return nil, err
		}
		e.CreatedAt = createdAt.Time
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *RemindersRepo) Update(ctx context.Context, id, userID string, p reminders.Patch) (bool, error) {
	if p.IsEmpty() {
		return false, nil
	}

	var (
		sets []string
		args []any
	)
	if p.ReminderTime != nil {
		sets = append(sets, "reminder_time = ?")
		args = append(args, *p.ReminderTime)
	}
	if p.Enabled != nil {
		sets = append(sets, "enabled = ?")
		args = append(args, *p.Enabled)
	}
	args = append(args, id, userID)

	res, err := r.st.exec(ctx,
		"UPDATE reminders SET "+strings.Join(sets, ", ")+" WHERE id = ? AND user_id = ?",
		args...,
	)
	if err != nil {
		return false, err
	}
	return affected(res)
}

func (r *RemindersRepo) Delete(ctx context.Context, id, userID string) (bool, error) {
	res, err := r.st.exec(ctx, `DELETE FROM reminders WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return false, err
	}
	return affected(res)
}
