package sqlstore

import (
	"context"
	"database/sql"
	"strings"

	"medicine-tracker/internal/domain/history"
)

type HistoryRepo struct {
	st *Store
}

func (r *HistoryRepo) Create(ctx context.Context, rec history.Record) error {
	d := r.st.dialect
	_, err := r.st.exec(ctx, `
		INSERT INTO medicine_history (
			id, medicine_id, user_id,
			taken_at, status, notes, created_at
		) VALUES (?,?,?,?,?,?,?)
	`,
		rec.ID,
		rec.MedicineID,
		rec.UserID,
		d.ts(rec.TakenAt),
		string(rec.Status),
		nullString(rec.Notes),
		d.ts(rec.CreatedAt),
	)
	return err
}

func (r *HistoryRepo) List(ctx context.Context, userID string, f history.ListFilter) ([]history.Entry, error) {
	d := r.st.dialect

	var sb strings.Builder
	args := []any{userID}

	sb.WriteString(`
		SELECT h.id, h.medicine_id, h.user_id, h.taken_at, h.status, h.notes, h.created_at,
		       m.name, m.dosage
		FROM medicine_history h
		JOIN medicines m ON m.id = h.medicine_id
		WHERE h.user_id = ?`)

	if f.From != nil {
		sb.WriteString(" AND h.taken_at >= ?")
		args = append(args, d.ts(*f.From))
	}
	if f.Before != nil {
		sb.WriteString(" AND h.taken_at < ?")
		args = append(args, d.ts(*f.Before))
	}
	if f.MedicineID != "" {
		sb.WriteString(" AND h.medicine_id = ?")
		args = append(args, f.MedicineID)
	}
	sb.WriteString(" ORDER BY h.taken_at DESC, h.id DESC")

	rows, err := r.st.query(ctx, sb.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]history.Entry, 0)
	for rows.Next() {
		var (
			e         history.Entry
			status    string
			notes     sql.NullString
			takenAt   dbTime
			createdAt dbTime
		)
		if err := rows.Scan(
			&e.ID,
			&e.MedicineID,
			&e.UserID,
			&takenAt,
			&status,
			&notes,
			&createdAt,
			&e.MedicineName,
			&e.Dosage,
		); err != nil {
			return nil, err
		}
		e.TakenAt = takenAt.Time
		e.Status = history.Status(status)
		e.Notes = notes.String
		e.CreatedAt = createdAt.Time
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *HistoryRepo) Count(ctx context.Context, f history.CountFilter) (int, error) {
	var sb strings.Builder
	args := []any{f.UserID}

	sb.WriteString("SELECT COUNT(*) FROM medicine_history WHERE user_id = ?")
	if f.Status != "" {
		sb.WriteString(" AND status = ?")
		args = append(args, string(f.Status))
	}
	if f.From != nil {
		sb.WriteString(" AND taken_at >= ?")
		args = append(args, r.st.dialect.ts(*f.From))
	}

	var n int
	err := r.st.queryRow(ctx, sb.String(), args...).Scan(&n)
	return n, err
}
