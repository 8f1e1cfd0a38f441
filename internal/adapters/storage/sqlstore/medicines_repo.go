package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"medicine-tracker/internal/domain/medicines"
	"medicine-tracker/internal/ports/storage"
)

type MedicinesRepo struct {
	st *Store
}

const medicineColumns = `
	id, user_id,
	name, dosage, frequency,
	start_date, end_date, notes,
	active, created_at, updated_at`

type scanner interface {
	Scan(dest ...any) error
}

func (r *MedicinesRepo) Create(ctx context.Context, m medicines.Medicine) error {
	d := r.st.dialect
	_, err := r.st.exec(ctx, `
		INSERT INTO medicines (`+medicineColumns+`)
		VALUES (?,?,?,?,?,?,?,?,?,?,?)
	`,
		m.ID,
		m.UserID,
		m.Name,
		m.Dosage,
		string(m.Frequency),
		d.day(m.StartDate),
		d.nullDay(m.EndDate),
		nullString(m.Notes),
		m.Active,
		d.ts(m.CreatedAt),
		d.ts(m.UpdatedAt),
	)
	return err
}

func (r *MedicinesRepo) GetOwned(ctx context.Context, id, userID string) (medicines.Medicine, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return medicines.Medicine{}, storage.ErrNotFound
	}

	row := r.st.queryRow(ctx, `
		SELECT `+medicineColumns+`
		FROM medicines
		WHERE id = ? AND user_id = ?
	`, id, userID)

	m, err := scanMedicine(row)
	if errors.Is(err, sql.ErrNoRows) {
		return medicines.Medicine{}, storage.ErrNotFound
	}
	return m, err
}

func (r *MedicinesRepo) ListActive(ctx context.Context, userID string) ([]medicines.Medicine, error) {
	rows, err := r.st.query(ctx, `
		SELECT `+medicineColumns+`
		FROM medicines
		WHERE user_id = ? AND active = ?
		ORDER BY created_at DESC, id DESC
	`, userID, true)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]medicines.Medicine, 0)
	for rows.Next() {
		m, err := scanMedicine(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *MedicinesRepo) Update(ctx context.Context, id, userID string, p medicines.Patch, updatedAt time.Time) (bool, error) {
	d := r.st.dialect

	var (
		sb   strings.Builder
		args []any
	)
	sb.WriteString("UPDATE medicines SET ")
	set := func(col string, v any) {
		sb.WriteString(col)
		sb.WriteString(" = ?, ")
		args = append(args, v)
	}

	if p.Name != nil {
		set("name", *p.Name)
	}
	if p.Dosage != nil {
		set("dosage", *p.Dosage)
	}
	if p.Frequency != nil {
		set("frequency", string(*p.Frequency))
	}
	if p.StartDate != nil {
		set("start_date", d.day(*p.StartDate))
	}
	if p.EndDate.Present {
		set("end_date", d.nullDay(p.EndDate.Value))
	}
	if p.Notes != nil {
		set("notes", nullString(*p.Notes))
	}
	sb.WriteString("updated_at = ? WHERE id = ? AND user_id = ?")
	args = append(args, d.ts(updatedAt), id, userID)

	res, err := r.st.exec(ctx, sb.String(), args...)
	if err != nil {
		return false, err
	}
	return affected(res)
}

func (r *MedicinesRepo) Deactivate(ctx context.Context, id, userID string, updatedAt time.Time) (bool, error) {
	res, err := r.st.exec(ctx, `
		UPDATE medicines
		SET active = ?, updated_at = ?
		WHERE id = ? AND user_id = ?
	`, false, r.st.dialect.ts(updatedAt), id, userID)
	if err != nil {
		return false, err
	}
	return affected(res)
}

func (r *MedicinesRepo) CountActive(ctx context.Context, userID string) (int, error) {
	var n int
	err := r.st.queryRow(ctx, `
		SELECT COUNT(*) FROM medicines WHERE user_id = ? AND active = ?
	`, userID, true).Scan(&n)
	return n, err
}

func scanMedicine(row scanner) (medicines.Medicine, error) {
	var (
		m         medicines.Medicine
		freq      string
		startDate dbTime
		endDate   dbTime
		notes     sql.NullString
		createdAt dbTime
		updatedAt dbTime
	)
	if err := row.Scan(
		&m.ID,
		&m.UserID,
		&m.Name,
		&m.Dosage,
		&freq,
		&startDate,
		&endDate,
		&notes,
		&m.Active,
		&createdAt,
		&updatedAt,
	); err != nil {
		return medicines.Medicine{}, err
	}

	m.Frequency = medicines.Frequency(freq)
	m.StartDate = startDate.dayOf()
	if endDate.Valid {
		ed := endDate.dayOf()
		m.EndDate = &ed
	}
	m.Notes = notes.String
	m.CreatedAt = createdAt.Time
	m.UpdatedAt = updatedAt.Time
	return m, nil
}
