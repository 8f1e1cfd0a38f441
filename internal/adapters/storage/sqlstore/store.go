// Package sqlstore implementa los repositorios sobre database/sql.
// El mismo SQL sirve para Postgres (pgx) y SQLite (modernc); Dialect resuelve
// placeholders y la representación de fechas.
package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"medicine-tracker/internal/domain/history"
	"medicine-tracker/internal/domain/medicines"
	"medicine-tracker/internal/domain/reminders"
	"medicine-tracker/internal/domain/schedules"
)

type Store struct {
	db      *sql.DB
	dialect Dialect
}

func New(db *sql.DB, dialect Dialect) *Store {
	return &Store{db: db, dialect: dialect}
}

func (s *Store) DB() *sql.DB { return s.db }

func (s *Store) Close() error { return s.db.Close() }

// querier es lo común entre *sql.DB y *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type txKey struct{}

type txBinding struct {
	store *Store
	tx    *sql.Tx
}

// conn devuelve la transacción activa del ctx (si es de este store) o el pool.
func (s *Store) conn(ctx context.Context) querier {
	if b, ok := ctx.Value(txKey{}).(txBinding); ok && b.store == s {
		return b.tx
	}
	return s.db
}

// WithinTx abre una transacción y la deja en el ctx que recibe fn.
// Anidado: si ya hay tx de este store se reutiliza.
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	if b, ok := ctx.Value(txKey{}).(txBinding); ok && b.store == s {
		return fn(ctx)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
				err = errors.Join(err, fmt.Errorf("rollback: %w", rbErr))
			}
		}
	}()

	if err = fn(context.WithValue(ctx, txKey{}, txBinding{store: s, tx: tx})); err != nil {
		return err
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func (s *Store) exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return s.conn(ctx).ExecContext(ctx, s.dialect.Rebind(query), args...)
}

func (s *Store) query(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return s.conn(ctx).QueryContext(ctx, s.dialect.Rebind(query), args...)
}

func (s *Store) queryRow(ctx context.Context, query string, args ...any) *sql.Row {
	return s.conn(ctx).QueryRowContext(ctx, s.dialect.Rebind(query), args...)
}

// affected traduce RowsAffected a "hubo fila".
func affected(res sql.Result) (bool, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *Store) Medicines() medicines.Repository { return &MedicinesRepo{st: s} }
func (s *Store) Schedules() schedules.Repository { return &SchedulesRepo{st: s} }
func (s *Store) History() history.Repository     { return &HistoryRepo{st: s} }
func (s *Store) Reminders() reminders.Repository { return &RemindersRepo{st: s} }
