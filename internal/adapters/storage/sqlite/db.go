package sqlite

import (
	"database/sql"
	_ "embed"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"medicine-tracker/internal/adapters/storage/sqlstore"
)

//go:embed schema.sql
var schemaSQL string

// Open abre (o crea) la base SQLite en path, aplica pragmas y el schema.
func Open(path string) (*sql.DB, error) {
	// foreign_keys y busy_timeout son por conexión: van en el DSN para que apliquen a todo el pool.
	db, err := sql.Open("sqlite", path+"?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// Un solo writer en SQLite; con WAL los lectores no bloquean.
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(time.Hour)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("exec pragma %q: %w", pragma, err)
		}
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("exec schema: %w", err)
	}

	return db, nil
}

// OpenStore devuelve el store SQL con dialecto SQLite.
func OpenStore(path string) (*sqlstore.Store, error) {
	db, err := Open(path)
	if err != nil {
		return nil, err
	}
	return sqlstore.New(db, sqlstore.SQLite), nil
}
