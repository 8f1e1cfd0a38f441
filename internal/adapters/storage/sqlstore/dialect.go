package sqlstore

import (
	"database/sql/driver"
	"fmt"
	"strconv"
	"strings"
	"time"

	"medicine-tracker/internal/platform/dates"
)

type Dialect int

const (
	Postgres Dialect = iota
	SQLite
)

func (d Dialect) String() string {
	switch d {
	case Postgres:
		return "postgres"
	case SQLite:
		return "sqlite"
	default:
		return "unknown"
	}
}

// Rebind convierte los "?" a "$n" en Postgres. Las consultas no llevan "?" literales.
func (d Dialect) Rebind(q string) string {
	if d != Postgres || !strings.Contains(q, "?") {
		return q
	}

	var b strings.Builder
	b.Grow(len(q) + 8)
	n := 0
	for i := 0; i < len(q); i++ {
		if q[i] == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteByte(q[i])
	}
	return b.String()
}

// Layout fijo (ancho constante) para que en SQLite la comparación de TEXT respete el orden temporal.
const sqliteTimeLayout = "2006-01-02T15:04:05.000000000Z"

// ts prepara un instante para bindear.
func (d Dialect) ts(t time.Time) any {
	if d == SQLite {
		return t.UTC().Format(sqliteTimeLayout)
	}
	return t.UTC()
}

func (d Dialect) nullTS(t *time.Time) any {
	if t == nil {
		return nil
	}
	return d.ts(*t)
}

// day prepara una fecha de calendario para bindear.
func (d Dialect) day(t time.Time) any {
	if d == SQLite {
		return dates.FormatDay(t)
	}
	return dates.Day(t)
}

func (d Dialect) nullDay(t *time.Time) any {
	if t == nil {
		return nil
	}
	return d.day(*t)
}

// dbTime escanea timestamps/fechas que llegan como time.Time (pgx) o TEXT (SQLite).
type dbTime struct {
	Time  time.Time
	Valid bool
}

var timeLayouts = []string{
	sqliteTimeLayout,
	time.RFC3339Nano,
	dates.DayLayout,
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05",
}

func (t *dbTime) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		t.Time, t.Valid = time.Time{}, false
		return nil
	case time.Time:
		t.Time, t.Valid = v.UTC(), true
		return nil
	case string:
		return t.parse(v)
	case []byte:
		return t.parse(string(v))
	default:
		return fmt.Errorf("dbTime: unsupported type %T", src)
	}
}

func (t *dbTime) parse(s string) error {
	for _, layout := range timeLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time, t.Valid = parsed.UTC(), true
			return nil
		}
	}
	return fmt.Errorf("dbTime: cannot parse %q", s)
}

func (t dbTime) ptr() *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}

// dayOf normaliza un DATE escaneado a medianoche UTC.
func (t dbTime) dayOf() time.Time {
	return dates.Day(t.Time)
}

var _ driver.Valuer = (*nullString)(nil)

// nullString guarda "" como NULL (notas opcionales).
type nullString string

func (s nullString) Value() (driver.Value, error) {
	if s == "" {
		return nil, nil
	}
	return string(s), nil
}
