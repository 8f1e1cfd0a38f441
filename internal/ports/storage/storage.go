package storage

import (
	"context"
	"errors"
)

// ErrNotFound lo devuelven los adapters cuando la fila no existe o no pertenece al usuario.
var ErrNotFound = errors.New("not found")

// Transactor ejecuta fn dentro de una unidad de trabajo.
// Los repos que reciben el ctx de fn participan en la misma transacción;
// si fn devuelve error todo se revierte.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}
