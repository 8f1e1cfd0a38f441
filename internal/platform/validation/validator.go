// Package validation envuelve go-playground/validator con mensajes por campo.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"medicine-tracker/internal/platform/dates"
)

// Errors agrupa errores por campo (nombre JSON -> mensaje).
type Errors map[string]string

func (e Errors) Error() string {
	if len(e) == 0 {
		return "validation failed"
	}
	keys := make([]string, 0, len(e))
	for k := range e {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+" "+e[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Add registra un error de campo; conserva el primero si ya había uno.
func (e Errors) Add(field, msg string) {
	if _, exists := e[field]; exists {
		return
	}
	e[field] = msg
}

// Err devuelve nil si no hay errores.
func (e Errors) Err() error {
	if len(e) == 0 {
		return nil
	}
	return e
}

// Fields extrae el detalle por campo de un error (si lo tiene).
func Fields(err error) map[string]string {
	var ve Errors
	if errors.As(err, &ve) {
		return ve
	}
	return nil
}

type Validator struct {
	v *validator.Validate
}

var (
	defaultValidator *Validator
	once             sync.Once
)

// Default devuelve una instancia compartida (validator cachea metadata por tipo).
func Default() *Validator {
	once.Do(func() {
		defaultValidator = New()
	})
	return defaultValidator
}

func New() *Validator {
	v := validator.New()

	// Nombres de campo según el tag json.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := fld.Tag.Get("json")
		if name == "" {
			return fld.Name
		}
		if i := strings.IndexByte(name, ','); i >= 0 {
			name = name[:i]
		}
		if name == "-" {
			return fld.Name
		}
		return name
	})

	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	_ = v.RegisterValidation("hhmm", func(fl validator.FieldLevel) bool {
		return dates.ValidClock(fl.Field().String())
	})

	return &Validator{v: v}
}

// Check valida s y devuelve los errores por campo (mapa vacío si todo ok).
// Los llamadores pueden seguir agregando errores antes de llamar Err().
func (v *Validator) Check(s any) Errors {
	out := Errors{}
	err := v.v.Struct(s)
	if err == nil {
		return out
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		out.Add("_", err.Error())
		return out
	}
	for _, e := range verrs {
		out.Add(e.Field(), friendlyMessage(e))
	}
	return out
}

func (v *Validator) Validate(s any) error {
	return v.Check(s).Err()
}

func friendlyMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required", "notblank":
		return "is required"
	case "hhmm":
		return "must be HH:MM"
	case "oneof":
		return "must be one of: " + e.Param()
	case "max":
		return fmt.Sprintf("must not exceed %s characters", e.Param())
	case "min":
		return fmt.Sprintf("must be at least %s characters", e.Param())
	default:
		return "is invalid"
	}
}
