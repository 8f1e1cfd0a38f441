package reminders

import (
	"errors"
	"net/http"
	"time"

	"medicine-tracker/internal/domain/medicines"
	"medicine-tracker/internal/platform/httpx"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/reminders", func(rr chi.Router) {
		rr.Get("/", listRemindersHandler(svc))
		rr.Post("/", createReminderHandler(svc))
		rr.Put("/{reminderID}", updateReminderHandler(svc))
		rr.Delete("/{reminderID}", deleteReminderHandler(svc))
	})
}

type createReminderRequest struct {
	MedicineID   string `json:"medicine_id"`
	ReminderTime string `json:"reminder_time"` // HH:MM
}

type updateReminderRequest struct {
	ReminderTime *string `json:"reminder_time"`
	Enabled      *bool   `json:"enabled"`
}

// reminderResponse representa un recordatorio; medicine_name/dosage sólo en el listado.
type reminderResponse struct {
	ID           string    `json:"id"`
	MedicineID   string    `json:"medicine_id"`
	UserID       string    `json:"user_id"`
	ReminderTime string    `json:"reminder_time"`
	Enabled      bool      `json:"enabled"`
	CreatedAt    time.Time `json:"created_at"`
	MedicineName string    `json:"medicine_name,omitempty"`
	Dosage       string    `json:"dosage,omitempty"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// listRemindersHandler godoc
// @Summary Listar recordatorios
// @Description Recordatorios habilitados de medicamentos activos, por hora.
// @Tags reminders
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Success 200 {array} reminderResponse
// @Failure 401 {object} httpx.ErrorResponse
// @Router /api/reminders [get]
func listRemindersHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := httpx.UserID(w, r)
		if !ok {
			return
		}

		items, err := svc.List(r.Context(), userID)
		if err != nil {
			httpx.WriteInternal(w, r, "list reminders", err)
			return
		}

		out := make([]reminderResponse, 0, len(items))
		for _, e := range items {
			resp := toReminderResponse(e.Reminder)
			resp.MedicineName = e.MedicineName
			resp.Dosage = e.Dosage
			out = append(out, resp)
		}
		httpx.WriteJSON(w, http.StatusOK, out)
	}
}

// createReminderHandler godoc
// @Summary Crear recordatorio
// @Tags reminders
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param payload body createReminderRequest true "Recordatorio"
// @Success 201 {object} reminderResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 401 {object} httpx.ErrorResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Router /api/reminders [post]
func createReminderHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := httpx.UserID(w, r)
		if !ok {
			return
		}

		var req createReminderRequest
		if !httpx.DecodeJSON(w, r, &req) {
			return
		}

		rem, err := svc.Create(r.Context(), userID, CreateInput(req))
		if err != nil {
			switch {
			case errors.Is(err, ErrInvalidInput):
				httpx.WriteInvalid(w, err)
			case errors.Is(err, medicines.ErrNotFound):
				httpx.WriteError(w, http.StatusNotFound, err.Error())
			default:
				httpx.WriteInternal(w, r, "create reminder", err)
			}
			return
		}

		httpx.WriteJSON(w, http.StatusCreated, toReminderResponse(rem))
	}
}

// updateReminderHandler godoc
// @Summary Actualizar recordatorio
// @Tags reminders
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param reminderID path string true "ID del recordatorio"
// @Param payload body updateReminderRequest true "Campos a modificar"
// @Success 200 {object} messageResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 401 {object} httpx.ErrorResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Router /api/reminders/{reminderID} [put]
func updateReminderHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := httpx.UserID(w, r)
		if !ok {
			return
		}

		var req updateReminderRequest
		if !httpx.DecodeJSON(w, r, &req) {
			return
		}

		updated, err := svc.Update(r.Context(), chi.URLParam(r, "reminderID"), userID, UpdateInput(req))
		if err != nil {
			if errors.Is(err, ErrInvalidInput) {
				httpx.WriteInvalid(w, err)
				return
			}
			httpx.WriteInternal(w, r, "update reminder", err)
			return
		}
		if !updated {
			httpx.WriteError(w, http.StatusNotFound, ErrNotFound.Error())
			return
		}

		httpx.WriteJSON(w, http.StatusOK, messageResponse{Message: "Reminder updated successfully"})
	}
}

// deleteReminderHandler godoc
// @Summary Eliminar recordatorio
// @Tags reminders
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param reminderID path string true "ID del recordatorio"
// @Success 200 {object} messageResponse
// @Failure 401 {object} httpx.ErrorResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Router /api/reminders/{reminderID} [delete]
func deleteReminderHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := httpx.UserID(w, r)
		if !ok {
			return
		}

		deleted, err := svc.Delete(r.Context(), chi.URLParam(r, "reminderID"), userID)
		if err != nil {
			httpx.WriteInternal(w, r, "delete reminder", err)
			return
		}
		if !deleted {
			httpx.WriteError(w, http.StatusNotFound, ErrNotFound.Error())
			return
		}

		httpx.WriteJSON(w, http.StatusOK, messageResponse{Message: "Reminder deleted successfully"})
	}
}

func toReminderResponse(r Reminder) reminderResponse {
	return reminderResponse{
		ID:           r.ID,
		MedicineID:   r.MedicineID,
		UserID:       r.UserID,
		ReminderTime: r.ReminderTime,
		Enabled:      r.Enabled,
		CreatedAt:    r.CreatedAt,
	}
}
