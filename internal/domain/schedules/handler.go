package schedules

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"medicine-tracker/internal/domain/medicines"
	"medicine-tracker/internal/platform/dates"
	"medicine-tracker/internal/platform/httpx"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/schedules", func(sr chi.Router) {
		sr.Get("/", listSchedulesHandler(svc))
		sr.Post("/", createScheduleHandler(svc))
		sr.Get("/today", todaysScheduleHandler(svc))

		// Marcar toma (idempotente)
		sr.Put("/{scheduleID}/taken", markTakenHandler(svc))
	})
}

// createScheduleRequest agrega una toma manual.
type createScheduleRequest struct {
	MedicineID    string `json:"medicine_id"`
	ScheduledTime string `json:"scheduled_time"`           // HH:MM
	ScheduledDate string `json:"scheduled_date,omitempty"` // YYYY-MM-DD, default hoy
}

// scheduleResponse representa una toma; los campos del medicamento vienen en los listados.
type scheduleResponse struct {
	ID            string              `json:"id"`
	MedicineID    string              `json:"medicine_id"`
	ScheduledTime string              `json:"scheduled_time"`
	ScheduledDate string              `json:"scheduled_date"`
	Taken         bool                `json:"taken"`
	TakenAt       *time.Time          `json:"taken_at"`
	CreatedAt     time.Time           `json:"created_at"`
	MedicineName  string              `json:"medicine_name,omitempty"`
	Dosage        string              `json:"dosage,omitempty"`
	Frequency     medicines.Frequency `json:"frequency,omitempty"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// listSchedulesHandler godoc
// @Summary Listar tomas
// @Description Todas las tomas de medicamentos activos del usuario (fecha desc, hora asc).
// @Tags schedules
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Success 200 {array} scheduleResponse
// @Failure 401 {object} httpx.ErrorResponse
// @Router /api/schedules [get]
func listSchedulesHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := httpx.UserID(w, r)
		if !ok {
			return
		}

		items, err := svc.List(r.Context(), userID)
		if err != nil {
			httpx.WriteInternal(w, r, "list schedules", err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toEntryResponses(items))
	}
}

// todaysScheduleHandler godoc
// @Summary Tomas de hoy
// @Description Tomas con fecha de hoy (UTC) de medicamentos activos, por hora ascendente.
// @Tags schedules
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Success 200 {array} scheduleResponse
// @Failure 401 {object} httpx.ErrorResponse
// @Router /api/schedules/today [get]
func todaysScheduleHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := httpx.UserID(w, r)
		if !ok {
			return
		}

		items, err := svc.Today(r.Context(), userID)
		if err != nil {
			httpx.WriteInternal(w, r, "todays schedule", err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toEntryResponses(items))
	}
}

// createScheduleHandler godoc
// @Summary Crear toma manual
// @Tags schedules
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param payload body createScheduleRequest true "Toma"
// @Success 201 {object} scheduleResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 401 {object} httpx.ErrorResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Router /api/schedules [post]
func createScheduleHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := httpx.UserID(w, r)
		if !ok {
			return
		}

		var req createScheduleRequest
		if !httpx.DecodeJSON(w, r, &req) {
			return
		}

		in := AdHocInput{
			MedicineID:    req.MedicineID,
			ScheduledTime: req.ScheduledTime,
		}
		if strings.TrimSpace(req.ScheduledDate) != "" {
			d, err := dates.ParseDate(req.ScheduledDate)
			if err != nil {
				httpx.WriteError(w, http.StatusBadRequest, "scheduled_date must be YYYY-MM-DD")
				return
			}
			in.ScheduledDate = &d
		}

		sc, err := svc.CreateAdHoc(r.Context(), userID, in)
		if err != nil {
			switch {
			case errors.Is(err, ErrInvalidInput):
				httpx.WriteInvalid(w, err)
			case errors.Is(err, medicines.ErrNotFound):
				httpx.WriteError(w, http.StatusNotFound, err.Error())
			default:
				httpx.WriteInternal(w, r, "create schedule", err)
			}
			return
		}

		httpx.WriteJSON(w, http.StatusCreated, toScheduleResponse(sc))
	}
}

// markTakenHandler godoc
// @Summary Marcar toma como tomada
// @Description Marca la toma y agrega una entrada "taken" al historial en la misma transacción. Repetir la llamada no duplica historial.
// @Tags schedules
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param scheduleID path string true "ID de la toma"
// @Success 200 {object} messageResponse
// @Failure 401 {object} httpx.ErrorResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Router /api/schedules/{scheduleID}/taken [put]
func markTakenHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := httpx.UserID(w, r)
		if !ok {
			return
		}

		found, err := svc.MarkTaken(r.Context(), chi.URLParam(r, "scheduleID"), userID)
		if err != nil {
			httpx.WriteInternal(w, r, "mark taken", err)
			return
		}
		if !found {
			httpx.WriteError(w, http.StatusNotFound, ErrNotFound.Error())
			return
		}

		httpx.WriteJSON(w, http.StatusOK, messageResponse{Message: "Medicine marked as taken"})
	}
}

func toScheduleResponse(s Schedule) scheduleResponse {
	return scheduleResponse{
		ID:            s.ID,
		MedicineID:    s.MedicineID,
		ScheduledTime: s.ScheduledTime,
		ScheduledDate: dates.FormatDay(s.ScheduledDate),
		Taken:         s.Taken,
		TakenAt:       s.TakenAt,
		CreatedAt:     s.CreatedAt,
	}
}

func toEntryResponses(items []Entry) []scheduleResponse {
	out := make([]scheduleResponse, 0, len(items))
	for _, e := range items {
		resp := toScheduleResponse(e.Schedule)
		resp.MedicineName = e.MedicineName
		resp.Dosage = e.Dosage
		resp.Frequency = e.Frequency
		out = append(out, resp)
	}
	return out
}
