package history

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"medicine-tracker/internal/platform/dates"
	"medicine-tracker/internal/platform/httpx"

	"github.com/go-chi/chi/v5"
)

// OwnershipChecker lo cumple medicines.Service (evita importar medicines).
type OwnershipChecker interface {
	Owns(ctx context.Context, medicineID, userID string) (bool, error)
}

func RegisterRoutes(r chi.Router, svc *Service, meds OwnershipChecker) {
	r.Get("/history", listHistoryHandler(svc))
	r.Get("/stats", statisticsHandler(svc))

	// Registro manual de una toma (fuera de una toma programada).
	r.Post("/medicines/{medicineID}/record", recordDoseHandler(svc, meds))
}

// recordDoseRequest es el cuerpo para registrar una toma manual.
type recordDoseRequest struct {
	Status  Status `json:"status" enums:"taken,missed,skipped,late"` // default taken
	Notes   string `json:"notes,omitempty"`
	TakenAt string `json:"taken_at,omitempty"` // RFC3339 opcional, default ahora
}

// historyEntryResponse es un registro del historial con nombre y dosis del medicamento.
type historyEntryResponse struct {
	ID           string    `json:"id"`
	MedicineID   string    `json:"medicine_id"`
	UserID       string    `json:"user_id"`
	TakenAt      time.Time `json:"taken_at"`
	Status       Status    `json:"status"`
	Notes        string    `json:"notes"`
	CreatedAt    time.Time `json:"created_at"`
	MedicineName string    `json:"medicine_name,omitempty"`
	Dosage       string    `json:"dosage,omitempty"`
}

// statisticsResponse resume la adherencia del usuario.
type statisticsResponse struct {
	TotalMedicines   int     `json:"total_medicines"`
	TotalDosesTaken  int     `json:"total_doses_taken"`
	TotalDosesMissed int     `json:"total_doses_missed"`
	AdherenceRate    float64 `json:"adherence_rate"`
}

// listHistoryHandler godoc
// @Summary Historial de tomas
// @Description Lista el historial del usuario, más reciente primero. Filtros opcionales y combinables; las fechas son días completos inclusivos.
// @Tags history
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param date_from query string false "YYYY-MM-DD"
// @Param date_to query string false "YYYY-MM-DD"
// @Param medicine_id query string false "ID del medicamento"
// @Success 200 {array} historyEntryResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 401 {object} httpx.ErrorResponse
// @Router /api/history [get]
func listHistoryHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := httpx.UserID(w, r)
		if !ok {
			return
		}

		f, err := parseFilter(r)
		if err != nil {
			httpx.WriteError(w, http.StatusBadRequest, err.Error())
			return
		}

		items, err := svc.List(r.Context(), userID, f)
		if err != nil {
			if errors.Is(err, ErrInvalidInput) {
				httpx.WriteInvalid(w, err)
				return
			}
			httpx.WriteInternal(w, r, "list history", err)
			return
		}

		out := make([]historyEntryResponse, 0, len(items))
		for _, e := range items {
			out = append(out, toEntryResponse(e))
		}
		httpx.WriteJSON(w, http.StatusOK, out)
	}
}

// statisticsHandler godoc
// @Summary Estadísticas de adherencia
// @Description Medicamentos activos, tomas tomadas/perdidas (histórico) y tasa de adherencia de los últimos 30 días.
// @Tags history
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Success 200 {object} statisticsResponse
// @Failure 401 {object} httpx.ErrorResponse
// @Router /api/stats [get]
func statisticsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := httpx.UserID(w, r)
		if !ok {
			return
		}

		st, err := svc.Statistics(r.Context(), userID)
		if err != nil {
			httpx.WriteInternal(w, r, "statistics", err)
			return
		}

		httpx.WriteJSON(w, http.StatusOK, statisticsResponse{
			TotalMedicines:   st.TotalMedicines,
			TotalDosesTaken:  st.TotalDosesTaken,
			TotalDosesMissed: st.TotalDosesMissed,
			AdherenceRate:    st.AdherenceRate,
		})
	}
}

// recordDoseHandler godoc
// @Summary Registrar toma
// @Description Agrega una entrada al historial del medicamento (status por defecto taken).
// @Tags history
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param medicineID path string true "ID del medicamento"
// @Param payload body recordDoseRequest false "Datos opcionales"
// @Success 201 {object} historyEntryResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 401 {object} httpx.ErrorResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Router /api/medicines/{medicineID}/record [post]
func recordDoseHandler(svc *Service, meds OwnershipChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := httpx.UserID(w, r)
		if !ok {
			return
		}

		medicineID := chi.URLParam(r, "medicineID")
		owned, err := meds.Owns(r.Context(), medicineID, userID)
		if err != nil {
			httpx.WriteInternal(w, r, "record dose ownership", err)
			return
		}
		if !owned {
			httpx.WriteError(w, http.StatusNotFound, "medicine not found")
			return
		}

		// Body opcional: sin body se registra "taken" ahora.
		var req recordDoseRequest
		if r.ContentLength != 0 {
			if !httpx.DecodeJSON(w, r, &req) {
				return
			}
		}

		in := RecordInput{
			MedicineID: medicineID,
			UserID:     userID,
			Status:     req.Status,
			Notes:      req.Notes,
		}
		if strings.TrimSpace(req.TakenAt) != "" {
			t, err := time.Parse(time.RFC3339, strings.TrimSpace(req.TakenAt))
			if err != nil {
				httpx.WriteError(w, http.StatusBadRequest, "taken_at must be RFC3339")
				return
			}
			in.TakenAt = &t
		}

		rec, err := svc.Record(r.Context(), in)
		if err != nil {
			if errors.Is(err, ErrInvalidInput) {
				httpx.WriteInvalid(w, err)
				return
			}
			httpx.WriteInternal(w, r, "record dose", err)
			return
		}

		httpx.WriteJSON(w, http.StatusCreated, toEntryResponse(Entry{Record: rec}))
	}
}

func parseFilter(r *http.Request) (Filter, error) {
	q := r.URL.Query()
	f := Filter{MedicineID: strings.TrimSpace(q.Get("medicine_id"))}

	if v := strings.TrimSpace(q.Get("date_from")); v != "" {
		d, err := dates.ParseDate(v)
		if err != nil {
			return Filter{}, errors.New("date_from must be YYYY-MM-DD")
		}
		f.DateFrom = &d
	}
	if v := strings.TrimSpace(q.Get("date_to")); v != "" {
		d, err := dates.ParseDate(v)
		if err != nil {
			return Filter{}, errors.New("date_to must be YYYY-MM-DD")
		}
		f.DateTo = &d
	}
	return f, nil
}

func toEntryResponse(e Entry) historyEntryResponse {
	return historyEntryResponse{
		ID:           e.ID,
		MedicineID:   e.MedicineID,
		UserID:       e.UserID,
		TakenAt:      e.TakenAt,
		Status:       e.Status,
		Notes:        e.Notes,
		CreatedAt:    e.CreatedAt,
		MedicineName: e.MedicineName,
		Dosage:       e.Dosage,
	}
}
