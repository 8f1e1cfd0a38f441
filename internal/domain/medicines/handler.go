package medicines

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"medicine-tracker/internal/platform/dates"
	"medicine-tracker/internal/platform/httpx"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	// Rutas planas (sin Route/Mount): history registra /medicines/{medicineID}/record.
	r.Get("/medicines", listMedicinesHandler(svc))
	r.Post("/medicines", createMedicineHandler(svc))

	r.Get("/medicines/{medicineID}", getMedicineHandler(svc))
	r.Put("/medicines/{medicineID}", updateMedicineHandler(svc))
	r.Patch("/medicines/{medicineID}", updateMedicineHandler(svc))
	r.Delete("/medicines/{medicineID}", deleteMedicineHandler(svc))
}

// createMedicineRequest es el cuerpo para registrar un medicamento.
type createMedicineRequest struct {
	Name      string    `json:"name"`
	Dosage    string    `json:"dosage"`
	Frequency Frequency `json:"frequency" enums:"daily,twice-daily,three-times-daily,weekly,as-needed"`
	StartDate string    `json:"start_date"`         // YYYY-MM-DD
	EndDate   string    `json:"end_date,omitempty"` // YYYY-MM-DD opcional
	Notes     string    `json:"notes,omitempty"`
}

// updateMedicineRequest: punteros para PATCH real (nil = no tocar).
// end_date se maneja aparte para distinguir null de ausente.
type updateMedicineRequest struct {
	Name      *string    `json:"name"`
	Dosage    *string    `json:"dosage"`
	Frequency *Frequency `json:"frequency"`
	StartDate *string    `json:"start_date"`
	Notes     *string    `json:"notes"`
}

// medicineResponse representa un medicamento devuelto por la API.
type medicineResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Name      string    `json:"name"`
	Dosage    string    `json:"dosage"`
	Frequency Frequency `json:"frequency"`
	StartDate string    `json:"start_date"`
	EndDate   *string   `json:"end_date"`
	Notes     string    `json:"notes"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// listMedicinesHandler godoc
// @Summary Listar medicamentos
// @Description Devuelve los medicamentos activos del usuario, más recientes primero.
// @Tags medicines
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Success 200 {array} medicineResponse
// @Failure 401 {object} httpx.ErrorResponse
// @Router /api/medicines [get]
func listMedicinesHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := httpx.UserID(w, r)
		if !ok {
			return
		}

		items, err := svc.List(r.Context(), userID)
		if err != nil {
			httpx.WriteInternal(w, r, "list medicines", err)
			return
		}

		out := make([]medicineResponse, 0, len(items))
		for _, m := range items {
			out = append(out, toMedicineResponse(m))
		}
		httpx.WriteJSON(w, http.StatusOK, out)
	}
}

// createMedicineHandler godoc
// @Summary Crear medicamento
// @Description Registra un medicamento y genera las tomas de hoy según la frecuencia (daily 09:00; twice-daily 09:00/18:00; three-times-daily 08:00/14:00/20:00; weekly 09:00 si ya empezó; as-needed sin tomas).
// @Tags medicines
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param payload body createMedicineRequest true "Datos del medicamento"
// @Success 201 {object} medicineResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 401 {object} httpx.ErrorResponse
// @Router /api/medicines [post]
func createMedicineHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := httpx.UserID(w, r)
		if !ok {
			return
		}

		var req createMedicineRequest
		if !httpx.DecodeJSON(w, r, &req) {
			return
		}

		in := CreateInput{
			Name:      req.Name,
			Dosage:    req.Dosage,
			Frequency: req.Frequency,
			Notes:     req.Notes,
		}
		if strings.TrimSpace(req.StartDate) != "" {
			sd, err := dates.ParseDate(req.StartDate)
			if err != nil {
				httpx.WriteError(w, http.StatusBadRequest, "start_date must be YYYY-MM-DD")
				return
			}
			in.StartDate = sd
		}
		if strings.TrimSpace(req.EndDate) != "" {
			ed, err := dates.ParseDate(req.EndDate)
			if err != nil {
				httpx.WriteError(w, http.StatusBadRequest, "end_date must be YYYY-MM-DD")
				return
			}
			in.EndDate = &ed
		}

		m, err := svc.Create(r.Context(), userID, in)
		if err != nil {
			if errors.Is(err, ErrInvalidInput) {
				httpx.WriteInvalid(w, err)
				return
			}
			httpx.WriteInternal(w, r, "create medicine", err)
			return
		}

		httpx.WriteJSON(w, http.StatusCreated, toMedicineResponse(m))
	}
}

// getMedicineHandler godoc
// @Summary Obtener medicamento
// @Tags medicines
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param medicineID path string true "ID del medicamento"
// @Success 200 {object} medicineResponse
// @Failure 401 {object} httpx.ErrorResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Router /api/medicines/{medicineID} [get]
func getMedicineHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := httpx.UserID(w, r)
		if !ok {
			return
		}

		m, found, err := svc.Get(r.Context(), chi.URLParam(r, "medicineID"), userID)
		if err != nil {
			httpx.WriteInternal(w, r, "get medicine", err)
			return
		}
		if !found {
			httpx.WriteError(w, http.StatusNotFound, ErrNotFound.Error())
			return
		}

		httpx.WriteJSON(w, http.StatusOK, toMedicineResponse(m))
	}
}

// updateMedicineHandler godoc
// @Summary Actualizar medicamento
// @Description Actualiza sólo los campos enviados. Para limpiar end_date enviar null. No regenera tomas.
// @Tags medicines
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param medicineID path string true "ID del medicamento"
// @Param payload body updateMedicineRequest true "Campos a modificar"
// @Success 200 {object} messageResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 401 {object} httpx.ErrorResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Router /api/medicines/{medicineID} [put]
func updateMedicineHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := httpx.UserID(w, r)
		if !ok {
			return
		}

		// Decodificamos a map primero para detectar presencia de end_date (null = limpiar).
		var raw map[string]json.RawMessage
		if !httpx.DecodeJSON(w, r, &raw) {
			return
		}
		if len(raw) == 0 {
			httpx.WriteError(w, http.StatusBadRequest, "no data provided")
			return
		}

		var req updateMedicineRequest
		b, _ := json.Marshal(raw)
		if err := json.Unmarshal(b, &req); err != nil {
			httpx.WriteError(w, http.StatusBadRequest, "invalid json")
			return
		}

		in := UpdateInput{
			Name:      req.Name,
			Dosage:    req.Dosage,
			Frequency: req.Frequency,
			Notes:     req.Notes,
		}
		if req.StartDate != nil {
			sd, err := dates.ParseDate(*req.StartDate)
			if err != nil {
				httpx.WriteError(w, http.StatusBadRequest, "start_date must be YYYY-MM-DD")
				return
			}
			in.StartDate = &sd
		}
		if v, exists := raw["end_date"]; exists {
			in.EndDate.Present = true
			if string(v) != "null" {
				var s string
				if err := json.Unmarshal(v, &s); err != nil {
					httpx.WriteError(w, http.StatusBadRequest, "end_date must be YYYY-MM-DD or null")
					return
				}
				ed, err := dates.ParseDate(s)
				if err != nil {
					httpx.WriteError(w, http.StatusBadRequest, "end_date must be YYYY-MM-DD or null")
					return
				}
				in.EndDate.Value = &ed
			}
		}

		updated, err := svc.Update(r.Context(), chi.URLParam(r, "medicineID"), userID, in)
		if err != nil {
			if errors.Is(err, ErrInvalidInput) {
				httpx.WriteInvalid(w, err)
				return
			}
			httpx.WriteInternal(w, r, "update medicine", err)
			return
		}
		if !updated {
			httpx.WriteError(w, http.StatusNotFound, ErrNotFound.Error())
			return
		}

		httpx.WriteJSON(w, http.StatusOK, messageResponse{Message: "Medicine updated successfully"})
	}
}

// deleteMedicineHandler godoc
// @Summary Eliminar medicamento
// @Description Borrado lógico: el medicamento deja de listarse pero se conservan tomas e historial.
// @Tags medicines
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param medicineID path string true "ID del medicamento"
// @Success 200 {object} messageResponse
// @Failure 401 {object} httpx.ErrorResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Router /api/medicines/{medicineID} [delete]
func deleteMedicineHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := httpx.UserID(w, r)
		if !ok {
			return
		}

		deleted, err := svc.SoftDelete(r.Context(), chi.URLParam(r, "medicineID"), userID)
		if err != nil {
			httpx.WriteInternal(w, r, "delete medicine", err)
			return
		}
		if !deleted {
			httpx.WriteError(w, http.StatusNotFound, ErrNotFound.Error())
			return
		}

		httpx.WriteJSON(w, http.StatusOK, messageResponse{Message: "Medicine deleted successfully"})
	}
}

func toMedicineResponse(m Medicine) medicineResponse {
	out := medicineResponse{
		ID:        m.ID,
		UserID:    m.UserID,
		Name:      m.Name,
		Dosage:    m.Dosage,
		Frequency: m.Frequency,
		StartDate: dates.FormatDay(m.StartDate),
		Notes:     m.Notes,
		Active:    m.Active,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
	if m.EndDate != nil {
		ed := dates.FormatDay(*m.EndDate)
		out.EndDate = &ed
	}
	return out
}
