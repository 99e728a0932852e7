package diagnosis

import (
	"encoding/json"
	"net/http"
	"time"

	"asclepius-api/internal/platform/apierror"
	"asclepius-api/internal/platform/logger"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

func RegisterRoutes(r chi.Router, svc *Service, log logger.Logger) {
	r.Post("/echo", echoHandler(svc, log))
	r.Post("/diagnose", diagnoseHandler(svc, log))

	r.Route("/history", func(hr chi.Router) {
		hr.Get("/", listHistoryHandler(svc, log))
		hr.Delete("/", clearHistoryHandler(svc, log))
	})
}

// diagnoseRequest documenta el body que aceptan POST /diagnose y POST /echo.
type diagnoseRequest struct {
	Symptoms string `json:"symptoms" example:"I have a persistent headache and feel dizzy when standing up"`
	Duration string `json:"duration" enums:"hours,1 day,2-3 days,week+" example:"2-3 days"`
	Severity int    `json:"severity" minimum:"1" maximum:"10" example:"6"`
	Age      int    `json:"age" minimum:"1" maximum:"120" example:"35"`
}

// recordResponse es un reporte clasificado.
type recordResponse struct {
	ID             string    `json:"id"`
	Symptoms       string    `json:"symptoms"`
	Duration       Duration  `json:"duration"`
	Severity       int       `json:"severity"`
	Age            int       `json:"age"`
	Tier           Tier      `json:"tier"`
	Recommendation string    `json:"recommendation"`
	Confidence     float64   `json:"confidence"`
	MatchedKeyword string    `json:"matched_keyword,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

type clearResponse struct {
	Cleared int `json:"cleared"`
}

// echoHandler godoc
// @Summary Eco de un reporte de síntomas
// @Description Devuelve el body recibido sin cambios, incluidos campos desconocidos y nulls. Endpoint de práctica: no valida tipos ni rangos. Solo falla si el body no es un objeto JSON.
// @Tags practice
// @Accept json
// @Produce json
// @Param payload body diagnoseRequest true "Reporte de síntomas"
// @Success 200 {object} map[string]interface{}
// @Failure 422 {object} apierror.Response "JSON malformado"
// @Router /echo [post]
func echoHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw, err := DecodeReport(r.Body)
		if err != nil {
			writeValidationError(w, r, log, err)
			return
		}

		writeJSON(w, http.StatusOK, svc.Echo(raw))
	}
}

// diagnoseHandler godoc
// @Summary Clasificar un reporte de síntomas
// @Description Valida el reporte, asigna un tier (emergency, severe, moderate, mild) y guarda el registro en el historial. Se reportan todas las violaciones juntas.
// @Tags diagnosis
// @Accept json
// @Produce json
// @Param payload body diagnoseRequest true "Reporte de síntomas"
// @Success 201 {object} recordResponse
// @Failure 422 {object} apierror.Response "errores de validación, uno por campo"
// @Failure 500 {object} apierror.Response "error interno"
// @Router /diagnose [post]
func diagnoseHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw, err := DecodeReport(r.Body)
		if err != nil {
			writeValidationError(w, r, log, err)
			return
		}

		rec, err := svc.Diagnose(r.Context(), raw)
		if err != nil {
			if _, ok := AsValidationError(err); ok {
				writeValidationError(w, r, log, err)
				return
			}
			log.Error("diagnose failed", map[string]any{
				"request_id": chimw.GetReqID(r.Context()),
				"error":      err.Error(),
			})
			apierror.Internal(w, r)
			return
		}

		log.Info("diagnosis recorded", map[string]any{
			"request_id": chimw.GetReqID(r.Context()),
			"record_id":  rec.ID,
			"tier":       string(rec.Tier),
		})
		writeJSON(w, http.StatusCreated, toRecordResponse(rec))
	}
}

// listHistoryHandler godoc
// @Summary Listar historial de diagnósticos
// @Description Todos los registros guardados, del más viejo al más nuevo. Array vacío si no hay nada.
// @Tags diagnosis
// @Produce json
// @Success 200 {array} recordResponse
// @Failure 500 {object} apierror.Response "error interno"
// @Router /history [get]
func listHistoryHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.History(r.Context())
		if err != nil {
			log.Error("list history failed", map[string]any{"error": err.Error()})
			apierror.Internal(w, r)
			return
		}

		out := make([]recordResponse, 0, len(items))
		for _, rec := range items {
			out = append(out, toRecordResponse(rec))
		}

		writeJSON(w, http.StatusOK, out)
	}
}

// clearHistoryHandler godoc
// @Summary Vaciar historial de diagnósticos
// @Description Borra todos los registros y devuelve cuántos se borraron.
// @Tags diagnosis
// @Produce json
// @Success 200 {object} clearResponse
// @Failure 500 {object} apierror.Response "error interno"
// @Router /history [delete]
func clearHistoryHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		n, err := svc.ClearHistory(r.Context())
		if err != nil {
			log.Error("clear history failed", map[string]any{"error": err.Error()})
			apierror.Internal(w, r)
			return
		}

		log.Info("history cleared", map[string]any{
			"request_id": chimw.GetReqID(r.Context()),
			"cleared":    n,
		})
		writeJSON(w, http.StatusOK, clearResponse{Cleared: n})
	}
}

func writeValidationError(w http.ResponseWriter, r *http.Request, log logger.Logger, err error) {
	ve, ok := AsValidationError(err)
	if !ok {
		ve = &ValidationError{Fields: []FieldError{{Field: FieldBody, Reason: err.Error()}}}
	}

	log.Warn("validation error", map[string]any{
		"request_id": chimw.GetReqID(r.Context()),
		"method":     r.Method,
		"path":       r.URL.Path,
		"details":    ve.Fields,
	})

	apierror.Write(w, r, http.StatusUnprocessableEntity, apierror.CodeValidation, "Invalid input data provided", ve.Fields)
}

func toRecordResponse(rec Record) recordResponse {
	return recordResponse{
		ID:             rec.ID,
		Symptoms:       rec.Symptoms,
		Duration:       rec.Duration,
		Severity:       rec.Severity,
		Age:            rec.Age,
		Tier:           rec.Tier,
		Recommendation: rec.Recommendation,
		Confidence:     rec.Confidence,
		MatchedKeyword: rec.MatchedKeyword,
		CreatedAt:      rec.CreatedAt,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
