package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"

	"clinicbook/internal/gateway/service"
	httputil "clinicbook/pkg/http"
	"clinicbook/pkg/logger"
	"clinicbook/pkg/model"
)

type GatewayHandler struct {
	service service.GatewayService
	log     *logger.Logger
}

func NewGatewayHandler(service service.GatewayService, log *logger.Logger) *GatewayHandler {
	return &GatewayHandler{
		service: service,
		log:     log,
	}
}

func (h *GatewayHandler) DaySlots(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	q := r.URL.Query()

	slots, err := h.service.DaySlots(r.Context(), q.Get("location_id"), q.Get("date"), q.Get("treatment_id"))
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "DaySlots", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, slots); err != nil {
		h.log.Error("failed to write success response", "handler", "DaySlots", "error", err)
	}
}

func (h *GatewayHandler) SelectableDays(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	q := r.URL.Query()

	days := 0
	if raw := q.Get("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
				Error: "days must be a number",
			}); writeErr != nil {
				h.log.Error("failed to write JSON response", "handler", "SelectableDays", "error", writeErr)
			}
			return
		}
		days = parsed
	}

	result, err := h.service.SelectableDays(r.Context(), q.Get("location_id"), q.Get("from"), days)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "SelectableDays", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, result); err != nil {
		h.log.Error("failed to write success response", "handler", "SelectableDays", "error", err)
	}
}

func (h *GatewayHandler) Book(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var appointment model.Appointment
	if err := json.NewDecoder(r.Body).Decode(&appointment); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Book", "error", writeErr)
		}
		return
	}

	// The session middleware fills X-Patient-Phone from the verified token.
	headers := map[string]string{}
	if phone := r.Header.Get("X-Patient-Phone"); phone != "" {
		headers["X-Patient-Phone"] = phone
		if appointment.PatientPhone == "" {
			appointment.PatientPhone = phone
		}
	}
	if key := r.Header.Get("Idempotency-Key"); key != "" {
		headers["Idempotency-Key"] = key
	}

	created, err := h.service.Book(r.Context(), &appointment, headers)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Book", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteCreated(w, created); err != nil {
		h.log.Error("failed to write created response", "handler", "Book", "error", err)
	}
}

func (h *GatewayHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/v1/availability/slots", h.DaySlots)
	router.GET("/api/v1/availability/days", h.SelectableDays)
	router.POST("/api/v1/book", h.Book)
}
