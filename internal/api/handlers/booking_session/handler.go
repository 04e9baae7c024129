package booking_session

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	"github.com/m04kA/SMC-ReservationService/internal/api/handlers/get_month_grid"
	"github.com/m04kA/SMC-ReservationService/internal/api/middleware"
	"github.com/m04kA/SMC-ReservationService/internal/domain"
	catalogClient "github.com/m04kA/SMC-ReservationService/internal/integrations/catalogservice"
	"github.com/m04kA/SMC-ReservationService/internal/workflow"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

const (
	msgInvalidBusinessID  = "некорректный ID бизнеса"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgBusinessNotFound   = "бизнес не найден"
	msgSessionNotFound    = "сессия бронирования не найдена"
	msgInvalidDirection   = "direction должен быть next или prev"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidTime        = "некорректный формат времени, ожидается HH:MM"
	msgNotReady           = "сначала выберите дату и время"
	msgSlotConflict       = "выбранный временной слот уже занят, выберите другое время"
	msgInvalidInput       = "некорректные данные клиента"
	msgServiceNotFound    = "услуга не найдена"
)

type Handler struct {
	registry      SessionRegistry
	catalog       CatalogClient
	finder        workflow.SlotsFinder
	creator       workflow.ReservationCreator
	defaultLocale string
	logger        Logger
}

func NewHandler(
	registry SessionRegistry,
	catalog CatalogClient,
	finder workflow.SlotsFinder,
	creator workflow.ReservationCreator,
	defaultLocale string,
	logger Logger,
) *Handler {
	return &Handler{
		registry:      registry,
		catalog:       catalog,
		finder:        finder,
		creator:       creator,
		defaultLocale: defaultLocale,
		logger:        logger,
	}
}

// Create POST /api/v1/businesses/{businessId}/booking-sessions
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	businessID, err := strconv.ParseInt(mux.Vars(r)["businessId"], 10, 64)
	if err != nil || businessID <= 0 {
		h.logger.Warn("POST /businesses/{id}/booking-sessions - Invalid business ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBusinessID)
		return
	}

	var req CreateSessionRequest
	if r.ContentLength > 0 {
		if err := handlers.DecodeJSON(r, &req); err != nil {
			h.logger.Warn("POST /businesses/{id}/booking-sessions - Invalid request body: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)
			return
		}
	}

	if _, err := h.catalog.GetBusiness(r.Context(), businessID); err != nil {
		if errors.Is(err, catalogClient.ErrBusinessNotFound) {
			h.logger.Warn("POST /businesses/{id}/booking-sessions - Business not found: business_id=%d", businessID)
			handlers.RespondNotFound(w, msgBusinessNotFound)
			return
		}
		h.logger.Error("POST /businesses/{id}/booking-sessions - Failed to get business: business_id=%d, error=%v", businessID, err)
		handlers.RespondInternalError(w)
		return
	}

	locale := req.Locale
	if locale == "" {
		locale = get_month_grid.ResolveLocale(r, h.defaultLocale)
	}

	controller := workflow.NewController(businessID, userID, locale, h.finder, h.creator)
	id := h.registry.Add(controller)

	h.logger.Info("POST /businesses/{id}/booking-sessions - Session created: session_id=%s, business_id=%d, user_id=%d",
		id, businessID, userID)
	h.respondState(w, http.StatusCreated, id, controller, nil)
}

// Get GET /api/v1/booking-sessions/{sessionId}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, controller, ok := h.session(w, r)
	if !ok {
		return
	}
	h.respondState(w, http.StatusOK, id, controller, nil)
}

// Navigate POST /api/v1/booking-sessions/{sessionId}/month
func (h *Handler) Navigate(w http.ResponseWriter, r *http.Request) {
	id, controller, ok := h.session(w, r)
	if !ok {
		return
	}

	var req NavigateRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	switch req.Direction {
	case "next":
		controller.NextMonth()
	case "prev":
		controller.PrevMonth()
	default:
		handlers.RespondBadRequest(w, msgInvalidDirection)
		return
	}

	h.respondState(w, http.StatusOK, id, controller, nil)
}

// SelectDate POST /api/v1/booking-sessions/{sessionId}/date
func (h *Handler) SelectDate(w http.ResponseWriter, r *http.Request) {
	id, controller, ok := h.session(w, r)
	if !ok {
		return
	}

	var req SelectDateRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	date, err := time.ParseInLocation(domain.DateFormat, req.Date, time.Local)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	accepted, err := controller.SelectDate(r.Context(), date)
	if err != nil {
		h.logger.Error("POST /booking-sessions/{id}/date - Failed to load slots: session_id=%s, error=%v", id, err)
		h.respondWorkflowError(w, err)
		return
	}

	h.respondState(w, http.StatusOK, id, controller, &accepted)
}

// SelectTime POST /api/v1/booking-sessions/{sessionId}/time
func (h *Handler) SelectTime(w http.ResponseWriter, r *http.Request) {
	id, controller, ok := h.session(w, r)
	if !ok {
		return
	}

	var req SelectTimeRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	t, err := types.NewTimeStringFromString(req.Time)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	accepted := controller.SelectTime(t)
	h.respondState(w, http.StatusOK, id, controller, &accepted)
}

// Submit POST /api/v1/booking-sessions/{sessionId}/submit
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	id, controller, ok := h.session(w, r)
	if !ok {
		return
	}

	var req SubmitRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	reservation, err := controller.Submit(r.Context(), req.ToDetails())
	if err != nil {
		h.logger.Warn("POST /booking-sessions/{id}/submit - Submit failed: session_id=%s, error=%v", id, err)
		h.respondWorkflowError(w, err)
		return
	}

	h.logger.Info("POST /booking-sessions/{id}/submit - Reservation created: session_id=%s, reservation_id=%d",
		id, reservation.ID)
	h.respondState(w, http.StatusCreated, id, controller, nil)
}

// Delete DELETE /api/v1/booking-sessions/{sessionId}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	id := mux.Vars(r)["sessionId"]
	if err := h.registry.Remove(id, userID); err != nil {
		handlers.RespondNotFound(w, msgSessionNotFound)
		return
	}

	h.logger.Info("DELETE /booking-sessions/{id} - Session abandoned: session_id=%s", id)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) session(w http.ResponseWriter, r *http.Request) (string, *workflow.Controller, bool) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return "", nil, false
	}

	id := mux.Vars(r)["sessionId"]
	controller, err := h.registry.Get(id, userID)
	if err != nil {
		h.logger.Warn("booking-sessions - Session not found: session_id=%s, user_id=%d", id, userID)
		handlers.RespondNotFound(w, msgSessionNotFound)
		return "", nil, false
	}
	return id, controller, true
}

func (h *Handler) respondState(w http.ResponseWriter, status int, id string, c *workflow.Controller, accepted *bool) {
	grid, err := c.Grid()
	if err != nil {
		h.logger.Error("booking-sessions - Failed to build grid: session_id=%s, error=%v", id, err)
		handlers.RespondInternalError(w)
		return
	}

	resp := NewSessionResponse(id, c, grid)
	resp.Accepted = accepted
	handlers.RespondJSON(w, status, resp)
}

func (h *Handler) respondWorkflowError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, workflow.ErrNotReady):
		handlers.RespondConflict(w, msgNotReady)
	case errors.Is(err, domain.ErrSlotConflict):
		handlers.RespondConflict(w, msgSlotConflict)
	case errors.Is(err, domain.ErrValidation):
		handlers.RespondBadRequest(w, msgInvalidInput)
	case errors.Is(err, domain.ErrNotFound):
		handlers.RespondNotFound(w, msgServiceNotFound)
	default:
		handlers.RespondInternalError(w)
	}
}
