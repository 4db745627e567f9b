package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"announcehub/internal/delivery/http/helpers"
	"announcehub/internal/delivery/http/middleware"
	"announcehub/internal/domain"
)

// dateLayout is the wire format for calendar dates (start_date).
const dateLayout = "2006-01-02"

// parseWireDate parses an optional YYYY-MM-DD wire value. A nil input stays nil.
func parseWireDate(raw *string) (*time.Time, error) {
	if raw == nil {
		return nil, nil
	}
	date, err := time.Parse(dateLayout, *raw)
	if err != nil {
		return nil, errors.New("start_date must be formatted as YYYY-MM-DD")
	}
	return &date, nil
}

// EventController handles event CRUD endpoints.
type EventController struct {
	Logger  *slog.Logger
	Service domain.EventService
}

// NewEventController creates an EventController with the given logger and service.
func NewEventController(logger *slog.Logger, svc domain.EventService) *EventController {
	return &EventController{
		Logger:  logger,
		Service: svc,
	}
}

// CreateEventRequest is the request body for POST /events. Only name is
// required; timezone defaults to UTC.
type CreateEventRequest struct {
	Name           string  `json:"name"`
	Description    *string `json:"description"`
	StartDate      *string `json:"start_date"` // YYYY-MM-DD
	Timezone       *string `json:"timezone"`
	DripDaysBefore *int    `json:"drip_days_before"`
	DripStartTime  *string `json:"drip_start_time"` // HH:MM or HH:MM:SS
}

// Validate implements Validator.
func (c CreateEventRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(c.Name) == "" {
		errs = append(errs, "name is required")
	}
	if _, err := parseWireDate(c.StartDate); err != nil {
		errs = append(errs, err.Error())
	}
	if c.DripDaysBefore != nil && *c.DripDaysBefore <= 0 {
		errs = append(errs, "drip_days_before must be positive")
	}
	return errs
}

// toDomain builds the event to create. The service fills in the UTC timezone
// default and validates drip settings against the event's timezone.
func (c CreateEventRequest) toDomain(ownerID string, now time.Time) (*domain.Event, error) {
	var timezone string
	if c.Timezone != nil {
		timezone = *c.Timezone
	}
	event := domain.NewEvent(strings.TrimSpace(c.Name), timezone, ownerID, now, now)
	event.Description = c.Description
	event.DripDaysBefore = c.DripDaysBefore
	event.DripStartTime = c.DripStartTime
	startDate, err := parseWireDate(c.StartDate)
	if err != nil {
		return nil, err
	}
	event.StartDate = startDate
	return event, nil
}

// CreateEventSuccessResponse is the success envelope for POST /events (201).
type CreateEventSuccessResponse struct {
	Data  *domain.Event     `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// CreateEvent godoc
// @Summary Create a new event
// @Description Create a new event. Name is required; description, start_date (YYYY-MM-DD), timezone (IANA identifier, defaults to UTC), and drip defaults are optional. The authenticated user becomes the event owner.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param event body CreateEventRequest true "Event data"
// @Success 201 {object} controllers.CreateEventSuccessResponse "data contains the created event"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events [post]
func (c *EventController) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req CreateEventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	event, err := req.toDomain(userID, time.Now())
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
		return
	}
	if err := c.Service.CreateEvent(r.Context(), event); err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, event)
}

// GetEventByIDResponse is the response body for GET /events/{eventID}. Contains the event and its speakers.
type GetEventByIDResponse struct {
	Event    *domain.Event     `json:"event"`
	Speakers []*domain.Speaker `json:"speakers"`
}

// GetEventByIDSuccessResponse is the success envelope for GET /events/{eventID} (200).
type GetEventByIDSuccessResponse struct {
	Data  GetEventByIDResponse `json:"data"`
	Error *helpers.APIError    `json:"error"`
}

// GetEventByID godoc
// @Summary Get an event by ID
// @Description Returns the event and its speakers in announcement order (created_at ascending). Requires authentication.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Success 200 {object} controllers.GetEventByIDSuccessResponse "data contains event and speakers"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID} [get]
func (c *EventController) GetEventByID(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}
	if _, ok := middleware.UserIDFromContext(r.Context()); !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	event, speakers, err := c.Service.GetEventByID(r.Context(), eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "event not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, GetEventByIDResponse{Event: event, Speakers: speakers})
}

// ListMyEventsSuccessResponse is the success envelope for GET /events/me (200).
type ListMyEventsSuccessResponse struct {
	Data  []*domain.Event   `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// ListMyEvents godoc
// @Summary List my events
// @Description Returns all events owned by the authenticated user, newest first.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.ListMyEventsSuccessResponse "data contains the events"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/me [get]
func (c *EventController) ListMyEvents(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	events, err := c.Service.ListEventsByOwner(r.Context(), userID)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	if events == nil {
		events = []*domain.Event{}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, events)
}

// UpdateEventRequest is the request body for PATCH /events/{eventID}. All fields optional; omitted fields are unchanged.
type UpdateEventRequest struct {
	Name           *string `json:"name"`
	Description    *string `json:"description"`
	StartDate      *string `json:"start_date"` // YYYY-MM-DD
	Timezone       *string `json:"timezone"`
	DripDaysBefore *int    `json:"drip_days_before"`
	DripStartTime  *string `json:"drip_start_time"`
}

// Validate implements Validator.
func (u UpdateEventRequest) Validate() []string {
	var errs []string
	if u.Name != nil && strings.TrimSpace(*u.Name) == "" {
		errs = append(errs, "name cannot be empty")
	}
	if _, err := parseWireDate(u.StartDate); err != nil {
		errs = append(errs, err.Error())
	}
	if u.DripDaysBefore != nil && *u.DripDaysBefore <= 0 {
		errs = append(errs, "drip_days_before must be positive")
	}
	return errs
}

// toUpdate converts the wire request into the domain update, parsing the
// start date.
func (u UpdateEventRequest) toUpdate() (domain.EventUpdate, error) {
	startDate, err := parseWireDate(u.StartDate)
	if err != nil {
		return domain.EventUpdate{}, err
	}
	return domain.EventUpdate{
		Name:           u.Name,
		Description:    u.Description,
		StartDate:      startDate,
		Timezone:       u.Timezone,
		DripDaysBefore: u.DripDaysBefore,
		DripStartTime:  u.DripStartTime,
	}, nil
}

// UpdateEventSuccessResponse is the success envelope for PATCH /events/{eventID} (200).
type UpdateEventSuccessResponse struct {
	Data  *domain.Event     `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// UpdateEvent godoc
// @Summary Update event details
// @Description Updates event name, description, start_date, timezone, and drip defaults. Only the event owner can update. Optional fields omitted from body are unchanged. Requires authentication.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Param body body UpdateEventRequest true "Fields to update (all optional)"
// @Success 200 {object} controllers.UpdateEventSuccessResponse "data contains the updated event"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden (not owner)"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID} [patch]
func (c *EventController) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}
	var req UpdateEventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	ownerID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	upd, err := req.toUpdate()
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
		return
	}
	event, err := c.Service.UpdateEvent(r.Context(), eventID, ownerID, upd)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "event not found")
			return
		}
		if errors.Is(err, domain.ErrForbidden) {
			helpers.WriteJSONError(w, http.StatusForbidden, helpers.ErrCodeForbidden, "forbidden")
			return
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, event)
}

// DeleteEventResponse is the data payload for DELETE endpoints (200).
type DeleteEventResponse struct {
	Status string `json:"status"`
}

// DeleteEventSuccessResponse is the success envelope for DELETE /events/{eventID} (200).
type DeleteEventSuccessResponse struct {
	Data  DeleteEventResponse `json:"data"`
	Error *helpers.APIError   `json:"error"`
}

// DeleteEvent godoc
// @Summary Delete an event
// @Description Deletes the event and everything under it (speakers, announcements, scheduled posts). Only the event owner can delete. Requires authentication.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Success 200 {object} controllers.DeleteEventSuccessResponse "data contains status"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden (not owner)"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID} [delete]
func (c *EventController) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	if err := c.Service.DeleteEvent(r.Context(), eventID, userID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "event not found")
			return
		}
		if errors.Is(err, domain.ErrForbidden) {
			helpers.WriteJSONError(w, http.StatusForbidden, helpers.ErrCodeForbidden, "forbidden")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, DeleteEventResponse{Status: "deleted"})
}
