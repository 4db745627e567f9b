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

// AddSpeakerRequest is the request body for POST /events/{eventID}/speakers.
type AddSpeakerRequest struct {
	Name        string `json:"name"`
	Title       string `json:"title"`
	Company     string `json:"company"`
	Bio         string `json:"bio"`
	HeadshotURL string `json:"headshot_url"`
}

// Validate implements Validator.
func (a AddSpeakerRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(a.Name) == "" {
		errs = append(errs, "name is required")
	}
	return errs
}

// UpdateSpeakerRequest is the request body for PATCH /events/{eventID}/speakers/{speakerID}. All fields optional.
type UpdateSpeakerRequest struct {
	Name        *string `json:"name"`
	Title       *string `json:"title"`
	Company     *string `json:"company"`
	Bio         *string `json:"bio"`
	HeadshotURL *string `json:"headshot_url"`
}

// Validate implements Validator.
func (u UpdateSpeakerRequest) Validate() []string {
	var errs []string
	if u.Name != nil && strings.TrimSpace(*u.Name) == "" {
		errs = append(errs, "name cannot be empty")
	}
	return errs
}

// AddSpeakerSuccessResponse is the success response envelope for POST /events/{eventID}/speakers (201).
type AddSpeakerSuccessResponse struct {
	Data  *domain.Speaker   `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// GetSpeakerSuccessResponse is the success response envelope for GET /events/{eventID}/speakers/{speakerID} (200).
type GetSpeakerSuccessResponse struct {
	Data  *domain.Speaker   `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// ListSpeakersSuccessResponse is the success response envelope for GET /events/{eventID}/speakers (200).
type ListSpeakersSuccessResponse struct {
	Data  []*domain.Speaker `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// UpdateSpeakerSuccessResponse is the success response envelope for PATCH /events/{eventID}/speakers/{speakerID} (200).
type UpdateSpeakerSuccessResponse struct {
	Data  *domain.Speaker   `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// SpeakerController handles speaker endpoints under an event.
type SpeakerController struct {
	Logger  *slog.Logger
	Service domain.SpeakerService
}

// NewSpeakerController creates a SpeakerController with the given logger and service.
func NewSpeakerController(logger *slog.Logger, svc domain.SpeakerService) *SpeakerController {
	return &SpeakerController{
		Logger:  logger,
		Service: svc,
	}
}

// AddSpeaker godoc
// @Summary Add a speaker to an event
// @Description Adds a speaker to the event. Name is required; title, company, bio, and headshot_url are optional. Speakers are announced in the order they were added. Only the event owner can add speakers.
// @Tags speakers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Param body body AddSpeakerRequest true "Speaker data"
// @Success 201 {object} controllers.AddSpeakerSuccessResponse "data contains the created speaker"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden (not owner)"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/speakers [post]
func (c *SpeakerController) AddSpeaker(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}
	var req AddSpeakerRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	ownerID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	now := time.Now()
	speaker := domain.NewSpeaker(eventID, strings.TrimSpace(req.Name), req.Title, req.Company, req.Bio, req.HeadshotURL, now, now)
	if err := c.Service.AddSpeaker(r.Context(), eventID, ownerID, speaker); err != nil {
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
	helpers.WriteJSONSuccess(w, http.StatusCreated, speaker)
}

// ListSpeakers godoc
// @Summary List an event's speakers
// @Description Returns the event's speakers in announcement order (created_at ascending). Only the event owner can list speakers.
// @Tags speakers
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Success 200 {object} controllers.ListSpeakersSuccessResponse "data contains the speakers"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden (not owner)"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/speakers [get]
func (c *SpeakerController) ListSpeakers(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}
	ownerID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	speakers, err := c.Service.ListSpeakers(r.Context(), eventID, ownerID)
	if err != nil {
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
	if speakers == nil {
		speakers = []*domain.Speaker{}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, speakers)
}

// GetSpeaker godoc
// @Summary Get a speaker
// @Description Returns one speaker of the event. Only the event owner can view speakers.
// @Tags speakers
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Param speakerID path string true "Speaker ID (UUID)"
// @Success 200 {object} controllers.GetSpeakerSuccessResponse "data contains the speaker"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden (not owner)"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/speakers/{speakerID} [get]
func (c *SpeakerController) GetSpeaker(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	speakerID := r.PathValue("speakerID")
	if eventID == "" || speakerID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID or speakerID")
		return
	}
	ownerID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	speaker, err := c.Service.GetSpeaker(r.Context(), eventID, speakerID, ownerID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "event or speaker not found")
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
	helpers.WriteJSONSuccess(w, http.StatusOK, speaker)
}

// UpdateSpeaker godoc
// @Summary Update a speaker
// @Description Updates a speaker's name, title, company, bio, and/or headshot_url. Optional fields omitted from body are unchanged. Only the event owner can update speakers.
// @Tags speakers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Param speakerID path string true "Speaker ID (UUID)"
// @Param body body UpdateSpeakerRequest true "Fields to update (all optional)"
// @Success 200 {object} controllers.UpdateSpeakerSuccessResponse "data contains the updated speaker"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden (not owner)"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/speakers/{speakerID} [patch]
func (c *SpeakerController) UpdateSpeaker(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	speakerID := r.PathValue("speakerID")
	if eventID == "" || speakerID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID or speakerID")
		return
	}
	var req UpdateSpeakerRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	ownerID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	upd := domain.SpeakerUpdate{
		Name:        req.Name,
		Title:       req.Title,
		Company:     req.Company,
		Bio:         req.Bio,
		HeadshotURL: req.HeadshotURL,
	}
	speaker, err := c.Service.UpdateSpeaker(r.Context(), eventID, speakerID, ownerID, upd)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "event or speaker not found")
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
	helpers.WriteJSONSuccess(w, http.StatusOK, speaker)
}

// RemoveSpeaker godoc
// @Summary Remove a speaker
// @Description Removes a speaker from the event along with their announcements and scheduled posts. Only the event owner can remove speakers.
// @Tags speakers
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Param speakerID path string true "Speaker ID (UUID)"
// @Success 200 {object} controllers.DeleteEventSuccessResponse "data contains status"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden (not owner)"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/speakers/{speakerID} [delete]
func (c *SpeakerController) RemoveSpeaker(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	speakerID := r.PathValue("speakerID")
	if eventID == "" || speakerID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID or speakerID")
		return
	}
	ownerID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	if err := c.Service.RemoveSpeaker(r.Context(), eventID, speakerID, ownerID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "event or speaker not found")
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
