package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"announcehub/internal/delivery/http/helpers"
	"announcehub/internal/delivery/http/middleware"
	"announcehub/internal/domain"
)

// GenerateAnnouncementsRequest is the request body for POST /events/{eventID}/announcements/generate.
// Platforms is optional; empty or "all" targets linkedin, twitter, and instagram.
type GenerateAnnouncementsRequest struct {
	Platforms []domain.Platform `json:"platforms"`
}

// Validate implements Validator.
func (g GenerateAnnouncementsRequest) Validate() []string {
	var errs []string
	for _, p := range g.Platforms {
		if !domain.ValidPlatform(p) {
			errs = append(errs, "platforms must be \"linkedin\", \"twitter\", \"instagram\", or \"all\"")
			break
		}
	}
	return errs
}

// GenerateAnnouncementsResponse is the data payload for POST /events/{eventID}/announcements/generate (201).
// Failed lists speaker/platform pairs whose copy generation or storage failed;
// pairs that already had an announcement are silently skipped.
type GenerateAnnouncementsResponse struct {
	Announcements []*domain.Announcement `json:"announcements"`
	Failed        []string               `json:"failed,omitempty"`
}

// GenerateAnnouncementsSuccessResponse is the success response envelope for POST /events/{eventID}/announcements/generate (201).
type GenerateAnnouncementsSuccessResponse struct {
	Data  GenerateAnnouncementsResponse `json:"data"`
	Error *helpers.APIError             `json:"error"`
}

// UpdateAnnouncementRequest is the request body for PATCH /events/{eventID}/announcements/{announcementID}. Both fields optional.
type UpdateAnnouncementRequest struct {
	Body     *string `json:"body"`
	ImageURL *string `json:"image_url"`
}

// Validate implements Validator.
func (u UpdateAnnouncementRequest) Validate() []string {
	var errs []string
	if u.Body != nil && *u.Body == "" {
		errs = append(errs, "body cannot be empty")
	}
	return errs
}

// ListAnnouncementsSuccessResponse is the success response envelope for GET /events/{eventID}/announcements (200).
type ListAnnouncementsSuccessResponse struct {
	Data  []*domain.Announcement `json:"data"`
	Error *helpers.APIError      `json:"error"`
}

// UpdateAnnouncementSuccessResponse is the success response envelope for PATCH /events/{eventID}/announcements/{announcementID} (200).
type UpdateAnnouncementSuccessResponse struct {
	Data  *domain.Announcement `json:"data"`
	Error *helpers.APIError    `json:"error"`
}

// PublishAnnouncementSuccessResponse is the success response envelope for POST /events/{eventID}/announcements/{announcementID}/publish (200).
type PublishAnnouncementSuccessResponse struct {
	Data  *domain.Announcement `json:"data"`
	Error *helpers.APIError    `json:"error"`
}

// AnnouncementController handles announcement endpoints under an event.
type AnnouncementController struct {
	Logger  *slog.Logger
	Service domain.AnnouncementService
}

// NewAnnouncementController creates an AnnouncementController with the given logger and service.
func NewAnnouncementController(logger *slog.Logger, svc domain.AnnouncementService) *AnnouncementController {
	return &AnnouncementController{
		Logger:  logger,
		Service: svc,
	}
}

// GenerateAnnouncements godoc
// @Summary Generate announcement copy for an event
// @Description Runs the copy generator for every speaker of the event on the requested platforms (default all). Speaker/platform pairs that already have an announcement are skipped; pairs whose generation fails are reported in failed without aborting the rest. Only the event owner can generate announcements.
// @Tags announcements
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Param body body GenerateAnnouncementsRequest true "Target platforms (optional, defaults to all)"
// @Success 201 {object} controllers.GenerateAnnouncementsSuccessResponse "data contains created announcements and failed speakers"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request (unknown platform, no speakers)"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden (not owner)"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/announcements/generate [post]
func (c *AnnouncementController) GenerateAnnouncements(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}
	var req GenerateAnnouncementsRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	ownerID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	announcements, failed, err := c.Service.GenerateAnnouncements(r.Context(), eventID, ownerID, req.Platforms)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "event not found")
			return
		}
		if errors.Is(err, domain.ErrForbidden) {
			helpers.WriteJSONError(w, http.StatusForbidden, helpers.ErrCodeForbidden, "forbidden")
			return
		}
		if errors.Is(err, domain.ErrNoSpeakers) {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "event has no speakers")
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
	helpers.WriteJSONSuccess(w, http.StatusCreated, GenerateAnnouncementsResponse{Announcements: announcements, Failed: failed})
}

// ListAnnouncements godoc
// @Summary List an event's announcements
// @Description Returns the event's announcements in creation order, optionally filtered by platform and/or speaker_id. Only the event owner can list announcements.
// @Tags announcements
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Param platform query string false "Filter by platform (linkedin, twitter, instagram)"
// @Param speaker_id query string false "Filter by speaker ID"
// @Success 200 {object} controllers.ListAnnouncementsSuccessResponse "data contains the announcements"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden (not owner)"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/announcements [get]
func (c *AnnouncementController) ListAnnouncements(w http.ResponseWriter, r *http.Request) {
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
	platform := domain.Platform(r.URL.Query().Get("platform"))
	speakerID := r.URL.Query().Get("speaker_id")
	announcements, err := c.Service.ListAnnouncements(r.Context(), eventID, ownerID, speakerID, platform)
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
	if announcements == nil {
		announcements = []*domain.Announcement{}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, announcements)
}

// UpdateAnnouncement godoc
// @Summary Edit an announcement
// @Description Updates the announcement body and/or image_url. Published announcements cannot be edited. The twitter body limit (280) and general limit (3000) apply. Only the event owner can edit announcements.
// @Tags announcements
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Param announcementID path string true "Announcement ID (UUID)"
// @Param body body UpdateAnnouncementRequest true "Fields to update (both optional)"
// @Success 200 {object} controllers.UpdateAnnouncementSuccessResponse "data contains the updated announcement"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden (not owner)"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (already published)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/announcements/{announcementID} [patch]
func (c *AnnouncementController) UpdateAnnouncement(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	announcementID := r.PathValue("announcementID")
	if eventID == "" || announcementID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID or announcementID")
		return
	}
	var req UpdateAnnouncementRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	ownerID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	announcement, err := c.Service.UpdateAnnouncement(r.Context(), announcementID, ownerID, domain.AnnouncementUpdate{Body: req.Body, ImageURL: req.ImageURL})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "announcement not found")
			return
		}
		if errors.Is(err, domain.ErrForbidden) {
			helpers.WriteJSONError(w, http.StatusForbidden, helpers.ErrCodeForbidden, "forbidden")
			return
		}
		if errors.Is(err, domain.ErrAlreadyPublished) {
			helpers.WriteJSONError(w, http.StatusConflict, helpers.ErrCodeConflict, "announcement already published")
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
	helpers.WriteJSONSuccess(w, http.StatusOK, announcement)
}

// DeleteAnnouncement godoc
// @Summary Delete an announcement
// @Description Deletes the announcement. Regenerating copy for a speaker/platform pair is delete-then-generate. Only the event owner can delete announcements.
// @Tags announcements
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Param announcementID path string true "Announcement ID (UUID)"
// @Success 200 {object} controllers.DeleteEventSuccessResponse "data contains status"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden (not owner)"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/announcements/{announcementID} [delete]
func (c *AnnouncementController) DeleteAnnouncement(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	announcementID := r.PathValue("announcementID")
	if eventID == "" || announcementID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID or announcementID")
		return
	}
	ownerID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	if err := c.Service.DeleteAnnouncement(r.Context(), announcementID, ownerID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "announcement not found")
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

// PublishAnnouncement godoc
// @Summary Publish an announcement now
// @Description Posts the announcement to its platform immediately using the caller's connected account and records the resulting post URL. Requires a connected, unexpired social account for the platform. Only the event owner can publish.
// @Tags announcements
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Param announcementID path string true "Announcement ID (UUID)"
// @Success 200 {object} controllers.PublishAnnouncementSuccessResponse "data contains the published announcement with post_url and posted_at"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request (no connected account)"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden (not owner)"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (already published)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/announcements/{announcementID}/publish [post]
func (c *AnnouncementController) PublishAnnouncement(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	announcementID := r.PathValue("announcementID")
	if eventID == "" || announcementID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID or announcementID")
		return
	}
	ownerID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	announcement, err := c.Service.PublishAnnouncement(r.Context(), announcementID, ownerID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "announcement not found")
			return
		}
		if errors.Is(err, domain.ErrForbidden) {
			helpers.WriteJSONError(w, http.StatusForbidden, helpers.ErrCodeForbidden, "forbidden")
			return
		}
		if errors.Is(err, domain.ErrAlreadyPublished) {
			helpers.WriteJSONError(w, http.StatusConflict, helpers.ErrCodeConflict, "announcement already published")
			return
		}
		if errors.Is(err, domain.ErrNotConnected) {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, announcement)
}
