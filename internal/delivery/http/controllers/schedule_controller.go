package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"announcehub/internal/delivery/http/helpers"
	"announcehub/internal/delivery/http/middleware"
	"announcehub/internal/domain"
)

// ScheduleRequestBody is the request body for the schedule preview and commit
// endpoints. All fields are optional; omitted fields fall back to the event's
// drip defaults, then the built-in defaults (7 days, 10:00:00, weekends
// avoided, all platforms).
type ScheduleRequestBody struct {
	DaysBeforeEvent *int            `json:"days_before_event"`
	StartTime       *string         `json:"start_time"` // HH:MM or HH:MM:SS
	AvoidWeekends   *bool           `json:"avoid_weekends"`
	Platform        domain.Platform `json:"platform"`
}

// Validate implements Validator.
func (s ScheduleRequestBody) Validate() []string {
	var errs []string
	if s.DaysBeforeEvent != nil && *s.DaysBeforeEvent <= 0 {
		errs = append(errs, "days_before_event must be positive")
	}
	if s.StartTime != nil && !validStartTime(*s.StartTime) {
		errs = append(errs, "start_time must be formatted as HH:MM or HH:MM:SS")
	}
	if s.Platform != "" && !domain.ValidPlatform(s.Platform) {
		errs = append(errs, "platform must be \"linkedin\", \"twitter\", \"instagram\", or \"all\"")
	}
	return errs
}

func (s ScheduleRequestBody) toDomain() domain.ScheduleRequest {
	return domain.ScheduleRequest{
		DaysBeforeEvent: s.DaysBeforeEvent,
		StartTime:       s.StartTime,
		AvoidWeekends:   s.AvoidWeekends,
		Platform:        s.Platform,
	}
}

func validStartTime(s string) bool {
	for _, layout := range []string{"15:04:05", "15:04"} {
		if _, err := time.Parse(layout, s); err == nil {
			return true
		}
	}
	return false
}

// PreviewScheduleSuccessResponse is the success response envelope for POST /events/{eventID}/schedule/preview (200).
type PreviewScheduleSuccessResponse struct {
	Data  *domain.SchedulePreview `json:"data"`
	Error *helpers.APIError       `json:"error"`
}

// CommitScheduleSuccessResponse is the success response envelope for POST /events/{eventID}/schedule/commit (200).
type CommitScheduleSuccessResponse struct {
	Data  *domain.ScheduleCommitResult `json:"data"`
	Error *helpers.APIError            `json:"error"`
}

// ListScheduledPostsResponse is the data payload for GET /events/{eventID}/scheduled-posts (200).
type ListScheduledPostsResponse struct {
	Items      []*domain.ScheduledPost `json:"items"`
	Pagination helpers.PaginationMeta  `json:"pagination"`
}

// ListScheduledPostsSuccessResponse is the success response envelope for GET /events/{eventID}/scheduled-posts (200).
type ListScheduledPostsSuccessResponse struct {
	Data  ListScheduledPostsResponse `json:"data"`
	Error *helpers.APIError          `json:"error"`
}

// ScheduledPostSuccessResponse is the success response envelope for the cancel and publish endpoints (200).
type ScheduledPostSuccessResponse struct {
	Data  *domain.ScheduledPost `json:"data"`
	Error *helpers.APIError     `json:"error"`
}

// ScheduleController handles drip campaign scheduling endpoints.
type ScheduleController struct {
	Logger  *slog.Logger
	Service domain.ScheduleService
}

// NewScheduleController creates a ScheduleController with the given logger and service.
func NewScheduleController(logger *slog.Logger, svc domain.ScheduleService) *ScheduleController {
	return &ScheduleController{
		Logger:  logger,
		Service: svc,
	}
}

// PreviewSchedule godoc
// @Summary Preview a drip schedule
// @Description Computes one posting slot proposal per speaker without writing anything. Speakers are spaced one per day counting back from the event date, skipping weekends when avoid_weekends is set and stepping around already-reserved slots. Conflicted speakers are flagged, not dropped. Only the event owner can preview.
// @Tags schedule
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Param body body ScheduleRequestBody true "Scheduling overrides (all optional)"
// @Success 200 {object} controllers.PreviewScheduleSuccessResponse "data contains preview, warnings, and stats"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request (no start date, no speakers, bad overrides)"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden (not owner)"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/schedule/preview [post]
func (c *ScheduleController) PreviewSchedule(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}
	var req ScheduleRequestBody
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	ownerID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	preview, err := c.Service.PreviewSchedule(r.Context(), eventID, ownerID, req.toDomain())
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
	helpers.WriteJSONSuccess(w, http.StatusOK, preview)
}

// CommitSchedule godoc
// @Summary Commit a drip schedule
// @Description Re-runs the planner and reserves one scheduled post per conflict-free proposal, all under a single batch id. Conflicted speakers are skipped and counted, not failed. Speakers without an announcement for their platform fall back to a stub post text. Only the event owner can commit.
// @Tags schedule
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Param body body ScheduleRequestBody true "Scheduling overrides (all optional)"
// @Success 200 {object} controllers.CommitScheduleSuccessResponse "data contains batch_id, counts, warnings, and per-speaker outcomes"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request (no start date, no speakers, bad overrides)"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden (not owner)"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/schedule/commit [post]
func (c *ScheduleController) CommitSchedule(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}
	var req ScheduleRequestBody
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	ownerID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	result, err := c.Service.CommitSchedule(r.Context(), eventID, ownerID, req.toDomain())
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
	helpers.WriteJSONSuccess(w, http.StatusOK, result)
}

// ListScheduledPosts godoc
// @Summary List an event's scheduled posts
// @Description Returns the event's scheduled posts, newest scheduled first, optionally filtered by status (pending, posted, failed, cancelled). Use page and page_size query params. Only the event owner can list.
// @Tags schedule
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Param status query string false "Filter by status (pending, posted, failed, cancelled)"
// @Param page query int false "Page number (default 1)"
// @Param page_size query int false "Page size (default 20, max 100)"
// @Success 200 {object} controllers.ListScheduledPostsSuccessResponse "data contains items and pagination"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden (not owner)"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/scheduled-posts [get]
func (c *ScheduleController) ListScheduledPosts(w http.ResponseWriter, r *http.Request) {
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
	status := domain.PostStatus(r.URL.Query().Get("status"))
	params := helpers.ParsePagination(r)
	posts, total, err := c.Service.ListScheduledPosts(r.Context(), eventID, ownerID, status, params)
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
	if posts == nil {
		posts = []*domain.ScheduledPost{}
	}
	meta := helpers.NewPaginationMeta(params.Page, params.PageSize, total)
	helpers.WriteJSONSuccess(w, http.StatusOK, ListScheduledPostsResponse{Items: posts, Pagination: meta})
}

// CancelScheduledPost godoc
// @Summary Cancel a scheduled post
// @Description Cancels a pending scheduled post, freeing its slot for future scheduling runs. Posted posts cannot be cancelled; failed posts have nothing left to cancel. Only the event owner can cancel.
// @Tags schedule
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Param postID path string true "Scheduled post ID (UUID)"
// @Success 200 {object} controllers.ScheduledPostSuccessResponse "data contains the cancelled post"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request (failed post)"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden (not owner)"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (already posted)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/scheduled-posts/{postID}/cancel [patch]
func (c *ScheduleController) CancelScheduledPost(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	postID := r.PathValue("postID")
	if eventID == "" || postID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID or postID")
		return
	}
	ownerID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	post, err := c.Service.CancelScheduledPost(r.Context(), postID, ownerID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "scheduled post not found")
			return
		}
		if errors.Is(err, domain.ErrForbidden) {
			helpers.WriteJSONError(w, http.StatusForbidden, helpers.ErrCodeForbidden, "forbidden")
			return
		}
		if errors.Is(err, domain.ErrAlreadyPublished) {
			helpers.WriteJSONError(w, http.StatusConflict, helpers.ErrCodeConflict, "post already published")
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
	helpers.WriteJSONSuccess(w, http.StatusOK, post)
}

// PublishScheduledPost godoc
// @Summary Publish a scheduled post now
// @Description Posts a pending scheduled post to its platform immediately, regardless of its scheduled time. Posts with platform "all" fan out to every connected platform. The post is marked posted on success and failed (with the error recorded) otherwise. Only the event owner can publish.
// @Tags schedule
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Param postID path string true "Scheduled post ID (UUID)"
// @Success 200 {object} controllers.ScheduledPostSuccessResponse "data contains the post with its final status"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request (cancelled post)"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden (not owner)"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (already posted)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/scheduled-posts/{postID}/publish [post]
func (c *ScheduleController) PublishScheduledPost(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	postID := r.PathValue("postID")
	if eventID == "" || postID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID or postID")
		return
	}
	ownerID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	post, err := c.Service.PublishScheduledPost(r.Context(), postID, ownerID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "scheduled post not found")
			return
		}
		if errors.Is(err, domain.ErrForbidden) {
			helpers.WriteJSONError(w, http.StatusForbidden, helpers.ErrCodeForbidden, "forbidden")
			return
		}
		if errors.Is(err, domain.ErrAlreadyPublished) {
			helpers.WriteJSONError(w, http.StatusConflict, helpers.ErrCodeConflict, "post already published")
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
	helpers.WriteJSONSuccess(w, http.StatusOK, post)
}
