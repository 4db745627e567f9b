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

// ConnectSocialAccountRequest is the request body for POST /social-accounts.
// Connecting a platform that is already connected replaces the stored
// handle and token.
type ConnectSocialAccountRequest struct {
	Platform    domain.Platform `json:"platform"`
	Handle      string          `json:"handle"`
	AccessToken string          `json:"access_token"`
	ExpiresAt   *time.Time      `json:"expires_at"`
}

// Validate implements Validator.
func (c ConnectSocialAccountRequest) Validate() []string {
	var errs []string
	if c.Platform == "" {
		errs = append(errs, "platform is required")
	} else if c.Platform == domain.PlatformAll || !domain.ValidPlatform(c.Platform) {
		errs = append(errs, "platform must be \"linkedin\", \"twitter\", or \"instagram\"")
	}
	if strings.TrimSpace(c.Handle) == "" {
		errs = append(errs, "handle is required")
	}
	if c.AccessToken == "" {
		errs = append(errs, "access_token is required")
	}
	return errs
}

// ConnectSocialAccountSuccessResponse is the success response envelope for POST /social-accounts (201).
type ConnectSocialAccountSuccessResponse struct {
	Data  *domain.SocialAccount `json:"data"`
	Error *helpers.APIError     `json:"error"`
}

// ListSocialAccountsSuccessResponse is the success response envelope for GET /social-accounts (200).
type ListSocialAccountsSuccessResponse struct {
	Data  []*domain.SocialAccount `json:"data"`
	Error *helpers.APIError       `json:"error"`
}

// DisconnectResponse is the data payload for DELETE /social-accounts/{platform} (200).
type DisconnectResponse struct {
	Status string `json:"status"`
}

// DisconnectSuccessResponse is the success response envelope for DELETE /social-accounts/{platform} (200).
type DisconnectSuccessResponse struct {
	Data  DisconnectResponse `json:"data"`
	Error *helpers.APIError  `json:"error"`
}

// SocialAccountController handles platform connection endpoints.
type SocialAccountController struct {
	Logger  *slog.Logger
	Service domain.SocialAccountService
}

// NewSocialAccountController creates a SocialAccountController with the given logger and service.
func NewSocialAccountController(logger *slog.Logger, svc domain.SocialAccountService) *SocialAccountController {
	return &SocialAccountController{
		Logger:  logger,
		Service: svc,
	}
}

// Connect godoc
// @Summary Connect a social account
// @Description Stores the caller's handle and access token for one platform (linkedin, twitter, or instagram). Reconnecting an already-connected platform replaces the stored credentials. The token is never returned in responses.
// @Tags social-accounts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body ConnectSocialAccountRequest true "Connection data"
// @Success 201 {object} controllers.ConnectSocialAccountSuccessResponse "data contains the connection (without the token)"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /social-accounts [post]
func (c *SocialAccountController) Connect(w http.ResponseWriter, r *http.Request) {
	var req ConnectSocialAccountRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	account, err := c.Service.Connect(r.Context(), userID, req.Platform, req.Handle, req.AccessToken, req.ExpiresAt)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, account)
}

// ListConnections godoc
// @Summary List connected social accounts
// @Description Returns the caller's platform connections with handles and expiry times. Access tokens are never included.
// @Tags social-accounts
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.ListSocialAccountsSuccessResponse "data contains the connections"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /social-accounts [get]
func (c *SocialAccountController) ListConnections(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	accounts, err := c.Service.ListConnections(r.Context(), userID)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	if accounts == nil {
		accounts = []*domain.SocialAccount{}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, accounts)
}

// Disconnect godoc
// @Summary Disconnect a social account
// @Description Removes the caller's connection for the given platform. Scheduled posts targeting the platform will fail at publish time until it is reconnected.
// @Tags social-accounts
// @Produce json
// @Security BearerAuth
// @Param platform path string true "Platform (linkedin, twitter, instagram)"
// @Success 200 {object} controllers.DisconnectSuccessResponse "data contains status"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /social-accounts/{platform} [delete]
func (c *SocialAccountController) Disconnect(w http.ResponseWriter, r *http.Request) {
	platform := r.PathValue("platform")
	if platform == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing platform")
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	if err := c.Service.Disconnect(r.Context(), userID, domain.Platform(platform)); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "social account not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, DisconnectResponse{Status: "disconnected"})
}
