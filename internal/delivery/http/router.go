package http

import (
	"log/slog"
	"net/http"

	"announcehub/internal/delivery/http/controllers"
	"announcehub/internal/delivery/http/middleware"
	"announcehub/internal/domain"

	httpSwagger "github.com/swaggo/http-swagger"
)

// Controllers bundles the handlers the router mounts.
type Controllers struct {
	User          *controllers.UserController
	Event         *controllers.EventController
	Speaker       *controllers.SpeakerController
	Announcement  *controllers.AnnouncementController
	Schedule      *controllers.ScheduleController
	SocialAccount *controllers.SocialAccountController
}

// NewRouter initializes the HTTP router with all application routes.
// Everything except signup, login, and the swagger UI requires a Bearer token.
func NewRouter(logger *slog.Logger, verifier domain.TokenVerifier, c Controllers) *http.ServeMux {
	mux := http.NewServeMux()
	auth := middleware.RequireAuth(verifier, logger)

	// Auth
	mux.HandleFunc("POST /auth/signup", c.User.SignUp)
	mux.HandleFunc("POST /auth/login", c.User.Login)

	// Users
	mux.HandleFunc("GET /users/me", auth(c.User.GetMe))
	mux.HandleFunc("PATCH /users/me", auth(c.User.UpdateMe))

	// Events
	mux.HandleFunc("POST /events", auth(c.Event.CreateEvent))
	mux.HandleFunc("GET /events/me", auth(c.Event.ListMyEvents))
	mux.HandleFunc("GET /events/{eventID}", auth(c.Event.GetEventByID))
	mux.HandleFunc("PATCH /events/{eventID}", auth(c.Event.UpdateEvent))
	mux.HandleFunc("DELETE /events/{eventID}", auth(c.Event.DeleteEvent))

	// Speakers
	mux.HandleFunc("POST /events/{eventID}/speakers", auth(c.Speaker.AddSpeaker))
	mux.HandleFunc("GET /events/{eventID}/speakers", auth(c.Speaker.ListSpeakers))
	mux.HandleFunc("GET /events/{eventID}/speakers/{speakerID}", auth(c.Speaker.GetSpeaker))
	mux.HandleFunc("PATCH /events/{eventID}/speakers/{speakerID}", auth(c.Speaker.UpdateSpeaker))
	mux.HandleFunc("DELETE /events/{eventID}/speakers/{speakerID}", auth(c.Speaker.RemoveSpeaker))

	// Announcements
	mux.HandleFunc("POST /events/{eventID}/announcements/generate", auth(c.Announcement.GenerateAnnouncements))
	mux.HandleFunc("GET /events/{eventID}/announcements", auth(c.Announcement.ListAnnouncements))
	mux.HandleFunc("PATCH /events/{eventID}/announcements/{announcementID}", auth(c.Announcement.UpdateAnnouncement))
	mux.HandleFunc("DELETE /events/{eventID}/announcements/{announcementID}", auth(c.Announcement.DeleteAnnouncement))
	mux.HandleFunc("POST /events/{eventID}/announcements/{announcementID}/publish", auth(c.Announcement.PublishAnnouncement))

	// Drip schedule
	mux.HandleFunc("POST /events/{eventID}/schedule/preview", auth(c.Schedule.PreviewSchedule))
	mux.HandleFunc("POST /events/{eventID}/schedule/commit", auth(c.Schedule.CommitSchedule))
	mux.HandleFunc("GET /events/{eventID}/scheduled-posts", auth(c.Schedule.ListScheduledPosts))
	mux.HandleFunc("PATCH /events/{eventID}/scheduled-posts/{postID}/cancel", auth(c.Schedule.CancelScheduledPost))
	mux.HandleFunc("POST /events/{eventID}/scheduled-posts/{postID}/publish", auth(c.Schedule.PublishScheduledPost))

	// Social accounts
	mux.HandleFunc("POST /social-accounts", auth(c.SocialAccount.Connect))
	mux.HandleFunc("GET /social-accounts", auth(c.SocialAccount.ListConnections))
	mux.HandleFunc("DELETE /social-accounts/{platform}", auth(c.SocialAccount.Disconnect))

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
