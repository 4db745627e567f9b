package cmd

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"announcehub/config"
	"announcehub/internal/adapters/auth"
	"announcehub/internal/adapters/email"
	"announcehub/internal/adapters/social"
	"announcehub/internal/adapters/textgen"
	delivery "announcehub/internal/delivery/http"
	"announcehub/internal/delivery/http/controllers"
	"announcehub/internal/delivery/http/middleware"
	"announcehub/internal/repository/postgres"
	"announcehub/internal/services"

	_ "github.com/lib/pq"
	"github.com/spf13/cobra"
)

const bcryptCost = 12

func newServeCmd() *cobra.Command {
	var migrateUp bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			logger := config.NewLogger()

			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			db, err := sql.Open("postgres", cfg.DBUrl)
			if err != nil {
				return fmt.Errorf("open database: %w", err)
			}
			defer db.Close()
			if err := db.PingContext(ctx); err != nil {
				return fmt.Errorf("ping database: %w", err)
			}

			if migrateUp {
				if err := postgres.Migrate(ctx, db); err != nil {
					return err
				}
			}

			// Repositories
			userRepo := postgres.NewUserRepository(db)
			roleRepo := postgres.NewRoleRepository(db)
			eventRepo := postgres.NewEventRepository(db)
			speakerRepo := postgres.NewSpeakerRepository(db)
			announcementRepo := postgres.NewAnnouncementRepository(db)
			postRepo := postgres.NewScheduledPostRepository(db)
			socialAccountRepo := postgres.NewSocialAccountRepository(db)

			// Adapters
			hasher := auth.NewBcryptHasher(bcryptCost)
			tokenIssuer := auth.NewJWTIssuer(cfg.JWTSecret, cfg.JWTExpiry)
			tokenVerifier := auth.NewJWTVerifier(cfg.JWTSecret)
			mailer, err := email.NewMailer(email.MailerConfig{
				Provider:    cfg.Email.Provider,
				FromAddress: cfg.Email.FromAddress,
				FromName:    cfg.Email.FromName,
				SES: email.SESConfig{
					Region:             cfg.Email.SES.Region,
					AccessKeyID:        cfg.Email.SES.AccessKeyID,
					SecretAccessKey:    cfg.Email.SES.SecretAccessKey,
					InsecureSkipVerify: cfg.Email.SES.InsecureSkipVerify,
				},
			}, logger)
			if err != nil {
				return fmt.Errorf("create mailer: %w", err)
			}
			templateRenderer, err := email.NewTemplateRenderer()
			if err != nil {
				return fmt.Errorf("load email templates: %w", err)
			}
			copyGen := textgen.NewChatClient(textgen.Config{
				BaseURL: cfg.TextGen.BaseURL,
				APIKey:  cfg.TextGen.APIKey,
				Model:   cfg.TextGen.Model,
			}, nil)
			publishers := social.NewPublishers(social.Config{
				LinkedInBaseURL:  cfg.Social.LinkedInBaseURL,
				TwitterBaseURL:   cfg.Social.TwitterBaseURL,
				InstagramBaseURL: cfg.Social.InstagramBaseURL,
			}, &http.Client{Timeout: 30 * time.Second})

			// Services
			emailService := services.NewEmailService(mailer, templateRenderer)
			userService := services.NewUserService(logger, userRepo, roleRepo, hasher, tokenIssuer, cfg.JWTExpiry, emailService, cfg.ContextTimeout)
			eventService := services.NewEventService(eventRepo, speakerRepo, cfg.ContextTimeout)
			speakerService := services.NewSpeakerService(eventRepo, speakerRepo, cfg.ContextTimeout)
			announcementService := services.NewAnnouncementService(eventRepo, speakerRepo, announcementRepo, socialAccountRepo, copyGen, publishers, cfg.ContextTimeout)
			scheduleService := services.NewDripService(eventRepo, speakerRepo, postRepo, announcementRepo, socialAccountRepo, publishers, userRepo, emailService, cfg.ContextTimeout)
			socialAccountService := services.NewSocialAccountService(socialAccountRepo, cfg.ContextTimeout)

			mux := delivery.NewRouter(logger, tokenVerifier, delivery.Controllers{
				User:          controllers.NewUserController(logger, userService),
				Event:         controllers.NewEventController(logger, eventService),
				Speaker:       controllers.NewSpeakerController(logger, speakerService),
				Announcement:  controllers.NewAnnouncementController(logger, announcementService),
				Schedule:      controllers.NewScheduleController(logger, scheduleService),
				SocialAccount: controllers.NewSocialAccountController(logger, socialAccountService),
			})
			handler := middleware.CORS(cfg.CORSOrigins, middleware.LoggingMiddleware(logger, mux))

			server := &http.Server{
				Addr:              ":" + cfg.Port,
				Handler:           handler,
				ReadHeaderTimeout: 15 * time.Second,
				IdleTimeout:       60 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				logger.Info("server listening", "addr", server.Addr, "env", cfg.Environment)
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
			}()

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
			}

			logger.Info("shutting down")
			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer shutdownCancel()
			if err := server.Shutdown(shutdownCtx); err != nil {
				return fmt.Errorf("graceful shutdown: %w", err)
			}
			logger.Info("server stopped")
			return nil
		},
	}

	cmd.Flags().BoolVar(&migrateUp, "migrate", true, "run database migrations on startup")

	return cmd
}
