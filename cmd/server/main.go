package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/go-chi/chi/v5"
	"github.com/mannyandcelesti/rsvp-api/internal/auth"
	"github.com/mannyandcelesti/rsvp-api/internal/config"
	"github.com/mannyandcelesti/rsvp-api/internal/database"
	"github.com/mannyandcelesti/rsvp-api/internal/handlers"
	"github.com/mannyandcelesti/rsvp-api/internal/notifier"
	"github.com/mannyandcelesti/rsvp-api/internal/ratelimit"
	"github.com/mannyandcelesti/rsvp-api/internal/store"
	"github.com/rs/zerolog"
)

const (
	loginMaxAttempts   = 5
	loginLockoutWindow = 15 * time.Minute
)

func main() {
	log := zerolog.New(os.Stdout).With().Timestamp().Logger()

	// Load Configuration
	cfg := config.LoadConfig()

	// Connect to Database
	db := database.Connect(cfg)

	weddingStore := store.New(db, store.WeddingTable)
	babyShowerStore := store.New(db, store.BabyShowerTable)

	// Notification channels; each is optional.
	var email *notifier.ResendClient
	if cfg.ResendAPIKey != "" {
		email = notifier.NewResendClient(cfg.ResendAPIKey, cfg.ResendFromEmail)
	} else {
		log.Warn().Msg("RESEND_API_KEY not configured - email notifications disabled")
	}

	var sms *notifier.TwilioClient
	if cfg.SMSEnabled && cfg.TwilioAccountSID != "" && cfg.TwilioAuthToken != "" && cfg.TwilioPhoneNumber != "" {
		sms = notifier.NewTwilioClient(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioPhoneNumber)
	} else {
		log.Warn().Msg("SMS notifications disabled")
	}

	var admin *notifier.DiscordNotifier
	if cfg.DiscordBotToken != "" && cfg.DiscordAlertsChannelID != "" {
		session, err := discordgo.New("Bot " + cfg.DiscordBotToken)
		if err != nil {
			log.Warn().Err(err).Msg("Discord notifier not initialized")
		} else {
			admin = notifier.NewDiscordNotifier(session, cfg.DiscordAlertsChannelID)
		}
	}

	dispatcher := notifier.NewDispatcher(notifier.NewService(email, sms, admin), log)

	// Shared limiter state across all handlers.
	limiter := ratelimit.New()
	loginLimiter := ratelimit.NewLoginLimiter(loginMaxAttempts, loginLockoutWindow)

	authService := auth.NewService(cfg)
	loginHandler := handlers.NewLoginHandler(authService, loginLimiter, log)

	wedding := handlers.NewRSVPHandler(weddingStore, limiter, authService, dispatcher, handlers.Event{
		Label:    "wedding",
		Deadline: cfg.Deadline(cfg.WeddingDeadline),
		Info: notifier.Event{
			Label:        "wedding",
			Hosts:        "Manny & Celesti",
			EditURL:      cfg.SiteURL + "/modify-rsvp.html",
			DeadlineText: cfg.Deadline(cfg.WeddingDeadline).Format("January 2, 2006"),
		},
	}, log)

	babyShower := handlers.NewRSVPHandler(babyShowerStore, limiter, authService, dispatcher, handlers.Event{
		Label:    "baby shower",
		Deadline: cfg.Deadline(cfg.BabyShowerDeadline),
		Info: notifier.Event{
			Label:        "baby shower",
			Hosts:        "Manny & Celesti",
			EditURL:      cfg.SiteURL + "/baby-shower-modify-rsvp.html",
			DeadlineText: cfg.Deadline(cfg.BabyShowerDeadline).Format("January 2, 2006"),
		},
	}, log)

	// Initialize Router
	r := chi.NewRouter()

	// Register Routes
	handlers.RegisterRoutes(r, cfg, loginHandler, wedding, babyShower)

	// Start Server
	log.Info().Str("port", cfg.Port).Msg("starting server")
	if err := http.ListenAndServe(fmt.Sprintf(":%s", cfg.Port), r); err != nil {
		log.Fatal().Err(err).Msg("failed to start server")
	}
}
