package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"

	"github.com/Kr4ToS117/Site-Location/internal/app"
	"github.com/Kr4ToS117/Site-Location/internal/http/handlers"
	"github.com/Kr4ToS117/Site-Location/internal/mailer"
	"github.com/Kr4ToS117/Site-Location/internal/payments"
	"github.com/Kr4ToS117/Site-Location/internal/pricing"
	"github.com/Kr4ToS117/Site-Location/internal/repo/postgres"
	"github.com/Kr4ToS117/Site-Location/internal/service"
	"github.com/Kr4ToS117/Site-Location/pkg/config"
	"github.com/Kr4ToS117/Site-Location/pkg/database"
	"github.com/Kr4ToS117/Site-Location/pkg/events"
	"github.com/Kr4ToS117/Site-Location/pkg/logger"
	mw "github.com/Kr4ToS117/Site-Location/pkg/middleware"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	ctx := context.Background()
	pool, err := database.Connect(ctx, cfg.Database)
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	migrator, err := app.NewMigrator(pool)
	if err != nil {
		logger.Error("Failed to initialize migrator", "error", err)
		os.Exit(1)
	}
	if err := migrator.Run(ctx); err != nil {
		logger.Error("Failed to apply migrations", "error", err)
		os.Exit(1)
	}
	migrator.Close()

	// Events are optional: without NATS the bus is a no-op.
	var eventBus events.EventBus = events.NoopEventBus{}
	if cfg.NATS.URL != "" {
		natsBus, err := events.NewNATSEventBus(cfg.NATS.URL)
		if err != nil {
			logger.Warn("NATS unavailable, events disabled", "error", err)
		} else {
			eventBus = natsBus
			defer natsBus.Close()
		}
	}

	mailService := newMailer(cfg)

	bookingRepo := postgres.NewBookingRepo(pool)
	rateRepo := postgres.NewRateRepo(pool)

	pricingService := service.NewPricingService(pricing.DefaultConfig(), rateRepo)
	bookingService := service.NewBookingService(bookingRepo, pricingService, eventBus, mailService)

	h := handlers.New(bookingService, pricingService, payments.NewGateway(cfg.Stripe.SecretKey), eventBus)

	r := chi.NewRouter()

	r.Use(mw.RequestID)
	r.Use(mw.ServiceName("booking-api"))
	r.Use(mw.Logging)
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					logger.ErrorContext(r.Context(), "Panic recovered", "error", err)
					http.Error(w, "Internal server error", http.StatusInternalServerError)
				}
			}()
			next.ServeHTTP(w, r)
		})
	})
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.Server.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "Idempotency-Key"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(mw.Health)

	var createBooking http.Handler = http.HandlerFunc(h.CreateBooking)
	if cfg.Redis.URL != "" {
		store, err := mw.NewRedisIdempotencyStore(cfg.Redis.URL)
		if err != nil {
			logger.Warn("Redis unavailable, idempotency disabled", "error", err)
		} else {
			createBooking = mw.IdempotencyMiddleware(store)(createBooking)
		}
	}

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"message":"Apartment Booking API is running"}`))
	})

	r.Route("/api", func(r chi.Router) {
		r.Route("/bookings", func(r chi.Router) {
			r.Get("/", h.ListBookings)
			r.Method(http.MethodPost, "/", createBooking)
			r.Get("/{id}", h.GetBooking)
			r.Put("/{id}/cancel", h.CancelBooking)
		})

		r.Route("/pricing", func(r chi.Router) {
			r.Get("/", h.GetPricing)
			r.Get("/configuration", h.GetPricingConfiguration)
			r.Get("/dates/{checkIn}/{checkOut}", h.QuoteDates)
			r.Post("/dates", h.SetDateRate)
		})

		r.Get("/availability/{checkIn}/{checkOut}", h.CheckAvailability)

		r.Post("/create-payment-intent", h.CreatePaymentIntent)
		r.Post("/confirm-payment", h.ConfirmPayment)
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		logger.Info("Shutting down booking API...")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			logger.Error("Booking API shutdown error", "error", err)
		}
	}()

	logger.Info("Starting booking API", "port", cfg.Server.Port)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Booking API error", "error", err)
		os.Exit(1)
	}
}

func newMailer(cfg *config.Config) mailer.Service {
	switch {
	case cfg.Email.DevMode:
		return mailer.NewDevMailer()
	case cfg.Email.MailerSendKey != "":
		return mailer.NewMailer(cfg.Email.MailerSendKey, cfg.Email.FromName, cfg.Email.SMTPFrom)
	default:
		return mailer.NewSMTPMailer(
			cfg.Email.SMTPHost, cfg.Email.SMTPPort, cfg.Email.SMTPFrom,
			cfg.Email.SMTPUser, cfg.Email.SMTPPass, cfg.Email.SMTPUseTLS,
		)
	}
}
