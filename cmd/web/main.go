package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ccsfp-clinic/clinic-gateway/internal/appointment"
	"github.com/ccsfp-clinic/clinic-gateway/internal/auth"
	"github.com/ccsfp-clinic/clinic-gateway/internal/booking"
	"github.com/ccsfp-clinic/clinic-gateway/internal/clinicapi"
	"github.com/ccsfp-clinic/clinic-gateway/internal/config"
	"github.com/ccsfp-clinic/clinic-gateway/internal/consultation"
	"github.com/ccsfp-clinic/clinic-gateway/internal/dashboard"
	"github.com/ccsfp-clinic/clinic-gateway/internal/export"
	"github.com/ccsfp-clinic/clinic-gateway/internal/localstore"
	"github.com/ccsfp-clinic/clinic-gateway/internal/messaging"
	"github.com/ccsfp-clinic/clinic-gateway/internal/state"
	"github.com/ccsfp-clinic/clinic-gateway/internal/telemetry"
	"github.com/ccsfp-clinic/clinic-gateway/internal/users"
	"github.com/ccsfp-clinic/clinic-gateway/internal/web"
)

func main() {
	log.Println("clinic-admin-gateway starting")

	cfg, err := config.Load(os.Getenv("CONFIG_FILE"))
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()

	// Initialize OpenTelemetry (graceful degradation if collector unavailable)
	telemetryProvider, err := telemetry.InitProvider(ctx, telemetry.LoadConfig())
	if err != nil {
		log.Printf("Warning: OpenTelemetry initialization failed: %v", err)
		log.Println("Continuing without telemetry...")
	}
	if telemetryProvider != nil {
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := telemetryProvider.Shutdown(shutdownCtx); err != nil {
				log.Printf("Error shutting down telemetry: %v", err)
			}
		}()
	}

	metrics, err := telemetry.InitMetrics()
	if err != nil {
		log.Printf("Warning: metrics initialization failed: %v", err)
	}

	// Initialize RabbitMQ publisher (graceful degradation if unavailable)
	publisher, err := messaging.NewPublisher(cfg.RabbitMQURL)
	if err != nil {
		log.Printf("Warning: RabbitMQ connection failed: %v", err)
		log.Println("Continuing without event publishing...")
		publisher = nil
	}
	if publisher != nil {
		defer publisher.Close()
	}

	client := clinicapi.NewClient(cfg.BackendURL)
	if metrics != nil {
		client.SetMetrics(metrics)
	}

	snapshots := localstore.New(cfg.SnapshotPath)

	// Display state and caches
	app := state.New()
	consultCache := consultation.NewCache(client, metrics)
	consultViews := consultation.NewViews(consultCache, app)
	apptCache := appointment.NewCache(client, metrics)
	directory := users.NewDirectory(client, metrics)

	// Domain services
	consultService := consultation.NewService(client, consultCache, consultViews, publisher)
	apptService := appointment.NewService(client, apptCache, publisher)
	userService := users.NewService(client, directory, publisher)
	engine := booking.NewEngine(client, snapshots, publisher, metrics)

	stats := dashboard.NewStats(
		consultCache,
		dashboard.CounterFunc(apptCache.AppointmentCount),
		dashboard.CounterFunc(apptCache.RecordCount),
		directory,
	)
	chart := dashboard.NewChart()

	sessions := auth.NewSessions(cfg.SessionSecret)

	server := web.NewServer(app, consultCache, consultViews, apptCache, directory, engine, stats, chart)

	router := web.SetupRouter(web.Handlers{
		Server:        server,
		Sessions:      sessions,
		Metrics:       metrics,
		Consultations: consultation.NewHandler(consultService, consultViews),
		Appointments:  appointment.NewHandler(apptService),
		Booking:       booking.NewHandler(engine),
		Users:         users.NewHandler(userService, sessions),
		Export:        export.NewHandler(consultViews),
	})

	srv := &http.Server{
		Addr:         cfg.ListenAddr,
		Handler:      web.CORSMiddleware(router),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("clinic-admin-gateway listening on %s (backend: %s)", cfg.ListenAddr, cfg.BackendURL)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Forced shutdown: %v", err)
	}
	log.Println("clinic-admin-gateway stopped")
}
