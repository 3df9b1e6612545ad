package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/maxence-charriere/go-app/v9/pkg/app"

	httpapi "github.com/i474232898/soaring-forecast/internal/api/http"
	"github.com/i474232898/soaring-forecast/internal/config"
	"github.com/i474232898/soaring-forecast/internal/forecast"
	"github.com/i474232898/soaring-forecast/internal/forecast/datapoint"
	"github.com/i474232898/soaring-forecast/internal/health"
	"github.com/i474232898/soaring-forecast/internal/scheduler"
	"github.com/i474232898/soaring-forecast/internal/store"
	"github.com/i474232898/soaring-forecast/internal/ui"
)

const serviceName = "soaring-forecast"

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}

	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Shared HTTP client for outbound DataPoint calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	snapshots, err := store.Open(cfg.StoreDriver, cfg.SQLitePath, cfg.StoreMaxHistory, cfg.StoreMaxAge)
	if err != nil {
		log.Fatalf("failed to open store: %v", err)
	}
	defer snapshots.Close()

	var clientOpts []datapoint.Option
	if cfg.DebugDumpPath != "" {
		clientOpts = append(clientOpts, datapoint.WithDebugDump(cfg.DebugDumpPath))
	}
	client := datapoint.NewClient(httpClient, cfg.MetOfficeAPIKey, clientOpts...)

	// Core service: cached DataPoint forecasts.
	service := forecast.NewService(client, snapshots, cfg.CacheTTL, cfg.Timezone)

	// Optional cache warmer.
	sched := scheduler.New(cfg.Locations, cfg.RefreshInterval, service)
	if err := sched.Start(); err != nil {
		log.Fatalf("failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	// Page shell and wasm bundle.
	app.Route("/", &ui.Page{})
	page := &app.Handler{
		Name:        "Soaring Forecast",
		Description: "Paragliding forecast for the South Downs",
		RawHeaders: []string{
			`<link rel="stylesheet" href="https://cdn.jsdelivr.net/npm/@mdi/font@7.4.47/css/materialdesignicons.min.css">`,
		},
		Styles: []string{
			"/web/app.css",
		},
	}

	srv := httpapi.NewApp(serviceName)
	httpapi.RegisterHealth(srv, health.NewChecker(serviceName))
	httpapi.RegisterRoutes(srv, service, httpapi.Options{
		DefaultLocation: cfg.LocationID,
		HasLocation:     cfg.HasLocation,
	})
	httpapi.MountPage(srv, page)

	go func() {
		if err := srv.Listen(":" + cfg.Port); err != nil {
			log.Printf("fiber server stopped: %v", err)
		}
	}()
	log.Printf("INFO: %s listening on :%s", serviceName, cfg.Port)

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("error during shutdown: %v", err)
	}
}
