package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/roomboard/roomboard/internal/api"
	"github.com/roomboard/roomboard/internal/config"
	"github.com/roomboard/roomboard/internal/provider"
	"github.com/roomboard/roomboard/internal/repository"
	"github.com/roomboard/roomboard/internal/service"
	"github.com/roomboard/roomboard/internal/usage"
	"github.com/roomboard/roomboard/internal/web"
)

func main() {
	log := zerolog.New(os.Stdout).Level(config.GetLogLevel()).With().Timestamp().Logger()

	// Load configuration
	providerConfig := config.GetProviderConfig()
	redisConfig := config.GetRedisConfig()
	serverConfig := config.GetServerConfig()

	// Initialize the repository using the factory
	repo, err := repository.NewRepository(redisConfig)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize repository")
	}

	// Check if we're using a Redis repository, and if so, close it properly on exit
	if redisRepo, ok := repo.(interface{ Close() error }); ok {
		defer func() {
			if err := redisRepo.Close(); err != nil {
				log.Error().Err(err).Msg("error closing Redis connection")
			}
		}()
	}

	// The provider client is constructed once and shared by everything that
	// talks to the room provider
	client := provider.NewClient(providerConfig, log)

	aggregator := usage.NewAggregator(client, usage.Config{
		PageSize:       providerConfig.PageSize,
		EnrichLimit:    providerConfig.EnrichLimit,
		EnrichInterval: providerConfig.EnrichInterval,
	}, log)

	// Initialize the service layer
	usageService := service.NewUsageService(aggregator, client, providerConfig.PageSize, log)
	accountService := service.NewAccountService(repo, log)

	// Set up web UI routes
	webHandler, err := web.NewHandler(usageService, "./internal/web/templates", serverConfig.DashboardToken, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize web handler")
	}

	// Register the SSE update callback with the usage service
	usageService.RegisterUpdateCallback(webHandler.Streamer().NotifyDashboardUpdate)

	// Set up API routes
	mux := api.SetupRoutes(usageService, accountService, client, client, log)

	// Set up web UI routes
	webHandler.SetupRoutes(mux)

	// Start the background dashboard refresher
	refreshCtx, cancelRefresh := context.WithCancel(context.Background())
	defer cancelRefresh()

	refresher := web.NewRefresher(usageService, serverConfig.DashboardToken, serverConfig.DashboardRefreshInterval, log)
	go refresher.Run(refreshCtx)

	// Configure the HTTP server
	server := &http.Server{
		Addr:         ":" + serverConfig.Port,
		Handler:      api.LogRequests(mux, log),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 0, // Disable write timeout for SSE connections
		IdleTimeout:  60 * time.Second,
	}

	// Channel to listen for errors coming from the listener.
	serverErrors := make(chan error, 1)

	// Start the server in a goroutine
	go func() {
		log.Info().Str("port", serverConfig.Port).Msg("starting roomboard server")
		serverErrors <- server.ListenAndServe()
	}()

	// Channel to listen for an interrupt or terminate signal from the OS
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until a signal is received or an error occurs
	select {
	case err := <-serverErrors:
		log.Fatal().Err(err).Msg("server error")

	case <-shutdown:
		log.Info().Msg("shutting down server")

		// Stop the refresher and close SSE connections first
		cancelRefresh()
		webHandler.Shutdown()

		// Create a deadline to wait for
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		// Doesn't block if there are no connections, but will otherwise
		// wait until the timeout deadline.
		if err := server.Shutdown(ctx); err != nil {
			server.Close()
			log.Fatal().Err(err).Msg("error shutting down server")
		}

		log.Info().Msg("server gracefully stopped")
	}
}
