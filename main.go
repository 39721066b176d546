package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/catalog-admin/api"
	"github.com/rpupo63/catalog-admin/catalog"
	"github.com/rpupo63/catalog-admin/config"
	"github.com/rpupo63/catalog-admin/dashboard"
)

func main() {
	fmt.Println("Initializing catalog admin...")

	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Warning: Error loading .env file: %v\n", err)
	}

	settings, err := config.Load(config.New())
	configureLogger(settings)
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	client := catalog.NewClient(settings.CatalogBaseURL,
		catalog.WithTimeout(settings.CatalogTimeout),
		catalog.WithMetrics(catalog.NewMetrics(registry)),
		catalog.WithLogger(log.With().Str("component", "catalogClient").Logger()),
	)
	log.Info().Str("baseURL", client.BaseURL()).Msg("Catalog API configured")

	authenticator, err := dashboard.NewStaticCredentials(
		settings.AdminUsername,
		settings.AdminPassword,
		settings.AdminPasswordHash,
		log.With().Str("component", "authenticator").Logger(),
	)
	if err != nil {
		log.Fatal().Err(err).Msg("Error configuring admin credentials")
	}

	// Both senders may fire; the buffer lets the loser exit without blocking.
	errChannel := make(chan error, 2)

	server, err := api.NewServer(settings, api.Dependencies{
		Catalog:       catalog.New(client),
		Authenticator: authenticator,
		Registry:      registry,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Error initializing server")
	}

	go server.Start(errChannel)

	// Listen for interrupt signals to gracefully shutdown the server
	go listenToInterrupt(errChannel)

	fatalErr := <-errChannel
	log.Info().Msgf("Closing server: %v", fatalErr)

	server.ShutdownGracefully(30 * time.Second)
}

// configureLogger sets the global level and, for LOG_FORMAT=console, a human-readable writer.
func configureLogger(settings config.Settings) {
	level, err := zerolog.ParseLevel(settings.LogLevel)
	if err != nil || settings.LogLevel == "" {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if settings.LogFormat == "console" {
		log.Logger = zerolog.New(zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.RFC3339,
		}).With().Timestamp().Logger()
		return
	}
	log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
}

// listenToInterrupt waits for SIGINT or SIGTERM and then sends an error to the error channel.
func listenToInterrupt(errChannel chan<- error) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	errChannel <- fmt.Errorf("%s", <-c)
}
