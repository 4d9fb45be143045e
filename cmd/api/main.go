package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fundchamps/internal/client"
	"fundchamps/internal/config"
	"fundchamps/internal/live"
	"fundchamps/internal/logger"
	"fundchamps/internal/repository"
	"fundchamps/internal/server"
	"fundchamps/internal/service"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

func main() {
	// load .env into os.Environ
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found (ok in prod)")
	}

	cfg := &config.Config{}
	if err := env.Parse(cfg); err != nil {
		fmt.Printf("Failed to parse config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(&cfg.Log)

	db, err := client.InitDBClient(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect database")
	}
	stripeClient := client.NewStripeClient(&cfg.Stripe, cfg.BaseURL)

	sponsorRepo := repository.NewSponsorRepository(db)
	campaignRepo := repository.NewCampaignRepository(db)
	txnRepo := repository.NewTransactionRepository(db)

	hub := live.NewHub(log)
	go hub.Run()

	stripeService := service.NewStripeService(stripeClient, db, sponsorRepo, campaignRepo, txnRepo, hub, log)
	statsService := service.NewStatsService(sponsorRepo, campaignRepo, txnRepo, &cfg.Campaign)
	sponsorService := service.NewSponsorService(db, sponsorRepo)
	campaignService := service.NewCampaignService(db, campaignRepo)

	srv := server.NewServer(cfg, log, stripeService, statsService, sponsorService, campaignService, hub)

	serverAddr := cfg.HTTP.Host + ":" + cfg.HTTP.Port

	log.Info().Str("addr", serverAddr).Str("env", cfg.Environment.Name).Msg("starting HTTP server")
	go func() {
		if err := srv.Start(serverAddr); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server error")
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	<-sigChan
	log.Info().Msg("signal received, starting graceful shutdown")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}
	log.Info().Msg("server stopped")
}
