package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/khanabid1694/sj-server/internal/config"
	"github.com/khanabid1694/sj-server/internal/db"
	"github.com/khanabid1694/sj-server/internal/handler"
	"github.com/khanabid1694/sj-server/internal/notify"
	"github.com/khanabid1694/sj-server/internal/order"
	"github.com/khanabid1694/sj-server/internal/product"
	"github.com/khanabid1694/sj-server/internal/storage"
	"github.com/khanabid1694/sj-server/internal/transport"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	log.Logger = log.With().Str("service", "sj-server").Logger()

	log.Info().Msg("SJ server starting...")

	cfg, err := config.Load(".env")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}

	if cfg.App.Env == "development" {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	pg, err := db.New(context.Background(), *cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer pg.Close()

	if err := pg.ApplyMigrations(*cfg); err != nil {
		log.Fatal().Err(err).Msg("Failed to apply migrations")
	}

	uploader, err := storage.NewCloudinary(cfg.Cloudinary.CloudName, cfg.Cloudinary.APIKey, cfg.Cloudinary.APISecret)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to init object store client")
	}

	notifier := notify.NewWhatsApp(cfg.WhatsApp.PhoneNumberID, cfg.WhatsApp.Token, cfg.WhatsApp.AdminPhone)

	productSvc := product.NewService(product.NewRepository(pg.Pool), uploader)
	orderSvc := order.NewService(notifier, cfg.App.NotifyAsync)

	router := transport.NewRouter(transport.Deps{
		Products: handler.NewProductHandler(productSvc),
		Orders:   handler.NewOrderHandler(orderSvc),
		DB:       pg,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.App.Port).Bool("notify_async", cfg.App.NotifyAsync).Msg("Starting HTTP server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan
	log.Info().Msg("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Shutdown failed")
	}
	log.Info().Msg("Server stopped")
}
