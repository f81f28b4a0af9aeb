package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/wb-go/wbf/config"
	"github.com/wb-go/wbf/zlog"

	"churchapi/cmd/buildCFG"
	"churchapi/internal/api/api"
	rabbitReader "churchapi/internal/consumerWorker"
	"churchapi/internal/mailer"
	"churchapi/internal/rabbit"
	"churchapi/internal/repo"
	"churchapi/internal/service"
)

func main() {
	zlog.Init()
	log := zlog.Logger

	cfg := config.New()
	if err := cfg.Load("config.yaml", "", "'"); err != nil {
		log.Fatal().Msgf("failed to load configuration: %v", err)
	}
	serverCfg := buildCFG.BuildServerConfig(cfg, &log)

	mongoCfg, err := buildCFG.BuildMongoConfig(cfg, &log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build Mongo config")
	}

	ctx := context.Background()
	db, err := repo.Connect(ctx, mongoCfg.URI, mongoCfg.Database)
	if err != nil {
		log.Fatal().Msgf("failed to connect to MongoDB: %v", err)
	}
	log.Info().Str("database", mongoCfg.Database).Msg("MongoDB connected successfully")

	if err := repo.EnsureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("failed to ensure indexes")
	}
	log.Info().Msg("Indexes ensured successfully")

	rabbitCfg, err := buildCFG.BuildRabbitConfig(cfg, &log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load RabbitMQ config")
	}
	rmq, err := rabbit.NewRabbit(rabbitCfg.Url, rabbitCfg.Exchange, rabbitCfg.Queue)
	if err != nil {
		log.Fatal().Msgf("Failed to connect to RabbitMQ: %v", err)
	}
	defer rmq.Close()

	serviceInstance := service.New(db, &log, rmq, serverCfg.ReceiptPrefix)

	mail := mailer.New(buildCFG.BuildSMTPConfig(cfg), &log)
	workerCtx, cancelWorkers := context.WithCancel(context.Background())
	emailWorker := rabbitReader.NewReader(rmq, serviceInstance.Donations, mail)
	go emailWorker.Start(workerCtx)

	app := api.NewRouters(&api.Routers{
		Service:       serviceInstance,
		AllowedOrigin: serverCfg.AllowedOrigin,
	})

	serverErrChan := make(chan error, 1)
	go func() {
		log.Info().Msgf("Starting server on %s", serverCfg.Port)
		if err := app.Run(":" + serverCfg.Port); err != nil {
			serverErrChan <- fmt.Errorf("failed to start server: %w", err)
		}
	}()

	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-signalChan:
		log.Info().Msgf("Received signal %s. Initiating shutdown...", sig)
	case err := <-serverErrChan:
		log.Error().Msgf("Server error: %v", err)
	}

	cancelWorkers()
	emailWorker.Stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if closer, ok := interface{}(app).(interface{ Close(context.Context) error }); ok {
		if err := closer.Close(shutdownCtx); err != nil {
			log.Error().Msgf("Error shutting down server: %v", err)
		}
	}

	log.Info().Msg("Shutdown complete")
}
