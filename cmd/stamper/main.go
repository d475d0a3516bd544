package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"image-stamper/internal/app"
	"image-stamper/internal/config"

	"github.com/wb-go/wbf/zlog"
)

func main() {
	zlog.Init()

	cfg, err := config.MustLoad()
	if err != nil {
		zlog.Logger.Fatal().Err(err).Msg("Failed to load config")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	stamperApp, err := app.NewApp(ctx, cfg, &zlog.Logger)
	if err != nil {
		zlog.Logger.Fatal().Err(err).Msg("Failed to create app")
	}

	if err := stamperApp.Run(ctx); err != nil {
		zlog.Logger.Fatal().Err(err).Msg("Batch failed")
	}

	zlog.Logger.Info().Msg("Batch completed successfully")
	os.Exit(0)
}
