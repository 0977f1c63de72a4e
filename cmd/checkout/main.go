package main

import (
	"context"
	"os"
	"os/signal"

	"go.uber.org/zap"

	"github.com/minimart/checkout/internal/app"
)

func main() {
	lg, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer func() { _ = lg.Sync() }()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	cfg, err := app.LoadConfig()
	if err != nil {
		lg.Fatal("load config", zap.Error(err))
	}

	if err := app.Run(ctx, lg, cfg); err != nil {
		lg.Fatal("session failed", zap.Error(err))
	}
}
