package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/avishek100/metmanichaudhary/internal/bootstrap"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "path to config file")
	flag.Parse()

	app, cleanup, err := bootstrap.Init(*configPath)
	if err != nil {
		log.Fatalf("init failed: %v", err)
	}

	go func() {
		addr := fmt.Sprintf(":%d", app.Config.App.Port)
		app.Logger.Info("listening", zap.String("addr", addr))
		if err := app.Fiber.Listen(addr); err != nil {
			app.Logger.Fatal("listen failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	app.Logger.Info("shutdown requested")

	ctx, cancel := context.WithTimeout(context.Background(), app.Config.ShutdownTimeout)
	defer cancel()
	cleanup(ctx)
	app.Logger.Info("shutdown complete")
}
