package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/pefman/duel-arena/internal/config"
)

func main() {
	log.SetPrefix("[DUEL] ")
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := newApp(ctx, cfg)
	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
