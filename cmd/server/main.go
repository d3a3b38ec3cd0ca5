package main

import (
	"context"
	"log"

	"hrsys/internal/app/server"
	"hrsys/internal/platform/config"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}

	app, err := server.New(context.Background(), cfg)
	if err != nil {
		log.Fatalf("startup failed: %v", err)
	}
	defer app.Close()

	if err := app.Run(); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
