package main

import (
	"log"

	"github.com/joho/godotenv"

	"sheettint/internal/config"
	"sheettint/ui"
)

func main() {
	// optional .env overrides
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	app := ui.NewApp(ui.Config{
		Port:                cfg.Server.Port,
		HeaderRows:          cfg.Reader.HeaderRows,
		DefaultInstructions: cfg.Export.Instructions,
	})

	log.Printf("[Server] Listening on :%s", cfg.Server.Port)
	if err := app.Run(); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}
