package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/soundgrid/sequencer-backend/internal/app"
)

func main() {
	// Missing .env is fine in containerized deployments.
	_ = godotenv.Load()

	a, err := app.New()
	if err != nil {
		fmt.Printf("Failed to init app: %v\n", err)
		os.Exit(1)
	}
	defer a.Close()

	if err := a.Run(); err != nil {
		a.Log.Error("Server failed", "error", err)
	}
}
