// Script to seed sample drivers and trips.
// Usage: go run scripts/seed/main.go
package main

import (
	"fmt"

	"github.com/blaisecz/driver-fatigue/internal/config"
	"github.com/blaisecz/driver-fatigue/internal/seed"
)

func main() {
	cfg := config.Load()
	log := config.NewLogger(cfg)

	db, err := config.NewDatabase(cfg, log)
	if err != nil {
		log.WithError(err).Fatal("Failed to connect to database")
	}

	if err := seed.Run(db, log); err != nil {
		log.WithError(err).Fatal("Seed failed")
	}

	fmt.Println("\nSample driver IDs for testing:")
	for _, id := range seed.DriverIDs() {
		fmt.Printf("  %s\n", id)
	}
}
