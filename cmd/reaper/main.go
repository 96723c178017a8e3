// Command reaper runs one sweep of the recently-deleted reaper and exits.
// It is meant for cron jobs and manual cleanup when the server's scheduler is disabled.
package main

import (
	"context"
	"log"
	"time"

	"wealthcheck/internal/config"
	"wealthcheck/internal/repositories"
	"wealthcheck/internal/services/reaper"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := repositories.Open(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer func() {
		if err := repositories.Close(db); err != nil {
			log.Printf("⚠️ Failed to close database connection: %v", err)
		}
	}()

	r, err := reaper.New(repositories.NewCleanupRepository(db), cfg.Reaper)
	if err != nil {
		log.Fatalf("Failed to configure reaper: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	result, err := r.RunOnce(ctx)
	if err != nil {
		log.Printf("❌ Reaper run %s finished with errors: %v", result.RunID, err)
		return
	}
	log.Printf("✅ Reaper run %s removed %d transactions, %d wallets, %d categories",
		result.RunID, result.Transactions, result.Wallets, result.Categories)
}
