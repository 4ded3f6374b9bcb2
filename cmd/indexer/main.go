package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/providervault/ai-service/internal/adapters/database"
	"github.com/providervault/ai-service/internal/adapters/search"
	"github.com/providervault/ai-service/internal/infrastructure/clients/postgres"
	"github.com/providervault/ai-service/internal/infrastructure/clients/typesense"
	"github.com/providervault/ai-service/pkg/config"
)

// Providers indexed per specialty in one reindex run. The index is a
// retrieval accelerator, not the source of truth, so a bounded snapshot
// per specialty is enough.
const perSpecialtyIndexLimit = 1000

func main() {
	var reset bool
	var intervalFlag string
	flag.BoolVar(&reset, "reset", false, "delete existing Typesense collection before reindexing")
	flag.StringVar(&intervalFlag, "interval", "", "repeat interval for reindexing (e.g. 6h, 30m)")
	flag.Parse()

	_ = godotenv.Load()

	intervalValue := strings.TrimSpace(intervalFlag)
	if intervalValue == "" {
		intervalValue = strings.TrimSpace(os.Getenv("REINDEX_INTERVAL"))
	}

	var interval time.Duration
	var err error
	if intervalValue != "" {
		interval, err = time.ParseDuration(intervalValue)
		if err != nil {
			log.Fatalf("Invalid interval %q: %v", intervalValue, err)
		}
		if interval <= 0 {
			log.Fatalf("Interval must be greater than zero")
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	for {
		if err := indexOnce(ctx, reset); err != nil {
			log.Printf("Reindex failed: %v", err)
		}

		if interval <= 0 {
			break
		}

		reset = false
		log.Printf("Reindex complete. Next run in %s.", interval)

		select {
		case <-ctx.Done():
			log.Println("Reindexer shutting down")
			return
		case <-time.After(interval):
		}
	}
}

func indexOnce(ctx context.Context, reset bool) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		return err
	}
	defer pgClient.Close()

	providerRepo := database.NewProviderAdapter(pgClient, nil)

	tsClient, err := typesense.NewClient(&cfg.Typesense)
	if err != nil {
		return err
	}

	adapter := search.NewTypesenseAdapter(tsClient)

	if reset || os.Getenv("RESET_TYPESENSE") == "true" {
		log.Println("Deleting providers collection before reindex")
		if _, err := tsClient.Client().Collection(search.ProvidersCollection).Delete(ctx); err != nil {
			log.Printf("Warning: failed to delete collection: %v", err)
		}
	}

	if err := adapter.InitSchema(ctx); err != nil {
		return err
	}

	specialties, err := providerRepo.ListSpecialties(ctx)
	if err != nil {
		return err
	}

	indexed := 0
	failed := 0
	for _, specialty := range specialties {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		providerList, err := providerRepo.ListBySpecialty(ctx, specialty, perSpecialtyIndexLimit)
		if err != nil {
			log.Printf("Warning: failed to list providers for %q: %v", specialty, err)
			failed++
			continue
		}

		for i := range providerList {
			if err := adapter.Index(ctx, &providerList[i]); err != nil {
				log.Printf("Warning: failed to index provider %s: %v", providerList[i].NPI, err)
				failed++
				continue
			}
			indexed++
		}
	}

	log.Printf("Indexed %d providers across %d specialties (%d failures)", indexed, len(specialties), failed)
	return nil
}
