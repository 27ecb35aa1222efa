package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"flightbay/techlog/internal/common"
	"flightbay/techlog/internal/db"
	"flightbay/techlog/internal/db/repositories"
	"flightbay/techlog/internal/logging"
	"flightbay/techlog/internal/services"
)

// recompute is the offline repair tool: it replays the running totals for
// every aircraft in scope, fixing any drift regardless of how it got there.
// Safe to run while the server is up; sweeps are transactional per scope.
func main() {
	orgID := flag.String("org", "", "organization id (default: all organizations)")
	aircraftID := flag.String("aircraft", "", "aircraft id (requires -org)")
	concurrency := flag.Int("concurrency", 4, "max scopes rebuilt in parallel")
	flag.Parse()

	if *aircraftID != "" && *orgID == "" {
		log.Fatal("-aircraft requires -org")
	}

	if err := logging.Init(os.Getenv("APP_ENV")); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logging.Close()

	host := os.Getenv("PG_HOST")
	port := os.Getenv("PG_PORT")
	user := os.Getenv("PG_USER")
	dbname := os.Getenv("PG_DB")
	password := os.Getenv("PG_PASSWORD")
	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", user, password, host, port, dbname)

	gormDB, err := db.InitPostgresORM(dsn)
	if err != nil {
		log.Fatalf("Failed to connect to Postgres: %v", err)
	}

	orgRepo := repositories.NewOrganizationRepository(gormDB)
	aircraftRepo := repositories.NewAircraftRepository(gormDB)
	logRepo := repositories.NewDailyLogRepository(gormDB)

	cache := common.NewCacheService(300, 600)
	ledger := services.NewLedgerService(gormDB, logRepo, aircraftRepo, cache, nil, nil)

	ctx := context.Background()
	start := time.Now()

	scopes, err := collectScopes(ctx, orgRepo, aircraftRepo, *orgID, *aircraftID)
	if err != nil {
		log.Fatalf("Failed to enumerate scopes: %v", err)
	}
	if len(scopes) == 0 {
		log.Println("Nothing to rebuild")
		return
	}

	log.Printf("Rebuilding %d scopes with concurrency %d", len(scopes), *concurrency)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(*concurrency)

	for _, scope := range scopes {
		scope := scope
		g.Go(func() error {
			updated, err := ledger.RebuildScope(gctx, scope)
			if err != nil {
				return fmt.Errorf("scope %s: %w", scope.Key(), err)
			}
			log.Printf("Rebuilt %s: %d records updated", scope.Key(), updated)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		log.Fatalf("Rebuild failed: %v", err)
	}

	log.Printf("Rebuild completed in %s", time.Since(start).Truncate(time.Millisecond))
}

func collectScopes(ctx context.Context, orgRepo *repositories.OrganizationRepository, aircraftRepo *repositories.AircraftRepository, orgID, aircraftID string) ([]repositories.LedgerScope, error) {
	if aircraftID != "" {
		return []repositories.LedgerScope{{OrganizationID: orgID, AircraftID: aircraftID}}, nil
	}

	var orgIDs []string
	if orgID != "" {
		orgIDs = []string{orgID}
	} else {
		orgs, err := orgRepo.GetAll(ctx)
		if err != nil {
			return nil, err
		}
		for _, org := range orgs {
			orgIDs = append(orgIDs, org.ID)
		}
	}

	var scopes []repositories.LedgerScope
	for _, id := range orgIDs {
		fleet, err := aircraftRepo.GetAll(ctx, id)
		if err != nil {
			return nil, err
		}
		for _, ac := range fleet {
			scopes = append(scopes, repositories.LedgerScope{OrganizationID: id, AircraftID: ac.ID})
		}
	}
	return scopes, nil
}
