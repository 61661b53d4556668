package main

import (
	"context"
	"flag"
	"log"
	"os"

	"chainsaw-registry/pkg/config"
	"chainsaw-registry/pkg/database/postgresql"
	applogger "chainsaw-registry/pkg/logger"
	"chainsaw-registry/seeders"
)

func main() {
	log.Println("======================================================")
	log.Println("       🌱 Database seeders")
	log.Println("======================================================")

	runAdmin := flag.Bool("admin", false, "Create the initial administrator (ADMIN_EMAIL, ADMIN_PASSWORD)")
	runEquipment := flag.Bool("equipment", false, "Replace the equipments table with sample records")
	runAll := flag.Bool("all", false, "Run every seeder (same as -admin -equipment)")
	adminName := flag.String("admin-name", "Registry Administrator", "Full name of the seeded administrator")

	flag.Parse()

	if !*runAdmin && !*runEquipment && !*runAll {
		log.Println("❌ No seeder selected.")
		log.Println("")
		log.Println("Available flags:")
		flag.PrintDefaults()
		log.Println("")
		log.Println("Examples:")
		log.Println("  go run ./seeders/cmd/seed -admin")
		log.Println("  go run ./seeders/cmd/seed -all")
		log.Println("======================================================")
		return
	}

	ctx := context.Background()
	cfg := config.New()
	logger := applogger.NewLogger(cfg.Log.Level, "")

	dbPool, err := postgresql.ConnectDB(ctx, cfg.Postgres.DSN, logger)
	if err != nil {
		log.Fatalf("❌ Failed to connect to PostgreSQL: %v", err)
	}
	defer dbPool.Close()

	if err := postgresql.Migrate(ctx, dbPool); err != nil {
		log.Fatalf("❌ Failed to apply migrations: %v", err)
	}

	log.Println("======================================================")

	if *runAll || *runAdmin {
		seeders.SeedAdmin(dbPool, os.Getenv("ADMIN_EMAIL"), *adminName, os.Getenv("ADMIN_PASSWORD"))
		log.Println("======================================================")
	}

	if *runAll || *runEquipment {
		seeders.SeedEquipments(dbPool)
		log.Println("======================================================")
	}

	log.Println("✅ Seeding finished.")
	log.Println("======================================================")
}
