package seeders

import (
	"context"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
)

// SeedAdmin creates the initial administrator account unless one with the
// same email already exists.
func SeedAdmin(db *pgxpool.Pool, email, fullName, password string) {
	ctx := context.Background()
	log.Println("▶️  Seeding administrator...")

	if err := seedAdmin(ctx, db, email, fullName, password); err != nil {
		log.Fatalf("❌ Failed to seed administrator: %v", err)
	}
	log.Println("✅ Administrator ready")
}

// SeedEquipments replaces the equipments table with the sample registry.
func SeedEquipments(db *pgxpool.Pool) {
	ctx := context.Background()
	log.Println("▶️  Seeding sample equipments...")

	n, err := seedEquipments(ctx, db)
	if err != nil {
		log.Fatalf("❌ Failed to seed equipments: %v", err)
	}
	log.Printf("✅ %d equipments inserted", n)
}
