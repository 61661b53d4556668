package seeders

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"chainsaw-registry/pkg/utils"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

func seedAdmin(ctx context.Context, db *pgxpool.Pool, email, fullName, password string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return errors.New("email and password are required")
	}
	log.Printf("  - Creating administrator %q...", email)

	var existingID string
	err := db.QueryRow(ctx, "SELECT id FROM admins WHERE lower(email) = $1", email).Scan(&existingID)
	if err == nil {
		log.Println("    - Administrator already exists. Skipping.")
		return nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("failed to check existing administrator: %w", err)
	}

	hashedPassword, err := utils.HashPassword(password)
	if err != nil {
		return err
	}

	query := `INSERT INTO admins (id, email, full_name, password_hash)
              VALUES ($1, $2, $3, $4)`
	if _, err := db.Exec(ctx, query, uuid.NewString(), email, fullName, hashedPassword); err != nil {
		return fmt.Errorf("failed to create administrator: %w", err)
	}

	log.Println("    - Administrator created.")
	return nil
}
