package seeders

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

func seedEquipments(ctx context.Context, db *pgxpool.Pool) (int, error) {
	tx, err := db.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, "TRUNCATE TABLE equipments CASCADE"); err != nil {
		return 0, err
	}

	query := `INSERT INTO equipments (
                id, owner_first_name, owner_last_name, owner_address, owner_contact_number,
                brand, model, serial_number, guide_bar_length, horse_power, fuel_type,
                date_acquired, stencil_of_serial_no, other_info, intended_use, is_new,
                data_privacy_consent, created_at, updated_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $18)`

	now := time.Now().UTC()
	for _, e := range equipmentsData {
		createdAt := now.AddDate(0, -e.RegisteredMonthsAgo, 0)
		acquired := now.AddDate(-e.AcquiredYearsAgo, 0, 0)

		if _, err := tx.Exec(ctx, query,
			uuid.NewString(),
			e.FirstName,
			e.LastName,
			e.Address,
			e.Contact,
			e.Brand,
			e.Model,
			e.SerialNumber,
			e.GuideBarLength,
			e.HorsePower,
			e.FuelType,
			acquired,
			e.SerialNumber,
			"Seeded sample",
			e.IntendedUse,
			e.IsNew,
			true,
			createdAt,
		); err != nil {
			return 0, err
		}
	}

	return len(equipmentsData), tx.Commit(ctx)
}
