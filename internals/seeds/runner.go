package seeds

import (
	"context"
	"log"
	"time"

	"gorm.io/gorm"

	rentals "rentpay_backend/internals/seeds/rentals"
	users "rentpay_backend/internals/seeds/users"
)

// RunAllSeeds membuat data demo. Aman dijalankan berulang: user yang sudah
// ada dilewati, properti demo hanya dibuat sekali.
func RunAllSeeds(ctx context.Context, db *gorm.DB, now time.Time) error {
	//* User
	admin, tenant, err := users.SeedDemoUsers(ctx, db)
	if err != nil {
		return err
	}

	//* Rentals
	if err := rentals.SeedDemoRental(ctx, db, admin, tenant, now); err != nil {
		return err
	}

	log.Println("[SEED] done")
	return nil
}
