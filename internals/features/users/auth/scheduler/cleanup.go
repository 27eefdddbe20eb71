package scheduler

import (
	"context"
	"log"
	"time"

	"gorm.io/gorm"

	"rentpay_backend/internals/configs"
	authRepo "rentpay_backend/internals/features/users/auth/repository"
)

// StartBlacklistCleanupScheduler menghapus token blacklist yang sudah lewat TTL
// setiap 24 jam sampai ctx selesai.
func StartBlacklistCleanupScheduler(ctx context.Context, db *gorm.DB) {
	ttlDays := configs.GetEnvInt("TOKEN_BLACKLIST_TTL_DAYS", 7)

	go func() {
		ticker := time.NewTicker(24 * time.Hour)
		defer ticker.Stop()

		for {
			RunBlacklistCleanup(db, ttlDays)

			select {
			case <-ctx.Done():
				log.Println("[CLEANUP] scheduler stopped")
				return
			case <-ticker.C:
			}
		}
	}()
}

func RunBlacklistCleanup(db *gorm.DB, ttlDays int) {
	deleteBefore := time.Now().UTC().Add(-time.Duration(ttlDays) * 24 * time.Hour)
	n, err := authRepo.CleanupExpiredBlacklist(db, deleteBefore)
	if err != nil {
		log.Printf("[CLEANUP ERROR] failed to purge token_blacklist: %v", err)
		return
	}
	log.Printf("[CLEANUP] %d expired tokens removed", n)
}
