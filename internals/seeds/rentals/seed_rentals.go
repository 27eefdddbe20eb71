package rentals

import (
	"context"
	"log"
	"time"

	"gorm.io/gorm"

	leaseService "rentpay_backend/internals/features/rentals/leases/service"
	propertyModel "rentpay_backend/internals/features/rentals/properties/model"
	unitModel "rentpay_backend/internals/features/rentals/units/model"
	userModel "rentpay_backend/internals/features/users/user/model"
	helpersAuth "rentpay_backend/internals/helpers/auth"
)

const demoPropertyName = "Maple Apartments"

func strPtr(s string) *string { return &s }

// SeedDemoRental: properti, unit dan lease (beserta charge pertamanya) milik
// admin demo. Lease dibuat lewat LeaseService supaya charge pertama ikut terbuat.
func SeedDemoRental(ctx context.Context, db *gorm.DB, admin, tenant *userModel.UserModel, now time.Time) error {
	var count int64
	if err := db.WithContext(ctx).Model(&propertyModel.PropertyModel{}).
		Where("property_user_id = ? AND property_name = ?", admin.ID, demoPropertyName).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		log.Println("ℹ️ [SEED] properti demo sudah ada, dilewati.")
		return nil
	}

	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		property := propertyModel.PropertyModel{
			PropertyUserID:       admin.ID,
			PropertyName:         demoPropertyName,
			PropertyAddressLine1: strPtr("123 Maple St"),
			PropertyCity:         strPtr("Springfield"),
			PropertyState:        strPtr("CA"),
			PropertyPostalCode:   strPtr("90001"),
		}
		if err := tx.Create(&property).Error; err != nil {
			return err
		}

		unit := unitModel.UnitModel{
			UnitPropertyID: property.PropertyID,
			UnitName:       "Unit 1A",
			UnitNotes:      strPtr("Main floor unit"),
		}
		if err := tx.Create(&unit).Error; err != nil {
			return err
		}

		monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
		lease, err := leaseService.NewLeaseService(tx).CreateLease(ctx,
			helpersAuth.Actor{ID: admin.ID, Role: admin.Role},
			leaseService.CreateLeaseInput{
				UnitID:       unit.UnitID,
				TenantUserID: tenant.ID,
				RentAmount:   150000,
				DueDay:       1,
				StartDate:    monthStart,
			})
		if err != nil {
			return err
		}

		log.Printf("✅ [SEED] property=%s unit=%s lease=%s", property.PropertyID, unit.UnitID, lease.LeaseID)
		return nil
	})
}
