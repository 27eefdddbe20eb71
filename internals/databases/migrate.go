package database

import (
	"log"

	"gorm.io/gorm"

	chargeModel "rentpay_backend/internals/features/finance/charges/model"
	paymentModel "rentpay_backend/internals/features/finance/payments/model"
	leaseModel "rentpay_backend/internals/features/rentals/leases/model"
	propertyModel "rentpay_backend/internals/features/rentals/properties/model"
	unitModel "rentpay_backend/internals/features/rentals/units/model"
	authModel "rentpay_backend/internals/features/users/auth/model"
	userModel "rentpay_backend/internals/features/users/user/model"
)

// At most one pending payment per charge. Postgres and sqlite both accept
// partial indexes with this syntax.
const pendingPaymentIndexSQL = `CREATE UNIQUE INDEX IF NOT EXISTS ux_payments_charge_pending
	ON payments (payment_charge_id) WHERE payment_status = 'pending'`

func AutoMigrate(db *gorm.DB) error {
	log.Println("[INFO] Running AutoMigrate...")
	if err := db.AutoMigrate(
		&userModel.UserModel{},
		&authModel.TokenBlacklist{},
		&propertyModel.PropertyModel{},
		&unitModel.UnitModel{},
		&leaseModel.LeaseModel{},
		&chargeModel.ChargeModel{},
		&paymentModel.PaymentModel{},
		&paymentModel.PaymentEventModel{},
	); err != nil {
		return err
	}
	return db.Exec(pendingPaymentIndexSQL).Error
}
