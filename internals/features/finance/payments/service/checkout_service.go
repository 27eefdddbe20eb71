package service

import (
	"context"
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	chargeModel "rentpay_backend/internals/features/finance/charges/model"
	"rentpay_backend/internals/features/finance/payments/model"
	leaseModel "rentpay_backend/internals/features/rentals/leases/model"
	helpersAuth "rentpay_backend/internals/helpers/auth"
)

var (
	errChargeNotFound    = fiber.NewError(fiber.StatusNotFound, "Charge not found.")
	errNotAllowedToPay   = fiber.NewError(fiber.StatusForbidden, "Not allowed to pay this charge.")
	errChargeNotPayable  = fiber.NewError(fiber.StatusForbidden, "Charge is not payable.")
	errPaymentInProgress = fiber.NewError(fiber.StatusConflict, "Payment already in progress.")
	errProviderFailed    = fiber.NewError(fiber.StatusBadGateway, "Payment provider error.")
	errProviderMissing   = fiber.NewError(fiber.StatusBadGateway, "Payment provider is not configured.")
	errNotTenant         = fiber.NewError(fiber.StatusForbidden, "Forbidden.")
	errNotAdmin          = fiber.NewError(fiber.StatusForbidden, "Forbidden.")
)

type CheckoutResult struct {
	URL     string
	Payment model.PaymentModel
}

// CheckoutService authorizes a tenant to pay one charge and opens a hosted
// checkout for it.
type CheckoutService struct {
	DB       *gorm.DB
	Provider Provider
	Currency string
}

func NewCheckoutService(db *gorm.DB, provider Provider, currency string) *CheckoutService {
	if currency == "" {
		currency = "usd"
	}
	return &CheckoutService{DB: db, Provider: provider, Currency: currency}
}

// CreateCheckoutSession runs in one transaction with the charge row locked:
// at most one pending payment per charge, and a provider failure leaves no
// payment behind.
func (s *CheckoutService) CreateCheckoutSession(ctx context.Context, actor helpersAuth.Actor, chargeID uuid.UUID) (*CheckoutResult, error) {
	if s.Provider == nil {
		return nil, errProviderMissing
	}

	var result CheckoutResult
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var charge chargeModel.ChargeModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("charge_id = ?", chargeID).
			Take(&charge).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errChargeNotFound
			}
			return err
		}

		// 1) hanya tenant pemilik lease
		if !actor.IsTenant() {
			return errNotAllowedToPay
		}
		var tenantIDs []uuid.UUID
		if err := tx.Model(&leaseModel.LeaseModel{}).
			Where("lease_id = ?", charge.ChargeLeaseID).
			Pluck("lease_tenant_user_id", &tenantIDs).Error; err != nil {
			return err
		}
		if len(tenantIDs) == 0 || tenantIDs[0] != actor.ID {
			return errNotAllowedToPay
		}

		// 2) hanya charge berstatus due
		if !charge.IsPayable() {
			return errChargeNotPayable
		}

		// 3) tidak boleh ada payment pending lain
		var pending int64
		if err := tx.Model(&model.PaymentModel{}).
			Where("payment_charge_id = ? AND payment_status = ?", charge.ChargeID, model.PaymentStatusPending).
			Count(&pending).Error; err != nil {
			return err
		}
		if pending > 0 {
			return errPaymentInProgress
		}

		payment := model.PaymentModel{
			PaymentChargeID: charge.ChargeID,
			PaymentProvider: s.Provider.Name(),
			PaymentStatus:   model.PaymentStatusPending,
			PaymentAmount:   charge.ChargeAmount,
		}
		if err := tx.Create(&payment).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return errPaymentInProgress
			}
			return err
		}

		sess, err := s.Provider.CreateCheckoutSession(ctx, CheckoutSessionParams{
			Amount:          payment.PaymentAmount,
			Currency:        s.Currency,
			ClientReference: payment.PaymentID.String(),
			Description:     "Rent Payment",
			Metadata: map[string]string{
				"payment_id": payment.PaymentID.String(),
				"charge_id":  charge.ChargeID.String(),
			},
		})
		if err != nil {
			log.Printf("[ERROR] checkout provider=%s charge=%s: %v", s.Provider.Name(), charge.ChargeID, err)
			return errProviderFailed
		}

		sessionID := sess.ID
		if err := tx.Model(&model.PaymentModel{}).
			Where("payment_id = ?", payment.PaymentID).
			Update("payment_provider_payment_id", sessionID).Error; err != nil {
			return err
		}
		payment.PaymentProviderPaymentID = &sessionID

		result = CheckoutResult{URL: sess.URL, Payment: payment}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("[INFO] checkout created payment=%s charge=%s provider=%s",
		result.Payment.PaymentID, result.Payment.PaymentChargeID, result.Payment.PaymentProvider)
	return &result, nil
}
