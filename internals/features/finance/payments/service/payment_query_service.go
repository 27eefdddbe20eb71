package service

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"rentpay_backend/internals/features/finance/payments/model"
	helpersAuth "rentpay_backend/internals/helpers/auth"
)

type PaymentEventFilter struct {
	Provider string
	Type     string
}

type PaymentQueryService struct {
	DB *gorm.DB
}

func NewPaymentQueryService(db *gorm.DB) *PaymentQueryService {
	return &PaymentQueryService{DB: db}
}

// ListTenantPayments: riwayat pembayaran milik tenant (terbaru dulu).
func (s *PaymentQueryService) ListTenantPayments(ctx context.Context, actor helpersAuth.Actor) ([]model.PaymentModel, error) {
	if !actor.IsTenant() {
		return nil, errNotTenant
	}
	var rows []model.PaymentModel
	err := s.DB.WithContext(ctx).
		Model(&model.PaymentModel{}).
		Joins("JOIN charges ON charges.charge_id = payments.payment_charge_id").
		Joins("JOIN leases ON leases.lease_id = charges.charge_lease_id").
		Where("leases.lease_tenant_user_id = ?", actor.ID).
		Order("payments.payment_created_at DESC").
		Find(&rows).Error
	return rows, err
}

// ListPaymentEvents: ledger webhook yang terkait payment di properti milik admin.
func (s *PaymentQueryService) ListPaymentEvents(ctx context.Context, actor helpersAuth.Actor, f PaymentEventFilter, offset, limit int) ([]model.PaymentEventModel, int64, error) {
	if !actor.IsAdmin() {
		return nil, 0, errNotAdmin
	}

	base := func() *gorm.DB {
		q := s.DB.WithContext(ctx).
			Model(&model.PaymentEventModel{}).
			Joins("JOIN payments ON payments.payment_id = payment_events.payment_event_payment_id").
			Joins("JOIN charges ON charges.charge_id = payments.payment_charge_id").
			Joins("JOIN leases ON leases.lease_id = charges.charge_lease_id").
			Joins("JOIN units ON units.unit_id = leases.lease_unit_id").
			Joins("JOIN properties ON properties.property_id = units.unit_property_id").
			Where("properties.property_user_id = ?", actor.ID)
		if p := strings.TrimSpace(f.Provider); p != "" {
			q = q.Where("payment_events.payment_event_provider = ?", p)
		}
		if t := strings.TrimSpace(f.Type); t != "" {
			q = q.Where("payment_events.payment_event_type = ?", t)
		}
		return q
	}

	var total int64
	if err := base().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []model.PaymentEventModel
	err := base().
		Select("payment_events.*").
		Order("payment_events.payment_event_received_at DESC").
		Offset(offset).Limit(limit).
		Find(&rows).Error
	return rows, total, err
}
