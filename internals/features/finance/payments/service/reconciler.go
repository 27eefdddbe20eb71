package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	chargeModel "rentpay_backend/internals/features/finance/charges/model"
	"rentpay_backend/internals/features/finance/payments/model"
)

type Outcome string

const (
	OutcomeApplied   Outcome = "applied"
	OutcomeDuplicate Outcome = "duplicate"
	OutcomeIgnored   Outcome = "ignored"  // tipe dikenal, payment tidak ketemu
	OutcomeRecorded  Outcome = "recorded" // tipe lain, hanya dicatat
)

// Reconciler applies verified provider events exactly once per
// (provider, event id). Replays and reordering converge to the same state.
type Reconciler struct {
	DB  *gorm.DB
	Now func() time.Time
}

func NewReconciler(db *gorm.DB) *Reconciler {
	return &Reconciler{DB: db, Now: func() time.Time { return time.Now().UTC() }}
}

func (r *Reconciler) HandleEvent(ctx context.Context, ev *WebhookEvent) (Outcome, error) {
	if ev == nil || ev.EventID == "" {
		return "", ErrMalformedEvent
	}

	var outcome Outcome
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		payment, err := resolvePayment(tx, ev)
		if err != nil {
			return err
		}

		inserted, err := recordEvent(tx, ev, payment)
		if err != nil {
			return err
		}
		if !inserted {
			outcome = OutcomeDuplicate
			return nil
		}

		switch {
		case !isSuccessEvent(ev.Type):
			outcome = OutcomeRecorded
			return nil
		case payment == nil:
			outcome = OutcomeIgnored
			return nil
		}

		if ev.Object.Amount > 0 && ev.Object.Amount != payment.PaymentAmount {
			log.Printf("[WARN] webhook amount mismatch provider=%s event=%s payment=%s got=%d want=%d",
				ev.Provider, ev.EventID, payment.PaymentID, ev.Object.Amount, payment.PaymentAmount)
		}
		if err := r.markSucceeded(tx, payment, ev.Object.PaymentIntent); err != nil {
			return err
		}
		outcome = OutcomeApplied
		return nil
	})
	if err != nil {
		return "", err
	}

	switch outcome {
	case OutcomeApplied:
		log.Printf("[INFO] webhook applied provider=%s event=%s type=%s", ev.Provider, ev.EventID, ev.Type)
	case OutcomeIgnored:
		log.Printf("[WARN] webhook unresolved provider=%s event=%s type=%s", ev.Provider, ev.EventID, ev.Type)
	}
	return outcome, nil
}

func isSuccessEvent(t string) bool {
	return t == model.EventCheckoutSessionCompleted || t == model.EventPaymentIntentSucceeded
}

// resolvePayment:
//   - checkout_session_completed → metadata.payment_id, fallback provider_payment_id == object.id
//   - payment_intent_succeeded   → provider_payment_id == object.id
func resolvePayment(tx *gorm.DB, ev *WebhookEvent) (*model.PaymentModel, error) {
	switch ev.Type {
	case model.EventCheckoutSessionCompleted:
		if raw := ev.Object.Metadata["payment_id"]; raw != "" {
			if id, err := uuid.Parse(raw); err == nil {
				p, err := findPayment(tx, "payment_id = ?", id)
				if p != nil || err != nil {
					return p, err
				}
			}
		}
		if ev.Object.ID != "" {
			return findPayment(tx, "payment_provider_payment_id = ?", ev.Object.ID)
		}
	case model.EventPaymentIntentSucceeded:
		if ev.Object.ID != "" {
			return findPayment(tx, "payment_provider_payment_id = ?", ev.Object.ID)
		}
	}
	return nil, nil
}

func findPayment(tx *gorm.DB, where string, arg any) (*model.PaymentModel, error) {
	var p model.PaymentModel
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where(where, arg).
		Order("payment_created_at DESC").
		Take(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// recordEvent inserts the ledger row; false means the event was seen before.
func recordEvent(tx *gorm.DB, ev *WebhookEvent, payment *model.PaymentModel) (bool, error) {
	row := model.PaymentEventModel{
		PaymentEventProvider:   ev.Provider,
		PaymentEventExternalID: ev.EventID,
		PaymentEventType:       ev.Type,
		PaymentEventPayload:    datatypes.JSON(payloadOrEmpty(ev.Payload)),
	}
	if payment != nil {
		id := payment.PaymentID
		row.PaymentEventPaymentID = &id
	}

	res := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "payment_event_provider"}, {Name: "payment_event_external_id"}},
		DoNothing: true,
	}).Create(&row)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// markSucceeded is monotonic: paid_at is set once, the charge only moves
// due → paid, and a late intent id still lands on the payment.
func (r *Reconciler) markSucceeded(tx *gorm.DB, p *model.PaymentModel, intentID string) error {
	now := r.Now()
	updates := map[string]any{}

	if p.PaymentStatus != model.PaymentStatusSucceeded {
		updates["payment_status"] = model.PaymentStatusSucceeded
		if p.PaymentPaidAt == nil {
			updates["payment_paid_at"] = now
		}
	}
	if intentID != "" && (p.PaymentProviderPaymentID == nil || *p.PaymentProviderPaymentID != intentID) {
		updates["payment_provider_payment_id"] = intentID
	}

	if len(updates) > 0 {
		updates["payment_updated_at"] = now
		if err := tx.Model(&model.PaymentModel{}).
			Where("payment_id = ?", p.PaymentID).
			Updates(updates).Error; err != nil {
			return err
		}
	}

	return tx.Model(&chargeModel.ChargeModel{}).
		Where("charge_id = ? AND charge_status = ?", p.PaymentChargeID, chargeModel.ChargeStatusDue).
		Updates(map[string]any{
			"charge_status":     chargeModel.ChargeStatusPaid,
			"charge_updated_at": now,
		}).Error
}

func payloadOrEmpty(b []byte) []byte {
	if len(b) == 0 {
		return []byte("{}")
	}
	return b
}
