package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	chargeModel "rentpay_backend/internals/features/finance/charges/model"
	"rentpay_backend/internals/features/finance/payments/model"
	leaseService "rentpay_backend/internals/features/rentals/leases/service"
	"rentpay_backend/internals/helpers/testdb"
)

// Lease → seed charge → checkout → webhook → paid, lalu replay.
func TestRentFlowFromLeaseToPaidCharge(t *testing.T) {
	db := testdb.Open(t)
	ctx := context.Background()

	admin := testdb.Admin(t, db, "admin@rentpay.test")
	tenant := testdb.Tenant(t, db, "tenant@rentpay.test")
	unit := testdb.Unit(t, db, testdb.Property(t, db, admin.ID).PropertyID)

	lease, err := leaseService.NewLeaseService(db).CreateLease(ctx, testdb.ActorOf(admin), leaseService.CreateLeaseInput{
		UnitID:       unit.UnitID,
		TenantUserID: tenant.ID,
		RentAmount:   120000,
		DueDay:       1,
		StartDate:    time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	require.Len(t, lease.Charges, 1)
	charge := lease.Charges[0]
	assert.Equal(t, time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC), charge.ChargeDueDate)

	checkout, err := NewCheckoutService(db, &fakeProvider{}, "usd").
		CreateCheckoutSession(ctx, testdb.ActorOf(tenant), charge.ChargeID)
	require.NoError(t, err)
	assert.Equal(t, int64(120000), checkout.Payment.PaymentAmount)

	payload := fmt.Sprintf(`{"id":"evt_flow","type":"checkout.session.completed","data":{"object":`+
		`{"id":"cs_test_1","payment_intent":"pi_flow","metadata":{"payment_id":"%s","charge_id":"%s"}}}}`,
		checkout.Payment.PaymentID, charge.ChargeID)
	ev, err := ParseStripeEvent([]byte(payload), "", "")
	require.NoError(t, err)

	rec := NewReconciler(db)
	out, err := rec.HandleEvent(ctx, ev)
	require.NoError(t, err)
	assert.Equal(t, OutcomeApplied, out)

	out, err = rec.HandleEvent(ctx, ev)
	require.NoError(t, err)
	assert.Equal(t, OutcomeDuplicate, out)

	var stored chargeModel.ChargeModel
	require.NoError(t, db.Where("charge_id = ?", charge.ChargeID).Take(&stored).Error)
	assert.Equal(t, chargeModel.ChargeStatusPaid, stored.ChargeStatus)

	payments, err := NewPaymentQueryService(db).ListTenantPayments(ctx, testdb.ActorOf(tenant))
	require.NoError(t, err)
	require.Len(t, payments, 1)
	assert.Equal(t, model.PaymentStatusSucceeded, payments[0].PaymentStatus)
	require.NotNil(t, payments[0].PaymentProviderPaymentID)
	assert.Equal(t, "pi_flow", *payments[0].PaymentProviderPaymentID)

	// charge yang sudah lunas tidak bisa di-checkout lagi
	_, err = NewCheckoutService(db, &fakeProvider{}, "usd").
		CreateCheckoutSession(ctx, testdb.ActorOf(tenant), charge.ChargeID)
	requireFiberError(t, err, 403, "Charge is not payable.")
}

func TestListPaymentEventsScopedToAdmin(t *testing.T) {
	f := newReconcileFixture(t)
	ctx := context.Background()
	require.Equal(t, OutcomeApplied, f.handle(t, f.sessionCompleted("evt_1")))
	f.handle(t, &WebhookEvent{Provider: model.GatewayProviderStripe, EventID: "evt_orphan", Type: "charge.refunded"})

	q := NewPaymentQueryService(f.db)

	rows, total, err := q.ListPaymentEvents(ctx, testdb.ActorOf(f.rental.Admin), PaymentEventFilter{}, 0, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, rows, 1)
	assert.Equal(t, "evt_1", rows[0].PaymentEventExternalID)

	rows, total, err = q.ListPaymentEvents(ctx, testdb.ActorOf(f.rental.Admin), PaymentEventFilter{Provider: "midtrans"}, 0, 20)
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, rows)

	other := testdb.Admin(t, f.db, "other@rentpay.test")
	_, total, err = q.ListPaymentEvents(ctx, testdb.ActorOf(other), PaymentEventFilter{}, 0, 20)
	require.NoError(t, err)
	assert.Zero(t, total)

	_, _, err = q.ListPaymentEvents(ctx, testdb.ActorOf(f.rental.Tenant), PaymentEventFilter{}, 0, 20)
	requireFiberError(t, err, 403, "")
}

func TestListTenantPaymentsOnlyOwn(t *testing.T) {
	f := newReconcileFixture(t)
	stranger := testdb.Tenant(t, f.db, "stranger@rentpay.test")
	q := NewPaymentQueryService(f.db)

	rows, err := q.ListTenantPayments(context.Background(), testdb.ActorOf(f.rental.Tenant))
	require.NoError(t, err)
	assert.Len(t, rows, 1)

	rows, err = q.ListTenantPayments(context.Background(), testdb.ActorOf(stranger))
	require.NoError(t, err)
	assert.Empty(t, rows)

	_, err = q.ListTenantPayments(context.Background(), testdb.ActorOf(f.rental.Admin))
	requireFiberError(t, err, 403, "")
}
