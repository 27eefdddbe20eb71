package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	chargeModel "rentpay_backend/internals/features/finance/charges/model"
	"rentpay_backend/internals/features/finance/payments/model"
	"rentpay_backend/internals/helpers/testdb"
)

type fakeProvider struct {
	mu     sync.Mutex
	calls  []CheckoutSessionParams
	failOn int // gagal pada panggilan ke-n (1-based), 0 = tidak pernah
}

func (f *fakeProvider) Name() model.PaymentGatewayProvider { return model.GatewayProviderStripe }

func (f *fakeProvider) CreateCheckoutSession(_ context.Context, p CheckoutSessionParams) (*CheckoutSession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, p)
	n := len(f.calls)
	if f.failOn == n {
		return nil, &ProviderError{Provider: model.GatewayProviderStripe, Message: "card_declined"}
	}
	return &CheckoutSession{
		ID:  fmt.Sprintf("cs_test_%d", n),
		URL: fmt.Sprintf("https://checkout.test/cs_test_%d", n),
	}, nil
}

func requireFiberError(t *testing.T, err error, code int, msg string) {
	t.Helper()
	var fe *fiber.Error
	require.True(t, errors.As(err, &fe), "expected *fiber.Error, got %v", err)
	assert.Equal(t, code, fe.Code)
	if msg != "" {
		assert.Equal(t, msg, fe.Message)
	}
}

func countPayments(t *testing.T, db *gorm.DB, chargeID uuid.UUID) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(&model.PaymentModel{}).Where("payment_charge_id = ?", chargeID).Count(&n).Error)
	return n
}

func TestCheckoutCreatesPendingPayment(t *testing.T) {
	db := testdb.Open(t)
	r := testdb.NewRental(t, db)
	fp := &fakeProvider{}

	res, err := NewCheckoutService(db, fp, "").CreateCheckoutSession(context.Background(), testdb.ActorOf(r.Tenant), r.Charge.ChargeID)
	require.NoError(t, err)

	assert.Equal(t, "https://checkout.test/cs_test_1", res.URL)
	assert.Equal(t, model.PaymentStatusPending, res.Payment.PaymentStatus)
	assert.Equal(t, r.Charge.ChargeAmount, res.Payment.PaymentAmount)

	require.Len(t, fp.calls, 1)
	call := fp.calls[0]
	assert.Equal(t, int64(120000), call.Amount)
	assert.Equal(t, "usd", call.Currency)
	assert.Equal(t, res.Payment.PaymentID.String(), call.ClientReference)
	assert.Equal(t, res.Payment.PaymentID.String(), call.Metadata["payment_id"])
	assert.Equal(t, r.Charge.ChargeID.String(), call.Metadata["charge_id"])

	var stored model.PaymentModel
	require.NoError(t, db.Where("payment_id = ?", res.Payment.PaymentID).Take(&stored).Error)
	require.NotNil(t, stored.PaymentProviderPaymentID)
	assert.Equal(t, "cs_test_1", *stored.PaymentProviderPaymentID)
	assert.Equal(t, model.GatewayProviderStripe, stored.PaymentProvider)
}

func TestCheckoutRejectsWrongActor(t *testing.T) {
	db := testdb.Open(t)
	r := testdb.NewRental(t, db)
	stranger := testdb.Tenant(t, db, "stranger@rentpay.test")
	fp := &fakeProvider{}
	svc := NewCheckoutService(db, fp, "usd")

	_, err := svc.CreateCheckoutSession(context.Background(), testdb.ActorOf(r.Admin), r.Charge.ChargeID)
	requireFiberError(t, err, fiber.StatusForbidden, "Not allowed to pay this charge.")

	_, err = svc.CreateCheckoutSession(context.Background(), testdb.ActorOf(stranger), r.Charge.ChargeID)
	requireFiberError(t, err, fiber.StatusForbidden, "Not allowed to pay this charge.")

	assert.Empty(t, fp.calls)
	assert.Zero(t, countPayments(t, db, r.Charge.ChargeID))
}

func TestCheckoutUnknownChargeIsNotFound(t *testing.T) {
	db := testdb.Open(t)
	r := testdb.NewRental(t, db)

	_, err := NewCheckoutService(db, &fakeProvider{}, "usd").
		CreateCheckoutSession(context.Background(), testdb.ActorOf(r.Tenant), uuid.New())
	requireFiberError(t, err, fiber.StatusNotFound, "")
}

func TestCheckoutRejectsChargeThatIsNotDue(t *testing.T) {
	for _, status := range []chargeModel.ChargeStatus{chargeModel.ChargeStatusPaid, chargeModel.ChargeStatusVoid} {
		t.Run(string(status), func(t *testing.T) {
			db := testdb.Open(t)
			r := testdb.NewRental(t, db)
			require.NoError(t, db.Model(r.Charge).Update("charge_status", status).Error)
			fp := &fakeProvider{}

			_, err := NewCheckoutService(db, fp, "usd").
				CreateCheckoutSession(context.Background(), testdb.ActorOf(r.Tenant), r.Charge.ChargeID)
			requireFiberError(t, err, fiber.StatusForbidden, "Charge is not payable.")
			assert.Empty(t, fp.calls)
		})
	}
}

func TestCheckoutSecondAttemptConflicts(t *testing.T) {
	db := testdb.Open(t)
	r := testdb.NewRental(t, db)
	fp := &fakeProvider{}
	svc := NewCheckoutService(db, fp, "usd")
	actor := testdb.ActorOf(r.Tenant)

	_, err := svc.CreateCheckoutSession(context.Background(), actor, r.Charge.ChargeID)
	require.NoError(t, err)

	_, err = svc.CreateCheckoutSession(context.Background(), actor, r.Charge.ChargeID)
	requireFiberError(t, err, fiber.StatusConflict, "")

	assert.Len(t, fp.calls, 1)
	assert.Equal(t, int64(1), countPayments(t, db, r.Charge.ChargeID))
}

func TestConcurrentCheckoutsCreateOnePendingPayment(t *testing.T) {
	db := testdb.Open(t)
	r := testdb.NewRental(t, db)
	fp := &fakeProvider{}
	svc := NewCheckoutService(db, fp, "usd")
	actor := testdb.ActorOf(r.Tenant)

	const attempts = 5
	errs := make(chan error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.CreateCheckoutSession(context.Background(), actor, r.Charge.ChargeID)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	succeeded := 0
	for err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		requireFiberError(t, err, fiber.StatusConflict, "")
	}
	assert.Equal(t, 1, succeeded)
	assert.Len(t, fp.calls, 1)
	assert.Equal(t, int64(1), countPayments(t, db, r.Charge.ChargeID))
}

func TestPendingPaymentIndexRejectsSecondPending(t *testing.T) {
	db := testdb.Open(t)
	r := testdb.NewRental(t, db)

	first := model.PaymentModel{PaymentChargeID: r.Charge.ChargeID, PaymentAmount: 1, PaymentStatus: model.PaymentStatusPending}
	require.NoError(t, db.Create(&first).Error)

	second := model.PaymentModel{PaymentChargeID: r.Charge.ChargeID, PaymentAmount: 1, PaymentStatus: model.PaymentStatusPending}
	err := db.Create(&second).Error
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	failed := model.PaymentModel{PaymentChargeID: r.Charge.ChargeID, PaymentAmount: 1, PaymentStatus: model.PaymentStatusFailed}
	assert.NoError(t, db.Create(&failed).Error)
}

func TestCheckoutProviderFailureRollsBack(t *testing.T) {
	db := testdb.Open(t)
	r := testdb.NewRental(t, db)
	fp := &fakeProvider{failOn: 1}
	svc := NewCheckoutService(db, fp, "usd")
	actor := testdb.ActorOf(r.Tenant)

	_, err := svc.CreateCheckoutSession(context.Background(), actor, r.Charge.ChargeID)
	requireFiberError(t, err, fiber.StatusBadGateway, "Payment provider error.")
	assert.Zero(t, countPayments(t, db, r.Charge.ChargeID))

	// retry setelah gagal harus bisa
	res, err := svc.CreateCheckoutSession(context.Background(), actor, r.Charge.ChargeID)
	require.NoError(t, err)
	assert.Equal(t, "https://checkout.test/cs_test_2", res.URL)
	assert.Equal(t, int64(1), countPayments(t, db, r.Charge.ChargeID))
}

func TestCheckoutWithoutProvider(t *testing.T) {
	db := testdb.Open(t)
	r := testdb.NewRental(t, db)

	_, err := NewCheckoutService(db, nil, "usd").
		CreateCheckoutSession(context.Background(), testdb.ActorOf(r.Tenant), r.Charge.ChargeID)
	requireFiberError(t, err, fiber.StatusBadGateway, "")
}
