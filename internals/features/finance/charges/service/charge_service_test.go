package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rentpay_backend/internals/features/finance/charges/model"
	helper "rentpay_backend/internals/helpers"
	"rentpay_backend/internals/helpers/testdb"
)

func statusOf(t *testing.T, err error) int {
	t.Helper()
	var fe *fiber.Error
	require.True(t, errors.As(err, &fe), "expected *fiber.Error, got %v", err)
	return fe.Code
}

func TestCreateChargeRejectsPaid(t *testing.T) {
	db := testdb.Open(t)
	r := testdb.NewRental(t, db)

	_, err := NewChargeService(db).CreateCharge(context.Background(), testdb.ActorOf(r.Admin), CreateChargeInput{
		LeaseID: r.Lease.LeaseID,
		Amount:  5000,
		DueDate: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		Status:  model.ChargeStatusPaid,
	})
	var fe helper.FieldErrors
	require.True(t, errors.As(err, &fe))
	assert.Contains(t, fe, "status")
}

func TestCreateChargeForOwnedLease(t *testing.T) {
	db := testdb.Open(t)
	r := testdb.NewRental(t, db)
	svc := NewChargeService(db)

	c, err := svc.CreateCharge(context.Background(), testdb.ActorOf(r.Admin), CreateChargeInput{
		LeaseID: r.Lease.LeaseID,
		Amount:  5000,
		DueDate: time.Date(2024, 5, 1, 13, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.Equal(t, model.ChargeStatusDue, c.ChargeStatus)
	assert.Equal(t, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), c.ChargeDueDate)

	other := testdb.Admin(t, db, "other@rentpay.test")
	_, err = svc.CreateCharge(context.Background(), testdb.ActorOf(other), CreateChargeInput{
		LeaseID: r.Lease.LeaseID,
		Amount:  5000,
		DueDate: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
	})
	assert.Equal(t, fiber.StatusNotFound, statusOf(t, err))

	_, err = svc.CreateCharge(context.Background(), testdb.ActorOf(r.Tenant), CreateChargeInput{LeaseID: r.Lease.LeaseID, Amount: 1})
	assert.Equal(t, fiber.StatusForbidden, statusOf(t, err))
}

func TestVoidCharge(t *testing.T) {
	db := testdb.Open(t)
	r := testdb.NewRental(t, db)
	svc := NewChargeService(db)
	ctx := context.Background()

	c, err := svc.VoidCharge(ctx, testdb.ActorOf(r.Admin), r.Charge.ChargeID)
	require.NoError(t, err)
	assert.Equal(t, model.ChargeStatusVoid, c.ChargeStatus)

	_, err = svc.VoidCharge(ctx, testdb.ActorOf(r.Admin), r.Charge.ChargeID)
	assert.Equal(t, fiber.StatusConflict, statusOf(t, err))

	paid := testdb.Charge(t, db, r.Lease.LeaseID, 100, model.ChargeStatusPaid)
	_, err = svc.VoidCharge(ctx, testdb.ActorOf(r.Admin), paid.ChargeID)
	assert.Equal(t, fiber.StatusConflict, statusOf(t, err))

	_, err = svc.VoidCharge(ctx, testdb.ActorOf(r.Admin), uuid.New())
	assert.Equal(t, fiber.StatusNotFound, statusOf(t, err))
}

func TestListAdminCharges(t *testing.T) {
	db := testdb.Open(t)
	r := testdb.NewRental(t, db)
	testdb.Charge(t, db, r.Lease.LeaseID, 100, model.ChargeStatusVoid)
	svc := NewChargeService(db)

	rows, total, err := svc.ListAdminCharges(context.Background(), testdb.ActorOf(r.Admin), "", 0, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, rows, 2)
	assert.Equal(t, r.Tenant.Email, rows[0].TenantEmail)
	assert.Equal(t, "Unit 1A", rows[0].UnitName)

	rows, total, err = svc.ListAdminCharges(context.Background(), testdb.ActorOf(r.Admin), "void", 0, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, rows, 1)
	assert.Equal(t, model.ChargeStatusVoid, rows[0].ChargeStatus)

	other := testdb.Admin(t, db, "other@rentpay.test")
	_, total, err = svc.ListAdminCharges(context.Background(), testdb.ActorOf(other), "", 0, 20)
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestListTenantDueCharges(t *testing.T) {
	db := testdb.Open(t)
	r := testdb.NewRental(t, db)
	testdb.Charge(t, db, r.Lease.LeaseID, 100, model.ChargeStatusPaid)

	rows, err := NewChargeService(db).ListTenantDueCharges(context.Background(), testdb.ActorOf(r.Tenant))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, r.Charge.ChargeID, rows[0].ChargeID)
}
