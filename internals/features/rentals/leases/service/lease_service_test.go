package service

import (
	"context"
	"errors"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	chargeModel "rentpay_backend/internals/features/finance/charges/model"
	leaseModel "rentpay_backend/internals/features/rentals/leases/model"
	helper "rentpay_backend/internals/helpers"
	"rentpay_backend/internals/helpers/testdb"
)

func fiberStatus(t *testing.T, err error) int {
	t.Helper()
	var fe *fiber.Error
	require.True(t, errors.As(err, &fe), "expected *fiber.Error, got %v", err)
	return fe.Code
}

func TestCreateLeaseSeedsFirstCharge(t *testing.T) {
	db := testdb.Open(t)
	admin := testdb.Admin(t, db, "admin@rentpay.test")
	tenant := testdb.Tenant(t, db, "tenant@rentpay.test")
	unit := testdb.Unit(t, db, testdb.Property(t, db, admin.ID).PropertyID)

	lease, err := NewLeaseService(db).CreateLease(context.Background(), testdb.ActorOf(admin), CreateLeaseInput{
		UnitID:       unit.UnitID,
		TenantUserID: tenant.ID,
		RentAmount:   120000,
		DueDay:       1,
		StartDate:    date(2024, 3, 15),
	})
	require.NoError(t, err)

	require.Len(t, lease.Charges, 1)
	c := lease.Charges[0]
	assert.Equal(t, int64(120000), c.ChargeAmount)
	assert.Equal(t, chargeModel.ChargeStatusDue, c.ChargeStatus)
	assert.Equal(t, date(2024, 4, 1), c.ChargeDueDate)

	var stored []chargeModel.ChargeModel
	require.NoError(t, db.Where("charge_lease_id = ?", lease.LeaseID).Find(&stored).Error)
	require.Len(t, stored, 1)
	assert.Equal(t, "2024-04-01", stored[0].ChargeDueDate.UTC().Format("2006-01-02"))
}

func TestCreateLeaseUnitOfAnotherAdminIsNotFound(t *testing.T) {
	db := testdb.Open(t)
	owner := testdb.Admin(t, db, "owner@rentpay.test")
	other := testdb.Admin(t, db, "other@rentpay.test")
	tenant := testdb.Tenant(t, db, "tenant@rentpay.test")
	unit := testdb.Unit(t, db, testdb.Property(t, db, owner.ID).PropertyID)

	_, err := NewLeaseService(db).CreateLease(context.Background(), testdb.ActorOf(other), CreateLeaseInput{
		UnitID:       unit.UnitID,
		TenantUserID: tenant.ID,
		RentAmount:   1000,
		DueDay:       5,
		StartDate:    date(2024, 3, 1),
	})
	require.Error(t, err)
	assert.Equal(t, fiber.StatusNotFound, fiberStatus(t, err))

	var n int64
	require.NoError(t, db.Model(&leaseModel.LeaseModel{}).Count(&n).Error)
	assert.Zero(t, n)
}

func TestCreateLeaseRejectsNonTenant(t *testing.T) {
	db := testdb.Open(t)
	admin := testdb.Admin(t, db, "admin@rentpay.test")
	unit := testdb.Unit(t, db, testdb.Property(t, db, admin.ID).PropertyID)

	for name, tenantID := range map[string]uuid.UUID{
		"admin user":   admin.ID,
		"unknown user": uuid.New(),
	} {
		t.Run(name, func(t *testing.T) {
			_, err := NewLeaseService(db).CreateLease(context.Background(), testdb.ActorOf(admin), CreateLeaseInput{
				UnitID:       unit.UnitID,
				TenantUserID: tenantID,
				RentAmount:   1000,
				DueDay:       5,
				StartDate:    date(2024, 3, 1),
			})
			var fe helper.FieldErrors
			require.True(t, errors.As(err, &fe))
			assert.Contains(t, fe, "tenant_user_id")
		})
	}

	var leases, charges int64
	require.NoError(t, db.Model(&leaseModel.LeaseModel{}).Count(&leases).Error)
	require.NoError(t, db.Model(&chargeModel.ChargeModel{}).Count(&charges).Error)
	assert.Zero(t, leases)
	assert.Zero(t, charges)
}

func TestCreateLeaseValidatesTerms(t *testing.T) {
	db := testdb.Open(t)
	admin := testdb.Admin(t, db, "admin@rentpay.test")
	tenant := testdb.Tenant(t, db, "tenant@rentpay.test")
	unit := testdb.Unit(t, db, testdb.Property(t, db, admin.ID).PropertyID)
	end := date(2024, 2, 1)

	_, err := NewLeaseService(db).CreateLease(context.Background(), testdb.ActorOf(admin), CreateLeaseInput{
		UnitID:       unit.UnitID,
		TenantUserID: tenant.ID,
		RentAmount:   0,
		DueDay:       29,
		StartDate:    date(2024, 3, 1),
		EndDate:      &end,
	})
	var fe helper.FieldErrors
	require.True(t, errors.As(err, &fe))
	assert.Contains(t, fe, "rent_amount")
	assert.Contains(t, fe, "due_day")
	assert.Contains(t, fe, "end_date")
}

func TestCreateLeaseRequiresAdmin(t *testing.T) {
	db := testdb.Open(t)
	tenant := testdb.Tenant(t, db, "tenant@rentpay.test")

	_, err := NewLeaseService(db).CreateLease(context.Background(), testdb.ActorOf(tenant), CreateLeaseInput{})
	require.Error(t, err)
	assert.Equal(t, fiber.StatusForbidden, fiberStatus(t, err))
}

func TestGetLeaseVisibility(t *testing.T) {
	db := testdb.Open(t)
	r := testdb.NewRental(t, db)
	stranger := testdb.Tenant(t, db, "stranger@rentpay.test")
	svc := NewLeaseService(db)
	ctx := context.Background()

	got, err := svc.GetLease(ctx, testdb.ActorOf(r.Tenant), r.Lease.LeaseID)
	require.NoError(t, err)
	assert.Len(t, got.Charges, 1)

	_, err = svc.GetLease(ctx, testdb.ActorOf(r.Admin), r.Lease.LeaseID)
	require.NoError(t, err)

	_, err = svc.GetLease(ctx, testdb.ActorOf(stranger), r.Lease.LeaseID)
	assert.Equal(t, fiber.StatusNotFound, fiberStatus(t, err))
}

func TestUpdateLeaseKeepsCharges(t *testing.T) {
	db := testdb.Open(t)
	r := testdb.NewRental(t, db)
	rent := int64(130000)

	got, err := NewLeaseService(db).UpdateLease(context.Background(), testdb.ActorOf(r.Admin), r.Lease.LeaseID, UpdateLeaseInput{
		RentAmount: &rent,
	})
	require.NoError(t, err)
	assert.Equal(t, rent, got.LeaseRentAmount)
	require.Len(t, got.Charges, 1)
	assert.Equal(t, int64(120000), got.Charges[0].ChargeAmount)
}

func TestDeleteLeaseCascadesCharges(t *testing.T) {
	db := testdb.Open(t)
	r := testdb.NewRental(t, db)

	require.NoError(t, NewLeaseService(db).DeleteLease(context.Background(), testdb.ActorOf(r.Admin), r.Lease.LeaseID))

	var n int64
	require.NoError(t, db.Model(&chargeModel.ChargeModel{}).Where("charge_lease_id = ?", r.Lease.LeaseID).Count(&n).Error)
	assert.Zero(t, n)
}
