package service

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	chargeModel "rentpay_backend/internals/features/finance/charges/model"
	leaseModel "rentpay_backend/internals/features/rentals/leases/model"
	unitModel "rentpay_backend/internals/features/rentals/units/model"
	"rentpay_backend/internals/helpers/tabular"
	"rentpay_backend/internals/helpers/testdb"
)

func csvTable(t *testing.T, body string, headers []string) *tabular.Table {
	t.Helper()
	table, errs := tabular.Read("csv", strings.NewReader(body), headers)
	require.Empty(t, errs)
	return table
}

func TestImportUnits(t *testing.T) {
	db := testdb.Open(t)
	admin := testdb.Admin(t, db, "admin@rentpay.test")
	prop := testdb.Property(t, db, admin.ID)

	body := "property_id,name,notes\n" +
		prop.PropertyID.String() + ",Unit 1A,ground\n" +
		prop.PropertyID.String() + ",Unit 1B,\n"

	n, rowErrs, err := NewImportService(db).ImportUnits(context.Background(), testdb.ActorOf(admin), csvTable(t, body, UnitHeaders))
	require.NoError(t, err)
	require.Empty(t, rowErrs)
	assert.Equal(t, 2, n)

	var units []unitModel.UnitModel
	require.NoError(t, db.Order("unit_name").Find(&units).Error)
	require.Len(t, units, 2)
	require.NotNil(t, units[0].UnitNotes)
	assert.Equal(t, "ground", *units[0].UnitNotes)
	assert.Nil(t, units[1].UnitNotes)
}

func TestImportUnitsAllOrNothing(t *testing.T) {
	db := testdb.Open(t)
	admin := testdb.Admin(t, db, "admin@rentpay.test")
	other := testdb.Admin(t, db, "other@rentpay.test")
	prop := testdb.Property(t, db, admin.ID)
	foreign := testdb.Property(t, db, other.ID)

	body := "property_id,name,notes\n" +
		prop.PropertyID.String() + ",Unit 1A,\n" +
		"not-a-uuid,Unit 1B,\n" +
		foreign.PropertyID.String() + ",Unit 1C,\n"

	n, rowErrs, err := NewImportService(db).ImportUnits(context.Background(), testdb.ActorOf(admin), csvTable(t, body, UnitHeaders))
	require.NoError(t, err)
	assert.Zero(t, n)
	require.Len(t, rowErrs, 2)
	assert.Equal(t, 3, rowErrs[0].Row)
	assert.Equal(t, []string{"The property_id must be a valid UUID."}, rowErrs[0].Errors)
	assert.Equal(t, 4, rowErrs[1].Row)
	assert.Equal(t, []string{"Property not found for admin."}, rowErrs[1].Errors)

	var count int64
	require.NoError(t, db.Model(&unitModel.UnitModel{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestImportLeasesCreatesSeedCharges(t *testing.T) {
	db := testdb.Open(t)
	admin := testdb.Admin(t, db, "admin@rentpay.test")
	tenant := testdb.Tenant(t, db, "tenant@rentpay.test")
	unit := testdb.Unit(t, db, testdb.Property(t, db, admin.ID).PropertyID)

	body := "unit_id,tenant_user_id,rent_amount,due_day,start_date,end_date\n" +
		unit.UnitID.String() + "," + tenant.ID.String() + ",120000,1,2024-03-15,\n"

	n, rowErrs, err := NewImportService(db).ImportLeases(context.Background(), testdb.ActorOf(admin), csvTable(t, body, LeaseHeaders))
	require.NoError(t, err)
	require.Empty(t, rowErrs)
	assert.Equal(t, 1, n)

	var charges []chargeModel.ChargeModel
	require.NoError(t, db.Find(&charges).Error)
	require.Len(t, charges, 1)
	assert.Equal(t, "2024-04-01", charges[0].ChargeDueDate.UTC().Format("2006-01-02"))
}

func TestImportLeasesRowErrors(t *testing.T) {
	db := testdb.Open(t)
	admin := testdb.Admin(t, db, "admin@rentpay.test")
	tenant := testdb.Tenant(t, db, "tenant@rentpay.test")
	unit := testdb.Unit(t, db, testdb.Property(t, db, admin.ID).PropertyID)

	body := "unit_id,tenant_user_id,rent_amount,due_day,start_date,end_date\n" +
		unit.UnitID.String() + "," + tenant.ID.String() + ",120000,31,2024-03-15,\n" +
		unit.UnitID.String() + "," + admin.ID.String() + ",120000,1,2024-03-15,\n" +
		unit.UnitID.String() + "," + tenant.ID.String() + ",abc,1,15/03/2024,\n"

	n, rowErrs, err := NewImportService(db).ImportLeases(context.Background(), testdb.ActorOf(admin), csvTable(t, body, LeaseHeaders))
	require.NoError(t, err)
	assert.Zero(t, n)
	require.Len(t, rowErrs, 3)
	assert.Equal(t, []string{"The due_day must be between 1 and 28."}, rowErrs[0].Errors)
	assert.Equal(t, []string{"Tenant user not found."}, rowErrs[1].Errors)
	assert.Equal(t, 4, rowErrs[2].Row)
	assert.Len(t, rowErrs[2].Errors, 2)

	var count int64
	require.NoError(t, db.Model(&leaseModel.LeaseModel{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestImportChargesRejectsPaid(t *testing.T) {
	db := testdb.Open(t)
	r := testdb.NewRental(t, db)

	body := "lease_id,amount,due_date,status\n" +
		r.Lease.LeaseID.String() + ",5000,2024-05-01,due\n" +
		r.Lease.LeaseID.String() + ",5000,2024-06-01,paid\n" +
		uuid.NewString() + ",5000,2024-06-01,\n"

	n, rowErrs, err := NewImportService(db).ImportCharges(context.Background(), testdb.ActorOf(r.Admin), csvTable(t, body, ChargeHeaders))
	require.NoError(t, err)
	assert.Zero(t, n)
	require.Len(t, rowErrs, 2)
	assert.Equal(t, 3, rowErrs[0].Row)
	assert.Equal(t, []string{"The selected status is invalid."}, rowErrs[0].Errors)
	assert.Equal(t, []string{"Lease not found for admin."}, rowErrs[1].Errors)
}

func TestImportChargesDefaultsToDue(t *testing.T) {
	db := testdb.Open(t)
	r := testdb.NewRental(t, db)

	body := "lease_id,amount,due_date,status\n" +
		r.Lease.LeaseID.String() + ",5000,2024-05-01,\n" +
		r.Lease.LeaseID.String() + ",7000,2024-06-01,VOID\n"

	n, rowErrs, err := NewImportService(db).ImportCharges(context.Background(), testdb.ActorOf(r.Admin), csvTable(t, body, ChargeHeaders))
	require.NoError(t, err)
	require.Empty(t, rowErrs)
	assert.Equal(t, 2, n)

	var voids int64
	require.NoError(t, db.Model(&chargeModel.ChargeModel{}).Where("charge_status = ?", chargeModel.ChargeStatusVoid).Count(&voids).Error)
	assert.Equal(t, int64(1), voids)
}
