package seeds

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	chargeModel "rentpay_backend/internals/features/finance/charges/model"
	leaseModel "rentpay_backend/internals/features/rentals/leases/model"
	propertyModel "rentpay_backend/internals/features/rentals/properties/model"
	authHelper "rentpay_backend/internals/features/users/auth/helper"
	userModel "rentpay_backend/internals/features/users/user/model"
	"rentpay_backend/internals/helpers/testdb"
	users "rentpay_backend/internals/seeds/users"
)

func TestRunAllSeedsIsRepeatable(t *testing.T) {
	db := testdb.Open(t)
	now := time.Date(2024, time.March, 15, 9, 0, 0, 0, time.UTC)

	require.NoError(t, RunAllSeeds(context.Background(), db, now))
	require.NoError(t, RunAllSeeds(context.Background(), db, now))

	var n int64
	require.NoError(t, db.Model(&userModel.UserModel{}).Count(&n).Error)
	assert.EqualValues(t, 2, n)
	require.NoError(t, db.Model(&propertyModel.PropertyModel{}).Count(&n).Error)
	assert.EqualValues(t, 1, n)

	var lease leaseModel.LeaseModel
	require.NoError(t, db.Take(&lease).Error)
	assert.EqualValues(t, 150000, lease.LeaseRentAmount)
	assert.Equal(t, 1, lease.LeaseDueDay)

	var charges []chargeModel.ChargeModel
	require.NoError(t, db.Where("charge_lease_id = ?", lease.LeaseID).Find(&charges).Error)
	require.Len(t, charges, 1)
	assert.Equal(t, "2024-03-01", charges[0].ChargeDueDate.Format("2006-01-02"))
	assert.Equal(t, chargeModel.ChargeStatusDue, charges[0].ChargeStatus)

	var tenant userModel.UserModel
	require.NoError(t, db.Where("email = ?", "tenant@rentpay.test").Take(&tenant).Error)
	assert.Equal(t, "tenant", tenant.Role)
	assert.NoError(t, authHelper.CheckPasswordHash(tenant.Password, users.DemoPassword))
}
