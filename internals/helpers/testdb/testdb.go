// Package testdb opens a migrated in-memory sqlite database and creates the
// fixtures that service and route tests share.
package testdb

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"rentpay_backend/internals/constants"
	database "rentpay_backend/internals/databases"
	chargeModel "rentpay_backend/internals/features/finance/charges/model"
	leaseModel "rentpay_backend/internals/features/rentals/leases/model"
	propertyModel "rentpay_backend/internals/features/rentals/properties/model"
	unitModel "rentpay_backend/internals/features/rentals/units/model"
	userModel "rentpay_backend/internals/features/users/user/model"
	helpersAuth "rentpay_backend/internals/helpers/auth"
)

// Open returns a fresh database per test. One connection keeps the shared
// in-memory database alive and serializes writers.
func Open(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := database.Open("sqlite", "file:"+name+"_"+uuid.NewString()+"?mode=memory&cache=shared")
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, database.AutoMigrate(db))
	return db
}

func User(t *testing.T, db *gorm.DB, role, email string) *userModel.UserModel {
	t.Helper()
	u := &userModel.UserModel{
		UserName: strings.Split(email, "@")[0],
		Email:    email,
		Password: "x",
		Role:     role,
		IsActive: true,
	}
	require.NoError(t, db.Create(u).Error)
	return u
}

func Admin(t *testing.T, db *gorm.DB, email string) *userModel.UserModel {
	return User(t, db, constants.RoleAdmin, email)
}

func Tenant(t *testing.T, db *gorm.DB, email string) *userModel.UserModel {
	return User(t, db, constants.RoleTenant, email)
}

func ActorOf(u *userModel.UserModel) helpersAuth.Actor {
	return helpersAuth.Actor{ID: u.ID, Role: u.Role}
}

func Property(t *testing.T, db *gorm.DB, ownerID uuid.UUID) *propertyModel.PropertyModel {
	t.Helper()
	p := &propertyModel.PropertyModel{PropertyUserID: ownerID, PropertyName: "Maple Apartments"}
	require.NoError(t, db.Create(p).Error)
	return p
}

func Unit(t *testing.T, db *gorm.DB, propertyID uuid.UUID) *unitModel.UnitModel {
	t.Helper()
	u := &unitModel.UnitModel{UnitPropertyID: propertyID, UnitName: "Unit 1A"}
	require.NoError(t, db.Create(u).Error)
	return u
}

// Lease inserts a lease directly, without the seed charge.
func Lease(t *testing.T, db *gorm.DB, unitID, tenantID uuid.UUID, rent int64) *leaseModel.LeaseModel {
	t.Helper()
	l := &leaseModel.LeaseModel{
		LeaseUnitID:       unitID,
		LeaseTenantUserID: tenantID,
		LeaseRentAmount:   rent,
		LeaseDueDay:       1,
		LeaseStartDate:    time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, db.Create(l).Error)
	return l
}

func Charge(t *testing.T, db *gorm.DB, leaseID uuid.UUID, amount int64, status chargeModel.ChargeStatus) *chargeModel.ChargeModel {
	t.Helper()
	c := &chargeModel.ChargeModel{
		ChargeLeaseID: leaseID,
		ChargeAmount:  amount,
		ChargeDueDate: time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC),
		ChargeStatus:  status,
	}
	require.NoError(t, db.Create(c).Error)
	return c
}

// Rental builds admin → property → unit → lease(tenant) → due charge.
type Rental struct {
	Admin  *userModel.UserModel
	Tenant *userModel.UserModel
	Unit   *unitModel.UnitModel
	Lease  *leaseModel.LeaseModel
	Charge *chargeModel.ChargeModel
}

func NewRental(t *testing.T, db *gorm.DB) *Rental {
	t.Helper()
	admin := Admin(t, db, "admin-"+uuid.NewString()[:8]+"@rentpay.test")
	tenant := Tenant(t, db, "tenant-"+uuid.NewString()[:8]+"@rentpay.test")
	prop := Property(t, db, admin.ID)
	unit := Unit(t, db, prop.PropertyID)
	lease := Lease(t, db, unit.UnitID, tenant.ID, 120000)
	charge := Charge(t, db, lease.LeaseID, 120000, chargeModel.ChargeStatusDue)
	return &Rental{Admin: admin, Tenant: tenant, Unit: unit, Lease: lease, Charge: charge}
}
