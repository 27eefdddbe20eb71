package users

import (
	"context"
	"errors"
	"log"

	"gorm.io/gorm"

	"rentpay_backend/internals/constants"
	authHelper "rentpay_backend/internals/features/users/auth/helper"
	userModel "rentpay_backend/internals/features/users/user/model"
)

const DemoPassword = "password"

type userSeed struct {
	Name  string
	Email string
	Role  string
}

var demoUsers = []userSeed{
	{Name: "Admin User", Email: "admin@rentpay.test", Role: constants.RoleAdmin},
	{Name: "Tenant User", Email: "tenant@rentpay.test", Role: constants.RoleTenant},
}

// SeedDemoUsers mengembalikan (admin, tenant).
func SeedDemoUsers(ctx context.Context, db *gorm.DB) (*userModel.UserModel, *userModel.UserModel, error) {
	hash, err := authHelper.HashPassword(DemoPassword)
	if err != nil {
		return nil, nil, err
	}

	out := make([]*userModel.UserModel, 0, len(demoUsers))
	for _, s := range demoUsers {
		var u userModel.UserModel
		err := db.WithContext(ctx).Where("email = ?", s.Email).Take(&u).Error
		switch {
		case err == nil:
			log.Printf("ℹ️ [SEED] user %s sudah ada, dilewati.", s.Email)
		case errors.Is(err, gorm.ErrRecordNotFound):
			u = userModel.UserModel{
				UserName: s.Name,
				Email:    s.Email,
				Password: hash,
				Role:     s.Role,
				IsActive: true,
			}
			if err := db.WithContext(ctx).Create(&u).Error; err != nil {
				return nil, nil, err
			}
			log.Printf("✅ [SEED] user %s (%s)", s.Email, s.Role)
		default:
			return nil, nil, err
		}
		out = append(out, &u)
	}
	return out[0], out[1], nil
}
