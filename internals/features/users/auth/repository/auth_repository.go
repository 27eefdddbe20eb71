package repository

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"rentpay_backend/internals/constants"
	authModel "rentpay_backend/internals/features/users/auth/model"
	userModel "rentpay_backend/internals/features/users/user/model"
)

/* ====================== USER ====================== */

func FindUserByEmail(db *gorm.DB, email string) (*userModel.UserModel, error) {
	var user userModel.UserModel
	if err := db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func FindUserByID(db *gorm.DB, userID uuid.UUID) (*userModel.UserModel, error) {
	var user userModel.UserModel
	if err := db.First(&user, "id = ?", userID).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func FindTenantByID(db *gorm.DB, userID uuid.UUID) (*userModel.UserModel, error) {
	var user userModel.UserModel
	if err := db.Where("id = ? AND role = ?", userID, constants.RoleTenant).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func ListTenants(db *gorm.DB) ([]userModel.UserModel, error) {
	var users []userModel.UserModel
	err := db.Where("role = ?", constants.RoleTenant).Order("user_name ASC").Find(&users).Error
	return users, err
}

func CreateUser(db *gorm.DB, user *userModel.UserModel) error {
	return db.Create(user).Error
}

/* ====================== BLACKLIST TOKEN ====================== */

func BlacklistToken(db *gorm.DB, token string, ttl time.Duration) error {
	return db.Clauses(clause.OnConflict{DoNothing: true}).Create(&authModel.TokenBlacklist{
		Token:     token,
		ExpiredAt: time.Now().UTC().Add(ttl),
	}).Error
}

func IsTokenBlacklisted(db *gorm.DB, token string) (bool, error) {
	var n int64
	if err := db.Model(&authModel.TokenBlacklist{}).Where("token = ?", token).Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

func CleanupExpiredBlacklist(db *gorm.DB, before time.Time) (int64, error) {
	res := db.Where("expired_at < ?", before).Delete(&authModel.TokenBlacklist{})
	return res.RowsAffected, res.Error
}
