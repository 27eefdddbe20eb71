package service

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"gorm.io/gorm"

	"rentpay_backend/internals/configs"
	authHelper "rentpay_backend/internals/features/users/auth/helper"
	authRepo "rentpay_backend/internals/features/users/auth/repository"
	userModel "rentpay_backend/internals/features/users/user/model"
)

/* ==========================
   Const & Types
========================== */

const accessTTLDefault = 24 * time.Hour

var (
	errBadCredentials = fiber.NewError(fiber.StatusUnauthorized, "Invalid credentials.")
	errInactive       = fiber.NewError(fiber.StatusForbidden, "Account is disabled.")
)

type LoginResult struct {
	AccessToken string
	ExpiresAt   time.Time
	User        userModel.UserModel
}

/* ==========================
   Small Helpers
========================== */

func nowUTC() time.Time { return time.Now().UTC() }

func getJWTSecret() (string, error) {
	secret := strings.TrimSpace(configs.JWTSecret)
	if secret == "" {
		return "", fiber.NewError(fiber.StatusInternalServerError, "JWT_SECRET belum diset")
	}
	return secret, nil
}

func buildAccessClaims(user userModel.UserModel, now time.Time) jwt.MapClaims {
	return jwt.MapClaims{
		"typ":       "access",
		"sub":       user.ID.String(),
		"id":        user.ID.String(),
		"user_name": user.UserName,
		"role":      user.Role,
		"iat":       now.Unix(),
		"exp":       now.Add(accessTTLDefault).Unix(),
	}
}

// IssueAccessToken menandatangani access token HS256 untuk user.
func IssueAccessToken(user userModel.UserModel, now time.Time) (string, time.Time, error) {
	secret, err := getJWTSecret()
	if err != nil {
		return "", time.Time{}, err
	}
	claims := buildAccessClaims(user, now)
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return "", time.Time{}, err
	}
	return tok, now.Add(accessTTLDefault), nil
}

/* ==========================
   LOGIN
========================== */

func Login(ctx context.Context, db *gorm.DB, email, password string) (*LoginResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if err := authHelper.ValidateLoginInput(email, password); err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	user, err := authRepo.FindUserByEmail(db.WithContext(ctx), email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errBadCredentials
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, errInactive
	}
	if err := authHelper.CheckPasswordHash(user.Password, password); err != nil {
		return nil, errBadCredentials
	}

	token, exp, err := IssueAccessToken(*user, nowUTC())
	if err != nil {
		return nil, err
	}
	log.Printf("[INFO] login user=%s role=%s", user.ID, user.Role)
	return &LoginResult{AccessToken: token, ExpiresAt: exp, User: *user}, nil
}

/* ==========================
   LOGOUT
========================== */

// Logout mem-blacklist access token sampai exp-nya lewat (idempotent).
func Logout(ctx context.Context, db *gorm.DB, accessToken string) error {
	if accessToken == "" {
		log.Println("[INFO] Logout tanpa access token")
		return nil
	}
	if err := authRepo.BlacklistToken(db.WithContext(ctx), accessToken, resolveBlacklistTTL(accessToken)); err != nil {
		log.Printf("[WARN] Failed to blacklist token: %v", err)
		return err
	}
	return nil
}

func resolveBlacklistTTL(accessToken string) time.Duration {
	ttl := 2 * time.Minute
	secret := strings.TrimSpace(configs.JWTSecret)
	if secret == "" {
		return ttl
	}
	tok, err := jwt.Parse(accessToken, func(t *jwt.Token) (any, error) {
		return []byte(secret), nil
	})
	if err != nil {
		return ttl
	}
	if claims, ok := tok.Claims.(jwt.MapClaims); ok && tok.Valid {
		if exp, ok := claims["exp"].(float64); ok {
			if until := time.Until(time.Unix(int64(exp), 0)); until > 0 {
				return until + 60*time.Second
			}
			return time.Minute
		}
	}
	return ttl
}
