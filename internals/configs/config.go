package configs

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

var (
	JWTSecret string
)

// =======================
// ENV LOADER
// =======================
func LoadEnv() {
	if os.Getenv("RAILWAY_ENVIRONMENT") == "" {
		if err := godotenv.Load(); err != nil {
			log.Println("[WARN] .env file not found, using system environment")
		} else {
			log.Println("[INFO] .env file loaded")
		}
	} else {
		log.Println("[INFO] Running in Railway, using system environment")
	}

	JWTSecret = GetEnv("JWT_SECRET")
	if JWTSecret == "" {
		log.Println("[ERROR] JWT_SECRET is not set")
	} else {
		log.Println("[INFO] JWT_SECRET loaded")
	}
}

func GetEnv(key string, defaultValue ...string) string {
	value, exists := os.LookupEnv(key)
	if (!exists || value == "") && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return value
}

func GetEnvBool(key string, defaultValue bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return defaultValue
	}
	return b
}

func GetEnvInt(key string, defaultValue int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return defaultValue
	}
	return n
}

// =======================
// PAYMENT CONFIG
// =======================

// PaymentConfig is resolved once at startup and handed to the payment
// controllers and providers.
type PaymentConfig struct {
	Provider   string // stripe | midtrans
	Currency   string
	SuccessURL string
	CancelURL  string

	StripeSecretKey     string
	StripeWebhookSecret string

	MidtransServerKey string
	MidtransUseProd   bool
}

func LoadPaymentConfig() PaymentConfig {
	appURL := strings.TrimRight(GetEnv("APP_URL", "http://localhost:5173"), "/")

	cfg := PaymentConfig{
		Provider:            strings.ToLower(GetEnv("PAYMENT_PROVIDER", "stripe")),
		Currency:            strings.ToLower(GetEnv("PAYMENT_CURRENCY", "usd")),
		SuccessURL:          GetEnv("CHECKOUT_SUCCESS_URL", appURL+"/tenant?paid=1"),
		CancelURL:           GetEnv("CHECKOUT_CANCEL_URL", appURL+"/tenant?canceled=1"),
		StripeSecretKey:     GetEnv("STRIPE_SECRET_KEY"),
		StripeWebhookSecret: GetEnv("STRIPE_WEBHOOK_SECRET"),
		MidtransServerKey:   GetEnv("MIDTRANS_SERVER_KEY"),
		MidtransUseProd:     GetEnvBool("MIDTRANS_USE_PROD", false),
	}

	if cfg.StripeWebhookSecret == "" {
		log.Println("[WARN] STRIPE_WEBHOOK_SECRET is empty, webhook signatures will not be verified")
	}
	return cfg
}
