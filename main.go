package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"

	"rentpay_backend/internals/configs"
	database "rentpay_backend/internals/databases"
	paymentService "rentpay_backend/internals/features/finance/payments/service"
	scheduler "rentpay_backend/internals/features/users/auth/scheduler"
	helper "rentpay_backend/internals/helpers"
	middlewares "rentpay_backend/internals/middlewares"
	routes "rentpay_backend/internals/route"
)

func main() {
	configs.LoadEnv()

	app := fiber.New(fiber.Config{
		// 🚀 JSON super cepat
		JSONEncoder:             sonic.Marshal,
		JSONDecoder:             sonic.Unmarshal,
		DisableStartupMessage:   true,
		ErrorHandler:            helper.FiberErrorHandler,
		ProxyHeader:             fiber.HeaderXForwardedFor,
		EnableTrustedProxyCheck: true,
		TrustedProxies:          []string{"0.0.0.0/0"},
	})

	middlewares.SetupMiddlewares(app)

	// 🔌 DB connect + pool + warm-up
	database.ConnectDB()
	database.TunePool()
	if configs.GetEnvBool("DB_AUTO_MIGRATE", false) {
		if err := database.AutoMigrate(database.DB); err != nil {
			log.Fatalf("[ERROR] auto migrate: %v", err)
		}
	}
	database.WarmUpQueries()

	bgCtx, stopBackground := context.WithCancel(context.Background())
	defer stopBackground()

	// ⏱ scheduler setelah DB siap
	scheduler.StartBlacklistCleanupScheduler(bgCtx, database.DB)

	// 💳 provider pembayaran
	paymentCfg := configs.LoadPaymentConfig()
	provider, err := paymentService.NewProviderFromConfig(paymentCfg)
	if err != nil {
		// checkout akan menjawab 502 sampai konfigurasi diperbaiki
		log.Printf("[WARN] payment provider disabled: %v", err)
	}

	// ✅ Routes
	routes.SetupRoutes(app, database.DB, routes.Options{
		PaymentConfig: paymentCfg,
		Provider:      provider,
	})

	// 🔒 Keep-Alive & timeout koneksi server
	app.Server().ReadTimeout = 15 * time.Second
	app.Server().WriteTimeout = 30 * time.Second
	app.Server().IdleTimeout = 90 * time.Second

	port := configs.GetEnv("PORT", "3000")

	go func() {
		log.Printf("✅ Listening on :%s", port)
		if err := app.Listen("0.0.0.0:" + port); err != nil {
			log.Fatalf("server error: %v", err)
		}
	}()

	// graceful shutdown + tutup pool DB
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	stopBackground()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = app.ShutdownWithContext(ctx)

	if sqlDB, err := database.DB.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
