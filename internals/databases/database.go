package database

import (
	"fmt"
	"log"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"rentpay_backend/internals/configs"
)

var DB *gorm.DB

func ConnectDB() {
	driver := strings.ToLower(configs.GetEnv("DB_DRIVER", "postgres"))
	log.Printf("[INFO] Connecting to database (driver=%s)...", driver)

	db, err := Open(driver, databaseDSN(driver))
	if err != nil {
		log.Fatalf("[ERROR] Failed to connect DB: %v", err)
	}
	DB = db
	log.Println("[INFO] DB connected.")
}

// Open returns a gorm handle for the given driver. TranslateError is always on
// so unique violations surface as gorm.ErrDuplicatedKey on both drivers.
func Open(driver, dsn string) (*gorm.DB, error) {
	cfg := &gorm.Config{
		Logger:         configs.NewGormLogger(),
		TranslateError: true,
	}

	switch driver {
	case "postgres", "postgresql", "":
		return gorm.Open(postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true, // PgBouncer transaction pooling
		}), cfg)
	case "sqlite", "sqlite3":
		return gorm.Open(sqlite.Open(dsn), cfg)
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", driver)
	}
}

func databaseDSN(driver string) string {
	if dsn := configs.GetEnv("DATABASE_URL"); dsn != "" {
		return dsn
	}
	if driver == "sqlite" || driver == "sqlite3" {
		return "rentpay.db"
	}
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&application_name=rentpay&options=-c statement_timeout=3000",
		configs.GetEnv("DB_USER"),
		configs.GetEnv("DB_PASSWORD"),
		configs.GetEnv("DB_HOST", "localhost"),
		configs.GetEnv("DB_PORT", "5432"),
		configs.GetEnv("DB_NAME", "rentpay"),
		configs.GetEnv("DB_SSLMODE", "disable"),
	)
}

func TunePool() {
	sqlDB, err := DB.DB()
	if err != nil {
		log.Printf("[WARN] pool tune err: %v", err)
		return
	}
	if DB.Dialector.Name() == "sqlite" {
		// single writer
		sqlDB.SetMaxOpenConns(1)
		return
	}
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxIdleTime(60 * time.Second)
	sqlDB.SetConnMaxLifetime(10 * time.Minute)
}

func WarmUpQueries() {
	go func() {
		time.Sleep(500 * time.Millisecond)
		if err := Ping(DB); err != nil {
			log.Printf("[WARN] warm-up ping err: %v", err)
		}
	}()
}

func Ping(db *gorm.DB) error {
	if db == nil {
		return fmt.Errorf("database not initialized")
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}
