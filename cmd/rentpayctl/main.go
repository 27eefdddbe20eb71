package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"rentpay_backend/internals/configs"
	database "rentpay_backend/internals/databases"
)

func main() {
	configs.LoadEnv()

	rootCmd := &cobra.Command{
		Use:   "rentpayctl",
		Short: "RentPay admin tool",
	}

	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(importCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// openDB memakai DB_DRIVER/DATABASE_URL yang sama dengan server.
func openDB() (*gorm.DB, error) {
	database.ConnectDB()
	database.TunePool()
	if database.DB == nil {
		return nil, fmt.Errorf("database not initialized")
	}
	return database.DB, nil
}
