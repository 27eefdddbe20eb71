package main

import (
	"time"

	"github.com/spf13/cobra"

	"rentpay_backend/internals/seeds"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert demo admin, tenant, property, unit and lease",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		return seeds.RunAllSeeds(cmd.Context(), db, time.Now().UTC())
	},
}
