package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	importService "rentpay_backend/internals/features/imports/service"
	authRepo "rentpay_backend/internals/features/users/auth/repository"
	helper "rentpay_backend/internals/helpers"
	helpersAuth "rentpay_backend/internals/helpers/auth"
	"rentpay_backend/internals/helpers/tabular"
)

var importAdminEmail string

var importCmd = &cobra.Command{
	Use:       "import [units|leases|charges] FILE",
	Short:     "Import a CSV or XLSX file on behalf of an admin",
	Args:      cobra.ExactArgs(2),
	ValidArgs: []string{"units", "leases", "charges"},
	RunE:      runImport,
}

func init() {
	importCmd.Flags().StringVar(&importAdminEmail, "admin-email", "", "email of the owning admin")
	_ = importCmd.MarkFlagRequired("admin-email")
}

type importFunc func(ctx context.Context, actor helpersAuth.Actor, t *tabular.Table) (int, []tabular.RowError, error)

func runImport(cmd *cobra.Command, args []string) error {
	kind, path := args[0], args[1]

	db, err := openDB()
	if err != nil {
		return err
	}
	svc := importService.NewImportService(db)

	var (
		headers []string
		fn      importFunc
	)
	switch kind {
	case "units":
		headers, fn = importService.UnitHeaders, svc.ImportUnits
	case "leases":
		headers, fn = importService.LeaseHeaders, svc.ImportLeases
	case "charges":
		headers, fn = importService.ChargeHeaders, svc.ImportCharges
	default:
		return fmt.Errorf("unknown import kind %q", kind)
	}

	admin, err := authRepo.FindUserByEmail(db, importAdminEmail)
	if err != nil {
		return fmt.Errorf("admin %s: %w", importAdminEmail, err)
	}
	actor := helpersAuth.Actor{ID: admin.ID, Role: admin.Role}
	if !actor.IsAdmin() {
		return fmt.Errorf("%s is not an admin", importAdminEmail)
	}

	format, err := tabular.FormatOf(filepath.Base(path))
	if err != nil {
		return err
	}
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	table, fileErrs := tabular.Read(format, f, headers)
	if len(fileErrs) > 0 {
		return reportRowErrors(cmd, fileErrs)
	}

	n, rowErrs, err := fn(cmd.Context(), actor, table)
	if err != nil {
		if m, ok := helper.ValidationErrorsToMap(err); ok {
			return fmt.Errorf("validation failed: %v", helper.Messages(m))
		}
		return err
	}
	if len(rowErrs) > 0 {
		return reportRowErrors(cmd, rowErrs)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "✅ imported %d %s\n", n, kind)
	return nil
}

func reportRowErrors(cmd *cobra.Command, errs []tabular.RowError) error {
	for _, e := range errs {
		fmt.Fprintf(cmd.ErrOrStderr(), "row %d: %v\n", e.Row, e.Errors)
	}
	return fmt.Errorf("import rejected: %d row(s) with errors", len(errs))
}
