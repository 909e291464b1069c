package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"finance-reports/internal/export"
	"finance-reports/internal/report"
	"finance-reports/internal/service"
	"finance-reports/internal/store"
)

func reportCmd() *cobra.Command {
	var (
		userFlag string
		xlsxPath string
		filters  = report.DefaultFilters()
		period   string
		kind     string
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print a user's report as JSON or write it as a spreadsheet",
		Long: `Fetch the transactions of a user and print the aggregated report.

With no flags every transaction is reported. Without --start/--end an explicit
--period (day, month, year) narrows the window to the current day, month or
year; --period custom covers all transactions.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			userID, err := uuid.Parse(userFlag)
			if err != nil {
				return fmt.Errorf("invalid --user %q: %w", userFlag, err)
			}
			filters.Period = report.Period(period)
			filters.Type = report.Kind(kind)
			if cmd.Flags().Changed("period") {
				filters = filters.Resolve(time.Now())
			}
			if err := filters.Validate(); err != nil {
				return err
			}

			db, err := store.Open(ctx, cfg.DatabaseURL, store.ConnectOptions{
				MaxRetries: cfg.DBMaxRetries,
				RetryDelay: cfg.DBRetryDelay,
			})
			if err != nil {
				return fmt.Errorf("failed to initialize database: %w", err)
			}
			st := store.New(db)
			defer st.Close()

			res, err := service.NewReports(st, nil).Build(ctx, userID, filters)
			if err != nil {
				return err
			}

			if xlsxPath == "" {
				return writeJSON(cmd.OutOrStdout(), res)
			}
			return writeXLSX(xlsxPath, res)
		},
	}

	cmd.Flags().StringVar(&userFlag, "user", "", "user id (UUID) to report on")
	cmd.Flags().StringVar(&period, "period", string(report.PeriodMonth), "reporting window preset (day, month, year, custom)")
	cmd.Flags().StringVar(&filters.StartDate, "start", "", "first day included (YYYY-MM-DD)")
	cmd.Flags().StringVar(&filters.EndDate, "end", "", "last day included (YYYY-MM-DD)")
	cmd.Flags().StringVar(&kind, "type", "", "only income or expense transactions")
	cmd.Flags().StringVar(&filters.CategoryID, "category", "", "only transactions of this category id")
	cmd.Flags().StringVar(&xlsxPath, "xlsx", "", "write an XLSX workbook to this path instead of printing JSON")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}

func writeJSON(w io.Writer, res *service.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}

func writeXLSX(path string, res *service.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := export.WriteWorkbook(f, res.Filters, res.Transactions, res.Report); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
