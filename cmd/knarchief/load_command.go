package main

import (
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"knarchief/internal/config"
	"knarchief/internal/loader"
	"knarchief/internal/store"
	"knarchief/internal/workbook"
)

func newLoadCommand(ctx *commandContext) *cobra.Command {
	var skipValidation bool

	cmd := &cobra.Command{
		Use:   "load <workbook.xlsx>",
		Short: "Validate and load the archive workbook into the database",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			out := cmd.OutOrStdout()

			if !skipValidation {
				validation := workbook.Validate(path)
				printValidation(cmd, validation)
				if !validation.Valid {
					return fmt.Errorf("workbook validation failed; load refused")
				}
			}

			return ctx.withStore(func(cfg *config.Config, st *store.Store, logger *slog.Logger) error {
				report, err := loader.New(cfg, st, logger).Run(cmd.Context(), path)
				if err != nil {
					return fmt.Errorf("load workbook: %w", err)
				}

				tables := make([]string, 0, len(report.Tables))
				for name := range report.Tables {
					tables = append(tables, name)
				}
				sort.Strings(tables)

				rows := make([][]string, 0, len(tables)+1)
				for _, name := range tables {
					rows = append(rows, []string{name, strconv.Itoa(report.Tables[name])})
				}
				rows = append(rows, []string{"thumbnails created", strconv.Itoa(report.Thumbnails)})

				fmt.Fprintln(out, renderTable(out, []string{"Table", "Rows"}, rows, []columnAlignment{alignLeft, alignRight}))
				fmt.Fprintf(out, "Load %s complete\n", report.RunID)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&skipValidation, "skip-validation", false, "Load without checking the workbook structure first")
	return cmd
}

func printValidation(cmd *cobra.Command, validation workbook.Validation) {
	out := cmd.OutOrStdout()
	for _, warning := range validation.Warnings {
		fmt.Fprintf(out, "warning: %s\n", warning)
	}
	for _, message := range validation.Errors {
		fmt.Fprintf(cmd.ErrOrStderr(), "error: %s\n", message)
	}
	if validation.Valid {
		sheets := make([]string, 0, len(validation.SheetRows))
		for name := range validation.SheetRows {
			sheets = append(sheets, name)
		}
		sort.Strings(sheets)
		counts := make([]string, 0, len(sheets))
		for _, name := range sheets {
			counts = append(counts, fmt.Sprintf("%s=%d", name, validation.SheetRows[name]))
		}
		fmt.Fprintf(out, "Workbook valid (%s)\n", strings.Join(counts, ", "))
	}
}
