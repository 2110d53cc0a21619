package main

import (
	"fmt"
	"log/slog"
	"strconv"

	"github.com/spf13/cobra"

	"knarchief/internal/config"
	"knarchief/internal/reader"
	"knarchief/internal/store"
)

func newPerformancesCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "performances",
		Short: "List staged productions in the loaded archive",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, st *store.Store, logger *slog.Logger) error {
				performances, err := reader.New(cfg, st, logger).ListPerformances(cmd.Context())
				if err != nil {
					return err
				}

				rows := make([][]string, 0, len(performances))
				for _, performance := range performances {
					director := ""
					if performance.Director != nil {
						director = *performance.Director
					}
					rows = append(rows, []string{
						performance.Ref,
						performance.Title,
						formatYear(performance.Year),
						director,
						strconv.Itoa(len(performance.Cast)),
						strconv.FormatInt(performance.MediaCount, 10),
					})
				}

				out := cmd.OutOrStdout()
				headers := []string{"Ref", "Title", "Year", "Director", "Cast", "Media"}
				aligns := []columnAlignment{alignLeft, alignLeft, alignRight, alignLeft, alignRight, alignRight}
				fmt.Fprintln(out, renderTable(out, headers, rows, aligns))
				fmt.Fprintf(out, "%d performances\n", len(performances))
				return nil
			})
		},
	}
}
