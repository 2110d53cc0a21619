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

func newMembersCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "members",
		Short: "List members in the loaded archive",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, st *store.Store, logger *slog.Logger) error {
				members, err := reader.New(cfg, st, logger).ListMembers(cmd.Context())
				if err != nil {
					return err
				}

				rows := make([][]string, 0, len(members))
				for _, member := range members {
					rows = append(rows, []string{
						member.ID,
						member.FirstName,
						member.LastName,
						formatYear(member.StartYear),
						strconv.FormatInt(member.MediaCount, 10),
						strconv.Itoa(len(member.Roles)),
					})
				}

				out := cmd.OutOrStdout()
				headers := []string{"ID", "First name", "Last name", "Since", "Media", "Performances"}
				aligns := []columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignRight}
				fmt.Fprintln(out, renderTable(out, headers, rows, aligns))
				fmt.Fprintf(out, "%d members\n", len(members))
				return nil
			})
		},
	}
}

func formatYear(year *int64) string {
	if year == nil {
		return ""
	}
	return strconv.FormatInt(*year, 10)
}
