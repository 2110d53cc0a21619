package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"knarchief/internal/workbook"
)

func newValidateCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:         "validate <workbook.xlsx>",
		Short:       "Check the workbook structure without loading it",
		Args:        cobra.ExactArgs(1),
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			validation := workbook.Validate(args[0])
			printValidation(cmd, validation)
			if !validation.Valid {
				return fmt.Errorf("workbook validation failed")
			}
			return nil
		},
	}
}
