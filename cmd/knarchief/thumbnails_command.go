package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"knarchief/internal/thumbnails"
)

func newThumbnailsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "thumbnails",
		Short: "Generate missing thumbnails under the resources tree",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			created, err := thumbnails.Generate(cmd.Context(), cfg.Paths.ResourcesDir, thumbnails.Options{
				MaxSize: cfg.Thumbnails.MaxSize,
				Quality: cfg.Thumbnails.Quality,
				Workers: cfg.Thumbnails.Workers,
			}, logger)
			if err != nil {
				return fmt.Errorf("generate thumbnails: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created %d thumbnails under %s\n", created, cfg.Paths.ResourcesDir)
			return nil
		},
	}
}
