package main

import (
	"github.com/spf13/cobra"

	"github.com/meigma/media/pack"
)

func packageCommand() *cobra.Command {
	var root, output string

	cmd := &cobra.Command{
		Use:   "package",
		Short: "Build a package from a source directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger, err := newLogger()
			if err != nil {
				return err
			}
			return pack.Create(cmd.Context(), root, output, pack.WithLogger(logger))
		},
	}

	cmd.Flags().StringVar(&root, "root", "", "directory to package")
	cmd.Flags().StringVar(&output, "output", "", "package file to write")
	_ = cmd.MarkFlagRequired("root")
	_ = cmd.MarkFlagRequired("output")
	return cmd
}
