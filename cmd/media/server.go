package main

import (
	"github.com/spf13/cobra"

	"github.com/meigma/media/server"
)

func serverCommand() *cobra.Command {
	var opts server.Options

	cmd := &cobra.Command{
		Use:   "server",
		Short: "Serve an app package and a content package over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger, err := newLogger()
			if err != nil {
				return err
			}
			opts.Logger = logger
			return server.Run(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.Address, "address", "", "address to listen on")
	cmd.Flags().StringVar(&opts.App, "app", "", "app package to serve")
	cmd.Flags().StringVar(&opts.Content, "content", "", "content package to serve")
	_ = cmd.MarkFlagRequired("address")
	_ = cmd.MarkFlagRequired("app")
	_ = cmd.MarkFlagRequired("content")
	return cmd
}
