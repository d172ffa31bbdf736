package main

import (
	"context"
	"fmt"
	"time"

	"github.com/germanamz/hubmcp/pkg/hub"
	"github.com/spf13/cobra"
)

// checkTimeout bounds the credential check.
const checkTimeout = 10 * time.Second

func checkCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Verify the hub URL and token over the WebSocket API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), checkTimeout)
			defer cancel()

			client := hub.New(cfg.Hub.BaseURL, cfg.Hub.Token, 0)

			res, err := client.Handshake(ctx)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "hub at %s accepted the token (version %s)\n", client.BaseURL, res.Version)

			return nil
		},
	}
}
