package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/germanamz/hubmcp/pkg/config"
	"github.com/germanamz/hubmcp/pkg/tools/mcpserver"
	"github.com/spf13/cobra"
)

// shutdownTimeout bounds graceful shutdown of the http transport.
const shutdownTimeout = 5 * time.Second

func serveCmd(opts *options) *cobra.Command {
	var (
		transport string
		addr      string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the MCP server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}

			if transport != "" {
				cfg.Server.Transport = transport
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			return serve(ctx, cfg)
		},
	}

	cmd.Flags().StringVar(&transport, "transport", "", "transport: stdio or http (overrides server.transport)")
	cmd.Flags().StringVar(&addr, "addr", "", "listen address for the http transport (overrides server.addr)")

	return cmd
}

func serve(ctx context.Context, cfg config.Config) error {
	log := newLogger(cfg.Log, os.Stderr)

	tools, err := newToolBox(cfg, log)
	if err != nil {
		return err
	}

	srv := mcpserver.New(cfg.Server.Name, cfg.Server.Version, tools)

	log.InfoContext(ctx, "hubmcp starting",
		"transport", cfg.Server.Transport,
		"hub", cfg.Hub.BaseURL,
		"tools", len(tools.Tools()),
	)

	if cfg.Server.Transport == config.TransportStdio {
		err := srv.Serve(ctx, os.Stdin, os.Stdout)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	}

	httpSrv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           newRouter(srv, log),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.InfoContext(ctx, "listening", "addr", cfg.Server.Addr)
		errCh <- httpSrv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		return err
	}

	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
