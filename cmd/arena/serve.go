package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/arenalabs/arena/internal/config"
	"github.com/arenalabs/arena/internal/server"
	"github.com/arenalabs/arena/pkg/compare"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the comparison HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		cfg, err := config.Load(viper.GetViper())
		if err != nil {
			return err
		}

		registry, err := config.BuildRegistry(ctx, cfg)
		if err != nil {
			return err
		}

		srv, err := server.New(server.Config{
			Addr:       cfg.Server.Addr,
			Dispatcher: compare.NewDispatcher(registry, cfg.MaxConcurrent),
			Registry:   registry,
		})
		if err != nil {
			return err
		}

		fmt.Fprintf(os.Stderr, "arena listening on %s (%d models)\n", srv.Addr(), registry.Len())
		return srv.Run(ctx)
	},
}
