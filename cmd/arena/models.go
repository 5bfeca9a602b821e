package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/arenalabs/arena/internal/config"
)

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List the configured model ids",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(viper.GetViper())
		if err != nil {
			return err
		}

		registry, err := config.BuildRegistry(cmd.Context(), cfg)
		if err != nil {
			return err
		}

		for _, id := range registry.IDs() {
			entry, _ := registry.Get(id)
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s/%s\ttimeout=%s\n",
				id, entry.Adapter.Name(), entry.Adapter.Model(), entry.Timeout)
		}
		return nil
	},
}
