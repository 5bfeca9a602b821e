package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/arenalabs/arena/internal/config"
	"github.com/arenalabs/arena/pkg/compare"
	"github.com/arenalabs/arena/tui"
)

var (
	compareModels []string
	comparePlain  bool
)

var compareCmd = &cobra.Command{
	Use:   "compare [prompt]",
	Short: "Send one prompt to the selected models and browse the responses",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		cfg, err := config.Load(viper.GetViper())
		if err != nil {
			return err
		}

		registry, err := config.BuildRegistry(ctx, cfg)
		if err != nil {
			return err
		}

		models := compareModels
		if len(models) == 0 {
			models = registry.IDs()
		}

		dispatcher := compare.NewDispatcher(registry, cfg.MaxConcurrent)
		resp, err := dispatcher.Dispatch(ctx, compare.Request{
			Prompt:   args[0],
			ModelIDs: models,
		})
		if err != nil {
			return err
		}

		if comparePlain || !term.IsTerminal(int(os.Stdout.Fd())) {
			printComparison(cmd, resp)
			return nil
		}

		width, height, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil {
			width, height = 80, 24
		}
		return tui.StartTUI(resp, width, height)
	},
}

func init() {
	compareCmd.Flags().StringSliceVarP(&compareModels, "models", "m", nil,
		"model ids to query (default: all configured models)")
	compareCmd.Flags().BoolVar(&comparePlain, "plain", false,
		"print results instead of the interactive card view")
}

func printComparison(cmd *cobra.Command, resp *compare.Response) {
	out := cmd.OutOrStdout()

	for _, id := range resp.Order {
		result := resp.Results[id]

		fmt.Fprintf(out, "=== %s (%s, %dms) ===\n", id, result.Status, result.LatencyMs)
		switch result.Status {
		case compare.StatusSucceeded:
			fmt.Fprintln(out, result.Content)
		default:
			fmt.Fprintf(out, "[%s] %s\n", result.ErrorKind, result.ErrorMessage)
		}
		fmt.Fprintln(out)
	}

	fmt.Fprintf(out, "%s\n", summaryLine(resp.Metadata))
}

func summaryLine(m compare.Metadata) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d requested, %d succeeded, %d failed", m.Requested, m.Succeeded, m.Failed)
	return b.String()
}
