// Command arenademo walks through the arena allocator: reuse after Reset,
// aligned allocation, allocation tracking, region copies and a simulated
// per-request workload.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

type app struct {
	cfg    Config
	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "arenademo",
		Short:         "Fixed-region arena allocator demo",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := LoadConfig(cmd.Flags())
			if err != nil {
				return err
			}
			a.cfg = cfg
			a.logger = NewLogger(os.Stderr, cfg.LogLevel, cfg.LogFormat)
			return nil
		},
	}
	registerFlags(root.PersistentFlags())

	root.AddCommand(
		&cobra.Command{
			Use:   "hello",
			Short: "Allocate two strings, reset, and reuse the region",
			RunE:  func(cmd *cobra.Command, _ []string) error { return a.runHello(cmd.OutOrStdout()) },
		},
		&cobra.Command{
			Use:   "aligned",
			Short: "Show cursor movement for 4-byte aligned allocations",
			RunE:  func(cmd *cobra.Command, _ []string) error { return a.runAligned(cmd.OutOrStdout()) },
		},
		&cobra.Command{
			Use:   "track",
			Short: "Look up allocation records by slice",
			RunE:  func(cmd *cobra.Command, _ []string) error { return a.runTrack(cmd.OutOrStdout()) },
		},
		&cobra.Command{
			Use:   "copy",
			Short: "Copy the live bytes of one arena into a smaller one",
			RunE:  func(cmd *cobra.Command, _ []string) error { return a.runCopy(cmd.OutOrStdout()) },
		},
		&cobra.Command{
			Use:   "serve-sim",
			Short: "Serve simulated requests with pooled per-request arenas",
			RunE:  func(cmd *cobra.Command, _ []string) error { return a.runServeSim(cmd.OutOrStdout()) },
		},
	)
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
