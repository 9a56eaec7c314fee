package cli

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/unnamed-lab/tradelens/internal/cli/config"
	"github.com/unnamed-lab/tradelens/internal/cli/run"
)

func NewRootCmd() *cobra.Command {
	rc := &config.RootConfig{}

	cmd := &cobra.Command{
		Use:           "tradelens",
		Short:         "Tradelens — PnL reconciliation and trade analytics",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global / persistent flags
	cmd.PersistentFlags().StringVar(&rc.ConfigPath, "config", "", "Path to config file (optional)")
	cmd.PersistentFlags().StringVar(&rc.LogLevel, "log-level", "info", "Log level: debug|info|warn|error")
	cmd.PersistentFlags().BoolVar(&rc.JSONLogs, "json-logs", false, "Emit logs as JSON")

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		lvl, err := logrus.ParseLevel(rc.LogLevel)
		if err != nil {
			return fmt.Errorf("invalid log level %q", rc.LogLevel)
		}
		logrus.SetLevel(lvl)
		if rc.JSONLogs {
			logrus.SetFormatter(&logrus.JSONFormatter{})
		}
		return nil
	}

	// Subcommands
	cmd.AddCommand(
		run.New(rc),
	)

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("tradelens (dev)")
		},
	})

	return cmd
}

func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
