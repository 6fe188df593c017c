package main

import (
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/desktopcommander/setupctl/pkg/logging"
	"github.com/desktopcommander/setupctl/pkg/restart"
	"github.com/desktopcommander/setupctl/pkg/settings"
	"github.com/desktopcommander/setupctl/pkg/setup"
)

var setupDebug bool

var rootCmd = &cobra.Command{
	Use:   "setupctl",
	Short: "Register the desktop-commander MCP server with Claude Desktop",
	Long: `Performs the one-time desktop-commander setup:

Detects your platform and shell, locates (or creates) the Claude
Desktop configuration file, merges in the desktop-commander server
entry, and restarts Claude Desktop so the change takes effect.

Existing configuration is preserved: only the desktop-commander entry
is touched, the previous file is backed up, and the rewrite is atomic.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSetup(cmd)
	},
}

func init() {
	rootCmd.Version = version
	rootCmd.Flags().BoolVar(&setupDebug, "debug", false, "Configure the server for debugger attachment on port 9229")
}

func runSetup(cmd *cobra.Command) error {
	overrides, err := loadOverrides()
	if err != nil {
		return err
	}

	logger := logging.New(logging.Options{Debug: setupDebug})

	opts := []setup.Option{
		setup.WithSkipRestart(overrides.SkipRestart),
	}
	if overrides.ConfigPath != "" {
		opts = append(opts, setup.WithConfigPath(overrides.ConfigPath))
	}
	if overrides.SettleSeconds > 0 {
		coordinator := restart.NewCoordinator(restart.NewRunner(), logger,
			restart.WithSettleDelay(time.Duration(overrides.SettleSeconds)*time.Second))
		opts = append(opts, setup.WithRestarter(coordinator))
	}

	o := setup.New(logger, setupDebug, opts...)
	runErr := o.Run(cmd.Context())

	setup.RenderSummary(os.Stdout, o.Steps(), runErr == nil, isatty.IsTerminal(os.Stdout.Fd()))
	return runErr
}

// loadOverrides reads the optional operator settings file. A missing
// home directory just means no overrides.
func loadOverrides() (settings.Settings, error) {
	path, err := settings.DefaultPath()
	if err != nil {
		return settings.Settings{}, nil
	}
	return settings.Load(path)
}
