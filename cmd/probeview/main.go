package main

import (
	"fmt"
	"os"

	"github.com/philipparndt/probeview/internal/config"
	"github.com/philipparndt/probeview/internal/logging"
	"github.com/philipparndt/probeview/version"
	"github.com/spf13/cobra"
)

var (
	configPath string
	debug      bool
)

var rootCmd = &cobra.Command{
	Use:   "probeview",
	Short: "Interactive 3D viewer for segmented electrode probes",
	Long: `probeview shows a stack of labeled electrode contacts on a translucent lead,
together with the target volume it is placed in. Click a contact to cycle its
state, drag the offset slider to move the lead, or let the scene rotate.

Without a subcommand the interactive viewer is opened.`,
	Version:       version.GetFullVersion(),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runView,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", config.DefaultPath, "YAML config file")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	addViewFlags(rootCmd)
}

// loadConfig reads the config named by --config and builds the logger
func loadConfig() (*config.Config, logging.Logger, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}
	if debug {
		cfg.Debug = true
	}
	return cfg, logging.New("probeview", cfg.Debug), nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
