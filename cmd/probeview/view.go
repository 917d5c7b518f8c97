package main

import (
	"github.com/philipparndt/probeview/internal/app"
	"github.com/spf13/cobra"
)

var watch bool

var viewCmd = &cobra.Command{
	Use:   "view",
	Short: "Open the interactive viewer",
	Long:  "Open a window showing the probe. With --watch the scene is rebuilt whenever the config file changes.",
	Args:  cobra.NoArgs,
	RunE:  runView,
}

func init() {
	addViewFlags(viewCmd)
	rootCmd.AddCommand(viewCmd)
}

func addViewFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "reload the scene when the config file changes")
}

func runView(cmd *cobra.Command, args []string) error {
	cfg, log, err := loadConfig()
	if err != nil {
		return err
	}
	return app.Run(app.Options{
		Config:     cfg,
		ConfigPath: configPath,
		Watch:      watch,
		Log:        log,
	})
}
