package cmd

import (
	"log"

	"github.com/josephlewis42/gosh/core/config"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// initCmd writes the default settings file
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default settings to the settings directory.",
	Args:  cobra.ExactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		logger := log.New(cmd.ErrOrStderr(), "", 0)

		dir := cfgPath
		if dir == "" {
			dir = homeDir()
		}

		return config.Initialize(afero.NewOsFs(), dir, logger)
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
