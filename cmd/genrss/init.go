package main

import (
	"github.com/spf13/cobra"

	"github.com/amsehili/genrss/internal/wizard"
)

var initForce bool

// initCmd runs the interactive configuration wizard
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a configuration file interactively",
	Long: `Init walks through the channel settings (host, title, description,
image, extensions) and writes them to a configuration file so that
subsequent runs only need --dirname.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		w := wizard.NewFeedWizard()
		return w.Run(configPath, initForce)
	},
	SilenceUsage: true,
}

func init() {
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "Overwrite an existing configuration file without asking")
}
