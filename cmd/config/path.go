package config

import (
	"github.com/markusressel/mppt2go/internal/configuration"
	"github.com/markusressel/mppt2go/internal/ui"
	"github.com/spf13/cobra"
)

var pathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the path of the used configuration file",
	Long:  ``,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath := configuration.DetectAndReadConfigFile()
		ui.Printfln("%s", configPath)
		return nil
	},
}

func init() {
	Command.AddCommand(pathCmd)
}
