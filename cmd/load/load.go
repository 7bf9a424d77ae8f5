package load

import (
	"github.com/spf13/cobra"
)

var Command = &cobra.Command{
	Use:              "load",
	Short:            "Resistor load related commands",
	Long:             ``,
	TraverseChildren: true,
}
