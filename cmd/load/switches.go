package load

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/markusressel/mppt2go/cmd/global"
	"github.com/markusressel/mppt2go/internal/configuration"
	loadpkg "github.com/markusressel/mppt2go/internal/load"
	"github.com/markusressel/mppt2go/internal/ui"
	"github.com/mgutz/ansi"
	"github.com/spf13/cobra"
	"github.com/tomlazar/table"
)

var loadState int

var switchesCmd = &cobra.Command{
	Use:   "switches",
	Short: "Print the switch pattern and resistance of a load state",
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		configPath := configuration.DetectAndReadConfigFile()
		ui.Info("Using configuration file at: %s", configPath)
		configuration.LoadConfig()

		err = configuration.Validate(configPath)
		if err != nil {
			ui.FatalWithoutStacktrace("%v", err)
		}

		if loadState < 0 || loadState > int(loadpkg.MaxState) {
			return fmt.Errorf("load state %d is outside [0..255]", loadState)
		}

		state := loadpkg.State(loadState)
		codec := loadpkg.NewCodec(configuration.CurrentConfig.Power.ClosedSwitchResistance)

		var rows [][]string
		for i, closed := range state.Switches() {
			rows = append(rows, []string{
				strconv.Itoa(i), fmt.Sprintf("%v", closed),
			})
		}

		tab := table.Table{
			Headers: []string{"Switch", "Closed"},
			Rows:    rows,
		}
		var buf bytes.Buffer
		tableErr := tab.WriteTable(&buf, &table.Config{
			ShowIndex:       false,
			Color:           !global.NoColor,
			AlternateColors: true,
			TitleColorCode:  ansi.ColorCode("white+buf"),
			AltColorCodes: []string{
				ansi.ColorCode("white"),
				ansi.ColorCode("white:236"),
			},
		})
		if tableErr != nil {
			panic(tableErr)
		}
		ui.Printfln(buf.String())

		ui.Printfln("Resistance: %.2f", codec.Resistance(state))

		return nil
	},
}

func init() {
	switchesCmd.Flags().IntVarP(
		&loadState,
		"state", "s",
		0,
		"Load state in [0..255]",
	)
	_ = switchesCmd.MarkFlagRequired("state")

	Command.AddCommand(switchesCmd)
}
