package load

import (
	"bytes"
	"strconv"

	"github.com/guptarohit/asciigraph"
	"github.com/markusressel/mppt2go/cmd/global"
	"github.com/markusressel/mppt2go/internal/configuration"
	loadpkg "github.com/markusressel/mppt2go/internal/load"
	"github.com/markusressel/mppt2go/internal/ui"
	"github.com/mgutz/ansi"
	"github.com/spf13/cobra"
	"github.com/tomlazar/table"
)

var curveCmd = &cobra.Command{
	Use:   "curve",
	Short: "Print the resistance curve of the switch cascade to console",
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		configPath := configuration.DetectAndReadConfigFile()
		ui.Info("Using configuration file at: %s", configPath)
		configuration.LoadConfig()

		err = configuration.Validate(configPath)
		if err != nil {
			ui.FatalWithoutStacktrace("%v", err)
		}

		codec := loadpkg.NewCodec(configuration.CurrentConfig.Power.ClosedSwitchResistance)

		values := make([]float64, 0, int(loadpkg.MaxState)+1)
		for i := 0; i <= int(loadpkg.MaxState); i++ {
			values = append(values, codec.Resistance(loadpkg.State(i)))
		}

		// print table
		var rows [][]string
		for _, state := range []loadpkg.State{loadpkg.MinState, 64, 128, 192, loadpkg.MaxState} {
			rows = append(rows, []string{
				strconv.Itoa(int(state)),
				strconv.FormatFloat(codec.Resistance(state), 'f', 2, 64),
			})
		}
		tab := table.Table{
			Headers: []string{"State", "Resistance"},
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

		caption := "Resistance / Load State"
		graph := asciigraph.Plot(values, asciigraph.Height(15), asciigraph.Width(100), asciigraph.Caption(caption))
		ui.Printfln(graph)

		return nil
	},
}

func init() {
	Command.AddCommand(curveCmd)
}
