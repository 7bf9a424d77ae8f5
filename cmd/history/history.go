package history

import (
	"bytes"
	"strconv"
	"time"

	"github.com/markusressel/mppt2go/cmd/global"
	"github.com/markusressel/mppt2go/internal/configuration"
	"github.com/markusressel/mppt2go/internal/persistence"
	"github.com/markusressel/mppt2go/internal/ui"
	"github.com/mgutz/ansi"
	"github.com/spf13/cobra"
	"github.com/tomlazar/table"
)

var limit int

var Command = &cobra.Command{
	Use:   "history",
	Short: "Print the most recent telemetry records",
	Long:  ``,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath := configuration.DetectAndReadConfigFile()
		ui.Info("Using configuration file at: %s", configPath)
		configuration.LoadConfig()

		pers := persistence.NewPersistence(configuration.CurrentConfig.DbPath)
		records, err := pers.LoadTelemetryHistory(limit)
		if err != nil {
			ui.FatalWithoutStacktrace("Unable to load telemetry history: %v", err)
		}

		var rows [][]string
		for _, record := range records {
			rows = append(rows, []string{
				record.Time.Format(time.RFC3339),
				strconv.FormatFloat(record.WindSpeed, 'f', 2, 64),
				strconv.FormatFloat(record.WindGust, 'f', 2, 64),
				strconv.FormatFloat(record.WindDirection, 'f', 0, 64),
				strconv.FormatFloat(record.Power, 'f', 2, 64),
				strconv.Itoa(int(record.LoadState)),
			})
		}

		tab := table.Table{
			Headers: []string{"Time", "Speed", "Gust", "Direction", "Power", "State"},
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

		return nil
	},
}

func init() {
	Command.Flags().IntVarP(
		&limit,
		"limit", "n",
		10,
		"Maximum number of records to print",
	)
}
