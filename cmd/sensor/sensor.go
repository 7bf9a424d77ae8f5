package sensor

import (
	"fmt"
	"regexp"

	"github.com/markusressel/mppt2go/internal/configuration"
	"github.com/markusressel/mppt2go/internal/hwmon"
	"github.com/markusressel/mppt2go/internal/sensors"
	"github.com/markusressel/mppt2go/internal/ui"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var sensorId string

var Command = &cobra.Command{
	Use:              "sensor",
	Short:            "Sensor related commands",
	Long:             ``,
	TraverseChildren: true,
	Args:             cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		pterm.DisableOutput()

		sensor, err := getSensor(sensorId)
		if err != nil {
			return err
		}

		value, err := sensor.GetValue()
		if err != nil {
			return err
		}
		fmt.Printf("%f", value)
		return nil
	},
}

func init() {
	Command.PersistentFlags().StringVarP(
		&sensorId,
		"id", "i",
		"",
		"Sensor ID as specified in the config",
	)
	_ = Command.MarkPersistentFlagRequired("id")
}

func getSensor(id string) (sensors.Sensor, error) {
	configPath := configuration.DetectAndReadConfigFile()
	ui.Info("Using configuration file at: %s", configPath)
	configuration.LoadConfig()
	err := configuration.Validate(configPath)
	if err != nil {
		ui.FatalWithoutStacktrace("%v", err)
	}

	availableSensorIds := []string{}
	for _, config := range configuration.CurrentConfig.Sensors {
		availableSensorIds = append(availableSensorIds, config.ID)
		if config.ID != id {
			continue
		}

		if config.HwMon != nil {
			chips := hwmon.GetChips()
			for _, chip := range chips {
				matched, err := regexp.MatchString("(?i)"+config.HwMon.Platform, chip.Platform)
				if err != nil {
					return nil, fmt.Errorf("failed to match platform regex of %s (%s) against chip platform %s", config.ID, config.HwMon.Platform, chip.Platform)
				}
				if matched && len(chip.Sensors) >= config.HwMon.Index {
					voltageSensor := chip.Sensors[config.HwMon.Index-1]
					if len(voltageSensor.Input) <= 0 {
						return nil, fmt.Errorf("unable to find voltage input for sensor %s", id)
					}
					config.HwMon.VoltageInput = voltageSensor.Input
					break
				}
			}
		}

		sensor, err := sensors.NewSensor(config)
		if err != nil {
			return nil, err
		}

		return sensor, nil
	}

	return nil, fmt.Errorf("no sensor with id found: %s, options: %s", id, availableSensorIds)
}
