package sensors

import (
	"github.com/markusressel/mppt2go/internal/configuration"
	"github.com/markusressel/mppt2go/internal/util"
)

type HwmonSensor struct {
	Label     string                     `json:"label"`
	Index     int                        `json:"index"`
	Input     string                     `json:"input"`
	Config    configuration.SensorConfig `json:"configuration"`
	MovingAvg float64                    `json:"movingAvg"`
}

func (sensor HwmonSensor) GetId() string {
	return sensor.Config.ID
}

func (sensor HwmonSensor) GetConfig() configuration.SensorConfig {
	return sensor.Config
}

// GetValue reads the voltage input of the chip. hwmon in*_input values
// are reported in millivolts.
func (sensor HwmonSensor) GetValue() (result float64, err error) {
	integer, err := util.ReadIntFromFile(sensor.Input)
	if err != nil {
		return 0, err
	}
	result = float64(integer) / 1000.0
	return result, err
}

func (sensor HwmonSensor) GetMovingAvg() (avg float64) {
	return sensor.MovingAvg
}

func (sensor *HwmonSensor) SetMovingAvg(avg float64) {
	sensor.MovingAvg = avg
}
