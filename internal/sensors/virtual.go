package sensors

import (
	"fmt"

	"github.com/markusressel/mppt2go/internal/configuration"
)

// VirtualSensor reports the average of the sensors it references.
// Cycles between virtual sensors are rejected by config validation.
type VirtualSensor struct {
	Name      string                     `json:"name"`
	Config    configuration.SensorConfig `json:"configuration"`
	MovingAvg float64                    `json:"movingAvg"`
}

func (sensor VirtualSensor) GetId() string {
	return sensor.Config.ID
}

func (sensor VirtualSensor) GetConfig() configuration.SensorConfig {
	return sensor.Config
}

func (sensor VirtualSensor) GetValue() (float64, error) {
	sum := 0.0
	count := 0

	for _, id := range sensor.Config.Virtual.Sensors {
		s, exists := SensorMap.Get(id)
		if !exists {
			return 0, fmt.Errorf("sensor %s: referenced sensor '%s' not found", sensor.GetId(), id)
		}

		value, err := s.GetValue()
		if err != nil {
			return 0, err
		}
		sum += value
		count++
	}

	if count <= 0 {
		return 0, fmt.Errorf("sensor %s: no referenced sensors", sensor.GetId())
	}

	return sum / float64(count), nil
}

func (sensor VirtualSensor) GetMovingAvg() (avg float64) {
	return sensor.MovingAvg
}

func (sensor *VirtualSensor) SetMovingAvg(avg float64) {
	sensor.MovingAvg = avg
}
