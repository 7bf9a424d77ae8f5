package configuration

import (
	"errors"
	"fmt"

	"github.com/looplab/tarjan"
	"github.com/markusressel/mppt2go/internal/ui"
	"github.com/markusressel/mppt2go/internal/util"
	"golang.org/x/exp/slices"
)

func validateConfig(config *Configuration, path string) error {
	err := validateSensors(config)
	if err != nil {
		return err
	}
	err = validateController(config)
	if err != nil {
		return err
	}
	err = validatePower(config)
	if err != nil {
		return err
	}
	err = validateActuator(config)
	if err != nil {
		return err
	}
	err = validateWind(config)
	if err != nil {
		return err
	}
	err = validateTelemetry(config)

	if containsCmdSensors(config) {
		if _, err := util.CheckFilePermissionsForExecution(path); err != nil {
			return fmt.Errorf("config file '%s' has invalid permissions: %s", path, err)
		}
	}

	return err
}

func containsCmdSensors(config *Configuration) bool {
	for _, sensorConfig := range config.Sensors {
		if sensorConfig.Cmd != nil {
			return true
		}
	}
	return config.Actuator.Cmd != nil
}

func validateSensors(config *Configuration) error {
	graph := make(map[interface{}][]interface{})

	for _, sensorConfig := range config.Sensors {
		subConfigs := 0
		if sensorConfig.HwMon != nil {
			subConfigs++
		}
		if sensorConfig.File != nil {
			subConfigs++
		}
		if sensorConfig.Cmd != nil {
			subConfigs++
		}
		if sensorConfig.Virtual != nil {
			subConfigs++
		}
		if subConfigs > 1 {
			return fmt.Errorf("sensor %s: only one sensor type can be used per sensor definition block", sensorConfig.ID)
		}
		if subConfigs <= 0 {
			return fmt.Errorf("sensor %s: sub-configuration for sensor is missing, use one of: hwmon | file | cmd | virtual", sensorConfig.ID)
		}

		if !isSensorConfigInUse(sensorConfig, config) {
			ui.Warning("Unused sensor configuration: %s", sensorConfig.ID)
		}

		if sensorConfig.HwMon != nil {
			if sensorConfig.HwMon.Index <= 0 {
				return fmt.Errorf("sensor %s: invalid index, must be >= 1", sensorConfig.ID)
			}
		}

		if sensorConfig.Virtual != nil {
			if len(sensorConfig.Virtual.Sensors) <= 0 {
				return fmt.Errorf("sensor %s: virtual sensor references no sensors", sensorConfig.ID)
			}

			var connections []interface{}
			for _, id := range sensorConfig.Virtual.Sensors {
				if id == sensorConfig.ID {
					return fmt.Errorf("sensor %s: a sensor cannot reference itself", sensorConfig.ID)
				}
				if !sensorIdExists(id, config) {
					return fmt.Errorf("sensor %s: no sensor definition with id '%s' found", sensorConfig.ID, id)
				}
				connections = append(connections, id)
			}
			graph[sensorConfig.ID] = connections
		}
	}

	return validateNoLoops(graph)
}

func validateNoLoops(graph map[interface{}][]interface{}) error {
	output := tarjan.Connections(graph)
	for _, items := range output {
		if len(items) > 1 {
			return fmt.Errorf("you have created a sensor dependency cycle: %v", items)
		}
	}
	return nil
}

func isSensorConfigInUse(config SensorConfig, configuration *Configuration) bool {
	if configuration.Controller.Sensor == config.ID {
		return true
	}
	if configuration.Wind.Anemometer != nil && configuration.Wind.Anemometer.VaneSensor == config.ID {
		return true
	}
	for _, sensorConfig := range configuration.Sensors {
		if sensorConfig.Virtual != nil && slices.Contains(sensorConfig.Virtual.Sensors, config.ID) {
			return true
		}
	}
	return false
}

func sensorIdExists(sensorId string, config *Configuration) bool {
	for _, sensor := range config.Sensors {
		if sensor.ID == sensorId {
			return true
		}
	}
	return false
}

func validateController(config *Configuration) error {
	controller := config.Controller

	if controller.TickRate <= 0 {
		return errors.New("controller: tickRate must be > 0")
	}
	if controller.InitialLoadState < 0 || controller.InitialLoadState > 255 {
		return fmt.Errorf("controller: initialLoadState %d is outside [0..255]", controller.InitialLoadState)
	}
	if len(controller.Sensor) <= 0 {
		return errors.New("controller: missing voltage sensor id")
	}
	if !sensorIdExists(controller.Sensor, config) {
		return fmt.Errorf("controller: no sensor definition with id '%s' found", controller.Sensor)
	}

	return nil
}

func validatePower(config *Configuration) error {
	power := config.Power

	if power.ClosedSwitchResistance <= 0 {
		return errors.New("power: closedSwitchResistance must be > 0")
	}
	if power.VoltageDividerScale <= 0 {
		return errors.New("power: voltageDividerScale must be > 0")
	}

	return nil
}

func validateActuator(config *Configuration) error {
	actuator := config.Actuator

	subConfigs := 0
	if actuator.Gpio != nil {
		subConfigs++
	}
	if actuator.File != nil {
		subConfigs++
	}
	if actuator.Cmd != nil {
		subConfigs++
	}
	if subConfigs > 1 {
		return fmt.Errorf("actuator %s: only one actuator type can be used per actuator definition block", actuator.ID)
	}
	if subConfigs <= 0 {
		return fmt.Errorf("actuator %s: sub-configuration for actuator is missing, use one of: gpio | file | cmd", actuator.ID)
	}

	if actuator.Gpio != nil && len(actuator.Gpio.Pins) != 8 {
		return fmt.Errorf("actuator %s: gpio actuator needs exactly 8 pins, got %d", actuator.ID, len(actuator.Gpio.Pins))
	}
	if actuator.File != nil && len(actuator.File.Paths) != 8 {
		return fmt.Errorf("actuator %s: file actuator needs exactly 8 paths, got %d", actuator.ID, len(actuator.File.Paths))
	}

	return nil
}

func validateWind(config *Configuration) error {
	wind := config.Wind

	if wind.Anemometer != nil && wind.File != nil {
		return errors.New("wind: only one wind source type can be used")
	}

	if wind.Anemometer != nil {
		anemometer := wind.Anemometer
		if len(anemometer.Pin) <= 0 {
			return errors.New("wind: anemometer pin is missing")
		}
		if anemometer.CalcInterval <= 0 {
			return errors.New("wind: anemometer calcInterval must be > 0")
		}
		if anemometer.SpeedPerPulse <= 0 {
			return errors.New("wind: anemometer speedPerPulse must be > 0")
		}
		if len(anemometer.VaneSensor) > 0 && !sensorIdExists(anemometer.VaneSensor, config) {
			return fmt.Errorf("wind: no sensor definition with id '%s' found", anemometer.VaneSensor)
		}
	}

	return nil
}

func validateTelemetry(config *Configuration) error {
	if config.Telemetry.TickRate <= 0 {
		return errors.New("telemetry: tickRate must be > 0")
	}
	return nil
}
