package actuators

import (
	"fmt"

	"github.com/markusressel/mppt2go/internal/configuration"
	"github.com/markusressel/mppt2go/internal/load"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"
)

// GpioActuator drives the 8 MOSFET gates of the resistor cascade through
// GPIO output pins.
type GpioActuator struct {
	Config configuration.ActuatorConfig `json:"configuration"`

	pins [load.NumSwitches]gpio.PinIO
}

func NewGpioActuator(config configuration.ActuatorConfig) (*GpioActuator, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("actuator %s: failed to initialize periph: %v", config.ID, err)
	}

	actuator := &GpioActuator{
		Config: config,
	}

	for i, name := range config.Gpio.Pins {
		pin := gpioreg.ByName(name)
		if pin == nil {
			return nil, fmt.Errorf("actuator %s: failed to find pin '%s'", config.ID, name)
		}
		if err := pin.Out(gpio.Low); err != nil {
			return nil, fmt.Errorf("actuator %s: failed to set pin '%s' low: %v", config.ID, name, err)
		}
		actuator.pins[i] = pin
	}

	return actuator, nil
}

func (actuator GpioActuator) GetId() string {
	return actuator.Config.ID
}

func (actuator GpioActuator) GetConfig() configuration.ActuatorConfig {
	return actuator.Config
}

func (actuator *GpioActuator) Apply(state load.State) error {
	for i, closed := range state.Switches() {
		level := gpio.Low
		if closed {
			level = gpio.High
		}
		if err := actuator.pins[i].Out(level); err != nil {
			return fmt.Errorf("actuator %s: switch %d: %v", actuator.GetId(), i, err)
		}
	}

	return nil
}
