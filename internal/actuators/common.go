package actuators

import (
	"fmt"

	"github.com/markusressel/mppt2go/internal/configuration"
	"github.com/markusressel/mppt2go/internal/load"
	cmap "github.com/orcaman/concurrent-map/v2"
)

var (
	ActuatorMap = cmap.New[Actuator]()
)

// Actuator applies a load state to the physical switch outputs of the
// resistor cascade. Apply must be idempotent; its result is never
// consulted by the control loop beyond logging.
type Actuator interface {
	GetId() string

	GetConfig() configuration.ActuatorConfig

	Apply(state load.State) error
}

func NewActuator(config configuration.ActuatorConfig) (Actuator, error) {
	if config.Gpio != nil {
		return NewGpioActuator(config)
	}

	if config.File != nil {
		return &FileActuator{
			Config: config,
		}, nil
	}

	if config.Cmd != nil {
		return &CmdActuator{
			Config: config,
		}, nil
	}

	return nil, fmt.Errorf("no matching actuator type for actuator: %s", config.ID)
}
