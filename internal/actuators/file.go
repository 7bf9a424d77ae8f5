package actuators

import (
	"fmt"

	"github.com/markusressel/mppt2go/internal/configuration"
	"github.com/markusressel/mppt2go/internal/load"
	"github.com/markusressel/mppt2go/internal/util"
)

// FileActuator writes 0/1 switch commands to one file per switch.
// Useful for sysfs gpio value files and for testing against plain files.
type FileActuator struct {
	Config configuration.ActuatorConfig `json:"configuration"`
}

func (actuator FileActuator) GetId() string {
	return actuator.Config.ID
}

func (actuator FileActuator) GetConfig() configuration.ActuatorConfig {
	return actuator.Config
}

func (actuator FileActuator) Apply(state load.State) error {
	paths := actuator.Config.File.Paths
	if len(paths) != load.NumSwitches {
		return fmt.Errorf("actuator %s: expected %d paths, got %d", actuator.GetId(), load.NumSwitches, len(paths))
	}

	for i, closed := range state.Switches() {
		value := 0
		if closed {
			value = 1
		}
		if err := util.WriteIntToFileAtomic(value, paths[i]); err != nil {
			return fmt.Errorf("actuator %s: switch %d: %w", actuator.GetId(), i, err)
		}
	}

	return nil
}
