package actuators

import (
	"fmt"
	"strconv"
	"time"

	"github.com/markusressel/mppt2go/internal/configuration"
	"github.com/markusressel/mppt2go/internal/load"
	"github.com/markusressel/mppt2go/internal/util"
)

// CmdActuator invokes an executable once per switch, appending the
// switch index and the 0/1 command to the configured arguments.
type CmdActuator struct {
	Config configuration.ActuatorConfig `json:"configuration"`
}

func (actuator CmdActuator) GetId() string {
	return actuator.Config.ID
}

func (actuator CmdActuator) GetConfig() configuration.ActuatorConfig {
	return actuator.Config
}

func (actuator CmdActuator) Apply(state load.State) error {
	timeout := 2 * time.Second
	exec := actuator.Config.Cmd.Exec

	for i, closed := range state.Switches() {
		value := "0"
		if closed {
			value = "1"
		}
		args := append([]string{}, actuator.Config.Cmd.Args...)
		args = append(args, strconv.Itoa(i), value)

		_, err := util.SafeCmdExecution(exec, args, timeout)
		if err != nil {
			return fmt.Errorf("actuator %s: switch %d: %s", actuator.GetId(), i, err.Error())
		}
	}

	return nil
}
