package controller

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/markusressel/mppt2go/internal/actuators"
	"github.com/markusressel/mppt2go/internal/load"
	"github.com/markusressel/mppt2go/internal/power"
	"github.com/markusressel/mppt2go/internal/sensors"
	"github.com/markusressel/mppt2go/internal/ui"
)

type LoadController interface {
	Run(ctx context.Context) error
	// UpdateLoad executes a single perturb-and-observe tick.
	UpdateLoad() error
	// Snapshot returns the most recently committed controller values.
	Snapshot() Snapshot
}

// Snapshot is a consistent view of the controller state after a tick.
type Snapshot struct {
	State       load.State `json:"state"`
	RisingCycle bool       `json:"risingCycle"`
	Power       float64    `json:"power"`
	Voltage     float64    `json:"voltage"`
	Resistance  float64    `json:"resistance"`
}

type loadController struct {
	sensor    sensors.Sensor
	actuator  actuators.Actuator
	estimator power.Estimator
	tickRate  time.Duration

	mu            sync.RWMutex
	state         load.State
	risingCycle   bool
	previousPower float64
	lastVoltage   float64
}

func NewLoadController(
	sensor sensors.Sensor,
	actuator actuators.Actuator,
	estimator power.Estimator,
	tickRate time.Duration,
	initialState load.State,
	initialRisingCycle bool,
) LoadController {
	return &loadController{
		sensor:      sensor,
		actuator:    actuator,
		estimator:   estimator,
		tickRate:    tickRate,
		state:       initialState,
		risingCycle: initialRisingCycle,
	}
}

func (c *loadController) Run(ctx context.Context) error {
	ui.Info("Applying initial load state %d", c.state)
	if err := c.actuator.Apply(c.state); err != nil {
		ui.Warning("Unable to apply initial load state: %v", err)
	}

	ui.Info("Starting controller loop for actuator '%s'", c.actuator.GetId())

	tick := time.Tick(c.tickRate)
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-tick:
			err := c.UpdateLoad()
			if err != nil {
				ui.Warning("Error in LoadController for actuator %s: %v", c.actuator.GetId(), err)
			}
		}
	}
}

// UpdateLoad samples the voltage, estimates the power delivered at the
// current load state and advances the hill-climbing search by one step.
// The new state is committed before the actuator is driven, so a failing
// actuator can never corrupt the search state.
func (c *loadController) UpdateLoad() error {
	voltage, err := c.sensor.GetValue()
	if err != nil {
		// degraded input is propagated into the power model instead of
		// halting the loop
		ui.Warning("Error reading sensor %s: %v", c.sensor.GetId(), err)
		voltage = 0
	}

	c.mu.Lock()
	newPower := c.estimator.Estimate(voltage, c.state)
	c.state, c.risingCycle = nextState(c.state, c.risingCycle, c.previousPower, newPower)
	c.previousPower = newPower
	c.lastVoltage = voltage
	target := c.state
	c.mu.Unlock()

	if err := c.actuator.Apply(target); err != nil {
		return fmt.Errorf("error applying load state %d: %w", target, err)
	}

	return nil
}

// nextState is the perturb-and-observe transition. The previous tick's
// state change is treated as the perturbation: improved power repeats
// it, worsened power reverses it and flips the cycle flag, equal power
// leaves everything untouched. The mapping of risingCycle onto
// increment/decrement is intentionally asymmetric between the two
// branches; it is a sign bookkeeping value, not a literal direction.
func nextState(state load.State, risingCycle bool, previousPower float64, newPower float64) (load.State, bool) {
	if newPower > previousPower {
		if risingCycle {
			state = state.Decrement()
		} else {
			state = state.Increment()
		}
	} else if newPower < previousPower {
		if risingCycle {
			state = state.Increment()
		} else {
			state = state.Decrement()
		}
		risingCycle = !risingCycle
	}
	return state, risingCycle
}

func (c *loadController) Snapshot() Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return Snapshot{
		State:       c.state,
		RisingCycle: c.risingCycle,
		Power:       c.previousPower,
		Voltage:     c.lastVoltage,
		Resistance:  c.estimator.Codec().Resistance(c.state),
	}
}
