package controller

import (
	"errors"
	"testing"
	"time"

	"github.com/markusressel/mppt2go/internal/configuration"
	"github.com/markusressel/mppt2go/internal/load"
	"github.com/markusressel/mppt2go/internal/power"
	"github.com/stretchr/testify/assert"
)

type MockSensor struct {
	ID        string
	Value     float64
	Err       error
	MovingAvg float64
}

func (sensor MockSensor) GetId() string {
	return sensor.ID
}

func (sensor MockSensor) GetConfig() configuration.SensorConfig {
	return configuration.SensorConfig{ID: sensor.ID}
}

func (sensor *MockSensor) GetValue() (float64, error) {
	return sensor.Value, sensor.Err
}

func (sensor MockSensor) GetMovingAvg() (avg float64) {
	return sensor.MovingAvg
}

func (sensor *MockSensor) SetMovingAvg(avg float64) {
	sensor.MovingAvg = avg
}

type MockActuator struct {
	ID      string
	Applied []load.State
	Err     error
}

func (actuator MockActuator) GetId() string {
	return actuator.ID
}

func (actuator MockActuator) GetConfig() configuration.ActuatorConfig {
	return configuration.ActuatorConfig{ID: actuator.ID}
}

func (actuator *MockActuator) Apply(state load.State) error {
	if actuator.Err != nil {
		return actuator.Err
	}
	actuator.Applied = append(actuator.Applied, state)
	return nil
}

func createController(sensor *MockSensor, actuator *MockActuator) *loadController {
	estimator := power.NewEstimator(load.NewCodec(load.DefaultClosedSwitchResistance), 1.0)
	c := NewLoadController(sensor, actuator, estimator, 10*time.Millisecond, load.MaxState, true)
	return c.(*loadController)
}

func TestTransitionPowerImprovedWhileRising(t *testing.T) {
	// GIVEN
	// scenario: previous perturbation helped, keep going
	state := load.State(255)

	// WHEN
	newState, rising := nextState(state, true, 10.0, 12.0)

	// THEN
	assert.Equal(t, load.State(254), newState)
	assert.True(t, rising)
}

func TestTransitionPowerWorsenedWhileRising(t *testing.T) {
	// GIVEN
	state := load.State(254)

	// WHEN
	newState, rising := nextState(state, true, 12.0, 9.0)

	// THEN
	assert.Equal(t, load.State(255), newState)
	assert.False(t, rising)
}

func TestTransitionEqualPowerLeavesStateUntouched(t *testing.T) {
	// GIVEN
	state := load.State(0)

	// WHEN
	newState, rising := nextState(state, false, 5.0, 5.0)

	// THEN
	assert.Equal(t, load.State(0), newState)
	assert.False(t, rising)
}

func TestTransitionPowerImprovedWhileFalling(t *testing.T) {
	// GIVEN
	state := load.State(100)

	// WHEN
	newState, rising := nextState(state, false, 10.0, 12.0)

	// THEN
	assert.Equal(t, load.State(101), newState)
	assert.False(t, rising)
}

func TestTransitionPowerWorsenedWhileFalling(t *testing.T) {
	// GIVEN
	state := load.State(100)

	// WHEN
	newState, rising := nextState(state, false, 12.0, 9.0)

	// THEN
	assert.Equal(t, load.State(99), newState)
	assert.True(t, rising)
}

func TestTransitionDirectionFlipsOnlyOnWorsenedPower(t *testing.T) {
	for _, rising := range []bool{true, false} {
		// WHEN
		_, improved := nextState(128, rising, 1.0, 2.0)
		_, worsened := nextState(128, rising, 2.0, 1.0)
		_, equal := nextState(128, rising, 1.0, 1.0)

		// THEN
		assert.Equal(t, rising, improved)
		assert.Equal(t, !rising, worsened)
		assert.Equal(t, rising, equal)
	}
}

func TestTransitionIsDeterministic(t *testing.T) {
	// GIVEN
	state := load.State(42)

	// WHEN
	firstState, firstRising := nextState(state, true, 3.0, 7.0)

	// THEN
	for i := 0; i < 10; i++ {
		repeatedState, repeatedRising := nextState(state, true, 3.0, 7.0)
		assert.Equal(t, firstState, repeatedState)
		assert.Equal(t, firstRising, repeatedRising)
	}
}

func TestTransitionSaturatesAtBoundaries(t *testing.T) {
	// GIVEN
	// power improved while falling at the upper boundary
	upper, _ := nextState(load.MaxState, false, 1.0, 2.0)
	// power improved while rising at the lower boundary
	lower, _ := nextState(load.MinState, true, 1.0, 2.0)

	// THEN
	assert.Equal(t, load.MaxState, upper)
	assert.Equal(t, load.MinState, lower)
}

func TestStateStaysInRangeOverManyTicks(t *testing.T) {
	// GIVEN
	sensor := &MockSensor{ID: "voltage", Value: 12.0}
	actuator := &MockActuator{ID: "cascade"}
	c := createController(sensor, actuator)

	// WHEN
	for i := 0; i < 1000; i++ {
		// wiggle the voltage to exercise all comparison branches
		sensor.Value = 12.0 + float64(i%7) - 3.0
		err := c.UpdateLoad()
		assert.NoError(t, err)

		// THEN
		snapshot := c.Snapshot()
		assert.GreaterOrEqual(t, int(snapshot.State), int(load.MinState))
		assert.LessOrEqual(t, int(snapshot.State), int(load.MaxState))
	}
}

func TestUpdateLoadCommitsPowerBaseline(t *testing.T) {
	// GIVEN
	sensor := &MockSensor{ID: "voltage", Value: 2.0}
	actuator := &MockActuator{ID: "cascade"}
	c := createController(sensor, actuator)

	// WHEN
	err := c.UpdateLoad()

	// THEN
	assert.NoError(t, err)
	snapshot := c.Snapshot()
	// 255 all closed: resistance 0.16, power = 4 / 0.16 = 25
	assert.InDelta(t, 25.0, snapshot.Power, 1e-9)
	assert.Equal(t, 2.0, snapshot.Voltage)
}

func TestUpdateLoadAppliesNextState(t *testing.T) {
	// GIVEN
	sensor := &MockSensor{ID: "voltage", Value: 2.0}
	actuator := &MockActuator{ID: "cascade"}
	c := createController(sensor, actuator)

	// WHEN
	err := c.UpdateLoad()

	// THEN
	assert.NoError(t, err)
	// power improved from 0 while rising, so the state was decremented
	assert.Equal(t, []load.State{254}, actuator.Applied)
	assert.Equal(t, load.State(254), c.Snapshot().State)
}

func TestUpdateLoadSurvivesActuatorFailure(t *testing.T) {
	// GIVEN
	sensor := &MockSensor{ID: "voltage", Value: 2.0}
	actuator := &MockActuator{ID: "cascade", Err: errors.New("pin unavailable")}
	c := createController(sensor, actuator)

	// WHEN
	err := c.UpdateLoad()

	// THEN
	assert.Error(t, err)
	// the transition was committed despite the failing actuator
	snapshot := c.Snapshot()
	assert.Equal(t, load.State(254), snapshot.State)
	assert.InDelta(t, 25.0, snapshot.Power, 1e-9)
}

func TestUpdateLoadDegradesSensorFailureToZeroSample(t *testing.T) {
	// GIVEN
	sensor := &MockSensor{ID: "voltage", Err: errors.New("stale adc")}
	actuator := &MockActuator{ID: "cascade"}
	c := createController(sensor, actuator)

	// WHEN
	err := c.UpdateLoad()

	// THEN
	assert.NoError(t, err)
	// zero sample yields zero power, the equality branch keeps the state
	snapshot := c.Snapshot()
	assert.Equal(t, load.MaxState, snapshot.State)
	assert.Equal(t, 0.0, snapshot.Power)
}

func TestControllerConvergesTowardsMaximumPowerState(t *testing.T) {
	// GIVEN
	// a source whose delivered voltage is fixed: power = V²/R is maximal
	// at the lowest resistance, which is state 255
	sensor := &MockSensor{ID: "voltage", Value: 5.0}
	actuator := &MockActuator{ID: "cascade"}
	estimator := power.NewEstimator(load.NewCodec(load.DefaultClosedSwitchResistance), 1.0)
	c := NewLoadController(sensor, actuator, estimator, 10*time.Millisecond, load.State(200), true).(*loadController)

	// WHEN
	for i := 0; i < 2000; i++ {
		assert.NoError(t, c.UpdateLoad())
	}

	// THEN
	// the hill climber oscillates around the maximum power state
	snapshot := c.Snapshot()
	assert.GreaterOrEqual(t, int(snapshot.State), 253)
}
