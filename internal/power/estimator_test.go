package power

import (
	"testing"

	"github.com/markusressel/mppt2go/internal/load"
	"github.com/stretchr/testify/assert"
)

func TestEstimateUsesSquareLaw(t *testing.T) {
	// GIVEN
	estimator := NewEstimator(load.NewCodec(load.DefaultClosedSwitchResistance), 1.0)

	// WHEN
	// state 0: all switches open, resistance = 255
	result := estimator.Estimate(255.0, load.MinState)

	// THEN
	assert.InDelta(t, 255.0, result, 1e-9)
}

func TestEstimateAppliesVoltageScale(t *testing.T) {
	// GIVEN
	unscaled := NewEstimator(load.NewCodec(load.DefaultClosedSwitchResistance), 1.0)
	scaled := NewEstimator(load.NewCodec(load.DefaultClosedSwitchResistance), 2.0)

	// WHEN
	base := unscaled.Estimate(10.0, load.State(170))
	doubled := scaled.Estimate(10.0, load.State(170))

	// THEN
	assert.InDelta(t, 4*base, doubled, 1e-9)
}

func TestEstimateIsStrictlyIncreasingInVoltage(t *testing.T) {
	// GIVEN
	estimator := NewEstimator(load.NewCodec(load.DefaultClosedSwitchResistance), 1.0)
	state := load.State(42)

	previous := estimator.Estimate(0.0, state)
	for v := 1; v <= 100; v++ {
		// WHEN
		current := estimator.Estimate(float64(v), state)

		// THEN
		assert.Greater(t, current, previous)
		previous = current
	}
}

func TestEstimateIsFiniteForAllStates(t *testing.T) {
	// GIVEN
	estimator := NewEstimator(load.NewCodec(load.DefaultClosedSwitchResistance), 1.0)

	for i := 0; i <= int(load.MaxState); i++ {
		// WHEN
		result := estimator.Estimate(3.3, load.State(i))

		// THEN
		assert.GreaterOrEqual(t, result, 0.0)
	}
}

func TestEstimateDefaultsScaleToIdentity(t *testing.T) {
	// GIVEN
	estimator := NewEstimator(load.NewCodec(load.DefaultClosedSwitchResistance), 0)

	// WHEN
	result := estimator.Estimate(255.0, load.MinState)

	// THEN
	assert.InDelta(t, 255.0, result, 1e-9)
}
