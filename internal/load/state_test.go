package load

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIncrementSaturatesAtMaxState(t *testing.T) {
	// GIVEN
	state := MaxState

	// WHEN
	state = state.Increment()
	state = state.Increment()

	// THEN
	assert.Equal(t, MaxState, state)
}

func TestDecrementSaturatesAtMinState(t *testing.T) {
	// GIVEN
	state := MinState

	// WHEN
	state = state.Decrement()
	state = state.Decrement()

	// THEN
	assert.Equal(t, MinState, state)
}

func TestIncrementDecrement(t *testing.T) {
	// GIVEN
	state := State(127)

	// WHEN
	up := state.Increment()
	down := state.Decrement()

	// THEN
	assert.Equal(t, State(128), up)
	assert.Equal(t, State(126), down)
}

func TestSwitchesMapBitsLsbFirst(t *testing.T) {
	// GIVEN
	state := State(0b10101010)

	// WHEN
	commands := state.Switches()

	// THEN
	expected := [NumSwitches]bool{false, true, false, true, false, true, false, true}
	assert.Equal(t, expected, commands)
}

func TestResistanceAllSwitchesOpen(t *testing.T) {
	// GIVEN
	codec := NewCodec(DefaultClosedSwitchResistance)

	// WHEN
	resistance := codec.Resistance(MinState)

	// THEN
	// 1+2+4+8+16+32+64+128
	assert.Equal(t, 255.0, resistance)
}

func TestResistanceAllSwitchesClosed(t *testing.T) {
	// GIVEN
	codec := NewCodec(DefaultClosedSwitchResistance)

	// WHEN
	resistance := codec.Resistance(MaxState)

	// THEN
	assert.InDelta(t, 0.16, resistance, 1e-9)
}

func TestResistanceAlternatingState(t *testing.T) {
	// GIVEN
	codec := NewCodec(DefaultClosedSwitchResistance)

	// WHEN
	resistance := codec.Resistance(State(170))

	// THEN
	// 0b10101010: open bits contribute 1+4+16+64, closed bits 4 * 0.02
	assert.InDelta(t, 85.08, resistance, 1e-9)
}

func TestResistanceIsPositiveForAllStates(t *testing.T) {
	// GIVEN
	codec := NewCodec(DefaultClosedSwitchResistance)

	for i := 0; i <= int(MaxState); i++ {
		// WHEN
		resistance := codec.Resistance(State(i))

		// THEN
		assert.Greater(t, resistance, 0.0)
	}
}

func TestCodecRejectsNonPositiveResidual(t *testing.T) {
	// GIVEN
	codec := NewCodec(0)

	// WHEN
	resistance := codec.Resistance(MaxState)

	// THEN
	assert.Equal(t, DefaultClosedSwitchResistance, codec.ClosedSwitchResistance)
	assert.Greater(t, resistance, 0.0)
}
