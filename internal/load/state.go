package load

const (
	// NumSwitches is the number of MOSFET switches in the resistor cascade.
	NumSwitches = 8

	MinState State = 0
	MaxState State = 255

	// DefaultClosedSwitchResistance is the residual resistance of a closed
	// switch branch, in resistance-units.
	DefaultClosedSwitchResistance = 0.02
)

// State encodes the position of all switches in the binary-weighted
// resistor cascade. Bit i (LSB first) controls switch i:
// 1 = switch closed (residual resistance branch),
// 0 = switch open (resistor branch of weight 2^i resistance-units).
type State uint8

// Bit returns whether switch i is closed.
func (s State) Bit(i uint) bool {
	return (s>>i)&1 == 1
}

// Switches returns the switch command for each of the cascade outputs.
func (s State) Switches() [NumSwitches]bool {
	var commands [NumSwitches]bool
	for i := uint(0); i < NumSwitches; i++ {
		commands[i] = s.Bit(i)
	}
	return commands
}

// Increment returns the next higher state, saturating at MaxState.
func (s State) Increment() State {
	if s == MaxState {
		return MaxState
	}
	return s + 1
}

// Decrement returns the next lower state, saturating at MinState.
func (s State) Decrement() State {
	if s == MinState {
		return MinState
	}
	return s - 1
}

// Codec maps load states to the equivalent resistance of the cascade.
type Codec struct {
	// ClosedSwitchResistance is the residual resistance a closed switch
	// contributes instead of its resistor branch. Must be > 0, otherwise
	// the all-closed state would short the power model.
	ClosedSwitchResistance float64
}

func NewCodec(closedSwitchResistance float64) Codec {
	if closedSwitchResistance <= 0 {
		closedSwitchResistance = DefaultClosedSwitchResistance
	}
	return Codec{
		ClosedSwitchResistance: closedSwitchResistance,
	}
}

// Resistance computes the equivalent load resistance of the given state
// in resistance-units. Every bit contributes either its resistor branch
// (2^i when open) or the closed-switch residual, so the result is
// strictly positive for all 256 states.
func (c Codec) Resistance(s State) float64 {
	resistance := 0.0
	for i := uint(0); i < NumSwitches; i++ {
		if s.Bit(i) {
			resistance += c.ClosedSwitchResistance
		} else {
			resistance += float64(int(1) << i)
		}
	}
	return resistance
}
