package power

import (
	"github.com/markusressel/mppt2go/internal/load"
)

// Estimator derives the instantaneous power delivered into the resistor
// cascade from a voltage sample and the current load state, using
// P = U*I with I = U/R.
type Estimator struct {
	codec load.Codec

	// voltageScale compensates the attenuation of the sensing circuit
	// (e.g. a voltage divider in front of the ADC). 1.0 means the sample
	// is already the real voltage.
	voltageScale float64
}

func NewEstimator(codec load.Codec, voltageScale float64) Estimator {
	if voltageScale <= 0 {
		voltageScale = 1.0
	}
	return Estimator{
		codec:        codec,
		voltageScale: voltageScale,
	}
}

func (e Estimator) Codec() load.Codec {
	return e.codec
}

// Estimate returns the estimated power for the given voltage sample and
// load state. The codec guarantees a strictly positive resistance for
// every state, so the division is always well-defined.
func (e Estimator) Estimate(voltage float64, state load.State) float64 {
	scaled := voltage * e.voltageScale
	return (scaled * scaled) / e.codec.Resistance(state)
}
