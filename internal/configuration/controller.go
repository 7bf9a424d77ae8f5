package configuration

import "time"

type ControllerConfig struct {
	// Sensor is the id of the voltage sensor sampled before each decision.
	Sensor string `json:"sensor"`
	// TickRate is the cadence of the perturb-and-observe loop.
	TickRate time.Duration `json:"tickRate"`
	// InitialLoadState is the load state applied on startup, in [0..255].
	InitialLoadState int `json:"initialLoadState"`
	// InitialRisingCycle is the initial search direction flag.
	InitialRisingCycle bool `json:"initialRisingCycle"`
}

type PowerConfig struct {
	// VoltageDividerScale compensates the attenuation of the voltage
	// sensing circuit. 1.0 disables scaling.
	VoltageDividerScale float64 `json:"voltageDividerScale"`
	// ClosedSwitchResistance is the residual resistance of a closed
	// switch branch in resistance-units. Must be > 0.
	ClosedSwitchResistance float64 `json:"closedSwitchResistance"`
}
