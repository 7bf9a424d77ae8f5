package configuration

import "time"

type WindConfig struct {
	Anemometer *AnemometerConfig `json:"anemometer,omitempty"`
	File       *FileWindConfig   `json:"file,omitempty"`
}

type AnemometerConfig struct {
	// Pin is the name of the input pin the anemometer pulses on.
	Pin string `json:"pin"`
	// CalcInterval is the window over which pulses are converted into a
	// wind speed value.
	CalcInterval time.Duration `json:"calcInterval"`
	// SpeedPerPulse is the calibration factor: wind speed units per
	// pulse per second.
	SpeedPerPulse float64 `json:"speedPerPulse"`
	// GustWindowSize is the number of calc intervals the gust value is
	// computed over.
	GustWindowSize int `json:"gustWindowSize"`
	// VaneSensor is the id of the sensor reporting the wind direction.
	VaneSensor string `json:"vaneSensor"`
}

type FileWindConfig struct {
	SpeedPath     string `json:"speedPath"`
	GustPath      string `json:"gustPath"`
	DirectionPath string `json:"directionPath"`
}
