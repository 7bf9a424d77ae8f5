package configuration

type SensorConfig struct {
	ID string `json:"id"`

	HwMon   *HwMonSensorConfig   `json:"hwMon,omitempty"`
	File    *FileSensorConfig    `json:"file,omitempty"`
	Cmd     *CmdSensorConfig     `json:"cmd,omitempty"`
	Virtual *VirtualSensorConfig `json:"virtual,omitempty"`
}

type HwMonSensorConfig struct {
	Platform string `json:"platform"`
	Index    int    `json:"index"`

	// VoltageInput is detected at runtime from the matched chip.
	VoltageInput string
}

type FileSensorConfig struct {
	Path string `json:"path"`
	// Scale converts the raw file value (e.g. ADC counts or millivolts)
	// into volts. Defaults to 1.0.
	Scale float64 `json:"scale"`
}

type CmdSensorConfig struct {
	Exec string   `json:"exec"`
	Args []string `json:"args"`
}

type VirtualSensorConfig struct {
	// Sensors are averaged to form the value of this sensor.
	Sensors []string `json:"sensors"`
}
