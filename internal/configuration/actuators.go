package configuration

type ActuatorConfig struct {
	ID string `json:"id"`

	Gpio *GpioActuatorConfig `json:"gpio,omitempty"`
	File *FileActuatorConfig `json:"file,omitempty"`
	Cmd  *CmdActuatorConfig  `json:"cmd,omitempty"`
}

type GpioActuatorConfig struct {
	// Pins are the names of the 8 output pins driving the cascade
	// switches, LSB first.
	Pins []string `json:"pins"`
}

type FileActuatorConfig struct {
	// Paths are the 8 file paths that receive 0/1 switch commands,
	// LSB first.
	Paths []string `json:"paths"`
}

type CmdActuatorConfig struct {
	// Exec is invoked once per switch with the switch index and the
	// 0/1 command appended to Args.
	Exec string   `json:"exec"`
	Args []string `json:"args"`
}
