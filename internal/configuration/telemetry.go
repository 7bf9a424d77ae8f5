package configuration

import "time"

type TelemetryConfig struct {
	// TickRate is the cadence of telemetry capture and logging.
	TickRate time.Duration `json:"tickRate"`
	// LogPath is the append-only CSV datalog file. Empty disables the
	// file sink.
	LogPath string `json:"logPath"`
	// Timestamps prefixes each record with an RFC3339 timestamp.
	Timestamps bool `json:"timestamps"`
}
