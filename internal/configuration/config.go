package configuration

import (
	"os"
	"time"

	"github.com/markusressel/mppt2go/internal/ui"
	"github.com/mitchellh/go-homedir"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

type Configuration struct {
	DbPath string `json:"dbPath"`

	SensorPollingRate       time.Duration `json:"sensorPollingRate"`
	SensorRollingWindowSize int           `json:"sensorRollingWindowSize"`

	Controller ControllerConfig `json:"controller"`
	Power      PowerConfig      `json:"power"`
	Telemetry  TelemetryConfig  `json:"telemetry"`

	Api        ApiConfig        `json:"api"`
	Statistics StatisticsConfig `json:"statistics"`

	Sensors  []SensorConfig `json:"sensors"`
	Actuator ActuatorConfig `json:"actuator"`
	Wind     WindConfig     `json:"wind"`
}

var CurrentConfig Configuration

// InitConfig reads in config file and ENV variables if set.
func InitConfig(cfgFile string) {
	viper.SetConfigName("mppt2go")

	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := homedir.Dir()
		if err != nil {
			ui.Error("Couldn't detect home directory: %v", err)
			os.Exit(1)
		}

		viper.AddConfigPath(".")
		viper.AddConfigPath(home)
		viper.AddConfigPath("/etc/mppt2go/")
	}

	viper.AutomaticEnv() // read in environment variables that match

	setDefaultValues()
}

func setDefaultValues() {
	viper.SetDefault("DbPath", "/etc/mppt2go/mppt2go.db")

	viper.SetDefault("SensorPollingRate", 200*time.Millisecond)
	viper.SetDefault("SensorRollingWindowSize", 50)

	viper.SetDefault("Controller.TickRate", 10*time.Millisecond)
	viper.SetDefault("Controller.InitialLoadState", 255)
	viper.SetDefault("Controller.InitialRisingCycle", true)

	viper.SetDefault("Power.VoltageDividerScale", 1.0)
	viper.SetDefault("Power.ClosedSwitchResistance", 0.02)

	viper.SetDefault("Telemetry.TickRate", 1*time.Second)
	viper.SetDefault("Telemetry.LogPath", "/var/log/mppt2go/datalog.txt")
	viper.SetDefault("Telemetry.Timestamps", true)

	viper.SetDefault("Statistics.Enabled", false)
	viper.SetDefault("Statistics.Port", 9000)

	viper.SetDefault("Api.Enabled", false)
	viper.SetDefault("Api.Host", "localhost")
	viper.SetDefault("Api.Port", 9001)

	viper.SetDefault("Sensors", []SensorConfig{})
}

// DetectAndReadConfigFile detects the path of the first existing config file
// and reads it into memory
func DetectAndReadConfigFile() string {
	ReadConfigFile()
	return GetFilePath()
}

// GetFilePath this is only populated _after_ viper has read the config file
func GetFilePath() string {
	return viper.ConfigFileUsed()
}

func ReadConfigFile() {
	if err := viper.ReadInConfig(); err != nil {
		// config file is required, so we fail here
		ui.Fatal("Error reading config file, %s", err)
	}
	LoadConfig()
}

func LoadConfig() {
	// load default configuration values
	err := viper.Unmarshal(
		&CurrentConfig,
		viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		)),
	)
	if err != nil {
		ui.Fatal("unable to decode into struct, %v", err)
	}
}

func Validate(configPath string) error {
	return validateConfig(&CurrentConfig, configPath)
}
