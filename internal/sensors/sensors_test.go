package sensors

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/markusressel/mppt2go/internal/configuration"
	"github.com/stretchr/testify/assert"
)

type MockSensor struct {
	ID        string
	Value     float64
	MovingAvg float64
}

func (sensor MockSensor) GetId() string {
	return sensor.ID
}

func (sensor MockSensor) GetConfig() configuration.SensorConfig {
	return configuration.SensorConfig{ID: sensor.ID}
}

func (sensor MockSensor) GetValue() (float64, error) {
	return sensor.Value, nil
}

func (sensor MockSensor) GetMovingAvg() (avg float64) {
	return sensor.MovingAvg
}

func (sensor *MockSensor) SetMovingAvg(avg float64) {
	sensor.MovingAvg = avg
}

func TestNewSensorWithoutSubConfig(t *testing.T) {
	// GIVEN
	config := configuration.SensorConfig{ID: "empty"}

	// WHEN
	_, err := NewSensor(config)

	// THEN
	assert.Error(t, err)
}

func TestFileSensorReadsScaledValue(t *testing.T) {
	// GIVEN
	dir := t.TempDir()
	path := filepath.Join(dir, "voltage")
	err := os.WriteFile(path, []byte("3300\n"), 0644)
	assert.NoError(t, err)

	sensor, err := NewSensor(configuration.SensorConfig{
		ID: "voltage",
		File: &configuration.FileSensorConfig{
			Path:  path,
			Scale: 0.001,
		},
	})
	assert.NoError(t, err)

	// WHEN
	value, err := sensor.GetValue()

	// THEN
	assert.NoError(t, err)
	assert.InDelta(t, 3.3, value, 1e-9)
}

func TestFileSensorDegradesToZeroOnMissingFile(t *testing.T) {
	// GIVEN
	sensor, err := NewSensor(configuration.SensorConfig{
		ID: "voltage",
		File: &configuration.FileSensorConfig{
			Path: "/does/not/exist",
		},
	})
	assert.NoError(t, err)

	// WHEN
	value, err := sensor.GetValue()

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, 0.0, value)
}

func TestVirtualSensorAveragesReferencedSensors(t *testing.T) {
	// GIVEN
	SensorMap.Set("a", &MockSensor{ID: "a", Value: 2.0})
	SensorMap.Set("b", &MockSensor{ID: "b", Value: 4.0})

	sensor, err := NewSensor(configuration.SensorConfig{
		ID: "combined",
		Virtual: &configuration.VirtualSensorConfig{
			Sensors: []string{"a", "b"},
		},
	})
	assert.NoError(t, err)

	// WHEN
	value, err := sensor.GetValue()

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, 3.0, value)
}

func TestVirtualSensorFailsOnUnknownReference(t *testing.T) {
	// GIVEN
	sensor, err := NewSensor(configuration.SensorConfig{
		ID: "combined",
		Virtual: &configuration.VirtualSensorConfig{
			Sensors: []string{"missing"},
		},
	})
	assert.NoError(t, err)

	// WHEN
	_, err = sensor.GetValue()

	// THEN
	assert.Error(t, err)
}
