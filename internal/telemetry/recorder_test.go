package telemetry

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/markusressel/mppt2go/internal/configuration"
	"github.com/markusressel/mppt2go/internal/controller"
	"github.com/markusressel/mppt2go/internal/load"
	"github.com/markusressel/mppt2go/internal/persistence"
	"github.com/stretchr/testify/assert"
)

type MockWindSource struct {
	SpeedValue     float64
	GustValue      float64
	DirectionValue float64
	Updated        int
}

func (s *MockWindSource) GetId() string {
	return "wind-mock"
}

func (s *MockWindSource) Update() {
	s.Updated++
}

func (s *MockWindSource) Speed() float64 {
	return s.SpeedValue
}

func (s *MockWindSource) Gust() float64 {
	return s.GustValue
}

func (s *MockWindSource) Direction() float64 {
	return s.DirectionValue
}

type MockController struct {
	Current controller.Snapshot
}

func (c *MockController) Run(ctx context.Context) error {
	return nil
}

func (c *MockController) UpdateLoad() error {
	return nil
}

func (c *MockController) Snapshot() controller.Snapshot {
	return c.Current
}

func createRecorder(t *testing.T, config configuration.TelemetryConfig) (*recorder, *MockWindSource, persistence.Persistence) {
	windSource := &MockWindSource{
		SpeedValue:     4.5,
		GustValue:      9.25,
		DirectionValue: 180,
	}
	loadController := &MockController{
		Current: controller.Snapshot{
			State:       load.State(254),
			RisingCycle: true,
			Power:       25.5,
			Voltage:     12,
		},
	}
	pers := persistence.NewPersistence(filepath.Join(t.TempDir(), "mppt2go.db"))
	assert.NoError(t, pers.Init())

	r := NewRecorder(windSource, loadController, pers, config).(*recorder)
	r.now = func() time.Time {
		return time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	}
	return r, windSource, pers
}

func TestRecordAppendsCsvLine(t *testing.T) {
	// GIVEN
	logPath := filepath.Join(t.TempDir(), "datalog.txt")
	r, windSource, _ := createRecorder(t, configuration.TelemetryConfig{
		TickRate: 1 * time.Second,
		LogPath:  logPath,
	})

	// WHEN
	err := r.Record()

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, 1, windSource.Updated)

	content, err := os.ReadFile(logPath)
	assert.NoError(t, err)
	assert.Equal(t, "4.5,9.25,180,25.5,254\n", string(content))
}

func TestRecordPrefixesTimestamp(t *testing.T) {
	// GIVEN
	logPath := filepath.Join(t.TempDir(), "datalog.txt")
	r, _, _ := createRecorder(t, configuration.TelemetryConfig{
		TickRate:   1 * time.Second,
		LogPath:    logPath,
		Timestamps: true,
	})

	// WHEN
	err := r.Record()

	// THEN
	assert.NoError(t, err)
	content, err := os.ReadFile(logPath)
	assert.NoError(t, err)
	assert.Equal(t, "2024-01-01T12:00:00Z,4.5,9.25,180,25.5,254\n", string(content))
}

func TestRecordStoresRecordInPersistence(t *testing.T) {
	// GIVEN
	r, _, pers := createRecorder(t, configuration.TelemetryConfig{
		TickRate: 1 * time.Second,
	})

	// WHEN
	err := r.Record()

	// THEN
	assert.NoError(t, err)
	records, err := pers.LoadTelemetryHistory(0)
	assert.NoError(t, err)
	assert.Len(t, records, 1)
	assert.Equal(t, load.State(254), records[0].LoadState)
	assert.Equal(t, 25.5, records[0].Power)
	assert.Equal(t, 4.5, records[0].WindSpeed)
}

func TestRecordAppendsToExistingLog(t *testing.T) {
	// GIVEN
	logPath := filepath.Join(t.TempDir(), "datalog.txt")
	r, _, _ := createRecorder(t, configuration.TelemetryConfig{
		TickRate: 1 * time.Second,
		LogPath:  logPath,
	})

	// WHEN
	assert.NoError(t, r.Record())
	assert.NoError(t, r.Record())

	// THEN
	content, err := os.ReadFile(logPath)
	assert.NoError(t, err)
	assert.Equal(t, "4.5,9.25,180,25.5,254\n4.5,9.25,180,25.5,254\n", string(content))
}
