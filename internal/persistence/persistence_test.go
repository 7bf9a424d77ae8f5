package persistence

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/markusressel/mppt2go/internal/load"
	"github.com/stretchr/testify/assert"
)

func createPersistence(t *testing.T) Persistence {
	dbPath := filepath.Join(t.TempDir(), "mppt2go.db")
	p := NewPersistence(dbPath)
	assert.NoError(t, p.Init())
	return p
}

func createRecord(timestamp time.Time, state load.State) TelemetryRecord {
	return TelemetryRecord{
		Time:          timestamp,
		WindSpeed:     4.2,
		WindGust:      9.9,
		WindDirection: 180,
		Voltage:       12.0,
		Power:         25.0,
		LoadState:     state,
		RisingCycle:   true,
	}
}

func TestSaveAndLoadTelemetryRecords(t *testing.T) {
	// GIVEN
	p := createPersistence(t)
	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	first := createRecord(base, 200)
	second := createRecord(base.Add(1*time.Second), 201)

	// WHEN
	assert.NoError(t, p.SaveTelemetryRecord(first))
	assert.NoError(t, p.SaveTelemetryRecord(second))
	records, err := p.LoadTelemetryHistory(0)

	// THEN
	assert.NoError(t, err)
	assert.Len(t, records, 2)
	// chronological order
	assert.Equal(t, load.State(200), records[0].LoadState)
	assert.Equal(t, load.State(201), records[1].LoadState)
}

func TestLoadTelemetryHistoryLimitReturnsMostRecent(t *testing.T) {
	// GIVEN
	p := createPersistence(t)
	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		record := createRecord(base.Add(time.Duration(i)*time.Second), load.State(i))
		assert.NoError(t, p.SaveTelemetryRecord(record))
	}

	// WHEN
	records, err := p.LoadTelemetryHistory(2)

	// THEN
	assert.NoError(t, err)
	assert.Len(t, records, 2)
	assert.Equal(t, load.State(3), records[0].LoadState)
	assert.Equal(t, load.State(4), records[1].LoadState)
}

func TestLoadTelemetryHistoryWithoutData(t *testing.T) {
	// GIVEN
	p := createPersistence(t)

	// WHEN
	records, err := p.LoadTelemetryHistory(0)

	// THEN
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Empty(t, records)
}

func TestDeleteTelemetryHistory(t *testing.T) {
	// GIVEN
	p := createPersistence(t)
	record := createRecord(time.Now(), 100)
	assert.NoError(t, p.SaveTelemetryRecord(record))

	// WHEN
	err := p.DeleteTelemetryHistory()

	// THEN
	assert.NoError(t, err)
	records, err := p.LoadTelemetryHistory(0)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Empty(t, records)
}
