package telemetry

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/markusressel/mppt2go/internal/configuration"
	"github.com/markusressel/mppt2go/internal/controller"
	"github.com/markusressel/mppt2go/internal/persistence"
	"github.com/markusressel/mppt2go/internal/ui"
	"github.com/markusressel/mppt2go/internal/wind"
)

// Recorder captures one telemetry sample per tick, appends it to the
// CSV datalog and stores it in persistence. The capture path only reads
// a controller snapshot, so a failing sink can never disturb the
// control loop.
type Recorder interface {
	Run(ctx context.Context) error
	Record() error
}

type recorder struct {
	windSource     wind.Source
	loadController controller.LoadController
	pers           persistence.Persistence
	config         configuration.TelemetryConfig

	now func() time.Time
}

func NewRecorder(
	windSource wind.Source,
	loadController controller.LoadController,
	pers persistence.Persistence,
	config configuration.TelemetryConfig,
) Recorder {
	return &recorder{
		windSource:     windSource,
		loadController: loadController,
		pers:           pers,
		config:         config,
		now:            time.Now,
	}
}

func (r *recorder) Run(ctx context.Context) error {
	tick := time.Tick(r.config.TickRate)
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-tick:
			err := r.Record()
			if err != nil {
				ui.Warning("Error recording telemetry: %v", err)
			}
		}
	}
}

func (r *recorder) Record() error {
	r.windSource.Update()
	snapshot := r.loadController.Snapshot()

	record := persistence.TelemetryRecord{
		Time:          r.now(),
		WindSpeed:     r.windSource.Speed(),
		WindGust:      r.windSource.Gust(),
		WindDirection: r.windSource.Direction(),
		Voltage:       snapshot.Voltage,
		Power:         snapshot.Power,
		LoadState:     snapshot.State,
		RisingCycle:   snapshot.RisingCycle,
	}

	if r.pers != nil {
		if err := r.pers.SaveTelemetryRecord(record); err != nil {
			ui.Warning("Unable to persist telemetry record: %v", err)
		}
	}

	if len(r.config.LogPath) > 0 {
		line := r.csvLine(record)
		if err := appendLine(r.config.LogPath, line); err != nil {
			return fmt.Errorf("error writing datalog %s: %w", r.config.LogPath, err)
		}
	}

	return nil
}

func (r *recorder) csvLine(record persistence.TelemetryRecord) string {
	fields := []string{
		formatFloat(record.WindSpeed),
		formatFloat(record.WindGust),
		formatFloat(record.WindDirection),
		formatFloat(record.Power),
		strconv.Itoa(int(record.LoadState)),
	}

	line := strings.Join(fields, ",")
	if r.config.Timestamps {
		line = record.Time.Format(time.RFC3339) + "," + line
	}
	return line
}

func formatFloat(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}

func appendLine(path string, line string) error {
	parentDir := filepath.Dir(path)
	if err := os.MkdirAll(parentDir, 0755); err != nil {
		return err
	}

	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer func(file *os.File) {
		_ = file.Close()
	}(file)

	_, err = file.WriteString(line + "\n")
	return err
}
