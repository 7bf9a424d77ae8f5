package wind

import (
	"sync"
	"time"

	"github.com/asecurityteam/rolling"
	"github.com/markusressel/mppt2go/internal/configuration"
	"github.com/markusressel/mppt2go/internal/sensors"
	"github.com/markusressel/mppt2go/internal/util"
)

const DefaultGustWindowSize = 10

// Anemometer derives wind speed from the pulses of a rotating cup
// anemometer and wind direction from a vane sensor. The gust value is
// the highest speed seen within the rolling gust window.
type Anemometer struct {
	Config configuration.AnemometerConfig

	Pulses *PulseCounter

	mu         sync.RWMutex
	lastCount  uint64
	lastCalc   time.Time
	speed      float64
	gustWindow *rolling.PointPolicy
	direction  float64

	now func() time.Time
}

func NewAnemometer(config configuration.AnemometerConfig) *Anemometer {
	windowSize := config.GustWindowSize
	if windowSize <= 0 {
		windowSize = DefaultGustWindowSize
	}

	gustWindow := util.CreateRollingWindow(windowSize)
	util.FillWindow(gustWindow, windowSize, 0)

	return &Anemometer{
		Config:     config,
		Pulses:     &PulseCounter{},
		lastCalc:   time.Now(),
		gustWindow: gustWindow,
		now:        time.Now,
	}
}

func (a *Anemometer) GetId() string {
	return "anemometer"
}

// Update recomputes speed and gust once the calc interval has elapsed
// and refreshes the direction from the vane sensor. Calling it more
// often than the calc interval is a no-op for the speed values.
func (a *Anemometer) Update() {
	a.mu.Lock()
	defer a.mu.Unlock()

	now := a.now()
	elapsed := now.Sub(a.lastCalc)
	if elapsed < a.Config.CalcInterval {
		return
	}

	count := a.Pulses.Count()
	delta := count - a.lastCount
	a.lastCount = count
	a.lastCalc = now

	a.speed = float64(delta) / elapsed.Seconds() * a.Config.SpeedPerPulse
	a.gustWindow.Append(a.speed)

	if len(a.Config.VaneSensor) > 0 {
		if vane, exists := sensors.SensorMap.Get(a.Config.VaneSensor); exists {
			value, err := vane.GetValue()
			if err == nil {
				// a failed vane read keeps the previous direction
				a.direction = value
			}
		}
	}
}

func (a *Anemometer) Speed() float64 {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.speed
}

func (a *Anemometer) Gust() float64 {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return util.GetWindowMax(a.gustWindow)
}

func (a *Anemometer) Direction() float64 {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.direction
}
