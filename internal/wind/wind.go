package wind

import (
	"fmt"

	"github.com/markusressel/mppt2go/internal/configuration"
)

// Source provides wind telemetry. Update recomputes the derived values
// and may be called as often as convenient; it is cheap when the
// internal measurement interval has not yet elapsed. Speed, Gust and
// Direction return the most recently computed values.
type Source interface {
	GetId() string

	Update()

	Speed() float64
	Gust() float64
	Direction() float64
}

func NewSource(config configuration.WindConfig) (Source, error) {
	if config.Anemometer != nil {
		return NewAnemometer(*config.Anemometer), nil
	}

	if config.File != nil {
		return &FileSource{
			Config: *config.File,
		}, nil
	}

	return nil, fmt.Errorf("no matching wind source type")
}

// NewDisabledSource returns a source that always reports zero values,
// for setups without any wind instrumentation.
func NewDisabledSource() Source {
	return disabledSource{}
}

type disabledSource struct{}

func (s disabledSource) GetId() string      { return "wind-disabled" }
func (s disabledSource) Update()            {}
func (s disabledSource) Speed() float64     { return 0 }
func (s disabledSource) Gust() float64      { return 0 }
func (s disabledSource) Direction() float64 { return 0 }
