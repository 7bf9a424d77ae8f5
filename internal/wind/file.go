package wind

import (
	"github.com/markusressel/mppt2go/internal/configuration"
	"github.com/markusressel/mppt2go/internal/util"
)

// FileSource reads pre-computed wind values from files, for boards whose
// weather station driver already exposes them.
type FileSource struct {
	Config configuration.FileWindConfig
}

func (s *FileSource) GetId() string {
	return "wind-file"
}

func (s *FileSource) Update() {
	// values are read on demand
}

func (s *FileSource) Speed() float64 {
	return s.readOrZero(s.Config.SpeedPath)
}

func (s *FileSource) Gust() float64 {
	return s.readOrZero(s.Config.GustPath)
}

func (s *FileSource) Direction() float64 {
	return s.readOrZero(s.Config.DirectionPath)
}

func (s *FileSource) readOrZero(path string) float64 {
	if len(path) <= 0 {
		return 0
	}
	value, err := util.ReadFloatFromFile(path)
	if err != nil {
		return 0
	}
	return value
}
