package hwmon

import (
	"fmt"
	"path/filepath"

	"github.com/markusressel/mppt2go/internal/sensors"
	"github.com/markusressel/mppt2go/internal/util"
	"github.com/md14454/gosensors"
)

const (
	BusTypeIsa  = 1
	BusTypePci  = 2
	BusTypeAcpi = 5
)

type HwMonController struct {
	Name     string
	Platform string
	Path     string

	Sensors []*sensors.HwmonSensor
}

// GetChips lists all lm-sensors chips that expose voltage inputs.
func GetChips() []*HwMonController {
	gosensors.Init()
	defer gosensors.Cleanup()
	chips := gosensors.GetDetectedChips()

	var list []*HwMonController

	for i := 0; i < len(chips); i++ {
		chip := chips[i]

		identifier := computeIdentifier(chip)

		sensorList := GetVoltageSensors(chip)
		if len(sensorList) <= 0 {
			continue
		}

		c := &HwMonController{
			Name:     identifier,
			Platform: identifier,
			Path:     chip.Path,
			Sensors:  sensorList,
		}
		list = append(list, c)
	}

	return list
}

// GetVoltageSensors returns the voltage inputs ("inN") of the given chip.
func GetVoltageSensors(chip gosensors.Chip) []*sensors.HwmonSensor {
	var sensorList []*sensors.HwmonSensor

	features := chip.GetFeatures()
	for j := 0; j < len(features); j++ {
		feature := features[j]

		if feature.Type != gosensors.FeatureTypeIn {
			continue
		}

		subfeatures := feature.GetSubFeatures()

		if containsSubFeature(subfeatures, gosensors.SubFeatureTypeInInput) {
			inputSubFeature := getSubFeature(subfeatures, gosensors.SubFeatureTypeInInput)
			sensorInputPath := fmt.Sprintf("%s/%s", chip.Path, inputSubFeature.Name)

			label := util.GetLabel(chip.Path, inputSubFeature.Name)

			sensorList = append(
				sensorList,
				&sensors.HwmonSensor{
					Label:     label,
					Index:     len(sensorList) + 1,
					Input:     sensorInputPath,
					MovingAvg: inputSubFeature.GetValue(),
				})
		}
	}

	return sensorList
}

func getSubFeature(subfeatures []gosensors.SubFeature, input gosensors.SubFeatureType) gosensors.SubFeature {
	for _, a := range subfeatures {
		if a.Type == input {
			return a
		}
	}
	return gosensors.SubFeature{}
}

func containsSubFeature(s []gosensors.SubFeature, e gosensors.SubFeatureType) bool {
	for _, a := range s {
		if a.Type == e {
			return true
		}
	}
	return false
}

func computeIdentifier(chip gosensors.Chip) (name string) {
	name = chip.Prefix

	devicePath := chip.Path
	if len(name) <= 0 {
		name = util.GetDeviceName(devicePath)
	}

	if len(name) <= 0 {
		_, name = filepath.Split(devicePath)
	}

	identifier := name
	switch chip.Bus.Type {
	case BusTypeIsa:
		identifier = fmt.Sprintf("%s-isa-%d", identifier, chip.Bus.Nr)
	case BusTypePci:
		identifier = fmt.Sprintf("%s-pci-%d", identifier, chip.Bus.Nr)
	case BusTypeAcpi:
		identifier = fmt.Sprintf("%s-acpi-%d", identifier, chip.Bus.Nr)
	}

	return identifier
}
