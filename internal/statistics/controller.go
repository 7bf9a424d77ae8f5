package statistics

import (
	"github.com/markusressel/mppt2go/internal/controller"
	"github.com/prometheus/client_golang/prometheus"
)

const controllerSubsystem = "controller"

type ControllerCollector struct {
	loadController controller.LoadController

	loadState   *prometheus.Desc
	risingCycle *prometheus.Desc
	power       *prometheus.Desc
	voltage     *prometheus.Desc
	resistance  *prometheus.Desc
}

func NewControllerCollector(loadController controller.LoadController) *ControllerCollector {
	return &ControllerCollector{
		loadController: loadController,
		loadState: prometheus.NewDesc(prometheus.BuildFQName(namespace, controllerSubsystem, "load_state"),
			"Currently applied load state of the switch cascade",
			nil, nil,
		),
		risingCycle: prometheus.NewDesc(prometheus.BuildFQName(namespace, controllerSubsystem, "rising_cycle"),
			"Current direction flag of the hill climbing search (1 = rising)",
			nil, nil,
		),
		power: prometheus.NewDesc(prometheus.BuildFQName(namespace, controllerSubsystem, "power"),
			"Power estimate of the most recent controller tick",
			nil, nil,
		),
		voltage: prometheus.NewDesc(prometheus.BuildFQName(namespace, controllerSubsystem, "voltage"),
			"Voltage sample of the most recent controller tick",
			nil, nil,
		),
		resistance: prometheus.NewDesc(prometheus.BuildFQName(namespace, controllerSubsystem, "resistance"),
			"Effective resistance of the currently applied load state",
			nil, nil,
		),
	}
}

func (collector *ControllerCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- collector.loadState
	ch <- collector.risingCycle
	ch <- collector.power
	ch <- collector.voltage
	ch <- collector.resistance
}

// Collect implements required collect function for all prometheus collectors
func (collector *ControllerCollector) Collect(ch chan<- prometheus.Metric) {
	snapshot := collector.loadController.Snapshot()

	risingCycle := 0.0
	if snapshot.RisingCycle {
		risingCycle = 1.0
	}

	ch <- prometheus.MustNewConstMetric(collector.loadState, prometheus.GaugeValue, float64(snapshot.State))
	ch <- prometheus.MustNewConstMetric(collector.risingCycle, prometheus.GaugeValue, risingCycle)
	ch <- prometheus.MustNewConstMetric(collector.power, prometheus.GaugeValue, snapshot.Power)
	ch <- prometheus.MustNewConstMetric(collector.voltage, prometheus.GaugeValue, snapshot.Voltage)
	ch <- prometheus.MustNewConstMetric(collector.resistance, prometheus.GaugeValue, snapshot.Resistance)
}
