package statistics

import (
	"github.com/markusressel/mppt2go/internal/wind"
	"github.com/prometheus/client_golang/prometheus"
)

const windSubsystem = "wind"

type WindCollector struct {
	source wind.Source

	speed     *prometheus.Desc
	gust      *prometheus.Desc
	direction *prometheus.Desc
}

func NewWindCollector(source wind.Source) *WindCollector {
	return &WindCollector{
		source: source,
		speed: prometheus.NewDesc(prometheus.BuildFQName(namespace, windSubsystem, "speed"),
			"Most recently computed wind speed",
			[]string{"id"}, nil,
		),
		gust: prometheus.NewDesc(prometheus.BuildFQName(namespace, windSubsystem, "gust"),
			"Highest wind speed within the gust window",
			[]string{"id"}, nil,
		),
		direction: prometheus.NewDesc(prometheus.BuildFQName(namespace, windSubsystem, "direction"),
			"Most recently read wind direction",
			[]string{"id"}, nil,
		),
	}
}

func (collector *WindCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- collector.speed
	ch <- collector.gust
	ch <- collector.direction
}

// Collect implements required collect function for all prometheus collectors
func (collector *WindCollector) Collect(ch chan<- prometheus.Metric) {
	sourceId := collector.source.GetId()
	ch <- prometheus.MustNewConstMetric(collector.speed, prometheus.GaugeValue, collector.source.Speed(), sourceId)
	ch <- prometheus.MustNewConstMetric(collector.gust, prometheus.GaugeValue, collector.source.Gust(), sourceId)
	ch <- prometheus.MustNewConstMetric(collector.direction, prometheus.GaugeValue, collector.source.Direction(), sourceId)
}
