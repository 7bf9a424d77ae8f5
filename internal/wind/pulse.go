package wind

import "sync/atomic"

// PulseCounter counts anemometer pulses. Pulse is called from the edge
// watcher goroutine at arbitrary times; Count is read from the telemetry
// side. The counter is the only concurrently mutated state shared
// between the two, so a single atomic word is sufficient.
type PulseCounter struct {
	count atomic.Uint64
}

func (p *PulseCounter) Pulse() {
	p.count.Add(1)
}

func (p *PulseCounter) Count() uint64 {
	return p.count.Load()
}
