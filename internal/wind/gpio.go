package wind

import (
	"context"
	"fmt"
	"time"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"
)

// EdgeWatcher increments the given pulse counter on every falling edge
// of the anemometer input pin. It is the only writer of the counter.
type EdgeWatcher struct {
	PinName string
	Counter *PulseCounter
}

func NewEdgeWatcher(pinName string, counter *PulseCounter) *EdgeWatcher {
	return &EdgeWatcher{
		PinName: pinName,
		Counter: counter,
	}
}

func (w *EdgeWatcher) Run(ctx context.Context) error {
	if _, err := host.Init(); err != nil {
		return fmt.Errorf("failed to initialize periph: %v", err)
	}

	pin := gpioreg.ByName(w.PinName)
	if pin == nil {
		return fmt.Errorf("failed to find anemometer pin '%s'", w.PinName)
	}
	if err := pin.In(gpio.PullUp, gpio.FallingEdge); err != nil {
		return fmt.Errorf("failed to configure anemometer pin '%s': %v", w.PinName, err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		// the timeout keeps the ctx check responsive
		if pin.WaitForEdge(1 * time.Second) {
			w.Counter.Pulse()
		}
	}
}
