package ui

import (
	"os"

	"github.com/pterm/pterm"
)

func ExamplePrintfln() {
	pterm.SetDefaultOutput(os.Stdout)
	pterm.DisableStyling()

	msg := "Load state is now %d"
	a := 254
	Printfln(msg, a)
	// Output:
	// Load state is now 254
}

func ExampleDebug() {
	pterm.SetDefaultOutput(os.Stdout)
	pterm.DisableStyling()
	pterm.PrintDebugMessages = true

	msg := "Power sample: %d"
	a := 42
	Debug(msg, a)
	// Output:
	// DEBUG: Power sample: 42
}

func ExampleInfo() {
	pterm.SetDefaultOutput(os.Stdout)
	pterm.DisableStyling()

	msg := "Starting controller loop %d"
	a := 1
	Info(msg, a)
	// Output:
	// INFO: Starting controller loop 1
}

func ExampleWarning() {
	pterm.SetDefaultOutput(os.Stdout)
	pterm.DisableStyling()

	msg := "Stale voltage sample: %d"
	a := 0
	Warning(msg, a)
	// Output:
	// WARNING: Stale voltage sample: 0
}

func ExampleError() {
	pterm.SetDefaultOutput(os.Stdout)
	pterm.DisableStyling()

	msg := "Unable to apply load state: %v"
	a := os.ErrClosed
	Error(msg, a)
	// Output:
	// ERROR: Unable to apply load state: file already closed
}
