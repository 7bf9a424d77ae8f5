package main

import (
	"github.com/markusressel/mppt2go/cmd"
)

func main() {
	cmd.Execute()
}
