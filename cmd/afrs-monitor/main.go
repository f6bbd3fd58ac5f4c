package main

import (
	"os"

	_ "go.uber.org/automaxprocs"

	"github.com/daivikpurani/Autonomous-Fleet-Response-System/cmd/afrs-monitor/app"
)

func main() {
	if err := app.NewMonitorCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
