package main

import (
	"os"

	"github.com/jessevdk/go-flags"
)

type Options struct {
	Config string `short:"c" long:"config" default:"mimic.json" description:"Configuration file"`

	Init    InitCommand    `command:"init" description:"Write a default configuration file"`
	Inspect InspectCommand `command:"inspect" description:"Load a recording and list its frames"`
	Replay  ReplayCommand  `command:"replay" description:"Replay a recording through the control loop"`
	Plot    PlotCommand    `command:"plot" description:"Plot the replayed position offsets to an image"`
	Dump    DumpCommand    `command:"dump" description:"Write every controller state as JSON lines"`
}

var opts Options
var parser = flags.NewParser(&opts, flags.Default)

func main() {
	parser.LongDescription = "Mimic - replay motion-capture recordings as robot teleoperation input"

	_, err := parser.Parse()
	if err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				os.Exit(0)
			}
		}
		os.Exit(1)
	}
}
