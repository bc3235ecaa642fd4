package main

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/gwillem/mimic/pkg/device"
)

type DumpCommand struct {
	SourceOptions
	Output string `short:"o" long:"output" default:"-" description:"Output file ('-' for stdout)"`
}

func (c *DumpCommand) Execute(args []string) error {
	cfg, err := c.validSettings()
	if err != nil {
		return err
	}

	m, err := loadMimic(cfg)
	if err != nil {
		return err
	}

	var out io.Writer = os.Stdout
	if c.Output != "-" {
		f, err := os.Create(c.Output)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer f.Close()
		out = f
	}

	w := bufio.NewWriter(out)
	n, err := dumpStates(w, m)
	if err != nil {
		return err
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Wrote %d controller states\n", n)
	return nil
}

// dumpStates polls d from the start until it runs out of frames.
func dumpStates(w io.Writer, d device.Device) (int, error) {
	enc := json.NewEncoder(w)
	d.StartControl()

	for n := 0; ; n++ {
		state, err := d.GetControllerState()
		if errors.Is(err, device.ErrIndexOutOfRange) {
			return n, nil
		}
		if err != nil {
			return n, err
		}
		if err := enc.Encode(state); err != nil {
			return n, fmt.Errorf("encode state: %w", err)
		}
	}
}
