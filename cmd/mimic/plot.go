package main

import (
	"fmt"
	"image/color"

	"gonum.org/v1/gonum/spatial/r3"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

type PlotCommand struct {
	SourceOptions
	Output string  `short:"o" long:"output" default:"mimic.png" description:"Image file (.png, .svg, .pdf)"`
	Width  float64 `long:"width" default:"8" description:"Width in inches"`
	Height float64 `long:"height" default:"4" description:"Height in inches"`
}

var plotColors = map[string]color.RGBA{
	"x": {R: 0xd6, G: 0x27, B: 0x28, A: 0xff},
	"y": {R: 0x2c, G: 0xa0, B: 0x2c, A: 0xff},
	"z": {R: 0x1f, G: 0x77, B: 0xb4, A: 0xff},
}

func (c *PlotCommand) Execute(args []string) error {
	cfg, err := c.validSettings()
	if err != nil {
		return err
	}

	frames, err := loadFrames(cfg)
	if err != nil {
		return err
	}
	positions := make([]r3.Vec, len(frames))
	for i, f := range frames {
		positions[i] = f.Offset
	}

	p, err := plotPositions(positions)
	if err != nil {
		return err
	}
	p.Title.Text = cfg.Dir

	if err := p.Save(vg.Length(c.Width)*vg.Inch, vg.Length(c.Height)*vg.Inch, c.Output); err != nil {
		return fmt.Errorf("save plot: %w", err)
	}
	fmt.Println(successStyle.Render(fmt.Sprintf("Plotted %d frames to %s", len(positions), c.Output)))
	return nil
}

// plotPositions draws one line per control axis against frame index.
func plotPositions(positions []r3.Vec) (*plot.Plot, error) {
	p := plot.New()
	p.X.Label.Text = "frame"
	p.Y.Label.Text = "dpos"
	p.Add(plotter.NewGrid())

	for _, axis := range axes {
		pts := make(plotter.XYs, len(positions))
		for i, v := range positions {
			pts[i].X = float64(i)
			pts[i].Y = axisValue(v, axis)
		}

		line, err := plotter.NewLine(pts)
		if err != nil {
			return nil, fmt.Errorf("plot %s: %w", axis, err)
		}
		line.Color = plotColors[axis]
		p.Add(line)
		p.Legend.Add(axis, line)
	}

	return p, nil
}

func axisValue(v r3.Vec, axis string) float64 {
	switch axis {
	case "x":
		return v.X
	case "y":
		return v.Y
	default:
		return v.Z
	}
}
