package main

import (
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"gonum.org/v1/gonum/spatial/r3"
)

type InspectCommand struct {
	SourceOptions
	Limit int `short:"n" long:"limit" default:"0" description:"Show at most this many frames (0 for all)"`
}

func (c *InspectCommand) Execute(args []string) error {
	cfg, err := c.validSettings()
	if err != nil {
		return err
	}

	frames, err := loadFrames(cfg)
	if err != nil {
		return err
	}

	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")).Padding(0, 1)
	fileStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Padding(0, 1).Align(lipgloss.Right)

	shown := frames
	if c.Limit > 0 && c.Limit < len(shown) {
		shown = shown[:c.Limit]
	}

	rows := make([][]string, 0, len(shown))
	for i, f := range shown {
		rows = append(rows, []string{
			fmt.Sprintf("%d", i),
			filepath.Base(f.Path),
			fmt.Sprintf("%.4f", f.Offset.X),
			fmt.Sprintf("%.4f", f.Offset.Y),
			fmt.Sprintf("%.4f", f.Offset.Z),
			fmt.Sprintf("%.4f", r3.Norm(f.Offset)),
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(dimStyle).
		Headers("Frame", "File", "dx", "dy", "dz", "|d|").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col == 1:
				return fileStyle
			default:
				return cellStyle
			}
		})

	fmt.Println(titleStyle.Render("Recording " + cfg.Dir))
	fmt.Println(t.Render())
	fmt.Printf("%d frames", len(frames))
	if len(shown) < len(frames) {
		fmt.Printf(" (showing %d)", len(shown))
	}
	if cfg.Hz > 0 {
		fmt.Printf(", %.1fs at %d Hz", float64(len(frames))/float64(cfg.Hz), cfg.Hz)
	}
	fmt.Println()
	return nil
}
