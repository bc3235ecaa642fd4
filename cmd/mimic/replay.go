package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/NimbleMarkets/ntcharts/canvas/runes"
	"github.com/NimbleMarkets/ntcharts/linechart/streamlinechart"

	"github.com/gwillem/mimic/pkg/device"
	"github.com/gwillem/mimic/pkg/replay"
)

type ReplayCommand struct {
	SourceOptions
	Hz    int     `long:"hz" description:"Control loop frequency (default 20)"`
	Range float64 `long:"range" default:"1" description:"Chart y range (+/- meters)"`
}

const (
	headerHeight = 2 // title + blank line
	legendHeight = 2 // legend row + blank
	footerHeight = 7 // log box height
	maxLogs      = 5 // number of log messages to show
	borderSize   = 2 // chart border
)

type replayModel struct {
	ctrl     *replay.Controller
	mimic    *device.Mimic
	chart    *streamlinechart.Model
	done     <-chan error
	width    int      // terminal width
	height   int      // terminal height
	logs     []string // last N log messages
	frame    int
	finished bool
	quitting bool
}

func (m *replayModel) addLog(msg string) {
	m.logs = append(m.logs, msg)
	if len(m.logs) > maxLogs {
		m.logs = m.logs[len(m.logs)-maxLogs:]
	}
}

// Messages from the controller
type stateMsg replay.State
type logMsg string
type doneMsg struct{ err error }

func waitForState(ctrl *replay.Controller) tea.Cmd {
	return func() tea.Msg {
		return stateMsg(<-ctrl.States())
	}
}

func waitForLog(ctrl *replay.Controller) tea.Cmd {
	return func() tea.Msg {
		return logMsg(<-ctrl.Logs())
	}
}

func waitForDone(done <-chan error) tea.Cmd {
	return func() tea.Msg {
		return doneMsg{err: <-done}
	}
}

// chartSize calculates the size of the chart based on terminal dimensions
func (m *replayModel) chartSize() (width, height int) {
	if m.width == 0 || m.height == 0 {
		return 80, 20 // default size before we know terminal size
	}
	width = m.width - borderSize - 2
	if width < 40 {
		width = 40
	}
	height = m.height - headerHeight - legendHeight - footerHeight - borderSize
	if height < 10 {
		height = 10
	}
	return width, height
}

func (m *replayModel) resizeChart() {
	w, h := m.chartSize()
	m.chart.Resize(w, h)
}

func initialReplayModel(ctrl *replay.Controller, mimic *device.Mimic, done <-chan error, yRange float64) replayModel {
	chart := streamlinechart.New(80, 20,
		streamlinechart.WithYRange(-yRange, yRange),
	)

	for _, axis := range axes {
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(axisColors[axis]))
		chart.SetDataSetStyles(axis, runes.ThinLineStyle, style)
	}

	return replayModel{
		ctrl:  ctrl,
		mimic: mimic,
		chart: &chart,
		done:  done,
	}
}

func (m replayModel) Init() tea.Cmd {
	return tea.Batch(
		waitForState(m.ctrl),
		waitForLog(m.ctrl),
		waitForDone(m.done),
	)
}

func (m replayModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeChart()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		}

	case stateMsg:
		state := replay.State(msg)
		if state.Error == nil {
			dpos := state.Command.DPos
			m.chart.PushDataSet("x", dpos.X)
			m.chart.PushDataSet("y", dpos.Y)
			m.chart.PushDataSet("z", dpos.Z)
			m.chart.DrawAll()
			m.frame = state.Frame + 1
		}
		return m, waitForState(m.ctrl)

	case logMsg:
		m.addLog(string(msg))
		return m, waitForLog(m.ctrl)

	case doneMsg:
		m.finished = true
		if msg.err != nil && !errors.Is(msg.err, replay.ErrFinished) && !errors.Is(msg.err, context.Canceled) {
			m.addLog(fmt.Sprintf("Error: %v", msg.err))
		}
		return m, nil
	}

	return m, nil
}

func (m replayModel) View() string {
	if m.quitting {
		return "Replay stopped.\n"
	}

	var sb strings.Builder

	// Header
	sb.WriteString(titleStyle.Render("Mimic Replay"))
	sb.WriteString(fmt.Sprintf(" - %d Hz - frame %d/%d", m.ctrl.Hz(), m.frame, m.mimic.Len()))
	if m.finished {
		sb.WriteString(successStyle.Render("  done"))
	}
	if m.width > 0 {
		sb.WriteString(statusStyle.Render(fmt.Sprintf("  [%dx%d]", m.width, m.height)))
	}
	sb.WriteString("\n\n")

	// Chart
	sb.WriteString(chartStyle.Render(m.chart.View()))
	sb.WriteString("\n")

	// Legend
	sb.WriteString(renderLegend())
	sb.WriteString("\n")

	// Log box
	logStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Width(m.width - 4).
		Foreground(lipgloss.Color("9")) // bright red

	var logLines string
	if len(m.logs) == 0 {
		logLines = statusStyle.Render("Press 'q' to quit")
	} else {
		logLines = strings.Join(m.logs, "\n")
	}
	sb.WriteString(logStyle.Render(logLines))
	sb.WriteString("\n")

	return sb.String()
}

func renderLegend() string {
	var items []string
	for _, axis := range axes {
		colorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(axisColors[axis])).Bold(true)
		items = append(items, colorStyle.Render("━━")+" d"+axis)
	}
	return strings.Join(items, "  ")
}

func (c *ReplayCommand) Execute(args []string) error {
	cfg, err := c.settings()
	if err != nil {
		return err
	}
	if c.Hz != 0 {
		cfg.Hz = c.Hz
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	cfg.Dir, err = resolveTake(cfg.Dir, cfg.Pattern)
	if err != nil {
		return err
	}

	mimic, err := loadMimic(cfg)
	if err != nil {
		log.Fatalf("Failed to load recording: %v", err)
	}
	fmt.Printf("Loaded %d frames from %s\n", mimic.Len(), cfg.Dir)

	ctrl, err := replay.NewController(replay.Config{
		Device: mimic,
		Hz:     cfg.Hz,
	})
	if err != nil {
		log.Fatalf("Failed to create controller: %v", err)
	}

	// Start controller in background
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- ctrl.Start(ctx)
	}()

	// Run TUI
	p := tea.NewProgram(initialReplayModel(ctrl, mimic, done, c.Range), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		log.Fatalf("Error running program: %v", err)
	}

	return nil
}
