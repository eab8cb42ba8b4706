// Command sizewatch-demo renders a terminal box that tracks its own size.
//
// The terminal window plays the document: every WindowSizeMsg resizes the
// viewport node, the detector observes it, and the styled box reports the
// coalesced measurements. Drag the terminal around to watch debounce or
// throttle modes (configured via sizewatch.yaml) shape the update stream.
package main

import (
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/go-logr/logr"
	"github.com/go-logr/logr/funcr"

	"github.com/go-drift/sizewatch/cmd/sizewatch-demo/internal/config"
	"github.com/go-drift/sizewatch/pkg/detector"
	"github.com/go-drift/sizewatch/pkg/dom"
	"github.com/go-drift/sizewatch/pkg/geometry"
)

// framePeriod approximates a 60Hz frame pump.
const framePeriod = 16 * time.Millisecond

type frameMsg time.Time

type model struct {
	doc      *dom.Document
	viewport *dom.Node
	det      *detector.Detector

	size     geometry.Size
	measured bool
	updates  int

	termWidth  int
	termHeight int
	modeLabel  string
}

func newModel(cfg *config.Config, log logr.Logger) (*model, error) {
	m := &model{doc: dom.NewDocument()}

	m.viewport = dom.NewNode("viewport")
	m.viewport.SetID("viewport")
	m.doc.Root().AppendChild(m.viewport)

	detCfg := detector.Config{
		HandleWidth:   true,
		HandleHeight:  true,
		QuerySelector: "#viewport",
		OnResize: func(width, height float64) {
			m.size = geometry.Size{Width: width, Height: height}
			m.measured = true
			m.updates++
		},
	}
	detCfg, err := cfg.Apply(detCfg)
	if err != nil {
		return nil, err
	}
	m.modeLabel = detCfg.RefreshMode.String()

	m.det = detector.New(detCfg, detector.WithLogger(log))
	m.det.Attach(m.doc, m.doc.Root())
	return m, nil
}

func frameTick() tea.Cmd {
	return tea.Tick(framePeriod, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

func (m *model) Init() tea.Cmd {
	return frameTick()
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.termWidth = msg.Width
		m.termHeight = msg.Height
		m.viewport.Resize(float64(msg.Width), float64(msg.Height))
		return m, nil

	case frameMsg:
		m.doc.PumpFrame()
		return m, frameTick()

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.det.Detach()
			return m, tea.Quit
		}
	}
	return m, nil
}

var (
	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(1, 3)
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

func (m *model) View() string {
	measurement := "waiting for first measurement"
	if m.measured {
		measurement = fmt.Sprintf("%.0f × %.0f", m.size.Width, m.size.Height)
	}

	body := fmt.Sprintf(
		"%s\n\n%s\n%s\n%s",
		titleStyle.Render("sizewatch"),
		measurement,
		dimStyle.Render(fmt.Sprintf("updates: %d", m.updates)),
		dimStyle.Render(fmt.Sprintf("mode: %s | resize the terminal, q to quit", m.modeLabel)),
	)

	box := boxStyle.Render(body)
	if m.termWidth == 0 || m.termHeight == 0 {
		return box
	}
	return lipgloss.Place(m.termWidth, m.termHeight, lipgloss.Center, lipgloss.Center, box)
}

func debugLogger() logr.Logger {
	path := os.Getenv("SIZEWATCH_DEBUG")
	if path == "" {
		return logr.Discard()
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return logr.Discard()
	}
	return funcr.New(func(prefix, args string) {
		fmt.Fprintln(f, prefix, args)
	}, funcr.Options{Verbosity: 1})
}

func main() {
	cwd, err := os.Getwd()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	cfg, err := config.LoadOptional(cwd)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	m, err := newModel(cfg, debugLogger())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
