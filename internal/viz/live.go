// Package viz provides a terminal live view of the composition: the real
// scene ticking against a synthetic spectrum, with keys to trigger and
// restore dispersals. Useful for poking at the state machine without a
// window or an audio device.
package viz

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/kyra-dean/rosette/internal/audio"
	"github.com/kyra-dean/rosette/internal/scene"
)

const tickRate = time.Second / 30

type TickMsg time.Time

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(14)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

// Model drives the scene from terminal input and renders its vital signs.
type Model struct {
	scene     *scene.Scene
	src       *audio.Synthetic
	rng       *rand.Rand
	ticks     int
	lastEvent string
}

func NewModel(s *scene.Scene, src *audio.Synthetic, seed int64) Model {
	return Model{
		scene: s,
		src:   src,
		rng:   rand.New(rand.NewSource(seed)),
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Tick(tickRate, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "t":
			m.triggerRandom()
		case " ":
			if m.scene.Restore() {
				m.lastEvent = "restored most recent dispersal"
			} else {
				m.lastEvent = "nothing to restore"
			}
		case "r":
			w, h := m.scene.Size()
			m.scene.Resize(w, h)
			m.lastEvent = "layout regenerated"
		}
		return m, nil

	case TickMsg:
		m.src.Step(tickRate.Seconds())
		m.scene.Tick(m.src.Spectrum())
		m.ticks++
		return m, tea.Tick(tickRate, func(t time.Time) tea.Msg { return TickMsg(t) })
	}
	return m, nil
}

// triggerRandom clicks the center of a randomly chosen visible wheel.
func (m *Model) triggerRandom() {
	var visible []int
	for i, w := range m.scene.Wheels() {
		if !w.Dispersed {
			visible = append(visible, i)
		}
	}
	if len(visible) == 0 {
		m.lastEvent = "every wheel is dispersed"
		return
	}
	i := visible[m.rng.Intn(len(visible))]
	w := m.scene.Wheels()[i]
	if m.scene.Trigger(w.Center) {
		m.lastEvent = fmt.Sprintf("dispersed color group %d", w.ColorGroup)
	}
}

func (m Model) View() string {
	var sb strings.Builder

	sb.WriteString(headerStyle.Render("rosette live"))
	sb.WriteString("\n")

	visible, dispersed := 0, 0
	for _, w := range m.scene.Wheels() {
		if w.Dispersed {
			dispersed++
		} else {
			visible++
		}
	}

	row := func(label, value string) {
		sb.WriteString(labelStyle.Render(label))
		sb.WriteString(valueStyle.Render(value))
		sb.WriteString("\n")
	}
	width, height := m.scene.Size()
	row("canvas", fmt.Sprintf("%.0f x %.0f", width, height))
	row("wheels", fmt.Sprintf("%d visible, %d dispersed", visible, dispersed))
	row("connectors", fmt.Sprintf("%d", len(m.scene.Connectors())))
	row("particles", fmt.Sprintf("%d", len(m.scene.Particles())))
	row("history", fmt.Sprintf("%d dispersal(s) undoable", m.scene.HistoryDepth()))
	if report := m.scene.Report(); report.Exhausted() {
		row("placement", fmt.Sprintf("%d of %d (attempts exhausted)", report.Placed, report.Requested))
	}
	if m.lastEvent != "" {
		row("last event", m.lastEvent)
	}

	sb.WriteString(graphStyle.Render(spectrumGraph(m.src.Spectrum())))
	sb.WriteString("\n")
	sb.WriteString(helpStyle.Render("t: trigger random wheel  space: restore  r: regenerate  q: quit"))
	sb.WriteString("\n")
	return sb.String()
}

func spectrumGraph(spec audio.Spectrum) string {
	data := make([]float64, len(spec))
	for i, v := range spec {
		data[i] = float64(v)
	}
	return asciigraph.Plot(data,
		asciigraph.Height(8),
		asciigraph.Width(64),
		asciigraph.Caption("amplitude spectrum"),
	)
}
