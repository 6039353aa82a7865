package viz

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/dataviewer/internal/anim"
	"github.com/san-kum/dataviewer/internal/logging"
	"github.com/san-kum/dataviewer/internal/plot"
)

const (
	width    = 80
	height   = 24
	minFPS   = 1
	maxFPS   = 30
	panelGap = 52
)

type TickMsg time.Time

// Options configures a player.
type Options struct {
	FPS    int
	Output string
	Loop   bool
	Log    *slog.Logger
}

// Model plays a session frame by frame. Frames are rendered lazily in
// increasing index order and kept, so stepping back replays stored frames.
type Model struct {
	src      anim.FrameSource
	log      *slog.Logger
	keys     KeyMap
	frames   []*plot.Frame
	means    []float64
	rendered int
	view     int
	running  bool
	loop     bool
	fps      int
	output   string
	canvas   *Canvas
	progress progress.Model
	status   string
	err      error
	showHelp bool
}

func NewModel(src anim.FrameSource, opts Options) Model {
	if opts.FPS < minFPS {
		opts.FPS = anim.DefaultFPS
	}
	if opts.Log == nil {
		opts.Log = logging.Discard()
	}
	bar := progress.New(progress.WithDefaultGradient())
	bar.Width = 30
	return Model{
		src:      src,
		log:      opts.Log,
		keys:     Keys,
		frames:   make([]*plot.Frame, 0, src.Len()),
		view:     -1,
		running:  true,
		loop:     opts.Loop,
		fps:      min(opts.FPS, maxFPS),
		output:   opts.Output,
		canvas:   NewCanvas(width-panelGap+30, height-2),
		progress: bar,
	}
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.canvas.Resize(msg.Width-panelGap, msg.Height-4)
		m.drawCurrent()
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.showHelp = !m.showHelp
		case key.Matches(msg, m.keys.Pause):
			m.running = !m.running
			if m.running && m.finished() {
				m.view = -1
			}
		case key.Matches(msg, m.keys.Next):
			m.running = false
			m.advance()
		case key.Matches(msg, m.keys.Prev):
			m.running = false
			m.retreat()
		case key.Matches(msg, m.keys.First):
			if len(m.frames) > 0 {
				m.view = 0
				m.drawCurrent()
			}
		case key.Matches(msg, m.keys.Faster):
			m.fps = min(m.fps+1, maxFPS)
		case key.Matches(msg, m.keys.Slower):
			m.fps = max(m.fps-1, minFPS)
		case key.Matches(msg, m.keys.Loop):
			m.loop = !m.loop
		case key.Matches(msg, m.keys.Save):
			m.saveGIF()
		case key.Matches(msg, m.keys.Theme):
			NextTheme()
		}
	case TickMsg:
		if m.running {
			m.advance()
		}
		return m, m.tick()
	}
	return m, nil
}

// advance shows the next frame, rendering it first if it has not been
// rendered yet.
func (m *Model) advance() {
	switch {
	case m.view+1 < len(m.frames):
		m.view++
	case m.rendered < m.src.Len():
		if !m.renderNext() {
			return
		}
		m.view = len(m.frames) - 1
	case m.loop && len(m.frames) > 0:
		m.view = 0
	default:
		m.running = false
		return
	}
	m.drawCurrent()
}

func (m *Model) retreat() {
	if m.view > 0 {
		m.view--
		m.drawCurrent()
	}
}

func (m *Model) renderNext() bool {
	out, err := m.src.RenderFrame(m.rendered)
	if err != nil {
		m.err = err
		m.running = false
		m.log.Error("render failed", "index", m.rendered, "error", err)
		return false
	}
	m.rendered++
	for _, f := range out {
		m.frames = append(m.frames, f)
		m.means = append(m.means, mean(f.Histogram))
	}
	return len(out) > 0
}

func (m *Model) drawCurrent() {
	if f := m.current(); f != nil {
		m.canvas.Draw(f.Image)
	}
}

func (m Model) finished() bool {
	return m.rendered >= m.src.Len() && m.view == len(m.frames)-1
}

func (m Model) current() *plot.Frame {
	if m.view < 0 || m.view >= len(m.frames) {
		return nil
	}
	return m.frames[m.view]
}

func (m *Model) saveGIF() {
	if len(m.frames) == 0 {
		m.status = "nothing to save yet"
		return
	}
	if err := anim.SaveGIF(m.output, m.frames, m.fps); err != nil {
		m.status = "save failed: " + err.Error()
		m.log.Error("gif save failed", "path", m.output, "error", err)
		return
	}
	m.status = fmt.Sprintf("saved %d frames to %s", len(m.frames), m.output)
	m.log.Info("gif saved", "path", m.output, "frames", len(m.frames))
}

func (m Model) View() string {
	var s strings.Builder
	s.WriteString(headerStyle().Render(GradientText("DATAVIEWER", CurrentTheme.Primary, CurrentTheme.Accent)) + "\n")

	status := "PAUSED"
	if m.running {
		status = "PLAYING"
	}
	s.WriteString(statusStyle(m.running).Render(status) + "\n\n")

	title := "-"
	var hist [256]int
	if f := m.current(); f != nil {
		title, hist = f.Title, f.Histogram
	}
	s.WriteString(labelStyle().Render("Frame") + valueStyle().Render(fmt.Sprintf("%d/%d", m.view+1, m.src.Len())) + "\n")
	s.WriteString(labelStyle().Render("Title") + valueStyle().Render(title) + "\n")
	s.WriteString(labelStyle().Render("FPS") + valueStyle().Render(fmt.Sprintf("%d", m.fps)) + "\n")
	loop := "off"
	if m.loop {
		loop = "on"
	}
	s.WriteString(labelStyle().Render("Loop") + valueStyle().Render(loop) + "\n\n")

	total := max(m.src.Len(), 1)
	s.WriteString(labelStyle().Render("Rendered") + m.progress.ViewAs(float64(m.rendered)/float64(total)) + "\n")

	if series := histogramSeries(hist); series != nil {
		chart := asciigraph.Plot(series, asciigraph.Height(6), asciigraph.Width(30), asciigraph.Caption("Histogram"))
		s.WriteString(graphStyle().Render(chart) + "\n")
	}
	if len(m.means) > 1 {
		s.WriteString(labelStyle().Render("Mean") + SparklineChart(m.means, 30) + "\n")
	}

	if m.err != nil {
		s.WriteString("\n" + errorStyle().Render(m.err.Error()) + "\n")
	}
	if m.status != "" {
		s.WriteString("\n" + valueStyle().Render(m.status) + "\n")
	}
	s.WriteString(helpStyle().Render(Separator(30) + "\nSP:Pause [ ]:Step G:Save\nT:Theme ?:Help Q:Quit"))

	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasStyle.Render(m.canvas.String()), statsStyle().Render(s.String()))
	if m.showHelp {
		return m.helpView() + "\n\n" + mainView
	}
	return mainView
}

func (m Model) helpView() string {
	var b strings.Builder
	b.WriteString(headerStyle().Render("KEYBOARD SHORTCUTS") + "\n")
	for _, k := range m.keys.Bindings() {
		h := k.Help()
		b.WriteString(labelStyle().Render(h.Key) + valueStyle().Render(h.Desc) + "\n")
	}
	return lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(CurrentTheme.Border).Padding(0, 1).Render(b.String())
}

// histogramSeries returns the histogram as a float series, or nil when it is
// empty.
func histogramSeries(h [256]int) []float64 {
	var total int
	series := make([]float64, len(h))
	for i, n := range h {
		series[i] = float64(n)
		total += n
	}
	if total == 0 {
		return nil
	}
	return series
}

func mean(h [256]int) float64 {
	var sum, n float64
	for v, c := range h {
		sum += float64(v) * float64(c)
		n += float64(c)
	}
	if n == 0 {
		return 0
	}
	return sum / n
}

// Run starts the player on the terminal.
func Run(src anim.FrameSource, opts Options) error {
	p := tea.NewProgram(NewModel(src, opts), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
