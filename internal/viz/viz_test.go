package viz

import (
	"errors"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/dataviewer/internal/grid"
	"github.com/san-kum/dataviewer/internal/plot"
)

type fakeSource struct {
	fig     *plot.Figure
	n       int
	calls   []int
	failsAt int
}

func newFakeSource(n int) *fakeSource {
	return &fakeSource{fig: plot.NewFigure(grid.Shape{Rows: 4, Cols: 4}, 1), n: n, failsAt: -1}
}

func (f *fakeSource) Len() int { return f.n }

func (f *fakeSource) RenderFrame(index int) ([]*plot.Frame, error) {
	f.calls = append(f.calls, index)
	if index == f.failsAt {
		return nil, errors.New("boom")
	}
	g := grid.New(grid.Shape{Rows: 4, Cols: 4})
	for i := range g.Pix {
		g.Pix[i] = uint8(index * 10)
	}
	fr, err := f.fig.Plot(g, "Blues", "2016-03-0"+string(rune('1'+index)))
	if err != nil {
		return nil, err
	}
	fr.Index = index
	return []*plot.Frame{fr}, nil
}

func keyMsg(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(Model)
}

func TestPlayerRendersInOrder(t *testing.T) {
	src := newFakeSource(3)
	m := NewModel(src, Options{FPS: 4})

	for i := 0; i < 5; i++ {
		m = update(t, m, TickMsg{})
	}

	if len(src.calls) != 3 {
		t.Fatalf("expected 3 render calls, got %d", len(src.calls))
	}
	for i, idx := range src.calls {
		if idx != i {
			t.Errorf("expected call %d for index %d, got %d", i, i, idx)
		}
	}
	if m.running {
		t.Error("expected playback to stop at the end without loop")
	}
	if m.current().Index != 2 {
		t.Errorf("expected last frame shown, got %d", m.current().Index)
	}
}

func TestPlayerStepBackReplaysStoredFrames(t *testing.T) {
	src := newFakeSource(3)
	m := NewModel(src, Options{})

	m = update(t, m, keyMsg("]"))
	m = update(t, m, keyMsg("]"))
	m = update(t, m, keyMsg("["))

	if m.running {
		t.Error("stepping should pause playback")
	}
	if m.current().Index != 0 {
		t.Errorf("expected frame 0, got %d", m.current().Index)
	}
	m = update(t, m, keyMsg("]"))
	if len(src.calls) != 2 {
		t.Errorf("stepping over stored frames must not re-render, got calls %v", src.calls)
	}
}

func TestPlayerLoop(t *testing.T) {
	src := newFakeSource(2)
	m := NewModel(src, Options{Loop: true})

	for i := 0; i < 3; i++ {
		m = update(t, m, TickMsg{})
	}
	if !m.running {
		t.Error("looping player should keep running")
	}
	if m.current().Index != 0 {
		t.Errorf("expected wrap to frame 0, got %d", m.current().Index)
	}
	if len(src.calls) != 2 {
		t.Errorf("expected 2 render calls, got %d", len(src.calls))
	}
}

func TestPlayerRenderError(t *testing.T) {
	src := newFakeSource(3)
	src.failsAt = 1
	m := NewModel(src, Options{})

	m = update(t, m, TickMsg{})
	m = update(t, m, TickMsg{})

	if m.err == nil {
		t.Fatal("expected render error to be kept")
	}
	if m.running {
		t.Error("render error should pause playback")
	}
	if !strings.Contains(m.View(), "boom") {
		t.Error("expected error in view")
	}
}

func TestPlayerSpeed(t *testing.T) {
	m := NewModel(newFakeSource(1), Options{FPS: maxFPS})
	m = update(t, m, keyMsg("+"))
	if m.fps != maxFPS {
		t.Errorf("expected fps capped at %d, got %d", maxFPS, m.fps)
	}
	for i := 0; i < maxFPS+5; i++ {
		m = update(t, m, keyMsg("-"))
	}
	if m.fps != minFPS {
		t.Errorf("expected fps floored at %d, got %d", minFPS, m.fps)
	}
}

func TestPlayerSaveGIF(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out.gif")
	m := NewModel(newFakeSource(2), Options{Output: out})

	m = update(t, m, keyMsg("g"))
	if !strings.Contains(m.status, "nothing") {
		t.Errorf("expected nothing-to-save status, got %q", m.status)
	}

	m = update(t, m, TickMsg{})
	m = update(t, m, TickMsg{})
	m = update(t, m, keyMsg("g"))
	if _, err := os.Stat(out); err != nil {
		t.Fatalf("expected gif written: %v", err)
	}
	if !strings.Contains(m.status, "saved 2 frames") {
		t.Errorf("unexpected status %q", m.status)
	}
}

func TestPlayerQuit(t *testing.T) {
	m := NewModel(newFakeSource(1), Options{})
	_, cmd := m.Update(keyMsg("q"))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
}

func TestCanvasDraw(t *testing.T) {
	c := NewCanvas(4, 2)
	src := image.NewRGBA(image.Rect(0, 0, 2, 1))
	for i := range src.Pix {
		src.Pix[i] = 0xff
	}
	c.Draw(src)

	if got := c.At(2, 2); got != (color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}) {
		t.Errorf("expected white centre, got %v", got)
	}
	if got := c.At(0, 0); got != canvasBackground {
		t.Errorf("expected letterbox background, got %v", got)
	}
	if n := strings.Count(c.String(), halfBlock); n != 8 {
		t.Errorf("expected 8 cells, got %d", n)
	}
}

func TestSparklineChart(t *testing.T) {
	line := SparklineChart([]float64{0, 1, 2, 3}, 2)
	if strings.Count(line, "▁")+strings.Count(line, "█")+strings.Count(line, "▅")+strings.Count(line, "▃") == 0 {
		t.Errorf("unexpected sparkline %q", line)
	}
	if SparklineChart(nil, 3) != "───" {
		t.Error("expected flat line for no values")
	}
}

func TestThemes(t *testing.T) {
	defer SetTheme("polar")

	if GetTheme("nope").Name != "polar" {
		t.Error("expected fallback to polar")
	}
	NextTheme()
	if CurrentTheme.Name != ThemeNames()[1] {
		t.Errorf("expected %s, got %s", ThemeNames()[1], CurrentTheme.Name)
	}
}

func TestMean(t *testing.T) {
	var h [256]int
	h[10], h[20] = 1, 1
	if got := mean(h); got != 15 {
		t.Errorf("expected 15, got %v", got)
	}
	if mean([256]int{}) != 0 {
		t.Error("expected 0 for empty histogram")
	}
}
